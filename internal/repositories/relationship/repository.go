package relationship

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"
	"github.com/majeanson/family-social/pkg/database"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/tracing"
)

// RelationshipRepository defines the interface for relationship data access
type RelationshipRepository interface {
	Create(ctx context.Context, rel *models.Relationship) (*models.Relationship, error)
	GetByID(ctx context.Context, userID, id string) (*models.Relationship, error)
	List(ctx context.Context, userID string) ([]*models.Relationship, error)
	ListByPerson(ctx context.Context, userID, personID string) ([]*models.Relationship, error)
	Delete(ctx context.Context, userID, id string) error
}

// Repository implements RelationshipRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new relationship repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new relationship. A pair of people can only carry one
// relationship regardless of direction, so an existing edge between the two
// in either orientation is a conflict.
func (r *Repository) Create(ctx context.Context, rel *models.Relationship) (*models.Relationship, error) {
	ctx, span := tracing.StartSpan(ctx, "RelationshipRepository.Create")
	defer span.End()

	if rel.PersonAID == rel.PersonBID {
		return nil, httperror.NewHTTPError(http.StatusBadRequest, "a person cannot have a relationship with themselves")
	}

	existing, err := r.getByPair(ctx, rel.UserID, rel.PersonAID, rel.PersonBID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, httperror.NewHTTPError(http.StatusConflict, "relationship between these people already exists")
	}

	// Generate ID if not provided
	if rel.ID == "" {
		rel.ID = uuid.New().String()
	}

	rel.Normalize()
	rel.CreatedAt = Now()

	row := FromRelationship(rel)
	ib := relationshipStruct.InsertInto(relationshipsTable, row)
	sql, args := ib.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":          rel.ID,
		"user_id":     rel.UserID,
		"person_a_id": rel.PersonAID,
		"person_b_id": rel.PersonBID,
		"type":        rel.Type,
	}).Debug("Creating relationship")

	_, err = r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create relationship")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create relationship")
	}

	return rel, nil
}

// GetByID retrieves a relationship by ID
func (r *Repository) GetByID(ctx context.Context, userID, id string) (*models.Relationship, error) {
	ctx, span := tracing.StartSpan(ctx, "RelationshipRepository.GetByID")
	defer span.End()

	sb := relationshipStruct.SelectFrom(relationshipsTable)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("user_id", userID),
	)

	sql, args := sb.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":      id,
		"user_id": userID,
	}).Debug("Getting relationship by ID")

	var row RelationshipRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "relationship not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get relationship")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get relationship")
	}

	return ToRelationship(&row), nil
}

// List retrieves all relationships for a user
func (r *Repository) List(ctx context.Context, userID string) ([]*models.Relationship, error) {
	ctx, span := tracing.StartSpan(ctx, "RelationshipRepository.List")
	defer span.End()

	sb := relationshipStruct.SelectFrom(relationshipsTable)
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at").Asc()

	sql, args := sb.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id": userID,
	}).Debug("Listing relationships")

	var rows []RelationshipRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list relationships")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list relationships")
	}

	return ToRelationships(rows), nil
}

// ListByPerson retrieves all relationships that reference a person
func (r *Repository) ListByPerson(ctx context.Context, userID, personID string) ([]*models.Relationship, error) {
	ctx, span := tracing.StartSpan(ctx, "RelationshipRepository.ListByPerson")
	defer span.End()

	sb := relationshipStruct.SelectFrom(relationshipsTable)
	sb.Where(
		sb.Equal("user_id", userID),
		sb.Or(
			sb.Equal("person_a_id", personID),
			sb.Equal("person_b_id", personID),
		),
	)
	sb.OrderBy("created_at").Asc()

	sql, args := sb.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id":   userID,
		"person_id": personID,
	}).Debug("Listing relationships by person")

	var rows []RelationshipRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list relationships by person")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list relationships by person")
	}

	return ToRelationships(rows), nil
}

// Delete deletes a relationship
func (r *Repository) Delete(ctx context.Context, userID, id string) error {
	ctx, span := tracing.StartSpan(ctx, "RelationshipRepository.Delete")
	defer span.End()

	db := relationshipStruct.DeleteFrom(relationshipsTable)
	db.Where(
		db.Equal("id", id),
		db.Equal("user_id", userID),
	)

	sql, args := db.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":      id,
		"user_id": userID,
	}).Debug("Deleting relationship")

	result, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete relationship")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete relationship")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, "relationship not found")
	}

	return nil
}

func (r *Repository) getByPair(ctx context.Context, userID, personAID, personBID string) (*models.Relationship, error) {
	sb := relationshipStruct.SelectFrom(relationshipsTable)
	sb.Where(
		sb.Equal("user_id", userID),
		sb.Or(
			sb.And(
				sb.Equal("person_a_id", personAID),
				sb.Equal("person_b_id", personBID),
			),
			sb.And(
				sb.Equal("person_a_id", personBID),
				sb.Equal("person_b_id", personAID),
			),
		),
	)

	sql, args := sb.Build()

	var row RelationshipRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to check for existing relationship")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to check for existing relationship")
	}

	return ToRelationship(&row), nil
}
