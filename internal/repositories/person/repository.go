package person

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

// PersonRepository defines the interface for person data access
type PersonRepository interface {
	Create(ctx context.Context, person *models.Person) (*models.Person, error)
	GetByID(ctx context.Context, userID, id string) (*models.Person, error)
	List(ctx context.Context, userID string) ([]*models.Person, error)
	Update(ctx context.Context, person *models.Person) (*models.Person, error)
	Delete(ctx context.Context, userID, id string) ([]string, error)
}

// Repository implements PersonRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new person repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Create creates a new person
func (r *Repository) Create(ctx context.Context, person *models.Person) (*models.Person, error) {
	ctx, span := tracing.StartSpan(ctx, "PersonRepository.Create")
	defer span.End()

	// Generate ID if not provided
	if person.ID == "" {
		person.ID = uuid.New().String()
	}

	now := Now()
	person.CreatedAt = now
	person.UpdatedAt = now

	row := FromPerson(person)
	ib := personStruct.InsertInto(peopleTable, row)
	sql, args := ib.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":         person.ID,
		"user_id":    person.UserID,
		"first_name": person.FirstName,
	}).Debug("Creating person")

	_, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create person")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create person")
	}

	return person, nil
}

// GetByID retrieves a person by ID
func (r *Repository) GetByID(ctx context.Context, userID, id string) (*models.Person, error) {
	ctx, span := tracing.StartSpan(ctx, "PersonRepository.GetByID")
	defer span.End()

	sb := personStruct.SelectFrom(peopleTable)
	sb.Where(
		sb.Equal("id", id),
		sb.Equal("user_id", userID),
	)

	sql, args := sb.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":      id,
		"user_id": userID,
	}).Debug("Getting person by ID")

	var row PersonRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "person not found")
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get person")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get person")
	}

	return ToPerson(&row), nil
}

// List retrieves all people for a user
func (r *Repository) List(ctx context.Context, userID string) ([]*models.Person, error) {
	ctx, span := tracing.StartSpan(ctx, "PersonRepository.List")
	defer span.End()

	sb := personStruct.SelectFrom(peopleTable)
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at").Asc()

	sql, args := sb.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id": userID,
	}).Debug("Listing people")

	var rows []PersonRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list people")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list people")
	}

	return ToPeople(rows), nil
}

// Update updates an existing person
func (r *Repository) Update(ctx context.Context, person *models.Person) (*models.Person, error) {
	ctx, span := tracing.StartSpan(ctx, "PersonRepository.Update")
	defer span.End()

	person.UpdatedAt = Now()

	ub := personStruct.Update(peopleTable, FromPerson(person))
	ub.Where(
		ub.Equal("id", person.ID),
		ub.Equal("user_id", person.UserID),
	)

	sql, args := ub.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":      person.ID,
		"user_id": person.UserID,
	}).Debug("Updating person")

	result, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update person")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update person")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, "person not found")
	}

	return person, nil
}

// Delete deletes a person and every relationship that references them. The
// relationship cleanup and the person delete run in one transaction so a
// failure cannot leave dangling edges. Returns the IDs of the removed
// relationships.
func (r *Repository) Delete(ctx context.Context, userID, id string) ([]string, error) {
	ctx, span := tracing.StartSpan(ctx, "PersonRepository.Delete")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to start transaction")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":      id,
		"user_id": userID,
	}).Debug("Deleting person")

	var relationshipIDs []string
	err = tx.SelectContext(ctx, &relationshipIDs,
		"SELECT id FROM relationships WHERE user_id = $1 AND (person_a_id = $2 OR person_b_id = $2)",
		userID, id,
	)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to find relationships for person")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete person")
	}

	if len(relationshipIDs) > 0 {
		_, err = tx.ExecContext(ctx,
			"DELETE FROM relationships WHERE user_id = $1 AND (person_a_id = $2 OR person_b_id = $2)",
			userID, id,
		)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to delete relationships for person")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete person")
		}
	}

	db := personStruct.DeleteFrom(peopleTable)
	db.Where(
		db.Equal("id", id),
		db.Equal("user_id", userID),
	)

	sql, args := db.Build()

	result, err := tx.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete person")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete person")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return nil, httperror.NewHTTPError(http.StatusNotFound, "person not found")
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to commit person delete")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete person")
	}

	return relationshipIDs, nil
}
