package familygroup

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

// FamilyGroupRepository defines the interface for group record and override data access
type FamilyGroupRepository interface {
	CreateRecord(ctx context.Context, rec *models.FamilyGroupRecord) (*models.FamilyGroupRecord, error)
	ListRecords(ctx context.Context, userID string) ([]*models.FamilyGroupRecord, error)
	UpsertRecord(ctx context.Context, rec *models.FamilyGroupRecord) (*models.FamilyGroupRecord, error)
	DeleteRecord(ctx context.Context, userID, id string) error
	SetOverride(ctx context.Context, override *models.FamilyGroupOverride) (*models.FamilyGroupOverride, error)
	ListOverrides(ctx context.Context, userID string) ([]*models.FamilyGroupOverride, error)
	DeleteOverride(ctx context.Context, userID, personID string) error
}

// Repository implements FamilyGroupRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new family group repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// CreateRecord creates a new custom group record
func (r *Repository) CreateRecord(ctx context.Context, rec *models.FamilyGroupRecord) (*models.FamilyGroupRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "FamilyGroupRepository.CreateRecord")
	defer span.End()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	now := Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	ib := recordStruct.InsertInto(recordsTable, FromRecord(rec))
	sql, args := ib.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":      rec.ID,
		"user_id": rec.UserID,
		"name":    rec.Name,
	}).Debug("Creating family group record")

	_, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to create family group record")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to create family group")
	}

	return rec, nil
}

// ListRecords retrieves all group records for a user
func (r *Repository) ListRecords(ctx context.Context, userID string) ([]*models.FamilyGroupRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "FamilyGroupRepository.ListRecords")
	defer span.End()

	sb := recordStruct.SelectFrom(recordsTable)
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at").Asc()

	sql, args := sb.Build()

	var rows []RecordRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list family group records")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list family groups")
	}

	return ToRecords(rows), nil
}

// UpsertRecord updates a record by ID, inserting it when missing. Renames of
// detected groups land here with the detected group's ID.
func (r *Repository) UpsertRecord(ctx context.Context, rec *models.FamilyGroupRecord) (*models.FamilyGroupRecord, error) {
	ctx, span := tracing.StartSpan(ctx, "FamilyGroupRepository.UpsertRecord")
	defer span.End()

	rec.UpdatedAt = Now()

	ub := recordStruct.Update(recordsTable, FromRecord(rec))
	ub.Where(
		ub.Equal("id", rec.ID),
		ub.Equal("user_id", rec.UserID),
	)

	sql, args := ub.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"id":      rec.ID,
		"user_id": rec.UserID,
		"name":    rec.Name,
	}).Debug("Upserting family group record")

	result, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update family group record")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update family group")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		rec.CreatedAt = rec.UpdatedAt

		ib := recordStruct.InsertInto(recordsTable, FromRecord(rec))
		sql, args := ib.Build()

		_, err := r.db.ExecContext(ctx, sql, args...)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to insert family group record")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update family group")
		}
	}

	return rec, nil
}

// DeleteRecord deletes a group record
func (r *Repository) DeleteRecord(ctx context.Context, userID, id string) error {
	ctx, span := tracing.StartSpan(ctx, "FamilyGroupRepository.DeleteRecord")
	defer span.End()

	db := recordStruct.DeleteFrom(recordsTable)
	db.Where(
		db.Equal("id", id),
		db.Equal("user_id", userID),
	)

	sql, args := db.Build()

	result, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete family group record")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete family group")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, "family group not found")
	}

	return nil
}

// SetOverride pins a person to a group, replacing any previous pin for the
// same person.
func (r *Repository) SetOverride(ctx context.Context, override *models.FamilyGroupOverride) (*models.FamilyGroupOverride, error) {
	ctx, span := tracing.StartSpan(ctx, "FamilyGroupRepository.SetOverride")
	defer span.End()

	ctx, tx, err := r.db.GetTx(ctx, nil)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to start transaction")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	db := overrideStruct.DeleteFrom(overridesTable)
	db.Where(
		db.Equal("user_id", override.UserID),
		db.Equal("person_id", override.PersonID),
	)

	sql, args := db.Build()

	_, err = tx.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to clear previous group override")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to set group override")
	}

	if override.ID == "" {
		override.ID = uuid.New().String()
	}
	override.CreatedAt = Now()

	ib := overrideStruct.InsertInto(overridesTable, FromOverride(override))
	sql, args = ib.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id":   override.UserID,
		"person_id": override.PersonID,
		"group_id":  override.GroupID,
	}).Debug("Setting group override")

	_, err = tx.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to set group override")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to set group override")
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to commit group override")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to set group override")
	}

	return override, nil
}

// ListOverrides retrieves all group overrides for a user
func (r *Repository) ListOverrides(ctx context.Context, userID string) ([]*models.FamilyGroupOverride, error) {
	ctx, span := tracing.StartSpan(ctx, "FamilyGroupRepository.ListOverrides")
	defer span.End()

	sb := overrideStruct.SelectFrom(overridesTable)
	sb.Where(sb.Equal("user_id", userID))
	sb.OrderBy("created_at").Asc()

	sql, args := sb.Build()

	var rows []OverrideRow
	err := r.db.SelectContext(ctx, &rows, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to list group overrides")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list group overrides")
	}

	return ToOverrides(rows), nil
}

// DeleteOverride removes the pin for a person
func (r *Repository) DeleteOverride(ctx context.Context, userID, personID string) error {
	ctx, span := tracing.StartSpan(ctx, "FamilyGroupRepository.DeleteOverride")
	defer span.End()

	db := overrideStruct.DeleteFrom(overridesTable)
	db.Where(
		db.Equal("user_id", userID),
		db.Equal("person_id", personID),
	)

	sql, args := db.Build()

	result, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to delete group override")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete group override")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return httperror.NewHTTPError(http.StatusNotFound, "group override not found")
	}

	return nil
}
