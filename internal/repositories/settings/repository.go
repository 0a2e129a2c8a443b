package settings

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/majeanson/family-social/pkg/database"
	"github.com/majeanson/family-social/pkg/models"
	"github.com/majeanson/family-social/pkg/tracing"
)

// SettingsRepository defines the interface for user settings data access
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*models.UserSettings, error)
	Upsert(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error)
}

// Repository implements SettingsRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new settings repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves settings for a user. Users who never saved settings get the
// defaults rather than a 404.
func (r *Repository) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	ctx, span := tracing.StartSpan(ctx, "SettingsRepository.Get")
	defer span.End()

	sb := settingsStruct.SelectFrom(settingsTable)
	sb.Where(sb.Equal("user_id", userID))

	sql, args := sb.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id": userID,
	}).Debug("Getting user settings")

	var row SettingsRow
	err := r.db.GetContext(ctx, &row, sql, args...)
	if err != nil {
		if err.Error() == "sql: no rows in result set" {
			return &models.UserSettings{UserID: userID}, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("Failed to get user settings")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get settings")
	}

	return ToSettings(&row), nil
}

// Upsert saves settings for a user, inserting on first save
func (r *Repository) Upsert(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error) {
	ctx, span := tracing.StartSpan(ctx, "SettingsRepository.Upsert")
	defer span.End()

	settings.UpdatedAt = Now()

	ub := settingsStruct.Update(settingsTable, FromSettings(settings))
	ub.Where(ub.Equal("user_id", settings.UserID))

	sql, args := ub.Build()

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"user_id": settings.UserID,
	}).Debug("Updating user settings")

	result, err := r.db.ExecContext(ctx, sql, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("Failed to update user settings")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update settings")
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		settings.CreatedAt = settings.UpdatedAt

		ib := settingsStruct.InsertInto(settingsTable, FromSettings(settings))
		sql, args := ib.Build()

		_, err := r.db.ExecContext(ctx, sql, args...)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("Failed to insert user settings")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to update settings")
		}
	}

	return settings, nil
}
