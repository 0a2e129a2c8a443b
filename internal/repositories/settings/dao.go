package settings

import (
	"database/sql"
	"time"

	"github.com/majeanson/family-social/pkg/database"
	"github.com/majeanson/family-social/pkg/models"
)

const (
	settingsTable = "user_settings"
)

// SettingsRow represents the database row for user settings
type SettingsRow struct {
	UserID          sql.NullString                                     `db:"user_id"`
	PrimaryPersonID sql.NullString                                     `db:"primary_person_id"`
	Palette         database.JSONB[[]string]                           `db:"palette"`
	TypeColors      database.JSONB[map[models.RelationshipType]string] `db:"type_colors"`
	CreatedAt       sql.NullTime                                       `db:"created_at"`
	UpdatedAt       sql.NullTime                                       `db:"updated_at"`
}

var settingsStruct = database.NewStruct(new(SettingsRow))

// FromSettings converts a domain model to a database row
func FromSettings(s *models.UserSettings) *SettingsRow {
	return &SettingsRow{
		UserID:          sql.NullString{String: s.UserID, Valid: s.UserID != ""},
		PrimaryPersonID: sql.NullString{String: s.PrimaryPersonID, Valid: s.PrimaryPersonID != ""},
		Palette:         database.JSONB[[]string]{Data: s.Palette},
		TypeColors:      database.JSONB[map[models.RelationshipType]string]{Data: s.TypeColors},
		CreatedAt:       sql.NullTime{Time: s.CreatedAt, Valid: !s.CreatedAt.IsZero()},
		UpdatedAt:       sql.NullTime{Time: s.UpdatedAt, Valid: !s.UpdatedAt.IsZero()},
	}
}

// ToSettings converts a database row to a domain model
func ToSettings(row *SettingsRow) *models.UserSettings {
	return &models.UserSettings{
		UserID:          row.UserID.String,
		PrimaryPersonID: row.PrimaryPersonID.String,
		Palette:         row.Palette.Data,
		TypeColors:      row.TypeColors.Data,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}
