package familygroup

import (
	"database/sql"
	"time"

	"github.com/majeanson/family-social/pkg/database"
	"github.com/majeanson/family-social/pkg/models"
)

const (
	recordsTable   = "family_group_records"
	overridesTable = "family_group_overrides"
)

// RecordRow represents the database row for a family group record
type RecordRow struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	Name      sql.NullString `db:"name"`
	Custom    sql.NullBool   `db:"custom"`
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}

// OverrideRow represents the database row for a group override
type OverrideRow struct {
	ID        sql.NullString `db:"id"`
	UserID    sql.NullString `db:"user_id"`
	PersonID  sql.NullString `db:"person_id"`
	GroupID   sql.NullString `db:"group_id"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

var recordStruct = database.NewStruct(new(RecordRow))
var overrideStruct = database.NewStruct(new(OverrideRow))

// FromRecord converts a domain model to a database row
func FromRecord(rec *models.FamilyGroupRecord) *RecordRow {
	return &RecordRow{
		ID:        sql.NullString{String: rec.ID, Valid: rec.ID != ""},
		UserID:    sql.NullString{String: rec.UserID, Valid: rec.UserID != ""},
		Name:      sql.NullString{String: rec.Name, Valid: rec.Name != ""},
		Custom:    sql.NullBool{Bool: rec.Custom, Valid: true},
		CreatedAt: sql.NullTime{Time: rec.CreatedAt, Valid: !rec.CreatedAt.IsZero()},
		UpdatedAt: sql.NullTime{Time: rec.UpdatedAt, Valid: !rec.UpdatedAt.IsZero()},
	}
}

// ToRecord converts a database row to a domain model
func ToRecord(row *RecordRow) *models.FamilyGroupRecord {
	return &models.FamilyGroupRecord{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		Name:      row.Name.String,
		Custom:    row.Custom.Bool,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

// ToRecords converts a slice of database rows to domain models
func ToRecords(rows []RecordRow) []*models.FamilyGroupRecord {
	records := make([]*models.FamilyGroupRecord, len(rows))
	for i, row := range rows {
		records[i] = ToRecord(&row)
	}
	return records
}

// FromOverride converts a domain model to a database row
func FromOverride(o *models.FamilyGroupOverride) *OverrideRow {
	return &OverrideRow{
		ID:        sql.NullString{String: o.ID, Valid: o.ID != ""},
		UserID:    sql.NullString{String: o.UserID, Valid: o.UserID != ""},
		PersonID:  sql.NullString{String: o.PersonID, Valid: o.PersonID != ""},
		GroupID:   sql.NullString{String: o.GroupID, Valid: o.GroupID != ""},
		CreatedAt: sql.NullTime{Time: o.CreatedAt, Valid: !o.CreatedAt.IsZero()},
	}
}

// ToOverride converts a database row to a domain model
func ToOverride(row *OverrideRow) *models.FamilyGroupOverride {
	return &models.FamilyGroupOverride{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		PersonID:  row.PersonID.String,
		GroupID:   row.GroupID.String,
		CreatedAt: row.CreatedAt.Time,
	}
}

// ToOverrides converts a slice of database rows to domain models
func ToOverrides(rows []OverrideRow) []*models.FamilyGroupOverride {
	overrides := make([]*models.FamilyGroupOverride, len(rows))
	for i, row := range rows {
		overrides[i] = ToOverride(&row)
	}
	return overrides
}

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}
