package relationship

import (
	"database/sql"
	"time"

	"github.com/majeanson/family-social/pkg/database"
	"github.com/majeanson/family-social/pkg/models"
)

const (
	relationshipsTable = "relationships"
)

// RelationshipRow represents the database row for a relationship
type RelationshipRow struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	PersonAID   sql.NullString `db:"person_a_id"`
	PersonBID   sql.NullString `db:"person_b_id"`
	Type        sql.NullString `db:"type"`
	ReverseType sql.NullString `db:"reverse_type"`
	CreatedAt   sql.NullTime   `db:"created_at"`
}

var relationshipStruct = database.NewStruct(new(RelationshipRow))

// FromRelationship converts a domain model to a database row
func FromRelationship(rel *models.Relationship) *RelationshipRow {
	return &RelationshipRow{
		ID:          sql.NullString{String: rel.ID, Valid: rel.ID != ""},
		UserID:      sql.NullString{String: rel.UserID, Valid: rel.UserID != ""},
		PersonAID:   sql.NullString{String: rel.PersonAID, Valid: rel.PersonAID != ""},
		PersonBID:   sql.NullString{String: rel.PersonBID, Valid: rel.PersonBID != ""},
		Type:        sql.NullString{String: string(rel.Type), Valid: rel.Type != ""},
		ReverseType: sql.NullString{String: string(rel.ReverseType), Valid: rel.ReverseType != ""},
		CreatedAt:   sql.NullTime{Time: rel.CreatedAt, Valid: !rel.CreatedAt.IsZero()},
	}
}

// ToRelationship converts a database row to a domain model
func ToRelationship(row *RelationshipRow) *models.Relationship {
	return &models.Relationship{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		PersonAID:   row.PersonAID.String,
		PersonBID:   row.PersonBID.String,
		Type:        models.RelationshipType(row.Type.String),
		ReverseType: models.RelationshipType(row.ReverseType.String),
		CreatedAt:   row.CreatedAt.Time,
	}
}

// ToRelationships converts a slice of database rows to domain models
func ToRelationships(rows []RelationshipRow) []*models.Relationship {
	relationships := make([]*models.Relationship, len(rows))
	for i, row := range rows {
		relationships[i] = ToRelationship(&row)
	}
	return relationships
}

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}
