package person

import (
	"database/sql"
	"time"

	"github.com/majeanson/family-social/pkg/database"
	"github.com/majeanson/family-social/pkg/models"
)

const (
	peopleTable = "people"
)

// PersonRow represents the database row for a person
type PersonRow struct {
	ID        sql.NullString                  `db:"id"`
	UserID    sql.NullString                  `db:"user_id"`
	FirstName sql.NullString                  `db:"first_name"`
	LastName  sql.NullString                  `db:"last_name"`
	Nickname  sql.NullString                  `db:"nickname"`
	Birthday  sql.NullTime                    `db:"birthday"`
	PhotoURL  sql.NullString                  `db:"photo_url"`
	Tags      database.JSONB[[]string]        `db:"tags"`
	Notes     sql.NullString                  `db:"notes"`
	Address   database.JSONB[*models.Address] `db:"address"`
	CreatedAt sql.NullTime                    `db:"created_at"`
	UpdatedAt sql.NullTime                    `db:"updated_at"`
}

var personStruct = database.NewStruct(new(PersonRow))

// FromPerson converts a domain model to a database row
func FromPerson(p *models.Person) *PersonRow {
	row := &PersonRow{
		ID:        sql.NullString{String: p.ID, Valid: p.ID != ""},
		UserID:    sql.NullString{String: p.UserID, Valid: p.UserID != ""},
		FirstName: sql.NullString{String: p.FirstName, Valid: p.FirstName != ""},
		LastName:  sql.NullString{String: p.LastName, Valid: p.LastName != ""},
		Nickname:  sql.NullString{String: p.Nickname, Valid: p.Nickname != ""},
		PhotoURL:  sql.NullString{String: p.PhotoURL, Valid: p.PhotoURL != ""},
		Tags:      database.JSONB[[]string]{Data: p.Tags},
		Notes:     sql.NullString{String: p.Notes, Valid: p.Notes != ""},
		Address:   database.JSONB[*models.Address]{Data: p.Address},
		CreatedAt: sql.NullTime{Time: p.CreatedAt, Valid: !p.CreatedAt.IsZero()},
		UpdatedAt: sql.NullTime{Time: p.UpdatedAt, Valid: !p.UpdatedAt.IsZero()},
	}
	if p.Birthday != nil {
		row.Birthday = sql.NullTime{Time: *p.Birthday, Valid: true}
	}
	return row
}

// ToPerson converts a database row to a domain model
func ToPerson(row *PersonRow) *models.Person {
	p := &models.Person{
		ID:        row.ID.String,
		UserID:    row.UserID.String,
		FirstName: row.FirstName.String,
		LastName:  row.LastName.String,
		Nickname:  row.Nickname.String,
		PhotoURL:  row.PhotoURL.String,
		Tags:      row.Tags.Data,
		Notes:     row.Notes.String,
		Address:   row.Address.Data,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
	if row.Birthday.Valid {
		birthday := row.Birthday.Time
		p.Birthday = &birthday
	}
	return p
}

// ToPeople converts a slice of database rows to domain models
func ToPeople(rows []PersonRow) []*models.Person {
	people := make([]*models.Person, len(rows))
	for i, row := range rows {
		people[i] = ToPerson(&row)
	}
	return people
}

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}
