package models

import (
	"time"
)

// Address is an optional postal address attached to a person.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Person is the canonical record for one person in the family graph.
// Everything else references people by ID; derived structures never embed
// a Person by value.
type Person struct {
	ID        string     `json:"id" db:"id"`
	UserID    string     `json:"user_id" db:"user_id"`
	FirstName string     `json:"first_name" db:"first_name" validate:"required"`
	LastName  string     `json:"last_name,omitempty" db:"last_name"`
	Nickname  string     `json:"nickname,omitempty" db:"nickname"`
	// Birthday carries a date only; the time component is always midnight UTC.
	Birthday  *time.Time `json:"birthday,omitempty" db:"birthday"`
	PhotoURL  string     `json:"photo_url,omitempty" db:"photo_url"`
	Tags      []string   `json:"tags,omitempty" db:"tags"`
	Notes     string     `json:"notes,omitempty" db:"notes"`
	Address   *Address   `json:"address,omitempty" db:"address"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the name to render on a card: nickname when set,
// otherwise "First Last".
func (p *Person) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// CreatePersonRequest is the request body for creating a person
type CreatePersonRequest struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name,omitempty"`
	Nickname  string   `json:"nickname,omitempty"`
	Birthday  string   `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PhotoURL  string   `json:"photo_url,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Address   *Address `json:"address,omitempty"`
}

// UpdatePersonRequest is the request body for updating a person
type UpdatePersonRequest struct {
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Nickname  *string   `json:"nickname,omitempty"`
	Birthday  *string   `json:"birthday,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Address   *Address  `json:"address,omitempty"`
}
