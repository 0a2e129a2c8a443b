package models

import (
	"time"
)

// FamilyGroup is one detected (or user-created) cluster of people used for
// color coding and filtering. Detection runs over family-type edges only and
// is independent of the tree layout.
type FamilyGroup struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ColorIndex int      `json:"color_index"`
	MemberIDs  []string `json:"member_ids"`
	// Custom groups are created by the user rather than detected, and
	// survive with zero auto-detected members.
	Custom bool `json:"custom,omitempty"`
}

// FamilyGroupOverride pins one person to a group regardless of what
// detection finds for them.
type FamilyGroupOverride struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	PersonID  string    `json:"person_id" db:"person_id"`
	GroupID   string    `json:"group_id" db:"group_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FamilyGroupRecord is the persisted state for a group: custom groups and
// renames of detected groups. Detected groups without a record use their
// generated name and palette color.
type FamilyGroupRecord struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Custom    bool      `json:"custom" db:"custom"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateFamilyGroupRequest is the request body for creating a custom group
type CreateFamilyGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// RenameFamilyGroupRequest is the request body for renaming a group
type RenameFamilyGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

// SetGroupOverrideRequest pins a person to a group
type SetGroupOverrideRequest struct {
	PersonID string `json:"person_id" validate:"required"`
	GroupID  string `json:"group_id" validate:"required"`
}
