package models

import (
	"time"
)

// DefaultPalette is the built-in family-group color cycle, used whenever the
// user has not configured one. Colors are assigned by discovery order modulo
// palette size.
var DefaultPalette = []string{
	"#e74c3c", "#3498db", "#2ecc71", "#f39c12",
	"#9b59b6", "#1abc9c", "#e67e22", "#34495e",
}

// DefaultTypeColors is the built-in connector color per relationship type.
// Types without an entry fall back to the "other" color.
var DefaultTypeColors = map[RelationshipType]string{
	RelTypeParent:      "#2c3e50",
	RelTypeChild:       "#2c3e50",
	RelTypeSpouse:      "#c0392b",
	RelTypePartner:     "#c0392b",
	RelTypeSibling:     "#2980b9",
	RelTypeGrandparent: "#7f8c8d",
	RelTypeGrandchild:  "#7f8c8d",
	RelTypeFriend:      "#27ae60",
	RelTypeColleague:   "#16a085",
	RelTypeOther:       "#95a5a6",
}

// UserSettings holds the per-user configuration consumed by the layout and
// grouping passes.
type UserSettings struct {
	UserID string `json:"user_id" db:"user_id"`
	// PrimaryPersonID is the person treated as "me": the focus fallback
	// and the center of the radial view when set.
	PrimaryPersonID string `json:"primary_person_id,omitempty" db:"primary_person_id"`
	// Palette overrides DefaultPalette when non-empty.
	Palette []string `json:"palette,omitempty" db:"palette"`
	// TypeColors overrides DefaultTypeColors per relationship type.
	TypeColors map[RelationshipType]string `json:"type_colors,omitempty" db:"type_colors"`
	CreatedAt  time.Time                   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at" db:"updated_at"`
}

// EffectivePalette returns the configured palette or the built-in default.
func (s *UserSettings) EffectivePalette() []string {
	if s != nil && len(s.Palette) > 0 {
		return s.Palette
	}
	return DefaultPalette
}

// ColorForType resolves a connector color: user override, then built-in
// per-type default, then the "other" color.
func (s *UserSettings) ColorForType(t RelationshipType) string {
	if s != nil {
		if c, ok := s.TypeColors[t]; ok && c != "" {
			return c
		}
	}
	if c, ok := DefaultTypeColors[t]; ok {
		return c
	}
	return DefaultTypeColors[RelTypeOther]
}

// UpdateSettingsRequest is the request body for updating user settings
type UpdateSettingsRequest struct {
	PrimaryPersonID *string                      `json:"primary_person_id,omitempty"`
	Palette         *[]string                    `json:"palette,omitempty"`
	TypeColors      *map[RelationshipType]string `json:"type_colors,omitempty"`
}
