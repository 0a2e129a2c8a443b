package models

import (
	"time"
)

// RelationshipType is the closed set of edge labels between two people.
// Labels are directional: the type on an edge A->B describes what B is to A
// (A's "parent" edge means B is A's parent).
type RelationshipType string

const (
	RelTypeParent       RelationshipType = "parent"
	RelTypeChild        RelationshipType = "child"
	RelTypeSpouse       RelationshipType = "spouse"
	RelTypePartner      RelationshipType = "partner"
	RelTypeSibling      RelationshipType = "sibling"
	RelTypeGrandparent  RelationshipType = "grandparent"
	RelTypeGrandchild   RelationshipType = "grandchild"
	RelTypeAuntUncle    RelationshipType = "aunt_uncle"
	RelTypeNieceNephew  RelationshipType = "niece_nephew"
	RelTypeCousin       RelationshipType = "cousin"
	RelTypeParentInLaw  RelationshipType = "parent_in_law"
	RelTypeChildInLaw   RelationshipType = "child_in_law"
	RelTypeSiblingInLaw RelationshipType = "sibling_in_law"
	RelTypeStepParent   RelationshipType = "step_parent"
	RelTypeStepChild    RelationshipType = "step_child"
	RelTypeStepSibling  RelationshipType = "step_sibling"
	RelTypeFriend       RelationshipType = "friend"
	RelTypeColleague    RelationshipType = "colleague"
	RelTypeOther        RelationshipType = "other"
)

// RelationshipTraits describes how one relationship type behaves during
// generation assignment, family-group detection and connector rendering.
// Unknown types fall back to DefaultTraits (same generation, non-family).
type RelationshipTraits struct {
	// GenerationDelta is the generation of the neighbor relative to the
	// current person: negative is up (ancestors), positive is down.
	GenerationDelta int
	// Family edges participate in family-group detection. Social edges
	// (friend, colleague) do not.
	Family bool
	// Blood edges render with solid connectors; non-blood family edges
	// (in-law, step) render dotted.
	Blood bool
	// Couple marks the spouse/partner types used for family unit pairing.
	Couple bool
	// Sibling marks the types drawn with an arc connector.
	Sibling bool
}

// DefaultTraits is applied to unrecognized or free-text relationship types:
// same generation, rendered as extended/non-blood, never grouped as family.
var DefaultTraits = RelationshipTraits{}

// traitsTable is the exhaustive dispatch table for the closed enum. It
// replaces substring classification so "step_parent" can never be
// misread as "parent".
var traitsTable = map[RelationshipType]RelationshipTraits{
	RelTypeParent:       {GenerationDelta: -1, Family: true, Blood: true},
	RelTypeChild:        {GenerationDelta: 1, Family: true, Blood: true},
	RelTypeSpouse:       {Family: true, Couple: true},
	RelTypePartner:      {Family: true, Couple: true},
	RelTypeSibling:      {Family: true, Blood: true, Sibling: true},
	RelTypeGrandparent:  {GenerationDelta: -2, Family: true, Blood: true},
	RelTypeGrandchild:   {GenerationDelta: 2, Family: true, Blood: true},
	RelTypeAuntUncle:    {GenerationDelta: -1, Family: true, Blood: true},
	RelTypeNieceNephew:  {GenerationDelta: 1, Family: true, Blood: true},
	RelTypeCousin:       {Family: true, Blood: true},
	RelTypeParentInLaw:  {GenerationDelta: -1, Family: true},
	RelTypeChildInLaw:   {GenerationDelta: 1, Family: true},
	RelTypeSiblingInLaw: {Family: true},
	RelTypeStepParent:   {GenerationDelta: -1, Family: true},
	RelTypeStepChild:    {GenerationDelta: 1, Family: true},
	RelTypeStepSibling:  {Family: true, Sibling: true},
	RelTypeFriend:       {},
	RelTypeColleague:    {},
	RelTypeOther:        {},
}

// inverseTable maps each asymmetric type to the label seen from the other
// endpoint. Symmetric types map to themselves.
var inverseTable = map[RelationshipType]RelationshipType{
	RelTypeParent:       RelTypeChild,
	RelTypeChild:        RelTypeParent,
	RelTypeGrandparent:  RelTypeGrandchild,
	RelTypeGrandchild:   RelTypeGrandparent,
	RelTypeAuntUncle:    RelTypeNieceNephew,
	RelTypeNieceNephew:  RelTypeAuntUncle,
	RelTypeParentInLaw:  RelTypeChildInLaw,
	RelTypeChildInLaw:   RelTypeParentInLaw,
	RelTypeStepParent:   RelTypeStepChild,
	RelTypeStepChild:    RelTypeStepParent,
	RelTypeSpouse:       RelTypeSpouse,
	RelTypePartner:      RelTypePartner,
	RelTypeSibling:      RelTypeSibling,
	RelTypeCousin:       RelTypeCousin,
	RelTypeSiblingInLaw: RelTypeSiblingInLaw,
	RelTypeStepSibling:  RelTypeStepSibling,
	RelTypeFriend:       RelTypeFriend,
	RelTypeColleague:    RelTypeColleague,
	RelTypeOther:        RelTypeOther,
}

// Traits returns the behavior of a relationship type. Unknown types get
// DefaultTraits instead of an error so free-text data never blocks layout.
func (t RelationshipType) Traits() RelationshipTraits {
	if traits, ok := traitsTable[t]; ok {
		return traits
	}
	return DefaultTraits
}

// Inverse returns the label seen from the opposite endpoint.
func (t RelationshipType) Inverse() RelationshipType {
	if inv, ok := inverseTable[t]; ok {
		return inv
	}
	return t
}

// IsKnown reports whether the type is part of the closed enum.
func (t RelationshipType) IsKnown() bool {
	_, ok := traitsTable[t]
	return ok
}

// IsSymmetric reports whether the label reads the same from both endpoints.
func (t RelationshipType) IsSymmetric() bool {
	return t.Inverse() == t
}

// Relationship is an edge between exactly two distinct people. It is
// logically symmetric with asymmetric labels: Type is the label seen from
// PersonA, ReverseType the label seen from PersonB. ReverseType is filled
// at write time (inverse for asymmetric types, Type itself for symmetric
// ones) so traversal never has to guess.
type Relationship struct {
	ID          string           `json:"id" db:"id"`
	UserID      string           `json:"user_id" db:"user_id"`
	PersonAID   string           `json:"person_a_id" db:"person_a_id"`
	PersonBID   string           `json:"person_b_id" db:"person_b_id"`
	Type        RelationshipType `json:"type" db:"type"`
	ReverseType RelationshipType `json:"reverse_type,omitempty" db:"reverse_type"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

// TypeFrom returns the label describing the other endpoint as seen from
// personID. Falls back to Type unchanged when ReverseType was never set.
func (r *Relationship) TypeFrom(personID string) RelationshipType {
	if personID == r.PersonBID {
		if r.ReverseType != "" {
			return r.ReverseType
		}
		return r.Type
	}
	return r.Type
}

// Other returns the opposite endpoint id, or "" when personID is not an
// endpoint of this relationship.
func (r *Relationship) Other(personID string) string {
	switch personID {
	case r.PersonAID:
		return r.PersonBID
	case r.PersonBID:
		return r.PersonAID
	}
	return ""
}

// Involves reports whether personID is one of the two endpoints.
func (r *Relationship) Involves(personID string) bool {
	return r.PersonAID == personID || r.PersonBID == personID
}

// Normalize fills ReverseType when the caller omitted it.
func (r *Relationship) Normalize() {
	if r.ReverseType == "" {
		r.ReverseType = r.Type.Inverse()
	}
}

// CreateRelationshipRequest is the request body for creating a relationship
type CreateRelationshipRequest struct {
	PersonAID   string           `json:"person_a_id" validate:"required"`
	PersonBID   string           `json:"person_b_id" validate:"required"`
	Type        RelationshipType `json:"type" validate:"required"`
	ReverseType RelationshipType `json:"reverse_type,omitempty"`
}
