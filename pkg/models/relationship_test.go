package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationshipTypeTraits(t *testing.T) {
	tests := []struct {
		name   string
		typ    RelationshipType
		delta  int
		family bool
		blood  bool
	}{
		{name: "parent is one generation up", typ: RelTypeParent, delta: -1, family: true, blood: true},
		{name: "child is one generation down", typ: RelTypeChild, delta: 1, family: true, blood: true},
		{name: "grandparent is two generations up", typ: RelTypeGrandparent, delta: -2, family: true, blood: true},
		{name: "grandchild is two generations down", typ: RelTypeGrandchild, delta: 2, family: true, blood: true},
		{name: "spouse stays level", typ: RelTypeSpouse, delta: 0, family: true, blood: false},
		{name: "sibling stays level", typ: RelTypeSibling, delta: 0, family: true, blood: true},
		{name: "aunt or uncle is one generation up", typ: RelTypeAuntUncle, delta: -1, family: true, blood: true},
		{name: "step parent is non-blood family", typ: RelTypeStepParent, delta: -1, family: true, blood: false},
		{name: "parent in law is non-blood family", typ: RelTypeParentInLaw, delta: -1, family: true, blood: false},
		{name: "friend is not family", typ: RelTypeFriend, delta: 0, family: false, blood: false},
		{name: "colleague is not family", typ: RelTypeColleague, delta: 0, family: false, blood: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traits := tt.typ.Traits()
			assert.Equal(t, tt.delta, traits.GenerationDelta)
			assert.Equal(t, tt.family, traits.Family)
			assert.Equal(t, tt.blood, traits.Blood)
		})
	}
}

func TestRelationshipTypeStepParentIsNotParent(t *testing.T) {
	// Dispatch is exact-match: a step parent must never inherit the blood
	// parent's traits.
	assert.False(t, RelTypeStepParent.Traits().Blood)
	assert.True(t, RelTypeParent.Traits().Blood)
}

func TestRelationshipTypeUnknownFallsBack(t *testing.T) {
	traits := RelationshipType("godparent").Traits()
	assert.Equal(t, DefaultTraits, traits)
	assert.False(t, RelationshipType("godparent").IsKnown())
}

func TestRelationshipTypeInverse(t *testing.T) {
	assert.Equal(t, RelTypeChild, RelTypeParent.Inverse())
	assert.Equal(t, RelTypeParent, RelTypeChild.Inverse())
	assert.Equal(t, RelTypeGrandchild, RelTypeGrandparent.Inverse())
	assert.Equal(t, RelTypeNieceNephew, RelTypeAuntUncle.Inverse())
	assert.Equal(t, RelTypeSpouse, RelTypeSpouse.Inverse())
	assert.Equal(t, RelTypeSibling, RelTypeSibling.Inverse())

	// Unknown types invert to themselves
	assert.Equal(t, RelationshipType("godparent"), RelationshipType("godparent").Inverse())
}

func TestRelationshipTypeIsSymmetric(t *testing.T) {
	assert.True(t, RelTypeSpouse.IsSymmetric())
	assert.True(t, RelTypeCousin.IsSymmetric())
	assert.False(t, RelTypeParent.IsSymmetric())
	assert.False(t, RelTypeGrandchild.IsSymmetric())
}

func TestRelationshipNormalize(t *testing.T) {
	rel := &Relationship{PersonAID: "a", PersonBID: "b", Type: RelTypeParent}
	rel.Normalize()
	assert.Equal(t, RelTypeChild, rel.ReverseType)

	// An explicit reverse type is kept
	rel = &Relationship{PersonAID: "a", PersonBID: "b", Type: RelTypeParent, ReverseType: RelTypeStepChild}
	rel.Normalize()
	assert.Equal(t, RelTypeStepChild, rel.ReverseType)

	rel = &Relationship{PersonAID: "a", PersonBID: "b", Type: RelTypeSpouse}
	rel.Normalize()
	assert.Equal(t, RelTypeSpouse, rel.ReverseType)
}

func TestRelationshipTypeFrom(t *testing.T) {
	rel := &Relationship{PersonAID: "a", PersonBID: "b", Type: RelTypeParent, ReverseType: RelTypeChild}

	// From a's side b is the parent; from b's side a is the child
	assert.Equal(t, RelTypeParent, rel.TypeFrom("a"))
	assert.Equal(t, RelTypeChild, rel.TypeFrom("b"))

	// Without a reverse type both sides read the forward label
	rel = &Relationship{PersonAID: "a", PersonBID: "b", Type: RelTypeSibling}
	assert.Equal(t, RelTypeSibling, rel.TypeFrom("b"))
}

func TestRelationshipOtherAndInvolves(t *testing.T) {
	rel := &Relationship{PersonAID: "a", PersonBID: "b"}
	assert.Equal(t, "b", rel.Other("a"))
	assert.Equal(t, "a", rel.Other("b"))
	assert.Equal(t, "", rel.Other("c"))
	assert.True(t, rel.Involves("a"))
	assert.False(t, rel.Involves("c"))
}

func TestPersonDisplayName(t *testing.T) {
	p := &Person{FirstName: "Marie", LastName: "Jeanson"}
	assert.Equal(t, "Marie Jeanson", p.DisplayName())

	p.Nickname = "Mimi"
	assert.Equal(t, "Mimi", p.DisplayName())

	p = &Person{FirstName: "Marie"}
	assert.Equal(t, "Marie", p.DisplayName())
}

func TestUserSettingsDefaults(t *testing.T) {
	var s *UserSettings
	assert.Equal(t, DefaultPalette, s.EffectivePalette())
	assert.Equal(t, DefaultTypeColors[RelTypeSpouse], s.ColorForType(RelTypeSpouse))
	assert.Equal(t, DefaultTypeColors[RelTypeOther], s.ColorForType("godparent"))

	s = &UserSettings{
		Palette:    []string{"#111111"},
		TypeColors: map[RelationshipType]string{RelTypeSpouse: "#abcdef"},
	}
	assert.Equal(t, []string{"#111111"}, s.EffectivePalette())
	assert.Equal(t, "#abcdef", s.ColorForType(RelTypeSpouse))
	assert.Equal(t, DefaultTypeColors[RelTypeParent], s.ColorForType(RelTypeParent))
}

func TestGenerationLayoutRowNumbers(t *testing.T) {
	gl := &GenerationLayout{Rows: map[int][]string{2: {"d"}, -1: {"a"}, 0: {"b", "c"}}}
	assert.Equal(t, []int{-1, 0, 2}, gl.RowNumbers())
}
