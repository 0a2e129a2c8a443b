package groups

import (
	"testing"

	"github.com/majeanson/family-social/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func person(id, first, last string) *models.Person {
	return &models.Person{ID: id, FirstName: first, LastName: last}
}

func rel(a, b string, typ models.RelationshipType) *models.Relationship {
	r := &models.Relationship{ID: a + "-" + b, PersonAID: a, PersonBID: b, Type: typ}
	r.Normalize()
	return r
}

func TestDetectFamilyComponents(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "Hall"),
		person("b", "Ben", "Hall"),
		person("c", "Cleo", "Ward"),
		person("d", "Dan", "Ward"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSibling),
		rel("c", "d", models.RelTypeSpouse),
	}

	result := Detect(people, relationships, nil, nil, nil)
	require.Len(t, result, 2)

	assert.Equal(t, "fam-a", result[0].ID)
	assert.Equal(t, "Hall family", result[0].Name)
	assert.ElementsMatch(t, []string{"a", "b"}, result[0].MemberIDs)
	assert.Equal(t, 0, result[0].ColorIndex)

	assert.Equal(t, "fam-c", result[1].ID)
	assert.Equal(t, "Ward family", result[1].Name)
	assert.Equal(t, 1, result[1].ColorIndex)
}

func TestDetectSocialEdgesDoNotGroup(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "Hall"),
		person("f", "Fred", "Ward"),
	}
	relationships := []*models.Relationship{
		rel("a", "f", models.RelTypeFriend),
	}

	assert.Empty(t, Detect(people, relationships, nil, nil, nil))
}

func TestDetectSingletonsNotGrouped(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "Hall"),
		person("b", "Ben", "Ward"),
	}

	assert.Empty(t, Detect(people, nil, nil, nil, nil))
}

func TestDetectInLawsBridgeGroups(t *testing.T) {
	// Non-blood family edges still connect components
	people := []*models.Person{
		person("a", "Ada", "Hall"),
		person("b", "Ben", "Ward"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSiblingInLaw),
	}

	result := Detect(people, relationships, nil, nil, nil)
	require.Len(t, result, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, result[0].MemberIDs)
}

func TestDetectNoSurnameFallsBackToCount(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", ""),
		person("b", "Ben", ""),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSibling),
	}

	result := Detect(people, relationships, nil, nil, nil)
	require.Len(t, result, 1)
	assert.Equal(t, "Family of 2", result[0].Name)
}

func TestDetectRecordsRenameAndAddCustom(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "Hall"),
		person("b", "Ben", "Hall"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSibling),
	}
	records := []*models.FamilyGroupRecord{
		{ID: "fam-a", Name: "The Halls"},
		{ID: "club", Name: "Book club", Custom: true},
	}

	result := Detect(people, relationships, nil, records, nil)
	require.Len(t, result, 2)

	assert.Equal(t, "The Halls", result[0].Name)

	assert.Equal(t, "club", result[1].ID)
	assert.True(t, result[1].Custom)
	assert.Empty(t, result[1].MemberIDs)
}

func TestDetectOverridesMovePeople(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "Hall"),
		person("b", "Ben", "Hall"),
		person("c", "Cleo", "Ward"),
		person("d", "Dan", "Ward"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSibling),
		rel("c", "d", models.RelTypeSpouse),
	}
	overrides := []*models.FamilyGroupOverride{
		{PersonID: "b", GroupID: "fam-c"},
	}

	result := Detect(people, relationships, nil, nil, overrides)
	require.Len(t, result, 2)

	assert.Equal(t, []string{"a"}, result[0].MemberIDs)
	assert.ElementsMatch(t, []string{"c", "d", "b"}, result[1].MemberIDs)
}

func TestDetectStaleOverrideIgnored(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "Hall"),
		person("b", "Ben", "Hall"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSibling),
	}
	overrides := []*models.FamilyGroupOverride{
		{PersonID: "b", GroupID: "fam-gone"},
	}

	result := Detect(people, relationships, nil, nil, overrides)
	require.Len(t, result, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, result[0].MemberIDs)
}

func TestDetectColorCyclesThroughPalette(t *testing.T) {
	settings := &models.UserSettings{Palette: []string{"#111", "#222"}}

	var people []*models.Person
	var relationships []*models.Relationship
	pairs := [][2]string{{"a1", "a2"}, {"b1", "b2"}, {"c1", "c2"}}
	for _, pair := range pairs {
		people = append(people, person(pair[0], "P", ""), person(pair[1], "Q", ""))
		relationships = append(relationships, rel(pair[0], pair[1], models.RelTypeSibling))
	}

	result := Detect(people, relationships, settings, nil, nil)
	require.Len(t, result, 3)

	assert.Equal(t, 0, result[0].ColorIndex)
	assert.Equal(t, 1, result[1].ColorIndex)
	// Third group wraps around the two-color palette
	assert.Equal(t, 0, result[2].ColorIndex)
}
