package generation

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

func TestAssignEmpty(t *testing.T) {
	assert.Nil(t, Assign("anyone", nil, nil))
}

func TestAssignIsolatedFocus(t *testing.T) {
	people := []*models.Person{person("solo", "Ada", "Byron")}

	gl := Assign("solo", people, nil)
	require.NotNil(t, gl)

	assert.Equal(t, "solo", gl.FocusID)
	assert.Equal(t, 0, gl.Generations["solo"])
	assert.Equal(t, 0, gl.Degrees["solo"])
	assert.Equal(t, []string{"solo"}, gl.Rows[0])
}

func TestAssignSpouseAndChild(t *testing.T) {
	people := []*models.Person{
		person("f", "Frank", "Hall"),
		person("m", "Mona", "Hall"),
		person("c", "Chris", "Hall"),
	}
	relationships := []*models.Relationship{
		rel("f", "m", models.RelTypeSpouse),
		// From f's side, c is the child
		rel("f", "c", models.RelTypeChild),
	}

	gl := Assign("f", people, relationships)
	require.NotNil(t, gl)

	assert.Equal(t, 0, gl.Generations["f"])
	assert.Equal(t, 0, gl.Generations["m"])
	assert.Equal(t, 1, gl.Generations["c"])

	assert.Equal(t, 0, gl.Degrees["f"])
	assert.Equal(t, 1, gl.Degrees["m"])
	assert.Equal(t, 1, gl.Degrees["c"])
}

func TestAssignGrandparentIsTwoUp(t *testing.T) {
	people := []*models.Person{
		person("me", "Max", "Roy"),
		person("gp", "Gilles", "Roy"),
	}
	relationships := []*models.Relationship{
		rel("me", "gp", models.RelTypeGrandparent),
	}

	gl := Assign("me", people, relationships)
	require.NotNil(t, gl)

	assert.Equal(t, -2, gl.Generations["gp"])
}

func TestAssignChainOfParents(t *testing.T) {
	// p0 <- p1 <- ... <- p19, each the parent of the previous one
	var people []*models.Person
	var relationships []*models.Relationship
	ids := []string{"p00", "p01", "p02", "p03", "p04", "p05", "p06", "p07", "p08", "p09",
		"p10", "p11", "p12", "p13", "p14", "p15", "p16", "p17", "p18", "p19"}
	for i, id := range ids {
		people = append(people, person(id, "P", id))
		if i > 0 {
			relationships = append(relationships, rel(ids[i-1], id, models.RelTypeParent))
		}
	}

	gl := Assign("p00", people, relationships)
	require.NotNil(t, gl)

	for i, id := range ids {
		assert.Equal(t, -i, gl.Generations[id], "generation of %s", id)
		assert.Equal(t, i, gl.Degrees[id], "degree of %s", id)
	}
}

func TestAssignFirstVisitWins(t *testing.T) {
	// b is both a's spouse and, through c, reachable as c's parent. The
	// spouse edge is seen first from the focus, so b stays level with a.
	people := []*models.Person{
		person("a", "Анна", "K"),
		person("b", "Boris", "K"),
		person("c", "Carl", "K"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSpouse),
		rel("a", "c", models.RelTypeChild),
		rel("c", "b", models.RelTypeParent),
	}

	gl := Assign("a", people, relationships)
	require.NotNil(t, gl)

	assert.Equal(t, 0, gl.Generations["b"])
	assert.Equal(t, 1, gl.Generations["c"])
}

func TestAssignUnreachablePinnedToZero(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "L"),
		person("b", "Ben", "L"),
		person("x", "Xan", "Q"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSibling),
	}

	gl := Assign("a", people, relationships)
	require.NotNil(t, gl)

	assert.Equal(t, 0, gl.Generations["x"])
	assert.Equal(t, models.DegreeUnreachable, gl.Degrees["x"])
	assert.Contains(t, gl.Rows[0], "x")
}

func TestAssignExtendedThroughSocialEdge(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "L"),
		person("f", "Fred", "M"),
		person("fp", "Paula", "M"),
	}
	relationships := []*models.Relationship{
		rel("a", "f", models.RelTypeFriend),
		// Extended status sticks through later family edges
		rel("f", "fp", models.RelTypeParent),
	}

	gl := Assign("a", people, relationships)
	require.NotNil(t, gl)

	assert.False(t, gl.Extended["a"])
	assert.True(t, gl.Extended["f"])
	assert.True(t, gl.Extended["fp"])
	assert.Equal(t, -1, gl.Generations["fp"])
}

func TestAssignMissingFocusFallsBackToMostConnected(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "L"),
		person("hub", "Hugo", "L"),
		person("c", "Cleo", "L"),
	}
	relationships := []*models.Relationship{
		rel("hub", "a", models.RelTypeChild),
		rel("hub", "c", models.RelTypeChild),
	}

	gl := Assign("deleted", people, relationships)
	require.NotNil(t, gl)

	assert.Equal(t, "hub", gl.FocusID)
	assert.Equal(t, 0, gl.Generations["hub"])
}

func TestAssignIdempotent(t *testing.T) {
	people := []*models.Person{
		person("a", "Ada", "L"),
		person("b", "Ben", "L"),
		person("c", "Cleo", "L"),
	}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSpouse),
		rel("a", "c", models.RelTypeChild),
	}

	first := Assign("a", people, relationships)
	second := Assign("a", people, relationships)

	assert.Equal(t, first, second)
}

func TestAssignRowsSortedByName(t *testing.T) {
	people := []*models.Person{
		person("1", "zoe", "young"),
		person("2", "Al", "Young"),
		person("3", "Bea", "Abbott"),
	}
	relationships := []*models.Relationship{
		rel("1", "2", models.RelTypeSibling),
		rel("1", "3", models.RelTypeSibling),
	}

	gl := Assign("1", people, relationships)
	require.NotNil(t, gl)

	// Case-folded last name, then first name
	assert.Equal(t, []string{"3", "2", "1"}, gl.Rows[0])
}
