package graph

import (
	"testing"

	"github.com/majeanson/family-social/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func person(id string) *models.Person {
	return &models.Person{ID: id, FirstName: id}
}

func TestNewBuildsBidirectionalEdges(t *testing.T) {
	people := []*models.Person{person("a"), person("b")}
	relationships := []*models.Relationship{
		{ID: "1", PersonAID: "a", PersonBID: "b", Type: models.RelTypeParent, ReverseType: models.RelTypeChild},
	}

	g := New(people, relationships)

	require.Len(t, g.Edges("a"), 1)
	require.Len(t, g.Edges("b"), 1)

	// Per-direction labels: b is a's parent, a is b's child
	assert.Equal(t, models.RelTypeParent, g.Edges("a")[0].Type)
	assert.Equal(t, models.RelTypeChild, g.Edges("b")[0].Type)
}

func TestNewSkipsDanglingEdges(t *testing.T) {
	people := []*models.Person{person("a")}
	relationships := []*models.Relationship{
		{ID: "1", PersonAID: "a", PersonBID: "ghost", Type: models.RelTypeSibling},
		{ID: "2", PersonAID: "a", PersonBID: "a", Type: models.RelTypeSibling},
	}

	g := New(people, relationships)
	assert.Empty(t, g.Edges("a"))
}

func TestMostConnected(t *testing.T) {
	people := []*models.Person{person("a"), person("hub"), person("c")}
	relationships := []*models.Relationship{
		{ID: "1", PersonAID: "hub", PersonBID: "a"},
		{ID: "2", PersonAID: "hub", PersonBID: "c"},
	}

	assert.Equal(t, "hub", MostConnected(people, relationships))

	// Ties break toward the earlier person
	assert.Equal(t, "a", MostConnected(people, []*models.Relationship{{ID: "1", PersonAID: "a", PersonBID: "c"}}))

	assert.Equal(t, "", MostConnected(nil, nil))
}
