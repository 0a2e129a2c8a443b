package layout

import (
	"math"
	"testing"

	"github.com/majeanson/family-social/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRadialEmpty(t *testing.T) {
	assert.Nil(t, Radial(nil, nil, nil, DefaultConfig()))
}

func TestRadialCenterAtOrigin(t *testing.T) {
	people := []*models.Person{
		person("hub", "Hugo", "L"),
		person("a", "Ada", "L"),
	}
	relationships := []*models.Relationship{
		rel("hub", "a", models.RelTypeChild),
	}

	cfg := DefaultConfig()
	radial := Radial(people, relationships, nil, cfg)
	require.NotNil(t, radial)

	assert.Equal(t, "hub", radial.CenterID)

	center := radial.Nodes["hub"]
	assert.Equal(t, -cfg.NodeWidth/2, center.Pos.X)
	assert.Equal(t, -cfg.NodeHeight/2, center.Pos.Y)
}

func TestRadialPrimaryPersonWinsCenter(t *testing.T) {
	people := []*models.Person{
		person("hub", "Hugo", "L"),
		person("a", "Ada", "L"),
		person("b", "Ben", "L"),
	}
	relationships := []*models.Relationship{
		rel("hub", "a", models.RelTypeChild),
		rel("hub", "b", models.RelTypeChild),
	}

	settings := &models.UserSettings{PrimaryPersonID: "a"}
	radial := Radial(people, relationships, settings, DefaultConfig())
	require.NotNil(t, radial)

	assert.Equal(t, "a", radial.CenterID)
	assert.Equal(t, []string{"a"}, radial.Rings[0])
	assert.Equal(t, []string{"hub"}, radial.Rings[1])
	assert.Equal(t, []string{"b"}, radial.Rings[2])
}

func TestRadialRingsByHopCount(t *testing.T) {
	people := []*models.Person{
		person("c", "Cleo", "L"),
		person("r1", "Rae", "L"),
		person("r2", "Rob", "L"),
		person("far", "Fay", "L"),
		person("lost", "Lou", "Q"),
	}
	relationships := []*models.Relationship{
		rel("c", "r1", models.RelTypeChild),
		rel("c", "r2", models.RelTypeSibling),
		rel("r1", "far", models.RelTypeSpouse),
	}

	settings := &models.UserSettings{PrimaryPersonID: "c"}
	radial := Radial(people, relationships, settings, DefaultConfig())
	require.NotNil(t, radial)

	assert.Equal(t, []string{"c"}, radial.Rings[0])
	assert.ElementsMatch(t, []string{"r1", "r2"}, radial.Rings[1])
	assert.Equal(t, []string{"far"}, radial.Rings[2])
	// Unreachable people gather one ring beyond the farthest reachable one
	assert.Equal(t, []string{"lost"}, radial.Rings[3])
}

func TestRadialCrowdedRingGrows(t *testing.T) {
	cfg := DefaultConfig()

	// Enough people on ring 1 that MinNodeArc spacing needs a radius beyond
	// RingSpacing
	people := []*models.Person{person("c", "Cleo", "L")}
	var relationships []*models.Relationship
	ids := []string{"n01", "n02", "n03", "n04", "n05", "n06", "n07", "n08", "n09", "n10"}
	for _, id := range ids {
		people = append(people, person(id, "N", id))
		relationships = append(relationships, rel("c", id, models.RelTypeFriend))
	}

	settings := &models.UserSettings{PrimaryPersonID: "c"}
	radial := Radial(people, relationships, settings, cfg)
	require.NotNil(t, radial)

	wantRadius := float64(len(ids)) * cfg.MinNodeArc / (2 * math.Pi)
	require.Greater(t, wantRadius, cfg.RingSpacing)

	for _, id := range ids {
		node := radial.Nodes[id]
		cx := node.Pos.X + node.Width/2
		cy := node.Pos.Y + node.Height/2
		assert.InDelta(t, wantRadius, math.Hypot(cx, cy), 1e-9)
	}

	// Crowding never moves the center off the origin
	center := radial.Nodes["c"]
	assert.Equal(t, -cfg.NodeWidth/2, center.Pos.X)
	assert.Equal(t, -cfg.NodeHeight/2, center.Pos.Y)
}

func TestRadialConnectorsDottedForNonBlood(t *testing.T) {
	people := []*models.Person{
		person("c", "Cleo", "L"),
		person("p", "Pat", "L"),
		person("f", "Fred", "M"),
	}
	relationships := []*models.Relationship{
		rel("c", "p", models.RelTypeParent),
		rel("c", "f", models.RelTypeFriend),
	}

	settings := &models.UserSettings{PrimaryPersonID: "c"}
	radial := Radial(people, relationships, settings, DefaultConfig())
	require.NotNil(t, radial)

	byID := make(map[string]models.Connector)
	for _, conn := range radial.Connectors {
		byID[conn.RelationshipID] = conn
	}
	require.Len(t, byID, 2)

	assert.False(t, byID["c-p"].Dotted)
	assert.True(t, byID["c-f"].Dotted)
	// Straight lines: two points each
	assert.Len(t, byID["c-p"].Points, 2)
}
