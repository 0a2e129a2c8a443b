package generation

import (
	"testing"

	"github.com/majeanson/family-social/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupUnitsEmptyRow(t *testing.T) {
	assert.Nil(t, GroupUnits(nil, nil, nil))
}

func TestGroupUnitsCoupleWithChildren(t *testing.T) {
	row := []string{"f", "m"}
	nextRow := []string{"c1", "c2"}
	relationships := []*models.Relationship{
		rel("f", "m", models.RelTypeSpouse),
		rel("f", "c1", models.RelTypeChild),
		rel("m", "c2", models.RelTypeChild),
	}

	units := GroupUnits(row, nextRow, relationships)
	require.Len(t, units, 1)

	assert.Equal(t, "f", units[0].PrimaryID)
	assert.Equal(t, "m", units[0].SpouseID)
	// Children are the union over both parents, in next-row order
	assert.Equal(t, []string{"c1", "c2"}, units[0].ChildrenIDs)
}

func TestGroupUnitsSinglesAndCouples(t *testing.T) {
	row := []string{"a", "b", "c"}
	relationships := []*models.Relationship{
		rel("b", "c", models.RelTypePartner),
	}

	units := GroupUnits(row, nil, relationships)
	require.Len(t, units, 2)

	assert.Equal(t, "a", units[0].PrimaryID)
	assert.False(t, units[0].HasSpouse())
	assert.Equal(t, "b", units[1].PrimaryID)
	assert.Equal(t, "c", units[1].SpouseID)
}

func TestGroupUnitsEveryPersonPlacedOnce(t *testing.T) {
	row := []string{"a", "b", "c", "d", "e"}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSpouse),
		rel("c", "d", models.RelTypeSpouse),
		// A second couple edge out of b must not double-place anyone
		rel("b", "c", models.RelTypePartner),
	}

	units := GroupUnits(row, nil, relationships)

	seen := make(map[string]int)
	for _, u := range units {
		seen[u.PrimaryID]++
		if u.HasSpouse() {
			seen[u.SpouseID]++
		}
	}

	for _, id := range row {
		assert.Equal(t, 1, seen[id], "person %s placed exactly once", id)
	}
}

func TestGroupUnitsSpouseMustShareRow(t *testing.T) {
	row := []string{"a"}
	relationships := []*models.Relationship{
		rel("a", "b", models.RelTypeSpouse),
	}

	// b sits in a different generation row, so a stays single
	units := GroupUnits(row, nil, relationships)
	require.Len(t, units, 1)
	assert.False(t, units[0].HasSpouse())
}

func TestGroupUnitsNieceNephewNotAChild(t *testing.T) {
	row := []string{"a"}
	nextRow := []string{"n"}
	relationships := []*models.Relationship{
		// n is a's niece: one generation down but not a's unit member
		rel("a", "n", models.RelTypeNieceNephew),
	}

	units := GroupUnits(row, nextRow, relationships)
	require.Len(t, units, 1)
	assert.Empty(t, units[0].ChildrenIDs)
}

func TestGroupUnitsStepChildCounts(t *testing.T) {
	row := []string{"a"}
	nextRow := []string{"s"}
	relationships := []*models.Relationship{
		rel("a", "s", models.RelTypeStepChild),
	}

	units := GroupUnits(row, nextRow, relationships)
	require.Len(t, units, 1)
	assert.Equal(t, []string{"s"}, units[0].ChildrenIDs)
}
