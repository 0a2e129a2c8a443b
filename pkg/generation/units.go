package generation

import (
	"github.com/majeanson/family-social/pkg/models"
)

// GroupUnits partitions one generation row into family units: couples first,
// singles as one-person units, each with the children attributed to it in
// the next generation row. Every person in the row lands in exactly one
// unit, as primary or spouse; the assigned set guards double placement.
// Unit emission follows the row order, so a pre-sorted row yields a
// deterministic left-to-right layout.
//
// nextRow may be nil when the row is the bottom generation.
func GroupUnits(row []string, nextRow []string, relationships []*models.Relationship) []models.FamilyUnit {
	if len(row) == 0 {
		return nil
	}

	inRow := make(map[string]bool, len(row))
	for _, id := range row {
		inRow[id] = true
	}
	inNext := make(map[string]bool, len(nextRow))
	for _, id := range nextRow {
		inNext[id] = true
	}

	assigned := make(map[string]bool, len(row))
	units := make([]models.FamilyUnit, 0, len(row))

	for _, id := range row {
		if assigned[id] {
			continue
		}
		assigned[id] = true

		unit := models.FamilyUnit{PrimaryID: id}

		// Couples only pair within the same generation row, so a spouse
		// leveled elsewhere by a conflicting path can never be attached
		// twice.
		for _, rel := range relationships {
			if !rel.Involves(id) {
				continue
			}
			other := rel.Other(id)
			if assigned[other] || !inRow[other] {
				continue
			}
			if rel.TypeFrom(id).Traits().Couple {
				unit.SpouseID = other
				assigned[other] = true
				break
			}
		}

		if len(nextRow) > 0 {
			unit.ChildrenIDs = childrenOf(unit, inNext, nextRow, relationships)
		}

		units = append(units, unit)
	}

	return units
}

// childrenOf collects the union of child ids attributed to the unit's
// primary and spouse, restricted to the next generation row and emitted in
// that row's order.
func childrenOf(unit models.FamilyUnit, inNext map[string]bool, nextRow []string, relationships []*models.Relationship) []string {
	childSet := make(map[string]bool)

	parents := []string{unit.PrimaryID}
	if unit.HasSpouse() {
		parents = append(parents, unit.SpouseID)
	}

	for _, parent := range parents {
		for _, rel := range relationships {
			if !rel.Involves(parent) {
				continue
			}
			other := rel.Other(parent)
			if !inNext[other] {
				continue
			}
			if isChildEdge(rel.TypeFrom(parent)) {
				childSet[other] = true
			}
		}
	}

	if len(childSet) == 0 {
		return nil
	}

	children := make([]string, 0, len(childSet))
	for _, id := range nextRow {
		if childSet[id] {
			children = append(children, id)
		}
	}
	return children
}

// isChildEdge reports whether the label marks the neighbor as a child of
// the current person. Nieces and nephews also sit one generation down but
// belong to a different unit, so only direct and step children qualify.
func isChildEdge(t models.RelationshipType) bool {
	switch t {
	case models.RelTypeChild, models.RelTypeStepChild:
		return true
	}
	return false
}
