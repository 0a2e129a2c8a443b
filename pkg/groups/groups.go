// Package groups clusters people into family groups for color coding and
// filtering. Detection is connected components over family-type edges only;
// it is independent of the tree layout and never feeds generation
// assignment.
package groups

import (
	"fmt"

	"github.com/majeanson/family-social/pkg/graph"
	"github.com/majeanson/family-social/pkg/models"
)

// Detect partitions people into family groups. Purely social edges
// (friend, colleague) and unclassified types never join two people into a
// group; people without any family edge stay ungrouped.
//
// Detected groups get a stable id derived from their first-discovered
// member, a color by discovery order modulo the palette, and a default name
// from the representative surname. Persisted records rename detected groups
// and add fully custom ones; per-person overrides then move people between
// groups, superseding detection for that person only.
func Detect(
	people []*models.Person,
	relationships []*models.Relationship,
	settings *models.UserSettings,
	records []*models.FamilyGroupRecord,
	overrides []*models.FamilyGroupOverride,
) []models.FamilyGroup {
	palette := settings.EffectivePalette()
	g := graph.New(people, relationships)

	var result []models.FamilyGroup
	visited := make(map[string]bool, len(people))

	for _, p := range people {
		if visited[p.ID] {
			continue
		}

		component := familyComponent(p.ID, g, visited)
		if len(component) < 2 {
			continue
		}

		rep := g.Person(component[0])
		group := models.FamilyGroup{
			ID:         "fam-" + rep.ID,
			Name:       defaultName(rep, len(component)),
			ColorIndex: len(result) % len(palette),
			MemberIDs:  component,
		}
		result = append(result, group)
	}

	// Custom groups and renames of detected ones.
	for _, rec := range records {
		if rec.Custom {
			result = append(result, models.FamilyGroup{
				ID:         rec.ID,
				Name:       rec.Name,
				ColorIndex: len(result) % len(palette),
				Custom:     true,
			})
			continue
		}
		for i := range result {
			if result[i].ID == rec.ID {
				result[i].Name = rec.Name
				break
			}
		}
	}

	applyOverrides(result, overrides)

	return result
}

// familyComponent walks family-type edges breadth-first from a seed,
// returning every person in the component in discovery order.
func familyComponent(seed string, g *graph.Graph, visited map[string]bool) []string {
	visited[seed] = true
	component := []string{seed}

	for i := 0; i < len(component); i++ {
		for _, edge := range g.Edges(component[i]) {
			if visited[edge.To] || !edge.Type.Traits().Family {
				continue
			}
			visited[edge.To] = true
			component = append(component, edge.To)
		}
	}

	return component
}

// defaultName derives a group name: the representative surname when one
// exists, otherwise a member count.
func defaultName(rep *models.Person, size int) string {
	if rep.LastName != "" {
		return rep.LastName + " family"
	}
	return fmt.Sprintf("Family of %d", size)
}

// applyOverrides moves each pinned person out of whatever group detection
// put them in and into the override's target group. Overrides pointing at
// groups that no longer exist are ignored.
func applyOverrides(result []models.FamilyGroup, overrides []*models.FamilyGroupOverride) {
	for _, ov := range overrides {
		target := -1
		for i := range result {
			if result[i].ID == ov.GroupID {
				target = i
				break
			}
		}
		if target < 0 {
			continue
		}

		for i := range result {
			result[i].MemberIDs = remove(result[i].MemberIDs, ov.PersonID)
		}
		result[target].MemberIDs = append(result[target].MemberIDs, ov.PersonID)
	}
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
