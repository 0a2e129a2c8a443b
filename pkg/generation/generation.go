// Package generation infers a consistent generational ordering for the
// family tree: ancestors above the focus person, descendants below, spouses
// and siblings level with it.
package generation

import (
	"sort"
	"strings"

	"github.com/majeanson/family-social/pkg/graph"
	"github.com/majeanson/family-social/pkg/models"
)

// Assign computes the generation layout for one focus person. It is a pure
// function of its inputs and never mutates them.
//
// The traversal is breadth-first from the focus, marking people visited on
// enqueue so relationship cycles (sibling rings, in-law loops) terminate.
// Each edge label maps to a generation delta through the relationship trait
// table; the first assignment a person receives wins, even when a later
// path through a different edge type would disagree. That keeps the result
// stable and cheap at the cost of not resolving semantically conflicting
// paths, which small hand-entered graphs rarely contain.
//
// People unreachable from the focus (including people with no relationships
// at all) are pinned to generation 0 with DegreeUnreachable so they still
// render. An empty person set yields nil. A focus id that no longer exists
// falls back to the most connected person, then the first person.
func Assign(focusID string, people []*models.Person, relationships []*models.Relationship) *models.GenerationLayout {
	if len(people) == 0 {
		return nil
	}

	g := graph.New(people, relationships)

	if !g.Contains(focusID) {
		focusID = graph.MostConnected(people, relationships)
	}

	layout := &models.GenerationLayout{
		FocusID:     focusID,
		Generations: make(map[string]int, len(people)),
		Degrees:     make(map[string]int, len(people)),
		Extended:    make(map[string]bool),
		Rows:        make(map[int][]string),
	}

	type visit struct {
		id       string
		gen      int
		degree   int
		extended bool
	}

	visited := map[string]bool{focusID: true}
	queue := []visit{{id: focusID}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		layout.Generations[cur.id] = cur.gen
		layout.Degrees[cur.id] = cur.degree
		if cur.extended {
			layout.Extended[cur.id] = true
		}

		for _, edge := range g.Edges(cur.id) {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true

			traits := edge.Type.Traits()
			queue = append(queue, visit{
				id:     edge.To,
				gen:    cur.gen + traits.GenerationDelta,
				degree: cur.degree + 1,
				// Extended status sticks: anyone reached through a
				// social or unknown edge renders as extended family.
				extended: cur.extended || !traits.Family,
			})
		}
	}

	for _, p := range people {
		if !visited[p.ID] {
			layout.Generations[p.ID] = 0
			layout.Degrees[p.ID] = models.DegreeUnreachable
		}
	}

	for _, p := range people {
		gen := layout.Generations[p.ID]
		layout.Rows[gen] = append(layout.Rows[gen], p.ID)
	}

	for gen := range layout.Rows {
		sortRow(layout.Rows[gen], g)
	}

	return layout
}

// sortRow orders a generation row by last name then first name, case folded,
// so bands read deterministically left to right.
func sortRow(ids []string, g *graph.Graph) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := g.Person(ids[i]), g.Person(ids[j])
		al, bl := strings.ToLower(a.LastName), strings.ToLower(b.LastName)
		if al != bl {
			return al < bl
		}
		af, bf := strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)
		if af != bf {
			return af < bf
		}
		return a.ID < b.ID
	})
}
