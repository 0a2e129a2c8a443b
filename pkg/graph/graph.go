// Package graph builds the in-memory adjacency substrate that the
// generation, grouping and layout passes traverse. All structures here are
// snapshots: they never mutate the person or relationship slices they were
// built from.
package graph

import (
	"github.com/majeanson/family-social/pkg/models"
)

// Edge is one directed half of a relationship as seen from a given person:
// To is the neighbor, Type the label describing the neighbor.
type Edge struct {
	To           string
	Type         models.RelationshipType
	Relationship *models.Relationship
}

// Graph is a bidirectional adjacency list over a person/relationship
// snapshot. Each relationship contributes two directed edges with
// per-direction labels.
type Graph struct {
	people    map[string]*models.Person
	adjacency map[string][]Edge
}

// New builds a graph from a snapshot. Relationships whose endpoints are not
// both present in the person set are skipped: the store cascades deletes,
// but a stale edge must degrade to "not drawn", never to a failure.
func New(people []*models.Person, relationships []*models.Relationship) *Graph {
	g := &Graph{
		people:    make(map[string]*models.Person, len(people)),
		adjacency: make(map[string][]Edge, len(people)),
	}

	for _, p := range people {
		g.people[p.ID] = p
	}

	for _, rel := range relationships {
		if rel.PersonAID == rel.PersonBID {
			continue
		}
		if g.people[rel.PersonAID] == nil || g.people[rel.PersonBID] == nil {
			continue
		}

		g.adjacency[rel.PersonAID] = append(g.adjacency[rel.PersonAID], Edge{
			To:           rel.PersonBID,
			Type:         rel.TypeFrom(rel.PersonAID),
			Relationship: rel,
		})
		g.adjacency[rel.PersonBID] = append(g.adjacency[rel.PersonBID], Edge{
			To:           rel.PersonAID,
			Type:         rel.TypeFrom(rel.PersonBID),
			Relationship: rel,
		})
	}

	return g
}

// Person returns the person for an id, or nil.
func (g *Graph) Person(id string) *models.Person {
	return g.people[id]
}

// Contains reports whether the person id is part of the snapshot.
func (g *Graph) Contains(id string) bool {
	return g.people[id] != nil
}

// Edges returns the outgoing edges for a person.
func (g *Graph) Edges(id string) []Edge {
	return g.adjacency[id]
}

// Size returns the number of people in the snapshot.
func (g *Graph) Size() int {
	return len(g.people)
}

// Degree returns the number of relationships touching a person.
func (g *Graph) Degree(id string) int {
	return len(g.adjacency[id])
}

// MostConnected returns the person id with the most relationships,
// breaking ties toward the earlier person in the input order. Returns ""
// for an empty graph.
func MostConnected(people []*models.Person, relationships []*models.Relationship) string {
	if len(people) == 0 {
		return ""
	}

	counts := make(map[string]int, len(people))
	for _, rel := range relationships {
		counts[rel.PersonAID]++
		counts[rel.PersonBID]++
	}

	best := people[0].ID
	bestCount := counts[best]
	for _, p := range people[1:] {
		if counts[p.ID] > bestCount {
			best = p.ID
			bestCount = counts[p.ID]
		}
	}

	return best
}
