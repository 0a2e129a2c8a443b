package layout

import (
	"math"

	"github.com/majeanson/family-social/pkg/graph"
	"github.com/majeanson/family-social/pkg/models"
)

// Radial computes the concentric-ring layout for the graph view. The
// designated primary person (or, failing that, the most connected person)
// sits at the origin; BFS hop count from the center picks the ring, and
// each ring spreads its population evenly around the circle.
//
// A ring's radius starts at ringIndex*RingSpacing and grows whenever the
// population would otherwise pack cards closer than MinNodeArc along the
// circumference: radius = max(indexRadius, n*MinNodeArc/2π).
//
// People with no path to the center gather on one extra outermost ring.
func Radial(people []*models.Person, relationships []*models.Relationship, settings *models.UserSettings, cfg Config) *models.RadialLayout {
	if len(people) == 0 {
		return nil
	}

	centerID := ""
	if settings != nil {
		centerID = settings.PrimaryPersonID
	}

	g := graph.New(people, relationships)
	if !g.Contains(centerID) {
		centerID = graph.MostConnected(people, relationships)
	}

	rings := ringsFrom(centerID, people, g)

	radial := &models.RadialLayout{
		CenterID: centerID,
		Nodes:    make(map[string]models.PersonNode, len(people)),
		Rings:    rings,
	}

	maxRing := 0
	for ring := range rings {
		if ring > maxRing {
			maxRing = ring
		}
	}

	for ring := 0; ring <= maxRing; ring++ {
		ids := rings[ring]
		if len(ids) == 0 {
			continue
		}

		radius := float64(ring) * cfg.RingSpacing
		// Overlap needs at least two nodes on the ring; the center must
		// stay at the origin.
		if len(ids) > 1 {
			if crowded := float64(len(ids)) * cfg.MinNodeArc / (2 * math.Pi); crowded > radius {
				radius = crowded
			}
		}

		step := 2 * math.Pi / float64(len(ids))
		for i, id := range ids {
			angle := float64(i) * step
			cx := radius * math.Cos(angle)
			cy := radius * math.Sin(angle)

			radial.Nodes[id] = models.PersonNode{
				PersonID: id,
				Pos: models.Position{
					X: cx - cfg.NodeWidth/2,
					Y: cy - cfg.NodeHeight/2,
				},
				Width:  cfg.NodeWidth,
				Height: cfg.NodeHeight,
			}
		}
	}

	radial.Connectors = radialConnectors(radial.Nodes, relationships, settings)

	return radial
}

// ringsFrom layers people by BFS hop count from the center. Unreachable
// people land together one ring beyond the farthest reachable one.
func ringsFrom(centerID string, people []*models.Person, g *graph.Graph) map[int][]string {
	rings := make(map[int][]string)

	type visit struct {
		id   string
		ring int
	}

	visited := map[string]bool{centerID: true}
	queue := []visit{{id: centerID}}
	maxRing := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		rings[cur.ring] = append(rings[cur.ring], cur.id)
		if cur.ring > maxRing {
			maxRing = cur.ring
		}

		for _, edge := range g.Edges(cur.id) {
			if visited[edge.To] {
				continue
			}
			visited[edge.To] = true
			queue = append(queue, visit{id: edge.To, ring: cur.ring + 1})
		}
	}

	for _, p := range people {
		if !visited[p.ID] {
			rings[maxRing+1] = append(rings[maxRing+1], p.ID)
		}
	}

	return rings
}

// radialConnectors draws straight card-center to card-center lines, dotted
// for non-blood and unclassified types.
func radialConnectors(nodes map[string]models.PersonNode, relationships []*models.Relationship, settings *models.UserSettings) []models.Connector {
	connectors := make([]models.Connector, 0, len(relationships))

	for _, rel := range relationships {
		a, okA := nodes[rel.PersonAID]
		b, okB := nodes[rel.PersonBID]
		if !okA || !okB {
			continue
		}

		typ := rel.TypeFrom(rel.PersonAID)
		traits := typ.Traits()

		kind := models.ConnectorExtended
		if traits.Couple {
			kind = models.ConnectorSpouse
		} else if traits.Blood {
			kind = models.ConnectorParentChild
		}

		connectors = append(connectors, models.Connector{
			RelationshipID: rel.ID,
			Kind:           kind,
			Type:           typ,
			Dotted:         !traits.Blood && !traits.Couple,
			Color:          settings.ColorForType(typ),
			Points: []models.Position{
				{X: a.Pos.X + a.Width/2, Y: a.Pos.Y + a.Height/2},
				{X: b.Pos.X + b.Width/2, Y: b.Pos.Y + b.Height/2},
			},
		})
	}

	return connectors
}
