// Package layout turns generation structure into concrete 2D geometry:
// card positions and connector polylines/curves for the tree and radial
// views. Layouts are recomputed in full on every graph change; person
// counts stay in the tens, so there is no incremental pass.
package layout

import (
	"github.com/majeanson/family-social/pkg/generation"
	"github.com/majeanson/family-social/pkg/models"
)

// Config carries the spacing constants for both layout strategies.
type Config struct {
	NodeWidth         float64
	NodeHeight        float64
	GenerationSpacing float64
	UnitGap           float64
	SpouseGap         float64
	RingSpacing       float64
	MinNodeArc        float64
}

// DefaultConfig returns the spacing used when the service config does not
// override it.
func DefaultConfig() Config {
	return Config{
		NodeWidth:         160,
		NodeHeight:        90,
		GenerationSpacing: 180,
		UnitGap:           60,
		SpouseGap:         24,
		RingSpacing:       220,
		MinNodeArc:        190,
	}
}

const (
	siblingArcScale = 0.15
	siblingArcMin   = 24
	siblingArcMax   = 96
)

// Tree computes the vertical-band layout. Generations stack top to bottom
// by rank (gaps in generation numbers leave no empty bands); within a band,
// family units run left to right and the band centers on x=0. Node
// positions are card top-left corners.
func Tree(gl *models.GenerationLayout, relationships []*models.Relationship, settings *models.UserSettings, cfg Config) *models.TreeLayout {
	if gl == nil || len(gl.Generations) == 0 {
		return nil
	}

	tree := &models.TreeLayout{
		FocusID: gl.FocusID,
		Nodes:   make(map[string]models.PersonNode, len(gl.Generations)),
		Units:   make(map[int][]models.FamilyUnit),
	}

	rowNums := gl.RowNumbers()

	for rank, gen := range rowNums {
		var nextRow []string
		if rank+1 < len(rowNums) {
			nextRow = gl.Rows[rowNums[rank+1]]
		}

		units := generation.GroupUnits(gl.Rows[gen], nextRow, relationships)
		tree.Units[gen] = units

		y := float64(rank) * cfg.GenerationSpacing

		bandWidth := 0.0
		for i, unit := range units {
			if i > 0 {
				bandWidth += cfg.UnitGap
			}
			bandWidth += unitWidth(unit, cfg)
		}

		x := -bandWidth / 2
		for _, unit := range units {
			tree.Nodes[unit.PrimaryID] = models.PersonNode{
				PersonID:   unit.PrimaryID,
				Pos:        models.Position{X: x, Y: y},
				Width:      cfg.NodeWidth,
				Height:     cfg.NodeHeight,
				Generation: gen,
				Extended:   gl.Extended[unit.PrimaryID],
			}
			if unit.HasSpouse() {
				tree.Nodes[unit.SpouseID] = models.PersonNode{
					PersonID:   unit.SpouseID,
					Pos:        models.Position{X: x + cfg.NodeWidth + cfg.SpouseGap, Y: y},
					Width:      cfg.NodeWidth,
					Height:     cfg.NodeHeight,
					Generation: gen,
					Extended:   gl.Extended[unit.SpouseID],
				}
			}
			x += unitWidth(unit, cfg) + cfg.UnitGap
		}
	}

	tree.Connectors = treeConnectors(tree.Nodes, relationships, settings)

	return tree
}

func unitWidth(unit models.FamilyUnit, cfg Config) float64 {
	if unit.HasSpouse() {
		return 2*cfg.NodeWidth + cfg.SpouseGap
	}
	return cfg.NodeWidth
}

// treeConnectors derives one drawable connector per relationship whose two
// endpoints both made it into the layout. The rule table:
//
//	spouse/partner            short horizontal double line, solid
//	parent/child              stepped vertical line, solid
//	sibling                   arc above both cards, solid
//	everything else           dotted; arc when same generation, stepped
//	                          when the pair spans generations
func treeConnectors(nodes map[string]models.PersonNode, relationships []*models.Relationship, settings *models.UserSettings) []models.Connector {
	connectors := make([]models.Connector, 0, len(relationships))

	for _, rel := range relationships {
		a, okA := nodes[rel.PersonAID]
		b, okB := nodes[rel.PersonBID]
		if !okA || !okB {
			continue
		}

		typ := rel.TypeFrom(rel.PersonAID)
		traits := typ.Traits()

		conn := models.Connector{
			RelationshipID: rel.ID,
			Type:           typ,
			Color:          settings.ColorForType(typ),
		}

		switch {
		case traits.Couple:
			conn.Kind = models.ConnectorSpouse
			conn.Points = spousePoints(a, b)
		case typ == models.RelTypeParent || typ == models.RelTypeChild:
			conn.Kind = models.ConnectorParentChild
			conn.Points = steppedPoints(a, b)
		case traits.Sibling && traits.Blood:
			conn.Kind = models.ConnectorSibling
			conn.Points = arcPoints(a, b)
		default:
			conn.Kind = models.ConnectorExtended
			conn.Dotted = true
			if a.Generation == b.Generation {
				conn.Points = arcPoints(a, b)
			} else {
				conn.Points = steppedPoints(a, b)
			}
		}

		connectors = append(connectors, conn)
	}

	return connectors
}

// spousePoints joins the facing card edges at mid height.
func spousePoints(a, b models.PersonNode) []models.Position {
	left, right := a, b
	if right.Pos.X < left.Pos.X {
		left, right = right, left
	}
	y := left.Pos.Y + left.Height/2
	return []models.Position{
		{X: left.Pos.X + left.Width, Y: y},
		{X: right.Pos.X, Y: y},
	}
}

// steppedPoints drops from the upper card's bottom edge, jogs horizontally
// at the midpoint between the two levels, and rises into the lower card's
// top edge.
func steppedPoints(a, b models.PersonNode) []models.Position {
	upper, lower := a, b
	if lower.Pos.Y < upper.Pos.Y {
		upper, lower = lower, upper
	}

	startX := upper.Pos.X + upper.Width/2
	startY := upper.Pos.Y + upper.Height
	endX := lower.Pos.X + lower.Width/2
	endY := lower.Pos.Y
	midY := (startY + endY) / 2

	return []models.Position{
		{X: startX, Y: startY},
		{X: startX, Y: midY},
		{X: endX, Y: midY},
		{X: endX, Y: endY},
	}
}

// arcPoints curves above two same-level cards: the two top centers plus the
// control point of the curve. The arc rises with horizontal distance,
// clamped so close pairs still read and far pairs don't dominate the band.
func arcPoints(a, b models.PersonNode) []models.Position {
	startX := a.Pos.X + a.Width/2
	endX := b.Pos.X + b.Width/2

	dist := endX - startX
	if dist < 0 {
		dist = -dist
	}

	rise := dist * siblingArcScale
	if rise < siblingArcMin {
		rise = siblingArcMin
	}
	if rise > siblingArcMax {
		rise = siblingArcMax
	}

	topY := a.Pos.Y
	if b.Pos.Y < topY {
		topY = b.Pos.Y
	}

	return []models.Position{
		{X: startX, Y: a.Pos.Y},
		{X: (startX + endX) / 2, Y: topY - rise},
		{X: endX, Y: b.Pos.Y},
	}
}
