package models

import "sort"

// DegreeUnreachable marks people with no relationship path to the focus
// person. They still render, pinned to generation 0.
const DegreeUnreachable = -1

// GenerationLayout is the derived generation structure for one focus person.
// It is a pure function of (focus id, person set, relationship set) and is
// recomputed in full whenever any of those change.
type GenerationLayout struct {
	FocusID string `json:"focus_id"`
	// Generations maps person id to a signed generation: 0 is the focus
	// row, negative is ancestors, positive is descendants.
	Generations map[string]int `json:"generations"`
	// Degrees maps person id to BFS hop count from focus, or
	// DegreeUnreachable.
	Degrees map[string]int `json:"degrees"`
	// Extended marks people reached only through non-family edge types.
	Extended map[string]bool `json:"extended,omitempty"`
	// Rows groups person ids by generation number, each row sorted by
	// last name then first name.
	Rows map[int][]string `json:"rows"`
}

// GenerationOf returns the generation for a person, defaulting to 0.
func (l *GenerationLayout) GenerationOf(personID string) int {
	return l.Generations[personID]
}

// RowNumbers returns the generation numbers present, in ascending order.
// Band geometry is spaced by rank in this slice, not by the raw numbers,
// so gaps in generation numbers leave no empty bands.
func (l *GenerationLayout) RowNumbers() []int {
	nums := make([]int, 0, len(l.Rows))
	for g := range l.Rows {
		nums = append(nums, g)
	}
	sort.Ints(nums)
	return nums
}

// FamilyUnit is one renderable cell in a generation band: a primary person,
// an optional spouse in the same generation, and the children attributed to
// the pair in the generation below. Children are kept for positional
// alignment only; the people themselves stay in their own generation row.
type FamilyUnit struct {
	PrimaryID   string   `json:"primary_id"`
	SpouseID    string   `json:"spouse_id,omitempty"`
	ChildrenIDs []string `json:"children_ids,omitempty"`
}

// HasSpouse reports whether the unit is a couple.
func (u *FamilyUnit) HasSpouse() bool {
	return u.SpouseID != ""
}

// Position is a 2D point in layout space. The origin is the horizontal
// center of the diagram; pan and zoom are applied by the viewer on top.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PersonNode is the computed placement for one person card.
type PersonNode struct {
	PersonID   string   `json:"person_id"`
	Pos        Position `json:"pos"`
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	Generation int      `json:"generation"`
	Extended   bool     `json:"extended,omitempty"`
}

// ConnectorKind selects the drawing rule for one relationship edge.
type ConnectorKind string

const (
	// ConnectorSpouse is the short horizontal double line between a couple.
	ConnectorSpouse ConnectorKind = "spouse"
	// ConnectorParentChild is the stepped vertical line between generations.
	ConnectorParentChild ConnectorKind = "parent_child"
	// ConnectorSibling is the arc above two same-generation cards.
	ConnectorSibling ConnectorKind = "sibling"
	// ConnectorExtended is the dotted line for in-law/step/extended types.
	ConnectorExtended ConnectorKind = "extended"
)

// Connector describes one drawable relationship line. Points holds the
// polyline for stepped connectors; for arcs it holds the two endpoints plus
// the control point of the curve.
type Connector struct {
	RelationshipID string           `json:"relationship_id"`
	Kind           ConnectorKind    `json:"kind"`
	Type           RelationshipType `json:"type"`
	Dotted         bool             `json:"dotted,omitempty"`
	Points         []Position       `json:"points"`
	Color          string           `json:"color,omitempty"`
}

// TreeLayout is the full computed geometry for the vertical-band tree view.
type TreeLayout struct {
	FocusID    string                `json:"focus_id"`
	Nodes      map[string]PersonNode `json:"nodes"`
	Connectors []Connector           `json:"connectors"`
	// Units preserves the per-generation family-unit ordering used to
	// place the nodes, keyed by generation number.
	Units map[int][]FamilyUnit `json:"units,omitempty"`
}

// RadialLayout is the computed geometry for the concentric-ring graph view.
type RadialLayout struct {
	CenterID   string                `json:"center_id"`
	Nodes      map[string]PersonNode `json:"nodes"`
	Connectors []Connector           `json:"connectors"`
	// Rings maps ring index (BFS hop count) to the ordered person ids on it.
	Rings map[int][]string `json:"rings,omitempty"`
}
