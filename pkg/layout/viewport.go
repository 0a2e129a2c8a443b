package layout

import (
	"github.com/majeanson/family-social/pkg/models"
)

// Zoom bounds for the diagram viewer.
const (
	ZoomMin = 0.4
	ZoomMax = 2.0
)

// Viewport is pure view state: a pan offset and a zoom factor applied as a
// transform on top of the computed layout. It never feeds back into the
// layout algorithms.
type Viewport struct {
	Offset models.Position `json:"offset"`
	Scale  float64         `json:"scale"`
}

// NewViewport returns a viewport at the origin with no zoom.
func NewViewport() Viewport {
	return Viewport{Scale: 1}
}

// SetZoom sets the scale factor, clamped to [ZoomMin, ZoomMax].
func (v *Viewport) SetZoom(scale float64) {
	if scale < ZoomMin {
		scale = ZoomMin
	}
	if scale > ZoomMax {
		scale = ZoomMax
	}
	v.Scale = scale
}

// Pan shifts the view offset.
func (v *Viewport) Pan(dx, dy float64) {
	v.Offset.X += dx
	v.Offset.Y += dy
}

// CenterOn pans so the given node's card center lands on the view origin,
// shifted down by verticalOffset so the focused card clears any chrome at
// the top of the screen.
func (v *Viewport) CenterOn(node models.PersonNode, verticalOffset float64) {
	v.Offset.X = -(node.Pos.X + node.Width/2)
	v.Offset.Y = -(node.Pos.Y + node.Height/2) + verticalOffset
}

// Apply transforms a layout-space point into view space.
func (v Viewport) Apply(p models.Position) models.Position {
	return models.Position{
		X: (p.X + v.Offset.X) * v.Scale,
		Y: (p.Y + v.Offset.Y) * v.Scale,
	}
}
