// Package viewport maps between screen space and world space for the board.
//
// A point is projected with screen = world*Scale + Offset. Scale is kept in
// [MinScale, MaxScale] by every mutating method; the offset is unconstrained.
package viewport

import (
	"noteboard/pkg/geometry"
)

const (
	MinScale = 0.25
	MaxScale = 3.0
	StepSize = 0.1
)

// Viewport holds the pan/zoom state of one board view.
type Viewport struct {
	Scale   float64 `yaml:"scale"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

// New returns an identity viewport.
func New() *Viewport {
	return &Viewport{Scale: 1}
}

// Offset returns the screen-space translation.
func (v Viewport) Offset() geometry.Point2D {
	return geometry.Pt(v.OffsetX, v.OffsetY)
}

// SetOffset replaces the screen-space translation.
func (v *Viewport) SetOffset(p geometry.Point2D) {
	v.OffsetX, v.OffsetY = p.X, p.Y
}

// Zoom adds factor to the scale and moves the offset so that anchor (a screen
// point) shows the same world point before and after.
func (v *Viewport) Zoom(factor float64, anchor geometry.Point2D) {
	old := v.scale()
	next := clampScale(old + factor)
	ratio := next / old
	v.SetOffset(anchor.Sub(anchor.Sub(v.Offset()).Scale(ratio)))
	v.Scale = next
}

// ZoomAt zooms one step in (direction > 0) or out (direction < 0) around anchor.
func (v *Viewport) ZoomAt(direction int, anchor geometry.Point2D) {
	v.Zoom(stepFor(direction), anchor)
}

// ZoomStep zooms one step without anchor compensation: the offset is kept, so
// the screen origin stays fixed.
func (v *Viewport) ZoomStep(direction int) {
	v.Scale = clampScale(v.scale() + stepFor(direction))
}

// Reset restores scale 1 and leaves the offset alone.
func (v *Viewport) Reset() {
	v.Scale = 1
}

// ResetView restores scale 1 and moves the world origin back to the screen origin.
func (v *Viewport) ResetView() {
	v.Scale = 1
	v.OffsetX, v.OffsetY = 0, 0
}

// Pan shifts the offset by a screen-space delta.
func (v *Viewport) Pan(delta geometry.Point2D) {
	v.SetOffset(v.Offset().Add(delta))
}

// ToWorld converts a screen point to world coordinates.
func (v *Viewport) ToWorld(screen geometry.Point2D) geometry.Point2D {
	return screen.Sub(v.Offset()).Div(v.scale())
}

// ToScreen converts a world point to screen coordinates.
func (v *Viewport) ToScreen(world geometry.Point2D) geometry.Point2D {
	return world.Scale(v.scale()).Add(v.Offset())
}

// ToWorldDelta converts a screen-space displacement to world units.
func (v *Viewport) ToWorldDelta(delta geometry.Point2D) geometry.Point2D {
	return delta.Div(v.scale())
}

// Transform returns translate(offset) followed by scale(scale), the transform
// applied to the note layer when rendering.
func (v *Viewport) Transform() geometry.AffineTransform {
	s := v.scale()
	return geometry.Translation(v.OffsetX, v.OffsetY).Compose(geometry.Scale(s, s))
}

// scale repairs a zero-valued Viewport{} literal or an out-of-range value
// decoded from a board file before it is used.
func (v *Viewport) scale() float64 {
	if v.Scale == 0 {
		v.Scale = 1
	}
	v.Scale = clampScale(v.Scale)
	return v.Scale
}

func stepFor(direction int) float64 {
	switch {
	case direction > 0:
		return StepSize
	case direction < 0:
		return -StepSize
	}
	return 0
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
