package surface

import (
	"noteboard/internal/notes"
	"noteboard/pkg/geometry"
)

// Region is the part of the board a pointer event landed on.
type Region int

const (
	RegionCanvas  Region = iota // empty background
	RegionBody                  // note frame and header grip; starts a drag
	RegionToolbar               // color swatch in the header
	RegionDelete                // delete control in the header
	RegionEditor                // text editing area
	RegionResize                // bottom-right handle
)

func (r Region) String() string {
	switch r {
	case RegionCanvas:
		return "canvas"
	case RegionBody:
		return "body"
	case RegionToolbar:
		return "toolbar"
	case RegionDelete:
		return "delete"
	case RegionEditor:
		return "editor"
	case RegionResize:
		return "resize"
	}
	return "unknown"
}

// Layout describes where the interactive parts of a note sit, in world units
// relative to the note's bounds.
type Layout struct {
	HeaderHeight float64
	Padding      float64
	ControlSize  float64 // toolbar swatch and delete control are squares
	HandleSize   float64
}

// DefaultLayout is the note chrome used by the desktop UI.
var DefaultLayout = Layout{
	HeaderHeight: 32,
	Padding:      8,
	ControlSize:  24,
	HandleSize:   16,
}

// NoteRegions are the rectangles of a note's interactive parts.
type NoteRegions struct {
	Bounds  geometry.Rect
	Toolbar geometry.Rect
	Delete  geometry.Rect
	Editor  geometry.Rect
	Resize  geometry.Rect
}

// Regions computes the world-space regions of n.
func (l Layout) Regions(n notes.Note) NoteRegions {
	b := n.Bounds()
	controlY := b.Y + (l.HeaderHeight-l.ControlSize)/2
	bottomInset := l.HandleSize
	if l.Padding > bottomInset {
		bottomInset = l.Padding
	}
	return NoteRegions{
		Bounds:  b,
		Toolbar: geometry.NewRect(b.X+l.Padding, controlY, l.ControlSize, l.ControlSize),
		Delete:  geometry.NewRect(b.X+b.Width-l.Padding-l.ControlSize, controlY, l.ControlSize, l.ControlSize),
		Editor: geometry.NewRect(
			b.X+l.Padding,
			b.Y+l.HeaderHeight,
			b.Width-2*l.Padding,
			b.Height-l.HeaderHeight-bottomInset,
		),
		Resize: geometry.NewRect(b.X+b.Width-l.HandleSize, b.Y+b.Height-l.HandleSize, l.HandleSize, l.HandleSize),
	}
}

// Hit classifies a world point against a single note. Controls are checked
// before the frame so they always win over the drag area.
func (l Layout) Hit(n notes.Note, world geometry.Point2D) Region {
	r := l.Regions(n)
	switch {
	case !r.Bounds.Contains(world):
		return RegionCanvas
	case r.Resize.Contains(world):
		return RegionResize
	case r.Delete.Contains(world):
		return RegionDelete
	case r.Toolbar.Contains(world):
		return RegionToolbar
	case r.Editor.Contains(world):
		return RegionEditor
	}
	return RegionBody
}

// toScreen maps every region through t.
func (r NoteRegions) toScreen(t geometry.AffineTransform) NoteRegions {
	return NoteRegions{
		Bounds:  t.ApplyRect(r.Bounds),
		Toolbar: t.ApplyRect(r.Toolbar),
		Delete:  t.ApplyRect(r.Delete),
		Editor:  t.ApplyRect(r.Editor),
		Resize:  t.ApplyRect(r.Resize),
	}
}
