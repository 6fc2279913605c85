// Package notes holds the board's note records and the selection.
package notes

import (
	"time"

	"noteboard/pkg/geometry"
)

// Default and minimum note dimensions, in world units.
const (
	DefaultWidth  = 300
	DefaultHeight = 200
	MinWidth      = 200
	MinHeight     = 100
)

// MinSize is the smallest size a note can have after any mutation.
var MinSize = geometry.NewSize(MinWidth, MinHeight)

// DefaultSize is the size given to newly created notes.
var DefaultSize = geometry.NewSize(DefaultWidth, DefaultHeight)

// Note is a single freeform note on the board.
type Note struct {
	ID        string           `yaml:"id"`
	Position  geometry.Point2D `yaml:"position"` // world top-left
	Size      geometry.Size    `yaml:"size"`
	Content   string           `yaml:"content"` // opaque editor markup
	Color     string           `yaml:"color"`
	CreatedAt time.Time        `yaml:"created_at"`
}

// Bounds returns the note's rectangle in world coordinates.
func (n Note) Bounds() geometry.Rect {
	return geometry.RectAt(n.Position, n.Size)
}

// Patch lists the mutable fields of a note; nil fields are left unchanged.
// ID and CreatedAt have no patch field and cannot be altered.
type Patch struct {
	Position *geometry.Point2D
	Size     *geometry.Size
	Content  *string
	Color    *string
}

// MoveTo is a Patch that only sets the position.
func MoveTo(p geometry.Point2D) Patch {
	return Patch{Position: &p}
}

// ResizeTo is a Patch that only sets the size.
func ResizeTo(s geometry.Size) Patch {
	return Patch{Size: &s}
}

// SetContent is a Patch that only sets the content.
func SetContent(content string) Patch {
	return Patch{Content: &content}
}

// SetColor is a Patch that only sets the color.
func SetColor(color string) Patch {
	return Patch{Color: &color}
}

func (p Patch) apply(n *Note) {
	if p.Position != nil {
		n.Position = *p.Position
	}
	if p.Size != nil {
		n.Size = *p.Size
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	n.Size = n.Size.AtLeast(MinSize)
}
