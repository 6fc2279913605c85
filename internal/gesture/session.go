// Package gesture implements the pointer interaction state machine: panning
// the canvas, dragging a note and resizing a note.
package gesture

import (
	"noteboard/pkg/geometry"
)

// Kind identifies an interaction session.
type Kind int

const (
	KindPan Kind = iota
	KindDragNote
	KindResizeNote
)

func (k Kind) String() string {
	switch k {
	case KindPan:
		return "pan"
	case KindDragNote:
		return "drag-note"
	case KindResizeNote:
		return "resize-note"
	}
	return "unknown"
}

// Session is the state of one press-move-release interaction. It is created
// on button-down and discarded on button-up.
type Session struct {
	Kind   Kind
	NoteID string // empty for KindPan

	// Anchor is the screen point where the button went down.
	Anchor geometry.Point2D

	// Start is the subject's value when the session began: the viewport
	// offset for a pan, the note position for a drag, the note size
	// (Width, Height) for a resize.
	Start geometry.Point2D
}

// Delta returns the screen-space displacement of current from the anchor.
func (s Session) Delta(current geometry.Point2D) geometry.Point2D {
	return current.Sub(s.Anchor)
}
