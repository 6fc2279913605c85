package gesture

import (
	"noteboard/internal/notes"
	"noteboard/internal/viewport"
	"noteboard/pkg/geometry"
)

// State is the controller's position in Idle -> {Panning, DraggingNote,
// ResizingNote} -> Idle.
type State int

const (
	Idle State = iota
	Panning
	DraggingNote
	ResizingNote
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case DraggingNote:
		return "dragging"
	case ResizingNote:
		return "resizing"
	}
	return "unknown"
}

// NoteStore is the part of the note collection the controller needs. The
// controller reads a note once at session start and writes back through
// Update; it never keeps a reference into the store.
type NoteStore interface {
	Get(id string) (notes.Note, bool)
	Update(id string, patch notes.Patch) bool
}

// Controller runs at most one interaction session at a time.
type Controller struct {
	vp      *viewport.Viewport
	store   NoteStore
	session *Session
}

// NewController creates an idle controller driving vp and store.
func NewController(vp *viewport.Viewport, store NoteStore) *Controller {
	return &Controller{vp: vp, store: store}
}

// State returns the current state.
func (c *Controller) State() State {
	if c.session == nil {
		return Idle
	}
	switch c.session.Kind {
	case KindPan:
		return Panning
	case KindDragNote:
		return DraggingNote
	default:
		return ResizingNote
	}
}

// Active reports whether a session is running.
func (c *Controller) Active() bool {
	return c.session != nil
}

// Session returns a copy of the running session.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// BeginPan starts panning the viewport from screen point at.
func (c *Controller) BeginPan(at geometry.Point2D) bool {
	if c.session != nil {
		return false
	}
	c.session = &Session{Kind: KindPan, Anchor: at, Start: c.vp.Offset()}
	return true
}

// BeginDrag starts moving note id from screen point at.
func (c *Controller) BeginDrag(id string, at geometry.Point2D) bool {
	if c.session != nil {
		return false
	}
	n, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.session = &Session{Kind: KindDragNote, NoteID: id, Anchor: at, Start: n.Position}
	return true
}

// BeginResize starts resizing note id from screen point at.
func (c *Controller) BeginResize(id string, at geometry.Point2D) bool {
	if c.session != nil {
		return false
	}
	n, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.session = &Session{Kind: KindResizeNote, NoteID: id, Anchor: at, Start: n.Size.Point()}
	return true
}

// Move applies the pointer position to the running session. Every value is
// recomputed from the session start, never accumulated. Returns false when
// idle or when the session's note no longer exists.
func (c *Controller) Move(at geometry.Point2D) bool {
	s := c.session
	if s == nil {
		return false
	}
	delta := s.Delta(at)

	switch s.Kind {
	case KindDragNote:
		pos := s.Start.Add(c.vp.ToWorldDelta(delta))
		return c.store.Update(s.NoteID, notes.MoveTo(pos))
	case KindResizeNote:
		grown := s.Start.Add(c.vp.ToWorldDelta(delta))
		size := geometry.NewSize(grown.X, grown.Y).AtLeast(notes.MinSize)
		return c.store.Update(s.NoteID, notes.ResizeTo(size))
	}
	c.vp.SetOffset(s.Start.Add(delta))
	return true
}

// End finishes the running session and returns it. Calling End while idle is
// harmless.
func (c *Controller) End() (Session, bool) {
	s := c.session
	c.session = nil
	if s == nil {
		return Session{}, false
	}
	return *s, true
}
