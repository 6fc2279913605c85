// Package surface composes the viewport, the gesture controller and the note
// collection into a board, and routes raw pointer, wheel and keyboard events
// to them. It is toolkit-independent; ui/canvas feeds it fyne events.
package surface

import (
	"noteboard/internal/gesture"
	"noteboard/internal/notes"
	"noteboard/internal/viewport"
	"noteboard/pkg/geometry"
)

// SpawnOffset is where a double-click lands inside the note it creates,
// measured from the note's top-left corner in world units.
var SpawnOffset = geometry.Pt(100, 50)

// Button is a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Key is a keyboard key the board reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyDelete
	KeyBackspace
	KeyEscape
)

// Change flags what an operation modified.
type Change uint8

const (
	ChangeNotes Change = 1 << iota // added, removed, moved, resized, recolored
	ChangeContent
	ChangeSelection
	ChangeViewport
)

// Has reports whether c includes flag.
func (c Change) Has(flag Change) bool {
	return c&flag != 0
}

// Item is one note ready to draw, in z-order.
type Item struct {
	Note     notes.Note
	Screen   NoteRegions // regions in screen coordinates
	Selected bool
}

// Surface is the board: it owns the viewport, the notes and the gestures.
type Surface struct {
	vp       *viewport.Viewport
	notes    *notes.Collection
	gestures *gesture.Controller
	layout   Layout
	viewSize geometry.Size

	editors   map[string]Editor
	listeners []func(Change)
}

// Option configures a Surface.
type Option func(*Surface)

// WithLayout overrides the note chrome geometry.
func WithLayout(l Layout) Option {
	return func(s *Surface) {
		s.layout = l
	}
}

// WithViewport sets the initial viewport state.
func WithViewport(v viewport.Viewport) Option {
	return func(s *Surface) {
		*s.vp = v
	}
}

// New creates a board over coll.
func New(coll *notes.Collection, opts ...Option) *Surface {
	s := &Surface{
		vp:      viewport.New(),
		notes:   coll,
		layout:  DefaultLayout,
		editors: make(map[string]Editor),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.gestures = gesture.NewController(s.vp, s.notes)
	return s
}

// OnChange registers a callback fired after every mutating operation.
func (s *Surface) OnChange(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Surface) emit(c Change) {
	if c == 0 {
		return
	}
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Viewport returns a copy of the current viewport state.
func (s *Surface) Viewport() viewport.Viewport {
	return *s.vp
}

// Layout returns the note chrome geometry.
func (s *Surface) Layout() Layout {
	return s.layout
}

// Transform returns the world-to-screen transform for the note layer.
func (s *Surface) Transform() geometry.AffineTransform {
	return s.vp.Transform()
}

// ToWorld converts a screen point with the current viewport.
func (s *Surface) ToWorld(p geometry.Point2D) geometry.Point2D {
	return s.vp.ToWorld(p)
}

// ToScreen converts a world point with the current viewport.
func (s *Surface) ToScreen(p geometry.Point2D) geometry.Point2D {
	return s.vp.ToScreen(p)
}

// Notes returns a copy of every note in z-order.
func (s *Surface) Notes() []notes.Note {
	return s.notes.All()
}

// Note returns a copy of one note.
func (s *Surface) Note(id string) (notes.Note, bool) {
	return s.notes.Get(id)
}

// Selected returns the selected note id, if any.
func (s *Surface) Selected() (string, bool) {
	return s.notes.Selected()
}

// GestureState returns the interaction state.
func (s *Surface) GestureState() gesture.State {
	return s.gestures.State()
}

// Load replaces the board contents, dropping any running session.
func (s *Surface) Load(list []notes.Note, v viewport.Viewport) {
	s.gestures.End()
	s.notes.Replace(list)
	*s.vp = v
	s.editors = make(map[string]Editor)
	s.emit(ChangeNotes | ChangeSelection | ChangeViewport)
}

// SetViewSize records the on-screen size of the board, used to find the view
// center.
func (s *Surface) SetViewSize(size geometry.Size) {
	s.viewSize = size
}

func (s *Surface) viewCenter() geometry.Point2D {
	return geometry.Pt(s.viewSize.Width/2, s.viewSize.Height/2)
}

// HitTest finds the topmost note under a screen point and the region hit.
func (s *Surface) HitTest(at geometry.Point2D) (string, Region) {
	world := s.vp.ToWorld(at)
	all := s.notes.All()
	for i := len(all) - 1; i >= 0; i-- {
		if r := s.layout.Hit(all[i], world); r != RegionCanvas {
			return all[i].ID, r
		}
	}
	return "", RegionCanvas
}

// PointerDown handles a button press. The hit region is resolved before any
// state changes, so presses on a note's controls or editor never start a drag.
func (s *Surface) PointerDown(at geometry.Point2D, button Button) {
	if s.gestures.Active() {
		return
	}
	if button == ButtonMiddle {
		s.notes.Deselect()
		s.gestures.BeginPan(at)
		s.emit(ChangeSelection)
		return
	}
	if button != ButtonPrimary {
		return
	}

	id, region := s.HitTest(at)
	switch region {
	case RegionCanvas:
		s.notes.Deselect()
		s.gestures.BeginPan(at)
		s.emit(ChangeSelection)
	case RegionBody:
		s.notes.Select(id)
		s.gestures.BeginDrag(id, at)
		s.emit(ChangeSelection)
	case RegionResize:
		s.gestures.BeginResize(id, at)
	case RegionEditor:
		s.notes.Select(id)
		s.emit(ChangeSelection)
	case RegionToolbar:
		s.CycleColor(id)
	case RegionDelete:
		s.Delete(id)
	}
}

// PointerMove feeds the pointer position to the running session, if any.
func (s *Surface) PointerMove(at geometry.Point2D) {
	state := s.gestures.State()
	if !s.gestures.Move(at) {
		return
	}
	if state == gesture.Panning {
		s.emit(ChangeViewport)
	} else {
		s.emit(ChangeNotes)
	}
}

// PointerUp ends the running session. It is safe to call when idle, e.g. for
// a release delivered outside the board.
func (s *Surface) PointerUp(at geometry.Point2D) {
	s.gestures.End()
}

// Wheel zooms around the pointer when a modifier is held. Unmodified wheel
// events are not consumed and the function returns false.
func (s *Surface) Wheel(at geometry.Point2D, deltaY float64, modified bool) bool {
	if !modified {
		return false
	}
	switch {
	case deltaY > 0:
		s.vp.ZoomAt(1, at)
	case deltaY < 0:
		s.vp.ZoomAt(-1, at)
	default:
		return true
	}
	s.emit(ChangeViewport)
	return true
}

// DoubleClick creates a note under the pointer when it lands on empty canvas.
func (s *Surface) DoubleClick(at geometry.Point2D) (string, bool) {
	if _, region := s.HitTest(at); region != RegionCanvas {
		return "", false
	}
	pos := s.vp.ToWorld(at).Sub(SpawnOffset)
	id := s.notes.Add(pos, "")
	s.emit(ChangeNotes)
	return id, true
}

// AddNote creates a note centered in the current view.
func (s *Surface) AddNote() string {
	center := s.vp.ToWorld(s.viewCenter())
	pos := center.Sub(notes.DefaultSize.Point().Scale(0.5))
	id := s.notes.Add(pos, "")
	s.emit(ChangeNotes)
	return id
}

// Delete removes a note, clearing the selection if it was selected.
func (s *Surface) Delete(id string) bool {
	wasSelected := false
	if sel, ok := s.notes.Selected(); ok && sel == id {
		wasSelected = true
	}
	if sess, ok := s.gestures.Session(); ok && sess.NoteID == id {
		s.gestures.End()
	}
	if !s.notes.Remove(id) {
		return false
	}
	delete(s.editors, id)
	change := ChangeNotes
	if wasSelected {
		change |= ChangeSelection
	}
	s.emit(change)
	return true
}

// CycleColor gives a note the next palette color.
func (s *Surface) CycleColor(id string) {
	n, ok := s.notes.Get(id)
	if !ok {
		return
	}
	s.notes.Update(id, notes.SetColor(s.notes.Palette().Next(n.Color)))
	s.emit(ChangeNotes)
}

// Select marks a note as selected; an empty id clears the selection.
func (s *Surface) Select(id string) {
	s.notes.Select(id)
	s.emit(ChangeSelection)
}

// Key handles a key press. editing is true while focus is inside a note's
// editor, in which case Delete and Backspace belong to the editor.
func (s *Surface) Key(key Key, editing bool) bool {
	switch key {
	case KeyDelete, KeyBackspace:
		if editing {
			return false
		}
		id, ok := s.notes.Selected()
		if !ok {
			return false
		}
		return s.Delete(id)
	case KeyEscape:
		if _, ok := s.notes.Selected(); !ok {
			return false
		}
		s.notes.Deselect()
		s.emit(ChangeSelection)
		return true
	}
	return false
}

// ZoomIn steps the zoom in, keeping the screen origin fixed.
func (s *Surface) ZoomIn() {
	s.vp.ZoomStep(1)
	s.emit(ChangeViewport)
}

// ZoomOut steps the zoom out, keeping the screen origin fixed.
func (s *Surface) ZoomOut() {
	s.vp.ZoomStep(-1)
	s.emit(ChangeViewport)
}

// ZoomInCentered steps the zoom in around the view center.
func (s *Surface) ZoomInCentered() {
	s.vp.ZoomAt(1, s.viewCenter())
	s.emit(ChangeViewport)
}

// ZoomOutCentered steps the zoom out around the view center.
func (s *Surface) ZoomOutCentered() {
	s.vp.ZoomAt(-1, s.viewCenter())
	s.emit(ChangeViewport)
}

// ResetZoom returns to scale 1 without moving the offset.
func (s *Surface) ResetZoom() {
	s.vp.Reset()
	s.emit(ChangeViewport)
}

// ResetView returns to scale 1 with the world origin at the screen origin.
func (s *Surface) ResetView() {
	s.vp.ResetView()
	s.emit(ChangeViewport)
}

// Pan shifts the view by a screen-space delta.
func (s *Surface) Pan(delta geometry.Point2D) {
	s.vp.Pan(delta)
	s.emit(ChangeViewport)
}

// Scene returns every note with its screen-space regions, bottom to top.
func (s *Surface) Scene() []Item {
	t := s.vp.Transform()
	sel, _ := s.notes.Selected()
	all := s.notes.All()
	items := make([]Item, len(all))
	for i, n := range all {
		items[i] = Item{
			Note:     n,
			Screen:   s.layout.Regions(n).toScreen(t),
			Selected: n.ID == sel,
		}
	}
	return items
}

// BindEditor creates the editor for a note through factory and routes its
// change notifications into the collection.
func (s *Surface) BindEditor(id string, factory EditorFactory) (Editor, bool) {
	n, ok := s.notes.Get(id)
	if !ok {
		return nil, false
	}
	ed := factory(n.Content, func(content string) {
		s.EditorChanged(id, content)
	})
	s.editors[id] = ed
	return ed, true
}

// Editor returns the editor bound to a note.
func (s *Surface) Editor(id string) (Editor, bool) {
	ed, ok := s.editors[id]
	return ed, ok
}

// EditorChanged stores new editor content for a note.
func (s *Surface) EditorChanged(id, content string) {
	if s.notes.Update(id, notes.SetContent(content)) {
		s.emit(ChangeContent)
	}
}
