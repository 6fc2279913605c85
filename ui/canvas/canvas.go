// Package canvas provides the board widget: notes on a pannable, zoomable
// surface.
package canvas

import (
	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"noteboard/internal/surface"
	"noteboard/pkg/geometry"
)

// BoardCanvas renders a surface.Surface and feeds it pointer events.
type BoardCanvas struct {
	widget.BaseWidget

	board *surface.Surface

	// Display state
	grid  *fynecanvas.Raster
	views map[string]*noteView
	order []string

	// modifierHeld reports whether a zoom modifier is down during a wheel
	// event; fyne's scroll event does not carry modifiers.
	modifierHeld func() bool
}

// NewBoardCanvas creates a widget showing board.
func NewBoardCanvas(board *surface.Surface) *BoardCanvas {
	bc := &BoardCanvas{
		board:        board,
		views:        make(map[string]*noteView),
		modifierHeld: driverModifierHeld,
	}
	bc.grid = fynecanvas.NewRaster(bc.drawGrid)
	bc.grid.ScaleMode = fynecanvas.ImageScalePixels

	board.OnChange(func(c surface.Change) {
		if c.Has(surface.ChangeNotes | surface.ChangeSelection | surface.ChangeViewport) {
			bc.Refresh()
		}
	})

	bc.ExtendBaseWidget(bc)
	return bc
}

// Board returns the surface shown by this widget.
func (bc *BoardCanvas) Board() *surface.Surface {
	return bc.board
}

func driverModifierHeld() bool {
	app := fyne.CurrentApp()
	if app == nil {
		return false
	}
	drv, ok := app.Driver().(desktop.Driver)
	if !ok {
		return false
	}
	mods := drv.CurrentKeyModifiers()
	return mods&(fyne.KeyModifierControl|fyne.KeyModifierSuper) != 0
}

// MouseDown implements desktop.Mouseable.
func (bc *BoardCanvas) MouseDown(ev *desktop.MouseEvent) {
	btn, ok := toButton(ev.Button)
	if !ok {
		return
	}
	bc.board.PointerDown(fromPos(ev.Position), btn)
}

// MouseUp implements desktop.Mouseable.
func (bc *BoardCanvas) MouseUp(ev *desktop.MouseEvent) {
	bc.board.PointerUp(fromPos(ev.Position))
}

// Dragged implements fyne.Draggable.
func (bc *BoardCanvas) Dragged(ev *fyne.DragEvent) {
	bc.board.PointerMove(fromPos(ev.Position))
}

// DragEnd implements fyne.Draggable. A release outside the widget still
// arrives here, so the session always ends.
func (bc *BoardCanvas) DragEnd() {
	bc.board.PointerUp(geometry.Point2D{})
}

// MouseIn implements desktop.Hoverable.
func (bc *BoardCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable. fyne only reports drags for the
// primary button, so middle-button pans are driven from here.
func (bc *BoardCanvas) MouseMoved(ev *desktop.MouseEvent) {
	bc.board.PointerMove(fromPos(ev.Position))
}

// MouseOut implements desktop.Hoverable.
func (bc *BoardCanvas) MouseOut() {}

// Scrolled implements fyne.Scrollable.
func (bc *BoardCanvas) Scrolled(ev *fyne.ScrollEvent) {
	bc.board.Wheel(fromPos(ev.Position), float64(ev.Scrolled.DY), bc.modifierHeld())
}

// DoubleTapped implements fyne.DoubleTappable.
func (bc *BoardCanvas) DoubleTapped(ev *fyne.PointEvent) {
	bc.board.DoubleClick(fromPos(ev.Position))
}

// CreateRenderer implements fyne.Widget.
func (bc *BoardCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{canvas: bc}
	bc.sync()
	return r
}

// sync creates views for new notes and drops views of removed ones, keeping
// bc.order in z-order.
func (bc *BoardCanvas) sync() {
	scene := bc.board.Scene()
	seen := make(map[string]bool, len(scene))
	bc.order = bc.order[:0]
	for _, item := range scene {
		id := item.Note.ID
		seen[id] = true
		if _, bound := bc.board.Editor(id); !bound {
			delete(bc.views, id)
		}
		if _, ok := bc.views[id]; !ok {
			bc.views[id] = bc.newNoteView(id)
		}
		bc.order = append(bc.order, id)
	}
	for id := range bc.views {
		if !seen[id] {
			delete(bc.views, id)
		}
	}
}

func (bc *BoardCanvas) newNoteView(id string) *noteView {
	v := &noteView{id: id}
	bc.board.BindEditor(id, func(initial string, onChange func(string)) surface.Editor {
		v.editor = newNoteEditor(bc, id, initial, onChange)
		v.wheel = newWheelTarget(v.editor)
		return v.editor
	})
	v.build()
	return v
}

type boardRenderer struct {
	canvas *BoardCanvas
}

func (r *boardRenderer) Layout(size fyne.Size) {
	bc := r.canvas
	bc.board.SetViewSize(geometry.NewSize(float64(size.Width), float64(size.Height)))
	bc.grid.Resize(size)
	for _, item := range bc.board.Scene() {
		if v, ok := bc.views[item.Note.ID]; ok {
			v.place(item)
		}
	}
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (r *boardRenderer) Refresh() {
	r.canvas.sync()
	r.Layout(r.canvas.Size())
	r.canvas.grid.Refresh()
	for _, v := range r.canvas.views {
		v.refresh()
	}
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	bc := r.canvas
	objs := []fyne.CanvasObject{bc.grid}
	for _, id := range bc.order {
		if v, ok := bc.views[id]; ok {
			objs = append(objs, v.objects()...)
		}
	}
	return objs
}

func (r *boardRenderer) Destroy() {}

func toButton(b desktop.MouseButton) (surface.Button, bool) {
	switch {
	case b&desktop.MouseButtonPrimary != 0:
		return surface.ButtonPrimary, true
	case b&desktop.MouseButtonTertiary != 0:
		return surface.ButtonMiddle, true
	case b&desktop.MouseButtonSecondary != 0:
		return surface.ButtonSecondary, true
	}
	return 0, false
}

func fromPos(p fyne.Position) geometry.Point2D {
	return geometry.Pt(float64(p.X), float64(p.Y))
}

func toPos(p geometry.Point2D) fyne.Position {
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func toSize(r geometry.Rect) fyne.Size {
	return fyne.NewSize(float32(r.Width), float32(r.Height))
}
