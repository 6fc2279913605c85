package canvas

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"noteboard/internal/notes"
	"noteboard/internal/surface"
	"noteboard/pkg/colorutil"
)

var handleColor = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x30}

const (
	headerShade = 0.08
	strokeShade = 0.45
)

// noteView holds the fyne objects drawing one note. Only the editor is
// interactive; presses anywhere else fall through to the BoardCanvas, which
// resolves them with surface hit-testing.
type noteView struct {
	id     string
	frame  *fynecanvas.Rectangle
	header *fynecanvas.Rectangle
	swatch *widget.Icon
	del    *widget.Icon
	editor *noteEditor
	wheel  *wheelTarget
	handle *fynecanvas.Rectangle

	selected bool
	color    string
}

func (v *noteView) build() {
	v.frame = fynecanvas.NewRectangle(color.White)
	v.frame.CornerRadius = 4
	v.frame.StrokeWidth = 1
	v.header = fynecanvas.NewRectangle(color.Transparent)
	v.swatch = widget.NewIcon(theme.ColorPaletteIcon())
	v.del = widget.NewIcon(theme.DeleteIcon())
	v.handle = fynecanvas.NewRectangle(handleColor)
}

func (v *noteView) objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{v.frame, v.header, v.swatch, v.del}
	if v.editor != nil {
		objs = append(objs, v.editor, v.wheel)
	}
	return append(objs, v.handle)
}

// place positions every part from the note's screen regions.
func (v *noteView) place(item surface.Item) {
	r := item.Screen
	v.frame.Move(toPos(r.Bounds.TopLeft()))
	v.frame.Resize(toSize(r.Bounds))

	headerHeight := r.Editor.Y - r.Bounds.Y
	v.header.Move(toPos(r.Bounds.TopLeft()))
	v.header.Resize(fyne.NewSize(float32(r.Bounds.Width), float32(headerHeight)))

	v.swatch.Move(toPos(r.Toolbar.TopLeft()))
	v.swatch.Resize(toSize(r.Toolbar))
	v.del.Move(toPos(r.Delete.TopLeft()))
	v.del.Resize(toSize(r.Delete))
	if v.editor != nil {
		v.editor.Move(toPos(r.Editor.TopLeft()))
		v.editor.Resize(toSize(r.Editor))
		v.wheel.Move(toPos(r.Editor.TopLeft()))
		v.wheel.Resize(toSize(r.Editor))
	}
	v.handle.Move(toPos(r.Resize.TopLeft()))
	v.handle.Resize(toSize(r.Resize))

	v.selected = item.Selected
	v.color = item.Note.Color
}

func (v *noteView) refresh() {
	fill := notes.RGBA(v.color)
	v.frame.FillColor = fill
	v.header.FillColor = colorutil.Darken(fill, headerShade)
	if v.selected {
		v.frame.StrokeColor = theme.Color(theme.ColorNamePrimary)
		v.frame.StrokeWidth = 2
	} else {
		v.frame.StrokeColor = colorutil.WithAlpha(colorutil.Darken(fill, strokeShade), 0x80)
		v.frame.StrokeWidth = 1
	}
	v.frame.Refresh()
	v.header.Refresh()
	v.handle.Refresh()
}

// noteEditor is the text editor embedded in a note. It implements
// surface.Editor; content is kept as plain markup text.
type noteEditor struct {
	widget.Entry
	bc *BoardCanvas
	id string
}

var _ surface.Editor = (*noteEditor)(nil)

func newNoteEditor(bc *BoardCanvas, id, initial string, onChange func(string)) *noteEditor {
	e := &noteEditor{bc: bc, id: id}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	e.SetText(initial)
	e.OnChanged = onChange
	return e
}

// Content implements surface.Editor.
func (e *noteEditor) Content() string {
	return e.Text
}

// SetContent implements surface.Editor.
func (e *noteEditor) SetContent(content string) {
	e.SetText(content)
}

// MouseDown selects the note before the entry handles the press.
func (e *noteEditor) MouseDown(ev *desktop.MouseEvent) {
	e.bc.board.Select(e.id)
	e.Entry.MouseDown(ev)
}

// TypedKey gives Escape to the board and leaves the editor. Delete and
// Backspace stay with the text.
func (e *noteEditor) TypedKey(key *fyne.KeyEvent) {
	if key.Name != fyne.KeyEscape {
		e.Entry.TypedKey(key)
		return
	}
	e.bc.board.Key(surface.KeyEscape, true)
	if c := fyne.CurrentApp().Driver().CanvasForObject(e); c != nil {
		c.Unfocus()
	}
}

// scrollLines moves the caret one row per text line of wheel travel; the
// entry's scroller follows the caret.
func (e *noteEditor) scrollLines(dy float32) {
	key := fyne.KeyUp
	if dy < 0 {
		key = fyne.KeyDown
	}
	steps := int(math.Abs(float64(dy)) / float64(theme.TextSize()))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		e.Entry.TypedKey(&fyne.KeyEvent{Name: key})
	}
}

// wheelTarget covers a note's editor. fyne hands wheel events to the
// deepest Scrollable under the pointer, which would be the entry's own
// scroller, so zoom gestures over text would never reach the board.
type wheelTarget struct {
	widget.BaseWidget
	editor *noteEditor
}

func newWheelTarget(editor *noteEditor) *wheelTarget {
	w := &wheelTarget{editor: editor}
	w.ExtendBaseWidget(w)
	return w
}

// CreateRenderer implements fyne.Widget.
func (w *wheelTarget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(fynecanvas.NewRectangle(color.Transparent))
}

// Scrolled implements fyne.Scrollable.
func (w *wheelTarget) Scrolled(ev *fyne.ScrollEvent) {
	bc := w.editor.bc
	at := fromPos(w.Position().Add(ev.Position))
	if bc.board.Wheel(at, float64(ev.Scrolled.DY), bc.modifierHeld()) {
		return
	}
	w.editor.scrollLines(ev.Scrolled.DY)
}
