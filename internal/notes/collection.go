package notes

import (
	"crypto/rand"
	"io"
	"time"

	"github.com/oklog/ulid/v2"

	"noteboard/pkg/geometry"
)

// Collection is the ordered set of notes on a board. Order is z-order: later
// notes are drawn on top. Every operation is total; unknown ids are ignored.
type Collection struct {
	notes    []Note
	selected string

	palette   Palette
	nextColor int

	now     func() time.Time
	entropy io.Reader
}

// Option configures a Collection.
type Option func(*Collection)

// WithPalette sets the palette used for round-robin color assignment.
func WithPalette(p Palette) Option {
	return func(c *Collection) {
		c.palette = p
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Collection) {
		c.now = now
	}
}

// WithEntropy overrides the randomness used for note IDs.
func WithEntropy(r io.Reader) Option {
	return func(c *Collection) {
		c.entropy = r
	}
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	c := &Collection{
		palette: ClassicPalette,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.entropy == nil {
		c.entropy = ulid.Monotonic(rand.Reader, 0)
	}
	return c
}

// Add creates a note at position and returns its id. An empty color picks the
// next palette color.
func (c *Collection) Add(position geometry.Point2D, color string) string {
	if color == "" {
		color = c.palette.At(c.nextColor)
		c.nextColor++
	}
	now := c.now()
	n := Note{
		ID:        ulid.MustNew(ulid.Timestamp(now), c.entropy).String(),
		Position:  position,
		Size:      DefaultSize,
		Color:     color,
		CreatedAt: now,
	}
	c.notes = append(c.notes, n)
	return n.ID
}

// Update merges patch into the note with the given id. Returns false when no
// such note exists.
func (c *Collection) Update(id string, patch Patch) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	patch.apply(&c.notes[i])
	return true
}

// Remove deletes the note with the given id, clearing the selection if it
// pointed at that note. Returns false when no such note exists.
func (c *Collection) Remove(id string) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.notes = append(c.notes[:i], c.notes[i+1:]...)
	if c.selected == id {
		c.selected = ""
	}
	return true
}

// Select marks a note as selected. An empty or unknown id clears the selection.
func (c *Collection) Select(id string) {
	if c.index(id) < 0 {
		c.selected = ""
		return
	}
	c.selected = id
}

// Deselect clears the selection.
func (c *Collection) Deselect() {
	c.selected = ""
}

// Selected returns the selected note id, if any.
func (c *Collection) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// Get returns a copy of the note with the given id.
func (c *Collection) Get(id string) (Note, bool) {
	i := c.index(id)
	if i < 0 {
		return Note{}, false
	}
	return c.notes[i], true
}

// All returns a copy of every note in z-order.
func (c *Collection) All() []Note {
	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Len returns the number of notes.
func (c *Collection) Len() int {
	return len(c.notes)
}

// Palette returns the palette used for new notes.
func (c *Collection) Palette() Palette {
	return c.palette
}

// SetPalette changes the palette for notes created from now on. Existing
// notes keep their colors.
func (c *Collection) SetPalette(p Palette) {
	c.palette = p
}

// Replace swaps the whole note list, e.g. after loading a board file. The
// selection is cleared and the color counter continues after the loaded notes.
func (c *Collection) Replace(list []Note) {
	c.notes = make([]Note, 0, len(list))
	for _, n := range list {
		n.Size = n.Size.AtLeast(MinSize)
		c.notes = append(c.notes, n)
	}
	c.selected = ""
	c.nextColor = len(c.notes)
}

func (c *Collection) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.notes {
		if c.notes[i].ID == id {
			return i
		}
	}
	return -1
}
