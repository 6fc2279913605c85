package gesture

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteboard/internal/notes"
	"noteboard/internal/viewport"
	"noteboard/pkg/geometry"
)

func setup(t *testing.T) (*Controller, *viewport.Viewport, *notes.Collection, string) {
	t.Helper()
	vp := viewport.New()
	coll := notes.NewCollection()
	id := coll.Add(geometry.Pt(0, 0), "")
	return NewController(vp, coll), vp, coll, id
}

func TestPanRecomputesFromAnchor(t *testing.T) {
	c, vp, _, _ := setup(t)
	vp.SetOffset(geometry.Pt(10, 10))

	require.True(t, c.BeginPan(geometry.Pt(100, 100)))
	assert.Equal(t, Panning, c.State())

	c.Move(geometry.Pt(130, 90))
	assert.Equal(t, geometry.Pt(40, 0), vp.Offset())

	c.Move(geometry.Pt(110, 120))
	assert.Equal(t, geometry.Pt(20, 30), vp.Offset())

	s, ok := c.End()
	require.True(t, ok)
	assert.Equal(t, KindPan, s.Kind)
	assert.Equal(t, Idle, c.State())
}

func TestDragDividesByScale(t *testing.T) {
	c, vp, coll, id := setup(t)
	vp.Scale = 2

	require.True(t, c.BeginDrag(id, geometry.Pt(50, 50)))
	c.Move(geometry.Pt(90, 70))
	c.End()

	n, _ := coll.Get(id)
	assert.Equal(t, geometry.Pt(20, 10), n.Position)
}

func TestDragIsAbsoluteAcrossMoves(t *testing.T) {
	c, vp, coll, id := setup(t)
	vp.Scale = 0.5
	coll.Update(id, notes.MoveTo(geometry.Pt(100, 100)))

	c.BeginDrag(id, geometry.Pt(0, 0))
	for i := 1; i <= 10; i++ {
		c.Move(geometry.Pt(float64(i), float64(-i)))
	}
	c.End()

	n, _ := coll.Get(id)
	assert.Equal(t, geometry.Pt(120, 80), n.Position)
}

func TestDragUsesScaleAtMoveTime(t *testing.T) {
	c, vp, coll, id := setup(t)

	c.BeginDrag(id, geometry.Pt(0, 0))
	vp.Scale = 2
	c.Move(geometry.Pt(40, 20))
	c.End()

	n, _ := coll.Get(id)
	assert.Equal(t, geometry.Pt(20, 10), n.Position)
}

func TestResizeEnforcesMinimumOnEveryMove(t *testing.T) {
	c, _, coll, id := setup(t)

	c.BeginResize(id, geometry.Pt(300, 200))
	assert.Equal(t, ResizingNote, c.State())

	c.Move(geometry.Pt(100, 50))
	n, _ := coll.Get(id)
	assert.Equal(t, notes.MinSize, n.Size)

	c.Move(geometry.Pt(350, 260))
	n, _ = coll.Get(id)
	assert.Equal(t, geometry.NewSize(350, 260), n.Size)
	c.End()
}

func TestResizeRandomSequencesStayAboveMinimum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, vp, coll, id := setup(t)

	for round := 0; round < 50; round++ {
		vp.Scale = viewport.MinScale + rng.Float64()*(viewport.MaxScale-viewport.MinScale)
		require.True(t, c.BeginResize(id, geometry.Pt(rng.Float64()*500, rng.Float64()*500)))
		for i := 0; i < 20; i++ {
			c.Move(geometry.Pt(rng.Float64()*1000-500, rng.Float64()*1000-500))
			n, _ := coll.Get(id)
			require.GreaterOrEqual(t, n.Size.Width, float64(notes.MinWidth))
			require.GreaterOrEqual(t, n.Size.Height, float64(notes.MinHeight))
		}
		c.End()
	}
}

func TestSessionsAreMutuallyExclusive(t *testing.T) {
	c, vp, coll, id := setup(t)

	require.True(t, c.BeginDrag(id, geometry.Pt(0, 0)))
	assert.False(t, c.BeginPan(geometry.Pt(0, 0)))
	assert.False(t, c.BeginResize(id, geometry.Pt(0, 0)))
	assert.False(t, c.BeginDrag(id, geometry.Pt(5, 5)))

	s, _ := c.Session()
	assert.Equal(t, KindDragNote, s.Kind)
	assert.Equal(t, id, s.NoteID)

	c.Move(geometry.Pt(10, 0))
	c.End()

	n, _ := coll.Get(id)
	assert.Equal(t, geometry.Pt(10, 0), n.Position)
	assert.Equal(t, geometry.Pt(0, 0), vp.Offset())
}

func TestIdleMoveAndEndAreNoOps(t *testing.T) {
	c, vp, coll, id := setup(t)
	before := coll.All()

	assert.False(t, c.Move(geometry.Pt(50, 50)))
	_, ok := c.End()
	assert.False(t, ok)

	assert.Equal(t, before, coll.All())
	assert.Equal(t, geometry.Pt(0, 0), vp.Offset())

	c.BeginDrag(id, geometry.Pt(0, 0))
	c.End()
	assert.False(t, c.Move(geometry.Pt(70, 70)), "moves after release are ignored")
	n, _ := coll.Get(id)
	assert.Equal(t, geometry.Pt(0, 0), n.Position)
}

func TestBeginOnUnknownNote(t *testing.T) {
	c, _, _, _ := setup(t)
	assert.False(t, c.BeginDrag("missing", geometry.Pt(0, 0)))
	assert.False(t, c.BeginResize("missing", geometry.Pt(0, 0)))
	assert.False(t, c.Active())
}

func TestNoteRemovedMidDrag(t *testing.T) {
	c, _, coll, id := setup(t)
	c.BeginDrag(id, geometry.Pt(0, 0))
	coll.Remove(id)

	assert.False(t, c.Move(geometry.Pt(10, 10)))
	assert.Equal(t, 0, coll.Len())
	assert.Equal(t, DraggingNote, c.State())
	c.End()
}

func TestNoteRemovedMidResize(t *testing.T) {
	c, _, coll, id := setup(t)
	c.BeginResize(id, geometry.Pt(300, 200))
	coll.Remove(id)

	assert.False(t, c.Move(geometry.Pt(400, 300)))
	c.End()
}

func TestKindAndStateStrings(t *testing.T) {
	assert.Equal(t, "pan", KindPan.String())
	assert.Equal(t, "resize-note", KindResizeNote.String())
	assert.Equal(t, "dragging", DraggingNote.String())
	assert.Equal(t, "idle", Idle.String())
}
