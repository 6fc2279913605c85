package app

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteboard/internal/project"
	"noteboard/internal/surface"
	"noteboard/pkg/geometry"
)

func newTestState(t *testing.T) (*State, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	return NewState(project.NewStore(fs), "classic"), fs
}

func TestSurfaceChangesMarkModified(t *testing.T) {
	s, _ := newTestState(t)

	var modified []bool
	s.On(EventModified, func(data interface{}) {
		modified = append(modified, data.(bool))
	})
	notesChanged := 0
	s.On(EventNotesChanged, func(interface{}) { notesChanged++ })

	s.Surface.SetViewSize(geometry.NewSize(800, 600))
	s.Surface.AddNote()
	s.Surface.AddNote()

	assert.True(t, s.IsModified())
	assert.Equal(t, []bool{true}, modified, "only transitions are emitted")
	assert.Equal(t, 2, notesChanged)
}

func TestViewportChangeDoesNotMarkModified(t *testing.T) {
	s, _ := newTestState(t)
	var got []interface{}
	s.On(EventViewportChanged, func(data interface{}) { got = append(got, data) })

	s.Surface.Pan(geometry.Pt(10, 10))
	assert.False(t, s.IsModified())
	assert.Len(t, got, 1)
}

func TestSelectionEvent(t *testing.T) {
	s, _ := newTestState(t)
	id := s.Surface.AddNote()

	var selected []string
	s.On(EventSelectionChanged, func(data interface{}) { selected = append(selected, data.(string)) })

	s.Surface.Select(id)
	s.Surface.Key(surface.KeyEscape, false)
	assert.Equal(t, []string{id, ""}, selected)
}

func TestSaveAndLoadBoard(t *testing.T) {
	s, fs := newTestState(t)
	s.Surface.SetViewSize(geometry.NewSize(800, 600))
	id := s.Surface.AddNote()
	s.Surface.EditorChanged(id, "hello")
	s.Surface.Pan(geometry.Pt(30, 40))

	assert.ErrorIs(t, s.SaveBoard(""), ErrNoPath)

	var saved string
	s.On(EventBoardSaved, func(data interface{}) { saved = data.(string) })
	require.NoError(t, s.SaveBoard("/b/work.board.yaml"))
	assert.Equal(t, "/b/work.board.yaml", saved)
	assert.False(t, s.IsModified())
	assert.Equal(t, "work", s.BoardName)

	other := NewState(project.NewStore(fs), "pastel")
	require.NoError(t, other.LoadBoard("/b/work.board.yaml"))
	assert.Equal(t, "classic", other.Palette)
	assert.Equal(t, "/b/work.board.yaml", other.Path())
	assert.Equal(t, geometry.Pt(30, 40), other.Surface.Viewport().Offset())

	n, ok := other.Surface.Note(id)
	require.True(t, ok)
	assert.Equal(t, "hello", n.Content)
	assert.False(t, other.IsModified())
}

func TestLoadMissingBoardKeepsState(t *testing.T) {
	s, _ := newTestState(t)
	id := s.Surface.AddNote()

	assert.Error(t, s.LoadBoard("/missing.board.yaml"))
	_, ok := s.Surface.Note(id)
	assert.True(t, ok)
}

func TestNewBoard(t *testing.T) {
	s, _ := newTestState(t)
	s.Surface.AddNote()
	require.NoError(t, s.SaveBoard("/a.board.yaml"))
	s.Surface.AddNote()

	s.NewBoard()
	assert.Empty(t, s.Surface.Notes())
	assert.Equal(t, "", s.Path())
	assert.Equal(t, "Untitled", s.BoardName)
	assert.False(t, s.IsModified())
}

func TestUnknownPaletteFallsBack(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewState(project.NewStore(fs), "neon")
	assert.Equal(t, "classic", s.Palette)
}

func TestFailedSaveAsKeepsFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewState(project.NewStore(fs), "classic")
	s.Surface.AddNote()
	require.NoError(t, s.SaveBoard("/b/keep.board.yaml"))
	s.Surface.AddNote()

	ro := NewState(project.NewStore(afero.NewReadOnlyFs(fs)), "classic")
	require.NoError(t, ro.LoadBoard("/b/keep.board.yaml"))
	ro.Surface.AddNote()

	assert.Error(t, ro.SaveBoard("/b/other.board.yaml"))
	assert.Equal(t, "keep", ro.BoardName)
	assert.Equal(t, "keep", ro.file.Name)
	assert.Len(t, ro.file.Notes, 1)
	assert.Equal(t, "/b/keep.board.yaml", ro.Path())
	assert.True(t, ro.IsModified())

	require.NoError(t, s.SaveBoard(""))
	assert.Equal(t, "keep", s.BoardName)
	f, err := project.NewStore(fs).Load("/b/keep.board.yaml")
	require.NoError(t, err)
	assert.Equal(t, "keep", f.Name)
	assert.Len(t, f.Notes, 2)
}
