package project

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteboard/internal/notes"
	"noteboard/internal/viewport"
	"noteboard/pkg/geometry"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs)

	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	f := New("ideas")
	f.Palette = "pastel"
	f.Viewport = viewport.Viewport{Scale: 1.5, OffsetX: -20, OffsetY: 40}
	f.Notes = []notes.Note{{
		ID:        "01HZX",
		Position:  geometry.Pt(12.5, -3),
		Size:      geometry.NewSize(320, 180),
		Content:   "<p>buy <b>milk</b></p>",
		Color:     "plum",
		CreatedAt: created,
	}}

	require.NoError(t, store.Save("/boards/ideas.board.yaml", f))
	assert.True(t, store.Exists("/boards/ideas.board.yaml"))
	assert.False(t, store.Exists("/boards/ideas.board.yaml.tmp"))

	got, err := store.Load("/boards/ideas.board.yaml")
	require.NoError(t, err)
	assert.Equal(t, "ideas", got.Name)
	assert.Equal(t, "pastel", got.Palette)
	assert.Equal(t, f.Viewport, got.Viewport)
	require.Len(t, got.Notes, 1)
	assert.Equal(t, f.Notes[0].Content, got.Notes[0].Content)
	assert.Equal(t, f.Notes[0].Position, got.Notes[0].Position)
	assert.Equal(t, f.Notes[0].Size, got.Notes[0].Size)
	assert.True(t, created.Equal(got.Notes[0].CreatedAt))
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(afero.NewMemMapFs())
	_, err := store.Load("/nope.board.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/b.board.yaml", []byte("version: 9\nnotes: []\n"), 0o644))

	_, err := NewStore(fs).Load("/b.board.yaml")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoadFillsDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/w/todo.board.yaml", []byte("version: 1\n"), 0o644))

	f, err := NewStore(fs).Load("/w/todo.board.yaml")
	require.NoError(t, err)
	assert.Equal(t, 1.0, f.Viewport.Scale)
	assert.Equal(t, "todo", f.Name)
	assert.Empty(t, f.Notes)
}

func TestLoadGarbage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/x.board.yaml", []byte("notes: [unterminated"), 0o644))

	_, err := NewStore(fs).Load("/x.board.yaml")
	assert.Error(t, err)
}

func TestSaveFailsOnReadOnlyFs(t *testing.T) {
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := store.Save("/b.board.yaml", New("b"))
	assert.Error(t, err)
}

func TestNameFromPath(t *testing.T) {
	assert.Equal(t, "plan", NameFromPath("/a/plan.board.yaml"))
	assert.Equal(t, "plan", NameFromPath("plan.yaml"))
	assert.Equal(t, "plan", NameFromPath("plan"))
}
