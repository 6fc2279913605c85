package prefs

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/cfg/noteboard/preferences.json"

func TestMissingFileGivesDefaults(t *testing.T) {
	p := LoadFrom(afero.NewMemMapFs(), testPath)
	assert.Equal(t, "classic", p.StringWithFallback(KeyPalette, "classic"))
	assert.Equal(t, 1024.0, p.FloatWithFallback(KeyWindowWidth, 1024))
	assert.Equal(t, "", p.String(KeyLastBoard))
}

func TestSaveAndReload(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := LoadFrom(fs, testPath)
	p.SetString(KeyPalette, "pastel")
	p.SetFloat(KeyWindowWidth, 1280)
	require.NoError(t, p.Save())

	q := LoadFrom(fs, testPath)
	assert.Equal(t, "pastel", q.String(KeyPalette))
	assert.Equal(t, 1280.0, q.FloatWithFallback(KeyWindowWidth, 0))
}

func TestSaveIfChanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := LoadFrom(fs, testPath)

	require.NoError(t, p.SaveIfChanged())
	exists, _ := afero.Exists(fs, testPath)
	assert.False(t, exists, "nothing to save")

	p.SetString(KeyLastBoard, "/b.board.yaml")
	require.NoError(t, p.SaveIfChanged())
	exists, _ = afero.Exists(fs, testPath)
	assert.True(t, exists)

	require.NoError(t, fs.Remove(testPath))
	p.SetString(KeyLastBoard, "/b.board.yaml")
	require.NoError(t, p.SaveIfChanged())
	exists, _ = afero.Exists(fs, testPath)
	assert.False(t, exists, "same value does not mark preferences dirty")
}

func TestCorruptFileIgnored(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testPath, []byte("{not json"), 0o644))

	p := LoadFrom(fs, testPath)
	assert.Equal(t, "x", p.StringWithFallback(KeyPalette, "x"))
}

func TestReset(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := LoadFrom(fs, testPath)
	p.SetString(KeyPalette, "pastel")
	require.NoError(t, p.Save())

	p.Reset()
	require.NoError(t, p.SaveIfChanged())
	assert.Equal(t, "", LoadFrom(fs, testPath).String(KeyPalette))
}
