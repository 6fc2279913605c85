// Package project provides board file handling and persistence.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"noteboard/internal/notes"
	"noteboard/internal/viewport"
)

// FormatVersion is the board file version written by this build.
const FormatVersion = 1

// Extension is the conventional board file extension.
const Extension = ".board.yaml"

// ErrUnsupportedVersion is returned for files written by a newer format.
var ErrUnsupportedVersion = errors.New("unsupported board file version")

// File represents a saved board (.board.yaml).
type File struct {
	Version  int               `yaml:"version"`
	Name     string            `yaml:"name"`
	Created  time.Time         `yaml:"created"`
	Modified time.Time         `yaml:"modified"`
	Palette  string            `yaml:"palette,omitempty"`
	Viewport viewport.Viewport `yaml:"viewport"`
	Notes    []notes.Note      `yaml:"notes"`
}

// New creates an empty board file.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  FormatVersion,
		Name:     name,
		Created:  now,
		Modified: now,
		Viewport: viewport.Viewport{Scale: 1},
	}
}

// Store reads and writes board files on a filesystem.
type Store struct {
	fs afero.Fs
}

// NewStore creates a store over fs.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOsStore creates a store over the real filesystem.
func NewOsStore() *Store {
	return NewStore(afero.NewOsFs())
}

// Load loads a board from path.
func (s *Store) Load(path string) (*File, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read board %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse board %s: %w", path, err)
	}
	if f.Version > FormatVersion {
		return nil, fmt.Errorf("board %s has version %d: %w", path, f.Version, ErrUnsupportedVersion)
	}
	if f.Viewport.Scale == 0 {
		f.Viewport.Scale = 1
	}
	if f.Name == "" {
		f.Name = NameFromPath(path)
	}
	return &f, nil
}

// Save writes the board to path. The data goes to a temporary sibling first
// and is renamed over path, so a failed write never truncates the old file.
func (s *Store) Save(path string, f *File) error {
	f.Version = FormatVersion
	f.Modified = time.Now()
	if f.Created.IsZero() {
		f.Created = f.Modified
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}

	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write board %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace board %s: %w", path, err)
	}
	return nil
}

// Exists reports whether a board file exists at path.
func (s *Store) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// NameFromPath derives a display name from a board file path.
func NameFromPath(path string) string {
	base := filepath.Base(path)
	for _, ext := range []string{Extension, filepath.Ext(base)} {
		if ext != "" && len(base) > len(ext) && base[len(base)-len(ext):] == ext {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}
