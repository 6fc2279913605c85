// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"noteboard/internal/notes"
	"noteboard/internal/project"
	"noteboard/internal/surface"
)

// ErrNoPath is returned by SaveBoard when the board has never been saved and
// no path was given.
var ErrNoPath = errors.New("board has no file path")

// State holds the application state: the open board and its file.
type State struct {
	mu sync.RWMutex

	// Board file
	BoardPath string
	BoardName string
	Modified  bool

	// Palette name used for new notes
	Palette string

	Surface *surface.Surface
	notes   *notes.Collection
	store   *project.Store
	file    *project.File

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventBoardLoaded EventType = iota
	EventBoardSaved
	EventNotesChanged
	EventContentChanged
	EventSelectionChanged
	EventViewportChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates application state with an empty, untitled board.
func NewState(store *project.Store, palette string) *State {
	p, ok := notes.PaletteByName(palette)
	if !ok {
		palette = "classic"
	}
	coll := notes.NewCollection(notes.WithPalette(p))
	s := &State{
		BoardName: "Untitled",
		Palette:   palette,
		Surface:   surface.New(coll),
		notes:     coll,
		store:     store,
		file:      project.New("Untitled"),
		listeners: make(map[EventType][]EventListener),
	}
	s.Surface.OnChange(s.onSurfaceChange)
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the board as modified and emits an event on change.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	changed := s.Modified != modified
	s.Modified = modified
	s.mu.Unlock()
	if changed {
		s.Emit(EventModified, modified)
	}
}

// IsModified reports whether there are unsaved changes.
func (s *State) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Modified
}

// Path returns the board file path, or "" for an unsaved board.
func (s *State) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BoardPath
}

func (s *State) onSurfaceChange(c surface.Change) {
	if c.Has(surface.ChangeNotes) {
		s.SetModified(true)
		s.Emit(EventNotesChanged, nil)
	}
	if c.Has(surface.ChangeContent) {
		s.SetModified(true)
		s.Emit(EventContentChanged, nil)
	}
	if c.Has(surface.ChangeSelection) {
		id, _ := s.Surface.Selected()
		s.Emit(EventSelectionChanged, id)
	}
	if c.Has(surface.ChangeViewport) {
		s.Emit(EventViewportChanged, s.Surface.Viewport())
	}
}

// NewBoard discards the current board and starts an empty, untitled one.
func (s *State) NewBoard() {
	s.mu.Lock()
	s.BoardPath = ""
	s.BoardName = "Untitled"
	s.file = project.New("Untitled")
	s.mu.Unlock()

	s.Surface.Load(nil, s.file.Viewport)
	s.SetModified(false)
	s.Emit(EventBoardLoaded, "")
}

// LoadBoard loads a board from the specified path.
func (s *State) LoadBoard(path string) error {
	f, err := s.store.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.BoardPath = path
	s.BoardName = f.Name
	s.file = f
	if f.Palette != "" {
		if p, ok := notes.PaletteByName(f.Palette); ok {
			s.Palette = f.Palette
			s.notes.SetPalette(p)
		}
	}
	s.mu.Unlock()

	s.Surface.Load(f.Notes, f.Viewport)
	s.SetModified(false)
	log.Printf("Loaded board %s (%d notes)", path, len(f.Notes))
	s.Emit(EventBoardLoaded, path)
	return nil
}

// SaveBoard saves the board to path, or to the current path when path is "".
func (s *State) SaveBoard(path string) error {
	s.mu.Lock()
	if path == "" {
		path = s.BoardPath
	}
	if path == "" {
		s.mu.Unlock()
		return ErrNoPath
	}
	f := *s.file
	if s.BoardPath != path {
		f.Name = project.NameFromPath(path)
	}
	f.Palette = s.Palette
	f.Viewport = s.Surface.Viewport()
	f.Notes = s.Surface.Notes()
	s.mu.Unlock()

	if err := s.store.Save(path, &f); err != nil {
		return fmt.Errorf("save board: %w", err)
	}

	s.mu.Lock()
	s.file = &f
	s.BoardPath = path
	s.BoardName = f.Name
	s.mu.Unlock()

	s.SetModified(false)
	log.Printf("Saved board %s (%d notes)", path, len(f.Notes))
	s.Emit(EventBoardSaved, path)
	return nil
}
