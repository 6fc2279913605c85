// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"noteboard/internal/app"
	"noteboard/internal/project"
	"noteboard/internal/surface"
	"noteboard/internal/version"
	"noteboard/ui/canvas"
	"noteboard/ui/prefs"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.BoardCanvas
	statusBar *widget.Label
	zoomLabel *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Noteboard")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupKeys()
	mw.setupEventHandlers()
	mw.updateTitle()

	win.Resize(fyne.NewSize(
		float32(appPrefs.FloatWithFallback(prefs.KeyWindowWidth, 1200)),
		float32(appPrefs.FloatWithFallback(prefs.KeyWindowHeight, 800)),
	))
	win.SetCloseIntercept(mw.onClose)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewBoardCanvas(mw.state.Surface)
	mw.statusBar = widget.NewLabel("Double-click the board to add a note")
	mw.zoomLabel = widget.NewLabel(zoomText(mw.state.Surface.Viewport().Scale))

	toolbar := mw.createToolbar()

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		mw.canvas,                         // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with note and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	addBtn := widget.NewButtonWithIcon("Note", theme.ContentAddIcon(), mw.onAddNote)
	zoomOutBtn := widget.NewButton("-", mw.state.Surface.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.state.Surface.ZoomIn)
	resetBtn := widget.NewButton("Reset", mw.state.Surface.ResetView)

	return container.NewHBox(
		addBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		mw.zoomLabel,
		zoomInBtn,
		resetBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Board", mw.onNewBoard),
		fyne.NewMenuItem("Open Board...", mw.onOpenBoard),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save", mw.onSaveBoard),
		fyne.NewMenuItem("Save As...", mw.onSaveBoardAs),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Add Note", mw.onAddNote),
		fyne.NewMenuItem("Delete Note", func() {
			mw.state.Surface.Key(surface.KeyDelete, false)
		}),
		fyne.NewMenuItem("Deselect", func() {
			mw.state.Surface.Key(surface.KeyEscape, false)
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.state.Surface.ZoomInCentered),
		fyne.NewMenuItem("Zoom Out", mw.state.Surface.ZoomOutCentered),
		fyne.NewMenuItem("Actual Size", mw.state.Surface.ResetZoom),
		fyne.NewMenuItem("Reset View", mw.state.Surface.ResetView),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupKeys routes keys to the board. fyne only calls the canvas handler when
// nothing has focus; a focused note editor handles its own keys.
func (mw *MainWindow) setupKeys() {
	c := mw.Canvas()
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		mw.state.Surface.Key(toKey(ev.Name), false)
	})

	ctrl := fyne.KeyModifierShortcutDefault
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: ctrl}, func(fyne.Shortcut) { mw.onSaveBoard() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: ctrl}, func(fyne.Shortcut) { mw.onAddNote() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyEqual, Modifier: ctrl}, func(fyne.Shortcut) { mw.state.Surface.ZoomInCentered() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyMinus, Modifier: ctrl}, func(fyne.Shortcut) { mw.state.Surface.ZoomOutCentered() })
	c.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.Key0, Modifier: ctrl}, func(fyne.Shortcut) { mw.state.Surface.ResetView() })
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventBoardLoaded, func(data interface{}) {
		mw.updateTitle()
		if path, ok := data.(string); ok && path != "" {
			mw.updateStatus("Opened " + path)
		}
	})

	mw.state.On(app.EventBoardSaved, func(data interface{}) {
		mw.updateTitle()
		if path, ok := data.(string); ok {
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		mw.updateTitle()
	})

	mw.state.On(app.EventViewportChanged, func(data interface{}) {
		mw.zoomLabel.SetText(zoomText(mw.state.Surface.Viewport().Scale))
	})

	mw.state.On(app.EventNotesChanged, func(data interface{}) {
		mw.updateStatus(fmt.Sprintf("%d notes", len(mw.state.Surface.Notes())))
	})
}

func (mw *MainWindow) updateTitle() {
	title := "Noteboard - " + mw.state.BoardName
	if mw.state.IsModified() {
		title += " *"
	}
	mw.SetTitle(title)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) rememberBoard(path string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(path))
	mw.prefs.SetString(prefs.KeyLastBoard, path)
}

// SavePreferences stores window size and writes preferences if they changed.
func (mw *MainWindow) SavePreferences() {
	size := mw.Canvas().Size()
	if size.Width > 0 && size.Height > 0 {
		mw.prefs.SetFloat(prefs.KeyWindowWidth, float64(size.Width))
		mw.prefs.SetFloat(prefs.KeyWindowHeight, float64(size.Height))
	}
	if err := mw.prefs.SaveIfChanged(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onAddNote() {
	mw.state.Surface.AddNote()
	mw.updateStatus("Note created")
}

func (mw *MainWindow) onNewBoard() {
	mw.confirmDiscard(func() {
		mw.state.NewBoard()
	})
}

func (mw *MainWindow) onOpenBoard() {
	mw.confirmDiscard(func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			reader.Close()
			path := reader.URI().Path()
			if err := mw.state.LoadBoard(path); err != nil {
				log.Printf("Failed to open board %s: %v", path, err)
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.rememberBoard(path)
		}, mw.Window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".yaml", ".yml"}))
		if loc := mw.getLastDir(); loc != nil {
			fd.SetLocation(loc)
		}
		fd.Show()
	})
}

func (mw *MainWindow) onSaveBoard() {
	if mw.state.Path() == "" {
		mw.onSaveBoardAs()
		return
	}
	if err := mw.state.SaveBoard(""); err != nil {
		log.Printf("Failed to save board: %v", err)
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveBoardAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += project.Extension
		}
		if err := mw.state.SaveBoard(path); err != nil {
			log.Printf("Failed to save board %s: %v", path, err)
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.rememberBoard(path)
	}, mw.Window)
	fd.SetFileName(mw.state.BoardName + project.Extension)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Noteboard",
		fmt.Sprintf("Noteboard %s\nBuilt %s (%s)", version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// confirmDiscard runs next directly, or after the user agrees to drop
// unsaved changes.
func (mw *MainWindow) confirmDiscard(next func()) {
	if !mw.state.IsModified() {
		next()
		return
	}
	dialog.ShowConfirm("Unsaved Changes", "Discard changes to "+mw.state.BoardName+"?",
		func(ok bool) {
			if ok {
				next()
			}
		}, mw.Window)
}

func (mw *MainWindow) onClose() {
	mw.confirmDiscard(func() {
		mw.SavePreferences()
		mw.Close()
	})
}

func zoomText(scale float64) string {
	return fmt.Sprintf("%d%%", int(scale*100+0.5))
}

func toKey(name fyne.KeyName) surface.Key {
	switch name {
	case fyne.KeyDelete:
		return surface.KeyDelete
	case fyne.KeyBackspace:
		return surface.KeyBackspace
	case fyne.KeyEscape:
		return surface.KeyEscape
	}
	return surface.KeyOther
}
