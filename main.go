// Package main provides the entry point for the Noteboard application.
package main

import (
	"fmt"
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"noteboard/internal/app"
	"noteboard/internal/notes"
	"noteboard/internal/project"
	"noteboard/internal/version"
	"noteboard/ui/mainwindow"
	"noteboard/ui/prefs"
)

const (
	appTitle = "Noteboard"
	appID    = "io.noteboard.desktop"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		palette    string
		resetPrefs bool
	)

	cmd := &cobra.Command{
		Use:     "noteboard [board.yaml]",
		Short:   "Infinite-canvas note board",
		Args:    cobra.MaximumNArgs(1),
		Version: version.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			appPrefs := prefs.Load()
			if resetPrefs {
				appPrefs.Reset()
			}

			if cmd.Flags().Changed("palette") {
				if _, ok := notes.PaletteByName(palette); !ok {
					return fmt.Errorf("unknown palette %q (have %v)", palette, notes.PaletteNames())
				}
				appPrefs.SetString(prefs.KeyPalette, palette)
			}
			palette = appPrefs.StringWithFallback(prefs.KeyPalette, palette)

			boardPath := appPrefs.String(prefs.KeyLastBoard)
			if len(args) > 0 {
				boardPath = args[0]
			}

			run(appPrefs, palette, boardPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&palette, "palette", "classic", "note color palette")
	cmd.Flags().BoolVar(&resetPrefs, "reset-prefs", false, "forget saved preferences")
	return cmd
}

func run(appPrefs *prefs.Prefs, palette, boardPath string) {
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.BoardTheme{})

	store := project.NewOsStore()
	state := app.NewState(store, palette)

	if boardPath != "" && store.Exists(boardPath) {
		if err := state.LoadBoard(boardPath); err != nil {
			log.Printf("Failed to load board %s: %v", boardPath, err)
		}
	} else if boardPath != "" {
		log.Printf("Board %s does not exist yet; it will be created on save", boardPath)
		state.BoardPath = boardPath
		state.BoardName = project.NameFromPath(boardPath)
	}

	win := mainwindow.New(fyneApp, state, appPrefs)
	win.ShowAndRun()
	win.SavePreferences()
}
