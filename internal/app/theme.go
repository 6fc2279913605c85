package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// BoardTheme is the application theme: a light board with a muted grid tone.
type BoardTheme struct{}

var _ fyne.Theme = (*BoardTheme)(nil)

func (t *BoardTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0xF4, G: 0xF4, B: 0xF0, A: 0xFF} // board
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x1E, G: 0x63, B: 0xD6, A: 0xFF} // selection outline
	case theme.ColorNameInputBackground:
		return color.Transparent // editors sit on the note color
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

func (t *BoardTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *BoardTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *BoardTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameInputBorder:
		return 0
	default:
		return theme.DefaultTheme().Size(name)
	}
}
