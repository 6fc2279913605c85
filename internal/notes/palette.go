package notes

import (
	"image/color"
	"sort"

	"golang.org/x/image/colornames"
)

// Palette is an ordered list of note colors, identified by SVG color name.
type Palette []string

// Built-in palettes. The two board variants only differ in presentation.
var (
	ClassicPalette = Palette{"lightyellow", "lightpink", "lightblue", "palegreen", "plum"}
	PastelPalette  = Palette{"lemonchiffon", "mistyrose", "lavender", "honeydew", "aliceblue", "peachpuff"}
)

var palettes = map[string]Palette{
	"classic": ClassicPalette,
	"pastel":  PastelPalette,
}

// PaletteByName returns a built-in palette, falling back to ClassicPalette.
func PaletteByName(name string) (Palette, bool) {
	p, ok := palettes[name]
	if !ok {
		return ClassicPalette, false
	}
	return p, true
}

// PaletteNames lists the built-in palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// At returns the i-th color name, wrapping around.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return "white"
	}
	return p[((i%len(p))+len(p))%len(p)]
}

// Next returns the color following name in the palette, or the first color
// when name is not part of it.
func (p Palette) Next(name string) string {
	for i, c := range p {
		if c == name {
			return p.At(i + 1)
		}
	}
	return p.At(0)
}

// RGBA resolves a color name to its value. Unknown names resolve to white.
func RGBA(name string) color.RGBA {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.White
}
