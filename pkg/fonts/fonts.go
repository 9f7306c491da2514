// Package fonts provides the font used for state and transition labels.
//
// Labels are set in Go Regular, which ships with golang.org/x/image, so
// raster output needs no system fonts. SVG output names the same family and
// falls back to the viewer's sans-serif.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name of the label font.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers without the Go fonts.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// Parsed font (computed once on first access).
var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once
)

// TTF returns the raw TrueType data of the label font.
func TTF() []byte {
	return goregular.TTF
}

// Regular returns the parsed label font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a face of the label font at the given size in pixels.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
