package surface

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Hex formats c as #rrggbb, ignoring alpha. Fully transparent colors format
// as black.
func Hex(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return "#000000"
	}
	return cf.Clamped().Hex()
}
