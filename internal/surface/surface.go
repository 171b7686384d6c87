// Package surface provides the 2-D drawing surfaces the field renders onto.
//
// Every surface follows the same immediate-mode model: a transform and
// stroke style stack ([Surface.Push], [Surface.Pop]), translate and rotate
// in local coordinates, and straight line segments:
//
//   - [Recorder]: keeps world-space lines in memory
//   - [Raster]: anti-aliased RGBA image, PNG output
//   - [Vector]: SVG document
//   - [Braille]: terminal canvas of braille dots
package surface

import "image/color"

// LineCap selects how segment ends are drawn.
type LineCap int

const (
	CapRound LineCap = iota
	CapButt
	CapSquare
)

func (c LineCap) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapSquare:
		return "square"
	default:
		return "round"
	}
}

// Surface is a resizable drawing target.
type Surface interface {
	Size() (width, height float64)
	Resize(width, height float64)

	// Clear makes the whole surface fully transparent.
	Clear()

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(angle float64)

	SetStrokeWeight(w float64)
	SetStrokeColor(c color.Color)
	SetLineCap(c LineCap)

	Line(x1, y1, x2, y2 float64)
}
