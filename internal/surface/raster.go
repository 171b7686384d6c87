package surface

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// Raster draws into an anti-aliased RGBA image.
type Raster struct {
	dc *gg.Context
}

func NewRaster(width, height int) *Raster {
	return &Raster{dc: gg.NewContext(width, height)}
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

// Resize reallocates the image. The content is lost.
func (r *Raster) Resize(width, height float64) {
	w, h := int(math.Round(width)), int(math.Round(height))
	if w == r.dc.Width() && h == r.dc.Height() {
		return
	}
	r.dc = gg.NewContext(w, h)
}

func (r *Raster) Clear() {
	r.dc.Push()
	r.dc.SetRGBA(0, 0, 0, 0)
	r.dc.Clear()
	r.dc.Pop()
}

func (r *Raster) Push() { r.dc.Push() }
func (r *Raster) Pop()  { r.dc.Pop() }

func (r *Raster) Translate(x, y float64) { r.dc.Translate(x, y) }
func (r *Raster) Rotate(angle float64)   { r.dc.Rotate(angle) }

func (r *Raster) SetStrokeWeight(w float64)    { r.dc.SetLineWidth(w) }
func (r *Raster) SetStrokeColor(c color.Color) { r.dc.SetColor(c) }

func (r *Raster) SetLineCap(c LineCap) {
	switch c {
	case CapButt:
		r.dc.SetLineCap(gg.LineCapButt)
	case CapSquare:
		r.dc.SetLineCap(gg.LineCapSquare)
	default:
		r.dc.SetLineCap(gg.LineCapRound)
	}
}

func (r *Raster) Line(x1, y1, x2, y2 float64) {
	r.dc.DrawLine(x1, y1, x2, y2)
	r.dc.Stroke()
}

// Image returns the current frame. It is overwritten by later draws.
func (r *Raster) Image() image.Image { return r.dc.Image() }

func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }
