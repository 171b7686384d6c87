package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrNoFrames = errors.New("export: no frames recorded")

// GIFRecorder collects raster frames into an animated GIF. Every frame is
// flattened onto the background and quantised to a palette that ramps from
// the background to the stroke color.
type GIFRecorder struct {
	palette    color.Palette
	background color.Color
	delay      int
	anim       gif.GIF
}

func NewGIFRecorder(stroke, background color.Color, fps int) *GIFRecorder {
	if fps <= 0 {
		fps = 60
	}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	return &GIFRecorder{
		palette:    Ramp(background, stroke, 256),
		background: background,
		delay:      delay,
		anim:       gif.GIF{LoopCount: 0},
	}
}

// Ramp returns n colors blended in RGB space from a to b.
func Ramp(a, b color.Color, n int) color.Palette {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))

	p := make(color.Palette, n)
	for i := range p {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
		p[i] = color.RGBA{R: r, G: g, B: bl, A: 0xff}
	}
	return p
}

func opaque(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.Black
	}
	// un-premultiply
	return color.RGBA64{
		R: uint16(r * 0xffff / a),
		G: uint16(g * 0xffff / a),
		B: uint16(b * 0xffff / a),
		A: 0xffff,
	}
}

// Add appends a copy of img as the next frame.
func (g *GIFRecorder) Add(img image.Image) {
	b := img.Bounds()

	flat := image.NewRGBA(b)
	draw.Draw(flat, b, &image.Uniform{C: g.background}, image.Point{}, draw.Src)
	draw.Draw(flat, b, img, b.Min, draw.Over)

	frame := image.NewPaletted(b, g.palette)
	draw.FloydSteinberg.Draw(frame, b, flat, b.Min)

	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.delay)
	g.anim.Disposal = append(g.anim.Disposal, gif.DisposalNone)
}

func (g *GIFRecorder) Frames() int { return len(g.anim.Image) }

// Delay is the per-frame delay in hundredths of a second.
func (g *GIFRecorder) Delay() int { return g.delay }

func (g *GIFRecorder) Encode(w io.Writer) error {
	if len(g.anim.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &g.anim)
}

func (g *GIFRecorder) WriteFile(path string) error {
	if len(g.anim.Image) == 0 {
		return ErrNoFrames
	}
	return writeFile(path, g.Encode)
}
