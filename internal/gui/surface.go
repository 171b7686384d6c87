package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/windfield/internal/surface"
)

// Surface draws into a render texture. Drawing calls must run between
// Begin and End.
type Surface struct {
	surface.Pen
	width, height int32
	background    rl.Color
	target        rl.RenderTexture2D
	loaded        bool
}

func NewSurface(width, height int32, background color.Color) *Surface {
	s := &Surface{Pen: surface.NewPen(), background: toColor(background)}
	s.Resize(float64(width), float64(height))
	return s
}

func (s *Surface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// Resize reallocates the texture when the size changes. It must not be
// called between Begin and End.
func (s *Surface) Resize(width, height float64) {
	w, h := int32(width), int32(height)
	if s.loaded && w == s.width && h == s.height {
		return
	}
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
	}
	s.width, s.height = w, h
	s.target = rl.LoadRenderTexture(w, h)
	s.loaded = true
}

func (s *Surface) Begin() { rl.BeginTextureMode(s.target) }
func (s *Surface) End()   { rl.EndTextureMode() }

func (s *Surface) Clear() {
	rl.ClearBackground(s.background)
}

func (s *Surface) Line(x1, y1, x2, y2 float64) {
	l := s.Project(x1, y1, x2, y2).Extended()
	rl.DrawLineEx(
		rl.NewVector2(float32(l.X1), float32(l.Y1)),
		rl.NewVector2(float32(l.X2), float32(l.Y2)),
		float32(l.Weight),
		toColor(l.Color),
	)
}

// Present draws the texture to the screen. Render textures are stored
// upside down, hence the negative source height.
func (s *Surface) Present() {
	src := rl.NewRectangle(0, 0, float32(s.width), -float32(s.height))
	rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
}

func (s *Surface) Unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

func toColor(c color.Color) rl.Color {
	if c == nil {
		return rl.Blank
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return rl.NewColor(n.R, n.G, n.B, n.A)
}
