package surface

import (
	"image/color"
	"math"
)

// Matrix is a 2-D affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

func Identity() Matrix {
	return Matrix{A: 1, D: 1}
}

// Translate returns m followed by a translation in local coordinates.
func (m Matrix) Translate(x, y float64) Matrix {
	m.E += m.A*x + m.C*y
	m.F += m.B*x + m.D*y
	return m
}

// Rotate returns m followed by a rotation in local coordinates.
func (m Matrix) Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: m.A*cos + m.C*sin,
		B: m.B*cos + m.D*sin,
		C: m.C*cos - m.A*sin,
		D: m.D*cos - m.B*sin,
		E: m.E,
		F: m.F,
	}
}

func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Scale is the uniform scale factor of m, used for stroke widths.
func (m Matrix) Scale() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

// Style is the drawing state saved by Push.
type Style struct {
	Transform Matrix
	Weight    float64
	Color     color.Color
	Cap       LineCap
}

func defaultStyle() Style {
	return Style{
		Transform: Identity(),
		Weight:    1,
		Color:     color.Black,
		Cap:       CapRound,
	}
}

// Pen implements the transform and style half of Surface for surfaces that
// draw in world coordinates.
type Pen struct {
	Style
	stack []Style
}

func NewPen() Pen {
	return Pen{Style: defaultStyle()}
}

func (p *Pen) Push() {
	p.stack = append(p.stack, p.Style)
}

// Pop restores the last pushed state. Unbalanced pops are ignored.
func (p *Pen) Pop() {
	if len(p.stack) == 0 {
		return
	}
	p.Style = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *Pen) Translate(x, y float64) { p.Transform = p.Transform.Translate(x, y) }

func (p *Pen) Rotate(angle float64) { p.Transform = p.Transform.Rotate(angle) }

func (p *Pen) SetStrokeWeight(w float64) { p.Weight = w }

func (p *Pen) SetStrokeColor(c color.Color) { p.Color = c }

func (p *Pen) SetLineCap(c LineCap) { p.Cap = c }

// Reset drops the stack and restores the default style.
func (p *Pen) Reset() {
	p.Style = defaultStyle()
	p.stack = p.stack[:0]
}

// Depth is the number of unmatched pushes.
func (p *Pen) Depth() int { return len(p.stack) }

// Segment is a line in world coordinates with the style it was drawn with.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Weight         float64
	Color          color.Color
	Cap            LineCap
}

// Project maps a local line to world coordinates with the current style.
func (p *Pen) Project(x1, y1, x2, y2 float64) Segment {
	wx1, wy1 := p.Transform.Apply(x1, y1)
	wx2, wy2 := p.Transform.Apply(x2, y2)
	return Segment{
		X1: wx1, Y1: wy1, X2: wx2, Y2: wy2,
		Weight: p.Weight * p.Transform.Scale(),
		Color:  p.Color,
		Cap:    p.Cap,
	}
}

func (s Segment) Length() float64 {
	return math.Hypot(s.X2-s.X1, s.Y2-s.Y1)
}

// Extended returns the segment lengthened by half its weight at both ends,
// which is how a square cap covers the line.
func (s Segment) Extended() Segment {
	l := s.Length()
	if l == 0 || s.Cap != CapSquare {
		return s
	}
	ux, uy := (s.X2-s.X1)/l, (s.Y2-s.Y1)/l
	h := s.Weight / 2
	s.X1 -= ux * h
	s.Y1 -= uy * h
	s.X2 += ux * h
	s.Y2 += uy * h
	return s
}
