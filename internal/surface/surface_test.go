package surface

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestMatrix(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		x, y   float64
		wx, wy float64
	}{
		{"identity", Identity(), 3, 4, 3, 4},
		{"translate", Identity().Translate(10, 20), 1, 2, 11, 22},
		{"rotate quarter", Identity().Rotate(math.Pi / 2), 1, 0, 0, 1},
		{"translate then rotate", Identity().Translate(10, 20).Rotate(math.Pi / 2), 1, 0, 10, 21},
		{"rotate then translate", Identity().Rotate(math.Pi / 2).Translate(1, 0), 0, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := tt.m.Apply(tt.x, tt.y)
			if !near(x, tt.wx) || !near(y, tt.wy) {
				t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
			}
			if !near(tt.m.Scale(), 1) {
				t.Errorf("Scale() = %v, want 1", tt.m.Scale())
			}
		})
	}
}

func TestPenPushPop(t *testing.T) {
	p := NewPen()
	p.SetStrokeWeight(3)

	p.Push()
	p.Translate(5, 5)
	p.SetStrokeWeight(7)
	p.SetStrokeColor(color.White)
	p.SetLineCap(CapSquare)
	if p.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", p.Depth())
	}
	p.Pop()

	if p.Weight != 3 || p.Cap != CapRound || p.Color != color.Black {
		t.Errorf("style not restored: %+v", p.Style)
	}
	if p.Transform != Identity() {
		t.Errorf("transform not restored: %+v", p.Transform)
	}

	// unbalanced pop keeps the state
	p.Pop()
	if p.Weight != 3 || p.Depth() != 0 {
		t.Errorf("unbalanced pop changed state: %+v", p.Style)
	}

	p.Push()
	p.Push()
	p.Reset()
	if p.Depth() != 0 || p.Weight != 1 {
		t.Errorf("Reset() left depth %d weight %v", p.Depth(), p.Weight)
	}
}

func TestSegmentExtended(t *testing.T) {
	base := Segment{X1: 0, Y1: 0, X2: 10, Y2: 0, Weight: 4}

	tests := []struct {
		cap    LineCap
		x1, x2 float64
	}{
		{CapRound, 0, 10},
		{CapButt, 0, 10},
		{CapSquare, -2, 12},
	}

	for _, tt := range tests {
		t.Run(tt.cap.String(), func(t *testing.T) {
			s := base
			s.Cap = tt.cap
			got := s.Extended()
			if !near(got.X1, tt.x1) || !near(got.X2, tt.x2) || got.Y1 != 0 || got.Y2 != 0 {
				t.Errorf("Extended() = %+v, want x %v..%v", got, tt.x1, tt.x2)
			}
		})
	}

	zero := Segment{X1: 1, Y1: 1, X2: 1, Y2: 1, Weight: 4, Cap: CapSquare}
	if got := zero.Extended(); got != zero {
		t.Errorf("zero-length segment changed: %+v", got)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)

	r.Push()
	r.Translate(50, 25)
	r.Rotate(math.Pi)
	r.SetStrokeWeight(2)
	r.Line(-10, 0, 10, 0)
	r.Pop()
	r.Line(0, 0, 1, 1)

	if len(r.Lines) != 2 {
		t.Fatalf("recorded %d lines, want 2", len(r.Lines))
	}
	l := r.Lines[0]
	if !near(l.X1, 60) || !near(l.X2, 40) || !near(l.Y1, 25) || l.Weight != 2 {
		t.Errorf("projected line = %+v", l)
	}
	if r.Lines[1].Weight != 1 {
		t.Errorf("style leaked past Pop: %+v", r.Lines[1])
	}

	r.Clear()
	r.Resize(20, 10)
	if len(r.Lines) != 0 || r.Clears != 1 || r.Resizes != 1 {
		t.Errorf("clear/resize: lines %d clears %d resizes %d", len(r.Lines), r.Clears, r.Resizes)
	}
	if w, h := r.Size(); w != 20 || h != 10 {
		t.Errorf("Size() = %v x %v", w, h)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c    color.Color
		want string
	}{
		{nil, "#000000"},
		{color.Black, "#000000"},
		{color.White, "#ffffff"},
		{color.RGBA{R: 0x36, G: 0xab, B: 0xdb, A: 0xff}, "#36abdb"},
	}
	for _, tt := range tests {
		if got := Hex(tt.c); got != tt.want {
			t.Errorf("Hex(%v) = %s, want %s", tt.c, got, tt.want)
		}
	}
}

func TestVectorEncode(t *testing.T) {
	v := NewVector(40, 20)
	v.SetStrokeColor(color.RGBA{R: 0x36, G: 0xab, B: 0xdb, A: 0xff})
	v.SetStrokeWeight(3)
	v.SetLineCap(CapSquare)
	v.Line(0, 10, 40, 10)

	var buf bytes.Buffer
	if err := v.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "<line", "stroke:#36abdb", "stroke-width:3.000", "stroke-linecap:square", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q:\n%s", want, out)
		}
	}

	v.Clear()
	if len(v.Lines()) != 0 {
		t.Errorf("Clear() kept %d lines", len(v.Lines()))
	}
}

func TestRaster(t *testing.T) {
	r := NewRaster(20, 20)
	r.SetStrokeColor(color.RGBA{R: 255, A: 255})
	r.SetStrokeWeight(4)
	r.SetLineCap(CapButt)
	r.Line(2, 10, 18, 10)

	img := r.Image()
	if _, _, _, a := img.At(10, 10).RGBA(); a == 0 {
		t.Error("line pixel is transparent")
	}
	if _, _, _, a := img.At(10, 2).RGBA(); a != 0 {
		t.Error("background pixel is painted")
	}

	r.Clear()
	if _, _, _, a := r.Image().At(10, 10).RGBA(); a != 0 {
		t.Error("Clear() left paint behind")
	}

	r.Resize(30.4, 10)
	if w, h := r.Size(); w != 30 || h != 10 {
		t.Errorf("Size() = %v x %v, want 30 x 10", w, h)
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("not a PNG")
	}
}

func TestBrailleDots(t *testing.T) {
	b := NewBraille(4, 2, 1)

	if w, h := b.Size(); w != 8 || h != 8 {
		t.Fatalf("Size() = %v x %v, want 8 x 8", w, h)
	}

	b.DrawLine(0, 0, 7, 0, color.White)
	if b.Dots() != 8 {
		t.Errorf("horizontal line set %d dots, want 8", b.Dots())
	}
	if b.Grid[0][0] != 0x2809 {
		t.Errorf("first cell = %U, want U+2809", b.Grid[0][0])
	}

	b.Unset(0, 0)
	if b.Dots() != 7 {
		t.Errorf("Unset left %d dots", b.Dots())
	}

	// out of range is ignored
	b.Set(-1, 0, color.White)
	b.Set(100, 100, color.White)
	if b.Dots() != 7 {
		t.Errorf("out of range Set changed dots: %d", b.Dots())
	}

	b.Clear()
	if b.Dots() != 0 {
		t.Errorf("Clear() left %d dots", b.Dots())
	}
}

func TestBrailleLine(t *testing.T) {
	b := NewBraille(10, 4, 2)

	b.SetStrokeWeight(2)
	b.Line(0, 8, 38, 8)
	if b.Dots() == 0 {
		t.Fatal("Line drew nothing")
	}

	b.Clear()
	b.SetStrokeWeight(6)
	b.Line(0, 8, 38, 8)
	thick := b.Dots()
	if thick <= 20 {
		t.Errorf("thick line set %d dots, want more than one row", thick)
	}
}

func TestBrailleResize(t *testing.T) {
	b := NewBraille(4, 2, 2)
	b.Resize(33, 17)
	if b.Width != 8 || b.Height != 2 {
		t.Errorf("Resize -> %dx%d cells, want 8x2", b.Width, b.Height)
	}
	if len(b.Lines()) != 2 {
		t.Errorf("Lines() = %d rows", len(b.Lines()))
	}
	if !strings.HasPrefix(b.String(), strings.Repeat("\u2800", 8)+"\n") {
		t.Errorf("String() = %q", b.String())
	}
}
