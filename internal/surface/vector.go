package surface

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo/float"
)

// Vector collects lines and writes them as an SVG document.
type Vector struct {
	Pen
	width, height float64
	lines         []Segment
}

func NewVector(width, height float64) *Vector {
	return &Vector{Pen: NewPen(), width: width, height: height}
}

func (v *Vector) Size() (float64, float64) { return v.width, v.height }

func (v *Vector) Resize(width, height float64) {
	v.width, v.height = width, height
}

func (v *Vector) Clear() { v.lines = v.lines[:0] }

func (v *Vector) Line(x1, y1, x2, y2 float64) {
	v.lines = append(v.lines, v.Project(x1, y1, x2, y2))
}

// Lines returns the lines drawn since the last Clear.
func (v *Vector) Lines() []Segment { return v.lines }

// Encode writes the current frame as a standalone SVG document with a
// transparent background.
func (v *Vector) Encode(w io.Writer) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(v.width, v.height)
	for _, l := range v.lines {
		canvas.Line(l.X1, l.Y1, l.X2, l.Y2, lineStyle(l))
	}
	canvas.End()
	return ew.err
}

func lineStyle(l Segment) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.3f;stroke-linecap:%s",
		Hex(l.Color), l.Weight, l.Cap)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
