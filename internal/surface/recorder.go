package surface

// Recorder is an in-memory surface. It keeps the lines drawn since the last
// Clear in world coordinates.
type Recorder struct {
	Pen
	width, height float64

	Lines   []Segment
	Clears  int
	Resizes int
}

func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Pen: NewPen(), width: width, height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) Resize(width, height float64) {
	r.width, r.height = width, height
	r.Resizes++
}

func (r *Recorder) Clear() {
	r.Lines = r.Lines[:0]
	r.Clears++
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Lines = append(r.Lines, r.Project(x1, y1, x2, y2))
}
