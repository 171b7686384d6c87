package field

import (
	"math"

	"github.com/san-kum/windfield/internal/noise"
)

const (
	noiseMin = -1.0
	noiseMax = 1.0
)

// Segment is the line drawn for one cell. It is rebuilt on every render.
type Segment struct {
	// X and Y are the cell's top-left corner.
	X, Y float64
	Size float64

	Noise  float64
	Angle  float64
	Length float64 // fraction of Size
	Weight float64
}

// Center is where the segment is drawn.
func (s Segment) Center() (float64, float64) {
	return s.X + s.Size/2, s.Y + s.Size/2
}

// HalfExtent is half the drawn length in pixels.
func (s Segment) HalfExtent() float64 {
	return s.Size * 0.5 * s.Length
}

// MapRange maps v linearly from [inMin, inMax] to [outMin, outMax] without
// clamping.
func MapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Sample evaluates the noise field for a cell origin at a frame.
func (t Tunables) Sample(s noise.Sampler, x, y float64, frame int) float64 {
	return s.Eval3(x*t.NoiseDensity, y*t.NoiseDensity, float64(frame)*t.TimeScale)
}

// Segment maps a noise value to the segment geometry for a cell.
func (t Tunables) Segment(x, y, size, n float64) Segment {
	return Segment{
		X:      x,
		Y:      y,
		Size:   size,
		Noise:  n,
		Angle:  MapRange(n, noiseMin, noiseMax, 0, 2*math.Pi*t.RotationFactor),
		Length: MapRange(n, noiseMin, noiseMax, t.LengthMin, t.LengthMax),
		Weight: MapRange(n, noiseMin, noiseMax, t.WeightMin, t.WeightMax),
	}
}
