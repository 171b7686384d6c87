package analysis

import (
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/windfield/internal/field"
	"github.com/san-kum/windfield/internal/noise"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CellSeries samples the noise at a cell origin for frames 0..frames-1.
func CellSeries(s noise.Sampler, tun field.Tunables, x, y float64, frames int) []float64 {
	if frames <= 0 {
		return nil
	}
	out := make([]float64, frames)
	for f := range out {
		out[f] = tun.Sample(s, x, y, f)
	}
	return out
}

type Stats struct {
	Mean, StdDev, Min, Max float64
}

func describe(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(xs, nil)
	if len(xs) == 1 {
		std = 0
	}
	return Stats{Mean: mean, StdDev: std, Min: floats.Min(xs), Max: floats.Max(xs)}
}

// Summary describes the segments of one render.
type Summary struct {
	Count  int
	Noise  Stats
	Angle  Stats
	Length Stats
	Weight Stats
}

func Summarize(segs []field.Segment) Summary {
	n := make([]float64, len(segs))
	a := make([]float64, len(segs))
	l := make([]float64, len(segs))
	w := make([]float64, len(segs))
	for i, s := range segs {
		n[i], a[i], l[i], w[i] = s.Noise, s.Angle, s.Length, s.Weight
	}
	return Summary{
		Count:  len(segs),
		Noise:  describe(n),
		Angle:  describe(a),
		Length: describe(l),
		Weight: describe(w),
	}
}

var shades = []rune(" .:-=+*#%@")

// NoiseMap draws one character per cell, row-major, darker for higher
// noise. Noise outside [-1, 1] uses the end shades.
func NoiseMap(layout field.Layout, segs []field.Segment) string {
	if layout.Columns == 0 || len(segs) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, s := range segs {
		t := (s.Noise + 1) / 2
		idx := int(t * float64(len(shades)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(shades) {
			idx = len(shades) - 1
		}
		sb.WriteRune(shades[idx])
		if (i+1)%layout.Columns == 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// Plot renders series as a terminal line chart.
func Plot(series []float64, height int, caption string) string {
	if len(series) == 0 {
		return ""
	}
	if height <= 0 {
		height = 10
	}
	return asciigraph.Plot(series, asciigraph.Height(height), asciigraph.Caption(caption))
}
