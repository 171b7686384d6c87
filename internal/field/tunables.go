package field

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	DefaultLengthMin           = 0.5
	DefaultLengthMax           = 0.8
	DefaultWeightMin           = 2.0
	DefaultWeightMax           = 10.0
	DefaultRotationFactor      = 1.0
	DefaultNoiseDensity        = 0.001
	DefaultTimeScale           = 0.008
	DefaultBaseCellSize        = 35.0
	DefaultSmallCellSize       = 25.0
	DefaultMediumCellSize      = 28.0
	DefaultSmallBreakpoint     = 768.0
	DefaultMediumBreakpoint    = 992.0
	DefaultStrokeColor         = "#36ABDB"
	DefaultVisibilityThreshold = 0.1
)

// Tunables holds the process-wide field settings. It is built once at
// startup and passed by value into every instance.
type Tunables struct {
	// LengthMin and LengthMax bound the segment length as a fraction of the
	// cell size.
	LengthMin float64 `yaml:"length_min"`
	LengthMax float64 `yaml:"length_max"`

	WeightMin float64 `yaml:"weight_min"`
	WeightMax float64 `yaml:"weight_max"`

	// RotationFactor multiplies 2π to give the largest segment angle.
	RotationFactor float64 `yaml:"rotation_factor"`

	NoiseDensity float64 `yaml:"noise_density"`
	TimeScale    float64 `yaml:"time_scale"`

	BaseCellSize     float64 `yaml:"base_cell_size"`
	SmallCellSize    float64 `yaml:"small_cell_size"`
	MediumCellSize   float64 `yaml:"medium_cell_size"`
	SmallBreakpoint  float64 `yaml:"small_breakpoint"`
	MediumBreakpoint float64 `yaml:"medium_breakpoint"`

	StrokeColor string `yaml:"stroke_color"`

	// VisibilityThreshold is the visible fraction of the surface needed to
	// play.
	VisibilityThreshold float64 `yaml:"visibility_threshold"`
}

func DefaultTunables() Tunables {
	return Tunables{
		LengthMin:           DefaultLengthMin,
		LengthMax:           DefaultLengthMax,
		WeightMin:           DefaultWeightMin,
		WeightMax:           DefaultWeightMax,
		RotationFactor:      DefaultRotationFactor,
		NoiseDensity:        DefaultNoiseDensity,
		TimeScale:           DefaultTimeScale,
		BaseCellSize:        DefaultBaseCellSize,
		SmallCellSize:       DefaultSmallCellSize,
		MediumCellSize:      DefaultMediumCellSize,
		SmallBreakpoint:     DefaultSmallBreakpoint,
		MediumBreakpoint:    DefaultMediumBreakpoint,
		StrokeColor:         DefaultStrokeColor,
		VisibilityThreshold: DefaultVisibilityThreshold,
	}
}

// Validate reports the first tunable that would make rendering meaningless.
func (t Tunables) Validate() error {
	finite := []struct {
		key string
		val float64
	}{
		{"length_min", t.LengthMin},
		{"length_max", t.LengthMax},
		{"weight_min", t.WeightMin},
		{"weight_max", t.WeightMax},
		{"rotation_factor", t.RotationFactor},
		{"noise_density", t.NoiseDensity},
		{"time_scale", t.TimeScale},
		{"visibility_threshold", t.VisibilityThreshold},
	}
	for _, f := range finite {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return &ConfigError{Key: f.key, Wrapped: ErrInvalidTunables}
		}
	}

	positive := []struct {
		key string
		val float64
	}{
		{"base_cell_size", t.BaseCellSize},
		{"small_cell_size", t.SmallCellSize},
		{"medium_cell_size", t.MediumCellSize},
		{"small_breakpoint", t.SmallBreakpoint},
		{"medium_breakpoint", t.MediumBreakpoint},
	}
	for _, p := range positive {
		if !(p.val > 0) || math.IsInf(p.val, 0) {
			return &ConfigError{Key: p.key, Wrapped: ErrInvalidTunables}
		}
	}

	if t.LengthMin < 0 || t.LengthMax < 0 {
		return &ConfigError{Key: "length", Wrapped: ErrInvalidTunables}
	}
	if t.WeightMin < 0 || t.WeightMax < 0 {
		return &ConfigError{Key: "weight", Wrapped: ErrInvalidTunables}
	}
	if t.SmallBreakpoint >= t.MediumBreakpoint {
		return &ConfigError{Key: "breakpoints", Wrapped: ErrInvalidTunables}
	}
	if t.VisibilityThreshold < 0 || t.VisibilityThreshold > 1 {
		return &ConfigError{Key: "visibility_threshold", Wrapped: ErrInvalidTunables}
	}
	if _, err := ParseColor(t.StrokeColor); err != nil {
		return &ConfigError{Key: "stroke_color", Wrapped: err}
	}
	return nil
}

// ParseColor parses a #rgb or #rrggbb stroke color.
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, ErrInvalidColor
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
