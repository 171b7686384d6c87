package config

import (
	"sort"

	"github.com/san-kum/windfield/internal/field"
)

func preset(fn func(*field.Tunables)) field.Tunables {
	t := field.DefaultTunables()
	fn(&t)
	return t
}

var Presets = map[string]field.Tunables{
	"default": field.DefaultTunables(),
	"calm": preset(func(t *field.Tunables) {
		t.RotationFactor = 0.25
		t.TimeScale = 0.003
		t.WeightMin, t.WeightMax = 1, 4
	}),
	"gusty": preset(func(t *field.Tunables) {
		t.RotationFactor = 2
		t.TimeScale = 0.02
		t.NoiseDensity = 0.002
		t.LengthMin, t.LengthMax = 0.3, 1.0
	}),
	"dense": preset(func(t *field.Tunables) {
		t.BaseCellSize = 20
		t.SmallCellSize = 14
		t.MediumCellSize = 16
		t.WeightMin, t.WeightMax = 1, 5
	}),
	"ink": preset(func(t *field.Tunables) {
		t.StrokeColor = "#1B1F24"
		t.WeightMin, t.WeightMax = 1, 3
		t.LengthMin, t.LengthMax = 0.7, 0.95
	}),
}

func GetPreset(name string) *field.Tunables {
	t, ok := Presets[name]
	if !ok {
		return nil
	}
	return &t
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
