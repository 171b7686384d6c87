package config

import (
	"fmt"
	"os"

	"github.com/san-kum/windfield/internal/field"
	"github.com/san-kum/windfield/internal/noise"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS           = 60
	DefaultViewportWidth = 1280.0
	DefaultWidth         = 800.0
	DefaultHeight        = 400.0
	DefaultNoise         = noise.KindSimplex
	DefaultLogLevel      = "info"
)

type Config struct {
	Tunables      field.Tunables   `yaml:"tunables"`
	Noise         NoiseConfig      `yaml:"noise"`
	ViewportWidth float64          `yaml:"viewport_width"`
	FPS           int              `yaml:"fps"`
	Style         string           `yaml:"style"`
	Page          string           `yaml:"page"`
	Instances     []InstanceConfig `yaml:"instances"`
	Log           LogConfig        `yaml:"log"`
}

type NoiseConfig struct {
	Kind string `yaml:"kind"`
	Seed int64  `yaml:"seed"`
}

type InstanceConfig struct {
	ID          string  `yaml:"id"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Autoplay    bool    `yaml:"autoplay"`
	StrokeColor string  `yaml:"stroke_color"`
	CellSize    float64 `yaml:"cell_size"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Tunables:      field.DefaultTunables(),
		Noise:         NoiseConfig{Kind: DefaultNoise},
		ViewportWidth: DefaultViewportWidth,
		FPS:           DefaultFPS,
		Instances: []InstanceConfig{
			{ID: "hero", Width: DefaultWidth, Height: DefaultHeight, Autoplay: true},
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings that are not per-instance. Bad instances are
// left for field.New to reject one at a time.
func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if !(c.ViewportWidth > 0) {
		return fmt.Errorf("viewport_width must be positive, got %f", c.ViewportWidth)
	}
	if _, err := noise.New(c.Noise.Kind, c.Noise.Seed); err != nil {
		return err
	}
	seen := make(map[string]bool, len(c.Instances))
	for _, ic := range c.Instances {
		if ic.ID == "" {
			return fmt.Errorf("instance without id")
		}
		if seen[ic.ID] {
			return fmt.Errorf("duplicate instance id: %s", ic.ID)
		}
		seen[ic.ID] = true
	}
	return nil
}

func (c *Config) Sampler() (noise.Sampler, error) {
	return noise.New(c.Noise.Kind, c.Noise.Seed)
}

// Instance finds an instance by id.
func (c *Config) Instance(id string) (InstanceConfig, bool) {
	for _, ic := range c.Instances {
		if ic.ID == id {
			return ic, true
		}
	}
	return InstanceConfig{}, false
}

func (c *Config) Options() []field.Options {
	opts := make([]field.Options, len(c.Instances))
	for i, ic := range c.Instances {
		opts[i] = ic.Options()
	}
	return opts
}

func (ic InstanceConfig) Options() field.Options {
	return field.Options{
		ID:          ic.ID,
		Width:       ic.Width,
		Height:      ic.Height,
		Autoplay:    ic.Autoplay,
		StrokeColor: ic.StrokeColor,
		CellSize:    ic.CellSize,
	}
}
