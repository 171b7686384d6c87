// Package noise provides the 3-D noise samplers that drive the field.
package noise

import (
	"fmt"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

const (
	KindSimplex = "simplex"
	KindPerlin  = "perlin"
)

// Sampler is a deterministic, continuous noise function with output
// roughly in [-1, 1].
type Sampler interface {
	Eval3(x, y, z float64) float64
}

// Func adapts a plain function to a Sampler.
type Func func(x, y, z float64) float64

func (f Func) Eval3(x, y, z float64) float64 { return f(x, y, z) }

// NewSimplex returns OpenSimplex noise for the seed.
func NewSimplex(seed int64) Sampler {
	return opensimplex.New(seed)
}

type perlinSampler struct {
	p *perlin.Perlin
}

func (s perlinSampler) Eval3(x, y, z float64) float64 {
	return s.p.Noise3D(x, y, z)
}

// NewPerlin returns classic Perlin noise for the seed.
func NewPerlin(seed int64) Sampler {
	return perlinSampler{p: perlin.NewPerlin(2, 2, 3, seed)}
}

var constructors = map[string]func(int64) Sampler{
	KindSimplex: NewSimplex,
	KindPerlin:  NewPerlin,
}

// New builds a sampler by kind name.
func New(kind string, seed int64) (Sampler, error) {
	ctor, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("unknown noise kind: %s (available: %v)", kind, Kinds())
	}
	return ctor(seed), nil
}

// Kinds lists the available sampler names.
func Kinds() []string {
	kinds := make([]string, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
