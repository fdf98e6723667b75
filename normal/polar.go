// Package normal generates standard normal variates from a uniform source.
package normal

import (
	"math"

	"github.com/nozzle/tiltedstable/internal/rand"
)

// Polar draws N(0, 1) variates with Marsaglia's polar method. Each accepted
// pair of uniforms yields two independent normals; only one is returned and
// the other is discarded, so every call starts from a fresh pair.
//
// With an MT19937 source the first draw after seeding matches the first
// value of numpy.random.RandomState(seed).standard_normal().
type Polar struct {
	src rand.Source
}

// NewPolar creates a sampler drawing uniforms from src.
func NewPolar(src rand.Source) *Polar {
	return &Polar{src: src}
}

// Next returns a standard normal variate.
func (p *Polar) Next() float64 {
	for {
		x := 2*p.src.Float64() - 1
		y := 2*p.src.Float64() - 1
		s := x*x + y*y
		if s >= 1 || s == 0 {
			continue
		}
		return y * math.Sqrt(-2*math.Log(s)/s)
	}
}
