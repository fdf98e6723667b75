// Package divconq samples exponentially tilted stable variates by splitting
// the target into a sum of independent pieces.
//
// A tilted stable variate with exponent α and tilt λ is the sum of n
// independent tilted stable variates with the same exponent, scale n^(-1/α)
// and the same tilt. Each piece is drawn by plain rejection from its
// non-tilted counterpart, accepting with probability exp(-λS). Splitting
// keeps the per-piece acceptance rate bounded away from zero, so the cost
// grows like the partition count max(1, ⌊λ^α⌋).
package divconq

import (
	"math"

	"github.com/pkg/errors"

	"github.com/nozzle/tiltedstable/internal"
	imath "github.com/nozzle/tiltedstable/internal/math"
	"github.com/nozzle/tiltedstable/internal/rand"
	"github.com/nozzle/tiltedstable/zolotarev"
)

// Sampler draws tilted stable variates by divide and conquer.
type Sampler struct {
	src rand.Source

	// MaxIterations caps the attempts of a single piece. Zero means no cap.
	MaxIterations int
}

// New creates a sampler drawing uniforms from src.
func New(src rand.Source) *Sampler {
	return &Sampler{src: src}
}

// MaxPartitions bounds the partition count. Sample refuses parameters with
// λ^α beyond it; double rejection serves those in constant time.
const MaxPartitions = math.MaxInt32

// PartitionSize returns the number of pieces, max(1, ⌊λ^α⌋), clamped to
// MaxPartitions.
func PartitionSize(alpha, tilt float64) int {
	n := math.Floor(math.Pow(tilt, alpha))
	switch {
	case !(n >= 1):
		return 1
	case n >= MaxPartitions:
		return MaxPartitions
	}
	return int(n)
}

// Scale returns the scale (1/n)^(1/α) of each of n pieces.
func Scale(alpha float64, n int) float64 {
	return math.Pow(1/float64(n), 1/alpha)
}

// Sample returns one tilted stable variate as the sum of PartitionSize pieces.
func (s *Sampler) Sample(alpha, tilt float64) (float64, error) {
	if la := math.Pow(tilt, alpha); la >= MaxPartitions {
		return 0, errors.Wrapf(internal.ErrIterationLimit,
			"divide-conquer needs %g pieces, more than %d (alpha=%g, tilt=%g)", la, MaxPartitions, alpha, tilt)
	}
	n := PartitionSize(alpha, tilt)
	c := Scale(alpha, n)

	var x float64
	for i := range n {
		piece, err := s.SampleDivided(alpha, tilt, c)
		if err != nil {
			return 0, errors.Wrapf(err, "piece %d of %d", i+1, n)
		}
		x += piece
	}
	return x, nil
}

// SampleDivided draws S = c·S₀ with S₀ non-tilted stable, accepting S with
// probability exp(-λS).
func (s *Sampler) SampleDivided(alpha, tilt, scale float64) (float64, error) {
	for attempt := 1; ; attempt++ {
		if internal.IterationLimit(attempt, s.MaxIterations) {
			return 0, errors.Wrapf(internal.ErrIterationLimit,
				"divide-conquer rejection after %d attempts (alpha=%g, tilt=%g)", s.MaxIterations, alpha, tilt)
		}
		x := scale * s.SampleNonTilted(alpha)
		acceptProb := imath.SafeExp(-tilt * x)
		if s.src.Float64() < acceptProb {
			return x, nil
		}
	}
}

// SampleNonTilted draws a positive stable variate with Laplace transform
// exp(-s^α) using Kanter's representation (A(πV, α)/E)^((1-α)/α).
func (s *Sampler) SampleNonTilted(alpha float64) float64 {
	v := s.src.Float64()
	e := -math.Log(s.src.Float64())
	return zolotarev.Kanter(v, e, alpha)
}
