// Package doublerej implements Devroye's double rejection sampler for the
// exponentially tilted positive stable law.
//
// The variate is produced as X^(-b), b = (1-α)/α, where X is drawn by a
// rejection step whose proposal itself depends on an auxiliary angle U drawn
// by a second rejection step. The expected number of iterations stays
// bounded uniformly in the tilt, which makes the method the better choice
// once λ^α is large.
//
// Reference: L. Devroye, "Random variate generation for exponentially and
// polynomially tilted stable distributions", ACM TOMACS 19(4), 2009.
package doublerej

import (
	"math"

	"github.com/pkg/errors"

	"github.com/nozzle/tiltedstable/internal"
	imath "github.com/nozzle/tiltedstable/internal/math"
	"github.com/nozzle/tiltedstable/internal/rand"
	"github.com/nozzle/tiltedstable/normal"
	"github.com/nozzle/tiltedstable/zolotarev"
)

var (
	sqrtPi     = math.Sqrt(math.Pi)
	sqrtHalfPi = math.Sqrt(math.Pi / 2)
)

// Constants holds the shape constants of one sampling call. They depend only
// on α and λ and are recomputed on every call.
type Constants struct {
	Alpha     float64
	B         float64 // (1-α)/α
	LamAlpha  float64 // λ^α
	Gamma     float64 // λ^α α (1-α)
	SqrtGamma float64
	Xi        float64
	Psi       float64

	// Mixture weights of the auxiliary proposal.
	W1, W2, W3 float64
}

// NewConstants computes the shape constants for exponent alpha and tilt.
func NewConstants(alpha, tilt float64) Constants {
	k := Constants{Alpha: alpha}
	k.B = (1 - alpha) / alpha
	k.LamAlpha = math.Pow(tilt, alpha)
	k.Gamma = k.LamAlpha * alpha * (1 - alpha)
	k.SqrtGamma = math.Sqrt(k.Gamma)

	c3 := (2 + sqrtHalfPi) * k.SqrtGamma
	k.Xi = (1 + math.Sqrt2*c3) / math.Pi
	k.Psi = c3 * imath.SafeExp(-k.Gamma*math.Pi*math.Pi/8) / sqrtPi

	k.W1 = sqrtHalfPi * k.Xi / k.SqrtGamma
	k.W2 = 2 * sqrtPi * k.Psi
	k.W3 = k.Xi * math.Pi
	return k
}

// Sampler draws tilted stable variates by double rejection.
type Sampler struct {
	src    rand.Source
	normal *normal.Polar

	// MaxIterations caps the attempts of each rejection loop. Zero means no cap.
	MaxIterations int
}

// New creates a sampler drawing uniforms from src. Normal variates are drawn
// from the same stream.
func New(src rand.Source) *Sampler {
	return &Sampler{src: src, normal: normal.NewPolar(src)}
}

// Sample returns one tilted stable variate. A zero tilt has no reference
// density, so the variate is then drawn directly by Kanter's representation.
func (s *Sampler) Sample(alpha, tilt float64) (float64, error) {
	k := NewConstants(alpha, tilt)
	if k.LamAlpha == 0 {
		v := s.src.Float64()
		e := -math.Log(s.src.Float64())
		return zolotarev.Kanter(v, e, alpha), nil
	}

	for attempt := 1; ; attempt++ {
		if internal.IterationLimit(attempt, s.MaxIterations) {
			return 0, errors.Wrapf(internal.ErrIterationLimit,
				"double-rejection outer loop after %d attempts (alpha=%g, tilt=%g)", s.MaxIterations, alpha, tilt)
		}

		aux, err := s.sampleAux(&k)
		if err != nil {
			return 0, err
		}
		ref := s.sampleReference(aux.U, aux.SmallZ, &k)
		if logAcceptProb(ref, &k) > math.Log(aux.Z) {
			return math.Pow(ref.X, -k.B), nil
		}
	}
}

// auxDraw is an accepted auxiliary triple. Z is the uniform scaled by the
// inverse acceptance probability of U; SmallZ is the tail constant z(U).
type auxDraw struct {
	U      float64
	Z      float64
	SmallZ float64
}

func (s *Sampler) sampleAux(k *Constants) (auxDraw, error) {
	for attempt := 1; ; attempt++ {
		if internal.IterationLimit(attempt, s.MaxIterations) {
			return auxDraw{}, errors.Wrapf(internal.ErrIterationLimit,
				"double-rejection auxiliary loop after %d attempts (alpha=%g)", s.MaxIterations, k.Alpha)
		}

		u := s.sampleAux2(k)
		if u > math.Pi {
			continue
		}

		zeta := math.Sqrt(zolotarev.ExpPDF(u, k.Alpha))
		z := 1 / (1 - math.Pow(1+k.Alpha*zeta/k.SqrtGamma, -1/k.Alpha))

		rho := auxInverseAcceptProb(u, zeta, z, k)
		if math.IsInf(rho, 1) {
			continue
		}

		bigZ := s.src.Float64() * rho
		if u < math.Pi && bigZ <= 1 {
			return auxDraw{U: u, Z: bigZ, SmallZ: z}, nil
		}
	}
}

// sampleAux2 draws U from the three-component mixture dominating the density
// of the auxiliary angle: a half-normal near zero (γ ≥ 1 only), a uniform on
// (0, π) (γ < 1 only) and a π(1-W²) component for the singularity at π.
func (s *Sampler) sampleAux2(k *Constants) float64 {
	v := s.src.Float64()
	if k.Gamma >= 1 {
		if v < k.W1/(k.W1+k.W2) {
			return math.Abs(s.normal.Next()) / k.SqrtGamma
		}
		w := s.src.Float64()
		return math.Pi * (1 - w*w)
	}

	w := s.src.Float64()
	if v < k.W3/(k.W2+k.W3) {
		return math.Pi * w
	}
	return math.Pi * (1 - w*w)
}

// auxInverseAcceptProb returns ρ, the reciprocal of the probability with which
// the auxiliary angle u is accepted.
func auxInverseAcceptProb(u, zeta, z float64, k *Constants) float64 {
	var d float64
	if u >= 0 && k.Gamma >= 1 {
		d += k.Xi * imath.SafeExp(-k.Gamma*u*u/2)
	}
	if u > 0 && u < math.Pi {
		d += k.Psi / math.Sqrt(math.Pi-u)
	}
	if u >= 0 && u <= math.Pi && k.Gamma < 1 {
		d += k.Xi
	}

	rho := math.Pi * imath.SafeExp(-k.LamAlpha*(1-1/(zeta*zeta)))
	rho /= (1+sqrtHalfPi)*k.SqrtGamma/zeta + z
	return rho * d
}

// reference is a draw of X from the three-piece proposal together with the
// auxiliary variates needed to undo the proposal density.
type reference struct {
	X     float64
	N     float64 // normal variate of the left half-normal piece, else 0
	E     float64 // exponential variate of the right tail piece, else 0
	A     float64 // A(U, α)
	M     float64 // mode of the target
	Delta float64 // width of the uniform bridge
}

func (s *Sampler) sampleReference(u, z float64, k *Constants) reference {
	r := reference{A: zolotarev.A(u, k.Alpha)}
	r.M = math.Pow(k.B/r.A, k.Alpha) * k.LamAlpha
	r.Delta = math.Sqrt(r.M * k.Alpha / r.A)

	a1 := r.Delta * sqrtHalfPi
	a3 := z / r.A
	total := a1 + r.Delta + a3

	v := s.src.Float64()
	switch {
	case v < a1/total:
		r.N = s.normal.Next()
		r.X = r.M - r.Delta*math.Abs(r.N)
	case v < (a1+r.Delta)/total:
		r.X = r.M + r.Delta*s.src.Float64()
	default:
		r.E = -math.Log(s.src.Float64())
		r.X = r.M + r.Delta + r.E*a3
	}
	return r
}

// logAcceptProb is the log probability of accepting r.X. Non-positive X is
// outside the support and is always rejected.
func logAcceptProb(r reference, k *Constants) float64 {
	if r.X <= 0 {
		return math.Inf(-1)
	}

	scale := imath.SafeExp(math.Log(k.LamAlpha)/k.Alpha - k.B*math.Log(r.M))
	logProb := -(r.A*(r.X-r.M) + scale*(math.Pow(r.M/r.X, k.B)-1))
	if r.X < r.M {
		logProb += r.N * r.N / 2
	} else if r.X > r.M+r.Delta {
		logProb += r.E
	}
	return logProb
}
