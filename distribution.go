package tiltedstable

import (
	"math"

	"github.com/pkg/errors"
)

// TiltedStable is the exponentially tilted positive stable distribution,
// in the style of the gonum distuv types.
type TiltedStable struct {
	// Alpha is the characteristic exponent, 0 < Alpha < 1.
	Alpha float64
	// Tilt is the exponential tilting rate, Tilt >= 0.
	Tilt float64
	// Method is the algorithm Rand uses. The zero value is Auto.
	Method Method
	// Src supplies the uniforms for Rand and must be set before calling it.
	Src Source

	sampler *Sampler
}

// NewTiltedStable returns the distribution with its samplers bound to src,
// so Rand does not rebuild them on every draw. Src must not be replaced
// afterwards.
func NewTiltedStable(alpha, tilt float64, method Method, src Source) TiltedStable {
	return TiltedStable{
		Alpha:   alpha,
		Tilt:    tilt,
		Method:  method,
		Src:     src,
		sampler: NewWithSource(src, Config{}),
	}
}

// ValidateParams reports whether alpha and tilt lie in the domain the
// samplers are defined on. Sampler.Sample does not call it.
func ValidateParams(alpha, tilt float64) error {
	if !(alpha > 0 && alpha < 1) {
		return errors.Wrapf(ErrDomain, "alpha = %v, want 0 < alpha < 1", alpha)
	}
	if !(tilt >= 0) || math.IsInf(tilt, 1) {
		return errors.Wrapf(ErrDomain, "tilt = %v, want finite tilt >= 0", tilt)
	}
	return nil
}

// Rand returns a random sample drawn from the distribution. It panics if
// Src is nil or the draw fails, which only happens for an invalid Method.
// A value built as a struct literal allocates its samplers on each call;
// use NewTiltedStable for repeated draws.
func (t TiltedStable) Rand() float64 {
	if t.Src == nil {
		panic("tiltedstable: TiltedStable.Src is nil")
	}
	s := t.sampler
	if s == nil {
		s = NewWithSource(t.Src, Config{})
	}
	x, err := s.Sample(t.Alpha, t.Tilt, t.Method)
	if err != nil {
		panic(err)
	}
	return x
}

// Cumulant returns the n-th cumulant, α(1-α)(2-α)···(n-1-α) λ^(α-n).
// It is infinite for a zero tilt.
func (t TiltedStable) Cumulant(n int) float64 {
	if n < 1 {
		return math.NaN()
	}
	c := t.Alpha
	for k := 1; k < n; k++ {
		c *= float64(k) - t.Alpha
	}
	return c * math.Pow(t.Tilt, t.Alpha-float64(n))
}

// Mean returns the mean of the distribution, αλ^(α-1).
func (t TiltedStable) Mean() float64 {
	return t.Cumulant(1)
}

// Variance returns the variance of the distribution, α(1-α)λ^(α-2).
func (t TiltedStable) Variance() float64 {
	return t.Cumulant(2)
}

// StdDev returns the standard deviation of the distribution.
func (t TiltedStable) StdDev() float64 {
	return math.Sqrt(t.Variance())
}

// Skewness returns the skewness of the distribution.
func (t TiltedStable) Skewness() float64 {
	return t.Cumulant(3) / math.Pow(t.Variance(), 1.5)
}

// ExKurtosis returns the excess kurtosis of the distribution.
func (t TiltedStable) ExKurtosis() float64 {
	v := t.Variance()
	return t.Cumulant(4) / (v * v)
}

// LogLaplaceTransform returns log E[exp(-sX)] = -((λ+s)^α - λ^α).
func (t TiltedStable) LogLaplaceTransform(s float64) float64 {
	return -(math.Pow(t.Tilt+s, t.Alpha) - math.Pow(t.Tilt, t.Alpha))
}

// LaplaceTransform returns E[exp(-sX)] for s >= -λ.
func (t TiltedStable) LaplaceTransform(s float64) float64 {
	return math.Exp(t.LogLaplaceTransform(s))
}
