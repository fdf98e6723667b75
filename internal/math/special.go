// Package math provides the overflow-safe elementary functions the samplers
// are built on.
package math

import "math"

// MaxExpArg is the largest argument for which math.Exp does not overflow.
const MaxExpArg = 709.782712893384

// sincTaylorCutoff bounds the window in which Sinc uses its series expansion.
// At the edge of the window the truncation error is below 2e-16.
const sincTaylorCutoff = 0.01

// SafeExp computes e^x, saturating to +Inf above MaxExpArg and to 0 below
// -MaxExpArg instead of producing overflow or subnormal noise.
func SafeExp(x float64) float64 {
	if x > MaxExpArg {
		return math.Inf(1)
	}
	if x < -MaxExpArg {
		return 0
	}
	return math.Exp(x)
}

// Sinc returns sin(x)/x with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if math.Abs(x) < sincTaylorCutoff {
		x2 := x * x
		return 1 - x2/6*(1-x2/20)
	}
	return math.Sin(x) / x
}
