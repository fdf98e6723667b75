// Package zolotarev implements Zolotarev's integral representation of the
// positive stable law, in the form used by Kanter's and Devroye's samplers.
//
// For 0 < α < 1 and a uniform angle U on (0, π), the variate
//
//	S = (A(U, α) / E)^((1-α)/α)
//
// with E a standard exponential is positive stable with Laplace transform
// exp(-s^α).
package zolotarev

import (
	"math"

	imath "github.com/nozzle/tiltedstable/internal/math"
)

// A evaluates Zolotarev's function
//
//	A(x, α) = [ ((1-α) sinc((1-α)x))^(1-α) (α sinc(αx))^α / sinc(x) ]^(1/(1-α))
//
// Writing it through sinc keeps the expression finite at x = 0, where it
// equals α^(α/(1-α)) (1-α).
func A(x, alpha float64) float64 {
	beta := 1 - alpha
	num := math.Pow(beta*imath.Sinc(beta*x), beta) * math.Pow(alpha*imath.Sinc(alpha*x), alpha)
	return math.Pow(num/imath.Sinc(x), 1/beta)
}

// ExpPDF evaluates the ratio
//
//	sinc(x) / ( sinc(αx)^α sinc((1-α)x)^(1-α) )
//
// which equals α^α (1-α)^(1-α) / A(x, α)^(1-α). It decreases from 1 at x = 0
// to 0 at x = π.
func ExpPDF(x, alpha float64) float64 {
	den := math.Pow(imath.Sinc(alpha*x), alpha) * math.Pow(imath.Sinc((1-alpha)*x), 1-alpha)
	return imath.Sinc(x) / den
}

// Kanter maps a uniform v on [0, 1) and a standard exponential e to the
// positive stable variate (A(πv, α)/e)^((1-α)/α).
func Kanter(v, e, alpha float64) float64 {
	return math.Pow(A(math.Pi*v, alpha)/e, (1-alpha)/alpha)
}
