// Package internal holds definitions shared by the sampler packages.
package internal

import "github.com/pkg/errors"

// ErrIterationLimit is returned when a rejection loop exceeds the configured
// maximum number of attempts.
var ErrIterationLimit = errors.New("rejection loop exceeded iteration limit")

// IterationLimit reports whether attempt has gone past max.
// A max of zero or less means the loop is unbounded.
func IterationLimit(attempt, max int) bool {
	return max > 0 && attempt > max
}
