package tiltedstable

import (
	"github.com/pkg/errors"

	"github.com/nozzle/tiltedstable/internal"
	"github.com/nozzle/tiltedstable/internal/rand"
)

var (
	// ErrIterationLimit is returned when Config.MaxIterations is exceeded.
	ErrIterationLimit = internal.ErrIterationLimit
	// ErrStateUnsupported is returned by State and SetState when the source
	// cannot be serialized.
	ErrStateUnsupported = errors.New("random source does not support state capture")
	// ErrInvalidSeed is returned when Config.Seed does not fit the source.
	ErrInvalidSeed = rand.ErrInvalidSeed
	// ErrUnknownSource is returned for an unrecognised Config.Source.
	ErrUnknownSource = rand.ErrUnknownAlgorithm
	// ErrStateMismatch is returned by SetState for a blob captured from a
	// different kind of source.
	ErrStateMismatch = rand.ErrStateMismatch
	// ErrDomain is returned by ValidateParams.
	ErrDomain = errors.New("parameter outside the supported domain")
)
