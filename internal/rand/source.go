// Package rand provides the uniform random sources the samplers draw from.
//
// MT19937 reproduces NumPy's legacy RandomState stream, so a sampler seeded
// the same way as numpy.random.seed(seed) consumes an identical sequence of
// uniforms. Tausworthe and Salsa20 are alternative streams with their own
// serialized state.
package rand

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
)

// Source yields uniform variates in [0, 1).
type Source interface {
	Float64() float64
}

// StatefulSource is a Source whose position in the stream can be captured and
// restored.
type StatefulSource interface {
	Source
	MarshalBinary() ([]byte, error)
	UnmarshalBinary(data []byte) error
}

// Algorithm names a source implementation.
type Algorithm string

const (
	AlgMT19937    Algorithm = "mt19937"
	AlgTausworthe Algorithm = "tausworthe"
	AlgSalsa20    Algorithm = "salsa20"
)

var (
	// ErrUnknownAlgorithm is returned for a source name that is not supported.
	ErrUnknownAlgorithm = errors.New("unknown random source algorithm")
	// ErrInvalidSeed is returned when a seed does not fit the source.
	ErrInvalidSeed = errors.New("seed out of range for random source")
	// ErrStateMismatch is returned when a state blob belongs to another algorithm.
	ErrStateMismatch = errors.New("state blob does not match random source")
)

// New creates the source named by alg, seeded deterministically.
func New(alg Algorithm, seed int64) (StatefulSource, error) {
	switch alg {
	case AlgMT19937, "":
		if seed < 0 || seed > 0xFFFFFFFF {
			return nil, errors.Wrapf(ErrInvalidSeed, "mt19937 seed %d must be in [0, 2^32)", seed)
		}
		return NewMT19937(uint32(seed)), nil
	case AlgTausworthe:
		return NewTausworthe(seed), nil
	case AlgSalsa20:
		return NewSalsa20(seed), nil
	default:
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", alg)
	}
}

// EntropySeed reads a seed from the operating system's entropy pool. The seed
// is limited to 32 bits so that it is valid for every algorithm.
func EntropySeed() (int64, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, errors.Wrap(err, "reading entropy seed")
	}
	return int64(binary.LittleEndian.Uint32(buf[:])), nil
}

// stateBlob is the serialized form shared by all sources. Only the fields
// relevant to Algorithm are populated.
type stateBlob struct {
	Algorithm Algorithm `cbor:"alg"`
	Key       []uint32  `cbor:"key,omitempty"`
	Pos       int       `cbor:"pos"`
	Stream    []byte    `cbor:"stream,omitempty"`
	Block     uint64    `cbor:"block,omitempty"`
}

func encodeState(s stateBlob) ([]byte, error) {
	data, err := cbor.Marshal(s)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s state", s.Algorithm)
	}
	return data, nil
}

func decodeState(data []byte, want Algorithm) (stateBlob, error) {
	var s stateBlob
	if err := cbor.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "decoding %s state", want)
	}
	if s.Algorithm != want {
		return s, errors.Wrapf(ErrStateMismatch, "got %q, want %q", s.Algorithm, want)
	}
	return s, nil
}
