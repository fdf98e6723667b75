package tiltedstable

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Method selects the sampling algorithm.
type Method int

const (
	// Auto picks the cheaper algorithm for the given parameters.
	Auto Method = iota
	// DivideConquer sums max(1, ⌊λ^α⌋) independently tilted pieces.
	DivideConquer
	// DoubleRejection uses Devroye's double rejection algorithm.
	DoubleRejection
)

// DoubleRejectionCost is the cost of one double rejection draw relative to a
// single divide-and-conquer piece. Divide and conquer is preferred while
// λ^α stays below it.
const DoubleRejectionCost = 5.0

// ErrUnsupportedMethod is returned for a method outside the Method enumeration.
var ErrUnsupportedMethod = errors.New("unsupported sampling method")

// String returns the method name accepted by ParseMethod.
func (m Method) String() string {
	switch m {
	case Auto:
		return "auto"
	case DivideConquer:
		return "divide-conquer"
	case DoubleRejection:
		return "double-rejection"
	default:
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMethod converts a method name to a Method. The empty string is Auto.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "", "auto":
		return Auto, nil
	case "divide-conquer":
		return DivideConquer, nil
	case "double-rejection":
		return DoubleRejection, nil
	default:
		return Auto, errors.Wrapf(ErrUnsupportedMethod, "%q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, errors.Wrapf(ErrUnsupportedMethod, "%d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Method can be read
// straight from configuration files.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Method) valid() bool {
	return m >= Auto && m <= DoubleRejection
}

// ChooseMethod returns the algorithm Auto resolves to: DivideConquer when
// λ^α < DoubleRejectionCost, DoubleRejection otherwise.
func ChooseMethod(alpha, tilt float64) Method {
	if math.Pow(tilt, alpha) < DoubleRejectionCost {
		return DivideConquer
	}
	return DoubleRejection
}
