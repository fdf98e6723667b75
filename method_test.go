package tiltedstable

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChooseMethod(t *testing.T) {
	tests := []struct {
		alpha, tilt float64
		want        Method
	}{
		{0.5, 0, DivideConquer},
		{0.5, 1, DivideConquer},
		{0.5, 24.99, DivideConquer},
		{0.5, 25, DoubleRejection}, // λ^α == 5 exactly
		{0.5, 100, DoubleRejection},
		{0.8, 2, DivideConquer},
		{0.1, 1e6, DivideConquer}, // 1e6^0.1 ≈ 3.98
		{0.2, 1e6, DoubleRejection},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ChooseMethod(tt.alpha, tt.tilt), "alpha=%v tilt=%v", tt.alpha, tt.tilt)
	}
}

func TestParseMethod(t *testing.T) {
	for name, want := range map[string]Method{
		"":                 Auto,
		"auto":             Auto,
		"divide-conquer":   DivideConquer,
		"double-rejection": DoubleRejection,
	} {
		got, err := ParseMethod(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseMethod("gibbs")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestMethodString(t *testing.T) {
	for _, m := range []Method{Auto, DivideConquer, DoubleRejection} {
		parsed, err := ParseMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	assert.Equal(t, "Method(9)", Method(9).String())
}

func TestMethodText(t *testing.T) {
	var cfg struct {
		Method Method `json:"method"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"method":"double-rejection"}`), &cfg))
	assert.Equal(t, DoubleRejection, cfg.Method)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"method":"double-rejection"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"method":"metropolis"}`), &cfg))

	_, err = Method(-1).MarshalText()
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}
