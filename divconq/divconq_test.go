package divconq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/tiltedstable/internal"
	"github.com/nozzle/tiltedstable/internal/rand"
)

func TestPartitionSize(t *testing.T) {
	tests := []struct {
		alpha, tilt float64
		want        int
	}{
		{0.5, 0, 1},
		{0.5, 0.5, 1},
		{0.5, 1, 1},
		{0.5, 3.99, 1},
		{0.5, 4, 2},
		{0.5, 100, 10},
		{0.8, 2, 1},
		{0.5, 25, 5},
		{0.9, 1000, int(math.Floor(math.Pow(1000, 0.9)))},
		{0.5, math.NaN(), 1},
		{0.5, 1e40, MaxPartitions},
		{0.9, math.Inf(1), MaxPartitions},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PartitionSize(tt.alpha, tt.tilt), "alpha=%v tilt=%v", tt.alpha, tt.tilt)
	}
}

func TestScale(t *testing.T) {
	assert.Equal(t, 1.0, Scale(0.5, 1))
	assert.InDelta(t, 0.25, Scale(0.5, 2), 1e-15)
	assert.InDelta(t, math.Pow(0.2, 1/0.3), Scale(0.3, 5), 1e-15)
}

func TestSampleSumsPartitions(t *testing.T) {
	const alpha, tilt = 0.5, 30.0 // five pieces
	n := PartitionSize(alpha, tilt)
	require.Equal(t, 5, n)

	got, err := New(rand.NewMT19937(3)).Sample(alpha, tilt)
	require.NoError(t, err)

	manual := New(rand.NewMT19937(3))
	var want float64
	for range n {
		piece, err := manual.SampleDivided(alpha, tilt, Scale(alpha, n))
		require.NoError(t, err)
		want += piece
	}
	assert.Equal(t, want, got)
}

func TestSampleReferenceValues(t *testing.T) {
	// Computed from the same algorithm driven by numpy.random.RandomState(42).
	tests := []struct {
		alpha, tilt float64
		want        []float64
	}{
		{0.5, 1, []float64{0.3872529536554395, 0.22854570132375193, 0.3343599015094537, 0.2132438754539446}},
		{0.8, 2, []float64{0.7072456869404967, 0.8495577082963834, 0.727846329718315, 0.41918768587948607}},
		{0.3, 50, []float64{0.01019640369955305, 0.04941776945736331, 0.002159867896869528, 0.007112469321054567}},
	}

	for _, tt := range tests {
		s := New(rand.NewMT19937(42))
		for i, want := range tt.want {
			got, err := s.Sample(tt.alpha, tt.tilt)
			require.NoError(t, err)
			assert.InEpsilon(t, want, got, 1e-9, "alpha=%v tilt=%v draw %d", tt.alpha, tt.tilt, i)
		}
	}
}

func TestNonTiltedLaplaceTransform(t *testing.T) {
	// E[exp(-sS)] = exp(-s^α) for the non-tilted law.
	const alpha = 0.6
	s := New(rand.NewMT19937(11))
	xs := make([]float64, 50000)
	for i := range xs {
		xs[i] = s.SampleNonTilted(alpha)
		require.Greater(t, xs[i], 0.0)
	}

	for _, lap := range []float64{0.5, 1, 2} {
		var sum float64
		for _, x := range xs {
			sum += math.Exp(-lap * x)
		}
		assert.InDelta(t, math.Exp(-math.Pow(lap, alpha)), sum/float64(len(xs)), 0.01, "s=%v", lap)
	}
}

func TestSampleMoments(t *testing.T) {
	for _, p := range []struct{ alpha, tilt float64 }{{0.5, 1}, {0.8, 2}, {0.4, 20}} {
		s := New(rand.NewMT19937(5))
		xs := make([]float64, 20000)
		for i := range xs {
			x, err := s.Sample(p.alpha, p.tilt)
			require.NoError(t, err)
			require.Greater(t, x, 0.0)
			xs[i] = x
		}
		mean := p.alpha * math.Pow(p.tilt, p.alpha-1)
		variance := p.alpha * (1 - p.alpha) * math.Pow(p.tilt, p.alpha-2)
		assert.InEpsilon(t, mean, stat.Mean(xs, nil), 0.04, "mean alpha=%v tilt=%v", p.alpha, p.tilt)
		assert.InEpsilon(t, variance, stat.Variance(xs, nil), 0.15, "variance alpha=%v tilt=%v", p.alpha, p.tilt)
	}
}

func TestSampleIterationLimit(t *testing.T) {
	// With a huge tilt and a single piece the acceptance probability is
	// effectively zero.
	s := New(rand.NewMT19937(1))
	s.MaxIterations = 10
	_, err := s.SampleDivided(0.5, 1e12, 1)
	assert.ErrorIs(t, err, internal.ErrIterationLimit)
}

func TestSamplePartitionLimit(t *testing.T) {
	// λ^α = 1e20 would overflow an int partition count.
	src := rand.NewMT19937(1)
	before := *src
	_, err := New(src).Sample(0.5, 1e40)
	assert.ErrorIs(t, err, internal.ErrIterationLimit)
	assert.Equal(t, before, *src, "no uniforms consumed")
}
