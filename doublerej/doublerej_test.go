package doublerej

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/nozzle/tiltedstable/internal"
	"github.com/nozzle/tiltedstable/internal/rand"
	"github.com/nozzle/tiltedstable/zolotarev"
)

// cycleSource replays vals forever.
type cycleSource struct {
	vals []float64
	i    int
}

func (c *cycleSource) Float64() float64 {
	v := c.vals[c.i%len(c.vals)]
	c.i++
	return v
}

func TestNewConstants(t *testing.T) {
	k := NewConstants(0.5, 1)

	assert.Equal(t, 1.0, k.B)
	assert.Equal(t, 1.0, k.LamAlpha)
	assert.Equal(t, 0.25, k.Gamma)
	assert.Equal(t, 0.5, k.SqrtGamma)

	c3 := (2 + math.Sqrt(math.Pi/2)) * 0.5
	assert.InDelta(t, (1+math.Sqrt2*c3)/math.Pi, k.Xi, 1e-15)
	assert.InDelta(t, c3*math.Exp(-0.25*math.Pi*math.Pi/8)/math.Sqrt(math.Pi), k.Psi, 1e-15)
	assert.InDelta(t, math.Sqrt(math.Pi/2)*k.Xi/0.5, k.W1, 1e-14)
	assert.InDelta(t, 2*math.Sqrt(math.Pi)*k.Psi, k.W2, 1e-14)
	assert.InDelta(t, k.Xi*math.Pi, k.W3, 1e-14)

	k = NewConstants(0.8, 32)
	assert.InDelta(t, 0.25, k.B, 1e-15)
	assert.InDelta(t, 16, k.LamAlpha, 1e-12)
	assert.InDelta(t, 16*0.8*0.2, k.Gamma, 1e-12)
}

func TestSampleReferenceValues(t *testing.T) {
	// Computed from the same algorithm driven by numpy.random.RandomState(42).
	// (0.5, 1) and (0.3, 50) exercise γ < 1; (0.7, 100) the half-normal branch.
	tests := []struct {
		alpha, tilt float64
		want        []float64
	}{
		{0.5, 1, []float64{1.2210822525955627, 1.317930784908941, 0.15348306522920907, 0.5804258652499081}},
		{0.7, 100, []float64{0.18716593882864527, 0.18248737678042942, 0.19745174981372215, 0.14302289465772086}},
		{0.3, 50, []float64{0.025469457812387037, 0.03591758498476174, 0.013882761145972682, 0.037806696202990216}},
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

func TestSampleAuxRange(t *testing.T) {
	for _, p := range []struct{ alpha, tilt float64 }{{0.5, 1}, {0.7, 100}, {0.2, 1e4}} {
		s := New(rand.NewMT19937(9))
		k := NewConstants(p.alpha, p.tilt)
		for range 2000 {
			aux, err := s.sampleAux(&k)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, aux.U, 0.0)
			assert.Less(t, aux.U, math.Pi)
			assert.GreaterOrEqual(t, aux.Z, 0.0)
			assert.LessOrEqual(t, aux.Z, 1.0)
			assert.Greater(t, aux.SmallZ, 1.0)
		}
	}
}

func TestLogAcceptProb(t *testing.T) {
	k := NewConstants(0.5, 4)
	base := reference{A: 1, M: 2, Delta: 0.5}

	r := base
	r.X = 0
	assert.True(t, math.IsInf(logAcceptProb(r, &k), -1))
	r.X = -1
	assert.True(t, math.IsInf(logAcceptProb(r, &k), -1))

	// At the mode the target term vanishes and the uniform bridge needs no
	// correction.
	r = base
	r.X = r.M
	assert.Equal(t, 0.0, logAcceptProb(r, &k))

	// Left of the mode the half-normal density is undone with N²/2.
	r = base
	r.N = 1.5
	r.X = r.M - r.Delta*r.N
	withN := logAcceptProb(r, &k)
	r.N = 0
	assert.InDelta(t, 1.125, withN-logAcceptProb(r, &k), 1e-12)

	// Right of the bridge the exponential density is undone with E.
	r = base
	r.E = 0.7
	r.X = r.M + r.Delta + 0.3
	withE := logAcceptProb(r, &k)
	r.E = 0
	assert.InDelta(t, 0.7, withE-logAcceptProb(r, &k), 1e-12)

	// Inside the bridge E is ignored.
	r = base
	r.E = 0.7
	r.X = r.M + r.Delta/2
	withE = logAcceptProb(r, &k)
	r.E = 0
	assert.Equal(t, logAcceptProb(r, &k), withE)
}

func TestSampleMoments(t *testing.T) {
	for _, p := range []struct{ alpha, tilt float64 }{{0.5, 1}, {0.8, 2}, {0.7, 100}, {0.3, 50}} {
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

func TestSampleLargeTilt(t *testing.T) {
	// The tilted law concentrates around its mean αλ^(α-1) as λ grows.
	const alpha, tilt = 0.5, 1e6
	s := New(rand.NewMT19937(8))
	xs := make([]float64, 5000)
	for i := range xs {
		x, err := s.Sample(alpha, tilt)
		require.NoError(t, err)
		require.False(t, math.IsNaN(x) || math.IsInf(x, 0))
		xs[i] = x
	}
	assert.InEpsilon(t, alpha*math.Pow(tilt, alpha-1), stat.Mean(xs, nil), 0.01)
}

func TestSampleIterationLimit(t *testing.T) {
	// 0.99 selects the π(1-W²) component and W = 0 lands on U = π, whose
	// acceptance probability is zero.
	s := New(&cycleSource{vals: []float64{0.99, 0}})
	s.MaxIterations = 5

	_, err := s.Sample(0.5, 1)
	assert.ErrorIs(t, err, internal.ErrIterationLimit)
}

func TestSampleZeroTilt(t *testing.T) {
	const alpha = 0.6
	s := New(rand.NewMT19937(11))
	s.MaxIterations = 1000
	ref := rand.NewMT19937(11)

	xs := make([]float64, 50000)
	for i := range xs {
		x, err := s.Sample(alpha, 0)
		require.NoError(t, err)
		require.Greater(t, x, 0.0)

		v := ref.Float64()
		e := -math.Log(ref.Float64())
		require.Equal(t, zolotarev.Kanter(v, e, alpha), x)
		xs[i] = x
	}

	// E[exp(-sX)] = exp(-s^α) for the untilted law.
	for _, lap := range []float64{0.5, 1, 2} {
		var sum float64
		for _, x := range xs {
			sum += math.Exp(-lap * x)
		}
		assert.InDelta(t, math.Exp(-math.Pow(lap, alpha)), sum/float64(len(xs)), 0.01, "s=%v", lap)
	}
}
