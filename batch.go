package tiltedstable

import (
	"github.com/pkg/errors"

	"github.com/nozzle/tiltedstable/internal/parallel"
	"github.com/nozzle/tiltedstable/internal/rand"
)

// SampleN draws n variates in sequence from the sampler's stream.
func (s *Sampler) SampleN(n int, alpha, tilt float64, method Method) ([]float64, error) {
	xs := make([]float64, n)
	for i := range xs {
		x, err := s.Sample(alpha, tilt, method)
		if err != nil {
			return nil, errors.Wrapf(err, "draw %d of %d", i+1, n)
		}
		xs[i] = x
	}
	return xs, nil
}

// SampleParallel draws n variates on workers goroutines. Each worker owns a
// private source of the configured kind seeded with (seed + worker) mod 2^32,
// so the result is reproducible for a fixed seed and worker count.
// workers <= 0 uses GOMAXPROCS.
func SampleParallel(config Config, n, workers int, alpha, tilt float64, method Method) ([]float64, error) {
	if workers <= 0 {
		workers = parallel.NumWorkers()
	}

	var base int64
	if config.Seed != nil {
		base = *config.Seed
	} else {
		var err error
		if base, err = rand.EntropySeed(); err != nil {
			return nil, err
		}
	}

	xs := make([]float64, n)
	err := parallel.Chunks(n, workers, func(worker, start, end int) error {
		cfg := config
		cfg.Seed = FixedSeed((base + int64(worker)) & 0xFFFFFFFF)
		s, err := New(cfg)
		if err != nil {
			return err
		}
		for i := start; i < end; i++ {
			x, err := s.Sample(alpha, tilt, method)
			if err != nil {
				return errors.Wrapf(err, "worker %d draw %d", worker, i)
			}
			xs[i] = x
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return xs, nil
}
