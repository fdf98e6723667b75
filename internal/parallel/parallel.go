// Package parallel provides parallel execution helpers.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Chunks splits [0, total) into at most n contiguous chunks and runs
// fn(worker, chunkStart, chunkEnd) for each chunk on its own goroutine.
// Chunk boundaries depend only on total and n, so a worker index always
// covers the same range. The first error returned by any fn is returned.
func Chunks(total, n int, fn func(worker, chunkStart, chunkEnd int) error) error {
	if total <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	if n == 1 {
		return fn(0, 0, total)
	}

	var g errgroup.Group
	chunkSize := (total + n - 1) / n

	for w := 0; w < n; w++ {
		chunkStart := w * chunkSize
		chunkEnd := chunkStart + chunkSize
		if chunkEnd > total {
			chunkEnd = total
		}
		if chunkStart >= chunkEnd {
			break
		}

		g.Go(func() error {
			return fn(w, chunkStart, chunkEnd)
		})
	}

	return g.Wait()
}
