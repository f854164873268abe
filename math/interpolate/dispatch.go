package interpolate

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxThreads is the thread budget used when the caller has no
// preference.
const DefaultMaxThreads = 8

// Worker counts were chosen by profiling. Powers of two perform best.
var workerTiers = []struct {
	below   int
	workers int
}{
	{10000, 1},
	{4000000, 2},
	{160000000, 4},
}

const maxTierWorkers = 8

// NumWorkers returns the number of workers used to interpolate n points when
// at most maxThreads may be used. It is never less than one.
func NumWorkers(n, maxThreads int) int {
	desired := maxTierWorkers
	for _, tier := range workerTiers {
		if n < tier.below {
			desired = tier.workers
			break
		}
	}

	workers := min(desired, maxThreads)
	if workers <= 0 {
		workers = 1
	}
	return workers
}

// chunk is the half-open range of query points handled by one worker.
type chunk struct {
	start, end int
}

// partition splits n points into workers contiguous chunks. Every chunk but
// the last has n / workers points and the last one absorbs the remainder.
func partition(n, workers int) []chunk {
	stride := n / workers
	chunks := make([]chunk, workers)
	for i := range chunks {
		chunks[i].start = i * stride
		chunks[i].end = chunks[i].start + stride
	}
	chunks[workers-1].end = n
	return chunks
}

// WorkerError reports a failure inside one of the dispatch workers.
type WorkerError struct {
	// Worker is the index of the failed worker.
	Worker int
	// Start and End give the range of query points assigned to it.
	Start, End int
	Err        error
}

func (e *WorkerError) Error() string {
	return fmt.Sprintf(
		"worker %d (points [%d, %d)) failed: %s",
		e.Worker, e.Start, e.End, e.Err.Error(),
	)
}

func (e *WorkerError) Unwrap() error { return e.Err }

// dispatch runs k over the len(out) points in points using the given number
// of workers. Each worker writes to its own disjoint region of out. dispatch
// returns once every worker is done; the first failure is returned.
func dispatch(k kernel, g *Grid, points, out []float64, workers int) error {
	n := len(out)
	if workers <= 1 {
		return runChunk(k, g, points, out, 0, chunk{0, n})
	}

	d := g.Dims()
	chunks := partition(n, workers)

	logrus.WithFields(logrus.Fields{
		"points":  n,
		"workers": workers,
		"stride":  n / workers,
		"kernel":  k.String(),
	}).Debug("Dispatching interpolation.")

	var eg errgroup.Group
	for i, c := range chunks {
		i, c := i, c
		eg.Go(func() error {
			return runChunk(
				k, g, points[c.start*d:c.end*d], out[c.start:c.end], i, c,
			)
		})
	}
	return eg.Wait()
}

// runChunk evaluates a single chunk and converts a panic inside the kernel
// into a *WorkerError.
func runChunk(
	k kernel, g *Grid, points, out []float64, worker int, c chunk,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerError{worker, c.start, c.end, panicError(r)}
		}
	}()

	k.eval(g, points, out)
	return nil
}

func panicError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
