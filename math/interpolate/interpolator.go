/*package interpolate implements multi-linear interpolation on regular grids
of any dimension, along with the batched, parallel Interpolate entry point.
*/
package interpolate

import (
	"fmt"
)

// Interpolator is a 1D interpolator.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
	// EvalAll evaluates a sequeunce of values and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs []float64, out ...[]float64) []float64
}

var (
	_ Interpolator = &Linear{}
)

// BiInterpolator is a 2D interpolator.
type BiInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y float64) float64
	// EvalAll evaluates a sequeunce of points and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs, ys []float64, out ...[]float64) []float64
}

var (
	_ BiInterpolator = &BiLinear{}
)

// TriInterpolator is a 3D interpolator.
type TriInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y, z float64) float64
	// EvalAll evaluates a sequeunce of points and returns the result. An
	// optional output array can be supplied to prevent unneeded heap
	// allocations.
	EvalAll(xs, ys, zs []float64, out ...[]float64) []float64
}

var (
	_ TriInterpolator = &TriLinear{}
)

// MultiInterpolator is an interpolator in an arbitrary number of dimensions.
type MultiInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x ...float64) float64
	// EvalAll evaluates a flat, row-major batch of points.
	EvalAll(points []float64, out ...[]float64) []float64
}

var (
	_ MultiInterpolator = &MultiLinear{}
)

// Interpolate evaluates g at every point of the flat, row-major query batch
// points and returns a newly allocated buffer with one value per point, in
// the same order as the batch. The batch is split between up to maxThreads
// workers (see NumWorkers) and Interpolate returns only after every worker
// has finished.
//
// The returned buffer is not referenced by anything else once Interpolate
// returns. If any worker fails, the first failure is returned along with a
// nil buffer.
func Interpolate(g *Grid, points []float64, maxThreads int) ([]float64, error) {
	d := g.Dims()
	if len(points)%d != 0 {
		return nil, fmt.Errorf(
			"%d coordinates can't be split into %d-dimensional points: %w",
			len(points), d, ErrBadQuery,
		)
	}

	n := len(points) / d
	out := make([]float64, n)
	err := dispatch(kernelFor(d), g, points, out, NumWorkers(n, maxThreads))
	if err != nil {
		return nil, err
	}
	return out, nil
}
