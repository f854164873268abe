package array

import (
	"fmt"

	"github.com/phil-mansfield/regrid/math/interpolate"
)

// TypeError is returned when the arguments to Interpolate have the wrong
// rank or mismatched dimensions. It is always returned before any
// interpolation is attempted.
type TypeError struct {
	msg string
}

func (e *TypeError) Error() string { return e.msg }

func typeErrorf(format string, args ...interface{}) *TypeError {
	return &TypeError{fmt.Sprintf(format, args...)}
}

// Engine evaluates a grid on a flat query batch. The returned buffer must
// not be referenced by the Engine afterwards.
type Engine interface {
	Interpolate(g *interpolate.Grid, points []float64, maxThreads int) ([]float64, error)
}

type engineFunc func(*interpolate.Grid, []float64, int) ([]float64, error)

func (f engineFunc) Interpolate(
	g *interpolate.Grid, points []float64, maxThreads int,
) ([]float64, error) {
	return f(g, points, maxThreads)
}

// DefaultEngine is the parallel multi-linear interpolator.
var DefaultEngine Engine = engineFunc(interpolate.Interpolate)

// Binding validates Array arguments and passes them to an Engine.
type Binding struct {
	engine Engine
}

// NewBinding creates a Binding which uses e. If e is nil, DefaultEngine is
// used.
func NewBinding(e Engine) *Binding {
	if e == nil {
		e = DefaultEngine
	}
	return &Binding{e}
}

// Interpolate is a linear interpolator in any dimension. Arguments are
// similar to scipy.interpolate.RegularGridInterpolator: points holds one
// 1-D axis per dimension, values is the sample tensor with one dimension per
// axis, and interpPoints is an (N, ndim) array of query points. At most
// maxThreads workers are used.
//
// The returned Array has shape (N,) and owns the interpolator's output
// buffer.
func Interpolate(
	points []*Array, values, interpPoints *Array, maxThreads int,
) (*Array, error) {
	return NewBinding(nil).Interpolate(points, values, interpPoints, maxThreads)
}

// Interpolate checks the shapes of its arguments and runs the Binding's
// Engine on them. See the package-level Interpolate.
func (b *Binding) Interpolate(
	points []*Array, values, interpPoints *Array, maxThreads int,
) (*Array, error) {
	g, err := checkArgs(points, values, interpPoints)
	if err != nil {
		return nil, err
	}

	out, err := b.engine.Interpolate(g, interpPoints.data, maxThreads)
	if err != nil {
		return nil, err
	}

	n := interpPoints.shape[0]
	if len(out) != n {
		return nil, fmt.Errorf(
			"engine returned %d values for %d points", len(out), n,
		)
	}
	return &Array{[]int{n}, out}, nil
}

// checkArgs returns a *TypeError if the shapes of the arguments are
// inconsistent and otherwise builds the grid they describe.
func checkArgs(points []*Array, values, interpPoints *Array) (*interpolate.Grid, error) {
	if values == nil || interpPoints == nil {
		return nil, typeErrorf("'values' and 'interp_points' must not be nil!")
	}
	if values.Ndim() == 0 || interpPoints.Ndim() == 0 {
		return nil, typeErrorf("Only arrays are supported, not scalar values!")
	}

	axes := make([][]float64, len(points))
	for k, arr := range points {
		if arr == nil || arr.Ndim() != 1 {
			return nil, typeErrorf("'points' must be a list of 1D arrays!")
		}
		axes[k] = arr.data
	}

	numDims := len(points)
	if numDims != values.Ndim() {
		return nil, typeErrorf(
			"Dimension mismatch! Grid is %dD but values are %dD!",
			numDims, values.Ndim(),
		)
	}

	if interpPoints.Ndim() != 2 {
		return nil, typeErrorf("'interp_points' should have shape (N, ndim).")
	}

	if interpDims := interpPoints.shape[1]; numDims != interpDims {
		return nil, typeErrorf(
			"Dimension mismatch! Grid is %dD but interpolation points are %dD!",
			numDims, interpDims,
		)
	}

	for k, arr := range points {
		if arr.Len() != values.shape[k] {
			return nil, typeErrorf(
				"Shape mismatch! Axis %d has %d points but values have "+
					"length %d along it!", k, arr.Len(), values.shape[k],
			)
		}
	}

	return interpolate.NewGrid(axes, values.data)
}
