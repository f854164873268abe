package interpolate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrNoAxes is returned if a grid is created without any axes.
	ErrNoAxes = errors.New("grid must have at least one axis")
	// ErrEmptyAxis is returned if one of the axes contains no points.
	ErrEmptyAxis = errors.New("axis has no points")
	// ErrUnorderedAxis is returned if an axis is not strictly increasing.
	ErrUnorderedAxis = errors.New("axis is not strictly increasing")
	// ErrNonFiniteAxis is returned if an axis contains a NaN or infinite
	// grid line.
	ErrNonFiniteAxis = errors.New("axis contains a non-finite grid line")
	// ErrBadTensor is returned if the number of sample values does not match
	// the product of the axis lengths.
	ErrBadTensor = errors.New("sample tensor size does not match axis lengths")
	// ErrBadQuery is returned if a query batch can't be split into points of
	// the grid's dimension.
	ErrBadQuery = errors.New("query batch does not match grid dimension")
)

// Grid is a regular grid of sample values. Axis k gives the coordinates of
// the grid lines along dimension k and vals holds one value per grid
// intersection in row-major order (the last axis varies fastest):
// vals(i0, i1, ..., id) -> vals[i0*strides[0] + i1*strides[1] + ... + id].
//
// A Grid never modifies its axes or values and is safe for concurrent use.
// The caller must not modify them while the Grid is in use.
type Grid struct {
	axes    [][]float64
	search  []searcher
	vals    []float64
	shape   []int
	strides []int
}

// NewGrid creates a grid from a list of strictly increasing axes and a
// row-major tensor of sample values.
func NewGrid(axes [][]float64, vals []float64) (*Grid, error) {
	if len(axes) == 0 {
		return nil, ErrNoAxes
	}

	g := &Grid{
		axes:    axes,
		search:  make([]searcher, len(axes)),
		vals:    vals,
		shape:   make([]int, len(axes)),
		strides: make([]int, len(axes)),
	}

	for k, xs := range axes {
		if err := checkAxis(xs); err != nil {
			return nil, fmt.Errorf("axis %d: %w", k, err)
		}
		g.search[k].init(xs)
		g.shape[k] = len(xs)
	}

	size := 1
	for k := len(axes) - 1; k >= 0; k-- {
		g.strides[k] = size
		size *= g.shape[k]
	}

	if size != len(vals) {
		return nil, fmt.Errorf(
			"len(vals) = %d, but grid shape %v requires %d: %w",
			len(vals), g.shape, size, ErrBadTensor,
		)
	}

	return g, nil
}

// checkAxis returns an error if xs can't be used as a grid axis.
func checkAxis(xs []float64) error {
	if len(xs) == 0 {
		return ErrEmptyAxis
	}
	if floats.HasNaN(xs) {
		return fmt.Errorf("contains NaN: %w", ErrNonFiniteAxis)
	}
	for i, x := range xs {
		if math.IsInf(x, 0) {
			return fmt.Errorf("xs[%d] = %g: %w", i, x, ErrNonFiniteAxis)
		}
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return fmt.Errorf(
				"xs[%d] = %g, but xs[%d] = %g: %w",
				i-1, xs[i-1], i, xs[i], ErrUnorderedAxis,
			)
		}
	}
	return nil
}

// UniformAxis returns n grid lines starting at x0 and separated by dx.
func UniformAxis(x0, dx float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = x0 + float64(i)*dx
	}
	return xs
}

// Dims returns the dimension of the grid.
func (g *Grid) Dims() int { return len(g.axes) }

// Shape returns the number of grid lines along each axis.
func (g *Grid) Shape() []int {
	shape := make([]int, len(g.shape))
	copy(shape, g.shape)
	return shape
}

// Axis returns the grid lines along dimension k. The returned slice must not
// be modified.
func (g *Grid) Axis(k int) []float64 { return g.axes[k] }

// Values returns the flat sample tensor. The returned slice must not be
// modified.
func (g *Grid) Values() []float64 { return g.vals }

// Bounds returns the lowest and highest grid line along every axis.
func (g *Grid) Bounds() (lo, hi []float64) {
	lo, hi = make([]float64, len(g.axes)), make([]float64, len(g.axes))
	for k, xs := range g.axes {
		lo[k], hi[k] = xs[0], xs[len(xs)-1]
	}
	return lo, hi
}

// At returns the sample value at the grid intersection idx.
//
// Panics if len(idx) != g.Dims() or if any index is out of range.
func (g *Grid) At(idx ...int) float64 {
	if len(idx) != len(g.shape) {
		panic(fmt.Sprintf(
			"%d indices given for a %d-dimensional grid", len(idx), len(g.shape),
		))
	}
	i := 0
	for k, ik := range idx {
		if ik < 0 || ik >= g.shape[k] {
			panic(fmt.Sprintf(
				"index %d out of range [0, %d) along axis %d", ik, g.shape[k], k,
			))
		}
		i += ik * g.strides[k]
	}
	return g.vals[i]
}
