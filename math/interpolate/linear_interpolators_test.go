package interpolate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(x, y, z float64) float64 {
	return 2*x + 3*y + 5*z
}

// irregularAxis returns n strictly increasing, unevenly spaced grid lines.
func irregularAxis(gen *rand.Rand, x0 float64, n int) []float64 {
	xs := make([]float64, n)
	xs[0] = x0
	for i := 1; i < n; i++ {
		xs[i] = xs[i-1] + 0.1 + gen.Float64()
	}
	return xs
}

// randomGrid creates a grid with irregular axes of the given lengths and
// random sample values.
func randomGrid(t *testing.T, gen *rand.Rand, shape ...int) *Grid {
	axes := make([][]float64, len(shape))
	size := 1
	for k, n := range shape {
		axes[k] = irregularAxis(gen, gen.Float64()*10-5, n)
		size *= n
	}
	vals := make([]float64, size)
	for i := range vals {
		vals[i] = gen.NormFloat64() * 100
	}
	g, err := NewGrid(axes, vals)
	require.NoError(t, err)
	return g
}

// randomPoints returns n points which cover g and extend past its edges.
func randomPoints(gen *rand.Rand, g *Grid, n int) []float64 {
	lo, hi := g.Bounds()
	d := g.Dims()
	pts := make([]float64, n*d)
	for i := 0; i < n; i++ {
		for k := 0; k < d; k++ {
			span := hi[k] - lo[k]
			pts[i*d+k] = lo[k] - 0.25*span + 1.5*span*gen.Float64()
		}
	}
	return pts
}

func TestLinearWithinCell(t *testing.T) {
	lin := NewLinear([]float64{0, 1, 2}, []float64{0, 10, 20})

	assert.Equal(t, 5.0, lin.Eval(0.5))
	assert.Equal(t, 15.0, lin.Eval(1.5))
	assert.Equal(t, []float64{5, 15}, lin.EvalAll([]float64{0.5, 1.5}))
}

func TestLinearExtrapolation(t *testing.T) {
	lin := NewLinear([]float64{0, 1, 2}, []float64{0, 10, 30})

	// Below the axis the first interval's slope (10) is extended and above it
	// the last interval's slope (20) is.
	assert.Equal(t, -10.0, lin.Eval(-1))
	assert.Equal(t, 50.0, lin.Eval(3))
	assert.Equal(t, 30.0, lin.Eval(2))
}

func TestUniformLinear(t *testing.T) {
	lin := NewUniformLinear(1, 0.5, []float64{2, 4, 8, 16})

	assert.Equal(t, 3.0, lin.Eval(1.25))
	assert.Equal(t, 12.0, lin.Eval(2.25))
	assert.Equal(t, 16.0, lin.Eval(2.5))
}

func TestBiLinearCenter(t *testing.T) {
	// vals[ix][iy] = [[0, 1], [2, 3]]
	bi := NewBiLinear([]float64{0, 1}, []float64{0, 1}, []float64{0, 1, 2, 3})

	assert.Equal(t, 1.5, bi.Eval(0.5, 0.5))
	assert.Equal(t, 1.0, bi.Eval(0, 1))
	assert.Equal(t, 2.0, bi.Eval(1, 0))
	assert.Equal(t, []float64{0, 3}, bi.EvalAll([]float64{0, 1}, []float64{0, 1}))
}

func TestBiLinearExtrapolation(t *testing.T) {
	xs, ys := []float64{0, 1, 3}, []float64{-1, 0, 2, 5}
	vals := make([]float64, 0, len(xs)*len(ys))
	for _, x := range xs {
		for _, y := range ys {
			vals = append(vals, value(x, y, 0))
		}
	}
	bi := NewBiLinear(xs, ys, vals)

	// Linear functions are reproduced everywhere, including off the grid.
	assert.InDelta(t, value(-2, 7, 0), bi.Eval(-2, 7), 1e-10)
	assert.InDelta(t, value(4, -3, 0), bi.Eval(4, -3), 1e-10)
	assert.InDelta(t, value(2.2, 0.3, 0), bi.Eval(2.2, 0.3), 1e-10)
}

func TestUniformTriLinear(t *testing.T) {
	minVal := 0.0
	n := 11
	step := 0.1
	vals := make([]float64, n*n*n)
	idx := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				vals[idx] = value(
					minVal+float64(i)*step,
					minVal+float64(j)*step,
					minVal+float64(k)*step,
				)
				idx++
			}
		}
	}
	interp := NewUniformTriLinear(
		minVal, step, n,
		minVal, step, n,
		minVal, step, n,
		vals,
	)
	// points on the grid should work
	assert.InDelta(t, value(0.5, 0.5, 0.5), interp.Eval(0.5, 0.5, 0.5), 1e-12, "on grid")
	// points just off the grid should also work
	assert.InDelta(t, value(0.51, 0.50, 0.50), interp.Eval(0.51, 0.50, 0.50), 1e-12, "nearby x")
	assert.InDelta(t, value(0.50, 0.51, 0.50), interp.Eval(0.50, 0.51, 0.50), 1e-12, "nearby y")
	assert.InDelta(t, value(0.50, 0.50, 0.51), interp.Eval(0.50, 0.50, 0.51), 1e-12, "nearby z")
	// points on the edge of the grid should work
	assert.Equal(t, value(0, 0, 0), interp.Eval(0, 0, 0), "grid edge")
	assert.InDelta(t, value(0.01, 0, 0), interp.Eval(0.01, 0, 0), 1e-12, "grid edge nearby x")
	// and so should points past the edge
	assert.InDelta(t, value(-0.2, 1.3, 0.5), interp.Eval(-0.2, 1.3, 0.5), 1e-12, "off grid")
}

func TestGridPointExactness(t *testing.T) {
	gen := rand.New(rand.NewSource(7))

	for _, shape := range [][]int{{5}, {4, 3}, {3, 4, 5}, {2, 3, 2, 3}} {
		g := randomGrid(t, gen, shape...)
		ml := NewMultiLinear(g)

		idx := make([]int, len(shape))
		x := make([]float64, len(shape))
		for i := 0; i < len(g.Values()); i++ {
			rem := i
			for k := len(shape) - 1; k >= 0; k-- {
				idx[k] = rem % shape[k]
				rem /= shape[k]
				x[k] = g.Axis(k)[idx[k]]
			}
			assert.Equal(t, g.At(idx...), ml.Eval(x...), "shape %v, idx %v", shape, idx)
		}
	}
}

func TestDegenerateAxis(t *testing.T) {
	g, err := NewGrid([][]float64{{5}, {0, 1}}, []float64{1, 3})
	require.NoError(t, err)
	ml := NewMultiLinear(g)

	// The single-point axis contributes its value wherever it is queried.
	assert.Equal(t, 2.0, ml.Eval(100, 0.5))
	assert.Equal(t, 2.0, ml.Eval(-3, 0.5))
	assert.False(t, math.IsNaN(ml.Eval(5, 0.25)))

	lin := NewLinear([]float64{2}, []float64{7})
	assert.Equal(t, 7.0, lin.Eval(-10))
	assert.Equal(t, 7.0, lin.Eval(2))
}

func TestInfiniteSamples(t *testing.T) {
	inf := math.Inf(1)

	lin := NewLinear([]float64{2}, []float64{inf})
	assert.Equal(t, inf, lin.Eval(2))
	assert.Equal(t, inf, lin.Eval(-3))

	// Grid points next to an infinite sample keep their own value.
	lin = NewLinear([]float64{0, 1, 2}, []float64{1, inf, 3})
	assert.Equal(t, 1.0, lin.Eval(0))
	assert.Equal(t, inf, lin.Eval(1))
	assert.Equal(t, inf, lin.Eval(0.5))

	g, err := NewGrid([][]float64{{0, 1}, {4}, {0, 1}}, []float64{1, 2, inf, 4})
	require.NoError(t, err)
	ml := NewMultiLinear(g)
	assert.Equal(t, 1.0, ml.Eval(0, 4, 0))
	assert.Equal(t, 4.0, ml.Eval(1, 9, 1))

	out := make([]float64, 1)
	linearND.eval(g, []float64{0, 4, 0}, out)
	assert.Equal(t, 1.0, out[0])
}

func TestNaNQuery(t *testing.T) {
	lin := NewLinear([]float64{0, 1, 2}, []float64{0, 10, 20})
	assert.True(t, math.IsNaN(lin.Eval(math.NaN())))

	bi := NewBiLinear([]float64{0, 1}, []float64{0, 1}, []float64{0, 1, 2, 3})
	assert.True(t, math.IsNaN(bi.Eval(0.5, math.NaN())))
}

func TestKernelEquivalence(t *testing.T) {
	gen := rand.New(rand.NewSource(1))

	tests := []struct {
		k     kernel
		shape []int
	}{
		{linear1D, []int{17}},
		{linear1D, []int{2}},
		{linear2D, []int{9, 13}},
		{linear2D, []int{1, 6}},
		{linear3D, []int{5, 7, 4}},
		{linear3D, []int{3, 1, 8}},
	}

	for _, test := range tests {
		g := randomGrid(t, gen, test.shape...)
		n := 500
		pts := randomPoints(gen, g, n)

		fixed, generic := make([]float64, n), make([]float64, n)
		test.k.eval(g, pts, fixed)
		linearND.eval(g, pts, generic)

		assert.Equal(t, generic, fixed, "%s on shape %v", test.k, test.shape)
	}
}

func TestKernelFor(t *testing.T) {
	assert.Equal(t, linear1D, kernelFor(1))
	assert.Equal(t, linear2D, kernelFor(2))
	assert.Equal(t, linear3D, kernelFor(3))
	assert.Equal(t, linearND, kernelFor(4))
	assert.Equal(t, linearND, kernelFor(9))
	assert.Equal(t, "TriLinear", linear3D.String())
}

func TestMultiLinearFourDimensions(t *testing.T) {
	axes := [][]float64{{0, 1, 2}, {0, 2}, {-1, 0, 1}, {0, 0.5, 3}}
	f := func(x []float64) float64 {
		return 1 + x[0] - 2*x[1] + 4*x[2] + 0.5*x[3]
	}

	var vals []float64
	x := make([]float64, 4)
	for _, x[0] = range axes[0] {
		for _, x[1] = range axes[1] {
			for _, x[2] = range axes[2] {
				for _, x[3] = range axes[3] {
					vals = append(vals, f(x))
				}
			}
		}
	}

	g, err := NewGrid(axes, vals)
	require.NoError(t, err)
	ml := NewMultiLinear(g)

	pts := []float64{
		0.5, 1, 0.25, 2,
		-1, 3, 2, 4,
		1.9, 0.1, -0.9, 0.1,
	}
	out := ml.EvalAll(pts)
	require.Len(t, out, 3)
	for i := range out {
		assert.InDelta(t, f(pts[4*i:4*i+4]), out[i], 1e-10)
	}
	assert.InDelta(t, f(pts[:4]), ml.Eval(pts[:4]...), 1e-10)
}

func TestConstructorPanics(t *testing.T) {
	assert.Panics(t, func() { NewLinear([]float64{0, 1}, []float64{0}) })
	assert.Panics(t, func() { NewLinear([]float64{1, 0}, []float64{0, 1}) })
	assert.Panics(t, func() {
		NewBiLinear([]float64{0, 1}, []float64{0, 1}, []float64{0, 1, 2})
	})
	assert.Panics(t, func() {
		NewUniformTriLinear(0, 1, 2, 0, 1, 2, 0, 1, 2, make([]float64, 7))
	})

	g, err := NewGrid([][]float64{{0, 1}, {0, 1}}, []float64{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Panics(t, func() { NewMultiLinear(g).Eval(0.5) })
}
