package interpolate

import (
	"fmt"
)

// Every blending routine in this file sums the 2^d corners of a cell in
// lexicographic order (dimension 0 most significant), forms each corner's
// weight left to right over the dimensions, and rounds every product before
// it is accumulated. This keeps the unrolled kernels and the generic kernel
// bit-for-bit identical.
//
// Corners with zero weight are skipped, so an infinite sample only affects
// the points whose cells actually depend on it.

/////////////
// Kernels //
/////////////

// kernel is the blending routine used for a grid of a given dimension.
type kernel int

const (
	linear1D kernel = iota
	linear2D
	linear3D
	linearND
)

// kernelFor returns the fastest kernel which can handle a grid with the given
// dimension.
func kernelFor(dims int) kernel {
	switch dims {
	case 1:
		return linear1D
	case 2:
		return linear2D
	case 3:
		return linear3D
	default:
		return linearND
	}
}

func (k kernel) String() string {
	switch k {
	case linear1D:
		return "Linear"
	case linear2D:
		return "BiLinear"
	case linear3D:
		return "TriLinear"
	case linearND:
		return "MultiLinear"
	}
	return fmt.Sprintf("kernel(%d)", int(k))
}

// eval interpolates the len(out) points stored in points and writes the
// results to out. The fixed-dimension kernels may only be used on grids of
// their dimension.
func (k kernel) eval(g *Grid, points, out []float64) {
	switch k {
	case linear1D:
		for i := range out {
			out[i] = g.at1D(points[i])
		}
	case linear2D:
		for i := range out {
			out[i] = g.at2D(points[2*i], points[2*i+1])
		}
	case linear3D:
		for i := range out {
			out[i] = g.at3D(points[3*i], points[3*i+1], points[3*i+2])
		}
	case linearND:
		d := len(g.axes)
		s := g.newScratch()
		for i := range out {
			out[i] = g.atND(points[d*i:d*i+d], s)
		}
	default:
		panic(fmt.Sprintf("Unrecognized kernel %d", int(k)))
	}
}

// weighted returns the contribution of a corner with value v and weight w.
func weighted(v, w float64) float64 {
	if w == 0 {
		return 0
	}
	return float64(v * w)
}

func (g *Grid) at1D(x float64) float64 {
	ix1, ix2, tx := g.search[0].bracket(x)
	v := g.vals
	return weighted(v[ix1], 1-tx) + weighted(v[ix2], tx)
}

func (g *Grid) at2D(x, y float64) float64 {
	ix1, ix2, tx := g.search[0].bracket(x)
	iy1, iy2, ty := g.search[1].bracket(y)

	sx := g.strides[0]
	i11, i12 := ix1*sx+iy1, ix1*sx+iy2
	i21, i22 := ix2*sx+iy1, ix2*sx+iy2

	wx1, wx2 := 1-tx, tx
	wy1, wy2 := 1-ty, ty

	v := g.vals
	return weighted(v[i11], wx1*wy1) + weighted(v[i12], wx1*wy2) +
		weighted(v[i21], wx2*wy1) + weighted(v[i22], wx2*wy2)
}

func (g *Grid) at3D(x, y, z float64) float64 {
	ix1, ix2, tx := g.search[0].bracket(x)
	iy1, iy2, ty := g.search[1].bracket(y)
	iz1, iz2, tz := g.search[2].bracket(z)

	sx, sy := g.strides[0], g.strides[1]
	ox1, ox2 := ix1*sx, ix2*sx
	oy1, oy2 := iy1*sy, iy2*sy

	wx1, wx2 := 1-tx, tx
	wy1, wy2 := 1-ty, ty
	wz1, wz2 := 1-tz, tz

	v := g.vals
	return weighted(v[ox1+oy1+iz1], wx1*wy1*wz1) +
		weighted(v[ox1+oy1+iz2], wx1*wy1*wz2) +
		weighted(v[ox1+oy2+iz1], wx1*wy2*wz1) +
		weighted(v[ox1+oy2+iz2], wx1*wy2*wz2) +
		weighted(v[ox2+oy1+iz1], wx2*wy1*wz1) +
		weighted(v[ox2+oy1+iz2], wx2*wy1*wz2) +
		weighted(v[ox2+oy2+iz1], wx2*wy2*wz1) +
		weighted(v[ox2+oy2+iz2], wx2*wy2*wz2)
}

// ndScratch holds the per-dimension cell offsets and weights of the point
// currently being evaluated by atND.
type ndScratch struct {
	lo, hi []int
	w1, w2 []float64
}

func (g *Grid) newScratch() *ndScratch {
	d := len(g.axes)
	return &ndScratch{
		lo: make([]int, d), hi: make([]int, d),
		w1: make([]float64, d), w2: make([]float64, d),
	}
}

func (g *Grid) atND(x []float64, s *ndScratch) float64 {
	d := len(g.axes)
	for k := 0; k < d; k++ {
		lo, hi, t := g.search[k].bracket(x[k])
		s.lo[k], s.hi[k] = lo*g.strides[k], hi*g.strides[k]
		s.w1[k], s.w2[k] = 1-t, t
	}

	sum := 0.0
	for c := 0; c < 1<<uint(d); c++ {
		i, w := 0, 1.0
		for k := 0; k < d; k++ {
			if (c>>uint(d-1-k))&1 == 0 {
				i += s.lo[k]
				w *= s.w1[k]
			} else {
				i += s.hi[k]
				w *= s.w2[k]
			}
		}
		sum += weighted(g.vals[i], w)
	}
	return sum
}

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a linear interpolator.
type Linear struct {
	g *Grid
}

// NewLinear creates a linear interpolator for a sequence of strictly
// increasing points, xs, which take on the values given by vals. Values
// outside the range of xs are extrapolated from the nearest edge interval.
//
// Lookups will occur in O(log |xs|), or O(1) if xs is uniformly spaced.
//
// Panics if len(xs) != len(vals) or if xs is not strictly increasing.
func NewLinear(xs, vals []float64) *Linear {
	g, err := NewGrid([][]float64{xs}, vals)
	if err != nil {
		panic(err.Error())
	}
	return &Linear{g}
}

// NewUniformLinear creates a linear interplator where a uniformly spaced
// sequence of x values starting at x0 and separated by dx and whose values are
// given by vals.
func NewUniformLinear(x0, dx float64, vals []float64) *Linear {
	return NewLinear(UniformAxis(x0, dx, len(vals)), vals)
}

// Eval returns the interpolated value at x.
func (lin *Linear) Eval(x float64) float64 {
	return lin.g.at1D(x)
}

// EvalAll evaluates the interpolator at all the given x values. If an output
// array is given, the output is written to that array (the array is still
// returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (lin *Linear) EvalAll(xs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	linear1D.eval(lin.g, xs, out[0][:len(xs)])
	return out[0]
}

/////////////////////////////
// BiLinear Implementation //
/////////////////////////////

// BiLinear is a bi-linear interpolator.
type BiLinear struct {
	g *Grid
}

// NewBiLinear creates a bi-linear interpolator on top of a grid with the
// values given by vals. The values of the x and y grid lines are given by
// xs and ys. The vals grid is indexed in row-major order:
// vals(ix, iy) -> vals[ix*ny + iy].
//
// Panics if len(xs) * len(ys) != len(vals) or if either axis is not strictly
// increasing.
func NewBiLinear(xs, ys, vals []float64) *BiLinear {
	g, err := NewGrid([][]float64{xs, ys}, vals)
	if err != nil {
		panic(err.Error())
	}
	return &BiLinear{g}
}

// NewUniformBiLinear creates a bi-linear interpolator on top of a uniform
// grid with the values given by vals. The values of the x and y grid lines
// start at x0 and y0 and increase with steps of dx and dy, respectively.
//
// Panics if nx * ny != len(vals).
func NewUniformBiLinear(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	vals []float64,
) *BiLinear {
	return NewBiLinear(UniformAxis(x0, dx, nx), UniformAxis(y0, dy, ny), vals)
}

// Eval evaluates the bi-linear interpolator at the coordinate (x, y).
func (bi *BiLinear) Eval(x, y float64) float64 {
	return bi.g.at2D(x, y)
}

// EvalAll evaluates the interpolator at all the given (x, y) values. If an
// output array is given, the output is written to that array (the array is
// still returned as a convenience).
//
// If more than one output array is provided, only the first is used.
func (bi *BiLinear) EvalAll(xs, ys []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = bi.g.at2D(xs[i], ys[i])
	}
	return out[0]
}

//////////////////////////////
// TriLinear Implementation //
//////////////////////////////

// TriLinear is a tri-linear interpolator.
type TriLinear struct {
	g *Grid
}

// NewTriLinear creates a tri-linear interpolator on top of a grid with the
// values given by vals. The values of the x, y, and z grid lines are given by
// xs, ys, and zs respectively. The vals grid is indexed in row-major order:
// vals(ix, iy, iz) -> vals[ix*ny*nz + iy*nz + iz].
//
// Panics if len(xs) * len(ys) * len(zs) != len(vals) or if any axis is not
// strictly increasing.
func NewTriLinear(xs, ys, zs, vals []float64) *TriLinear {
	g, err := NewGrid([][]float64{xs, ys, zs}, vals)
	if err != nil {
		panic(err.Error())
	}
	return &TriLinear{g}
}

// NewUniformTriLinear creates a tri-linear interpolator on top of a uniform
// grid with the values given by vals. The values of the x, y, and z grid lines
// start at x0, y0, and z0 and increase with steps of dx, dy, and dz,
// respectively.
//
// Panics if nx * ny * nz != len(vals).
func NewUniformTriLinear(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	z0, dz float64, nz int,
	vals []float64,
) *TriLinear {
	return NewTriLinear(
		UniformAxis(x0, dx, nx), UniformAxis(y0, dy, ny),
		UniformAxis(z0, dz, nz), vals,
	)
}

// Eval evaluates the tri-linear interpolator at the coordinate (x, y, z).
func (tri *TriLinear) Eval(x, y, z float64) float64 {
	return tri.g.at3D(x, y, z)
}

// EvalAll evaluates the interpolator at all the given (x, y, z) values. If an
// output array is given, the output is written to that array.
//
// If more than one output array is provided, only the first is used.
func (tri *TriLinear) EvalAll(xs, ys, zs []float64, out ...[]float64) []float64 {
	if len(out) == 0 {
		out = [][]float64{make([]float64, len(xs))}
	}
	for i := range xs {
		out[0][i] = tri.g.at3D(xs[i], ys[i], zs[i])
	}
	return out[0]
}

////////////////////////////////
// MultiLinear Implementation //
////////////////////////////////

// MultiLinear is a multi-linear interpolator over a grid of any dimension.
type MultiLinear struct {
	g *Grid
	k kernel
}

// NewMultiLinear creates a multi-linear interpolator on top of g.
func NewMultiLinear(g *Grid) *MultiLinear {
	return &MultiLinear{g, kernelFor(g.Dims())}
}

// Eval evaluates the interpolator at the point x.
//
// Panics if len(x) != the grid's dimension.
func (ml *MultiLinear) Eval(x ...float64) float64 {
	if len(x) != ml.g.Dims() {
		panic(fmt.Sprintf(
			"%d coordinates given for a %d-dimensional grid",
			len(x), ml.g.Dims(),
		))
	}
	out := [1]float64{}
	ml.k.eval(ml.g, x, out[:])
	return out[0]
}

// EvalAll evaluates the interpolator at every point in the flat row-major
// batch points on the calling goroutine. If an output array is given, the
// output is written to that array.
//
// If more than one output array is provided, only the first is used.
func (ml *MultiLinear) EvalAll(points []float64, out ...[]float64) []float64 {
	n := len(points) / ml.g.Dims()
	if len(out) == 0 {
		out = [][]float64{make([]float64, n)}
	}
	ml.k.eval(ml.g, points, out[0][:n])
	return out[0]
}
