/*package array is the caller-facing side of the interpolator. It holds the
Array container used to pass axes, sample tensors and query batches around,
checks that their shapes agree before any interpolation is done, and wraps
the resulting buffer back into an Array.
*/
package array

import (
	"fmt"
)

// Array is a dense, row-major array of float64 values. A rank-0 Array is a
// scalar.
type Array struct {
	shape []int
	data  []float64
}

// New creates an Array with the given shape on top of data. data is not
// copied.
func New(data []float64, shape ...int) (*Array, error) {
	size := 1
	for k, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("shape[%d] = %d is negative", k, n)
		}
		size *= n
	}
	if size != len(data) {
		return nil, fmt.Errorf(
			"shape %v requires %d elements, but %d were given",
			shape, size, len(data),
		)
	}

	s := make([]int, len(shape))
	copy(s, shape)
	return &Array{s, data}, nil
}

// Vector creates a 1-D Array on top of xs.
func Vector(xs []float64) *Array {
	return &Array{[]int{len(xs)}, xs}
}

// Scalar creates a rank-0 Array.
func Scalar(x float64) *Array {
	return &Array{nil, []float64{x}}
}

// Ndim returns the rank of the array.
func (a *Array) Ndim() int { return len(a.shape) }

// Shape returns the length of the array along every dimension.
func (a *Array) Shape() []int {
	s := make([]int, len(a.shape))
	copy(s, a.shape)
	return s
}

// Data returns the flat, row-major contents of the array.
func (a *Array) Data() []float64 { return a.data }

// Len returns the total number of elements in the array.
func (a *Array) Len() int { return len(a.data) }
