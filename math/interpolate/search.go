package interpolate

// searcher finds the grid cell which brackets a coordinate along one axis.
type searcher struct {
	xs     []float64
	x0, dx float64
	n      int
}

func (s *searcher) init(xs []float64) {
	s.xs = xs
	s.x0 = xs[0]
	s.n = len(xs)
	if s.n > 1 {
		s.dx = (xs[s.n-1] - s.x0) / float64(s.n-1)
	}
}

// bracket returns the indices of the grid lines below and above x along with
// the fractional position of x between them.
//
// Coordinates outside the axis are assigned to the first or last cell, so t
// falls outside [0, 1] and the edge cell's slope is extended. An axis with a
// single grid line returns lo = hi = 0 and t = 0.
func (s *searcher) bracket(x float64) (lo, hi int, t float64) {
	if s.n == 1 {
		return 0, 0, 0
	}
	lo = s.search(x)
	hi = lo + 1
	x1, x2 := s.xs[lo], s.xs[hi]
	return lo, hi, (x - x1) / (x2 - x1)
}

// search returns the index of the cell containing x, clamped to [0, n-2].
// Requires n >= 2.
func (s *searcher) search(x float64) int {
	last := s.n - 2
	if x < s.xs[1] {
		return 0
	} else if x >= s.xs[last] {
		return last
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - s.x0) / s.dx)
	if guess >= 0 && guess < last && s.xs[guess] <= x && x < s.xs[guess+1] {
		return guess
	}

	// Binary search. xs[lo] <= x < xs[hi] holds throughout.
	lo, hi := 0, s.n-1
	for hi-lo > 1 {
		mid := int(uint(lo+hi) >> 1)
		if x >= s.xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
