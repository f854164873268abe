package main

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"
)

// plotResults shows the interpolated values against the coordinate of each
// query point along the given axis.
func plotResults(pts []float64, dims, axis int, vals []float64) {
	xs := make([]float64, len(vals))
	for i := range xs {
		xs[i] = pts[i*dims+axis]
	}

	plt.Reset()
	plt.Plot(xs, vals, "ok", plt.Label("Interpolated"))
	plt.Title(fmt.Sprintf("Interpolated values along axis %d", axis))
	plt.Legend(plt.Loc("upper left"))
	plt.Show()
}
