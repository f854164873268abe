package io

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/phil-mansfield/table"
)

// ReadPoints reads a query batch from the whitespace-separated text table in
// fname. cols gives the column of each coordinate. The points are returned
// as a flat, row-major (N, len(cols)) batch.
func ReadPoints(fname string, cols []int) ([]float64, error) {
	// Columns are read in increasing order, each one once.
	sorted := make([]int, 0, len(cols))
	pos := map[int]int{}
	for _, c := range cols {
		if _, ok := pos[c]; !ok {
			pos[c] = 0
			sorted = append(sorted, c)
		}
	}
	sort.Ints(sorted)
	for i, c := range sorted {
		pos[c] = i
	}

	tcols, err := table.ReadTable(fname, sorted, nil)
	if err != nil {
		return nil, err
	}

	d := len(cols)
	n := 0
	if len(tcols) > 0 {
		n = len(tcols[0])
	}
	for i := range tcols {
		if len(tcols[i]) != n {
			return nil, fmt.Errorf(
				"Column %d of %s has %d rows, but column %d has %d.",
				sorted[i], fname, len(tcols[i]), sorted[0], n,
			)
		}
	}

	pts := make([]float64, n*d)
	for k, c := range cols {
		for i, x := range tcols[pos[c]] {
			pts[i*d+k] = x
		}
	}
	return pts, nil
}

// WriteResults writes one line per query point to fname: the point's
// coordinates followed by its interpolated value.
func WriteResults(fname string, points []float64, dims int, vals []float64) error {
	if len(points) != dims*len(vals) {
		return fmt.Errorf(
			"%d values given for %d %d-dimensional points.",
			len(vals), len(points)/dims, dims,
		)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	buf := []byte{}
	for i, val := range vals {
		buf = buf[:0]
		for k := 0; k < dims; k++ {
			buf = strconv.AppendFloat(buf, points[i*dims+k], 'g', 10, 64)
			buf = append(buf, ' ')
		}
		buf = strconv.AppendFloat(buf, val, 'g', 10, 64)
		buf = append(buf, '\n')
		if _, err = w.Write(buf); err != nil {
			f.Close()
			return err
		}
	}

	if err = w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
