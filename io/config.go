package io

import (
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/regrid/math/interpolate"
)

const (
	ExampleInterpolateFile = `[Interpolate]

#######################
# Required Parameters #
#######################

# Grid manifest describing the axes and sample values of the grid. Run with
# -ExampleConfig Grid to see the format.
Grid = path/to/grid.hjson

# Whitespace-separated text table containing one query point per line.
Points = path/to/points.txt

# File which the interpolated values will be written to. Each line contains
# the coordinates of a query point followed by its interpolated value.
Output = path/to/output.txt

#######################
# Optional Parameters #
#######################

# Columns of the Points table holding each coordinate, one line per
# dimension in axis order. By default the first columns are used.
# Column = 0
# Column = 1

# Upper limit on the number of threads used. The number actually used
# depends on how many points are being interpolated. Default is 8.
# Threads = 8

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileDir = prof/
# LogFile = log.out
# Verbose = true

# Show a plot of the interpolated values against one of the coordinates.
# Requires python and matplotlib.
# Plot = true
# PlotAxis = 0`

	ExampleGridFile = `{
  # Grid lines along each axis. Every axis must be strictly increasing.
  axes: [
    [0, 1, 2]
    [0, 0.5, 1, 1.5]
  ]

  # Alternatively, uniformly spaced axes can be given by their starting
  # point, spacing, and length. Uniform axes follow the explicit ones.
  # uniform: [
  #   { x0: 0, dx: 0.5, n: 4 }
  # ]

  # Sample values in row-major order (the last axis varies fastest).
  values: [
    0, 1, 2, 3
    4, 5, 6, 7
    8, 9, 10, 11
  ]

  # Alternatively, values can be read from a file of raw float64 values,
  # relative to this manifest. The file is decoded into memory.
  # values-file: values.bin
  # endianness: little
}`
)

type SharedConfig struct {
	// Required
	Output string
	// Optional
	LogFile, ProfileDir string
	Verbose            bool
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileDir() bool {
	return con.ProfileDir != ""
}

type InterpolateConfig struct {
	SharedConfig

	// Required
	Grid, Points string

	// Optional
	Column   []int
	Threads  int
	Plot     bool
	PlotAxis int
}

type InterpolateWrapper struct {
	Interpolate InterpolateConfig
}

func DefaultInterpolateWrapper() *InterpolateWrapper {
	con := InterpolateConfig{}
	con.Threads = interpolate.DefaultMaxThreads
	return &InterpolateWrapper{con}
}

// ReadInterpolateConfig reads an [Interpolate] config file, filling in
// defaults for any optional values which weren't set.
func ReadInterpolateConfig(fname string) (*InterpolateConfig, error) {
	wrap := DefaultInterpolateWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return &wrap.Interpolate, nil
}

func (con *InterpolateConfig) ValidGrid() bool {
	return con.Grid != ""
}
func (con *InterpolateConfig) ValidPoints() bool {
	return con.Points != ""
}
func (con *InterpolateConfig) ValidThreads() bool {
	return con.Threads > 0
}

// ValidColumn returns true if either no columns were given or exactly dims
// non-negative columns were.
func (con *InterpolateConfig) ValidColumn(dims int) bool {
	if len(con.Column) == 0 {
		return true
	}
	if len(con.Column) != dims {
		return false
	}
	for _, c := range con.Column {
		if c < 0 {
			return false
		}
	}
	return true
}

func (con *InterpolateConfig) ValidPlotAxis(dims int) bool {
	return con.PlotAxis >= 0 && con.PlotAxis < dims
}

// Columns returns the table columns holding the coordinates of a
// dims-dimensional query point.
func (con *InterpolateConfig) Columns(dims int) []int {
	if len(con.Column) > 0 {
		return con.Column
	}
	cols := make([]int, dims)
	for i := range cols {
		cols[i] = i
	}
	return cols
}
