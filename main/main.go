package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/regrid/array"
	"github.com/phil-mansfield/regrid/io"
	"github.com/phil-mansfield/regrid/math/interpolate"
)

func main() {
	var (
		interpolateStr, exampleConfig string
		threads                       int
	)
	vars := map[string]*string{
		"Interpolate":   &interpolateStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", 0,
		"Upper limit on the number of threads used. Overrides the config "+
			"file's 'Threads' value when positive.",
	)
	flag.StringVar(
		&interpolateStr, "Interpolate", "",
		"Configuration file for [Interpolate] mode.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Interpolate' "+
			"and 'Grid'.",
	)

	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Interpolate":
		con, err := io.ReadInterpolateConfig(interpolateStr)
		if err != nil {
			log.Fatal(err.Error())
		}

		if threads > 0 {
			con.Threads = threads
		}

		if !con.ValidGrid() {
			log.Fatal("Invalid/non-existent 'Grid' value.")
		} else if !con.ValidPoints() {
			log.Fatal("Invalid/non-existent 'Points' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidThreads() {
			log.Fatal("Invalid 'Threads' value.")
		}

		if err := interpolateMain(con); err != nil {
			log.Fatal(err.Error())
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Interpolate":
			fmt.Println(io.ExampleInterpolateFile)
		case "Grid":
			fmt.Println(io.ExampleGridFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Interpolate' and 'Grid'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but regrid "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// interpolateMain runs an interpolation with con, sending log output to the
// config's log file if one is given. Errors are written to the log file
// before it is closed and the logger is returned to stderr.
func interpolateMain(con *io.InterpolateConfig) error {
	if !con.ValidLogFile() {
		return runInterpolate(con)
	}

	lf, err := os.Create(con.LogFile)
	if err != nil {
		return err
	}
	defer lf.Close()
	log.SetOutput(lf)
	defer log.SetOutput(os.Stderr)

	if err = runInterpolate(con); err != nil {
		log.Error(err.Error())
	}
	return err
}

// runInterpolate reads the grid and query points named by con, interpolates
// them, and writes the results.
func runInterpolate(con *io.InterpolateConfig) error {
	if con.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if con.ValidProfileDir() {
		defer profile.Start(
			profile.CPUProfile, profile.ProfilePath(con.ProfileDir),
		).Stop()
	}

	g, err := io.ReadGrid(con.Grid)
	if err != nil {
		return err
	}
	d := g.Dims()
	log.WithFields(log.Fields{
		"file":  con.Grid,
		"shape": g.Shape(),
		"min":   floats.Min(g.Values()),
		"max":   floats.Max(g.Values()),
	}).Info("Read grid.")

	if !con.ValidColumn(d) {
		return fmt.Errorf(
			"%d 'Column' values were given for a %d-dimensional grid.",
			len(con.Column), d,
		)
	} else if con.Plot && !con.ValidPlotAxis(d) {
		return fmt.Errorf(
			"'PlotAxis' = %d, but the grid is %d-dimensional.", con.PlotAxis, d,
		)
	}

	pts, err := io.ReadPoints(con.Points, con.Columns(d))
	if err != nil {
		return err
	}
	n := len(pts) / d

	axes := make([]*array.Array, d)
	for k := range axes {
		axes[k] = array.Vector(g.Axis(k))
	}
	values, err := array.New(g.Values(), g.Shape()...)
	if err != nil {
		return err
	}
	query, err := array.New(pts, n, d)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"points":  n,
		"workers": interpolate.NumWorkers(n, con.Threads),
	}).Info("Interpolating.")

	t0 := time.Now()
	out, err := array.Interpolate(axes, values, query, con.Threads)
	if err != nil {
		return err
	}
	log.Infof("Interpolated %d points in %s.", n, time.Since(t0))

	if err = io.WriteResults(con.Output, pts, d, out.Data()); err != nil {
		return err
	}
	log.Infof("Wrote results to %s.", con.Output)

	if con.Plot {
		plotResults(pts, d, con.PlotAxis, out.Data())
	}
	return nil
}
