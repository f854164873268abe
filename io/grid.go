package io

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/hjson/hjson-go"

	"github.com/phil-mansfield/regrid/math/interpolate"
)

// UniformAxisConfig describes a uniformly spaced axis.
type UniformAxisConfig struct {
	X0 float64 `json:"x0"`
	Dx float64 `json:"dx"`
	N  int     `json:"n"`
}

// GridManifest is the on-disk description of a grid. Exactly one of Values
// and ValuesFile should be set.
type GridManifest struct {
	Axes       [][]float64         `json:"axes"`
	Uniform    []UniformAxisConfig `json:"uniform"`
	Values     []float64           `json:"values"`
	ValuesFile string              `json:"values-file"`
	Endianness string              `json:"endianness"`
}

// ReadGridManifest parses the HJSON grid manifest at fname.
func ReadGridManifest(fname string) (*GridManifest, error) {
	bytes, err := ioutil.ReadFile(fname)
	if err != nil {
		return nil, err
	}

	var mdat map[string]interface{}
	if err = hjson.Unmarshal(bytes, &mdat); err != nil {
		return nil, fmt.Errorf("Could not parse grid manifest %s: %w", fname, err)
	}
	if bytes, err = json.Marshal(mdat); err != nil {
		return nil, err
	}

	man := &GridManifest{}
	if err = json.Unmarshal(bytes, man); err != nil {
		return nil, fmt.Errorf("Invalid grid manifest %s: %w", fname, err)
	}
	return man, nil
}

// AxisList returns the explicit axes followed by the uniform ones.
func (man *GridManifest) AxisList() ([][]float64, error) {
	axes := make([][]float64, 0, len(man.Axes)+len(man.Uniform))
	axes = append(axes, man.Axes...)
	for i, u := range man.Uniform {
		if u.N <= 0 || u.Dx <= 0 {
			return nil, fmt.Errorf(
				"Uniform axis %d must have positive n and dx, but n = %d "+
					"and dx = %g.", i, u.N, u.Dx,
			)
		}
		axes = append(axes, interpolate.UniformAxis(u.X0, u.Dx, u.N))
	}
	return axes, nil
}

// ByteOrder returns the byte order of the manifest's values file.
func (man *GridManifest) ByteOrder() (binary.ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(man.Endianness)) {
	case "", "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf(
		"Endianness must be one of [little | big]. '%s' is not recognized.",
		man.Endianness,
	)
}

// ReadGrid reads the grid described by the manifest at fname. A values-file
// is resolved relative to the manifest's directory.
func ReadGrid(fname string) (*interpolate.Grid, error) {
	man, err := ReadGridManifest(fname)
	if err != nil {
		return nil, err
	}

	axes, err := man.AxisList()
	if err != nil {
		return nil, err
	}

	vals := man.Values
	switch {
	case man.ValuesFile != "" && len(man.Values) > 0:
		return nil, fmt.Errorf(
			"Grid manifest %s sets both 'values' and 'values-file'.", fname,
		)
	case man.ValuesFile != "":
		order, err := man.ByteOrder()
		if err != nil {
			return nil, err
		}
		valsFile := man.ValuesFile
		if !filepath.IsAbs(valsFile) {
			valsFile = filepath.Join(filepath.Dir(fname), valsFile)
		}
		if vals, err = ReadFloat64s(valsFile, order); err != nil {
			return nil, err
		}
	}

	return interpolate.NewGrid(axes, vals)
}

// ReadFloat64s decodes a file of raw float64 values with the given byte order.
// The file is mapped only while it is decoded; the returned slice is a heap
// copy, since a Grid may outlive the mapping.
func ReadFloat64s(fname string, order binary.ByteOrder) ([]float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size()%8 != 0 {
		return nil, fmt.Errorf(
			"%s is %d bytes long, which is not a whole number of float64s.",
			fname, info.Size(),
		)
	} else if info.Size() == 0 {
		return []float64{}, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer m.Unmap()

	xs := make([]float64, len(m)/8)
	for i := range xs {
		xs[i] = math.Float64frombits(order.Uint64(m[8*i:]))
	}
	return xs, nil
}

// WriteFloat64s writes xs to fname as raw float64 values with the given byte
// order.
func WriteFloat64s(fname string, order binary.ByteOrder, xs []float64) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	if err = binary.Write(f, order, xs); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
