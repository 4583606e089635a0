package main

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/aclements/go-kdediffusion/stats"
)

type estimateDoc struct {
	N         int       `yaml:"n"`
	Bandwidth float64   `yaml:"bandwidth"`
	Min       float64   `yaml:"min"`
	Max       float64   `yaml:"max"`
	Grid      []float64 `yaml:"grid,flow"`
	Density   []float64 `yaml:"density,flow"`
}

type estimate2DDoc struct {
	N          int         `yaml:"n"`
	BandwidthX float64     `yaml:"bandwidth_x"`
	BandwidthY float64     `yaml:"bandwidth_y"`
	X          []float64   `yaml:"x,flow"`
	Y          []float64   `yaml:"y,flow"`
	Density    [][]float64 `yaml:"density"`
}

func writeYAML(w io.Writer, doc interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func writeEstimate(w io.Writer, format string, n int, e *stats.DiffusionEstimate) error {
	if format == "yaml" {
		return writeYAML(w, estimateDoc{n, e.Bandwidth, e.Min, e.Max, e.Grid, e.Density})
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "N %d  bandwidth %.6g  range [%.6g, %.6g]\n\n", n, e.Bandwidth, e.Min, e.Max)
	for i, x := range e.Grid {
		fmt.Fprintf(bw, "%.6g %.6g\n", x, e.Density[i])
	}
	return bw.Flush()
}

func writeEstimate2D(w io.Writer, format string, n int, e *stats.DiffusionEstimate2D) error {
	if format == "yaml" {
		rows, _ := e.Density.Dims()
		density := make([][]float64, rows)
		for i := range density {
			density[i] = mat.Row(nil, i, e.Density)
		}
		return writeYAML(w, estimate2DDoc{n, e.BandwidthX, e.BandwidthY, e.X, e.Y, density})
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "N %d  bandwidth %.6g × %.6g\n\n", n, e.BandwidthX, e.BandwidthY)
	for i, x := range e.X {
		for j, y := range e.Y {
			fmt.Fprintf(bw, "%.6g %.6g %.6g\n", x, y, e.Density.At(i, j))
		}
	}
	return bw.Flush()
}
