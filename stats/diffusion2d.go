// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/aclements/go-kdediffusion/dct"
)

// DiffusionKDE2D represents options for constructing a kernel density
// estimate of two-dimensional data by diffusion. See DiffusionKDE.
//
// The bandwidth is selected separately along each axis, so the
// kernel may be wider along one axis than along the other.
//
// The default (zero) value of DiffusionKDE2D is a reasonable default
// configuration.
type DiffusionKDE2D struct {
	// N is the number of grid points along each axis. It is
	// rounded up to a power of two. If N is zero,
	// DefaultDiffusionN2D is used.
	N int

	// XLimits and YLimits are the ranges covered by the grid
	// along each axis. To use the same limits on both axes, set
	// both.
	XLimits, YLimits Limits

	// Margin is the fraction of the sample range added beyond
	// the sample on each inferred side. It must not be negative.
	// If zero, DefaultMargin2D is used.
	Margin float64

	// [SearchMin, SearchMax] is the interval of diffusion times
	// searched for the optimal one. SearchMin defaults to 0. If
	// SearchMax is 0, DefaultSearchMax is used.
	SearchMin, SearchMax float64
}

// DiffusionEstimate2D is a bivariate density estimated on a regular
// grid.
type DiffusionEstimate2D struct {
	// Density holds the estimated density. Row i corresponds to
	// X[i] and column j to Y[j].
	Density *mat.Dense

	// X and Y hold the lower edges of the grid cells along each
	// axis.
	X, Y []float64

	// BandwidthX and BandwidthY are the standard deviations of
	// the Gaussian kernel along x (the first sample) and y (the
	// second sample), in the units of the samples.
	BandwidthX, BandwidthY float64

	// The grid covers [XMin, XMax] × [YMin, YMax].
	XMin, XMax, YMin, YMax float64
}

// From returns the kernel density estimate of the points (xs[i],
// ys[i]).
//
// It fails with an error wrapping ErrInvalidInput if xs and ys differ
// in length, are empty, contain non-finite values, or the limits are
// empty, and with a *ConvergenceError if no optimal bandwidth could
// be found.
func (k DiffusionKDE2D) From(xs, ys []float64) (*DiffusionEstimate2D, error) {
	if len(xs) != len(ys) {
		return nil, invalidf("x and y have different lengths %d and %d", len(xs), len(ys))
	}
	if err := checkSample(xs); err != nil {
		return nil, err
	}
	if err := checkSample(ys); err != nil {
		return nil, err
	}
	n, err := gridSize(k.N, DefaultDiffusionN2D)
	if err != nil {
		return nil, err
	}
	margin, err := marginOr(k.Margin, DefaultMargin2D)
	if err != nil {
		return nil, err
	}
	xlo, xhi, err := k.XLimits.resolve(xs, margin)
	if err != nil {
		return nil, err
	}
	ylo, yhi, err := k.YLimits.resolve(ys, margin)
	if err != nil {
		return nil, err
	}
	tlo, thi, err := searchInterval(k.SearchMin, k.SearchMax)
	if err != nil {
		return nil, err
	}
	dx, dy := xhi-xlo, yhi-ylo

	xedges, yedges := binEdges(n, xlo, xhi), binEdges(n, ylo, yhi)
	coef := dct.Transform2D(histogram2D(xs, ys, xedges, yedges))

	k2 := make([]float64, n)
	for i := range k2 {
		k2[i] = float64(i * i)
	}
	a2 := mat.NewDense(n, n, nil)
	a2.MulElem(coef, coef)
	p := &psiFunctional{k2: k2, a2: a2, n: float64(len(xs))}

	ts, err := p.diffusionTime(tlo, thi)
	if err != nil {
		return nil, err
	}
	tx, ty := p.axisTimes(ts)
	if !isFinitePositive(tx) || !isFinitePositive(ty) {
		return nil, &ConvergenceError{tlo, thi, 0, "axis diffusion times are not finite"}
	}

	// Gaussian filter, separately along each axis.
	fx, fy := make([]float64, n), make([]float64, n)
	for i, kk := range k2 {
		fx[i] = math.Exp(-math.Pi * math.Pi * kk * tx / 2)
		fy[i] = math.Exp(-math.Pi * math.Pi * kk * ty / 2)
	}
	coef.Apply(func(i, j int, v float64) float64 {
		return v * (fx[i] * fy[j])
	}, coef)

	density := dct.Inverse2D(coef)
	scale := float64(n)
	density.Apply(func(_, _ int, v float64) float64 {
		return v * scale / dx * scale / dy
	}, density)

	return &DiffusionEstimate2D{
		Density:    density,
		X:          xedges[:n:n],
		Y:          yedges[:n:n],
		BandwidthX: math.Sqrt(tx) * dx,
		BandwidthY: math.Sqrt(ty) * dy,
		XMin:       xlo,
		XMax:       xhi,
		YMin:       ylo,
		YMax:       yhi,
	}, nil
}

func isFinitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// PDF returns the estimated density at (x, y), or 0 outside the
// grid.
func (e *DiffusionEstimate2D) PDF(x, y float64) float64 {
	r, c := e.Density.Dims()
	i := gridCell(x, e.XMin, e.XMax, r)
	j := gridCell(y, e.YMin, e.YMax, c)
	if i < 0 || j < 0 {
		return 0
	}
	return e.Density.At(i, j)
}

// Bounds returns the range covered by the grid along each axis.
func (e *DiffusionEstimate2D) Bounds() (xmin, xmax, ymin, ymax float64) {
	return e.XMin, e.XMax, e.YMin, e.YMax
}

// gridCell returns the cell of an n-cell grid over [lo, hi]
// containing x, or -1 if there is none.
func gridCell(x, lo, hi float64, n int) int {
	if !(x >= lo && x <= hi) {
		return -1
	}
	i := int((x - lo) / (hi - lo) * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
