// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/bits"
	"sort"

	"github.com/aclements/go-kdediffusion/dct"
)

// Defaults for DiffusionKDE and DiffusionKDE2D.
const (
	DefaultDiffusionN   = 1024
	DefaultDiffusionN2D = 256

	// DefaultMargin and DefaultMargin2D are the fractions of the
	// sample range by which inferred limits extend beyond the
	// sample.
	DefaultMargin   = 0.1
	DefaultMargin2D = 0.25

	// DefaultSearchMax is the upper end of the interval searched
	// for the diffusion time. The lower end is 0.
	DefaultSearchMax = 0.1
)

// DiffusionKDE represents options for constructing a kernel density
// estimate of one-dimensional data by diffusion.
//
// Unlike KDE constructions that take the bandwidth from a normal
// reference rule, diffusion-based estimation selects the bandwidth
// from the data by solving a fixed-point equation, so it adapts to
// multimodal and heavily skewed distributions. The sample is binned
// on a regular grid, the histogram is smoothed by a Gaussian kernel
// applied in the cosine transform domain, and the result is
// evaluated on the same grid.
//
// Botev, Z. I., Grotowski, J. F., and Kroese, D. P. (2010) Kernel
// Density Estimation via Diffusion. Annals of Statistics 38(5).
//
// The default (zero) value of DiffusionKDE is a reasonable default
// configuration.
type DiffusionKDE struct {
	// N is the number of grid points. It is rounded up to a power
	// of two. If N is zero, DefaultDiffusionN is used.
	N int

	// Limits is the range covered by the grid. Inferred bounds
	// extend the sample range by Margin on either side.
	Limits Limits

	// Margin is the fraction of the sample range added beyond
	// the sample on each inferred side. It must not be negative.
	// If zero, DefaultMargin is used.
	Margin float64

	// [SearchMin, SearchMax] is the interval of diffusion times
	// searched for the optimal one. SearchMin defaults to 0. If
	// SearchMax is 0, DefaultSearchMax is used.
	SearchMin, SearchMax float64
}

// DiffusionEstimate is a density estimated on a regular grid.
//
// The density is piecewise constant: Density[i] holds on the cell
// starting at Grid[i]. DiffusionEstimate implements Dist.
type DiffusionEstimate struct {
	// Density is the estimated density at each grid point.
	Density []float64

	// Grid holds the left edge of each grid cell.
	Grid []float64

	// Bandwidth is the standard deviation of the Gaussian kernel,
	// in the units of the sample.
	Bandwidth float64

	// [Min, Max] is the range covered by the grid.
	Min, Max float64

	// cum[i] is the normalized mass of the non-negative part of
	// the density below Grid[i]. It has one more element than
	// Grid.
	cum []float64
}

// From returns the kernel density estimate of xs.
//
// It fails with an error wrapping ErrInvalidInput if xs is empty,
// contains non-finite values, or the limits are empty, and with a
// *ConvergenceError if no optimal bandwidth could be found, which
// typically means there are too few samples for the grid resolution.
func (k DiffusionKDE) From(xs []float64) (*DiffusionEstimate, error) {
	if err := checkSample(xs); err != nil {
		return nil, err
	}
	n, err := gridSize(k.N, DefaultDiffusionN)
	if err != nil {
		return nil, err
	}
	margin, err := marginOr(k.Margin, DefaultMargin)
	if err != nil {
		return nil, err
	}
	lo, hi, err := k.Limits.resolve(xs, margin)
	if err != nil {
		return nil, err
	}
	tlo, thi, err := searchInterval(k.SearchMin, k.SearchMax)
	if err != nil {
		return nil, err
	}
	width := hi - lo
	N := float64(len(xs))

	edges := binEdges(n, lo, hi)
	t := dct.NewDCT(n)
	coef := t.Transform(nil, histogram(xs, edges))

	k2 := make([]float64, n-1)
	a2 := make([]float64, n-1)
	for i := 1; i < n; i++ {
		k2[i-1] = float64(i * i)
		a2[i-1] = (coef[i] / 2) * (coef[i] / 2)
	}
	ts, err := diffusionTime(k2, a2, N, tlo, thi)
	if err != nil {
		return nil, err
	}

	// Gaussian filter.
	for i := range coef {
		kk := float64(i * i)
		coef[i] *= math.Exp(-math.Pi * math.Pi * ts / 2 * kk)
	}
	density := t.Inverse(coef, coef)
	for i := range density {
		density[i] = density[i] * float64(n) / width
	}

	e := &DiffusionEstimate{
		Density:   density,
		Grid:      edges[:n:n],
		Bandwidth: math.Sqrt(ts) * width,
		Min:       lo,
		Max:       hi,
	}
	e.cum = e.cumulative()
	return e, nil
}

// checkSample checks that xs is non-empty and finite.
func checkSample(xs []float64) error {
	if len(xs) == 0 {
		return invalidf("empty sample")
	}
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return invalidf("sample %d is %v", i, x)
		}
	}
	return nil
}

// gridSize rounds n up to a power of two, or returns def if n is 0.
func gridSize(n, def int) (int, error) {
	if n == 0 {
		return def, nil
	}
	if n < 0 {
		return 0, invalidf("negative grid size %d", n)
	}
	shift := bits.Len(uint(n - 1))
	if shift >= bits.UintSize-1 {
		return 0, invalidf("grid size %d is too large", n)
	}
	p := 1 << shift
	if p < 2 {
		return 0, invalidf("grid size %d is below 2", n)
	}
	return p, nil
}

// marginOr returns margin, or def if margin is 0.
func marginOr(margin, def float64) (float64, error) {
	if margin < 0 || math.IsNaN(margin) || math.IsInf(margin, 0) {
		return 0, invalidf("margin %v is not a non-negative number", margin)
	}
	if margin == 0 {
		return def, nil
	}
	return margin, nil
}

// searchInterval returns the diffusion time interval [lo, hi], with
// DefaultSearchMax in place of a zero hi.
func searchInterval(lo, hi float64) (float64, float64, error) {
	if hi == 0 {
		hi = DefaultSearchMax
	}
	if !(lo >= 0 && lo < hi) || math.IsInf(hi, 0) {
		return 0, 0, invalidf("diffusion time interval [%g, %g] is invalid", lo, hi)
	}
	return lo, hi, nil
}

// cellWidth returns the width of one grid cell.
func (e *DiffusionEstimate) cellWidth() float64 {
	return (e.Max - e.Min) / float64(len(e.Density))
}

// cell returns the index of the grid cell containing x, or -1 if x
// is outside [e.Min, e.Max].
func (e *DiffusionEstimate) cell(x float64) int {
	return gridCell(x, e.Min, e.Max, len(e.Density))
}

func (e *DiffusionEstimate) cumulative() []float64 {
	if e.cum != nil {
		return e.cum
	}
	cum := make([]float64, len(e.Density)+1)
	for i, d := range e.Density {
		cum[i+1] = cum[i] + math.Max(d, 0)
	}
	total := cum[len(cum)-1]
	for i := range cum {
		if total > 0 {
			cum[i] /= total
		} else {
			// No mass at all. Fall back to uniform.
			cum[i] = float64(i) / float64(len(e.Density))
		}
	}
	return cum
}

// PDF returns the estimated density at x. Outside [e.Min, e.Max],
// this is 0. The estimate can be slightly negative where the true
// density is close to 0.
func (e *DiffusionEstimate) PDF(x float64) float64 {
	i := e.cell(x)
	if i < 0 {
		return 0
	}
	return e.Density[i]
}

func (e *DiffusionEstimate) PDFEach(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = e.PDF(x)
	}
	return out
}

// CDF returns the integral of the non-negative part of the density
// below x, normalized so that CDF(e.Max) = 1.
func (e *DiffusionEstimate) CDF(x float64) float64 {
	if x <= e.Min {
		return 0
	} else if x >= e.Max {
		return 1
	}
	cum := e.cumulative()
	i := e.cell(x)
	frac := (x - e.Min - float64(i)*e.cellWidth()) / e.cellWidth()
	return cum[i] + (cum[i+1]-cum[i])*frac
}

func (e *DiffusionEstimate) CDFEach(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = e.CDF(x)
	}
	return out
}

// InvCDF returns the smallest x such that CDF(x) = y, or NaN if y is
// outside [0, 1].
func (e *DiffusionEstimate) InvCDF(y float64) float64 {
	if y < 0 || y > 1 || math.IsNaN(y) {
		return nan
	}
	cum := e.cumulative()
	i := sort.SearchFloat64s(cum, y)
	if i == 0 {
		return e.Min
	}
	// cum[i-1] < y <= cum[i]
	frac := (y - cum[i-1]) / (cum[i] - cum[i-1])
	return e.Min + (float64(i-1)+frac)*e.cellWidth()
}

func (e *DiffusionEstimate) InvCDFEach(ys []float64) []float64 {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = e.InvCDF(y)
	}
	return out
}

// Bounds returns the range covered by the grid.
func (e *DiffusionEstimate) Bounds() (float64, float64) {
	return e.Min, e.Max
}
