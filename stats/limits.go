// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Limits is the closed interval [Min, Max] covered by one axis of an
// estimation grid.
//
// A bound that is NaN is inferred from the data by extending the
// sample range by a margin. If both bounds are 0 (their default
// values), both are inferred.
type Limits struct {
	Min, Max float64
}

// SymmetricLimits returns the limits [-l, l].
func SymmetricLimits(l float64) Limits {
	return Limits{-l, l}
}

// InferLimits returns limits with both bounds inferred from the data.
func InferLimits() Limits {
	return Limits{nan, nan}
}

// resolve returns the concrete bounds of l for sample xs. An
// inferred bound lies margin times the range of xs beyond the
// corresponding extreme of xs.
func (l Limits) resolve(xs []float64, margin float64) (lo, hi float64, err error) {
	lo, hi = l.Min, l.Max
	if lo == 0 && hi == 0 {
		lo, hi = nan, nan
	}
	if math.IsNaN(lo) || math.IsNaN(hi) {
		xmin, xmax := floats.Min(xs), floats.Max(xs)
		delta := xmax - xmin
		if math.IsNaN(lo) {
			lo = xmin - delta*margin
		}
		if math.IsNaN(hi) {
			hi = xmax + delta*margin
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, invalidf("limits [%g, %g] are not finite", lo, hi)
	}
	if !(lo < hi) {
		return 0, 0, invalidf("limits [%g, %g] are empty", lo, hi)
	}
	return lo, hi, nil
}
