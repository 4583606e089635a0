// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

// Default convergence criteria for RootFinder.
const (
	DefaultRootXTol    = 2e-12
	DefaultRootRTol    = 4 * 2.220446049250313e-16
	DefaultRootMaxIter = 100
)

// RootFinder represents options for finding a root of a scalar
// function using Brent's method.
//
// Brent's method combines bisection, the secant method, and inverse
// quadratic interpolation. It requires the root to be bracketed and
// converges at least as fast as bisection.
//
// The default (zero) value of RootFinder uses DefaultRootXTol,
// DefaultRootRTol, and DefaultRootMaxIter.
type RootFinder struct {
	// XTol and RTol are the absolute and relative tolerance of
	// the root. The search stops once the bracket is narrower
	// than XTol + RTol*|x|.
	XTol, RTol float64

	// MaxIter is the maximum number of iterations.
	MaxIter int
}

// Find returns x in [lo, hi] such that f(x) ≈ 0. f(lo) and f(hi) must
// have opposite signs.
//
// Find fails with a *ConvergenceError if f does not change sign over
// the bracket, if f returns NaN, or if the iteration limit is hit.
func (r RootFinder) Find(f func(float64) float64, lo, hi float64) (float64, error) {
	xtol, rtol, maxIter := r.XTol, r.RTol, r.MaxIter
	if xtol == 0 {
		xtol = DefaultRootXTol
	}
	if rtol == 0 {
		rtol = DefaultRootRTol
	}
	if maxIter == 0 {
		maxIter = DefaultRootMaxIter
	}
	fail := func(iter int, reason string) (float64, error) {
		return nan, &ConvergenceError{lo, hi, iter, reason}
	}

	// This follows the structure of scipy's brentq so that the
	// sequence of evaluated points is the same.
	xpre, xcur := lo, hi
	var xblk, fblk, spre, scur float64
	fpre, fcur := f(xpre), f(xcur)
	if math.IsNaN(fpre) || math.IsNaN(fcur) {
		return fail(0, "function is NaN at bracket")
	}
	if fpre == 0 {
		return xpre, nil
	}
	if fcur == 0 {
		return xcur, nil
	}
	if math.Signbit(fpre) == math.Signbit(fcur) {
		return fail(0, "no sign change over bracket")
	}

	for i := 0; i < maxIter; i++ {
		if fpre != 0 && fcur != 0 && math.Signbit(fpre) != math.Signbit(fcur) {
			xblk, fblk = xpre, fpre
			spre = xcur - xpre
			scur = spre
		}
		if math.Abs(fblk) < math.Abs(fcur) {
			// Keep xcur as the best estimate.
			xpre, xcur, xblk = xcur, xblk, xcur
			fpre, fcur, fblk = fcur, fblk, fcur
		}

		delta := (xtol + rtol*math.Abs(xcur)) / 2
		sbis := (xblk - xcur) / 2
		if fcur == 0 || math.Abs(sbis) < delta {
			return xcur, nil
		}

		if math.Abs(spre) > delta && math.Abs(fcur) < math.Abs(fpre) {
			var stry float64
			if xpre == xblk {
				// Interpolate.
				stry = -fcur * (xcur - xpre) / (fcur - fpre)
			} else {
				// Extrapolate.
				dpre := (fpre - fcur) / (xpre - xcur)
				dblk := (fblk - fcur) / (xblk - xcur)
				stry = -fcur * (fblk*dblk - fpre*dpre) / (dblk * dpre * (fblk - fpre))
			}
			if 2*math.Abs(stry) < math.Min(math.Abs(spre), 3*math.Abs(sbis)-delta) {
				// Good short step.
				spre, scur = scur, stry
			} else {
				spre, scur = sbis, sbis
			}
		} else {
			spre, scur = sbis, sbis
		}

		xpre, fpre = xcur, fcur
		if math.Abs(scur) > delta {
			xcur += scur
		} else if sbis > 0 {
			xcur += delta
		} else {
			xcur -= delta
		}

		fcur = f(xcur)
		if math.IsNaN(fcur) {
			return fail(i+1, "function is NaN")
		}
	}
	return fail(maxIter, "iteration limit reached")
}
