// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "math"

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

// req reports whether got is within a relative error of 1e-6 of
// expect.
func req(expect, got float64) bool {
	return math.Abs(expect-got) <= 1e-6*math.Abs(expect)
}

func aeqSlice(expect, got []float64) bool {
	if len(expect) != len(got) {
		return false
	}
	for i := range expect {
		if !aeq(expect[i], got[i]) {
			return false
		}
	}
	return true
}

// normalSample returns n evenly spaced quantiles of the standard
// normal distribution.
func normalSample(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		p := (float64(i) + 0.5) / float64(n)
		xs[i] = math.Sqrt2 * math.Erfinv(2*p-1)
	}
	return xs
}

func repeat(xs []float64, n int) []float64 {
	var out []float64
	for i := 0; i < n; i++ {
		out = append(out, xs...)
	}
	return out
}
