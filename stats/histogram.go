// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// binEdges returns the n+1 edges of n equal-width bins spanning
// [lo, hi].
func binEdges(n int, lo, hi float64) []float64 {
	edges := floats.Span(make([]float64, n+1), lo, hi)
	edges[n] = hi
	return edges
}

// binIndex returns the bin of edges that contains x, or -1 if x is
// outside the edges. Bins are half-open except the last, which
// includes its upper edge.
func binIndex(x float64, edges []float64) int {
	n := len(edges) - 1
	lo, hi := edges[0], edges[n]
	if !(x >= lo && x <= hi) {
		return -1
	}
	i := int((x - lo) / (hi - lo) * float64(n))
	if i == n {
		i--
	}
	// The computed index can be off by one near an edge.
	if x < edges[i] {
		i--
	} else if i != n-1 && x >= edges[i+1] {
		i++
	}
	return i
}

// histogram bins xs into the bins delimited by edges and scales each
// count by 1/len(xs). Samples outside the edges are dropped but still
// count toward the normalization.
func histogram(xs []float64, edges []float64) []float64 {
	out := make([]float64, len(edges)-1)
	for _, x := range xs {
		if i := binIndex(x, edges); i >= 0 {
			out[i]++
		}
	}
	n := float64(len(xs))
	for i := range out {
		out[i] /= n
	}
	return out
}

// histogram2D is the two-dimensional histogram. Row i of the result
// corresponds to bin i of xedges and column j to bin j of yedges.
func histogram2D(xs, ys []float64, xedges, yedges []float64) *mat.Dense {
	counts := mat.NewDense(len(xedges)-1, len(yedges)-1, nil)
	for k := range xs {
		i, j := binIndex(xs[k], xedges), binIndex(ys[k], yedges)
		if i < 0 || j < 0 {
			continue
		}
		counts.Set(i, j, counts.At(i, j)+1)
	}
	n := float64(len(xs))
	counts.Apply(func(_, _ int, v float64) float64 { return v / n }, counts)
	return counts
}
