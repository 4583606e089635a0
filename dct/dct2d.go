// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dct

import "gonum.org/v1/gonum/mat"

// Transform2D returns the separable two-dimensional DCT of m: the
// one-dimensional transform of every row, followed by that of every
// column. Coefficients in row 0 and column 0 are halved, the corner
// quartered. Both dimensions of m must be even.
func Transform2D(m mat.Matrix) *mat.Dense {
	return apply2D(m, (*DCT).Transform)
}

// Inverse2D returns the matrix whose two-dimensional DCT is m. It is
// the inverse of Transform2D.
func Inverse2D(m mat.Matrix) *mat.Dense {
	return apply2D(m, (*DCT).Inverse)
}

func apply2D(m mat.Matrix, f func(d *DCT, dst, src []float64) []float64) *mat.Dense {
	r, c := m.Dims()
	out := mat.DenseCopyOf(m)

	rowT := NewDCT(c)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		f(rowT, row, row)
	}

	colT := rowT
	if r != c {
		colT = NewDCT(r)
	}
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, out)
		f(colT, col, col)
		out.SetCol(j, col)
	}
	return out
}
