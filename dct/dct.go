// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dct implements the type-II discrete cosine transform and
// its inverse on top of a complex FFT.
//
// The transform follows the convention used by kernel density
// estimation via diffusion: coefficient 0 carries half the weight of
// the conventional unnormalized DCT-II, so that
//
//	c[k] = w[k] * sum_j x[j] * cos(π k (2j+1) / 2n)
//
// with w[0] = 1 and w[k] = 2 for k > 0. Inverse undoes Transform
// exactly, so smoothing can be applied by scaling coefficients in
// between.
package dct // import "github.com/aclements/go-kdediffusion/dct"

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DCT computes the transform of sequences of a fixed length. A DCT
// holds scratch space and is not safe for concurrent use.
type DCT struct {
	fft *fourier.CmplxFFT

	// fwd and inv are the twiddle weights applied after the
	// forward FFT and before the inverse FFT.
	fwd, inv []complex128

	seq, coef []complex128
}

// NewDCT returns a DCT for sequences of length n. n must be even and
// at least 2; NewDCT panics otherwise.
func NewDCT(n int) *DCT {
	if n < 2 || n%2 != 0 {
		panic(fmt.Sprintf("dct: length %d is not even and positive", n))
	}
	d := &DCT{
		fft:  fourier.NewCmplxFFT(n),
		fwd:  make([]complex128, n),
		inv:  make([]complex128, n),
		seq:  make([]complex128, n),
		coef: make([]complex128, n),
	}
	for k := range d.fwd {
		phase := -float64(k) * math.Pi / float64(2*n)
		d.fwd[k] = 2 * cmplx.Exp(complex(0, phase))
		d.inv[k] = cmplx.Exp(complex(0, -phase))
	}
	d.fwd[0] = 1
	return d
}

// Len returns the sequence length d operates on.
func (d *DCT) Len() int {
	return len(d.fwd)
}

// Transform computes the DCT coefficients of src and stores them in
// dst. If dst is nil, a new slice is allocated. Transform panics if
// src or a non-nil dst does not have length d.Len(). dst and src may
// be the same slice.
func (d *DCT) Transform(dst, src []float64) []float64 {
	n := d.Len()
	dst = d.check(dst, src)

	// Even elements in order, then odd elements in reverse.
	half := n / 2
	for i := 0; i < half; i++ {
		d.seq[i] = complex(src[2*i], 0)
		d.seq[half+i] = complex(src[n-1-2*i], 0)
	}
	d.fft.Coefficients(d.coef, d.seq)
	for k, c := range d.coef {
		dst[k] = real(d.fwd[k] * c)
	}
	return dst
}

// Inverse computes the sequence whose coefficients are src and
// stores it in dst. If dst is nil, a new slice is allocated. Inverse
// panics if src or a non-nil dst does not have length d.Len(). dst
// and src may be the same slice.
func (d *DCT) Inverse(dst, src []float64) []float64 {
	n := d.Len()
	dst = d.check(dst, src)

	for k, c := range src {
		d.coef[k] = d.inv[k] * complex(c, 0)
	}
	// Sequence does not normalize by 1/n.
	d.fft.Sequence(d.seq, d.coef)
	scale := 1 / float64(n)
	half := n / 2
	for i := 0; i < half; i++ {
		dst[2*i] = real(d.seq[i]) * scale
		dst[2*i+1] = real(d.seq[n-1-i]) * scale
	}
	return dst
}

func (d *DCT) check(dst, src []float64) []float64 {
	n := d.Len()
	if len(src) != n {
		panic(fmt.Sprintf("dct: source length %d, want %d", len(src), n))
	}
	if dst == nil {
		return make([]float64, n)
	}
	if len(dst) != n {
		panic(fmt.Sprintf("dct: destination length %d, want %d", len(dst), n))
	}
	return dst
}
