// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// This file implements the bandwidth selection of
//
// Botev, Z. I., Grotowski, J. F., and Kroese, D. P. (2010) Kernel
// Density Estimation via Diffusion. Annals of Statistics 38(5).
//
// Both solvers work on the DCT coefficients c[k] of the binned data
// and find the diffusion time t* (the squared bandwidth relative to
// the grid range) as the fixed point of a functional estimated from
// derivatives of the density.

// diffusionOrder is the highest derivative order used by the
// one-dimensional functional.
const diffusionOrder = 7

// oddProduct returns 1·3·5·…·(2m-1), or 1 if m <= 0.
func oddProduct(m int) float64 {
	p := 1.0
	for k := 3; k < 2*m; k += 2 {
		p *= float64(k)
	}
	return p
}

// densityFunctional returns an estimate of the squared norm of the
// s'th derivative of the density smoothed to diffusion time t. k2
// holds the squared frequencies and a2 the squares of the halved
// coefficients, both without index 0.
func densityFunctional(s int, t float64, k2, a2 []float64) float64 {
	var sum float64
	for i, k := range k2 {
		sum += math.Pow(k, float64(s)) * a2[i] * math.Exp(-math.Pi*math.Pi*k*t)
	}
	return 2 * math.Pow(math.Pi, float64(2*s)) * sum
}

// xiGamma returns ξγ(t), the diffusion time implied by the functional
// of order diffusionOrder at time t. Each lower order's time is
// estimated from the functional of the next higher order, down to
// order 2.
func xiGamma(t float64, k2, a2 []float64, n float64) float64 {
	l := diffusionOrder
	f := densityFunctional(l, t, k2, a2)
	for s := l - 1; s > 1; s-- {
		K := oddProduct(s) / math.Sqrt(2*math.Pi)
		C := (1 + math.Pow(0.5, float64(s)+0.5)) / 3
		t = math.Pow(2*C*K/n/f, 2/(3+2*float64(s)))
		f = densityFunctional(s, t, k2, a2)
	}
	return math.Pow(2*n*math.Sqrt(math.Pi)*f, -2.0/5)
}

// diffusionTime solves t = ξγ(t) over [lo, hi] for a sample of n
// points.
func diffusionTime(k2, a2 []float64, n float64, lo, hi float64) (float64, error) {
	return RootFinder{}.Find(func(t float64) float64 {
		return t - xiGamma(t, k2, a2, n)
	}, lo, hi)
}

// psiFunctional evaluates the bivariate functionals ψ of the
// two-dimensional estimator. The zero value is not usable.
type psiFunctional struct {
	// k2 holds the squared frequencies, including index 0.
	k2 []float64

	// a2 holds the squared DCT coefficients. Rows are x
	// frequencies and columns y frequencies.
	a2 *mat.Dense

	// n is the sample size.
	n float64
}

// psi returns an estimate of the integral of the squared mixed
// derivative of order dx along x and dy along y at diffusion time t.
// For total orders up to 4, t is first replaced by the time implied
// by the functionals one order higher.
func (p *psiFunctional) psi(dx, dy int, t float64) float64 {
	if dx+dy <= 4 {
		sum := math.Abs(p.psi(dx+1, dy, t) + p.psi(dx, dy+1, t))
		C := (1 + 1/math.Pow(2, float64(dx+dy+1))) / 3
		t = math.Pow(C*oddProduct(dx)*oddProduct(dy)/(math.Pi*p.n*sum), 1/float64(2+dx+dy))
	}

	size := len(p.k2)
	wx, wy := make([]float64, size), make([]float64, size)
	for k, k2 := range p.k2 {
		w := 0.5
		if k == 0 {
			w = 1
		}
		w *= math.Exp(-math.Pi * math.Pi * k2 * t)
		wx[k] = w * math.Pow(k2, float64(dx))
		wy[k] = w * math.Pow(k2, float64(dy))
	}
	sign := 1.0
	if (dx+dy)%2 != 0 {
		sign = -1
	}
	form := mat.Inner(mat.NewVecDense(size, wx), p.a2, mat.NewVecDense(size, wy))
	return sign * math.Pow(math.Pi, float64(2*(dx+dy))) * form
}

// gamma returns γ(t), the diffusion time implied by the second-order
// functionals at time t.
func (p *psiFunctional) gamma(t float64) float64 {
	sum := p.psi(0, 2, t) + p.psi(2, 0, t) + 2*p.psi(1, 1, t)
	return math.Pow(2*math.Pi*p.n*sum, -1.0/3)
}

// diffusionTime solves for the joint diffusion time over [lo, hi].
//
// The root finder is handed the relative residual t - (t-γ(t))/γ(t),
// the form used by Botev's published code.
func (p *psiFunctional) diffusionTime(lo, hi float64) (float64, error) {
	return RootFinder{}.Find(func(t float64) float64 {
		g := p.gamma(t)
		return t - (t-g)/g
	}, lo, hi)
}

// axisTimes splits the joint diffusion time t into diffusion times
// along x and y, balancing the curvature of the density along each
// axis.
func (p *psiFunctional) axisTimes(t float64) (tx, ty float64) {
	xx, yy, xy := p.psi(2, 0, t), p.psi(0, 2, t), p.psi(1, 1, t)
	d := xy + math.Sqrt(xx*yy)
	tx = math.Pow(math.Pow(yy, 0.75)/(4*math.Pi*p.n*math.Pow(xx, 0.75)*d), 1.0/3)
	ty = math.Pow(math.Pow(xx, 0.75)/(4*math.Pi*p.n*math.Pow(yy, 0.75)*d), 1.0/3)
	return
}
