// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"math"
	"testing"
)

var fiveInts = []float64{-2, -1, 0, 1, 2}

func TestDiffusionKDEGrid(t *testing.T) {
	xs := repeat(fiveInts, 20)

	e, err := DiffusionKDE{N: 4}.From(xs)
	if err != nil {
		t.Fatal(err)
	}
	if len(e.Grid) != 4 || len(e.Density) != 4 {
		t.Fatalf("want 4 grid points, got %d (density %d)", len(e.Grid), len(e.Density))
	}
	if !aeq(-2.4, e.Grid[0]) || !aeq(1.2, e.Grid[3]) {
		t.Errorf("want grid from -2.4 to 1.2, got %v", e.Grid)
	}
	if !aeq(-2.4, e.Min) || !aeq(2.4, e.Max) {
		t.Errorf("want limits [-2.4, 2.4], got [%v, %v]", e.Min, e.Max)
	}

	e, err = DiffusionKDE{N: 4, Limits: SymmetricLimits(2)}.From(xs)
	if err != nil {
		t.Fatal(err)
	}
	if !aeqSlice([]float64{-2, -1, 0, 1}, e.Grid) {
		t.Errorf("want grid -2 to 1, got %v", e.Grid)
	}
}

func TestDiffusionKDEReference(t *testing.T) {
	// Computed with the reference implementation.
	tests := []struct {
		limits    Limits
		density   []float64
		bandwidth float64
	}{
		{
			Limits{},
			[]float64{0.16563059429183413, 0.19579753472704825, 0.27742637677864, 0.19447882753581094},
			0.6726135772712818,
		},
		{
			SymmetricLimits(2),
			[]float64{0.20016311341208265, 0.20444774825773523, 0.25066411754548196, 0.34472502078470013},
			0.805768867753731,
		},
	}
	for _, test := range tests {
		e, err := DiffusionKDE{N: 4, Limits: test.limits}.From(repeat(fiveInts, 20))
		if err != nil {
			t.Errorf("%+v: unexpected error %v", test.limits, err)
			continue
		}
		if !req(test.bandwidth, e.Bandwidth) {
			t.Errorf("%+v: want bandwidth %v, got %v", test.limits, test.bandwidth, e.Bandwidth)
		}
		for i, want := range test.density {
			if !req(want, e.Density[i]) {
				t.Errorf("%+v: want density %v, got %v", test.limits, test.density, e.Density)
				break
			}
		}
	}
}

func TestDiffusionKDEGridRounding(t *testing.T) {
	xs := normalSample(500)
	for n, want := range map[int]int{0: DefaultDiffusionN, 3: 4, 100: 128, 128: 128, 129: 256} {
		e, err := DiffusionKDE{N: n}.From(xs)
		if err != nil {
			t.Errorf("N=%d: unexpected error %v", n, err)
			continue
		}
		if len(e.Grid) != want {
			t.Errorf("N=%d: want %d grid points, got %d", n, want, len(e.Grid))
		}
	}
}

func TestDiffusionKDENormal(t *testing.T) {
	xs := normalSample(1000)
	e, err := DiffusionKDE{N: 256, Limits: SymmetricLimits(5)}.From(xs)
	if err != nil {
		t.Fatal(err)
	}

	h := 10.0 / 256
	var total float64
	for _, d := range e.Density {
		total += d * h
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("density integrates to %v, want 1", total)
	}

	if e.Bandwidth < 0.2 || e.Bandwidth > 0.4 {
		t.Errorf("bandwidth %v is implausible for a standard normal sample", e.Bandwidth)
	}
	for i, x := range e.Grid {
		want := math.Exp(-x*x/2) / math.Sqrt(2*math.Pi)
		if math.Abs(want-e.Density[i]) > 0.03 {
			t.Errorf("density at %v: want ≈%v, got %v", x, want, e.Density[i])
		}
	}
}

func TestDiffusionKDEDeterministic(t *testing.T) {
	xs := normalSample(300)
	a, err := DiffusionKDE{N: 64}.From(xs)
	if err != nil {
		t.Fatal(err)
	}
	b, err := DiffusionKDE{N: 64}.From(xs)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bandwidth != b.Bandwidth {
		t.Errorf("bandwidths differ: %v and %v", a.Bandwidth, b.Bandwidth)
	}
	for i := range a.Density {
		if a.Density[i] != b.Density[i] {
			t.Fatalf("density %d differs: %v and %v", i, a.Density[i], b.Density[i])
		}
	}
}

func TestDiffusionKDENoConvergence(t *testing.T) {
	_, err := DiffusionKDE{N: 4}.From(repeat(fiveInts, 10))
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("want ErrNoConvergence, got %v", err)
	}
	var cerr *ConvergenceError
	if !errors.As(err, &cerr) {
		t.Fatalf("want *ConvergenceError, got %T", err)
	}
	if cerr.Lo != 0 || cerr.Hi != DefaultSearchMax {
		t.Errorf("want bracket [0, %v], got [%v, %v]", DefaultSearchMax, cerr.Lo, cerr.Hi)
	}
}

func TestDiffusionKDESearchInterval(t *testing.T) {
	xs := repeat(fiveInts, 20)
	want, err := DiffusionKDE{N: 4, Limits: SymmetricLimits(2)}.From(xs)
	if err != nil {
		t.Fatal(err)
	}
	// SearchMax keeps its default when only SearchMin is set.
	for _, k := range []DiffusionKDE{
		{N: 4, Limits: SymmetricLimits(2), SearchMin: 0.01},
		{N: 4, Limits: SymmetricLimits(2), SearchMax: 0.5},
	} {
		e, err := k.From(xs)
		if err != nil {
			t.Errorf("%+v: unexpected error %v", k, err)
			continue
		}
		if !req(want.Bandwidth, e.Bandwidth) {
			t.Errorf("%+v: want bandwidth %v, got %v", k, want.Bandwidth, e.Bandwidth)
		}
	}
}

func TestDiffusionKDEMargin(t *testing.T) {
	e, err := DiffusionKDE{N: 4, Margin: 0.5}.From(repeat(fiveInts, 20))
	if err != nil {
		t.Fatal(err)
	}
	if !aeq(-4, e.Min) || !aeq(4, e.Max) {
		t.Errorf("want limits [-4, 4], got [%v, %v]", e.Min, e.Max)
	}
}

func TestDiffusionKDEInvalid(t *testing.T) {
	tests := []struct {
		name string
		k    DiffusionKDE
		xs   []float64
	}{
		{"empty", DiffusionKDE{}, nil},
		{"NaN", DiffusionKDE{}, []float64{1, nan, 2}},
		{"Inf", DiffusionKDE{}, []float64{1, inf, 2}},
		{"constant", DiffusionKDE{}, []float64{3, 3, 3}},
		{"one point", DiffusionKDE{}, []float64{3}},
		{"grid of 1", DiffusionKDE{N: 1}, fiveInts},
		{"negative grid", DiffusionKDE{N: -4}, fiveInts},
		{"inverted limits", DiffusionKDE{Limits: Limits{2, -2}}, fiveInts},
		{"huge grid", DiffusionKDE{N: math.MaxInt}, fiveInts},
		{"negative margin", DiffusionKDE{Margin: -0.1}, fiveInts},
		{"NaN margin", DiffusionKDE{Margin: nan}, fiveInts},
		{"negative search", DiffusionKDE{SearchMin: -1}, fiveInts},
		{"empty search", DiffusionKDE{SearchMin: 0.2}, fiveInts},
	}
	for _, test := range tests {
		_, err := test.k.From(test.xs)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: want ErrInvalidInput, got %v", test.name, err)
		}
	}
}

func TestDiffusionEstimateDist(t *testing.T) {
	xs := normalSample(1000)
	e, err := DiffusionKDE{N: 256, Limits: SymmetricLimits(5)}.From(xs)
	if err != nil {
		t.Fatal(err)
	}
	var d Dist = e

	if lo, hi := d.Bounds(); lo != -5 || hi != 5 {
		t.Errorf("want bounds [-5, 5], got [%v, %v]", lo, hi)
	}
	if d.PDF(-6) != 0 || d.PDF(6) != 0 {
		t.Errorf("PDF outside bounds is not 0")
	}
	if got := d.PDF(e.Grid[100] + 0.01); got != e.Density[100] {
		t.Errorf("PDF at %v: want %v, got %v", e.Grid[100]+0.01, e.Density[100], got)
	}

	testFunc(t, "CDF", d.CDF, map[float64]float64{
		-6: 0,
		-5: 0,
		5:  1,
		6:  1,
	})
	if got := d.CDF(0); math.Abs(got-0.5) > 0.01 {
		t.Errorf("CDF(0): want ≈0.5, got %v", got)
	}
	if got := d.CDF(1); math.Abs(got-0.8413) > 0.02 {
		t.Errorf("CDF(1): want ≈0.8413, got %v", got)
	}

	prev := 0.0
	for _, y := range d.CDFEach(e.Grid) {
		if y < prev {
			t.Fatalf("CDF is not monotonic")
		}
		prev = y
	}

	for _, y := range []float64{0.01, 0.25, 0.5, 0.75, 0.99} {
		x := d.InvCDF(y)
		if got := d.CDF(x); !aeq(y, got) {
			t.Errorf("CDF(InvCDF(%v)) = %v", y, got)
		}
	}
	if !math.IsNaN(d.InvCDF(-0.1)) || !math.IsNaN(d.InvCDF(1.1)) {
		t.Errorf("InvCDF outside [0, 1] is not NaN")
	}
	if got := d.InvCDF(0); got != -5 {
		t.Errorf("InvCDF(0): want -5, got %v", got)
	}
	if got := d.InvCDFEach([]float64{0.5}); len(got) != 1 || math.Abs(got[0]) > 0.05 {
		t.Errorf("InvCDFEach(0.5): want ≈0, got %v", got)
	}
	if got := d.PDFEach([]float64{-6, e.Grid[10]}); got[0] != 0 || got[1] != e.Density[10] {
		t.Errorf("PDFEach: got %v", got)
	}
}

func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	for x, want := range vals {
		if got := f(x); !aeq(want, got) {
			t.Errorf("%s(%v): want %v, got %v", name, x, want, got)
		}
	}
}
