/*
 * godelq_test.go, part of godelq.
 *
 *
 * Copyright 2023 Francisco Muñoz C. <curro92{at}gmailDOTcom>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package godelq

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tol = 1e-12

//cubic returns a cubic lattice with constant a.
func cubic(a float64) *mat.Dense {
	return mat.NewDense(3, 3, []float64{a, 0, 0, 0, a, 0, 0, 0, a})
}

func near(Te *testing.T, got, want, tol float64, what string) {
	Te.Helper()
	if math.Abs(got-want) > tol {
		Te.Errorf("%s: got %v, want %v", what, got, want)
	}
}

func TestWrapIdempotent(Te *testing.T) {
	//anything already in [-0.5, 0.5) must come out unchanged, up to
	//the rounding of the +0.5/-0.5 round trip
	for _, x := range []float64{-0.5, -0.49, -0.25, 0, 0.1, 0.25, 0.49999} {
		near(Te, wrapFrac(x), x, tol, "wrap of an in-range value")
	}
	for _, x := range []float64{0.9, -0.6, 1.3, -2.75, 17.1} {
		w := wrapFrac(x)
		if w < -0.5 || w >= 0.5 {
			Te.Errorf("wrapFrac(%v) = %v, outside [-0.5, 0.5)", x, w)
		}
		near(Te, wrapFrac(w), w, tol, "second application of the wrap")
	}
}

func TestWrapMinimumImage(Te *testing.T) {
	//a displacement of 0.9 is the same as one of -0.1
	near(Te, wrapFrac(0.9), wrapFrac(-0.1), tol, "wrap of equivalent images")
	near(Te, wrapFrac(0.9), -0.1, tol, "wrap of 0.9")
}

func TestZeroDisplacement(Te *testing.T) {
	a := mat.NewDense(2, 3, []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9})
	disp, err := MinImage(a, a, cubic(10))
	if err != nil {
		Te.Fatal(err)
	}
	for _, masses := range [][]float64{nil, {12, 16}} {
		q, err := DeltaQ(disp, masses)
		if err != nil {
			Te.Fatal(err)
		}
		if q != 0 {
			Te.Errorf("delta Q between a structure and itself: %v", q)
		}
	}
}

func TestSwapSymmetry(Te *testing.T) {
	a := mat.NewDense(2, 3, []float64{0.10, 0.20, 0.30, 0.95, 0.05, 0.50})
	b := mat.NewDense(2, 3, []float64{0.15, 0.18, 0.32, 0.05, 0.95, 0.55})
	lat := cubic(7.5)
	fw, err := MinImage(a, b, lat)
	if err != nil {
		Te.Fatal(err)
	}
	bw, err := MinImage(b, a, lat)
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			near(Te, fw.At(i, j), -bw.At(i, j), tol, "swapped displacement")
		}
	}
	masses := []float64{12.011, 15.999}
	qf, _ := DeltaQ(fw, masses)
	qb, _ := DeltaQ(bw, masses)
	near(Te, qf, qb, tol, "delta Q under swap")
}

func TestCarbonDisplacement(Te *testing.T) {
	//one carbon moved by 0.1 of a 10 angstrom cubic cell, i.e. 1
	//angstrom, everything else still
	a := mat.NewDense(3, 3, []float64{0, 0, 0, 0.25, 0.25, 0.25, 0.5, 0.5, 0.75})
	b := mat.NewDense(3, 3, []float64{0.1, 0, 0, 0.25, 0.25, 0.25, 0.5, 0.5, 0.75})
	disp, err := MinImage(a, b, cubic(10))
	if err != nil {
		Te.Fatal(err)
	}
	q, err := DeltaQ(disp, []float64{12.0, 1.0, 1.0})
	if err != nil {
		Te.Fatal(err)
	}
	near(Te, q, math.Sqrt(12.0), 1e-10, "mass-weighted delta Q")
	q, err = DeltaQ(disp, nil)
	if err != nil {
		Te.Fatal(err)
	}
	near(Te, q, 1.0, 1e-10, "unweighted delta Q")
}

func TestUnitMassesMatchUnweighted(Te *testing.T) {
	a := mat.NewDense(2, 3, []float64{0.1, 0.9, 0.3, 0.6, 0.1, 0.8})
	b := mat.NewDense(2, 3, []float64{0.2, 0.1, 0.35, 0.55, 0.2, 0.75})
	disp, err := MinImage(a, b, cubic(6.3))
	if err != nil {
		Te.Fatal(err)
	}
	qu, _ := DeltaQ(disp, nil)
	q1, _ := DeltaQ(disp, []float64{1, 1})
	near(Te, qu, q1, tol, "unit masses vs no masses")
}

func TestMidpointFraction(Te *testing.T) {
	lat := cubic(9.0)
	a := mat.NewDense(2, 3, []float64{0.10, 0.20, 0.30, 0.70, 0.80, 0.90})
	b := mat.NewDense(2, 3, []float64{0.18, 0.16, 0.33, 0.74, 0.86, 0.84})
	m := mat.NewDense(2, 3, nil)
	m.Add(a, b)
	m.Scale(0.5, m)
	dr, err := MinImage(a, b, lat)
	if err != nil {
		Te.Fatal(err)
	}
	dm, err := MinImage(a, m, lat)
	if err != nil {
		Te.Fatal(err)
	}
	//exactly halfway, weighted or not
	for _, masses := range [][]float64{nil, {12.011, 1.008}} {
		frac, err := PathFraction(dm, dr, masses)
		if err != nil {
			Te.Fatal(err)
		}
		near(Te, frac, 0.5, 1e-10, "fraction at the midpoint")
	}
	q, _ := DeltaQ(dr, nil)
	frac, _ := PathFraction(dm, dr, nil)
	near(Te, q*frac, q*0.5, 1e-10, "projected delta Q at the midpoint")
}

func TestMediumAtInitial(Te *testing.T) {
	lat := cubic(11.2)
	a := mat.NewDense(2, 3, []float64{0.10, 0.20, 0.30, 0.70, 0.80, 0.90})
	b := mat.NewDense(2, 3, []float64{0.18, 0.16, 0.33, 0.74, 0.86, 0.84})
	dr, err := MinImage(a, b, lat)
	if err != nil {
		Te.Fatal(err)
	}
	dm, err := MinImage(a, a, lat)
	if err != nil {
		Te.Fatal(err)
	}
	frac, err := PathFraction(dm, dr, []float64{12.011, 1.008})
	if err != nil {
		Te.Fatal(err)
	}
	if frac != 0 {
		Te.Errorf("medium identical to initial: fraction %v, want 0", frac)
	}
}

func TestZeroPathAtomPoisonsAverage(Te *testing.T) {
	//an atom that does not move between the end structures has no
	//defined fraction; the NaN must not be hidden
	lat := cubic(10)
	a := mat.NewDense(2, 3, []float64{0.1, 0.1, 0.1, 0.5, 0.5, 0.5})
	b := mat.NewDense(2, 3, []float64{0.2, 0.1, 0.1, 0.5, 0.5, 0.5}) //atom 1 still
	m := mat.NewDense(2, 3, []float64{0.15, 0.1, 0.1, 0.5, 0.5, 0.5})
	dr, _ := MinImage(a, b, lat)
	dm, _ := MinImage(a, m, lat)
	frac, err := PathFraction(dm, dr, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if !math.IsNaN(frac) {
		Te.Errorf("zero-path atom averaged away: got %v", frac)
	}
}

func TestShapeValidation(Te *testing.T) {
	a := mat.NewDense(2, 3, []float64{0, 0, 0, 0, 0, 0})
	b := mat.NewDense(3, 3, nil)
	if _, err := MinImage(a, b, cubic(10)); err == nil {
		Te.Error("atom count mismatch not caught")
	}
	if _, err := MinImage(a, a, mat.NewDense(2, 2, nil)); err == nil {
		Te.Error("non-3x3 lattice not caught")
	}
	if _, err := DeltaQ(a, []float64{1}); err == nil {
		Te.Error("mass count mismatch not caught")
	}
	if _, err := PathFraction(a, b, nil); err == nil {
		Te.Error("displacement field mismatch not caught")
	}
}

func TestMassTable(Te *testing.T) {
	m, err := MassFromSymbol("C")
	if err != nil {
		Te.Fatal(err)
	}
	near(Te, m, 12.011, tol, "mass of carbon")
	if _, err := MassFromSymbol("Xx"); err == nil {
		Te.Error("unknown element symbol not caught")
	}
}
