/*
 * godelq.go, part of godelq.
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

//Package godelq computes mass-weighted Cartesian displacements between
//periodic structures. Coordinate sets are gonum Dense matrices with one
//row per atom, and lattices are 3x3 matrices whose rows are the real-space
//basis vectors, so a Cartesian displacement is the product of a fractional
//(row) displacement and the lattice.
package godelq

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//wrapFrac brings a fractional difference to the minimum-image range
//[-0.5, 0.5). The mod is taken into [0,1) so negative inputs wrap the
//same way as positive ones.
func wrapFrac(x float64) float64 {
	m := math.Mod(x+0.5, 1)
	if m < 0 {
		m++
	}
	return m - 0.5
}

//MinImage returns the per-atom Cartesian displacement from the structure
//with fractional coordinates a to the one with fractional coordinates b,
//under the minimum-image convention for the given lattice. a and b must
//have the same number of rows (atoms, in the same order) and 3 columns,
//and lattice must be 3x3. Note that if an atom really moved more than half
//the shortest lattice repeat in some direction, the convention picks the
//wrong periodic image; there is no way to detect that from two snapshots.
func MinImage(a, b, lattice *mat.Dense) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != 3 || bc != 3 {
		return nil, CError{fmt.Sprintf("coordinates must have 3 columns, got %d and %d", ac, bc), []string{"MinImage"}}
	}
	if ar != br {
		return nil, CError{fmt.Sprintf("atom count mismatch between structures: %d vs %d", ar, br), []string{"MinImage"}}
	}
	if lr, lc := lattice.Dims(); lr != 3 || lc != 3 {
		return nil, CError{fmt.Sprintf("lattice must be 3x3, got %dx%d", lr, lc), []string{"MinImage"}}
	}
	wrapped := mat.NewDense(ar, 3, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			wrapped.Set(i, j, wrapFrac(b.At(i, j)-a.At(i, j)))
		}
	}
	cart := mat.NewDense(ar, 3, nil)
	cart.Mul(wrapped, lattice)
	return cart, nil
}

//DeltaQ reduces a per-atom Cartesian displacement field to the scalar
//sqrt(sum_i m_i*|dr_i|^2). If masses is nil every atom weighs 1, which
//gives the plain Euclidean length of the whole displacement field.
func DeltaQ(disp *mat.Dense, masses []float64) (float64, error) {
	n, c := disp.Dims()
	if c != 3 {
		return 0, CError{fmt.Sprintf("displacements must have 3 columns, got %d", c), []string{"DeltaQ"}}
	}
	if masses != nil && len(masses) != n {
		return 0, CError{fmt.Sprintf("%d masses for %d atoms", len(masses), n), []string{"DeltaQ"}}
	}
	var total float64
	for i := 0; i < n; i++ {
		row := disp.RawRowView(i)
		sq := floats.Dot(row, row)
		if masses != nil {
			sq *= masses[i]
		}
		total += sq
	}
	return math.Sqrt(total), nil
}

//PathFraction estimates how far along the dr displacement field the dm
//field lies. Per atom, dm_i is projected on dr_i (dot product over the
//norm of dr_i) and the projection is divided by the same norm once more,
//turning a length into a fraction of that atom's path. The per-atom
//fractions are then averaged, weighted by the square root of each atom's
//mass, or unweighted if masses is nil. An atom that does not move between
//the end structures has no defined fraction; its NaN/Inf is kept in the
//average, as in the original formulation, but a warning is logged.
func PathFraction(dm, dr *mat.Dense, masses []float64) (float64, error) {
	mr, mc := dm.Dims()
	rr, rc := dr.Dims()
	if mc != 3 || rc != 3 {
		return 0, CError{fmt.Sprintf("displacements must have 3 columns, got %d and %d", mc, rc), []string{"PathFraction"}}
	}
	if mr != rr {
		return 0, CError{fmt.Sprintf("atom count mismatch between displacement fields: %d vs %d", mr, rr), []string{"PathFraction"}}
	}
	if masses != nil && len(masses) != rr {
		return 0, CError{fmt.Sprintf("%d masses for %d atoms", len(masses), rr), []string{"PathFraction"}}
	}
	var sum, wsum float64
	for i := 0; i < rr; i++ {
		m := dm.RawRowView(i)
		r := dr.RawRowView(i)
		norm := floats.Norm(r, 2)
		if norm == 0 {
			log.Printf("godelq: atom %d has zero displacement between the end structures, its path fraction is undefined", i)
		}
		frac := floats.Dot(m, r) / norm / norm
		w := 1.0
		if masses != nil {
			w = math.Sqrt(masses[i])
		}
		sum += w * frac
		wsum += w
	}
	return sum / wsum, nil
}
