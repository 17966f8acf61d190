/*
 * write.go, part of godelq.
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

package poscar

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

//Write writes S to w in VASP 5 POSCAR format: the lattice as-is with a
//scaling factor of 1.0, the species and counts lines, and the
//coordinates in Direct (fractional) mode.
func Write(w io.Writer, S *Structure) error {
	if S == nil || S.Lattice == nil || S.Frac == nil {
		return Error{"nil structure or structure with no coordinates", "", []string{"Write"}, true}
	}
	n, _ := S.Frac.Dims()
	if n != len(S.Symbols) {
		return Error{fmt.Sprintf("%d coordinate rows for %d atoms", n, len(S.Symbols)), "", []string{"Write"}, true}
	}
	symbols, counts := S.SiteSymbols, S.Counts
	if len(symbols) == 0 {
		symbols, counts = siteBlocks(S.Symbols)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", S.Comment)
	fmt.Fprintf(bw, "1.0\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(bw, " %21.16f %21.16f %21.16f\n", S.Lattice.At(i, 0), S.Lattice.At(i, 1), S.Lattice.At(i, 2))
	}
	for _, v := range symbols {
		fmt.Fprintf(bw, " %s", v)
	}
	fmt.Fprintf(bw, "\n")
	for _, v := range counts {
		fmt.Fprintf(bw, " %d", v)
	}
	fmt.Fprintf(bw, "\nDirect\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, " %19.16f %19.16f %19.16f\n", S.Frac.At(i, 0), S.Frac.At(i, 1), S.Frac.At(i, 2))
	}
	if err := bw.Flush(); err != nil {
		return Error{err.Error(), "", []string{"Write"}, true}
	}
	return nil
}

//WriteFile writes S in POSCAR format to a new file at path.
func WriteFile(path string, S *Structure) error {
	f, err := os.Create(path)
	if err != nil {
		return Error{err.Error(), path, []string{"WriteFile"}, true}
	}
	defer f.Close()
	if err := Write(f, S); err != nil {
		return errDecorate(err, "WriteFile")
	}
	return nil
}

//siteBlocks run-length encodes a per-atom symbol list into the
//symbols/counts pair of the POSCAR species lines. Sites of the same
//species must already be contiguous, as POSCAR requires.
func siteBlocks(persite []string) ([]string, []int) {
	var symbols []string
	var counts []int
	for _, v := range persite {
		if len(symbols) == 0 || symbols[len(symbols)-1] != v {
			symbols = append(symbols, v)
			counts = append(counts, 0)
		}
		counts[len(counts)-1]++
	}
	return symbols, counts
}
