/*
 * poscar.go, part of godelq.
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

//Package poscar reads and writes VASP POSCAR/CONTCAR structure files.
//Only what a periodic structure needs is kept: the lattice, the
//fractional coordinates and the species of each site. Velocities and
//selective-dynamics flags present in the file are skipped.
package poscar

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"

	"github.com/curro92/godelq"
)

//Structure is a periodic structure as read from a POSCAR file. The
//lattice is a 3x3 matrix whose rows are the real-space basis vectors,
//already multiplied by the universal scaling factor. Frac holds one row
//of fractional coordinates per atom, in file order. SiteSymbols and
//Counts keep the per-block species line of the file (the chemically
//sorted symbol ordering); Symbols is that line expanded to one symbol
//per atom.
type Structure struct {
	Comment     string
	Lattice     *mat.Dense
	Frac        *mat.Dense
	Symbols     []string
	SiteSymbols []string
	Counts      []int
}

//Len returns the number of atoms in the structure.
func (S *Structure) Len() int {
	return len(S.Symbols)
}

//Masses returns a slice with the atomic mass of each atom in the
//structure, in file order.
func (S *Structure) Masses() ([]float64, error) {
	masses := make([]float64, len(S.Symbols))
	for i, v := range S.Symbols {
		m, err := godelq.MassFromSymbol(v)
		if err != nil {
			return nil, errDecorate(err, "Masses")
		}
		masses[i] = m
	}
	return masses, nil
}

//Read reads a POSCAR file from path and returns the structure it
//contains. Files ending in .gz or .zst are decompressed on the fly.
func Read(path string) (*Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{err.Error(), path, []string{"Read"}, true}
	}
	defer f.Close()
	var r io.Reader = bufio.NewReader(f)
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".gz"):
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, Error{"can't read gzip header: " + err.Error(), path, []string{"Read"}, true}
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(strings.ToLower(path), ".zst"):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, Error{"can't read zstd header: " + err.Error(), path, []string{"Read"}, true}
		}
		defer zr.Close()
		r = zr
	}
	S, err := read(r, path)
	if err != nil {
		return nil, errDecorate(err, "Read")
	}
	return S, nil
}

//lineReader hands out the successive non-empty-ish lines of a POSCAR.
//POSCAR lines are positional, so a plain scanner plus a cursor for error
//messages is all that is needed.
type lineReader struct {
	sc       *bufio.Scanner
	filename string
	line     int
}

func (l *lineReader) next() (string, error) {
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return "", Error{err.Error(), l.filename, []string{"next"}, true}
		}
		return "", Error{fmt.Sprintf("file ends at line %d, more lines expected", l.line), l.filename, []string{"next"}, true}
	}
	l.line++
	return l.sc.Text(), nil
}

func (l *lineReader) fail(msg string) error {
	return Error{fmt.Sprintf("line %d: %s", l.line, msg), l.filename, []string{"read"}, true}
}

func read(r io.Reader, filename string) (*Structure, error) {
	l := &lineReader{sc: bufio.NewScanner(r), filename: filename}
	comment, err := l.next()
	if err != nil {
		return nil, err
	}
	line, err := l.next()
	if err != nil {
		return nil, err
	}
	scale, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return nil, l.fail("can't parse the universal scaling factor: " + err.Error())
	}
	lattice := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		line, err = l.next()
		if err != nil {
			return nil, err
		}
		v, err := parseFloats(line, 3)
		if err != nil {
			return nil, l.fail("lattice vector: " + err.Error())
		}
		lattice.SetRow(i, v)
	}
	//A negative scaling factor is the target cell volume: the lattice
	//is rescaled so its determinant matches it.
	if scale < 0 {
		det := mat.Det(lattice)
		scale = math.Cbrt(-scale / math.Abs(det))
	}
	lattice.Scale(scale, lattice)

	line, err = l.next()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, l.fail("expected species symbols or atom counts, got an empty line")
	}
	var symbols []string
	if _, err := strconv.Atoi(fields[0]); err != nil {
		//VASP 5: a symbols line precedes the counts line.
		symbols = fields
		line, err = l.next()
		if err != nil {
			return nil, err
		}
		fields = strings.Fields(line)
	} else {
		//VASP 4 has no symbols line; some tools leave the symbols on
		//the comment line instead, in block order.
		symbols = strings.Fields(comment)
	}
	counts := make([]int, len(fields))
	natoms := 0
	for i, v := range fields {
		counts[i], err = strconv.Atoi(v)
		if err != nil {
			return nil, l.fail("can't parse atom count: " + err.Error())
		}
		natoms += counts[i]
	}
	if len(symbols) != len(counts) {
		return nil, l.fail(fmt.Sprintf("%d species symbols for %d atom-count blocks", len(symbols), len(counts)))
	}
	persite := make([]string, 0, natoms)
	for i, v := range symbols {
		for j := 0; j < counts[i]; j++ {
			persite = append(persite, v)
		}
	}

	line, err = l.next()
	if err != nil {
		return nil, err
	}
	if len(line) > 0 && (line[0] == 's' || line[0] == 'S') {
		//Selective dynamics. The per-atom T/F flags are skipped below.
		line, err = l.next()
		if err != nil {
			return nil, err
		}
	}
	if len(line) == 0 {
		return nil, l.fail("expected a coordinate mode line")
	}
	var cartesian bool
	switch line[0] {
	case 'd', 'D':
		cartesian = false
	case 'c', 'C', 'k', 'K':
		cartesian = true
	default:
		return nil, l.fail(fmt.Sprintf("unknown coordinate mode %q", line))
	}

	coords := mat.NewDense(natoms, 3, nil)
	for i := 0; i < natoms; i++ {
		line, err = l.next()
		if err != nil {
			return nil, err
		}
		v, err := parseFloats(line, 3)
		if err != nil {
			return nil, l.fail(fmt.Sprintf("coordinates of atom %d: %s", i+1, err.Error()))
		}
		coords.SetRow(i, v)
	}
	if cartesian {
		//Cartesian coordinates are subject to the same scaling factor
		//as the lattice, and are stored fractional.
		coords.Scale(scale, coords)
		var inv mat.Dense
		if err := inv.Inverse(lattice); err != nil {
			return nil, l.fail("singular lattice, can't convert Cartesian coordinates: " + err.Error())
		}
		frac := mat.NewDense(natoms, 3, nil)
		frac.Mul(coords, &inv)
		coords = frac
	}

	return &Structure{
		Comment:     comment,
		Lattice:     lattice,
		Frac:        coords,
		Symbols:     persite,
		SiteSymbols: symbols,
		Counts:      counts,
	}, nil
}

//parseFloats parses the first n whitespace-separated fields of line as
//floats. Extra fields (selective-dynamics flags, trailing comments) are
//ignored.
func parseFloats(line string, n int) ([]float64, error) {
	fields := strings.Fields(line)
	if len(fields) < n {
		return nil, fmt.Errorf("%d fields, %d needed", len(fields), n)
	}
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		var err error
		v[i], err = strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

//Errors

//errDecorate is a helper that decorates err with the caller's name if it
//implements godelq.Error, and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	err2, ok := err.(godelq.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

//Error is the structure for POSCAR file errors. It fulfills godelq.Error
//and godelq.FileError.
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("poscar file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	//err.deco is a slice, so appending through a value receiver still
	//reaches the backing array seen by the caller.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file associated to the error.
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error.
func (err Error) Format() string { return "poscar" }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }
