/*
 * errors.go, part of godelq.
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

// Error is the interface for errors that the packages in this library
// implement. The Decorate method adds information to the error as it is
// passed up, without changing its type or wrapping it in something else.
// Passed an empty string, it just returns the current decoration slice.
type Error interface {
	Error() string
	Decorate(string) []string
}

// FileError is the interface for errors tied to an input file.
type FileError interface {
	Error
	FileName() string
	Format() string
	Critical() bool
}

// CError is the concrete error type for the numeric functions in this
// package.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

// Decorate adds new information to the error.
func (err CError) Decorate(deco string) []string {
	// deco is a slice, so appending to it through a value receiver
	// still reaches the backing array seen by the caller.
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
