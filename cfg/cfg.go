/*
 * cfg.go, part of godelq.
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

//Package cfg holds the parameters of a delta-Q calculation. The
//parameters can come from command-line flags, from a TOML file, or from
//both, with the flags winning. A configuration file looks like:
//
//	[delta_q]
//	init = "relaxed/POSCAR_i"
//	fin = "relaxed/POSCAR_f"
//	med = "neb/POSCAR_05"
//	no_weight = false
package cfg

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

//Unassigned is the sentinel value meaning that no medium structure was
//given.
const Unassigned = "unassigned"

//Job is an immutable record with everything a delta-Q run needs. It can
//be parsed from the [delta_q] table of a TOML file.
type Job struct {
	Init     string `toml:"init"`
	Fin      string `toml:"fin"`
	Med      string `toml:"med"`
	NoWeight bool   `toml:"no_weight"`
}

type file struct {
	DeltaQ Job `toml:"delta_q"`
}

//Default returns a Job with the default file locations: POSCAR_i and
//POSCAR_f in the working directory, and no medium structure.
func Default() Job {
	return Job{Init: "./POSCAR_i", Fin: "./POSCAR_f", Med: Unassigned}
}

//Read reads a Job from the TOML file at path. Keys absent from the file
//keep their Default values.
func Read(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, err
	}
	defer f.Close()

	cfg := file{DeltaQ: Default()}
	dec := toml.NewDecoder(f)
	err = dec.Decode(&cfg)
	if err != nil {
		return Job{}, fmt.Errorf("Decode: %w", err)
	}
	return cfg.DeltaQ, nil
}
