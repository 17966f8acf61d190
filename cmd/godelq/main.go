/*
 * main.go, part of godelq.
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

//godelq calculates the atomic-mass-weighted distance (delta Q) between
//two structures in POSCAR format. If a third, medium structure is given,
//it also reports where along the initial->final path that structure
//lies.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/curro92/godelq"
	"github.com/curro92/godelq/cfg"
	"github.com/curro92/godelq/poscar"
)

func main() {
	log := log.New(os.Stderr, "", log.LstdFlags)

	job := cfg.Default()
	var confpath string
	flag.StringVar(&job.Init, "i", job.Init, "initial structure (POSCAR format)")
	flag.StringVar(&job.Init, "init", job.Init, "initial structure (POSCAR format)")
	flag.StringVar(&job.Fin, "f", job.Fin, "final structure (POSCAR format)")
	flag.StringVar(&job.Fin, "fin", job.Fin, "final structure (POSCAR format)")
	flag.StringVar(&job.Med, "m", job.Med, "optional medium structure (POSCAR format) to get its fractional displacement between the initial and final structures")
	flag.StringVar(&job.Med, "med", job.Med, "optional medium structure (POSCAR format) to get its fractional displacement between the initial and final structures")
	flag.BoolVar(&job.NoWeight, "nw", job.NoWeight, "turn off mass weighting")
	flag.BoolVar(&job.NoWeight, "no_weight", job.NoWeight, "turn off mass weighting")
	flag.StringVar(&confpath, "c", "", "optional TOML file with the job parameters; explicit flags win")
	flag.StringVar(&confpath, "config", "", "optional TOML file with the job parameters; explicit flags win")
	flag.Parse()

	if confpath != "" {
		filejob, err := cfg.Read(confpath)
		if err != nil {
			log.Fatal(fmt.Errorf("cfg.Read: %w", err))
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["i"] && !set["init"] {
			job.Init = filejob.Init
		}
		if !set["f"] && !set["fin"] {
			job.Fin = filejob.Fin
		}
		if !set["m"] && !set["med"] {
			job.Med = filejob.Med
		}
		if !set["nw"] && !set["no_weight"] {
			job.NoWeight = filejob.NoWeight
		}
	}

	structi, err := poscar.Read(job.Init)
	if err != nil {
		log.Fatal(err)
	}
	structf, err := poscar.Read(job.Fin)
	if err != nil {
		log.Fatal(err)
	}

	var masses []float64
	if !job.NoWeight {
		masses, err = structi.Masses()
		if err != nil {
			log.Fatal(err)
		}
	}

	deltaR, err := godelq.MinImage(structi.Frac, structf.Frac, structi.Lattice)
	if err != nil {
		log.Fatal(err)
	}
	deltaQ, err := godelq.DeltaQ(deltaR, masses)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Delta Q:", deltaQ)

	if job.Med != cfg.Unassigned {
		structm, err := poscar.Read(job.Med)
		if err != nil {
			log.Fatal(err)
		}
		deltaM, err := godelq.MinImage(structi.Frac, structm.Frac, structi.Lattice)
		if err != nil {
			log.Fatal(err)
		}
		frac, err := godelq.PathFraction(deltaM, deltaR, masses)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println("Projected delta Q:", deltaQ*frac)
		fmt.Println("Fractional displacement:", frac)
	}
}
