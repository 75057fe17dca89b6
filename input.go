// input.go --  This file is part of goPNO project.
// Mirzaeva Irina, 2023
//
//	goPNO is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package main

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/MirzaevaIV/goPNO/grid"
	"github.com/MirzaevaIV/goPNO/molecule"
	"github.com/MirzaevaIV/goPNO/pno"
	"github.com/MirzaevaIV/goPNO/scf"
)

// Input is everything read from an input file.
type Input struct {
	Mol   molecule.Molecule
	Basis string
	Grid  grid.Config
	SCF   scf.Settings
	PNO   pno.Parameters
}

// processInput reads the input blocks. Without a grid block the mesh is
// grid.DefaultConfig: 96 points in a 12 bohr box, smoothing one step. Keep
// the step near 0.125 bohr when changing the box; coarser meshes spoil the
// Fock matrix of the occupied orbitals.
func processInput(data []string) (Input, error) {
	inp := Input{
		Basis: "sto-3g",
		Grid:  grid.DefaultConfig(),
		SCF:   scf.DefaultSettings(),
	}
	var atoms, basis bool
	var err error
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 {
			continue
		}
		switch strings.ToLower(words[0]) {
		case "atoms":
			atoms = true
			atom_end, err := findBlockEnd(i, data, "Atoms")
			if err != nil {
				return inp, err
			}
			OutputLogger.Print("Parsing input. Atoms block found at lines ", i, " -- ", atom_end, ".")
			if inp.Mol, err = molecule.Parse(data, i+1, atom_end-1); err != nil {
				return inp, err
			}
			i = atom_end
		case "basis":
			if i+1 >= len(data) {
				return inp, errors.New("no basis name")
			}
			basis = true
			inp.Basis = strings.TrimSpace(data[i+1])
			if _, err := findBlockEnd(i, data, "Basis"); err != nil {
				return inp, err
			}
			OutputLogger.Print("Parsing input. Basis block found. ", inp.Basis)
		case "nprocs":
			if len(words) < 2 {
				return inp, errors.New("nprocs without value")
			}
			nprocs, err := strconv.Atoi(words[1])
			if err != nil || nprocs < 1 {
				return inp, errors.Errorf("nprocs %s", words[1])
			}
			runtime.GOMAXPROCS(nprocs)
			inp.Grid.Workers = nprocs
			OutputLogger.Print("Parsing input. Number of threads set to " + words[1] + ".")
		case "grid":
			if err = readGrid(&inp.Grid, blockWords(data, i)); err != nil {
				return inp, err
			}
			OutputLogger.Printf("Parsing input. Grid %d points, box %g bohr, threshold %g.", inp.Grid.Points, inp.Grid.Box, inp.Grid.Thresh)
		case "scf":
			if err = readSCF(&inp.SCF, blockWords(data, i)); err != nil {
				return inp, err
			}
		}
	}
	if !atoms {
		return inp, errors.New("no Atoms found")
	}
	if !basis {
		OutputLogger.Println("Parsing input. No Basis found. Using default basis: STO-3G.")
	}
	if inp.PNO, err = pno.ReadParameters(data); err != nil {
		return inp, err
	}
	OutputLogger.Printf("Parsing input. PNO: npno %d, freeze %d, maxiter %d.", inp.PNO.NPNO, inp.PNO.Freeze, inp.PNO.MaxIter)
	return inp, nil
}

func findBlockEnd(n int, data []string, bname string) (int, error) {
	for i := n; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 {
			if strings.ToLower(words[0]) == "end" {
				return i, nil
			}
		}
	}
	return 0, errors.New("no end of block " + bname + ".")
}

// blockWords returns the words after the keyword on line n up to "end".
func blockWords(data []string, n int) []string {
	var words []string
	for i := n; i < len(data); i++ {
		fields := strings.Fields(data[i])
		if i == n {
			fields = fields[1:]
		}
		for _, w := range fields {
			if strings.ToLower(w) == "end" {
				return words
			}
			words = append(words, w)
		}
	}
	return words
}

func keyValues(words []string, set func(key, val string) (bool, error)) error {
	for i := 0; i < len(words); i++ {
		key := strings.ToLower(words[i])
		if i+1 >= len(words) {
			return errors.Errorf("%s without value", key)
		}
		known, err := set(key, words[i+1])
		if err != nil {
			return errors.Wrapf(err, "%s", key)
		}
		if known {
			i++
		}
	}
	return nil
}

func readGrid(cfg *grid.Config, words []string) error {
	return keyValues(words, func(key, val string) (bool, error) {
		var err error
		switch key {
		case "points":
			cfg.Points, err = strconv.Atoi(val)
		case "box":
			cfg.Box, err = strconv.ParseFloat(val, 64)
		case "thresh":
			cfg.Thresh, err = strconv.ParseFloat(val, 64)
		case "smoothing":
			cfg.Smoothing, err = strconv.ParseFloat(val, 64)
		default:
			return false, nil
		}
		return true, err
	})
}

func readSCF(s *scf.Settings, words []string) error {
	return keyValues(words, func(key, val string) (bool, error) {
		var err error
		switch key {
		case "maxiter":
			s.MaxSteps, err = strconv.Atoi(val)
		case "econv":
			s.TolE, err = strconv.ParseFloat(val, 64)
		case "dconv":
			s.TolD, err = strconv.ParseFloat(val, 64)
		case "diis":
			s.MaxDIIS, err = strconv.Atoi(val)
		default:
			return false, nil
		}
		return true, err
	})
}
