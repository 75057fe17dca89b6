// solver.go --  This file is part of goPNO project.
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

// Package pno computes pair correlation energies with pair natural orbitals:
// for every pair of occupied orbitals a small set of virtuals is optimized
// by fixed-point iteration on the Hylleraas functional.
package pno

import (
	"io"
	"log"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/MirzaevaIV/goPNO/grid"
	"github.com/MirzaevaIV/goPNO/molecule"
)

// Reference provides the occupied orbitals of the mean-field solution. They
// must be orthonormal and are never modified.
type Reference interface {
	Occupied() []*grid.Function
	OrbitalEnergy(i int) float64
}

// Resolvent applies a bound-state Green's function with one energy shift per
// source.
type Resolvent interface {
	Apply(shifts []float64, sources []*grid.Function) ([]*grid.Function, error)
}

// Logs routes the solver output. Nil loggers discard.
type Logs struct {
	Output  *log.Logger
	Warning *log.Logger
}

// Solver optimizes the pair natural orbitals of every occupied pair of one
// reference. The operators are built once and shared by all pairs; pairs are
// independent of each other.
type Solver struct {
	world     *grid.World
	mol       molecule.Molecule
	ref       Reference
	param     Parameters
	poisson   Kernel
	resolvent Resolvent

	F     *Fock
	Q     *Projector
	guess *GuessGenerator

	out, warn *log.Logger
}

// NewSolver builds the operators of the reference once; they are shared by
// all pairs.
func NewSolver(w *grid.World, mol molecule.Molecule, ref Reference, kernel Kernel, resolvent Resolvent, param Parameters, logs Logs) (*Solver, error) {
	if err := param.Validate(); err != nil {
		return nil, err
	}
	occ := ref.Occupied()
	if len(occ) == 0 {
		return nil, errors.Wrap(ErrPairIndex, "no occupied orbitals")
	}
	s := &Solver{
		world:     w,
		mol:       mol,
		ref:       ref,
		param:     param,
		poisson:   kernel,
		resolvent: resolvent,
		F:         NewFock(kernel, occ, w.NuclearPotential(mol.Atoms)),
		Q:         NewProjector(occ),
		guess:     NewGuessGenerator(w, mol),
		out:       logs.Output,
		warn:      logs.Warning,
	}
	if s.out == nil {
		s.out = log.New(io.Discard, "", 0)
	}
	if s.warn == nil {
		s.warn = log.New(io.Discard, "", 0)
	}
	s.out.Println("doing Lagrangian multiplier ", param.Multiplier)
	s.out.Println("doing diagonal Fock matrix  ", param.DiagonalFock)
	return s, nil
}

// NewGridSolver wires the grid Coulomb kernel and bound-state resolvent.
func NewGridSolver(w *grid.World, mol molecule.Molecule, ref Reference, param Parameters, logs Logs) (*Solver, error) {
	return NewSolver(w, mol, ref, grid.NewPoisson(w), grid.NewBSH(w, logs.Warning), param, logs)
}

func (s *Solver) Parameters() Parameters { return s.param }

// OccupiedFock is the Fock matrix over the occupied orbitals.
func (s *Solver) OccupiedFock() *mat.Dense {
	occ := s.ref.Occupied()
	return s.F.Matrix(occ, occ)
}

// GuessVirtuals generates the guess shells and projects out the occupied
// space. The result is neither truncated to npno nor orthonormal.
func (s *Solver) GuessVirtuals() []*grid.Function {
	virtuals := s.guess.Generate(s.param.Shells)
	s.out.Println("number of guess virtuals: ", len(virtuals))
	return s.Q.ApplyAll(virtuals)
}

// SolvePair returns the correlation energy of pair (i, j).
func (s *Solver) SolvePair(i, j int) (float64, error) {
	p, err := s.OptimizePair(i, j)
	if err != nil {
		return 0, err
	}
	return p.Energy, nil
}

// SolveAllPairs sums the pair energies over i <= j, skipping the frozen
// orbitals. Pairs are solved one after the other.
func (s *Solver) SolveAllPairs() (float64, error) {
	nocc := len(s.ref.Occupied())
	if s.param.Freeze >= nocc {
		s.warn.Println("all ", nocc, " occupied orbitals are frozen")
	}
	energy := 0.0
	for i := s.param.Freeze; i < nocc; i++ {
		for j := i; j < nocc; j++ {
			e, err := s.SolvePair(i, j)
			if err != nil {
				return energy, errors.Wrapf(err, "pair (%d,%d)", i, j)
			}
			s.out.Printf("pair (%d,%d) energy %12.8f", i, j, e)
			energy += e
		}
	}
	return energy, nil
}
