// pair.go --  This file is part of goPNO project.
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
package pno

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/MirzaevaIV/goPNO/grid"
)

// orthonormality above which a rotated virtual set is reported.
const orthoTol = 1e-14

// Pair is the result of one pair optimization.
type Pair struct {
	I, J   int
	Energy float64
	// Iterations holds the Hylleraas energy of every iteration.
	Iterations []float64
	Basis      VirtualBasis
	Fock       *mat.SymDense
}

// OptimizePair runs maxiter fixed-point updates of the virtuals of pair
// (i, j) and returns the final basis with the Hylleraas energy recomputed
// on it. No convergence test is made.
func (s *Solver) OptimizePair(i, j int) (*Pair, error) {
	occ := s.ref.Occupied()
	if i < 0 || j < 0 || i >= len(occ) || j >= len(occ) {
		return nil, errors.Wrapf(ErrPairIndex, "pair (%d,%d) with %d occupied orbitals", i, j, len(occ))
	}
	start := time.Now()
	s.out.Printf("solving pair (%d,%d)", i, j)

	guess := s.GuessVirtuals()
	if len(guess) == 0 {
		return nil, ErrNoVirtuals
	}
	if len(guess) > s.param.NPNO {
		guess = guess[:s.param.NPNO]
	}
	virtuals, err := Cholesky{}.Orthonormalize(guess)
	if err != nil {
		return nil, errors.Wrap(err, "guess virtuals")
	}

	phii, phij := occ[i], occ[j]
	e0 := s.F.Expectation(phii, phii) + s.F.Expectation(phij, phij)

	p := &Pair{I: i, J: j}
	basis := NewVirtualBasis(virtuals)
	for iter := 0; iter < s.param.MaxIter; iter++ {
		s.inhomogeneous(basis, phii, phij)
		fmat, energy, err := s.hylleraas(basis, s.fockMatrix(basis.Orbitals()), e0)
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d", iter)
		}
		p.Iterations = append(p.Iterations, energy)
		s.out.Printf("in iteration %2d at time %6.1fs: %12.8f", iter, time.Since(start).Seconds(), energy)

		basis, err = s.update(basis, fmat, e0)
		if err != nil {
			return nil, errors.Wrapf(err, "iteration %d", iter)
		}
	}

	s.inhomogeneous(basis, phii, phij)
	fmat, energy, err := s.hylleraas(basis, s.fockMatrix(basis.Orbitals()), e0)
	if err != nil {
		return nil, errors.Wrap(err, "final energy")
	}
	p.Energy, p.Basis, p.Fock = energy, basis, fmat
	s.out.Printf("pair (%d,%d) final energy %12.8f after %6.1fs", i, j, energy, time.Since(start).Seconds())
	return p, nil
}

// inhomogeneous fills in Vaji = Q(-i(r) \int dr' a(r') j(r')/|r-r'|) for
// every virtual a.
func (s *Solver) inhomogeneous(basis VirtualBasis, phii, phij *grid.Function) {
	pots := s.poisson.ApplyAll(grid.Mul(phij, basis.Orbitals()))
	vaji := grid.Mul(phii, pots)
	grid.Scale(vaji, -1.0)
	vaji = s.Q.ApplyAll(vaji)
	for a := range basis {
		basis[a].Vaji = vaji[a]
	}
}

// fockMatrix evaluates F over v and symmetrizes the result.
func (s *Solver) fockMatrix(v []*grid.Function) *mat.SymDense {
	n := len(v)
	if n == 0 {
		return &mat.SymDense{}
	}
	f := s.F.Matrix(v, v)
	res := mat.NewSymDense(n, nil)
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			res.SetSym(a, b, 0.5*(f.At(a, b)+f.At(b, a)))
		}
	}
	return res
}

// hylleraas solves the diagonal amplitude equations
//
//	t(a) = -V(a) / (2 F(a,a) - e0),  V(a) = <a|Vaji(a)>
//
// stores t(a) and V(a) t(a) in the basis and sorts it by energy. The Fock
// matrix is recomputed when the order changed.
func (s *Solver) hylleraas(basis VirtualBasis, fmat *mat.SymDense, e0 float64) (*mat.SymDense, float64, error) {
	if n := fmat.SymmetricDim(); n != len(basis) {
		panic(errors.Wrapf(grid.ErrShape, "fock matrix %d x %d for %d virtuals", n, n, len(basis)))
	}
	for a := range basis {
		v := basis[a].Orbital.Inner(basis[a].Vaji)
		b := 2.0*fmat.At(a, a) - e0
		if b == 0 {
			return nil, 0, errors.Wrapf(ErrSingular, "diagonal B(%d,%d) is zero", a, a)
		}
		t := -v / b
		basis[a].Amplitude = t
		basis[a].Energy = v * t
	}
	if basis.Sort() {
		fmat = s.fockMatrix(basis.Orbitals())
	}
	energy := basis.Energy()
	if math.IsNaN(energy) {
		return nil, 0, errors.Wrap(ErrSingular, "pair energy is NaN")
	}
	return fmat, energy, nil
}

// update applies the bound-state resolvent to the residual of the amplitude
// equations and returns the new orthonormal virtuals.
func (s *Solver) update(basis VirtualBasis, fmat *mat.SymDense, e0 float64) (VirtualBasis, error) {
	n := len(basis)
	t := basis.Amplitudes()
	v := basis.Orbitals()

	vaji := make([]*grid.Function, n)
	transf := mat.NewDense(n, n, nil)
	for a := 0; a < n; a++ {
		if t[a] == 0 {
			return nil, errors.Wrapf(ErrZeroAmplitude, "virtual %d", a)
		}
		vaji[a] = basis[a].Vaji.Clone().Scale(1.0 / t[a])
		for b := 0; b < n; b++ {
			if a != b {
				transf.Set(a, b, -fmat.At(a, b)*t[a]/t[b])
			}
		}
	}
	btilde := grid.Sub(grid.Transform(v, transf), vaji)
	vpsi := grid.Sub(btilde, s.F.Potential(v))
	grid.Scale(vpsi, 2.0)
	grid.Truncate(vpsi)
	if s.param.Multiplier {
		vpsi = s.Q.ApplyAll(vpsi)
	}

	shifts := make([]float64, n)
	for a := range shifts {
		shifts[a] = e0 - fmat.At(a, a)
	}
	next, err := s.resolvent.Apply(shifts, vpsi)
	if err != nil {
		return nil, err
	}
	next, err = Cholesky{}.Orthonormalize(s.Q.ApplyAll(next))
	if err != nil {
		return nil, err
	}
	if s.param.DiagonalFock {
		next, _, err = DiagonalizeFockGeneralized(s.fockMatrix(next), grid.Overlap(next), next, s.warn)
		if err != nil {
			return nil, err
		}
	}
	if e := OrthonormalityError(next); e > orthoTol {
		s.warn.Printf("virtuals not orthonormal: %.3e", e)
	}
	return NewVirtualBasis(next), nil
}
