// orthonormalize.go --  This file is part of goPNO project.
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
	"log"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/MirzaevaIV/goPNO/grid"
)

// Orthonormalizer turns a set of functions into an orthonormal set.
type Orthonormalizer interface {
	Orthonormalize(v []*grid.Function) ([]*grid.Function, error)
}

// Cholesky factorizes the overlap S = U^T U and returns v U^-1.
type Cholesky struct{}

func (Cholesky) Orthonormalize(v []*grid.Function) ([]*grid.Function, error) {
	if len(v) == 0 {
		return v, nil
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(grid.Overlap(v)); !ok {
		return nil, errors.Wrapf(ErrNotPositiveDefinite, "cholesky of %d functions", len(v))
	}
	var u, uinv mat.TriDense
	chol.UTo(&u)
	if err := uinv.InverseTri(&u); err != nil {
		return nil, errors.Wrap(ErrSingular, err.Error())
	}
	return grid.Transform(v, &uinv), nil
}

// Canonical diagonalizes the overlap and normalizes the eigenfunctions.
type Canonical struct{}

func (Canonical) Orthonormalize(v []*grid.Function) ([]*grid.Function, error) {
	if len(v) == 0 {
		return v, nil
	}
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(grid.Overlap(v), true); !ok {
		return nil, errors.Wrap(ErrSingular, "overlap eigendecomposition failed")
	}
	for i, e := range eigsym.Values(nil) {
		if e <= 0 {
			return nil, errors.Wrapf(ErrNotPositiveDefinite, "overlap eigenvalue %d = %g", i, e)
		}
	}
	var U mat.Dense
	eigsym.VectorsTo(&U)
	res := grid.Transform(v, &U)
	grid.Normalize(res)
	return res, nil
}

// GramSchmidt orthonormalizes in input order; a different order gives a
// different set spanning the same space.
type GramSchmidt struct{}

func (GramSchmidt) Orthonormalize(v []*grid.Function) ([]*grid.Function, error) {
	res := grid.Copy(v)
	for i := range res {
		for j := 0; j < i; j++ {
			res[i] = res[i].Combine(1, res[j], -res[j].Inner(res[i]))
		}
		if res[i].Norm() == 0 {
			return nil, errors.Wrapf(ErrSingular, "function %d is linearly dependent", i)
		}
		res[i].Normalize()
	}
	return res, nil
}

// DiagonalizeFock rotates v into the eigenbasis of fmat, assuming v is
// orthonormal, and returns the rotated functions with their eigenvalues.
func DiagonalizeFock(fmat mat.Symmetric, v []*grid.Function) ([]*grid.Function, []float64, error) {
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(fmat, true); !ok {
		return nil, nil, errors.Wrap(ErrSingular, "fock eigendecomposition failed")
	}
	var U mat.Dense
	eigsym.VectorsTo(&U)
	res := grid.Transform(v, &U)
	grid.Normalize(res)
	return res, eigsym.Values(nil), nil
}

// DiagonalizeFockGeneralized solves F U = S U e and returns v U, orthonormal
// and Fock-diagonal, with the diagonal Fock matrix. Every new function whose
// overlap with its predecessor is negative has its sign flipped; overlaps
// far from one are reported on logger.
func DiagonalizeFockGeneralized(fmat, smat mat.Symmetric, v []*grid.Function, logger *log.Logger) ([]*grid.Function, *mat.SymDense, error) {
	n := len(v)
	if n == 0 {
		return v, &mat.SymDense{}, nil
	}
	U, evals, err := sygv(fmat, smat)
	if err != nil {
		return nil, nil, err
	}
	vnew := grid.Transform(v, U)
	grid.Normalize(vnew)
	diag := mat.NewSymDense(n, nil)
	for i, e := range evals {
		diag.SetSym(i, i, e)
	}
	ovlp := grid.Inner(vnew, v)
	for i := range v {
		if math.Abs(ovlp[i]-1.0) > 1e-4 && logger != nil {
			logger.Println("faulty overlap", i, ovlp[i])
		}
		if ovlp[i] < 0.0 {
			vnew[i].Scale(-1.0)
		}
	}
	return vnew, diag, nil
}

// sygv solves the symmetric-definite problem F x = e S x by reduction to
// standard form with the Cholesky factor of S. The columns of the returned
// matrix are S-orthonormal eigenvectors with ascending eigenvalues.
func sygv(fmat, smat mat.Symmetric) (*mat.Dense, []float64, error) {
	n := smat.SymmetricDim()
	if fmat.SymmetricDim() != n {
		return nil, nil, errors.Wrapf(ErrSingular, "fock %d x %d, overlap %d x %d", fmat.SymmetricDim(), fmat.SymmetricDim(), n, n)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(smat); !ok {
		return nil, nil, errors.Wrap(ErrNotPositiveDefinite, "generalized eigenproblem")
	}
	var u, uinv mat.TriDense
	chol.UTo(&u)
	if err := uinv.InverseTri(&u); err != nil {
		return nil, nil, errors.Wrap(ErrSingular, err.Error())
	}
	// C = U^-T F U^-1
	var c mat.Dense
	c.Mul(uinv.T(), fmat)
	c.Mul(&c, &uinv)
	csym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			csym.SetSym(i, j, 0.5*(c.At(i, j)+c.At(j, i)))
		}
	}
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(csym, true); !ok {
		return nil, nil, errors.Wrap(ErrSingular, "reduced fock eigendecomposition failed")
	}
	var y, x mat.Dense
	eigsym.VectorsTo(&y)
	x.Mul(&uinv, &y)
	return &x, eigsym.Values(nil), nil
}

// OrthonormalityError is ||S - 1||_F divided by the number of elements of S.
func OrthonormalityError(v []*grid.Function) float64 {
	n := len(v)
	if n == 0 {
		return 0
	}
	ovlp := grid.InnerMatrix(v, v)
	for i := 0; i < n; i++ {
		ovlp.Set(i, i, ovlp.At(i, i)-1.0)
	}
	return mat.Norm(ovlp, 2) / float64(n*n)
}
