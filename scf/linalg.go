// linalg.go --  This file is part of goPNO project.
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
package scf

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

func flatten(arr [][]float64) []float64 {
	dim := len(arr)
	res := make([]float64, dim*dim)
	for i := range arr {
		for j := range arr[i] {
			res[i*dim+j] = arr[i][j]
		}
	}
	return res
}

// MatrixSqrtInverse returns S^-1/2 of a symmetric positive definite matrix.
func MatrixSqrtInverse(S [][]float64) ([][]float64, error) {
	n_basis := len(S)
	res, err := SymSqrtInverse(mat.NewSymDense(n_basis, flatten(S)))
	if err != nil {
		return nil, err
	}
	result := make([][]float64, n_basis)
	for i := range result {
		result[i] = make([]float64, n_basis)
		copy(result[i], res.RawRowView(i))
	}
	return result, nil
}

// SymSqrtInverse is V diag(1/sqrt(lambda)) V^T.
func SymSqrtInverse(S mat.Symmetric) (*mat.Dense, error) {
	n := S.SymmetricDim()
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(S, true); !ok {
		return nil, errors.New("scf: overlap eigendecomposition failed")
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	vals := eigsym.Values(nil)
	invSqrt := make([]float64, n)
	for i, v := range vals {
		if v <= 0 {
			return nil, errors.Errorf("scf: overlap not positive definite, eigenvalue %d = %g", i, v)
		}
		invSqrt[i] = 1 / math.Sqrt(v)
	}
	var res mat.Dense
	res.Mul(&ev, mat.NewDiagDense(n, invSqrt))
	res.Mul(&res, ev.T())
	return &res, nil
}
