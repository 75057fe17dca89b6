// reference.go --  This file is part of goPNO project.
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
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/MirzaevaIV/goPNO/grid"
)

// Reference exposes the occupied RHF orbitals as grid functions together
// with their orbital energies. It is read-only once built.
type Reference struct {
	orbitals []*grid.Function
	energies []float64
}

// NewReference projects the occupied molecular orbitals of a converged rhf
// onto w and orthonormalizes them there (Loewdin), so that projectors built
// from them are exact on the grid.
func NewReference(w *grid.World, basis []AO, rhf *RHF) (*Reference, error) {
	if len(rhf.Cij) != len(basis) {
		return nil, errors.Errorf("scf: %d MO rows for %d basis functions", len(rhf.Cij), len(basis))
	}
	aos := make([]*grid.Function, len(basis))
	for mu, ao := range basis {
		ao := ao
		aos[mu] = w.Project(func(x, y, z float64) float64 {
			return ao.Value([3]float64{x, y, z})
		})
	}
	C := mat.NewDense(len(basis), rhf.Occupied, nil)
	for mu := range basis {
		for o := 0; o < rhf.Occupied; o++ {
			C.Set(mu, o, rhf.Cij[mu][o])
		}
	}
	mos := grid.Transform(aos, C)
	X, err := SymSqrtInverse(grid.Overlap(mos))
	if err != nil {
		return nil, errors.Wrap(err, "occupied orbitals on the grid")
	}
	energies := make([]float64, rhf.Occupied)
	copy(energies, rhf.Energies[:rhf.Occupied])
	return &Reference{orbitals: grid.Transform(mos, X), energies: energies}, nil
}

// NewReferenceFromOrbitals wraps orbitals that are already orthonormal.
func NewReferenceFromOrbitals(orbitals []*grid.Function, energies []float64) (*Reference, error) {
	if len(orbitals) != len(energies) {
		return nil, errors.Errorf("scf: %d orbitals, %d energies", len(orbitals), len(energies))
	}
	return &Reference{orbitals: orbitals, energies: energies}, nil
}

func (r *Reference) Occupied() []*grid.Function { return r.orbitals }

func (r *Reference) OrbitalEnergy(i int) float64 { return r.energies[i] }
