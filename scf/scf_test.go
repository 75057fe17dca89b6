// scf_test.go --  This file is part of goPNO project.
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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MirzaevaIV/goPNO/grid"
	"github.com/MirzaevaIV/goPNO/molecule"
)

func h2(dist float64) molecule.Molecule {
	return molecule.Molecule{Atoms: []molecule.Atom{
		{Z: 1, Name: "H1"},
		{Z: 1, Name: "H2", Coords: [3]float64{dist, 0, 0}},
	}}
}

func TestBuildBasis(t *testing.T) {
	basis, err := BuildBasis(h2(1.4), "6-31G")
	require.NoError(t, err)
	assert.Len(t, basis, 4)

	_, err = BuildBasis(h2(1.4), "cc-pvdz")
	assert.True(t, errors.Is(err, ErrBasis))

	li := molecule.Molecule{Atoms: []molecule.Atom{{Z: 3}}}
	_, err = BuildBasis(li, "sto-3g")
	assert.True(t, errors.Is(err, ErrBasis))
}

func TestOneElectronIntegrals(t *testing.T) {
	basis, err := BuildBasis(h2(1.4), "sto-3g")
	require.NoError(t, err)
	S := Overlap(basis)
	T := Kinetic(basis)
	V := ElecNuc(basis, h2(1.4).Atoms)

	// Szabo & Ostlund, table 3.5
	assert.InDelta(t, 1.0, S[0][0], 1e-4)
	assert.InDelta(t, 0.6593, S[0][1], 1e-4)
	assert.InDelta(t, 0.7600, T[0][0], 1e-4)
	assert.InDelta(t, 0.2365, T[0][1], 1e-4)
	assert.InDelta(t, -1.8804, V[0][0], 1e-4)
	assert.InDelta(t, S[0][1], S[1][0], 1e-14)
}

func TestRHFEnergies(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mol    molecule.Molecule
		basis  string
		energy float64
	}{
		{"H2 sto-3g", h2(1.4), "sto-3g", -1.1167},
		{"He sto-3g", molecule.Molecule{Atoms: []molecule.Atom{{Z: 2}}}, "sto-3g", -2.8078},
	} {
		t.Run(tc.name, func(t *testing.T) {
			basis, err := BuildBasis(tc.mol, tc.basis)
			require.NoError(t, err)
			rhf, err := NewRHF(tc.mol, basis, DefaultSettings(), nil)
			require.NoError(t, err)
			e, err := rhf.SCF_DIIS()
			require.NoError(t, err)
			assert.True(t, rhf.Converged)
			assert.InDelta(t, tc.energy, e, 1e-3)
			assert.Less(t, rhf.Energies[0], 0.0)
		})
	}
}

func TestOddElectronCount(t *testing.T) {
	m := molecule.Molecule{Atoms: []molecule.Atom{{Z: 1}}}
	basis, err := BuildBasis(m, "sto-3g")
	require.NoError(t, err)
	_, err = NewRHF(m, basis, DefaultSettings(), nil)
	assert.Error(t, err)
}

func TestReferenceOnGrid(t *testing.T) {
	m := h2(1.4)
	basis, err := BuildBasis(m, "6-31g")
	require.NoError(t, err)
	rhf, err := NewRHF(m, basis, DefaultSettings(), nil)
	require.NoError(t, err)
	_, err = rhf.SCF_DIIS()
	require.NoError(t, err)

	w, err := grid.NewWorld(grid.Config{Points: 20, Box: 12, Thresh: 1e-12}, nil)
	require.NoError(t, err)
	ref, err := NewReference(w, basis, rhf)
	require.NoError(t, err)
	occ := ref.Occupied()
	require.Len(t, occ, 1)
	assert.InDelta(t, 1, occ[0].Norm(), 1e-12)
	assert.Equal(t, rhf.Energies[0], ref.OrbitalEnergy(0))
	assert.False(t, math.IsNaN(occ[0].Samples()[0]))
}

func TestMatrixSqrtInverse(t *testing.T) {
	S := [][]float64{{2, 0.5}, {0.5, 1}}
	X, err := MatrixSqrtInverse(S)
	require.NoError(t, err)
	// X S X = 1
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v := 0.0
			for k := 0; k < 2; k++ {
				for l := 0; l < 2; l++ {
					v += X[i][k] * S[k][l] * X[l][j]
				}
			}
			if i == j {
				assert.InDelta(t, 1, v, 1e-12)
			} else {
				assert.InDelta(t, 0, v, 1e-12)
			}
		}
	}
	_, err = MatrixSqrtInverse([][]float64{{1, 2}, {2, 1}})
	assert.Error(t, err)
}
