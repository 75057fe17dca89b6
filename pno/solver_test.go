// solver_test.go --  This file is part of goPNO project.
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
	"bytes"
	"log"
	"math"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/MirzaevaIV/goPNO/grid"
	"github.com/MirzaevaIV/goPNO/scf"
)

func heliumSolver(t *testing.T, param Parameters, logs Logs) *Solver {
	t.Helper()
	w := gaussWorld(t)
	ref, err := scf.NewReferenceFromOrbitals([]*grid.Function{gauss(w, 0.77, [3]float64{})}, []float64{-0.9})
	require.NoError(t, err)
	s, err := NewGridSolver(w, helium(), ref, param, logs)
	require.NoError(t, err)
	return s
}

func smallParameters(maxiter int) Parameters {
	p := DefaultParameters()
	p.NPNO = 4
	p.MaxIter = maxiter
	p.Shells = []Shell{{0, 1.0}, {1, 1.0}}
	return p
}

func TestNewSolverRejectsParameters(t *testing.T) {
	w := gaussWorld(t)
	ref, err := scf.NewReferenceFromOrbitals([]*grid.Function{gauss(w, 0.77, [3]float64{})}, []float64{-0.9})
	require.NoError(t, err)
	p := DefaultParameters()
	p.NPNO = 0
	_, err = NewGridSolver(w, helium(), ref, p, Logs{})
	assert.True(t, errors.Is(err, ErrBadParameter))

	empty, err := scf.NewReferenceFromOrbitals(nil, nil)
	require.NoError(t, err)
	_, err = NewGridSolver(w, helium(), empty, DefaultParameters(), Logs{})
	assert.True(t, errors.Is(err, ErrPairIndex))
}

func TestPairIndex(t *testing.T) {
	s := heliumSolver(t, smallParameters(0), Logs{})
	for _, ij := range [][2]int{{1, 0}, {0, 1}, {-1, 0}} {
		_, err := s.SolvePair(ij[0], ij[1])
		assert.True(t, errors.Is(err, ErrPairIndex), "%v", ij)
	}
}

func TestGuessVirtuals(t *testing.T) {
	s := heliumSolver(t, DefaultParameters(), Logs{})
	v := s.GuessVirtuals()
	require.Len(t, v, 46)
	occ := s.ref.Occupied()[0]
	for _, f := range v {
		assert.InDelta(t, 0, f.Inner(occ), 1e-10)
	}
}

func TestVirtualCountCappedByNPNO(t *testing.T) {
	p := smallParameters(0)
	p.NPNO = 10
	s := heliumSolver(t, p, Logs{})
	assert.Equal(t, p, s.Parameters())
	pair, err := s.OptimizePair(0, 0)
	require.NoError(t, err)
	assert.Len(t, pair.Basis, 4)
	occ := s.ref.Occupied()[0]
	for _, f := range pair.Basis.Inhomogeneous() {
		assert.InDelta(t, 0, f.Inner(occ), 1e-10)
	}

	p.NPNO = 2
	pair, err = heliumSolver(t, p, Logs{}).OptimizePair(0, 0)
	require.NoError(t, err)
	assert.Len(t, pair.Basis, 2)
	assert.Empty(t, pair.Iterations)
}

func TestOptimizePair(t *testing.T) {
	var out bytes.Buffer
	logs := Logs{Output: log.New(&out, "", 0)}

	pair1, err := heliumSolver(t, smallParameters(1), logs).OptimizePair(0, 0)
	require.NoError(t, err)
	pair2, err := heliumSolver(t, smallParameters(2), logs).OptimizePair(0, 0)
	require.NoError(t, err)

	for _, p := range []*Pair{pair1, pair2} {
		assert.False(t, math.IsNaN(p.Energy) || math.IsInf(p.Energy, 0))
		assert.Less(t, p.Energy, 0.0)
		require.Len(t, p.Basis, 4)
		assert.Less(t, OrthonormalityError(p.Basis.Orbitals()), 1e-10)
		assert.InDelta(t, p.Energy, p.Basis.Energy(), 1e-14)
		assert.True(t, sort.SliceIsSorted(p.Basis, func(a, b int) bool {
			return p.Basis[a].Energy < p.Basis[b].Energy
		}))
		r, c := p.Fock.Dims()
		assert.Equal(t, [2]int{4, 4}, [2]int{r, c})
	}
	assert.Len(t, pair1.Iterations, 1)
	assert.Len(t, pair2.Iterations, 2)
	assert.InDelta(t, pair1.Iterations[0], pair2.Iterations[0], 1e-12)
	assert.Less(t, math.Abs(pair1.Energy-pair2.Energy), 0.5)
	assert.Contains(t, out.String(), "in iteration  1 at time")
}

func TestDiagonalFockPair(t *testing.T) {
	p := smallParameters(1)
	p.DiagonalFock = true
	p.Multiplier = true
	pair, err := heliumSolver(t, p, Logs{}).OptimizePair(0, 0)
	require.NoError(t, err)
	assert.Less(t, pair.Energy, 0.0)
	assert.Less(t, OrthonormalityError(pair.Basis.Orbitals()), 1e-10)
}

func TestSolveAllPairs(t *testing.T) {
	s := heliumSolver(t, smallParameters(0), Logs{})
	e, err := s.SolveAllPairs()
	require.NoError(t, err)
	e00, err := s.SolvePair(0, 0)
	require.NoError(t, err)
	assert.InDelta(t, e00, e, 1e-12)

	var warn bytes.Buffer
	p := smallParameters(0)
	p.Freeze = 1
	frozen := heliumSolver(t, p, Logs{Warning: log.New(&warn, "WARNING: ", 0)})
	e, err = frozen.SolveAllPairs()
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)
	assert.Contains(t, warn.String(), "frozen")
}

func TestHylleraasDimensionMismatch(t *testing.T) {
	s := heliumSolver(t, smallParameters(0), Logs{})
	w := s.world
	basis := NewVirtualBasis([]*grid.Function{gauss(w, 1, [3]float64{}), gauss(w, 2, [3]float64{})})
	assert.Panics(t, func() {
		_, _, _ = s.hylleraas(basis, mat.NewSymDense(3, nil), -1.0)
	})
}

func TestUpdateZeroAmplitude(t *testing.T) {
	s := heliumSolver(t, smallParameters(0), Logs{})
	w := s.world
	basis := NewVirtualBasis([]*grid.Function{gauss(w, 1, [3]float64{}), gauss(w, 2, [3]float64{})})
	for a := range basis {
		basis[a].Vaji = w.Zero()
	}
	basis[0].Amplitude = 0.1
	_, err := s.update(basis, mat.NewSymDense(2, nil), -1.0)
	assert.True(t, errors.Is(err, ErrZeroAmplitude))
}
