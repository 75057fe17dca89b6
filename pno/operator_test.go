// operator_test.go --  This file is part of goPNO project.
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
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/MirzaevaIV/goPNO/grid"
	"github.com/MirzaevaIV/goPNO/molecule"
)

func gaussWorld(t *testing.T) *grid.World {
	t.Helper()
	w, err := grid.NewWorld(grid.Config{Points: 20, Box: 10, Thresh: 1e-12, Workers: 2}, nil)
	require.NoError(t, err)
	return w
}

func helium() molecule.Molecule {
	return molecule.Molecule{Atoms: []molecule.Atom{{Z: 2, Name: "He"}}}
}

func gauss(w *grid.World, alpha float64, c [3]float64) *grid.Function {
	return w.Project(func(x, y, z float64) float64 {
		return math.Exp(-alpha * molecule.Distance2([3]float64{x, y, z}, c))
	}).Normalize()
}

func TestKineticApply(t *testing.T) {
	w := gaussWorld(t)
	_, err := Kinetic{}.Apply(w.Zero())
	assert.True(t, errors.Is(err, ErrKineticApply))

	f := gauss(w, 0.8, [3]float64{})
	assert.InDelta(t, 1.5*0.8, Kinetic{}.Expectation(f, f), 1e-4)
}

func TestFockIsSumOfParts(t *testing.T) {
	w := gaussWorld(t)
	occ := []*grid.Function{gauss(w, 0.8, [3]float64{})}
	fock := NewFock(grid.NewPoisson(w), occ, w.NuclearPotential(helium().Atoms))

	v := []*grid.Function{
		gauss(w, 1.0, [3]float64{0.3, 0, 0}),
		gauss(w, 0.5, [3]float64{0, -0.4, 0.2}),
		occ[0],
	}
	var sum mat.Dense
	sum.Add(fock.T.Matrix(v, v), fock.J.Matrix(v, v))
	sum.Sub(&sum, fock.K.Matrix(v, v))
	sum.Add(&sum, fock.V.Matrix(v, v))
	fm := fock.Matrix(v, v)
	assert.True(t, mat.EqualApprox(&sum, fm, 1e-12))

	for a := range v {
		for b := range v {
			assert.InDelta(t, fm.At(a, b), fock.Expectation(v[a], v[b]), 1e-10)
		}
	}

	_, err := fock.Apply(v[0])
	assert.True(t, errors.Is(err, ErrKineticApply))

	// (J-K+V)|a> plus the kinetic matrix reproduces the Fock matrix
	pot := grid.InnerMatrix(v, fock.Potential(v))
	pot.Add(pot, fock.T.Matrix(v, v))
	assert.True(t, mat.EqualApprox(pot, fm, 1e-8))

	// one doubly occupied orbital: <i|J|i> = 2 <i|K|i>
	i := occ[0]
	assert.InDelta(t, 2*fock.K.Expectation(i, i), fock.J.Expectation(i, i), 1e-10)

	assert.Equal(t, &mat.Dense{}, fock.Matrix(nil, v))
}

// Closed forms for a normalized Gaussian phi = (2a/pi)^(3/4) exp(-a r^2),
// whose density phi^2 is a unit Gaussian charge of exponent p = 2a:
//
//	(phi phi|phi phi) = 2 sqrt(a/pi)
//	<phi| -Z erf(r/c)/r |phi> = -Z 2/sqrt(pi) sqrt(p q/(p+q)),  q = 1/c^2
func TestAnalyticIntegrals(t *testing.T) {
	w := gaussWorld(t)
	const alpha = 0.8
	phi := gauss(w, alpha, [3]float64{})
	mol := helium()
	fock := NewFock(grid.NewPoisson(w), []*grid.Function{phi}, w.NuclearPotential(mol.Atoms))

	eri := 2 * math.Sqrt(alpha/math.Pi)
	assert.InDelta(t, 2*eri, fock.J.Expectation(phi, phi), 1e-3)
	assert.InDelta(t, eri, fock.K.Expectation(phi, phi), 1e-3)
	assert.InDelta(t, fock.J.Expectation(phi, phi), phi.Inner(fock.J.Potential().Multiply(phi)), 1e-12)

	c := w.Config().Smoothing
	require.Equal(t, w.Step(), c)
	p, q := 2*alpha, 1/(c*c)
	vne := -float64(mol.Atoms[0].Z) * 2 / math.SqrtPi * math.Sqrt(p*q/(p+q))
	assert.InDelta(t, vne, fock.V.Expectation(phi, phi), 5e-4)

	// f = T + J - K + V for the doubly occupied Gaussian
	assert.InDelta(t, 1.5*alpha+eri+vne, fock.Expectation(phi, phi), 2e-3)

	// two-centre overlap and kinetic of unit Gaussians at distance d
	d := 0.6
	g := gauss(w, alpha, [3]float64{d, 0, 0})
	s := math.Exp(-alpha * d * d / 2)
	assert.InDelta(t, s, phi.Inner(g), 1e-8)
	tpq := alpha / 2 * (3 - alpha*d*d) * s
	assert.InDelta(t, tpq, Kinetic{}.Expectation(phi, g), 1e-4)
}

func TestProjector(t *testing.T) {
	w := gaussWorld(t)
	occ := []*grid.Function{gauss(w, 0.8, [3]float64{})}
	q := NewProjector(occ)
	f := gauss(w, 1.3, [3]float64{0.2, 0, 0})
	qf := q.Apply(f)
	assert.InDelta(t, 0, qf.Inner(occ[0]), 1e-10)
	assert.InDelta(t, 0, q.Apply(qf).Sub(qf).Norm(), 1e-10)
	assert.InDelta(t, 0, q.Apply(occ[0]).Norm(), 1e-6)
}

func TestCartesian(t *testing.T) {
	for l, n := range []int{1, 3, 6, 10} {
		assert.Len(t, cartesian(l), n)
	}
	assert.Equal(t, [][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, cartesian(1))
}

func TestGuessGenerator(t *testing.T) {
	w := gaussWorld(t)
	g := NewGuessGenerator(w, helium())

	v := g.Generate(DefaultShells)
	assert.Len(t, v, 46)
	for _, f := range v {
		assert.InDelta(t, 1, f.Norm(), 1e-12)
	}

	h2 := molecule.Molecule{Atoms: []molecule.Atom{
		{Z: 1, Coords: [3]float64{-0.7, 0, 0}},
		{Z: 1, Coords: [3]float64{0.7, 0, 0}},
	}}
	p := NewGuessGenerator(w, h2).Shell(1, 1.0)
	require.Len(t, p, 6)
	// atom by atom, x component first
	assert.InDelta(t, 0, p[0].Inner(gauss(w, 1.0, [3]float64{-0.7, 0, 0})), 1e-6)
	assert.Greater(t, math.Abs(p[0].Inner(gauss(w, 1.0, [3]float64{-0.2, 0, 0}))), 0.1)
	assert.InDelta(t, 0, p[1].Inner(gauss(w, 1.0, [3]float64{-0.2, 0, 0})), 1e-10)
}

func TestReadParameters(t *testing.T) {
	input := `
Atoms
He 0.0 0.0 0.0
end
pno
  maxiter 5 npno 3
  freeze 1
  diagonal_fock
  do_multiplier
end
`
	p, err := ReadParameters(strings.Split(input, "\n"))
	require.NoError(t, err)
	assert.Equal(t, 5, p.MaxIter)
	assert.Equal(t, 3, p.NPNO)
	assert.Equal(t, 1, p.Freeze)
	assert.True(t, p.DiagonalFock)
	assert.True(t, p.Multiplier)
	assert.Equal(t, DefaultShells, p.Shells)

	p, err = ReadParameters([]string{"Basis 6-31G"})
	require.NoError(t, err)
	assert.Equal(t, DefaultParameters(), p)

	for _, in := range []string{"pno npno 0 end", "pno maxiter x end", "pno freeze"} {
		_, err = ReadParameters([]string{in})
		assert.True(t, errors.Is(err, ErrBadParameter), in)
	}
}

func TestValidate(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())
	p.Shells = []Shell{{L: 1, Exponent: 0}}
	assert.True(t, errors.Is(p.Validate(), ErrBadParameter))
}
