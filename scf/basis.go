// basis.go --  This file is part of goPNO project.
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

// Package scf is the restricted Hartree-Fock reference for the pair solver:
// contracted s-type Gaussian basis sets, their integrals, a DIIS accelerated
// SCF and the projection of the occupied orbitals onto a grid.World.
package scf

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/MirzaevaIV/goPNO/molecule"
)

var ErrBasis = errors.New("scf: basis set not available")

type PrimitiveGaussian struct {
	Alpha  float64
	Coeff  float64
	Coords [3]float64 // center
}

func (p PrimitiveGaussian) NormCoeff() float64 {
	return math.Pow((2 * p.Alpha / math.Pi), 0.75)
}

// AO is a contracted s-type atomic orbital.
type AO struct {
	PGs []PrimitiveGaussian
}

// Value evaluates the contraction at r.
func (ao AO) Value(r [3]float64) float64 {
	res := 0.0
	for _, p := range ao.PGs {
		res += p.Coeff * p.NormCoeff() * math.Exp(-p.Alpha*molecule.Distance2(r, p.Coords))
	}
	return res
}

type shell struct {
	exps, coeffs []float64
}

// s shells per element, exponents and contraction coefficients for
// normalized primitives
var basisSets = map[string]map[int][]shell{
	"sto-3g": {
		1: {{
			exps:   []float64{0.3425250914e+01, 0.6239137298e+00, 0.1688554040e+00},
			coeffs: []float64{0.1543289673e+00, 0.5353281423e+00, 0.4446345422e+00},
		}},
		2: {{
			exps:   []float64{0.6362421394e+01, 0.1158922999e+01, 0.3136497915e+00},
			coeffs: []float64{0.1543289673e+00, 0.5353281423e+00, 0.4446345422e+00},
		}},
	},
	"6-31g": {
		1: {
			{
				exps:   []float64{0.1873113696e+02, 0.2825394365e+01, 0.6401216923e+00},
				coeffs: []float64{0.3349460434e-01, 0.2347269535e+00, 0.8137573261e+00},
			},
			{exps: []float64{0.1612777588e+00}, coeffs: []float64{1.0}},
		},
		2: {
			{
				exps:   []float64{0.3842163400e+02, 0.5778030000e+01, 0.1241774000e+01},
				coeffs: []float64{0.2376600000e-01, 0.1546790000e+00, 0.4696300000e+00},
			},
			{exps: []float64{0.2979640000e+00}, coeffs: []float64{1.0}},
		},
	},
}

// BuildBasis places the named basis on every atom of m.
func BuildBasis(m molecule.Molecule, name string) ([]AO, error) {
	set, ok := basisSets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, errors.Wrapf(ErrBasis, "%q", name)
	}
	var res []AO
	for _, atm := range m.Atoms {
		shells, ok := set[atm.Z]
		if !ok {
			return nil, errors.Wrapf(ErrBasis, "%q for %s", name, molecule.Symbol(atm.Z))
		}
		for _, sh := range shells {
			var ao AO
			for k := range sh.exps {
				ao.PGs = append(ao.PGs, PrimitiveGaussian{sh.exps[k], sh.coeffs[k], atm.Coords})
			}
			res = append(res, ao)
		}
	}
	return res, nil
}
