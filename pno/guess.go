// guess.go --  This file is part of goPNO project.
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

	"github.com/MirzaevaIV/goPNO/grid"
	"github.com/MirzaevaIV/goPNO/molecule"
)

// Shell is a set of Cartesian Gaussian primitives of total angular momentum
// L sharing one exponent.
type Shell struct {
	L        int
	Exponent float64
}

// DefaultShells is the principal expansion used for the guess virtuals. The
// order matters: npno keeps the leading functions.
var DefaultShells = []Shell{
	{0, 1.0},
	{0, 2.0}, {1, 1.0},
	{1, 2.0}, {2, 1.0},
	{2, 2.0}, {3, 1.0},
	{2, 0.5}, {3, 0.5},
}

// GuessGenerator produces atom-centred Gaussian guess virtuals.
type GuessGenerator struct {
	world *grid.World
	mol   molecule.Molecule
}

func NewGuessGenerator(w *grid.World, mol molecule.Molecule) *GuessGenerator {
	return &GuessGenerator{world: w, mol: mol}
}

// cartesian lists the exponent triples (i,j,k), i+j+k = l, with x running
// fastest.
func cartesian(l int) [][3]int {
	var res [][3]int
	lp1 := l + 1
	for idx := 0; idx < lp1*lp1*lp1; idx++ {
		ijk := [3]int{idx % lp1, (idx / lp1) % lp1, (idx / lp1 / lp1) % lp1}
		if ijk[0]+ijk[1]+ijk[2] == l {
			res = append(res, ijk)
		}
	}
	return res
}

// Shell returns the normalized primitives x^i y^j z^k exp(-e r^2) of one
// shell on every atom, atom by atom. Distances are taken from the nucleus
// to the point.
func (g *GuessGenerator) Shell(l int, e float64) []*grid.Function {
	var res []*grid.Function
	comps := cartesian(l)
	for _, atm := range g.mol.Atoms {
		c := atm.Coords
		for _, ijk := range comps {
			ijk := ijk
			f := g.world.Project(func(x, y, z float64) float64 {
				xx, yy, zz := c[0]-x, c[1]-y, c[2]-z
				r2 := xx*xx + yy*yy + zz*zz
				return ipow(xx, ijk[0]) * ipow(yy, ijk[1]) * ipow(zz, ijk[2]) * math.Exp(-e*r2)
			})
			res = append(res, f.Normalize())
		}
	}
	return res
}

// Generate concatenates the given shells in order.
func (g *GuessGenerator) Generate(shells []Shell) []*grid.Function {
	var res []*grid.Function
	for _, s := range shells {
		res = append(res, g.Shell(s.L, s.Exponent)...)
	}
	return res
}

func ipow(x float64, n int) float64 {
	r := 1.0
	for ; n > 0; n-- {
		r *= x
	}
	return r
}
