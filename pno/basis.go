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
package pno

import (
	"golang.org/x/exp/slices"

	"github.com/MirzaevaIV/goPNO/grid"
)

// Virtual is one trial pair natural orbital together with the quantities
// indexed by it. Keeping them in one record keeps them aligned through
// every reordering.
type Virtual struct {
	Orbital *grid.Function
	// Vaji is Q(-i(r) \int dr' a(r') j(r')/|r-r'|), the inhomogeneous term.
	Vaji      *grid.Function
	Energy    float64 // V(a) t(a), this virtual's share of the pair energy
	Amplitude float64
}

// VirtualBasis is the ordered set of virtuals of one pair.
type VirtualBasis []Virtual

func NewVirtualBasis(orbitals []*grid.Function) VirtualBasis {
	b := make(VirtualBasis, len(orbitals))
	for i, f := range orbitals {
		b[i].Orbital = f
	}
	return b
}

func (b VirtualBasis) Orbitals() []*grid.Function {
	res := make([]*grid.Function, len(b))
	for i := range b {
		res[i] = b[i].Orbital
	}
	return res
}

func (b VirtualBasis) Inhomogeneous() []*grid.Function {
	res := make([]*grid.Function, len(b))
	for i := range b {
		res[i] = b[i].Vaji
	}
	return res
}

func (b VirtualBasis) Amplitudes() []float64 {
	res := make([]float64, len(b))
	for i := range b {
		res[i] = b[i].Amplitude
	}
	return res
}

// Energy is the sum of the per-virtual contributions.
func (b VirtualBasis) Energy() float64 {
	e := 0.0
	for i := range b {
		e += b[i].Energy
	}
	return e
}

func byEnergy(a, b Virtual) int {
	switch {
	case a.Energy < b.Energy:
		return -1
	case a.Energy > b.Energy:
		return 1
	}
	return 0
}

// Sort orders the virtuals by ascending energy contribution, stably, and
// reports whether the order changed.
func (b VirtualBasis) Sort() bool {
	if slices.IsSortedFunc(b, byEnergy) {
		return false
	}
	slices.SortStableFunc(b, byEnergy)
	return true
}
