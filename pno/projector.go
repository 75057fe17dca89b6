// projector.go --  This file is part of goPNO project.
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
	"github.com/MirzaevaIV/goPNO/grid"
)

// Projector is Q = 1 - sum_k |k><k| for an orthonormal occupied set.
type Projector struct {
	occupied []*grid.Function
}

func NewProjector(occupied []*grid.Function) *Projector {
	return &Projector{occupied: occupied}
}

// Apply returns the truncated component of f orthogonal to the occupied space.
func (q *Projector) Apply(f *grid.Function) *grid.Function {
	res := f.Clone()
	for _, phi := range q.occupied {
		res = res.Combine(1, phi, -phi.Inner(f))
	}
	return res.Truncate()
}

func (q *Projector) ApplyAll(v []*grid.Function) []*grid.Function {
	res := make([]*grid.Function, len(v))
	for i, f := range v {
		res[i] = q.Apply(f)
	}
	return res
}
