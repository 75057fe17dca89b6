// errors.go --  This file is part of goPNO project.
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

import "github.com/pkg/errors"

var (
	// ErrNotPositiveDefinite is returned when an overlap matrix cannot be
	// factorized, i.e. the trial functions became linearly dependent.
	ErrNotPositiveDefinite = errors.New("pno: overlap matrix is not positive definite")
	ErrSingular            = errors.New("pno: singular matrix")
	ErrKineticApply        = errors.New("pno: the kinetic energy operator is only defined as matrix elements")
	ErrPairIndex           = errors.New("pno: orbital index out of range")
	ErrNoVirtuals          = errors.New("pno: no guess virtuals")
	ErrZeroAmplitude       = errors.New("pno: zero amplitude")
	ErrBadParameter        = errors.New("pno: bad parameter")
)
