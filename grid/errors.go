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

package grid

import "github.com/pkg/errors"

var (
	ErrConfig = errors.New("grid: invalid configuration")
	ErrShape  = errors.New("grid: dimension mismatch")
	ErrWorld  = errors.New("grid: functions live in different worlds")
)
