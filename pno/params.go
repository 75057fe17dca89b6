// params.go --  This file is part of goPNO project.
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
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parameters of a PNO run.
type Parameters struct {
	NPNO int // max number of virtuals per pair
	// Freeze excludes the lowest occupied orbitals from correlation: with
	// freeze 1 orbital 0 is kept frozen and orbital 1 is the first correlated.
	Freeze       int
	MaxIter      int
	DiagonalFock bool // rotate the virtuals into their Fock eigenbasis
	Multiplier   bool // Lagrange multiplier for strong orthogonality
	// Shells of the guess, in generation order.
	Shells []Shell
}

func DefaultParameters() Parameters {
	return Parameters{
		NPNO:    10,
		MaxIter: 20,
		Shells:  append([]Shell(nil), DefaultShells...),
	}
}

func (p Parameters) Validate() error {
	switch {
	case p.NPNO < 1:
		return errors.Wrapf(ErrBadParameter, "npno = %d", p.NPNO)
	case p.Freeze < 0:
		return errors.Wrapf(ErrBadParameter, "freeze = %d", p.Freeze)
	case p.MaxIter < 0:
		return errors.Wrapf(ErrBadParameter, "maxiter = %d", p.MaxIter)
	case len(p.Shells) == 0:
		return errors.Wrap(ErrBadParameter, "no guess shells")
	}
	for _, s := range p.Shells {
		if s.L < 0 || !(s.Exponent > 0) {
			return errors.Wrapf(ErrBadParameter, "guess shell %+v", s)
		}
	}
	return nil
}

// ReadParameters reads the "pno ... end" block of an input file on top of
// the defaults. Unknown keywords are skipped; a missing block gives the
// defaults.
func ReadParameters(data []string) (Parameters, error) {
	p := DefaultParameters()
	var words []string
	inBlock := false
	for _, line := range data {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !inBlock {
			if strings.ToLower(fields[0]) == "pno" {
				inBlock = true
				words = append(words, fields[1:]...)
			}
			continue
		}
		words = append(words, fields...)
	}

	intArg := func(i int, key string) (int, error) {
		if i+1 >= len(words) {
			return 0, errors.Wrapf(ErrBadParameter, "%s without value", key)
		}
		v, err := strconv.Atoi(words[i+1])
		if err != nil {
			return 0, errors.Wrapf(ErrBadParameter, "%s %s", key, words[i+1])
		}
		return v, nil
	}

	var err error
	for i := 0; i < len(words); i++ {
		switch s := strings.ToLower(words[i]); s {
		case "end":
			return p, p.Validate()
		case "maxiter":
			p.MaxIter, err = intArg(i, s)
			i++
		case "freeze":
			p.Freeze, err = intArg(i, s)
			i++
		case "npno":
			p.NPNO, err = intArg(i, s)
			i++
		case "diagonal_fock":
			p.DiagonalFock = true
		case "no_diagonal_fock":
			p.DiagonalFock = false
		case "do_multiplier":
			p.Multiplier = true
		case "no_multiplier":
			p.Multiplier = false
		}
		if err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}
