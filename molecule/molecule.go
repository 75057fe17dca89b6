// molecule.go --  This file is part of goPNO project.
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

// Package molecule holds the nuclear framework shared by the reference
// solver, the grid layer and the pair solver.
package molecule

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// ABohr is the Bohr radius in Angstrom.
const ABohr = 0.52917720859

var symbols = []string{"X", "H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne"}

// Atom is a point nucleus. Coords are in bohr.
type Atom struct {
	Z      int
	Name   string
	Coords [3]float64
}

type Molecule struct {
	Atoms []Atom
}

// Symbol returns the element symbol for nuclear charge z.
func Symbol(z int) string {
	if z < 0 || z >= len(symbols) {
		return "X"
	}
	return symbols[z]
}

// Charge returns the nuclear charge of an element symbol, 0 if unknown.
func Charge(symb string) int {
	idx := slices.Index(symbols, capitalize(symb))
	if idx < 0 {
		return 0
	}
	return idx
}

// capitalize returns symb with its first letter upper case and the rest lower.
func capitalize(symb string) string {
	r, size := utf8.DecodeRuneInString(symb)
	if r == utf8.RuneError {
		return symb
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(symb[size:])
}

// Parse reads "Symbol x y z" lines data[start..end] inclusive, coordinates in
// Angstrom.
func Parse(data []string, start, end int) (Molecule, error) {
	var m Molecule
	for i := start; i < end+1; i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 {
			continue
		}
		var atm Atom
		atm.Z = Charge(words[0])
		if atm.Z == 0 {
			return m, errors.Errorf("unknown element %q in line %d", words[0], i+1)
		}
		atm.Name = words[0] + strconv.Itoa(1+i-start)
		if len(words) < 4 {
			return m, errors.Errorf("incorrect format of coordinates for atom %s", atm.Name)
		}
		for k := 0; k < 3; k++ {
			x, err := strconv.ParseFloat(words[k+1], 64)
			if err != nil {
				return m, errors.Wrapf(err, "atom %s", atm.Name)
			}
			atm.Coords[k] = x / ABohr
		}
		m.Atoms = append(m.Atoms, atm)
	}
	if len(m.Atoms) == 0 {
		return m, errors.New("no atoms found")
	}
	return m, nil
}

func (m *Molecule) Nelec() int {
	result := 0
	for _, a := range m.Atoms {
		result += a.Z
	}
	return result
}

// NucNuc is the nuclear repulsion energy.
func (m *Molecule) NucNuc() float64 {
	res := 0.0
	for i := range m.Atoms {
		for j := 0; j < i; j++ {
			res += float64(m.Atoms[i].Z) * float64(m.Atoms[j].Z) / Distance(m.Atoms[i].Coords, m.Atoms[j].Coords)
		}
	}
	return res
}

func Distance(v1, v2 [3]float64) float64 {
	return math.Sqrt(Distance2(v1, v2))
}

func Distance2(v1, v2 [3]float64) float64 {
	dx := v1[0] - v2[0]
	dy := v1[1] - v2[1]
	dz := v1[2] - v2[2]
	return dx*dx + dy*dy + dz*dz
}
