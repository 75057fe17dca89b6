// molecule_test.go --  This file is part of goPNO project.
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
package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data := []string{
		"Atoms",
		"H 0.0 0.0 0.0",
		"he 0.0 0.0 0.74",
		"end",
	}
	m, err := Parse(data, 1, 2)
	require.NoError(t, err)
	require.Len(t, m.Atoms, 2)
	assert.Equal(t, 1, m.Atoms[0].Z)
	assert.Equal(t, 2, m.Atoms[1].Z)
	assert.Equal(t, "he2", m.Atoms[1].Name)
	assert.InDelta(t, 0.74/ABohr, m.Atoms[1].Coords[2], 1e-12)
	assert.Equal(t, 3, m.Nelec())
}

func TestParseErrors(t *testing.T) {
	for name, line := range map[string]string{
		"unknown element": "Xx 0 0 0",
		"short line":      "H 0 0",
		"bad number":      "H 0 zero 0",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]string{line}, 0, 0)
			assert.Error(t, err)
		})
	}
}

func TestNucNuc(t *testing.T) {
	m := Molecule{Atoms: []Atom{
		{Z: 1, Coords: [3]float64{0, 0, 0}},
		{Z: 1, Coords: [3]float64{1.4, 0, 0}},
	}}
	assert.InDelta(t, 1/1.4, m.NucNuc(), 1e-14)
	assert.Equal(t, "He", Symbol(2))
	assert.Equal(t, 8, Charge("o"))
}

func TestCharge(t *testing.T) {
	for symb, z := range map[string]int{
		"He": 2, "HE": 2, "he": 2, "hE": 2, "NE": 10, "h": 1, "": 0, "Xy": 0, "Ü": 0,
	} {
		assert.Equal(t, z, Charge(symb), symb)
	}
	assert.Equal(t, "He", capitalize("hE"))
}
