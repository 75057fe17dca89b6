// vector.go --  This file is part of goPNO project.
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

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Batch operations on sets of functions. They fan out over the set with the
// World's worker limit.

func worldOf(v []*Function) *World {
	if len(v) == 0 {
		return nil
	}
	return v[0].world
}

// Copy deep-copies a set.
func Copy(v []*Function) []*Function {
	r := make([]*Function, len(v))
	for i, f := range v {
		r[i] = f.Clone()
	}
	return r
}

// InnerMatrix returns the matrix <bras_i|kets_j>.
func InnerMatrix(bras, kets []*Function) *mat.Dense {
	if len(bras) == 0 || len(kets) == 0 {
		return &mat.Dense{}
	}
	w := worldOf(bras)
	res := mat.NewDense(len(bras), len(kets), nil)
	w.each(len(bras), func(i int) {
		for j, k := range kets {
			res.Set(i, j, bras[i].Inner(k))
		}
	})
	return res
}

// Overlap is the Gram matrix of v.
func Overlap(v []*Function) *mat.SymDense {
	n := len(v)
	if n == 0 {
		return &mat.SymDense{}
	}
	res := mat.NewSymDense(n, nil)
	worldOf(v).each(n, func(i int) {
		for j := i; j < n; j++ {
			res.SetSym(i, j, v[i].Inner(v[j]))
		}
	})
	return res
}

// Inner returns <a_i|b_i> for every i.
func Inner(a, b []*Function) []float64 {
	if len(a) != len(b) {
		panic(ErrShape)
	}
	res := make([]float64, len(a))
	if len(a) == 0 {
		return res
	}
	worldOf(a).each(len(a), func(i int) {
		res[i] = a[i].Inner(b[i])
	})
	return res
}

// Transform returns w_j = sum_i v_i u(i,j).
func Transform(v []*Function, u mat.Matrix) []*Function {
	r, c := u.Dims()
	if r != len(v) {
		panic(ErrShape)
	}
	res := make([]*Function, c)
	if c == 0 {
		return res
	}
	w := worldOf(v)
	w.each(c, func(j int) {
		f := w.Zero()
		for i := range v {
			if cij := u.At(i, j); cij != 0 {
				floats.AddScaled(f.data, cij, v[i].data)
			}
		}
		res[j] = f
	})
	return res
}

// Sub returns a_i - b_i.
func Sub(a, b []*Function) []*Function {
	if len(a) != len(b) {
		panic(ErrShape)
	}
	res := make([]*Function, len(a))
	for i := range a {
		res[i] = a[i].Sub(b[i])
	}
	return res
}

// Add returns a_i + b_i.
func Add(a, b []*Function) []*Function {
	if len(a) != len(b) {
		panic(ErrShape)
	}
	res := make([]*Function, len(a))
	for i := range a {
		res[i] = a[i].Add(b[i])
	}
	return res
}

// Mul returns f*v_i for every i.
func Mul(f *Function, v []*Function) []*Function {
	res := make([]*Function, len(v))
	if len(v) == 0 {
		return res
	}
	f.world.each(len(v), func(i int) {
		res[i] = f.Multiply(v[i])
	})
	return res
}

// Scale multiplies every member in place.
func Scale(v []*Function, s float64) {
	for _, f := range v {
		f.Scale(s)
	}
}

// Truncate truncates every member in place.
func Truncate(v []*Function) {
	for _, f := range v {
		f.Truncate()
	}
}

// Normalize scales every member to unit norm in place.
func Normalize(v []*Function) {
	for _, f := range v {
		f.Normalize()
	}
}
