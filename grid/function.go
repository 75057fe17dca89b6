// function.go --  This file is part of goPNO project.
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
	"math"

	"gonum.org/v1/gonum/floats"
)

// Function is a real scalar field sampled on the mesh of its World.
// Methods returning a new *Function leave the receiver untouched; Scale,
// Truncate and Normalize work in place and return the receiver.
type Function struct {
	world *World
	data  []float64
}

// Zero returns the zero function.
func (w *World) Zero() *Function {
	return &Function{world: w, data: make([]float64, w.Size())}
}

// Project samples fn at every mesh point.
func (w *World) Project(fn func(x, y, z float64) float64) *Function {
	f := w.Zero()
	w.each(w.n, func(i int) {
		x := w.Coord(i)
		for j := 0; j < w.n; j++ {
			y := w.Coord(j)
			for k := 0; k < w.n; k++ {
				f.data[w.index(i, j, k)] = fn(x, y, w.Coord(k))
			}
		}
	})
	return f
}

// FromSamples wraps a copy of data, which must hold World.Size values.
func (w *World) FromSamples(data []float64) *Function {
	if len(data) != w.Size() {
		panic(ErrShape)
	}
	f := w.Zero()
	copy(f.data, data)
	return f
}

func (f *Function) World() *World { return f.world }

// Samples exposes the sample vector; callers must not modify it.
func (f *Function) Samples() []float64 { return f.data }

func (f *Function) Clone() *Function {
	g := &Function{world: f.world, data: make([]float64, len(f.data))}
	copy(g.data, f.data)
	return g
}

func (f *Function) check(g *Function) {
	if f.world != g.world {
		panic(ErrWorld)
	}
}

// Combine returns a*f + b*g.
func (f *Function) Combine(a float64, g *Function, b float64) *Function {
	f.check(g)
	r := f.world.Zero()
	for i, v := range f.data {
		r.data[i] = a*v + b*g.data[i]
	}
	return r
}

func (f *Function) Add(g *Function) *Function {
	f.check(g)
	r := f.world.Zero()
	floats.AddTo(r.data, f.data, g.data)
	return r
}

func (f *Function) Sub(g *Function) *Function {
	f.check(g)
	r := f.world.Zero()
	floats.SubTo(r.data, f.data, g.data)
	return r
}

// Multiply returns the pointwise product.
func (f *Function) Multiply(g *Function) *Function {
	f.check(g)
	r := f.world.Zero()
	floats.MulTo(r.data, f.data, g.data)
	return r
}

func (f *Function) Scale(s float64) *Function {
	floats.Scale(s, f.data)
	return f
}

// Truncate zeroes all samples below the World threshold.
func (f *Function) Truncate() *Function {
	thresh := f.world.cfg.Thresh
	for i, v := range f.data {
		if math.Abs(v) < thresh {
			f.data[i] = 0
		}
	}
	return f
}

// Inner is the L2 inner product <f|g>.
func (f *Function) Inner(g *Function) float64 {
	f.check(g)
	return floats.Dot(f.data, g.data) * f.world.Volume()
}

func (f *Function) Norm() float64 {
	return math.Sqrt(f.Inner(f))
}

// Normalize scales f to unit norm; the zero function is left alone.
func (f *Function) Normalize() *Function {
	if n := f.Norm(); n > 0 {
		f.Scale(1 / n)
	}
	return f
}
