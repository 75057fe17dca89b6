// kernel.go --  This file is part of goPNO project.
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
	"log"
	"math"

	"github.com/pkg/errors"

	"github.com/MirzaevaIV/goPNO/molecule"
)

// Poisson applies the two-electron kernel 1/|r-r'|. On the periodic box the
// kernel is cut off at half the box length so that images do not interact
// for compact densities.
type Poisson struct {
	world  *World
	radius float64
}

func NewPoisson(w *World) *Poisson {
	return &Poisson{world: w, radius: 0.5 * w.cfg.Box}
}

// Apply returns \int dr' f(r')/|r-r'|.
func (p *Poisson) Apply(f *Function) *Function {
	r := p.radius
	return p.world.filter(f, func(kx, ky, kz float64) complex128 {
		k2 := kx*kx + ky*ky + kz*kz
		if k2 == 0 {
			return complex(2*math.Pi*r*r, 0)
		}
		return complex(4*math.Pi*(1-math.Cos(math.Sqrt(k2)*r))/k2, 0)
	})
}

// ApplyAll applies the kernel to every member of v.
func (p *Poisson) ApplyAll(v []*Function) []*Function {
	res := make([]*Function, len(v))
	if len(v) == 0 {
		return res
	}
	p.world.each(len(v), func(i int) {
		res[i] = p.Apply(v[i])
	})
	return res
}

// minShift replaces unbound shifts when building resolvents.
const minShift = -0.05

// BSH is the bound-state Helmholtz resolvent (-\nabla^2 + mu^2)^{-1},
// mu = sqrt(-2 shift), applied with one shift per source.
type BSH struct {
	world *World
	log   *log.Logger
}

func NewBSH(w *World, logger *log.Logger) *BSH {
	if logger == nil {
		logger = w.log
	}
	return &BSH{world: w, log: logger}
}

func (b *BSH) Apply(shifts []float64, sources []*Function) ([]*Function, error) {
	if len(shifts) != len(sources) {
		return nil, errors.Wrapf(ErrShape, "%d shifts for %d sources", len(shifts), len(sources))
	}
	res := make([]*Function, len(sources))
	if len(sources) == 0 {
		return res, nil
	}
	mu2 := make([]float64, len(shifts))
	for i, e := range shifts {
		if math.IsNaN(e) {
			return nil, errors.Errorf("resolvent shift %d is NaN", i)
		}
		if e >= 0 {
			b.log.Printf("resolvent shift %d = %g is not bound, using %g", i, e, minShift)
			e = minShift
		}
		mu2[i] = -2 * e
	}
	b.world.each(len(sources), func(i int) {
		m := mu2[i]
		res[i] = b.world.filter(sources[i], func(kx, ky, kz float64) complex128 {
			return complex(1/(kx*kx+ky*ky+kz*kz+m), 0)
		})
	})
	return res, nil
}

// Derivative returns the spectral derivative of f along axis 0, 1 or 2.
// The Nyquist mode carries no derivative.
func (w *World) Derivative(axis int, f *Function) *Function {
	if axis < 0 || axis > 2 {
		panic(errors.Errorf("grid: axis %d", axis))
	}
	nyq := math.Inf(1)
	if w.n%2 == 0 {
		nyq = w.kvec[w.n/2]
	}
	return w.filter(f, func(kx, ky, kz float64) complex128 {
		k := [3]float64{kx, ky, kz}[axis]
		if k == nyq {
			return 0
		}
		return complex(0, k)
	})
}

// NuclearPotential samples the erf-smoothed attraction -sum_A Z_A erf(r/c)/r.
func (w *World) NuclearPotential(atoms []molecule.Atom) *Function {
	c := w.cfg.Smoothing
	return w.Project(func(x, y, z float64) float64 {
		v := 0.0
		for _, a := range atoms {
			r := molecule.Distance([3]float64{x, y, z}, a.Coords)
			if r < 1e-12 {
				v -= float64(a.Z) * 2 / (c * math.SqrtPi)
				continue
			}
			v -= float64(a.Z) * math.Erf(r/c) / r
		}
		return v
	})
}
