// operator.go --  This file is part of goPNO project.
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
	"gonum.org/v1/gonum/mat"

	"github.com/MirzaevaIV/goPNO/grid"
)

// Operator is a one-electron operator acting on grid functions. Matrix
// evaluates all elements as one batch so the grid layer can spread the
// work.
type Operator interface {
	Apply(ket *grid.Function) (*grid.Function, error)
	Expectation(bra, ket *grid.Function) float64
	Matrix(bras, kets []*grid.Function) *mat.Dense
}

// Kernel applies the two-electron integral kernel \int dr' f(r')/|r-r'|.
type Kernel interface {
	Apply(f *grid.Function) *grid.Function
	ApplyAll(v []*grid.Function) []*grid.Function
}

// Kinetic is -1/2 \nabla^2, evaluated as 1/2 <\nabla bra|\nabla ket>.
type Kinetic struct{}

func (Kinetic) Apply(*grid.Function) (*grid.Function, error) {
	return nil, ErrKineticApply
}

func (Kinetic) Expectation(bra, ket *grid.Function) float64 {
	w := ket.World()
	ke := 0.0
	for axis := 0; axis < 3; axis++ {
		ke += 0.5 * w.Derivative(axis, bra).Inner(w.Derivative(axis, ket))
	}
	return ke
}

func (Kinetic) Matrix(bras, kets []*grid.Function) *mat.Dense {
	if len(bras) == 0 || len(kets) == 0 {
		return &mat.Dense{}
	}
	res := mat.NewDense(len(bras), len(kets), nil)
	w := kets[0].World()
	for axis := 0; axis < 3; axis++ {
		dbra := derivatives(w, axis, bras)
		dket := dbra
		if !sameSet(bras, kets) {
			dket = derivatives(w, axis, kets)
		}
		res.Add(res, grid.InnerMatrix(dbra, dket))
	}
	res.Scale(0.5, res)
	return res
}

func derivatives(w *grid.World, axis int, v []*grid.Function) []*grid.Function {
	res := make([]*grid.Function, len(v))
	for i, f := range v {
		res[i] = w.Derivative(axis, f)
	}
	return res
}

func sameSet(a, b []*grid.Function) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// local is a multiplicative potential.
type local struct {
	pot *grid.Function
}

func (o local) Apply(ket *grid.Function) (*grid.Function, error) {
	return o.pot.Multiply(ket), nil
}

func (o local) ApplyAll(kets []*grid.Function) []*grid.Function {
	return grid.Mul(o.pot, kets)
}

func (o local) Expectation(bra, ket *grid.Function) float64 {
	return bra.Inner(o.pot.Multiply(ket))
}

func (o local) Matrix(bras, kets []*grid.Function) *mat.Dense {
	if len(bras) == 0 || len(kets) == 0 {
		return &mat.Dense{}
	}
	return grid.InnerMatrix(bras, o.ApplyAll(kets))
}

// Nuclear is the attraction to the (smoothed) nuclei.
type Nuclear struct {
	local
}

func NewNuclear(pot *grid.Function) *Nuclear {
	return &Nuclear{local{pot: pot}}
}

// Coulomb is the mean-field potential of the closed-shell occupied density.
// The potential is fixed at construction.
type Coulomb struct {
	local
}

func NewCoulomb(kernel Kernel, occupied []*grid.Function) *Coulomb {
	density := occupied[0].World().Zero()
	for _, phi := range occupied {
		density = density.Add(phi.Multiply(phi))
	}
	density.Scale(2.0) // alpha + beta
	return &Coulomb{local{pot: kernel.Apply(density)}}
}

// Potential returns the Coulomb potential.
func (j *Coulomb) Potential() *grid.Function { return j.pot }

// Exchange is K|f> = sum_k |k> \int dr' k(r') f(r')/|r-r'|.
type Exchange struct {
	kernel   Kernel
	occupied []*grid.Function
}

func NewExchange(kernel Kernel, occupied []*grid.Function) *Exchange {
	return &Exchange{kernel: kernel, occupied: occupied}
}

func (k *Exchange) Apply(ket *grid.Function) (*grid.Function, error) {
	return k.apply(ket), nil
}

func (k *Exchange) apply(ket *grid.Function) *grid.Function {
	result := ket.World().Zero()
	for _, phi := range k.occupied {
		result = result.Add(phi.Multiply(k.kernel.Apply(phi.Multiply(ket))))
	}
	return result
}

func (k *Exchange) ApplyAll(kets []*grid.Function) []*grid.Function {
	res := make([]*grid.Function, len(kets))
	if len(kets) == 0 {
		return res
	}
	// one batch of kernel applications per occupied orbital
	for i := range res {
		res[i] = kets[i].World().Zero()
	}
	for _, phi := range k.occupied {
		pk := k.kernel.ApplyAll(grid.Mul(phi, kets))
		for i := range res {
			res[i] = res[i].Add(phi.Multiply(pk[i]))
		}
	}
	return res
}

func (k *Exchange) Expectation(bra, ket *grid.Function) float64 {
	return bra.Inner(k.apply(ket))
}

func (k *Exchange) Matrix(bras, kets []*grid.Function) *mat.Dense {
	if len(bras) == 0 || len(kets) == 0 {
		return &mat.Dense{}
	}
	return grid.InnerMatrix(bras, k.ApplyAll(kets))
}

// Fock is T + J - K + V. It owns its four parts.
type Fock struct {
	T Kinetic
	J *Coulomb
	K *Exchange
	V *Nuclear
}

func NewFock(kernel Kernel, occupied []*grid.Function, nuclear *grid.Function) *Fock {
	return &Fock{
		J: NewCoulomb(kernel, occupied),
		K: NewExchange(kernel, occupied),
		V: NewNuclear(nuclear),
	}
}

// Apply fails: the kinetic part has no single-function action. Use
// Potential for (J-K+V)|ket>.
func (f *Fock) Apply(ket *grid.Function) (*grid.Function, error) {
	return f.T.Apply(ket)
}

func (f *Fock) Expectation(bra, ket *grid.Function) float64 {
	t := f.T.Expectation(bra, ket)
	j := f.J.Expectation(bra, ket)
	k := f.K.Expectation(bra, ket)
	v := f.V.Expectation(bra, ket)
	return t + j - k + v
}

func (f *Fock) Matrix(bras, kets []*grid.Function) *mat.Dense {
	if len(bras) == 0 || len(kets) == 0 {
		return &mat.Dense{}
	}
	kmat := f.K.Matrix(bras, kets)
	jmat := f.J.Matrix(bras, kets)
	tmat := f.T.Matrix(bras, kets)
	vmat := f.V.Matrix(bras, kets)
	fock := mat.NewDense(len(bras), len(kets), nil)
	fock.Add(tmat, jmat)
	fock.Sub(fock, kmat)
	fock.Add(fock, vmat)
	return fock
}

// Potential returns the truncated (J-K+V)|ket> for every ket.
func (f *Fock) Potential(kets []*grid.Function) []*grid.Function {
	Ja := f.J.ApplyAll(kets)
	Ka := f.K.ApplyAll(kets)
	Va := f.V.ApplyAll(kets)
	JKVa := grid.Add(grid.Sub(Ja, Ka), Va)
	grid.Truncate(JKVa)
	return JKVa
}
