// fft.go --  This file is part of goPNO project.
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
	"gonum.org/v1/gonum/dsp/fourier"
)

// spectrum is the 3-D discrete Fourier transform of a Function, unnormalized.
type spectrum []complex128

// forward transforms f along all three axes. The CmplxFFT work buffers are
// not shareable, so every call owns its plans.
func (w *World) forward(f *Function) spectrum {
	c := make(spectrum, len(f.data))
	for i, v := range f.data {
		c[i] = complex(v, 0)
	}
	w.transform(c, false)
	return c
}

// backward returns the real part of the normalized inverse transform.
func (w *World) backward(c spectrum) *Function {
	w.transform(c, true)
	f := w.Zero()
	norm := 1 / float64(len(c))
	for i, v := range c {
		f.data[i] = real(v) * norm
	}
	return f
}

func (w *World) transform(c spectrum, inverse bool) {
	n := w.n
	fft := fourier.NewCmplxFFT(n)
	line := make([]complex128, n)
	apply := func() {
		if inverse {
			fft.Sequence(line, line)
		} else {
			fft.Coefficients(line, line)
		}
	}
	// fastest axis is contiguous
	for base := 0; base < len(c); base += n {
		copy(line, c[base:base+n])
		apply()
		copy(c[base:base+n], line)
	}
	for _, stride := range []int{n, n * n} {
		for i := 0; i < n; i++ {
			for k := 0; k < n; k++ {
				var base int
				if stride == n {
					base = w.index(i, 0, k)
				} else {
					base = w.index(0, i, k)
				}
				for m := range line {
					line[m] = c[base+m*stride]
				}
				apply()
				for m := range line {
					c[base+m*stride] = line[m]
				}
			}
		}
	}
}

// filter multiplies the spectrum of f by kernel(kx, ky, kz).
func (w *World) filter(f *Function, kernel func(kx, ky, kz float64) complex128) *Function {
	c := w.forward(f)
	for i := 0; i < w.n; i++ {
		for j := 0; j < w.n; j++ {
			for k := 0; k < w.n; k++ {
				idx := w.index(i, j, k)
				c[idx] *= kernel(w.kvec[i], w.kvec[j], w.kvec[k])
			}
		}
	}
	return w.backward(c)
}
