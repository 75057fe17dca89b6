// world.go --  This file is part of goPNO project.
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

// Package grid is the numerical representation layer: scalar functions on a
// uniform periodic cubic mesh, the batch algebra on sets of them, and the
// integral kernels (Coulomb, bound-state resolvent, derivatives) acting on
// them. All of it hangs off a World, the numerical context of one run.
package grid

import (
	"io"
	"log"
	"math"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Config are the parameters of a World.
type Config struct {
	Points    int     // samples per axis
	Box       float64 // side length in bohr, box centred at the origin
	Thresh    float64 // truncation threshold
	Smoothing float64 // nuclear potential smoothing length, 0 means one grid step
	Workers   int     // batch parallelism, 0 means GOMAXPROCS
}

// DefaultConfig is a 12 bohr box with a 0.125 bohr step, fine enough for the
// tightest s exponents of the built-in He and H basis sets (about 6.4 in
// STO-3G) and for a nuclear smoothing of one step. Molecules larger than a
// few bohr need a bigger box at the same step.
func DefaultConfig() Config {
	return Config{
		Points: 96,
		Box:    12.0,
		Thresh: 1e-10,
	}
}

// World is the numerical context shared by every Function of a calculation.
// It is read-only after construction and safe for concurrent use.
type World struct {
	cfg  Config
	n    int
	h    float64
	kvec []float64 // angular wavenumbers along one axis in FFT order
	log  *log.Logger
}

// NewWorld validates cfg and builds the context. A nil logger discards.
func NewWorld(cfg Config, logger *log.Logger) (*World, error) {
	if cfg.Points < 4 {
		return nil, errors.Wrapf(ErrConfig, "points = %d", cfg.Points)
	}
	if !(cfg.Box > 0) {
		return nil, errors.Wrapf(ErrConfig, "box = %g", cfg.Box)
	}
	if cfg.Thresh < 0 {
		return nil, errors.Wrapf(ErrConfig, "thresh = %g", cfg.Thresh)
	}
	if logger == nil {
		logger = discard
	}
	w := &World{cfg: cfg, n: cfg.Points, h: cfg.Box / float64(cfg.Points), log: logger}
	if w.cfg.Smoothing <= 0 {
		w.cfg.Smoothing = w.h
	}
	fft := fourier.NewCmplxFFT(w.n)
	w.kvec = make([]float64, w.n)
	for i := range w.kvec {
		w.kvec[i] = 2 * math.Pi * fft.Freq(i) * float64(w.n) / cfg.Box
	}
	return w, nil
}

func (w *World) Config() Config { return w.cfg }

// Size is the number of samples of a Function.
func (w *World) Size() int { return w.n * w.n * w.n }

// Step is the mesh spacing.
func (w *World) Step() float64 { return w.h }

// Volume is the volume element of one sample.
func (w *World) Volume() float64 { return w.h * w.h * w.h }

// Coord returns the position of mesh index i along one axis.
func (w *World) Coord(i int) float64 {
	return -0.5*w.cfg.Box + float64(i)*w.h
}

func (w *World) index(i, j, k int) int {
	return (i*w.n+j)*w.n + k
}

func (w *World) workers() int {
	if w.cfg.Workers > 0 {
		return w.cfg.Workers
	}
	return runtime.GOMAXPROCS(-1)
}

// parallel runs fn(0..n-1) on at most workers() goroutines.
func (w *World) parallel(n int, fn func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(w.workers())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}

// each is parallel for bodies that cannot fail.
func (w *World) each(n int, fn func(i int)) {
	_ = w.parallel(n, func(i int) error {
		fn(i)
		return nil
	})
}

var discard = log.New(io.Discard, "", 0)
