// integrals.go --  This file is part of goPNO project.
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
package scf

// Closed formulas for s-type Gaussians, after
// https://github.com/nickelandcopper/HartreeFockPythonProgram/blob/main/Hartree_Fock_Program.ipynb

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mathext"

	"github.com/MirzaevaIV/goPNO/molecule"
)

// gaussProduct returns the exponent sum p and the center P of the product of
// two primitives.
func gaussProduct(a, b PrimitiveGaussian) (float64, [3]float64) {
	p := a.Alpha + b.Alpha
	var P [3]float64
	for i := range P {
		P[i] = (a.Alpha*a.Coords[i] + b.Alpha*b.Coords[i]) / p
	}
	return p, P
}

// primOverlap is the overlap of the normalized primitives a and b,
// contraction coefficients included.
func primOverlap(a, b PrimitiveGaussian) float64 {
	N := a.NormCoeff() * b.NormCoeff()
	p := a.Alpha + b.Alpha
	q := a.Alpha * b.Alpha / p
	Q2 := molecule.Distance2(a.Coords, b.Coords)
	return N * a.Coeff * b.Coeff * math.Exp(-q*Q2) * math.Pow((math.Pi/p), 1.5)
}

func square(n int) [][]float64 {
	res := make([][]float64, n)
	for i := range res {
		res[i] = make([]float64, n)
	}
	return res
}

func Overlap(m []AO) [][]float64 {
	res := square(len(m))
	for i := range m {
		for j := range m {
			for _, a := range m[i].PGs {
				for _, b := range m[j].PGs {
					res[i][j] += primOverlap(a, b)
				}
			}
		}
	}
	return res
}

func Kinetic(m []AO) [][]float64 {
	res := square(len(m))
	for i := range m {
		for j := range m {
			for _, a := range m[i].PGs {
				for _, b := range m[j].PGs {
					p, P := gaussProduct(a, b)
					s := primOverlap(a, b)
					PB2 := molecule.Distance2(P, b.Coords)
					res[i][j] += 3*b.Alpha*s - 2*b.Alpha*b.Alpha*s*(PB2+1.5/p)
				}
			}
		}
	}
	return res
}

func boys(x float64, n int) float64 {
	nf := float64(n)
	if x < 1e-14 {
		return 1.0 / (2.0*nf + 1)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) * (1.0 / (2.0 * math.Pow(x, (nf+0.5))))
}

// ElecNuc is the nuclear attraction matrix.
func ElecNuc(m []AO, atoms []molecule.Atom) [][]float64 {
	res := square(len(m))
	for _, at := range atoms {
		for i := range m {
			for j := range m {
				for _, a := range m[i].PGs {
					for _, b := range m[j].PGs {
						N := a.NormCoeff() * b.NormCoeff()
						p, P := gaussProduct(a, b)
						q := a.Alpha * b.Alpha / p
						Q2 := molecule.Distance2(a.Coords, b.Coords)
						PG2 := molecule.Distance2(P, at.Coords)
						res[i][j] += -float64(at.Z) * N * a.Coeff * b.Coeff * math.Exp(-q*Q2) * (2.0 * math.Pi / p) * boys(p*PG2, 0)
					}
				}
			}
		}
	}
	return res
}

// primERI is the (ab|cd) repulsion of four primitives, coefficients included.
func primERI(a, b, c, d PrimitiveGaussian) float64 {
	N := a.NormCoeff() * b.NormCoeff() * c.NormCoeff() * d.NormCoeff()
	coef := a.Coeff * b.Coeff * c.Coeff * d.Coeff
	pij, Pij := gaussProduct(a, b)
	pkl, Pkl := gaussProduct(c, d)
	denom := (1.0 / pij) + (1.0 / pkl)
	qij := a.Alpha * b.Alpha / pij
	qkl := c.Alpha * d.Alpha / pkl

	term1 := 2.0 * math.Pi * math.Pi / (pij * pkl)
	term2 := math.Sqrt(math.Pi / (pij + pkl))
	term3 := math.Exp(-qij * molecule.Distance2(a.Coords, b.Coords))
	term4 := math.Exp(-qkl * molecule.Distance2(c.Coords, d.Coords))
	return N * coef * term1 * term2 * term3 * term4 * boys(molecule.Distance2(Pij, Pkl)/denom, 0)
}

// ElecElec returns the full (ij|kl) tensor in chemists' notation. Rows of
// the first index are shared out between GOMAXPROCS goroutines.
func ElecElec(m []AO) [][][][]float64 {
	n := len(m)
	res := make([][][][]float64, n)
	for i := range res {
		res[i] = make([][][]float64, n)
		for j := range res[i] {
			res[i][j] = square(n)
		}
	}
	rows := make(chan int, n)
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	var wg sync.WaitGroup
	for g := 0; g < runtime.GOMAXPROCS(-1); g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := range m {
					for k := range m {
						for l := range m {
							v := 0.0
							for _, a := range m[i].PGs {
								for _, b := range m[j].PGs {
									for _, c := range m[k].PGs {
										for _, d := range m[l].PGs {
											v += primERI(a, b, c, d)
										}
									}
								}
							}
							res[i][j][k][l] = v
						}
					}
				}
			}
		}()
	}
	wg.Wait()
	return res
}
