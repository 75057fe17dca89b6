// rhf.go --  This file is part of goPNO project.
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

import (
	"io"
	"log"
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/MirzaevaIV/goPNO/molecule"
)

// Settings of the SCF procedure.
type Settings struct {
	MaxSteps int
	TolE     float64 // energy change
	TolD     float64 // RMS of the DIIS residual
	MaxDIIS  int     // kept Fock matrices
}

func DefaultSettings() Settings {
	return Settings{MaxSteps: 50, TolE: 1e-8, TolD: 1e-6, MaxDIIS: 8}
}

type RHF struct {
	Occupied  int
	S, T, Ven [][]float64
	Vee       [][][][]float64
	Vnn       float64

	S2Inv, H1, Cij, DensMat, G [][]float64
	// Orbital energies of the last diagonalization, ascending.
	Energies  []float64
	Converged bool

	F_list, DIIS_R []*mat.Dense

	settings Settings
	log      *log.Logger
}

// NewRHF computes the integrals of basis for m and builds the core guess.
func NewRHF(m molecule.Molecule, basis []AO, settings Settings, logger *log.Logger) (*RHF, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	nelec := m.Nelec()
	if nelec%2 != 0 {
		return nil, errors.Errorf("scf: restricted reference needs an even electron count, got %d", nelec)
	}
	if nelec/2 > len(basis) {
		return nil, errors.Errorf("scf: %d occupied orbitals in %d basis functions", nelec/2, len(basis))
	}
	tstart := time.Now()
	result := &RHF{Occupied: nelec / 2, settings: settings, log: logger}
	result.S = Overlap(basis)
	result.T = Kinetic(basis)
	result.Ven = ElecNuc(basis, m.Atoms)
	result.Vee = ElecElec(basis)
	result.Vnn = m.NucNuc()
	logger.Println("INFO: integrals done...", time.Since(tstart))

	S2Inv, err := MatrixSqrtInverse(result.S)
	if err != nil {
		return nil, err
	}
	result.S2Inv = S2Inv
	if err := result.BuildInitialGuess(); err != nil {
		return nil, err
	}
	result.BuildDensMat()
	return result, nil
}

// BuildInitialGuess diagonalizes the core Hamiltonian.
func (rhf *RHF) BuildInitialGuess() error {
	n_basis := len(rhf.T)
	H1 := mat.NewDense(n_basis, n_basis, flatten(rhf.T))
	H1.Add(H1, mat.NewDense(n_basis, n_basis, flatten(rhf.Ven)))

	rhf.H1 = make([][]float64, n_basis)
	for i := range rhf.H1 {
		rhf.H1[i] = make([]float64, n_basis)
		copy(rhf.H1[i], H1.RawRowView(i))
	}
	return rhf.diagonalize(H1)
}

// diagonalize solves F C = S C e in the orthogonal basis and stores C and e.
func (rhf *RHF) diagonalize(F *mat.Dense) error {
	n_basis := len(rhf.T)
	SSqrtInv := mat.NewDense(n_basis, n_basis, flatten(rhf.S2Inv))
	var Fp mat.Dense
	Fp.Mul(SSqrtInv, F)
	Fp.Mul(&Fp, SSqrtInv)
	FSym := mat.NewSymDense(n_basis, nil)
	for i := 0; i < n_basis; i++ {
		for j := i; j < n_basis; j++ {
			FSym.SetSym(i, j, 0.5*(Fp.At(i, j)+Fp.At(j, i)))
		}
	}
	var eigsym mat.EigenSym
	if ok := eigsym.Factorize(FSym, true); !ok {
		return errors.New("scf: transformed Fock matrix eigendecomposition failed")
	}
	var ev mat.Dense
	eigsym.VectorsTo(&ev)
	ev.Mul(SSqrtInv, &ev)
	rhf.Energies = eigsym.Values(nil)
	rhf.Cij = make([][]float64, n_basis)
	for i := range rhf.Cij {
		rhf.Cij[i] = make([]float64, n_basis)
		copy(rhf.Cij[i], ev.RawRowView(i))
	}
	return nil
}

// BuildDensMat builds the occupation-1 density matrix from Cij.
func (rhf *RHF) BuildDensMat() {
	n_basis := len(rhf.Cij)
	rhf.DensMat = square(n_basis)
	for i := 0; i < n_basis; i++ {
		for j := 0; j < n_basis; j++ {
			for oo := 0; oo < rhf.Occupied; oo++ {
				rhf.DensMat[i][j] += rhf.Cij[i][oo] * rhf.Cij[j][oo]
			}
		}
	}
}

// BuildG is the two-electron part 2J-K of the Fock matrix.
func (rhf *RHF) BuildG() {
	n_basis := len(rhf.T)
	rhf.G = square(n_basis)
	for i := 0; i < n_basis; i++ {
		for j := 0; j < n_basis; j++ {
			for k := 0; k < n_basis; k++ {
				for l := 0; l < n_basis; l++ {
					rhf.G[i][j] += rhf.DensMat[k][l] * (2*rhf.Vee[i][j][k][l] - rhf.Vee[i][l][k][j])
				}
			}
		}
	}
}

// CalcEnergy is the total energy, nuclear repulsion included.
func (rhf *RHF) CalcEnergy() float64 {
	n_basis := len(rhf.T)
	res := 0.0
	for i := 0; i < n_basis; i++ {
		for j := 0; j < n_basis; j++ {
			res += rhf.DensMat[i][j] * (2*rhf.H1[i][j] + rhf.G[i][j])
		}
	}
	return res + rhf.Vnn
}

// BuildDIIS_R appends the residual S^-1/2 (FDS - SDF) S^-1/2.
func (rhf *RHF) BuildDIIS_R(F, S2inv *mat.Dense) {
	n_basis := len(rhf.T)
	term1 := mat.NewDense(n_basis, n_basis, nil)
	term2 := mat.NewDense(n_basis, n_basis, nil)
	S := mat.NewDense(n_basis, n_basis, flatten(rhf.S))
	DM := mat.NewDense(n_basis, n_basis, flatten(rhf.DensMat))
	term1.Mul(F, DM)
	term1.Mul(term1, S)
	term2.Mul(S, DM)
	term2.Mul(term2, F)
	term1.Sub(term1, term2)
	term1.Mul(S2inv, term1)
	term1.Mul(term1, S2inv)
	rhf.DIIS_R = append(rhf.DIIS_R, term1)
}

func (rhf *RHF) CalcdRMS() float64 {
	res := mat.DenseCopyOf(rhf.DIIS_R[len(rhf.DIIS_R)-1])
	res.MulElem(res, res)
	return math.Sqrt(stat.Mean(res.RawMatrix().Data, nil))
}

// BuildB is the DIIS matrix, see
// https://github.com/psi4/psi4numpy/blob/master/Tutorials/03_Hartree-Fock/3b_rhf-diis.ipynb
func (rhf *RHF) BuildB() *mat.Dense {
	B_dim := len(rhf.F_list) + 1
	result := mat.NewDense(B_dim, B_dim, nil)
	for i := 0; i < (B_dim - 1); i++ {
		result.Set(i, B_dim-1, -1)
		result.Set(B_dim-1, i, -1)
	}
	var b mat.Dense
	for i := range rhf.F_list {
		for j := range rhf.F_list {
			b.MulElem(rhf.DIIS_R[i], rhf.DIIS_R[j])
			result.Set(i, j, mat.Sum(&b))
			b.Reset()
		}
	}
	return result
}

// SCF_DIIS iterates to self-consistency and returns the total energy. Not
// converging within MaxSteps is logged, not an error.
func (rhf *RHF) SCF_DIIS() (float64, error) {
	n_basis := len(rhf.H1)
	res := 0.0
	E_prev := 0.0

	H1 := mat.NewDense(n_basis, n_basis, flatten(rhf.H1))
	SSqrtInv := mat.NewDense(n_basis, n_basis, flatten(rhf.S2Inv))
	rhf.F_list, rhf.DIIS_R = nil, nil

	for i := 0; i < rhf.settings.MaxSteps; i++ {
		tstart := time.Now()
		E_prev = res
		rhf.BuildG()
		res = rhf.CalcEnergy()

		F := mat.NewDense(n_basis, n_basis, flatten(rhf.G))
		F.Add(F, H1)

		rhf.F_list = append(rhf.F_list, mat.DenseCopyOf(F))
		rhf.BuildDIIS_R(F, SSqrtInv)
		if keep := rhf.settings.MaxDIIS; keep > 0 && len(rhf.F_list) > keep {
			rhf.F_list = rhf.F_list[1:]
			rhf.DIIS_R = rhf.DIIS_R[1:]
		}
		dRMS := rhf.CalcdRMS()

		rhf.log.Println("Iteration ", i+1, ". Energy = ", res, ", dE = ", E_prev-res, ", dRMS = ", dRMS)
		if (math.Abs(E_prev-res) < rhf.settings.TolE) && (dRMS < rhf.settings.TolD) {
			rhf.log.Println("SCF converged after step ", i+1)
			rhf.Converged = true
			return res, rhf.diagonalize(F)
		}

		if len(rhf.F_list) > 1 {
			bmat := rhf.BuildB()
			rhs := mat.NewVecDense(len(rhf.F_list)+1, nil)
			rhs.SetVec(len(rhf.F_list), -1)

			var lu mat.LU
			lu.Factorize(bmat)
			var coefs mat.VecDense
			if err := lu.SolveVecTo(&coefs, false, rhs); err == nil {
				F = mat.NewDense(n_basis, n_basis, nil)
				var fpart mat.Dense
				for j := range rhf.F_list {
					fpart.Scale(coefs.AtVec(j), rhf.F_list[j])
					F.Add(F, &fpart)
				}
			}
		}
		if err := rhf.diagonalize(F); err != nil {
			return res, err
		}
		rhf.BuildDensMat()
		rhf.log.Println("Time for SCF with DIIS iteration #", i+1, ":", time.Since(tstart))
	}
	rhf.log.Println("WARNING: SCF NOT converged after step ", rhf.settings.MaxSteps)
	return res, nil
}
