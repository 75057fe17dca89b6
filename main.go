// main.go --  This file is part of goPNO project.
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
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/MirzaevaIV/goPNO/grid"
	"github.com/MirzaevaIV/goPNO/pno"
	"github.com/MirzaevaIV/goPNO/scf"
)

var (
	WarningLogger *log.Logger
	InfoLogger    *log.Logger
	ErrorLogger   *log.Logger
	OutputLogger  *log.Logger
)

func initLog(fname string) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}

	InfoLogger = log.New(file, "INFO: ", log.Ldate|log.Ltime)
	WarningLogger = log.New(file, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(file, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	OutputLogger = log.New(file, "", 0)
}

func appInfo() {
	OutputLogger.Println("\n" +
		"                 ____  _   _  ___   | Author: Mirzaeva Irina Valerievna\n" +
		"   __ _  ___    |  _ \\| \\ | |/ _ \\  | email: dairdre@gmail.com\n" +
		"  / _` |/ _ \\   | |_) |  \\| | | | | | Nikolaev Institute of Inorganic Chemistry SB RAS (http://niic.nsc.ru/)\n" +
		" | (_| | (_) |  |  __/| |\\  | |_| | | Novosibirsk, Russia\n" +
		"  \\__, |\\___/   |_|   |_| \\_|\\___/  | pair natural orbitals on a grid\n" +
		"  |___/                             |")
}

func printOutputDelimiter() {
	OutputLogger.Println(strings.Repeat("-", 70))
}

func main() {
	var inpFname, outFname string
	if len(os.Args) > 1 {
		inpFname = os.Args[1]
		split_inpFname := strings.Split(inpFname, ".")
		fExt := split_inpFname[len(split_inpFname)-1]
		outFname = inpFname[0:(len(inpFname)-len(fExt))] + "out"
		fmt.Println("Output file: ", outFname)
	} else {
		log.Fatal("No input file.")
	}

	initLog(outFname)

	InfoLogger.Println("Starting goPNO...")
	appInfo()
	WarningLogger.Println("This is an experimental program on an early stage of development.")

	OutputLogger.Println("Input file content:")
	printOutputDelimiter()
	inpData, err := ReadFileLines(inpFname)
	if err != nil {
		ErrorLogger.Fatal("Cannot read input file: ", err)
	}
	for _, i := range inpData {
		OutputLogger.Println(i)
	}
	printOutputDelimiter()

	inp, err := processInput(inpData)
	if err != nil {
		ErrorLogger.Fatal("Parsing input. ", err)
	}

	// -- reference
	basis, err := scf.BuildBasis(inp.Mol, inp.Basis)
	if err != nil {
		ErrorLogger.Fatal(err)
	}
	calc, err := scf.NewRHF(inp.Mol, basis, inp.SCF, OutputLogger)
	if err != nil {
		ErrorLogger.Fatal(err)
	}
	EHF, err := calc.SCF_DIIS()
	if err != nil {
		ErrorLogger.Fatal(err)
	}
	if !calc.Converged {
		WarningLogger.Println("Continuing with an unconverged reference.")
	}
	OutputLogger.Println("Nuclei Repulsion Energy: ", inp.Mol.NucNuc(), " a.u.")
	OutputLogger.Println("RHF total energy = ", EHF, " a.u.")
	fmt.Println("RHF total energy = ", EHF, " a.u.")
	printOutputDelimiter()

	world, err := grid.NewWorld(inp.Grid, WarningLogger)
	if err != nil {
		ErrorLogger.Fatal(err)
	}
	ref, err := scf.NewReference(world, basis, calc)
	if err != nil {
		ErrorLogger.Fatal(err)
	}

	// -- pair natural orbitals
	solver, err := pno.NewGridSolver(world, inp.Mol, ref, inp.PNO,
		pno.Logs{Output: OutputLogger, Warning: WarningLogger})
	if err != nil {
		ErrorLogger.Fatal(err)
	}
	OutputLogger.Println("Fock matrix of the occupied orbitals on the grid:")
	OutputLogger.Println(FormatDense(solver.OccupiedFock()))
	for i := range ref.Occupied() {
		OutputLogger.Printf("orbital %d energy %12.8f", i, ref.OrbitalEnergy(i))
	}
	printOutputDelimiter()

	Ecorr, err := solver.SolveAllPairs()
	if err != nil {
		ErrorLogger.Fatal(err)
	}
	printOutputDelimiter()
	OutputLogger.Println("Correlation energy = ", Ecorr, " a.u.")
	OutputLogger.Println("Final total energy = ", EHF+Ecorr, " a.u.")
	fmt.Println("Correlation energy = ", Ecorr, " a.u.")
	fmt.Println("Final total energy = ", EHF+Ecorr, " a.u.")
	printOutputDelimiter()

	MyMemDebug()

	InfoLogger.Println("Exiting goPNO...")
	fmt.Println("goPNO done.")
}
