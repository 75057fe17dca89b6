// helper.go --  This file is part of goPNO project.
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
	"bufio"
	"fmt"
	"os"
	"runtime"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/mat"
)

func ReadFileLines(fname string) ([]string, error) {
	var result []string
	var err error

	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	err = scanner.Err()

	return result, err
}

func FormatDense(D mat.Matrix) string {
	fa := mat.Formatted(D, mat.Prefix("    "), mat.Squeeze())
	return fmt.Sprintf("    %.8f", fa)
}

func MyMemDebug() {
	var memStats runtime.MemStats

	runtime.ReadMemStats(&memStats)

	OutputLogger.Println("Memory usage:")
	OutputLogger.Println("Alloc:      ", humanize.Bytes(memStats.Alloc))
	OutputLogger.Println("TotalAlloc: ", humanize.Bytes(memStats.TotalAlloc))
	OutputLogger.Println("HeapAlloc:  ", humanize.Bytes(memStats.HeapAlloc))
	OutputLogger.Println("HeapSys:    ", humanize.Bytes(memStats.HeapSys))
	OutputLogger.Println("NumGC:      ", memStats.NumGC)
}
