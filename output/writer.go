// Package output implements the Output Writer (spec.md §4.6): it
// serializes the interpreter's six buses to a text file, one line per
// bus, each a space-separated sequence of 4-digit octal words.
//
// Grounded on disasm/disasm.go - the teacher's only package whose sole
// job is formatting interpreter/emulator state into a different,
// externally consumed representation.
package output

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hornc/musys/musys"
)

// DefaultPath is the output file name used when none is specified
// (spec.md §4.6).
const DefaultPath = "musys.out"

// Write serializes buses to path, one line per bus in order 1..6. An
// empty bus produces an empty line.
func Write(path string, buses *musys.BusSet) error {
	if path == "" {
		path = DefaultPath
	}
	f, err := os.Create(path)
	if err != nil {
		return musys.NewError(musys.OutputError, "cannot create "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for bus := 1; bus <= musys.NumBuses; bus++ {
		if _, err := fmt.Fprintln(w, strings.Join(buses.Bus(bus), " ")); err != nil {
			return musys.NewError(musys.OutputError, "cannot write "+path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return musys.NewError(musys.OutputError, "cannot flush "+path, err)
	}
	return nil
}
