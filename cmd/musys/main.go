// Command musys runs the MUSYS 1973 interpreter: it loads a source
// program (and optional data file), executes it, writes the resulting
// output buses to a file, and optionally drops into the inspection
// shell. Grounded on the teacher's root main.go: flag-based argument
// parsing feeding a Host, generalized from "assemble and debug" to
// "load, run, and optionally inspect".
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hornc/musys/debugger"
	"github.com/hornc/musys/host"
)

var (
	debug    bool
	dataPath string
	seed     int64
	inspect  bool
	outPath  string
)

func init() {
	flag.BoolVar(&debug, "d", false, "trace each statement to stderr")
	flag.StringVar(&dataPath, "i", "", "data file providing the Data Paragraphs")
	flag.Int64Var(&seed, "seed", 1, "seed for the random (^) operator")
	flag.BoolVar(&inspect, "inspect", false, "start the inspection shell after the run completes")
	flag.StringVar(&outPath, "o", "", "output file for bus contents (default musys.out)")
	flag.CommandLine.Usage = func() {
		fmt.Println("Usage: musys [options] <source-file>\nOptions:")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		flag.CommandLine.Usage()
		os.Exit(2)
	}

	h := host.New()
	h.SetDebug(debug)
	h.SetSeed(seed)

	if err := h.Load(args[0], dataPath); err != nil {
		exitOnError(err)
	}
	if err := h.Run(); err != nil {
		exitOnError(err)
	}
	if err := h.Write(outPath); err != nil {
		exitOnError(err)
	}

	if inspect {
		shell := debugger.New(h.Engine(), h.Devices())
		if err := shell.Run(os.Stdin, os.Stdout); err != nil {
			exitOnError(err)
		}
	}
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "musys: %v\n", err)
	os.Exit(1)
}
