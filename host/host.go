// Package host wires package device, package source, package musys and
// package output into a single Load/Run/Write API, the same way
// host/host.go wires the teacher's assembler, CPU and disassembler
// behind one Host type - stripped of the REPL/assembler specifics MUSYS
// doesn't need.
package host

import (
	"io"
	"os"

	"github.com/hornc/musys/device"
	"github.com/hornc/musys/musys"
	"github.com/hornc/musys/output"
	"github.com/hornc/musys/source"
)

// A Host owns one MUSYS interpreter run: its device catalog, loaded
// program, parsed data paragraphs, and the Execution Engine once it has
// been created by Load.
type Host struct {
	devices *device.Table
	debug   bool
	seed    int64
	stdout  io.Writer
	trace   io.Writer

	program *source.Program
	engine  *musys.Engine
}

// New creates a Host with the bundled default device catalog, debug
// tracing disabled, and a fixed default seed (spec.md §9: "expose a seed
// flag for testing").
func New() *Host {
	return &Host{
		devices: device.Default(),
		seed:    1,
		stdout:  os.Stdout,
		trace:   os.Stderr,
	}
}

// SetDevices overrides the bundled device catalog.
func (h *Host) SetDevices(t *device.Table) {
	h.devices = t
}

// SetDebug enables or disables trace output to the configured trace
// writer, mirroring musysim.py's DEBUG global.
func (h *Host) SetDebug(on bool) {
	h.debug = on
}

// SetSeed sets the random operator's seed for reproducible runs.
func (h *Host) SetSeed(seed int64) {
	h.seed = seed
}

// SetStdout overrides the writer used by MUSYS "print" statements.
func (h *Host) SetStdout(w io.Writer) {
	h.stdout = w
}

// SetTrace overrides the writer used for debug trace output.
func (h *Host) SetTrace(w io.Writer) {
	h.trace = w
}

// Load reads and parses the source file at sourcePath and, if dataPath
// is non-empty, the data file at dataPath, then constructs the
// Execution Engine. It must be called before Run.
func (h *Host) Load(sourcePath, dataPath string) error {
	text, err := os.ReadFile(sourcePath)
	if err != nil {
		return musys.NewError(musys.LoadError, "cannot read "+sourcePath, err)
	}

	prog, err := source.Load(string(text))
	if err != nil {
		return musys.NewError(musys.LoadError, "cannot parse "+sourcePath, err)
	}

	var dataText string
	if dataPath != "" {
		data, err := os.ReadFile(dataPath)
		if err != nil {
			return musys.NewError(musys.LoadError, "cannot read "+dataPath, err)
		}
		dataText = string(data)
	}

	paragraphs, err := musys.ParseParagraphs(dataText)
	if err != nil {
		return musys.NewError(musys.LoadError, "cannot parse "+dataPath, err)
	}

	h.program = prog
	h.engine = musys.New(prog, h.devices, paragraphs, h.seed)
	h.engine.SetStdout(h.stdout)
	if h.debug {
		h.engine.SetTracer(musys.WriterTracer{W: h.trace})
	}
	return nil
}

// Run executes the loaded program to completion.
func (h *Host) Run() error {
	return h.engine.Run()
}

// Write persists the engine's bus state to path (output.DefaultPath if
// path is empty).
func (h *Host) Write(path string) error {
	return output.Write(path, h.engine.Buses())
}

// Engine returns the Host's Execution Engine, for the optional
// inspection shell in package debugger. It is nil until Load succeeds.
func (h *Host) Engine() *musys.Engine {
	return h.engine
}

// Devices returns the Host's device catalog, for the inspection shell.
func (h *Host) Devices() *device.Table {
	return h.devices
}
