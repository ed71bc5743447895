package musys

import (
	"fmt"
	"io"
)

// Tracer receives notifications from the Execution Engine as it runs.
// Grounded on cpu/debug.go's Debugger/DebuggerHandler pair, simplified
// from address breakpoints to statement and diagnostic notifications -
// MUSYS has no addressable memory to break on, only a moving text
// pointer and the occasional recoverable error.
type Tracer interface {
	// OnStatement is called before each character dispatch with a short
	// description of the current frame position.
	OnStatement(position string)
	// OnDiagnostic is called when a LookupError or RuntimeError is
	// substituted with a safe default and execution continues.
	OnDiagnostic(kind Kind, message string)
}

// NopTracer discards every notification. It is the Engine's default,
// matching musysim.py's DEBUG-gated print() calls being no-ops when
// DEBUG is false.
type NopTracer struct{}

func (NopTracer) OnStatement(string)       {}
func (NopTracer) OnDiagnostic(Kind, string) {}

// WriterTracer writes every notification to an io.Writer, the same
// fmt.Fprintf-to-io.Writer style the whole retrieved corpus uses for
// diagnostics (cpu/debug.go, host/host.go's printf/println) in place of
// a logging library.
type WriterTracer struct {
	W io.Writer
}

func (t WriterTracer) OnStatement(position string) {
	fmt.Fprintf(t.W, "[trace] %s\n", position)
}

func (t WriterTracer) OnDiagnostic(kind Kind, message string) {
	fmt.Fprintf(t.W, "[%s] %s\n", kind, message)
}
