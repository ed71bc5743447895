package musys

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hornc/musys/device"
	"github.com/hornc/musys/source"
)

// Engine is the Execution Engine (spec.md §4.3): a character-by-character
// dispatcher that drives every MUSYS statement form. Grounded on cpu.go's
// Step() fetch-dispatch-advance loop, adapted from "one instruction" to
// "one character, variable-length match".
type Engine struct {
	program *source.Program
	devices *device.Table

	vars       Registers
	paragraphs *ParagraphSet
	buses      BusSet

	frames      []Frame
	activations []Activation

	currentBus       int
	staging          *int
	selectedParagraph byte

	inString  bool
	skipDepth int

	rng    *rand.Rand
	tracer Tracer
	stdout io.Writer
}

// New creates an Engine ready to run program, with devices as the device
// catalog and paragraphs as the parsed Data Paragraphs. seed seeds the
// random operator for reproducible runs (spec.md §9: "draws must be
// reproducible when a seed is supplied").
func New(program *source.Program, devices *device.Table, paragraphs *ParagraphSet, seed int64) *Engine {
	e := &Engine{
		program:    program,
		devices:    devices,
		paragraphs: paragraphs,
		currentBus: 1,
		rng:        rand.New(rand.NewSource(seed)),
		tracer:     NopTracer{},
		stdout:     io.Discard,
	}
	e.frames = []Frame{{Owner: mainProgram, Line: 0, Col: 0}}
	return e
}

// SetTracer installs a Tracer to receive statement and diagnostic
// notifications.
func (e *Engine) SetTracer(t Tracer) {
	if t == nil {
		t = NopTracer{}
	}
	e.tracer = t
}

// SetStdout sets the writer used by the '"' string statement and the '\'
// print statement.
func (e *Engine) SetStdout(w io.Writer) {
	e.stdout = w
}

// Buses returns the engine's bus buffer for inspection or output.
func (e *Engine) Buses() *BusSet {
	return &e.buses
}

// Vars returns the engine's register file for inspection.
func (e *Engine) Vars() *Registers {
	return &e.vars
}

// Paragraphs returns the engine's data paragraph queues, for the
// inspection shell's "paragraphs" command.
func (e *Engine) Paragraphs() *ParagraphSet {
	return e.paragraphs
}

func (e *Engine) diagnostic(kind Kind, message string) {
	e.tracer.OnDiagnostic(kind, message)
}

// Run drives the Execution Engine to completion: spec.md §4.3's
// termination rule is "when advancing would move past the end of the
// main program on the base frame, execution ends."
func (e *Engine) Run() error {
	for {
		if e.step() {
			return nil
		}
	}
}

func (e *Engine) currentFrame() *Frame {
	return &e.frames[len(e.frames)-1]
}

func (e *Engine) textFor(f *Frame) string {
	if f.Owner == mainProgram {
		if f.Line < 0 || f.Line >= len(e.program.Lines) {
			return ""
		}
		return e.program.Lines[f.Line]
	}
	return e.activations[f.Owner].Body
}

// step dispatches exactly one character and reports whether the program
// has halted.
func (e *Engine) step() bool {
	f := e.currentFrame()
	text := e.textFor(f)

	for f.Col >= len(text) {
		if f.Owner == mainProgram {
			f.Line++
			f.Col = 0
			if f.Line >= len(e.program.Lines) {
				return true
			}
			text = e.textFor(f)
		} else {
			e.popFrame()
			if len(e.frames) == 0 {
				return true
			}
			f = e.currentFrame()
			text = e.textFor(f)
		}
	}

	e.tracer.OnStatement(fmt.Sprintf("line=%d col=%d exp=%d", f.Line+1, f.Col, e.vars.EXP))

	if e.skipDepth > 0 {
		switch text[f.Col] {
		case '[':
			e.skipDepth++
		case ']':
			e.skipDepth--
		}
		f.Col++
		return false
	}

	if e.inString {
		r, size := utf8.DecodeRuneInString(text[f.Col:])
		if r == '"' {
			e.inString = false
			if e.vars.EXP != 0 {
				fmt.Fprintln(e.stdout)
			}
		} else if e.vars.EXP != 0 {
			fmt.Fprintf(e.stdout, "%c", r)
		}
		f.Col += size
		return false
	}

	r, size := utf8.DecodeRuneInString(text[f.Col:])
	pos := f.Col

	switch {
	case r == '"':
		e.inString = true
		f.Col += size

	case r == '\\':
		fmt.Fprintf(e.stdout, "%d", e.vars.EXP)
		f.Col += size

	case r == '[':
		if e.vars.EXP > 0 {
			f.Col += size
		} else {
			e.skipDepth = 1
			f.Col += size
		}

	case r == ']':
		f.Col += size

	case r == '(':
		f.Loops = append(f.Loops, loopMark{ReturnCol: pos + size, Counter: e.vars.EXP})
		f.Col += size

	case r == ')':
		e.dispatchLoopEnd(f, pos, size)

	case r == '@':
		e.popFrame()

	case r == '#':
		e.dispatchMacroCall(f, text, pos)

	case r == 'G' && pos+1 < len(text) && isDigit(text[pos+1]):
		e.dispatchGoto(f, text, pos)

	case r == '←' && hasUpperAfter(text, pos+size):
		nr, nsize := utf8.DecodeRuneInString(text[pos+size:])
		e.selectedParagraph = byte(nr)
		f.Col = pos + size + nsize

	case isUpperRune(r) && pos+1 < len(text) && text[pos+1] == '=':
		e.dispatchAssignment(f, text, pos)

	case isUpperRune(r) && isDeviceCodeAt(text, pos):
		e.dispatchDeviceCode(f, text, pos)

	case r == '.':
		e.emit(2)
		f.Col += size

	case r == ':':
		e.emit(4)
		f.Col += size

	case r == '!':
		e.selectBus()
		f.Col += size

	default:
		e.dispatchExpression(f, text, pos)
	}

	return false
}

func (e *Engine) popFrame() {
	if len(e.frames) == 1 {
		// "@" reached at the base frame has nothing left to return to;
		// treat it the same as running off the end of the program.
		e.frames[0].Line = len(e.program.Lines)
		e.frames[0].Col = 0
		return
	}
	e.frames = e.frames[:len(e.frames)-1]
}

func (e *Engine) dispatchLoopEnd(f *Frame, pos, size int) {
	n := len(f.Loops)
	if n == 0 {
		f.Col = pos + size
		return
	}
	m := &f.Loops[n-1]
	m.Counter--
	if m.Counter > 0 {
		f.Col = m.ReturnCol
		return
	}
	f.Loops = f.Loops[:n-1]
	f.Col = pos + size
}

func (e *Engine) dispatchGoto(f *Frame, text string, pos int) {
	j := pos + 1
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	if f.Owner != mainProgram {
		e.diagnostic(RuntimeError, "goto is not supported inside a macro body")
		f.Col = j
		return
	}
	label, _ := strconv.Atoi(text[pos+1 : j])
	line, ok := e.program.Labels[label]
	if !ok {
		e.diagnostic(RuntimeError, fmt.Sprintf("undefined label G%d", label))
		f.Col = j
		return
	}
	f.Line = line
	f.Col = 0
}

func (e *Engine) dispatchAssignment(f *Frame, text string, pos int) {
	letter := text[pos]
	start := pos + 2
	end := e.scanExpressionRun(text, start)
	val := e.evaluate(text[start:end])
	e.vars.Set(letter, val)
	f.Col = end
}

func (e *Engine) dispatchDeviceCode(f *Frame, text string, pos int) {
	end, _ := deviceCodeEnd(text, pos)
	name := text[pos:end]
	num := 0
	if entry, ok := e.devices.Lookup(name); ok {
		num = entry.Number
	} else {
		e.diagnostic(LookupError, "unknown device "+name)
	}
	e.staging = &num
	f.Col = end
}

func (e *Engine) dispatchExpression(f *Frame, text string, pos int) {
	end := e.scanExpressionRun(text, pos)
	if end == pos {
		end = pos + 1
	}
	e.evaluate(text[pos:end])
	f.Col = end
}

func (e *Engine) dispatchMacroCall(f *Frame, text string, pos int) {
	j := pos + 1
	for j < len(text) && isUpper(text[j]) {
		j++
	}
	name := text[pos+1 : j]
	for j < len(text) && isSpace(text[j]) {
		j++
	}
	k := strings.IndexByte(text[j:], ';')
	if k < 0 {
		e.diagnostic(RuntimeError, "unterminated macro call to "+name)
		f.Col = len(text)
		return
	}
	argsText := strings.TrimSpace(text[j : j+k])
	end := j + k + 1

	var values []int
	if argsText != "" {
		for _, part := range strings.Split(argsText, ",") {
			values = append(values, e.evaluate(strings.TrimSpace(part)))
		}
	}

	def, ok := e.program.Macros[name]
	if !ok {
		e.diagnostic(LookupError, "undeclared macro "+name)
		f.Col = end
		return
	}

	activation := newActivation(def, values)
	id := len(e.activations)
	e.activations = append(e.activations, activation)

	f.Col = end
	e.frames = append(e.frames, Frame{Owner: id, Line: 0, Col: 0})
}

func (e *Engine) emit(width int) {
	v := e.vars.EXP
	if e.staging != nil {
		v = *e.staging
	}
	mask := Mask12
	if width == 2 {
		mask = 0x3F
	}
	e.buses.Send(e.currentBus, fmt.Sprintf("%0*o", width, v&mask))
	e.staging = nil
}

func (e *Engine) selectBus() {
	v := e.vars.EXP
	if e.staging != nil {
		v = *e.staging
	}
	e.currentBus = clampBus(v)
	e.staging = nil
}

// scanExpressionRun returns the end of the maximal bare-expression token
// run starting at start: it extends until a structural statement
// character, a "G<digits>" goto, a "<LETTER>=" assignment, a device-code
// token, or a "←<LETTER>" paragraph select would begin.
func (e *Engine) scanExpressionRun(text string, start int) int {
	j := start
	for j < len(text) {
		r, size := utf8.DecodeRuneInString(text[j:])
		switch {
		case strings.ContainsRune(`"\[]()#.:!`, r):
			return j
		case r == '@':
			return j
		case r == 'G' && j+1 < len(text) && isDigit(text[j+1]):
			return j
		case isUpperRune(r) && j+1 < len(text) && text[j+1] == '=':
			return j
		case isUpperRune(r) && isDeviceCodeAt(text, j):
			return j
		case r == '←' && hasUpperAfter(text, j+size):
			return j
		}
		j += size
	}
	return j
}

func isUpperRune(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func hasUpperAfter(text string, pos int) bool {
	if pos >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[pos:])
	return isUpperRune(r)
}

// isDeviceCodeAt reports whether an uppercase letter at pos begins a
// device-code token: the letter, optionally followed by digits, with the
// next character (ignoring the digits) being one of the emission or
// bus-select operators. This is how the engine tells a device code like
// "K1." apart from an ordinary variable read inside an expression.
func isDeviceCodeAt(text string, pos int) bool {
	_, ok := deviceCodeEnd(text, pos)
	return ok
}

func deviceCodeEnd(text string, pos int) (end int, ok bool) {
	j := pos + 1
	for j < len(text) && isDigit(text[j]) {
		j++
	}
	if j < len(text) && (text[j] == '.' || text[j] == ':' || text[j] == '!') {
		return j, true
	}
	return pos, false
}
