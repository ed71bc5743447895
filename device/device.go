// Package device implements the MUSYS device catalog: a static,
// read-only table mapping device mnemonics to 6-bit device numbers.
// The catalog is treated as an externally injected collaborator (see
// spec.md §1); Table is the interface the rest of the interpreter
// queries, and Default returns a reasonable built-in studio
// configuration grounded on the original Grogono-1973 device list.
package device

import "strings"

// Argument describes the meaning of a device's numeric argument, for
// devices whose instance digit isn't just an index (e.g. a timer rate).
type Argument struct {
	Units string
	Bits  int
}

// Entry describes a single device mnemonic in the catalog. Several
// mnemonics may share the same Number; that is intentional, not an
// error (e.g. L1 and A1 both address device 12).
type Entry struct {
	Name        string
	Number      int
	Group       string
	Description string
	Arg         *Argument
}

// Table is a read-only, queryable device catalog.
type Table struct {
	byName   map[string]Entry
	byNumber map[int][]Entry
}

// New builds a Table from a list of entries.
func New(entries []Entry) *Table {
	t := &Table{
		byName:   make(map[string]Entry, len(entries)),
		byNumber: make(map[int][]Entry),
	}
	for _, e := range entries {
		t.byName[e.Name] = e
		t.byNumber[e.Number] = append(t.byNumber[e.Number], e)
	}
	return t
}

// Lookup resolves a mnemonic to its catalog entry. A bare letter with
// no instance digit (e.g. "O") falls back to that family's first
// instance ("O1") when the bare letter itself isn't catalogued; the
// 1973 source commonly wrote a family's first device without its
// digit.
func (t *Table) Lookup(name string) (Entry, bool) {
	if e, ok := t.byName[name]; ok {
		return e, true
	}
	if len(name) == 1 && strings.ToUpper(name) == name {
		if e, ok := t.byName[name+"1"]; ok {
			return e, true
		}
	}
	return Entry{}, false
}

// ByNumber returns every mnemonic sharing the given device number, in
// no particular order.
func (t *Table) ByNumber(n int) []Entry {
	return t.byNumber[n]
}

// Default returns the built-in device catalog bundled with the
// interpreter. Callers wanting a different studio configuration build
// their own Table with New and inject it via host.New.
func Default() *Table {
	return New(defaultEntries)
}

var defaultEntries = []Entry{
	{Name: "O1", Number: 1, Group: "Oscillators", Description: "Oscillator 1"},
	{Name: "O2", Number: 2, Group: "Oscillators", Description: "Oscillator 2"},
	{Name: "O3", Number: 2, Group: "Oscillators", Description: "Oscillator 3"},
	{Name: "K1", Number: 8, Group: "Keyboards", Description: "Keyboard 1"},
	{Name: "K2", Number: 9, Group: "Keyboards", Description: "Keyboard 2"},
	{Name: "P1", Number: 10, Group: "Percussion", Description: "Percussion generator 1"},
	{Name: "P2", Number: 11, Group: "Percussion", Description: "Percussion generator 2"},
	{Name: "L1", Number: 12, Group: "Amplifiers", Description: "Loudness amplifier 1"},
	{Name: "L2", Number: 13, Group: "Amplifiers", Description: "Loudness amplifier 2"},
	{Name: "L3", Number: 14, Group: "Amplifiers", Description: "Loudness amplifier 3"},
	{Name: "A1", Number: 12, Group: "Amplifiers", Description: "Gain amplifier 1"},
	{Name: "A2", Number: 13, Group: "Amplifiers", Description: "Gain amplifier 2"},
	{Name: "E1", Number: 24, Group: "Envelope shapers", Description: "Envelope shaper 1"},
	{Name: "E2", Number: 25, Group: "Envelope shapers", Description: "Envelope shaper 2"},
	{Name: "E3", Number: 26, Group: "Envelope shapers", Description: "Envelope shaper 3"},
	{Name: "T1", Number: 60, Group: "Timers", Description: "Wait timer",
		Arg: &Argument{Units: "interrupts", Bits: 6}},
	{Name: "T2", Number: 61, Group: "Timers", Description: "Timer 2"},
	{Name: "T3", Number: 62, Group: "Timers", Description: "Clock interrupt rate",
		Arg: &Argument{Units: "interrupts/second", Bits: 6}},
}
