package source

import "testing"

func TestLoadSplitsProgramAndMacros(t *testing.T) {
	p, err := Load("10+5 $")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Lines) != 1 || p.Lines[0] != "10+5 " {
		t.Fatalf("Lines = %#v", p.Lines)
	}
	if len(p.Macros) != 0 {
		t.Fatalf("expected no macros, got %#v", p.Macros)
	}
}

func TestLoadExtractsLabel(t *testing.T) {
	p, err := Load("100 A=1\n200 G100\n$")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := p.Lines[0], "A=1"; got != want {
		t.Errorf("Lines[0] = %q, want %q", got, want)
	}
	if idx, ok := p.Labels[100]; !ok || idx != 0 {
		t.Errorf("Labels[100] = %d, %v, want 0, true", idx, ok)
	}
	if idx, ok := p.Labels[200]; !ok || idx != 1 {
		t.Errorf("Labels[200] = %d, %v, want 1, true", idx, ok)
	}
}

func TestLoadMacroFactorialSingleDefinition(t *testing.T) {
	// The inner "@" before "]" must NOT terminate the FAC definition; only
	// the trailing "@" at end-of-text does.
	p, err := Load("#FAC 4; \\$FAC %A-1[#FAC %A-1; N=%A*N @] N=1 @")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Macros) != 1 {
		t.Fatalf("expected exactly 1 macro, got %d: %#v", len(p.Macros), p.Macros)
	}
	m, ok := p.Macros["FAC"]
	if !ok {
		t.Fatal("expected macro FAC")
	}
	want := "%A-1[#FAC %A-1; N=%A*N @] N=1"
	if m.Body != want {
		t.Errorf("FAC body = %q, want %q", m.Body, want)
	}
}

func TestLoadMacroAreaStartingWithNewline(t *testing.T) {
	// spec.md §8 scenario 5's literal source has a newline between the
	// "$" separator and the macro area, which must be stripped before
	// reading the macro name (original_source/musysim.py strips each
	// fragment via raw.strip() before matching the name).
	p, err := Load("#FAC 4; \\\n$\nFAC %A-1[#FAC %A-1; N=%A*N @] N=1 @")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Macros) != 1 {
		t.Fatalf("expected exactly 1 macro, got %d: %#v", len(p.Macros), p.Macros)
	}
	m, ok := p.Macros["FAC"]
	if !ok {
		t.Fatal("expected macro FAC")
	}
	want := "%A-1[#FAC %A-1; N=%A*N @] N=1"
	if m.Body != want {
		t.Errorf("FAC body = %q, want %q", m.Body, want)
	}
}

func TestLoadRejectsOverlongMacroName(t *testing.T) {
	_, err := Load("$TOOLONGNAME body @")
	if err == nil {
		t.Fatal("expected error for overlong macro name")
	}
}

func TestSplitMacroAreaMultipleMacros(t *testing.T) {
	frags := splitMacroArea("AB body1 @ CD body2 @")
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d: %#v", len(frags), frags)
	}
	if frags[0] != "AB body1" || frags[1] != "CD body2" {
		t.Errorf("fragments = %#v", frags)
	}
}
