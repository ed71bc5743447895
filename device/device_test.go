package device

import "testing"

func TestLookupExact(t *testing.T) {
	tab := Default()
	e, ok := tab.Lookup("L1")
	if !ok {
		t.Fatal("expected L1 to be found")
	}
	if e.Number != 12 {
		t.Errorf("L1 number = %d, want 12", e.Number)
	}
}

func TestLookupBareLetterFallsBackToFirstInstance(t *testing.T) {
	tab := Default()
	e, ok := tab.Lookup("O")
	if !ok {
		t.Fatal("expected bare 'O' to resolve to O1")
	}
	if e.Name != "O1" {
		t.Errorf("resolved name = %s, want O1", e.Name)
	}
}

func TestLookupUnknown(t *testing.T) {
	tab := Default()
	if _, ok := tab.Lookup("Z9"); ok {
		t.Error("expected Z9 to be unknown")
	}
}

func TestByNumberSharedAcrossMnemonics(t *testing.T) {
	tab := Default()
	entries := tab.ByNumber(12)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries sharing number 12 (L1, A1), got %d", len(entries))
	}
}
