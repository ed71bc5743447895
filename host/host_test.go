package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hornc/musys/device"
)

func writeSource(t *testing.T, dir, text string) string {
	t.Helper()
	path := filepath.Join(dir, "prog.mu")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestHostLoadRunFactorial(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "#FAC 4; \\\n$\nFAC %A-1[#FAC %A-1; N=%A*N @] N=1 @")

	h := New()
	if err := h.Load(src, ""); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := h.Engine().Vars().EXP; got != 24 {
		t.Errorf("EXP = %d, want 24", got)
	}
	if got := h.Engine().Vars().Get('N'); got != 24 {
		t.Errorf("N = %d, want 24", got)
	}
}

func TestHostLoadRunWriteDeviceExample(t *testing.T) {
	// Local device table with O1=0 to reproduce spec.md §8 scenario 6's
	// literal worked bus output; see SPEC_FULL.md §6.
	dir := t.TempDir()
	src := writeSource(t, dir, "O.K1. 1000:$")

	h := New()
	h.SetDevices(device.New([]device.Entry{
		{Name: "O1", Number: 0},
		{Name: "K1", Number: 8},
	}))
	if err := h.Load(src, ""); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	outPath := filepath.Join(dir, "musys.out")
	if err := h.Write(outPath); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "0010 1750\n\n\n\n\n\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestHostLoadRunDataParagraph(t *testing.T) {
	dir := t.TempDir()
	src := writeSource(t, dir, "←A ←+5 $")
	dataPath := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(dataPath, []byte("10, 20, 30"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h := New()
	if err := h.Load(src, dataPath); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := h.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	// select paragraph A, then consume its first value (10) and add 5.
	if got := h.Engine().Vars().EXP; got != 15 {
		t.Errorf("EXP = %d, want 15", got)
	}
}
