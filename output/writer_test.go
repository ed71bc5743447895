package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hornc/musys/musys"
)

func TestWriteProducesSixLines(t *testing.T) {
	var buses musys.BusSet
	buses.Send(1, "00")
	buses.Send(1, "10")
	buses.Send(1, "1750")

	dir := t.TempDir()
	path := filepath.Join(dir, "musys.out")
	if err := Write(path, &buses); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "0010 1750\n\n\n\n\n\n"
	if string(data) != want {
		t.Errorf("contents = %q, want %q", data, want)
	}
}
