package profiling

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStartProfilers(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	mem := filepath.Join(dir, "mem.prof")

	stop, err := StartProfilers(cpu, mem, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if err := stop(); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{cpu, mem} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("profile %s was not written: %v", path, err)
		}
	}
}

func TestStartProfilersInvalidPath(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.prof")
	_, err := StartProfilers(cpu, "", filepath.Join(dir, "missing", "trace.out"), "")
	if err == nil {
		t.Fatal("StartProfilers() succeeded with an invalid trace path")
	}
	// the cpu profiler must have been stopped, so it can be started again
	stop, err := StartProfilers(cpu, "", "", "")
	if err != nil {
		t.Fatalf("StartProfilers() after failure: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatal(err)
	}
}
