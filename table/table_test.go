package table_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/relab/expdata"
	"github.com/relab/expdata/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRead(t *testing.T) {
	path := writeFile(t, "measurements_pod_1.csv", "observation_time,name,cpu_usage\n"+
		"2024-01-01T00:00:00Z,loadgenerator,0.5\n"+
		"2024-01-01T00:00:05Z,app,\n")

	tbl, err := table.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Source() != path {
		t.Errorf("Source() = %q, want %q", tbl.Source(), path)
	}
	if diff := cmp.Diff([]string{"observation_time", "name", "cpu_usage"}, tbl.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	names, err := tbl.Strings("name")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"loadgenerator", "app"}, names); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
	cpu, err := tbl.Floats("cpu_usage")
	if err != nil {
		t.Fatal(err)
	}
	if cpu[0] != 0.5 || !math.IsNaN(cpu[1]) {
		t.Errorf("Floats() = %v, want [0.5 NaN]", cpu)
	}
}

func TestReadErrors(t *testing.T) {
	if _, err := table.Read(writeFile(t, "empty.csv", "")); err == nil {
		t.Error("Read() of an empty file succeeded")
	}
	if _, err := table.Read(writeFile(t, "ragged.csv", "a,b\n1,2\n3\n")); err == nil {
		t.Error("Read() of a ragged file succeeded")
	}
	if _, err := table.Read(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("Read() of a missing file succeeded")
	}
}

func TestDuplicateColumns(t *testing.T) {
	tbl, err := table.New([]string{"", "a", "a", "a.1", "a"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"", "a", "a.1", "a.1.1", "a.2"}
	if diff := cmp.Diff(want, tbl.Columns()); diff != "" {
		t.Errorf("Columns() mismatch (-want +got):\n%s", diff)
	}
}

func TestFloatsParseError(t *testing.T) {
	tbl, err := table.New([]string{"cpu_usage"}, []string{"1"}, []string{"high"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = tbl.Floats("cpu_usage")
	var perr *expdata.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Floats() error = %v, want *ParseError", err)
	}
	if perr.Row != 1 || perr.Value != "high" {
		t.Errorf("ParseError = %+v, want row 1 value %q", perr, "high")
	}

	_, err = tbl.Floats("memory_usage")
	if !errors.Is(err, expdata.ErrMissingColumn) {
		t.Errorf("Floats() of missing column: error = %v, want ErrMissingColumn", err)
	}
}

func TestFilterAndWithColumn(t *testing.T) {
	tbl, err := table.New([]string{"name", "v"}, []string{"a", "1"}, []string{"b", "2"}, []string{"c", "3"})
	if err != nil {
		t.Fatal(err)
	}
	filtered := tbl.Filter(func(i int) bool { return i != 1 })
	if filtered.Len() != 2 || tbl.Len() != 3 {
		t.Fatalf("Filter() lengths: got %d (original %d), want 2 (3)", filtered.Len(), tbl.Len())
	}

	added, err := filtered.WithColumn("w", []string{"x", "y"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"c", "3", "y"}, added.Row(1)); diff != "" {
		t.Errorf("Row(1) mismatch (-want +got):\n%s", diff)
	}
	if filtered.Has("w") {
		t.Error("WithColumn() modified its receiver")
	}

	replaced, err := added.WithColumn("v", []string{"10", "30"})
	if err != nil {
		t.Fatal(err)
	}
	got, err := replaced.Ints("v")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{10, 30}, got); diff != "" {
		t.Errorf("Ints() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := added.Value(0, "v"); v != "1" {
		t.Errorf("WithColumn() modified the rows of its receiver: v = %q", v)
	}

	if _, err := tbl.WithColumn("w", []string{"x"}); err == nil {
		t.Error("WithColumn() with wrong length succeeded")
	}
}

func TestWriteRead(t *testing.T) {
	tbl, err := table.New([]string{"observation_time", "name"}, []string{"2024-01-01T00:00:00Z", "pod, with comma"})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := tbl.Write(path); err != nil {
		t.Fatal(err)
	}
	got, err := table.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(tbl.Row(0), got.Row(0)); diff != "" {
		t.Errorf("Row(0) mismatch (-want +got):\n%s", diff)
	}
}
