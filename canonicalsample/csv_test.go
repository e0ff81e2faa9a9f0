package canonicalsample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCSVRendersNilAsEmptyColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samples.csv")
	lat := 12.5
	s := Sample{TSUTCISO: "2024-01-01T00:00:00Z", ElapsedS: 1.5, Latitude: &lat}

	if err := WriteCSV(path, []Sample{s}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2 (header + one row)", len(lines))
	}
	fields := strings.Split(lines[1], ",")
	if fields[2] != "12.5" {
		t.Fatalf("latitude column = %q, want 12.5", fields[2])
	}
	if fields[3] != "" {
		t.Fatalf("longitude column = %q, want empty for nil", fields[3])
	}
}

func TestMarshalParquetAcceptsNilColumns(t *testing.T) {
	s := Sample{TSUTCISO: "2024-01-01T00:00:00Z", ElapsedS: 1.0}
	data, err := MarshalParquet([]Sample{s})
	if err != nil {
		t.Fatalf("MarshalParquet() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("MarshalParquet() returned empty bytes")
	}
}
