package fixtures

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDataReader_ParsesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vectors.txt")
	content := "the 0.1 0.2 0.3\n\nof -1 2.5 3e-2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := DataReader{SourceFile: path}.GetDataSet()
	if err != nil {
		t.Fatalf("GetDataSet: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Id != 0 || rows[0].Word != "the" {
		t.Errorf("Unexpected first row %+v", rows[0])
	}
	// ids follow line numbers, so the skipped empty line is counted
	if rows[1].Id != 2 || rows[1].Word != "of" {
		t.Errorf("Unexpected second row %+v", rows[1])
	}
	want := Vector{-1, 2.5, 0.03}
	if !slices.Equal(rows[1].Vector, want) {
		t.Errorf("Expected vector %v, got %v", want, rows[1].Vector)
	}
}

func TestDataReader_InvalidNumber(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("word 0.1 abc\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := (DataReader{SourceFile: path}).GetDataSet(); err == nil {
		t.Error("Expected error for unparsable component")
	}
}

func TestDataReader_MissingFile(t *testing.T) {
	if _, err := (DataReader{SourceFile: filepath.Join(t.TempDir(), "none.txt")}).GetDataSet(); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteText_RoundTrip(t *testing.T) {
	rows, err := DataGenerator{Size: 30, Dim: 5, Seed: 6}.GetDataSet()
	if err != nil {
		t.Fatalf("GetDataSet: %v", err)
	}
	path := filepath.Join(t.TempDir(), "rows.txt")

	if err := WriteText(path, rows); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	read, err := DataReader{SourceFile: path}.GetDataSet()
	if err != nil {
		t.Fatalf("GetDataSet: %v", err)
	}

	if !slices.EqualFunc(rows, read, rowsEqual) {
		t.Error("Expected text round trip to preserve rows exactly")
	}
}

func TestWriteText_RejectsWhitespaceWords(t *testing.T) {
	rows := []DataRow{{Id: 0, Word: "two words", Vector: Vector{1}}}

	if err := WriteText(filepath.Join(t.TempDir(), "rows.txt"), rows); err == nil {
		t.Error("Expected error for word containing whitespace")
	}
}
