package excel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var testCols = []Column{
	{Key: "name", Header: "Name"},
	{Key: "sex", Header: "Sex"},
	{Key: "dob", Header: "Date of Birth"},
}

func TestBuildReadRoundTrip(t *testing.T) {
	dob := time.Date(1990, time.May, 17, 0, 0, 0, 0, time.UTC)
	phone := "9845012345"
	rows := []Row{
		{"name": "Rajan Kumar", "sex": "Male", "dob": &dob},
		{"name": "Leela Devi", "sex": "Female", "dob": (*time.Time)(nil)},
		{"name": &phone, "sex": "Others"},
	}

	buf, err := Build("Criminals", testCols, rows)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	got, err := ReadRows(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("got %d rows, want header + 3 data rows", len(got))
	}
	header := got[0]
	if header[0] != "Name" || header[1] != "Sex" || header[2] != "Date of Birth" {
		t.Errorf("header = %v", header)
	}
	if Cell(got[1], 0) != "Rajan Kumar" || Cell(got[1], 1) != "Male" {
		t.Errorf("row 1 = %v", got[1])
	}
	if Cell(got[1], 2) != "1990-05-17" {
		t.Errorf("date cell = %q, want %q", Cell(got[1], 2), "1990-05-17")
	}
	// nil pointer dates become empty cells
	if Cell(got[2], 2) != "" {
		t.Errorf("nil date cell = %q, want empty", Cell(got[2], 2))
	}
	// pointer strings are dereferenced
	if Cell(got[3], 0) != "9845012345" {
		t.Errorf("pointer cell = %q", Cell(got[3], 0))
	}
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"a", "b"}
	if Cell(row, 1) != "b" {
		t.Errorf("Cell(row, 1) = %q", Cell(row, 1))
	}
	if Cell(row, 5) != "" {
		t.Errorf("out-of-range cell = %q, want empty", Cell(row, 5))
	}
	if Cell(row, -1) != "" {
		t.Errorf("negative position = %q, want empty", Cell(row, -1))
	}
}

func TestStore(t *testing.T) {
	dir := t.TempDir()
	rows := []Row{{"name": "Rajan", "sex": "Male"}}

	fileName, err := Store(dir, "Failed", testCols, rows)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !strings.HasSuffix(fileName, ".xlsx") {
		t.Errorf("fileName = %q, want .xlsx suffix", fileName)
	}

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	got, err := ReadRows(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(got) != 2 || Cell(got[1], 0) != "Rajan" {
		t.Errorf("stored rows = %v", got)
	}
}

func TestStore_GeneratesUniqueNames(t *testing.T) {
	dir := t.TempDir()
	a, err := Store(dir, "Failed", testCols, nil)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	b, err := Store(dir, "Failed", testCols, nil)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if a == b {
		t.Errorf("two reports got the same filename %q", a)
	}
}
