// Package excel wraps excelize behind the small surface the services need:
// build a workbook from an ordered column spec, read a workbook back into
// string rows, and persist failed-import reports under generated filenames.
package excel

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// DateFormat is used for every date cell we write. Imports accept the same
// layout, which keeps export-then-import round trips lossless.
const DateFormat = "2006-01-02"

// Column maps a row key to its spreadsheet header. Slice order is the
// column order in the workbook.
type Column struct {
	Key    string
	Header string
}

// Row holds one spreadsheet row keyed by column key.
type Row map[string]any

// Build serializes rows into a single-sheet workbook with a fixed header
// order and returns the xlsx binary.
func Build(sheet string, cols []Column, rows []Row) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := make([]any, len(cols))
	for i, col := range cols {
		headers[i] = col.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header row: %w", err)
	}

	for i, row := range rows {
		values := make([]any, len(cols))
		for j, col := range cols {
			values[j] = cellValue(row[col.Key])
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf, nil
}

// ReadRows parses a workbook and returns the first sheet's rows as strings,
// header row included.
func ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// Store writes a workbook into dir under a generated unique filename and
// returns the filename. Used for failed-import reports, which are later
// streamed to the client by filename and deleted.
func Store(dir, sheet string, cols []Column, rows []Row) (string, error) {
	buf, err := Build(sheet, cols, rows)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	fileName := uuid.NewString() + ".xlsx"
	if err := os.WriteFile(filepath.Join(dir, fileName), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return fileName, nil
}

// Cell reads a positional cell from a string row, returning "" when the row
// is short. Positions are zero-based.
func Cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// cellValue flattens pointer and time values into something excelize can
// write directly.
func cellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *string:
		if val == nil {
			return nil
		}
		return *val
	case *uint:
		if val == nil {
			return nil
		}
		return *val
	case *time.Time:
		if val == nil {
			return nil
		}
		return val.Format(DateFormat)
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val.Format(DateFormat)
	default:
		return val
	}
}
