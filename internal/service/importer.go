package service

import (
	"context"
	"io"
	"strings"

	"github.com/crimebase/crimebase/internal/excel"
)

// importSpec describes one entity's bulk import: how a positional
// spreadsheet row maps to an input value, how that value is validated and
// persisted, and how failures are reported.
type importSpec[T any] struct {
	// failedSheet names the worksheet of the failure report.
	failedSheet string
	// failedCols is the failure-report column order: the entity's import
	// columns plus the trailing Error column.
	failedCols []excel.Column
	// mapRow converts a raw row (fixed column positions) to the input value.
	mapRow func(row []string) T
	// validate runs shape then referential validation.
	validate func(ctx context.Context, in T) error
	// insert persists one validated row.
	insert func(ctx context.Context, in T) error
	// failedRow flattens the original input plus the error text into a
	// report row.
	failedRow func(in T, errMsg string) excel.Row
}

// runImport executes the row-by-row import pipeline. Rows are processed
// strictly sequentially and independently: a failed row is recorded and the
// next row proceeds, so successCount+errorCount always equals the number of
// data rows processed and failure order matches input order. When any row
// failed, the failure report is stored under a generated filename in
// failedDir.
func runImport[T any](ctx context.Context, r io.Reader, failedDir string, spec importSpec[T]) (*ImportResult, error) {
	rows, err := excel.ReadRows(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	var failed []excel.Row

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if emptyRow(row) {
			continue
		}

		in := spec.mapRow(row)

		if err := spec.validate(ctx, in); err != nil {
			failed = append(failed, spec.failedRow(in, err.Error()))
			result.ErrorCount++
			continue
		}

		if err := spec.insert(ctx, in); err != nil {
			failed = append(failed, spec.failedRow(in, err.Error()))
			result.ErrorCount++
			continue
		}

		result.SuccessCount++
	}

	if len(failed) > 0 {
		fileName, err := excel.Store(failedDir, spec.failedSheet, spec.failedCols, failed)
		if err != nil {
			return nil, err
		}
		result.FileName = &fileName
	}

	return result, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
