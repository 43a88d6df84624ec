// Package testutil provides shared helpers for building test fixtures.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes rows to a single-sheet workbook under dir and returns
// the file path. Cell layout mirrors the slice: rows[r][c] lands in row r+1,
// column c+1.
func WriteXLSX(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("failed to name cell %d,%d: %v", r, c, err)
			}
			if err := f.SetCellValue(sheet, cellName, value); err != nil {
				t.Fatalf("failed to set cell %s: %v", cellName, err)
			}
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close workbook: %v", err)
	}

	return path
}

// ReadXLSX returns every row of the first sheet of a workbook.
func ReadXLSX(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open workbook %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		t.Fatalf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		t.Fatalf("failed to read workbook %s: %v", path, err)
	}

	return rows
}
