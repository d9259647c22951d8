// Package spreadsheettest builds price-list workbooks for tests.
package spreadsheettest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet describes a price list: the B1/C1 header values and the product rows
// written from row 2 on.
type Sheet struct {
	Date any
	Time any
	Rows [][]any
}

// ThreeRows is a small price list used across packages.
var ThreeRows = Sheet{
	Date: 46314.0, // 19.10.2026
	Time: 0.6875,  // 16:30
	Rows: [][]any{
		{"Milk", 120, 60, "1L whole milk", "Да", 130, 110, "Процент", "7 дена"},
		{"Bread", 45, 45, "", "Да"},
		{"Cheese", 520.5, 260.25},
	},
}

// Build renders the sheet as an xlsx workbook.
func Build(t testing.TB, s Sheet) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	if s.Date != nil {
		if err := f.SetCellValue(sheet, "B1", s.Date); err != nil {
			t.Fatalf("set B1: %v", err)
		}
	}
	if s.Time != nil {
		if err := f.SetCellValue(sheet, "C1", s.Time); err != nil {
			t.Fatalf("set C1: %v", err)
		}
	}

	for i, row := range s.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

// WriteFile saves the sheet as dir/name and returns the full path.
func WriteFile(t testing.TB, dir, name string, s Sheet) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(t, s).Bytes(), 0o644); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
	return path
}

// Rows returns n distinct product rows named Product1..Productn.
func Rows(n int) [][]any {
	rows := make([][]any, n)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("Product%d", i+1), (i + 1) * 10}
	}
	return rows
}
