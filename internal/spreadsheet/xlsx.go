package spreadsheet

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	dateCell = "B1"
	timeCell = "C1"

	// DateLayout is how converted date serials are rendered.
	DateLayout = "02.01.2006"
)

func parseWorkbook(r io.Reader) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	sheet := sheets[0]

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	dateCellValue, err := readHeaderCell(f, sheet, dateCell)
	if err != nil {
		return nil, err
	}
	timeCellValue, err := readHeaderCell(f, sheet, timeCell)
	if err != nil {
		return nil, err
	}

	date := dateCellValue.text
	switch {
	case dateCellValue.when != nil:
		date = dateCellValue.when.Format(DateLayout)
	case dateCellValue.serial != nil:
		if t, err := excelize.ExcelDateToTime(*dateCellValue.serial, date1904); err == nil {
			date = t.Format(DateLayout)
		}
	}

	clock := timeCellValue.text
	switch {
	case timeCellValue.when != nil:
		clock = timeCellValue.when.Format("15:04")
	case timeCellValue.serial != nil:
		clock = FormatDayFraction(*timeCellValue.serial)
	}

	// raw values keep numbers as stored (120, not "120.00" from a cell format)
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var body [][]string
	if len(rows) > 1 {
		body = rows[1:]
	}

	return &Result{
		Products:   productsFromRows(body),
		UpdateInfo: NewUpdateInfo(date, clock),
	}, nil
}

// headerValue is a metadata cell. serial is set for numeric cells,
// when for ISO 8601 date cells.
type headerValue struct {
	text   string
	serial *float64
	when   *time.Time
}

func readHeaderCell(f *excelize.File, sheet, cell string) (headerValue, error) {
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return headerValue{}, fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	v := headerValue{text: strings.TrimSpace(raw)}

	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return headerValue{}, fmt.Errorf("failed to read cell type %s: %w", cell, err)
	}

	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(v.text, 64); err == nil {
			v.serial = &n
		}
	case excelize.CellTypeDate:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if t, err := time.Parse(layout, v.text); err == nil {
				v.when = &t
				break
			}
		}
	}

	return v, nil
}

// FormatDayFraction renders the fractional part of a day serial as HH:MM.
func FormatDayFraction(serial float64) string {
	frac := serial - math.Floor(serial)
	totalSeconds := int(math.Round(frac*86400)) % 86400
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}
