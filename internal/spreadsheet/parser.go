// Package spreadsheet turns an uploaded price list into product records.
//
// The layout is fixed: the first sheet carries the update date in B1 and the
// update time in C1, and every row from row 2 on is one product with its
// fields in columns A through I.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned for file extensions the parser cannot read
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrNoSheets is returned when a workbook has no worksheets
	ErrNoSheets = errors.New("spreadsheet has no sheets")
)

// Product is one listing row. Every field is the trimmed text of its column.
type Product struct {
	Naziv                string `json:"naziv" csv:"naziv"`
	ProdazhnaCena        string `json:"prodazhnaCena" csv:"prodazhnaCena"`
	EdinichnaCena        string `json:"edinichnaCena" csv:"edinichnaCena"`
	Opis                 string `json:"opis" csv:"opis"`
	Dostapnost           string `json:"dostapnost" csv:"dostapnost"`
	RedovnaCena          string `json:"redovnaCena" csv:"redovnaCena"`
	CenaSoPopust         string `json:"cenaSoPopust" csv:"cenaSoPopust"`
	VidNaPopust          string `json:"vidNaPopust" csv:"vidNaPopust"`
	VremetraenjeNaPopust string `json:"vremetraenjeNaPopust" csv:"vremetraenjeNaPopust"`
}

// productColumns is the number of positional columns mapped onto Product.
const productColumns = 9

// UpdateInfo is the display-only "last updated" stamp of a price list.
type UpdateInfo struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Formatted string `json:"formatted"`
}

// Result is the outcome of parsing one spreadsheet.
type Result struct {
	Products   []Product  `json:"products"`
	UpdateInfo UpdateInfo `json:"updateInfo"`
}

// NewUpdateInfo builds an UpdateInfo, joining the non-empty parts for Formatted.
func NewUpdateInfo(date, clock string) UpdateInfo {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	var parts []string
	for _, p := range []string{date, clock} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return UpdateInfo{
		Date:      date,
		Time:      clock,
		Formatted: strings.Join(parts, " "),
	}
}

// Supported reports whether name has an extension the parser can read.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", ".csv":
		return true
	}
	return false
}

// ParseFile parses the spreadsheet at path.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	return Parse(f, filepath.Base(path))
}

// Parse reads a spreadsheet from r. The format is picked from name's extension.
func Parse(r io.Reader, name string) (*Result, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return parseWorkbook(r)
	case ".csv":
		return parseCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// productsFromRows maps raw rows onto products, dropping rows that have
// neither a name nor a sale price.
func productsFromRows(rows [][]string) []Product {
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		p := productFromRow(row)
		if p.Naziv == "" && p.ProdazhnaCena == "" {
			continue
		}
		products = append(products, p)
	}
	return products
}

func productFromRow(row []string) Product {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	return Product{
		Naziv:                col(0),
		ProdazhnaCena:        col(1),
		EdinichnaCena:        col(2),
		Opis:                 col(3),
		Dostapnost:           col(4),
		RedovnaCena:          col(5),
		CenaSoPopust:         col(6),
		VidNaPopust:          col(7),
		VremetraenjeNaPopust: col(8),
	}
}
