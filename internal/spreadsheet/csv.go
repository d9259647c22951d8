package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

const utf8BOM = "\ufeff"

// recordsReader feeds already-split records to gocsv.
type recordsReader struct {
	records [][]string
	pos     int
}

func (r *recordsReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordsReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}

// parseCSV reads the CSV rendition of a price list: record 1 carries the
// update date and time in its second and third fields, the rest are products.
func parseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return &Result{Products: []Product{}}, nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	info := NewUpdateInfo(field(header, 1), field(header, 2))

	// gocsv maps fields by position and needs every record to be exactly as wide as Product
	body := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, productColumns)
		copy(row, rec)
		body = append(body, row)
	}
	if len(body) == 0 {
		return &Result{Products: []Product{}, UpdateInfo: info}, nil
	}

	var rows []Product
	if err := gocsv.UnmarshalCSVWithoutHeaders(&recordsReader{records: body}, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode csv rows: %w", err)
	}

	products := make([]Product, 0, len(rows))
	for _, p := range rows {
		p = trimProduct(p)
		if p.Naziv == "" && p.ProdazhnaCena == "" {
			continue
		}
		products = append(products, p)
	}

	return &Result{Products: products, UpdateInfo: info}, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func trimProduct(p Product) Product {
	return productFromRow([]string{
		p.Naziv, p.ProdazhnaCena, p.EdinichnaCena, p.Opis, p.Dostapnost,
		p.RedovnaCena, p.CenaSoPopust, p.VidNaPopust, p.VremetraenjeNaPopust,
	})
}
