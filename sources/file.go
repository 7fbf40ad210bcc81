package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"hotelorders/pivot"
)

// XLSXSource reads the order sheet from a local workbook. Sheet selects the
// tab; empty means the first one.
type XLSXSource struct {
	Path  string
	Sheet string
}

// Load reads the workbook from disk.
func (s XLSXSource) Load(ctx context.Context) (pivot.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return pivot.RawTable{}, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return pivot.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return parseExcel(f, s.Sheet)
}

// CSVSource reads the order sheet from a CSV export.
type CSVSource struct {
	Path string
}

// Load reads the CSV file from disk.
func (s CSVSource) Load(ctx context.Context) (pivot.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return pivot.RawTable{}, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return pivot.RawTable{}, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return parseCSV(f)
}

// parseCSV reads a CSV file whose first row is the header.
func parseCSV(r io.Reader) (pivot.RawTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return pivot.RawTable{}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return checkedTable(allRows)
}

// parseExcel reads one sheet of an xlsx file whose first row is the header.
func parseExcel(r io.Reader, sheet string) (pivot.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return pivot.RawTable{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return pivot.RawTable{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return checkedTable(rows)
}

func checkedTable(rows [][]string) (pivot.RawTable, error) {
	table := pivot.NewRawTable(rows)
	if len(table.Columns) > 0 {
		if err := checkColumns(table); err != nil {
			return pivot.RawTable{}, err
		}
	}
	return table, nil
}
