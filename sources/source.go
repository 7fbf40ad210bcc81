// Package sources loads the raw order sheet from Google Sheets, a local
// workbook or CSV file, or the order_rows collection, and caches it.
package sources

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"hotelorders/pivot"
)

// Source loads the whole order sheet, header first.
type Source interface {
	Load(ctx context.Context) (pivot.RawTable, error)
}

// Kinds accepted by New.
const (
	KindSheets     = "sheets"
	KindXLSX       = "xlsx"
	KindCSV        = "csv"
	KindPocketBase = "pocketbase"
)

// valuesToTable converts untyped sheet cells to a raw table. Numbers and
// booleans are printed; nil cells become empty strings.
func valuesToTable(values [][]interface{}) pivot.RawTable {
	rows := make([][]string, len(values))
	for i, line := range values {
		rows[i] = make([]string, len(line))
		for j, v := range line {
			rows[i][j] = cast.ToString(v)
		}
	}
	return pivot.NewRawTable(rows)
}

// checkColumns reports the first required header missing from t.
func checkColumns(t pivot.RawTable) error {
	have := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		have[c] = true
	}
	for _, c := range pivot.RequiredColumns {
		if !have[c] {
			return fmt.Errorf("order sheet is missing column %q", c)
		}
	}
	return nil
}
