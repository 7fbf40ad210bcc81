// Package pivot turns a flat log of hotel vegetable orders into
// vegetable-by-hotel grids, one for the whole day and one per vendor, plus a
// flat per-hotel extract.
package pivot

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column headers of the order sheet.
const (
	ColDate          = "DATE"
	ColHotel         = "MAIN HOTEL NAME"
	ColVendor        = "VENDOR"
	ColVegetable     = "PIVOT_VEGETABLE_NAME"
	ColSecondaryName = "TELUGU NAME"
	ColUnit          = "UNITS"
	ColQuantity      = "QUANTITY"
)

// RequiredColumns lists the headers the normalizer reads.
var RequiredColumns = []string{
	ColDate, ColHotel, ColVendor, ColVegetable, ColSecondaryName, ColUnit, ColQuantity,
}

// DateLayout is the day/month/year pattern of the DATE column. It accepts
// both "05/03/2025" and "5/3/2025".
const DateLayout = "2/1/2006"

var (
	// ErrEmptySource is returned when the fetched table has no data rows.
	ErrEmptySource = errors.New("source table has no rows")
	// ErrNoMatchingRecords is returned when rows exist but none survive the
	// date and quantity filters.
	ErrNoMatchingRecords = errors.New("no orders found for the selected date")
)

// RawRow maps a column header to the untyped cell text of one row.
type RawRow map[string]string

// RawTable is the fetched order sheet: its header plus every data row.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// NewRawTable builds a RawTable from sheet values whose first row is the
// header. Short rows are padded with empty cells.
func NewRawTable(values [][]string) RawTable {
	if len(values) == 0 {
		return RawTable{}
	}

	header := make([]string, len(values[0]))
	for i, h := range values[0] {
		header[i] = strings.TrimSpace(h)
	}

	rows := make([]RawRow, 0, len(values)-1)
	for _, v := range values[1:] {
		row := make(RawRow, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(v) {
				row[col] = v[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return RawTable{Columns: header, Rows: rows}
}

// Len returns the number of data rows.
func (t RawTable) Len() int { return len(t.Rows) }

// Distinct returns the distinct non-empty trimmed values of a column.
func (t RawTable) Distinct(col string) []string {
	seen := make(map[string]struct{})
	for _, r := range t.Rows {
		if v := strings.TrimSpace(r[col]); v != "" {
			seen[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// OrderRecord is one normalized order line.
type OrderRecord struct {
	Date          time.Time
	Hotel         string
	Vendor        string
	Vegetable     string
	SecondaryName string
	Unit          string
	Quantity      decimal.Decimal
}

// Key returns the grouping key of the record.
func (r OrderRecord) Key() VegetableUnitKey {
	return VegetableUnitKey{Vegetable: r.Vegetable, Unit: r.Unit}
}

// Records is a normalized record set; every pivot is computed over one.
type Records []OrderRecord

// Hotels returns the distinct hotel names in first-seen order.
func (rs Records) Hotels() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rs {
		if _, ok := seen[r.Hotel]; ok {
			continue
		}
		seen[r.Hotel] = struct{}{}
		out = append(out, r.Hotel)
	}
	return out
}

// Vendors returns the distinct non-empty vendor names, sorted.
func (rs Records) Vendors() []string {
	seen := make(map[string]struct{})
	for _, r := range rs {
		if r.Vendor != "" {
			seen[r.Vendor] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Vegetables returns the number of distinct vegetable names.
func (rs Records) Vegetables() int {
	seen := make(map[string]struct{})
	for _, r := range rs {
		seen[r.Vegetable] = struct{}{}
	}
	return len(seen)
}

// Filter returns the records for which keep reports true.
func (rs Records) Filter(keep func(OrderRecord) bool) Records {
	var out Records
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// ForVendor scopes the set to one vendor.
func (rs Records) ForVendor(vendor string) Records {
	return rs.Filter(func(r OrderRecord) bool { return r.Vendor == vendor })
}

// ForHotel scopes the set to one hotel.
func (rs Records) ForHotel(hotel string) Records {
	return rs.Filter(func(r OrderRecord) bool { return r.Hotel == hotel })
}
