package pivot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testDay = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

func rec(hotel, vendor, veg, unit string, qty int64) OrderRecord {
	return OrderRecord{
		Date:      testDay,
		Hotel:     hotel,
		Vendor:    vendor,
		Vegetable: veg,
		Unit:      unit,
		Quantity:  decimal.NewFromInt(qty),
	}
}

// grid flattens a table to header + formatted rows for comparisons.
func grid(t PivotTable) [][]string {
	out := [][]string{append([]string{"name"}, append(t.Hotels, "total")...)}
	for _, r := range t.Rows {
		line := []string{r.DisplayName}
		for _, h := range t.Hotels {
			line = append(line, r.PerHotel[h].String())
		}
		out = append(out, append(line, r.Total.String()))
	}
	return out
}

type fixedColumns []string

func (f fixedColumns) Columns(Records) []string { return f }
