package pivot

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Normalizer turns raw sheet rows into the record set for one date.
type Normalizer struct {
	// Layout overrides DateLayout when set.
	Layout string
	// Hotels canonicalizes hotel spellings. Nil keeps names as written,
	// trimmed.
	Hotels *HotelRegistry
}

// Normalize keeps the rows dated on target (time of day ignored) with a
// positive quantity. Rows with an unparseable date are skipped; quantities
// that are not numbers count as zero and are skipped too.
//
// It returns ErrEmptySource when the table has no rows at all and
// ErrNoMatchingRecords when nothing survives the filters.
func (n Normalizer) Normalize(table RawTable, target time.Time) (Records, error) {
	if table.Len() == 0 {
		return nil, ErrEmptySource
	}

	layout := n.Layout
	if layout == "" {
		layout = DateLayout
	}
	ty, tm, td := target.Date()

	var out Records
	for _, row := range table.Rows {
		date, err := time.Parse(layout, strings.TrimSpace(row[ColDate]))
		if err != nil {
			continue
		}
		if y, m, d := date.Date(); y != ty || m != tm || d != td {
			continue
		}

		qty := ParseQuantity(row[ColQuantity])
		if !qty.IsPositive() {
			continue
		}

		out = append(out, OrderRecord{
			Date:          date,
			Hotel:         n.Hotels.Canonical(row[ColHotel]),
			Vendor:        strings.TrimSpace(row[ColVendor]),
			Vegetable:     strings.TrimSpace(row[ColVegetable]),
			SecondaryName: strings.TrimSpace(row[ColSecondaryName]),
			Unit:          strings.TrimSpace(row[ColUnit]),
			Quantity:      qty,
		})
	}

	if len(out) == 0 {
		return nil, ErrNoMatchingRecords
	}
	return out, nil
}

// ParseQuantity reads a quantity cell. Anything that is not a number is 0.
func ParseQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
