package pivot

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FormatQuantity renders a summed quantity with its unit: "12.5 kg".
// Every cell of every report goes through here.
func FormatQuantity(sum decimal.Decimal, unit string) string {
	if unit == "" {
		return sum.String()
	}
	return sum.String() + " " + unit
}

// Amount is a summed quantity in one unit.
type Amount struct {
	Sum  decimal.Decimal
	Unit string
}

func (a Amount) String() string { return FormatQuantity(a.Sum, a.Unit) }

// MarshalJSON encodes the amount as its formatted text.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}
