package sources

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"hotelorders/collections"
	"hotelorders/pivot"
)

// OrderRowsCollection holds order lines entered through the admin UI.
const OrderRowsCollection = collections.OrderRows

type orderRow struct {
	Date          string  `db:"date"`
	Hotel         string  `db:"hotel"`
	Vendor        string  `db:"vendor"`
	Vegetable     string  `db:"vegetable"`
	SecondaryName string  `db:"secondary_name"`
	Unit          string  `db:"unit"`
	Quantity      float64 `db:"quantity"`
}

// RecordSource reads order lines from the order_rows collection and lays
// them out as the sheet would.
type RecordSource struct {
	App core.App
}

// Load selects every order row, oldest first.
func (s RecordSource) Load(ctx context.Context) (pivot.RawTable, error) {
	var rows []orderRow
	err := s.App.DB().
		Select("date", "hotel", "vendor", "vegetable", "secondary_name", "unit", "quantity").
		From(OrderRowsCollection).
		OrderBy("sort_order ASC", "created ASC").
		WithContext(ctx).
		All(&rows)
	if err != nil {
		return pivot.RawTable{}, fmt.Errorf("query %s: %w", OrderRowsCollection, err)
	}

	values := make([][]string, 0, len(rows)+1)
	values = append(values, append([]string(nil), pivot.RequiredColumns...))
	for _, r := range rows {
		values = append(values, []string{
			r.Date, r.Hotel, r.Vendor, r.Vegetable, r.SecondaryName, r.Unit,
			cast.ToString(r.Quantity),
		})
	}
	return pivot.NewRawTable(values), nil
}
