package collections

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// SeedDateLayout is how seeded rows write their date, matching the sheet.
const SeedDateLayout = "02/01/2006"

type orderDef struct {
	hotel         string
	vendor        string
	vegetable     string
	secondaryName string
	unit          string
	quantity      float64
}

var demoOrders = []orderDef{
	{"Novotel", "Sri Lakshmi Traders", "Tomato", "టమాటా", "kg", 25},
	{"Novotel", "Sri Lakshmi Traders", "Onion", "ఉల్లిపాయ", "kg", 18},
	{"Novotel", "Ramu Vegetables", "Coriander", "కొత్తిమీర", "bunch", 12},
	{"Grandbay", "Sri Lakshmi Traders", "Tomato", "టమాటా", "kg", 15.5},
	{"Grandbay", "Ramu Vegetables", "Green Chilli", "పచ్చిమిర్చి", "kg", 3},
	{"Grandbay", "Ramu Vegetables", "Potato", "బంగాళాదుంప", "kg", 20},
	{"Radisson", "Sri Lakshmi Traders", "Tomato", "టమాటా", "box", 2},
	{"Radisson", "Ramu Vegetables", "Carrot", "క్యారెట్", "kg", 8},
	{"Bheemili", "Ramu Vegetables", "Onion", "ఉల్లిపాయ", "kg", 10},
	{"Park Inn", "Sri Lakshmi Traders", "Potato", "బంగాళాదుంప", "kg", 6},
	{"Park Inn", "", "Lemon", "నిమ్మకాయ", "pcs", 40},
}

// Seed inserts a day of demo orders dated day into an empty order_rows
// collection. A collection holding any row is left alone.
func Seed(app core.App, day time.Time) error {
	col, err := app.FindCollectionByNameOrId(OrderRows)
	if err != nil {
		return fmt.Errorf("seed: could not find %s collection: %w", OrderRows, err)
	}

	n, err := app.CountRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not count %s: %w", OrderRows, err)
	}
	if n > 0 {
		return nil // already has data
	}

	date := day.Format(SeedDateLayout)

	return app.RunInTransaction(func(tx core.App) error {
		for i, d := range demoOrders {
			r := core.NewRecord(col)
			r.Set("date", date)
			r.Set("hotel", d.hotel)
			r.Set("vendor", d.vendor)
			r.Set("vegetable", d.vegetable)
			r.Set("secondary_name", d.secondaryName)
			r.Set("unit", d.unit)
			r.Set("quantity", d.quantity)
			r.Set("sort_order", i+1)
			if err := tx.Save(r); err != nil {
				return fmt.Errorf("seed: save order %s/%s: %w", d.hotel, d.vegetable, err)
			}
		}
		return nil
	})
}
