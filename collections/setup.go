// Package collections creates the PocketBase collections the app stores
// order lines in and seeds demo data.
package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

// OrderRows is the collection of hand-entered order lines. Its text fields
// mirror the columns of the order sheet.
const OrderRows = "order_rows"

// Setup creates the order_rows collection if it does not exist yet.
func Setup(app core.App) error {
	_, err := ensureCollection(app, OrderRows, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "date", Required: true, Pattern: `^\d{1,2}/\d{1,2}/\d{4}$`})
		c.Fields.Add(&core.TextField{Name: "hotel", Required: true})
		c.Fields.Add(&core.TextField{Name: "vendor", Required: false})
		c.Fields.Add(&core.TextField{Name: "vegetable", Required: true})
		c.Fields.Add(&core.TextField{Name: "secondary_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_order_rows_date", false, "date", "")
	})
	return err
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}
	return collection, nil
}
