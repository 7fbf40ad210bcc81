// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"hotelorders/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	t.Cleanup(func() { _ = app.ResetBootstrapState() })

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// OrderRow is one line to insert with CreateOrderRow.
type OrderRow struct {
	Date          string
	Hotel         string
	Vendor        string
	Vegetable     string
	SecondaryName string
	Unit          string
	Quantity      float64
}

// CreateOrderRow saves an order_rows record and returns it.
func CreateOrderRow(t *testing.T, app core.App, row OrderRow) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.OrderRows)
	if err != nil {
		t.Fatalf("failed to find order_rows collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("date", row.Date)
	record.Set("hotel", row.Hotel)
	record.Set("vendor", row.Vendor)
	record.Set("vegetable", row.Vegetable)
	record.Set("secondary_name", row.SecondaryName)
	record.Set("unit", row.Unit)
	record.Set("quantity", row.Quantity)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test order row: %v", err)
	}

	return record
}

// AssertRowCount checks how many order_rows carry the given date text.
func AssertRowCount(t *testing.T, app core.App, date string, want int) {
	t.Helper()

	n, err := app.CountRecords(collections.OrderRows, dbx.HashExp{"date": date})
	if err != nil {
		t.Fatalf("failed to count order rows: %v", err)
	}
	if int(n) != want {
		t.Errorf("order rows on %s = %d, want %d", date, n, want)
	}
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
