package collections_test

import (
	"testing"
	"time"

	"hotelorders/collections"
	"hotelorders/testhelpers"
)

var seedDay = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, seedDay); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId(collections.OrderRows)
	rows, err := app.FindAllRecords(col)
	if err != nil {
		t.Fatalf("query order_rows error: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected seeded order rows")
	}
	for _, r := range rows {
		if r.GetString("date") != "05/03/2025" {
			t.Errorf("row date = %q, want 05/03/2025", r.GetString("date"))
		}
		if r.GetFloat("quantity") <= 0 {
			t.Errorf("row %s has non-positive quantity", r.GetString("vegetable"))
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, seedDay); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	col, _ := app.FindCollectionByNameOrId(collections.OrderRows)
	first, _ := app.FindAllRecords(col)

	if err := collections.Seed(app, seedDay); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	second, _ := app.FindAllRecords(col)
	if len(second) != len(first) {
		t.Errorf("second Seed() added rows: %d -> %d", len(first), len(second))
	}
}

func TestSeed_LeavesExistingDataAlone(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	testhelpers.CreateOrderRow(t, app, testhelpers.OrderRow{
		Date: "04/03/2025", Hotel: "Novotel", Vendor: "Sita", Vegetable: "Tomato", Unit: "kg", Quantity: 7,
	})

	// Real orders exist but none for the seed day yet.
	if err := collections.Seed(app, seedDay); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	total, err := app.CountRecords(collections.OrderRows)
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if total != 1 {
		t.Errorf("rows after Seed() = %d, want 1", total)
	}
	testhelpers.AssertRowCount(t, app, "05/03/2025", 0)
}
