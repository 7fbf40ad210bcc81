package pivot

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// VendorPivot is the grid of one vendor.
type VendorPivot struct {
	Vendor string     `json:"vendor"`
	Table  PivotTable `json:"table"`
}

// VendorPivotTable holds one grid per vendor, vendors in alphabetical order.
type VendorPivotTable []VendorPivot

// Get returns the grid of vendor.
func (v VendorPivotTable) Get(vendor string) (PivotTable, bool) {
	for _, vp := range v {
		if vp.Vendor == vendor {
			return vp.Table, true
		}
	}
	return PivotTable{}, false
}

// ExtractItem is one line of a hotel's order list.
type ExtractItem struct {
	DisplayName   string `json:"display_name"`
	SecondaryName string `json:"secondary_name"`
	Quantity      Amount `json:"quantity"`
}

// HotelExtract is the order list of one hotel. An extract without items is
// the "no data" section of a hotel that ordered nothing.
type HotelExtract struct {
	Hotel string        `json:"hotel"`
	Items []ExtractItem `json:"items"`
}

// Empty reports whether the hotel has nothing listed.
func (h HotelExtract) Empty() bool { return len(h.Items) == 0 }

// ExtractHotel lists what hotel ordered in records, disambiguating units
// within that hotel's rows only.
func ExtractHotel(records Records, hotel string, policy ColumnPolicy) HotelExtract {
	table := BuildPivot(records.ForHotel(hotel), policy)
	out := HotelExtract{Hotel: hotel, Items: make([]ExtractItem, 0, len(table.Rows))}
	for _, row := range table.Rows {
		if row.Total.Sum.IsZero() {
			continue
		}
		out.Items = append(out.Items, ExtractItem{
			DisplayName:   row.DisplayName,
			SecondaryName: row.SecondaryName,
			Quantity:      row.Total,
		})
	}
	return out
}

// Builder computes every pivot of a record set. Per-vendor and per-hotel
// work runs on up to Workers goroutines; results keep their sorted order
// whatever the completion order.
type Builder struct {
	Policy  ColumnPolicy
	Workers int
}

// Vegetables builds the whole-day grid.
func (b Builder) Vegetables(records Records) PivotTable {
	return BuildPivot(records, b.Policy)
}

// Vendors builds one grid per vendor. Rows without a vendor are left out.
func (b Builder) Vendors(ctx context.Context, records Records) (VendorPivotTable, error) {
	vendors := records.Vendors()
	out := make(VendorPivotTable, len(vendors))
	err := b.fanOut(ctx, len(vendors), func(i int) {
		out[i] = VendorPivot{
			Vendor: vendors[i],
			Table:  BuildPivot(records.ForVendor(vendors[i]), b.Policy),
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Hotels builds one extract per name in hotels, in that order. Hotels with
// no rows get an empty extract.
func (b Builder) Hotels(ctx context.Context, records Records, hotels []string) ([]HotelExtract, error) {
	out := make([]HotelExtract, len(hotels))
	err := b.fanOut(ctx, len(hotels), func(i int) {
		out[i] = ExtractHotel(records, hotels[i], b.Policy)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b Builder) fanOut(ctx context.Context, n int, build func(i int)) error {
	g, gctx := errgroup.WithContext(ctx)
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			build(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
