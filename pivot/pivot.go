package pivot

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// VegetableUnitKey identifies one row of a pivot.
type VegetableUnitKey struct {
	Vegetable string
	Unit      string
}

// DisplayNames names every key present in scope. A vegetable ordered under
// a single unit keeps its bare name; otherwise each unit gets
// "Vegetable (unit)". The result depends on the scope, so it is recomputed
// for every pivot.
func DisplayNames(scope Records) map[VegetableUnitKey]string {
	units := make(map[string]map[string]struct{})
	for _, r := range scope {
		if units[r.Vegetable] == nil {
			units[r.Vegetable] = make(map[string]struct{})
		}
		units[r.Vegetable][r.Unit] = struct{}{}
	}

	names := make(map[VegetableUnitKey]string)
	for veg, set := range units {
		for unit := range set {
			key := VegetableUnitKey{Vegetable: veg, Unit: unit}
			if len(set) > 1 {
				names[key] = fmt.Sprintf("%s (%s)", veg, unit)
			} else {
				names[key] = veg
			}
		}
	}
	return names
}

// PivotRow is one vegetable+unit line of a grid.
type PivotRow struct {
	Key           VegetableUnitKey  `json:"-"`
	DisplayName   string            `json:"display_name"`
	SecondaryName string            `json:"secondary_name"`
	PerHotel      map[string]Amount `json:"per_hotel"`
	Total         Amount            `json:"total"`
}

// Cell returns the amount for hotel, "0 unit" when the hotel is not a
// column of the table.
func (r PivotRow) Cell(hotel string) Amount {
	if a, ok := r.PerHotel[hotel]; ok {
		return a
	}
	return Amount{Unit: r.Key.Unit}
}

// PivotTable is a vegetable-by-hotel grid. Every row has a cell for every
// hotel in Hotels.
type PivotTable struct {
	Hotels []string   `json:"hotels"`
	Rows   []PivotRow `json:"rows"`
}

// Empty reports whether the table has no rows.
func (t PivotTable) Empty() bool { return len(t.Rows) == 0 }

type rowSums struct {
	perHotel  map[string]decimal.Decimal
	secondary string
}

// BuildPivot aggregates scope into a grid whose columns come from policy.
// Rows are sorted by display name; cells with nothing ordered read "0 unit".
func BuildPivot(scope Records, policy ColumnPolicy) PivotTable {
	hotels := policy.Columns(scope)
	names := DisplayNames(scope)

	sums := make(map[VegetableUnitKey]*rowSums)
	for _, r := range scope {
		k := r.Key()
		s, ok := sums[k]
		if !ok {
			s = &rowSums{perHotel: make(map[string]decimal.Decimal)}
			sums[k] = s
		}
		s.perHotel[r.Hotel] = s.perHotel[r.Hotel].Add(r.Quantity)
		s.secondary = pickSecondary(s.secondary, r.SecondaryName)
	}

	rows := make([]PivotRow, 0, len(sums))
	for k, s := range sums {
		row := PivotRow{
			Key:           k,
			DisplayName:   names[k],
			SecondaryName: s.secondary,
			PerHotel:      make(map[string]Amount, len(hotels)),
		}
		total := decimal.Zero
		for _, h := range hotels {
			sum := s.perHotel[h]
			row.PerHotel[h] = Amount{Sum: sum, Unit: k.Unit}
			total = total.Add(sum)
		}
		row.Total = Amount{Sum: total, Unit: k.Unit}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		if a.Key.Vegetable != b.Key.Vegetable {
			return a.Key.Vegetable < b.Key.Vegetable
		}
		return a.Key.Unit < b.Key.Unit
	})

	return PivotTable{Hotels: hotels, Rows: rows}
}

// pickSecondary keeps the smallest non-empty secondary name so the choice
// does not depend on row order.
func pickSecondary(cur, next string) string {
	if next == "" {
		return cur
	}
	if cur == "" || next < cur {
		return next
	}
	return cur
}
