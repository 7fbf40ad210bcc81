package pivot

import (
	"errors"
	"testing"
	"time"
)

var sheetHeader = []string{"DATE", "MAIN HOTEL NAME", "VENDOR", "PIVOT_VEGETABLE_NAME", "TELUGU NAME", "UNITS", "QUANTITY"}

func sheet(rows ...[]string) RawTable {
	return NewRawTable(append([][]string{sheetHeader}, rows...))
}

func TestNewRawTable_PadsShortRows(t *testing.T) {
	table := NewRawTable([][]string{
		{" DATE ", "QUANTITY", "UNITS"},
		{"05/03/2025"},
	})
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	row := table.Rows[0]
	if row["DATE"] != "05/03/2025" {
		t.Errorf("DATE = %q", row["DATE"])
	}
	if v, ok := row["UNITS"]; !ok || v != "" {
		t.Errorf("UNITS = %q, %v; want empty and present", v, ok)
	}
}

func TestNormalize_FiltersRows(t *testing.T) {
	table := sheet(
		[]string{"05/03/2025", "NOVOTEL", "Ravi", "Tomato", "టమాటా", "kg", "5"},
		[]string{"5/3/2025", "Novotel", "Ravi", "Onion", "", "kg", "2.50"},
		[]string{"06/03/2025", "Novotel", "Ravi", "Tomato", "", "kg", "9"},
		[]string{"2025-03-05", "Novotel", "Ravi", "Tomato", "", "kg", "9"},
		[]string{"05/03/2025", "Novotel", "Ravi", "Beans", "", "kg", "0"},
		[]string{"05/03/2025", "Novotel", "Ravi", "Beans", "", "kg", "-3"},
		[]string{"05/03/2025", "Novotel", "Ravi", "Beans", "", "kg", "lots"},
		[]string{"05/03/2025", " GRAND  BAY ", " Sita ", " Carrot ", "", " box ", " 4 "},
	)

	n := Normalizer{Hotels: DefaultHotelRegistry()}
	got, err := n.Normalize(table, testDay.Add(15*time.Hour))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Normalize() kept %d rows, want 3: %+v", len(got), got)
	}

	if got[0].Hotel != "Novotel" || got[0].SecondaryName != "టమాటా" {
		t.Errorf("row 0 = %+v", got[0])
	}
	if got[1].Quantity.String() != "2.5" {
		t.Errorf("row 1 quantity = %s, want 2.5", got[1].Quantity)
	}
	last := got[2]
	if last.Hotel != "Grandbay" || last.Vendor != "Sita" || last.Vegetable != "Carrot" || last.Unit != "box" {
		t.Errorf("row 2 not trimmed/canonicalized: %+v", last)
	}
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		table RawTable
		want  error
	}{
		{"no rows", sheet(), ErrEmptySource},
		{"nothing at all", RawTable{}, ErrEmptySource},
		{"other dates only", sheet([]string{"04/03/2025", "Novotel", "Ravi", "Tomato", "", "kg", "5"}), ErrNoMatchingRecords},
		{"zero quantities only", sheet([]string{"05/03/2025", "Novotel", "Ravi", "Tomato", "", "kg", "0"}), ErrNoMatchingRecords},
		{"bad dates only", sheet([]string{"31/02/2025", "Novotel", "Ravi", "Tomato", "", "kg", "5"}), ErrNoMatchingRecords},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalizer{}.Normalize(tt.table, testDay)
			if !errors.Is(err, tt.want) {
				t.Errorf("Normalize() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5", "5"},
		{" 2.50 ", "2.5"},
		{"-3", "-3"},
		{"", "0"},
		{"abc", "0"},
		{"1e2", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseQuantity(tt.in).String(); got != tt.want {
				t.Errorf("ParseQuantity(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
