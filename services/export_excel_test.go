package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"hotelorders/pivot"
)

func TestExcelRenderer_Combined(t *testing.T) {
	veg := pivot.PivotTable{
		Hotels: []string{"Novotel"},
		Rows: []pivot.PivotRow{{
			DisplayName:   "Tomato",
			SecondaryName: "Tamata",
			PerHotel:      map[string]pivot.Amount{"Novotel": amount(10, "kg")},
			Total:         amount(10, "kg"),
		}},
	}
	vendors := pivot.VendorPivotTable{{Vendor: "Sita", Table: veg}, {Vendor: "Ravi/Co", Table: veg}}

	result, err := ExcelRenderer{}.Render(Assembler{}.Combined(testDate, veg, vendors))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	want := []string{"Vegetables", "Sita", "Ravi-Co"}
	sheets := f.GetSheetList()
	if strings.Join(sheets, ",") != strings.Join(want, ",") {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}

	title, _ := f.GetCellValue("Vegetables", "A1")
	if title != "Complete Order Summary Report - 2025-03-05" {
		t.Errorf("A1 = %q", title)
	}

	rows, err := f.GetRows("Sita")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var found bool
	for _, r := range rows {
		if len(r) == 4 && r[0] == "Tomato" && r[1] == "Tamata" && r[2] == "10 kg" && r[3] == "10 kg" {
			found = true
		}
	}
	if !found {
		t.Errorf("Tomato row missing from vendor sheet: %v", rows)
	}
}

func TestExcelRenderer_EmptyDocument(t *testing.T) {
	result, err := ExcelRenderer{}.Render(Document{Title: "Nothing"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "Page 1" {
		t.Errorf("sheets = %v, want [Page 1]", sheets)
	}
}

func TestUniqueSheetName(t *testing.T) {
	used := map[string]bool{}
	long := strings.Repeat("x", 40)

	tests := []struct {
		in   string
		want string
	}{
		{"Sita", "Sita"},
		{"sita", "sita (2)"},
		{"A/B:C", "A-B-C"},
		{"", "Sheet"},
		{long, strings.Repeat("x", 31)},
		{long, strings.Repeat("x", 27) + " (2)"},
	}
	for _, tt := range tests {
		if got := uniqueSheetName(tt.in, used); got != tt.want {
			t.Errorf("uniqueSheetName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"normal text", "Hello", "Hello"},
		{"quantity", "10 kg", "10 kg"},
		{"starts with equals", "=SUM(A1:A10)", "'=SUM(A1:A10)"},
		{"starts with plus", "+1234", "'+1234"},
		{"starts with minus", "-100", "'-100"},
		{"starts with at", "@import", "'@import"},
		{"starts with tab", "\tdata", "'\tdata"},
		{"starts with pipe", "|command", "'|command"},
		{"starts with carriage return", "\rdata", "'\rdata"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeExcelCell(tt.input)
			if got != tt.want {
				t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestThinBorders(t *testing.T) {
	borders := thinBorders()
	if len(borders) != 4 {
		t.Errorf("thinBorders() returned %d borders, want 4", len(borders))
	}

	sides := map[string]bool{"left": false, "top": false, "bottom": false, "right": false}
	for _, b := range borders {
		sides[b.Type] = true
		if b.Style != 1 {
			t.Errorf("border %s style = %d, want 1 (thin)", b.Type, b.Style)
		}
	}
	for side, found := range sides {
		if !found {
			t.Errorf("missing border side: %s", side)
		}
	}
}
