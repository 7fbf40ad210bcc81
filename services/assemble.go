package services

import (
	"fmt"
	"time"

	"hotelorders/pivot"
)

// landscapeWidth is the usable table width of a landscape A4 page, in
// inches.
const landscapeWidth = 14.5

// Assembler lays out pivots as report documents. It never reads raw rows.
type Assembler struct {
	// SecondaryLabel heads the secondary-name column.
	SecondaryLabel string
}

func (a Assembler) secondaryLabel() string {
	if a.SecondaryLabel == "" {
		return "Telugu Name"
	}
	return a.SecondaryLabel
}

// Combined lays out the vegetable-wise grid followed by one page per vendor.
func (a Assembler) Combined(date time.Time, vegetables pivot.PivotTable, vendors pivot.VendorPivotTable) Document {
	doc := Document{
		Title:     fmt.Sprintf("Complete Order Summary Report - %s", DisplayDate(date)),
		Landscape: true,
	}
	add := func(b ...Block) { doc.Blocks = append(doc.Blocks, b...) }

	add(Heading{Text: doc.Title, Style: StyleTitle}, Spacer{Height: 6})
	add(Heading{Text: "SECTION 1: VEGETABLE-WISE ORDER SUMMARY", Style: StyleSection})
	if vegetables.Empty() {
		add(Paragraph{Text: "No vegetable data available for the selected date.", Style: StyleBody})
	} else {
		add(a.pivotTable("Vegetables", vegetables, "Total Quantity", 1.0, AccentBlue))
	}

	add(PageBreak{})
	add(Heading{Text: "SECTION 2: VENDOR-WISE ORDER SUMMARY", Style: StyleSection}, Spacer{Height: 4})
	if len(vendors) == 0 {
		add(Paragraph{Text: "No vendor data available for the selected date.", Style: StyleBody})
	}
	for i, vp := range vendors {
		if i > 0 {
			add(PageBreak{})
		}
		add(Heading{Text: "Vendor: " + vp.Vendor, Style: StyleSubsection})
		add(a.pivotTable(vp.Vendor, vp.Table, "Total", 0.9, AccentGreen), Spacer{Height: 6})
	}
	return doc
}

// Hotels lays out one page per hotel extract, in the given order.
func (a Assembler) Hotels(date time.Time, extracts []pivot.HotelExtract) Document {
	doc := Document{Title: fmt.Sprintf("Individual Hotel Reports - %s", DisplayDate(date))}
	add := func(b ...Block) { doc.Blocks = append(doc.Blocks, b...) }

	if len(extracts) == 0 {
		add(Paragraph{Text: "No hotels have orders on the selected date.", Style: StyleNotice})
		return doc
	}

	for i, h := range extracts {
		if i > 0 {
			add(PageBreak{})
		}
		add(Heading{Text: "Hotel: " + h.Hotel, Style: StyleTitle})
		add(Paragraph{Text: "Date: " + DisplayDate(date), Style: StyleCaption})

		if h.Empty() {
			add(Paragraph{Text: "No orders found for this hotel on the selected date.", Style: StyleNotice})
			continue
		}

		table := Table{
			Name: h.Hotel,
			Columns: []Column{
				{Header: "Vegetable Name", Width: 2.5},
				{Header: a.secondaryLabel(), Width: 2, Secondary: true},
				{Header: "Quantity", Width: 2.5},
			},
			Accent: AccentBlue,
		}
		for _, it := range h.Items {
			table.Rows = append(table.Rows, []string{it.DisplayName, it.SecondaryName, it.Quantity.String()})
		}
		add(table, Spacer{Height: 8})
		add(Paragraph{Text: fmt.Sprintf("Total Items Ordered: %d", len(h.Items)), Style: StyleSummary})
	}
	return doc
}

// pivotTable turns a grid into a table: name, secondary name, one column per
// hotel, then the total.
func (a Assembler) pivotTable(name string, t pivot.PivotTable, totalHeader string, hotelWidth float64, accent Accent) Table {
	headers := []string{"Vegetable Name", a.secondaryLabel()}
	headers = append(headers, t.Hotels...)
	headers = append(headers, totalHeader)

	widths := columnWidths(len(headers), hotelWidth, landscapeWidth)
	table := Table{Name: name, Accent: accent, Columns: make([]Column, len(headers))}
	for i, h := range headers {
		table.Columns[i] = Column{Header: h, Width: widths[i], Secondary: i == 1}
	}

	for _, r := range t.Rows {
		line := make([]string, 0, len(headers))
		line = append(line, r.DisplayName, r.SecondaryName)
		for _, h := range t.Hotels {
			line = append(line, r.Cell(h).String())
		}
		line = append(line, r.Total.String())
		table.Rows = append(table.Rows, line)
	}
	return table
}

// columnWidths gives the name columns more room than the quantity columns,
// falling back to equal widths for narrow tables or when the preferred
// widths overflow the page.
func columnWidths(n int, rest, available float64) []float64 {
	widths := make([]float64, n)
	equal := func() []float64 {
		for i := range widths {
			widths[i] = available / float64(n)
		}
		return widths
	}
	if n <= 4 {
		return equal()
	}

	total := 0.0
	for i := range widths {
		switch i {
		case 0:
			widths[i] = 1.8
		case 1:
			widths[i] = 1.2
		default:
			widths[i] = rest
		}
		total += widths[i]
	}
	if total > available {
		return equal()
	}
	return widths
}
