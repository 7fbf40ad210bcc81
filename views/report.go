package views

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"hotelorders/pivot"
	"hotelorders/services"
)

// ReportData feeds the report page.
type ReportData struct {
	// Date is the selected date as YYYY-MM-DD; empty before any selection.
	Date           string
	Report         *services.Report
	Error          string
	SecondaryLabel string
}

func (d ReportData) secondaryLabel() string {
	if d.SecondaryLabel == "" {
		return "Telugu Name"
	}
	return d.SecondaryLabel
}

// ReportPage is the full report page.
func ReportPage(d ReportData, flash *Flash) templ.Component {
	title := "Order Reports"
	if d.Date != "" {
		title = "Order Reports - " + d.Date
	}
	return Page(title, flash, ReportContent(d))
}

// ReportContent is the part of the report page swapped in by htmx.
func ReportContent(d ReportData) templ.Component {
	return html(func(b *strings.Builder) {
		b.WriteString(`<section id="report">`)
		writeDateForm(b, d.Date)

		if d.Error != "" {
			fmt.Fprintf(b, `<div class="flash error">%s</div>`, esc(d.Error))
		}
		r := d.Report
		if r == nil {
			b.WriteString(`</section>`)
			return
		}
		if r.Warning != nil {
			fmt.Fprintf(b, `<div class="flash info">No orders found for %s.</div>`, esc(d.Date))
		}

		b.WriteString(`<div class="stats">`)
		writeStat(b, "Vegetable rows", humanize.Comma(int64(len(r.Vegetables.Rows))))
		writeStat(b, "Vendors", humanize.Comma(int64(len(r.Vendors))))
		writeStat(b, "Hotels", humanize.Comma(int64(len(r.Vegetables.Hotels))))
		writeStat(b, "Orders", humanize.Comma(int64(r.Records)))
		b.WriteString(`</div>`)
		fmt.Fprintf(b, `<p class="muted">Sheet fetched %s, %s rows read.</p>`,
			esc(humanize.Time(r.FetchedAt)), esc(humanize.Comma(int64(r.SourceRows))))

		b.WriteString(`<div class="downloads">`)
		for _, kind := range []services.DocumentKind{services.DocCombinedPDF, services.DocHotelsPDF, services.DocCombinedExcel} {
			fmt.Fprintf(b, `<a href="/reports/%s/%s" download="%s">%s</a>`,
				esc(d.Date), esc(string(kind)), esc(services.FileName(kind, r.Date)), esc(downloadLabel(kind)))
		}
		b.WriteString(`</div>`)

		b.WriteString(`<h2>Vegetable-wise order summary</h2>`)
		if r.Vegetables.Empty() {
			b.WriteString(`<p class="muted">No vegetable data available for the selected date.</p>`)
		} else {
			writePivot(b, r.Vegetables, d.secondaryLabel(), "")
		}

		b.WriteString(`<h2>Vendor-wise order summary</h2>`)
		if len(r.Vendors) == 0 {
			b.WriteString(`<p class="muted">No vendor data available for the selected date.</p>`)
		}
		for _, vp := range r.Vendors {
			fmt.Fprintf(b, `<details><summary>Vendor: %s (%d)</summary>`, esc(vp.Vendor), len(vp.Table.Rows))
			writePivot(b, vp.Table, d.secondaryLabel(), "vendor")
			b.WriteString(`</details>`)
		}
		b.WriteString(`</section>`)
	})
}

func downloadLabel(kind services.DocumentKind) string {
	switch kind {
	case services.DocCombinedPDF:
		return "Complete report (PDF)"
	case services.DocHotelsPDF:
		return "Hotel reports (PDF)"
	case services.DocCombinedExcel:
		return "Complete report (Excel)"
	}
	return string(kind)
}

func writeDateForm(b *strings.Builder, date string) {
	b.WriteString(`<form method="get" action="/reports" hx-get="/reports" hx-target="#report" hx-swap="outerHTML">`)
	fmt.Fprintf(b, `<label>Date <input type="date" name="date" value="%s" required></label> `, esc(date))
	b.WriteString(`<button type="submit">Generate reports</button>`)
	b.WriteString(`</form>`)
	b.WriteString(`<form method="post" action="/reports/refresh" hx-post="/reports/refresh" hx-swap="none">`)
	b.WriteString(`<button type="submit">Reload sheet</button></form>`)
}

func writeStat(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, `<div class="stat"><b>%s</b>%s</div>`, esc(value), esc(label))
}

// writePivot renders one grid as an HTML table, a cell per hotel column.
func writePivot(b *strings.Builder, t pivot.PivotTable, secondaryLabel, class string) {
	fmt.Fprintf(b, `<table class="%s"><thead><tr><th>Vegetable</th><th>%s</th>`, esc(class), esc(secondaryLabel))
	for _, h := range t.Hotels {
		fmt.Fprintf(b, `<th>%s</th>`, esc(h))
	}
	b.WriteString(`<th>Total</th></tr></thead><tbody>`)
	for _, row := range t.Rows {
		fmt.Fprintf(b, `<tr><td>%s</td><td>%s</td>`, esc(row.DisplayName), esc(row.SecondaryName))
		for _, h := range t.Hotels {
			fmt.Fprintf(b, `<td>%s</td>`, esc(row.Cell(h).String()))
		}
		fmt.Fprintf(b, `<td><strong>%s</strong></td></tr>`, esc(row.Total.String()))
	}
	b.WriteString(`</tbody></table>`)
}
