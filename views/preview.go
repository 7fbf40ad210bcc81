package views

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"hotelorders/services"
)

// PreviewPage shows the raw order sheet: counts, columns and the first rows.
func PreviewPage(p *services.Preview, errMsg string) templ.Component {
	return Page("Data preview", nil, html(func(b *strings.Builder) {
		b.WriteString(`<h1>Data preview</h1>`)
		if errMsg != "" {
			fmt.Fprintf(b, `<div class="flash error">%s</div>`, esc(errMsg))
			return
		}
		if p == nil {
			return
		}

		b.WriteString(`<div class="stats">`)
		writeStat(b, "Total records", humanize.Comma(int64(p.Records)))
		writeStat(b, "Unique hotels", humanize.Comma(int64(len(p.Hotels))))
		writeStat(b, "Unique vegetables", humanize.Comma(int64(len(p.Vegetables))))
		b.WriteString(`</div>`)
		fmt.Fprintf(b, `<p class="muted">Fetched %s. <a href="/preview.json">JSON</a></p>`, esc(humanize.Time(p.FetchedAt)))

		b.WriteString(`<h2>Columns</h2><ul>`)
		for _, c := range p.Columns {
			fmt.Fprintf(b, `<li>%s</li>`, esc(c))
		}
		b.WriteString(`</ul>`)

		if len(p.Sample) == 0 {
			return
		}
		fmt.Fprintf(b, `<h2>First %d rows</h2><table><thead><tr>`, len(p.Sample))
		for _, c := range p.Columns {
			fmt.Fprintf(b, `<th>%s</th>`, esc(c))
		}
		b.WriteString(`</tr></thead><tbody>`)
		for _, row := range p.Sample {
			b.WriteString(`<tr>`)
			for _, c := range p.Columns {
				fmt.Fprintf(b, `<td>%s</td>`, esc(row[c]))
			}
			b.WriteString(`</tr>`)
		}
		b.WriteString(`</tbody></table>`)
	}))
}
