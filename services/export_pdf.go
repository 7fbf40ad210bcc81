package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"golang.org/x/text/language"
)

// gridSize is the number of grid units across a page. Table columns are
// mapped onto it in proportion to their widths.
const gridSize = 120

const secondaryFamily = "secondary"

var (
	colorDarkBlue  = &props.Color{Red: 0, Green: 0, Blue: 139}
	colorDarkGreen = &props.Color{Red: 0, Green: 100, Blue: 0}
	colorGrey      = &props.Color{Red: 120, Green: 120, Blue: 120}
	colorRed       = &props.Color{Red: 200, Green: 0, Blue: 0}
	colorWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe    = &props.Color{Red: 235, Green: 235, Blue: 235}
	colorBlack     = &props.Color{Red: 0, Green: 0, Blue: 0}
)

// Fonts maps a BCP 47 language tag ("te") to a TrueType font file for that
// script.
type Fonts map[string]string

// For returns the font file for tag, falling back to its base language.
func (f Fonts) For(tag language.Tag) string {
	if path, ok := f[tag.String()]; ok {
		return path
	}
	base, _ := tag.Base()
	return f[base.String()]
}

// PDFRenderer renders documents with maroto/v2. Secondary-name columns use
// the font registered for Secondary; without one they fall back to the
// default family.
type PDFRenderer struct {
	Fonts     Fonts
	Secondary language.Tag
}

// Render returns the PDF bytes of doc, one page per page-break boundary.
// Pages longer than a sheet continue onto the next.
func (p PDFRenderer) Render(doc Document) ([]byte, error) {
	orient := orientation.Vertical
	if doc.Landscape {
		orient = orientation.Horizontal
	}

	b := config.NewBuilder().
		WithOrientation(orient).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(12).
		WithRightMargin(10).
		WithMaxGridSize(gridSize).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   colorGrey,
		})

	family := ""
	if path := p.Fonts.For(p.Secondary); path != "" {
		fonts, err := repository.New().
			AddUTF8Font(secondaryFamily, fontstyle.Normal, path).
			AddUTF8Font(secondaryFamily, fontstyle.Bold, path).
			Load()
		if err != nil {
			return nil, fmt.Errorf("load %s font: %w", p.Secondary, err)
		}
		b = b.WithCustomFonts(fonts)
		family = secondaryFamily
	}

	m := maroto.New(b.Build())
	for _, blocks := range doc.Pages() {
		var rows []core.Row
		for _, blk := range blocks {
			rows = append(rows, blockRows(blk, family)...)
		}
		m.AddPages(page.New().Add(rows...))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

func blockRows(blk Block, family string) []core.Row {
	switch b := blk.(type) {
	case Heading:
		return []core.Row{textRow(b.Text, b.Style)}
	case Paragraph:
		return []core.Row{textRow(b.Text, b.Style)}
	case Spacer:
		return []core.Row{row.New(b.Height)}
	case Table:
		return tableRows(b, family)
	}
	return nil
}

// textRow renders one full-width line of styled text.
func textRow(s string, style TextStyle) core.Row {
	height := 8.0
	p := props.Text{Size: 10, Align: align.Left}

	switch style {
	case StyleTitle:
		height = 14
		p = props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Center, Color: colorDarkBlue}
	case StyleSection:
		height = 12
		p = props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Center, Color: colorDarkBlue, Top: 2}
	case StyleSubsection:
		height = 10
		p = props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Left, Color: colorDarkGreen, Top: 2}
	case StyleCaption:
		height = 10
		p = props.Text{Size: 12, Align: align.Center, Color: colorGrey}
	case StyleNotice:
		height = 10
		p = props.Text{Size: 14, Align: align.Center, Color: colorRed}
	case StyleSummary:
		height = 8
		p = props.Text{Size: 11, Align: align.Center, Color: colorDarkGreen}
	}

	return row.New(height).Add(col.New(gridSize).Add(text.New(s, p)))
}

// tableRows renders a header row in the table accent followed by striped
// data rows, all with full borders.
func tableRows(t Table, family string) []core.Row {
	widths := make([]float64, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = c.Width
	}
	spans := gridSpans(widths, gridSize)

	headerSize, bodySize := 10.0, 9.0
	if len(t.Columns) > 8 {
		headerSize, bodySize = 8, 7
	}

	accent := colorDarkBlue
	if t.Accent == AccentGreen {
		accent = colorDarkGreen
	}
	headerCell := &props.Cell{
		BackgroundColor: accent,
		BorderType:      border.Full,
		BorderColor:     colorBlack,
		BorderThickness: 0.2,
	}
	headerText := props.Text{
		Size:  headerSize,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: colorWhite,
		Top:   2,
	}

	header := row.New(10)
	for i, c := range t.Columns {
		header.Add(col.New(spans[i]).Add(text.New(c.Header, headerText)).WithStyle(headerCell))
	}
	rows := []core.Row{header}

	for n, line := range t.Rows {
		cell := &props.Cell{
			BackgroundColor: colorWhite,
			BorderType:      border.Full,
			BorderColor:     colorBlack,
			BorderThickness: 0.2,
		}
		if n%2 == 1 {
			cell.BackgroundColor = colorStripe
		}

		r := row.New(7)
		for i, c := range t.Columns {
			value := ""
			if i < len(line) {
				value = line[i]
			}
			p := props.Text{Size: bodySize, Align: align.Center, Top: 1.5}
			if c.Secondary && family != "" {
				p.Family = family
			}
			r.Add(col.New(spans[i]).Add(text.New(value, p)).WithStyle(cell))
		}
		rows = append(rows, r)
	}
	return rows
}

// gridSpans converts relative widths into whole grid units summing to grid.
// Every column gets at least one unit; leftover units go to the columns
// with the largest fractional share.
func gridSpans(widths []float64, grid int) []int {
	spans := make([]int, len(widths))
	if len(widths) == 0 {
		return spans
	}

	total := 0.0
	for _, w := range widths {
		total += math.Max(w, 0)
	}
	if total == 0 {
		for i := range widths {
			widths[i] = 1
		}
		total = float64(len(widths))
	}

	type share struct {
		idx  int
		frac float64
	}
	shares := make([]share, len(widths))
	used := 0
	for i, w := range widths {
		exact := math.Max(w, 0) / total * float64(grid)
		spans[i] = int(math.Floor(exact))
		if spans[i] < 1 {
			spans[i] = 1
		}
		used += spans[i]
		shares[i] = share{idx: i, frac: exact - math.Floor(exact)}
	}

	sort.SliceStable(shares, func(a, b int) bool { return shares[a].frac > shares[b].frac })
	for i := 0; used < grid; i = (i + 1) % len(shares) {
		spans[shares[i].idx]++
		used++
	}
	for used > grid {
		widest := 0
		for i := range spans {
			if spans[i] > spans[widest] {
				widest = i
			}
		}
		if spans[widest] <= 1 {
			break
		}
		spans[widest]--
		used--
	}
	return spans
}
