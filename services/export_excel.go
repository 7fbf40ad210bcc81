package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelRenderer writes a document as a workbook with one sheet per page.
type ExcelRenderer struct{}

// Render returns the xlsx bytes of doc. Each sheet is named after the first
// named table on its page.
func (ExcelRenderer) Render(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newSheetStyles(f)
	if err != nil {
		return nil, err
	}

	pages := doc.Pages()
	if len(pages) == 0 {
		pages = [][]Block{{Paragraph{Text: doc.Title, Style: StyleTitle}}}
	}

	used := make(map[string]bool)
	defaultSheet := f.GetSheetName(0)
	for i, blocks := range pages {
		name := uniqueSheetName(pageName(blocks, i), used)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, fmt.Errorf("set sheet name: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, blocks, st); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	title, heading, header, cell, note int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var st sheetStyles
	var err error

	if st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return st, fmt.Errorf("create title style: %w", err)
	}

	if st.heading, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: "#006400"},
	}); err != nil {
		return st, fmt.Errorf("create heading style: %w", err)
	}

	// Column header: bold white text on the report accent.
	if st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00008B"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	}); err != nil {
		return st, fmt.Errorf("create header style: %w", err)
	}

	if st.cell, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	}); err != nil {
		return st, fmt.Errorf("create cell style: %w", err)
	}

	if st.note, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Size: 10, Color: "#787878"},
	}); err != nil {
		return st, fmt.Errorf("create note style: %w", err)
	}
	return st, nil
}

func writeSheet(f *excelize.File, sheet string, blocks []Block, st sheetStyles) error {
	row := 1
	for _, blk := range blocks {
		switch b := blk.(type) {
		case Heading:
			style := st.heading
			if b.Style == StyleTitle || b.Style == StyleSection {
				style = st.title
			}
			if err := setStyledValue(f, sheet, 1, row, sanitizeExcelCell(b.Text), style); err != nil {
				return err
			}
			row++
		case Paragraph:
			if err := setStyledValue(f, sheet, 1, row, sanitizeExcelCell(b.Text), st.note); err != nil {
				return err
			}
			row++
		case Spacer:
			row++
		case Table:
			next, err := writeTable(f, sheet, row, b, st)
			if err != nil {
				return err
			}
			row = next + 1
		}
	}
	return nil
}

// writeTable writes the header at row start and returns the first free row.
func writeTable(f *excelize.File, sheet string, start int, t Table, st sheetStyles) (int, error) {
	for i, c := range t.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return 0, fmt.Errorf("column name: %w", err)
		}
		// Widths are in inches; roughly 12 characters per inch.
		if err := f.SetColWidth(sheet, name, name, c.Width*12); err != nil {
			return 0, fmt.Errorf("set col width %s: %w", name, err)
		}
		if err := setStyledValue(f, sheet, i+1, start, sanitizeExcelCell(c.Header), st.header); err != nil {
			return 0, err
		}
	}

	r := start + 1
	for _, line := range t.Rows {
		for i := range t.Columns {
			value := ""
			if i < len(line) {
				value = line[i]
			}
			if err := setStyledValue(f, sheet, i+1, r, sanitizeExcelCell(value), st.cell); err != nil {
				return 0, err
			}
		}
		r++
	}
	return r, nil
}

func setStyledValue(f *excelize.File, sheet string, col, row int, value string, style int) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return f.SetCellStyle(sheet, cell, cell, style)
}

func pageName(blocks []Block, i int) string {
	for _, b := range blocks {
		if t, ok := b.(Table); ok && t.Name != "" {
			return t.Name
		}
	}
	return fmt.Sprintf("Page %d", i+1)
}

// uniqueSheetName strips characters Excel rejects, truncates to 31
// characters and suffixes duplicates.
func uniqueSheetName(name string, used map[string]bool) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.Trim(name, "' "))
	if name == "" {
		name = "Sheet"
	}

	base := truncateRunes(name, 31)
	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(base, 31-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
