package services

// TextStyle tags a heading or paragraph for the renderer.
type TextStyle string

const (
	StyleTitle      TextStyle = "title"
	StyleSection    TextStyle = "section"
	StyleSubsection TextStyle = "subsection"
	StyleCaption    TextStyle = "caption"
	StyleNotice     TextStyle = "notice"
	StyleSummary    TextStyle = "summary"
	StyleBody       TextStyle = "body"
)

// Accent selects the header colour of a table.
type Accent int

const (
	AccentBlue Accent = iota
	AccentGreen
)

// Block is one element of a report layout: a Heading, Paragraph, Table,
// Spacer or PageBreak.
type Block interface {
	isBlock()
}

// Heading is a line of heading text.
type Heading struct {
	Text  string
	Style TextStyle
}

// Paragraph is a line of body text.
type Paragraph struct {
	Text  string
	Style TextStyle
}

// Column is one table column. Width is relative to the other columns of
// the same table.
type Column struct {
	Header    string
	Width     float64
	Secondary bool // rendered with the secondary-script font
}

// Table is a grid of preformatted strings.
type Table struct {
	Name    string // sheet name when the page becomes a worksheet
	Columns []Column
	Rows    [][]string
	Accent  Accent
}

// Spacer is vertical space in millimetres.
type Spacer struct {
	Height float64
}

// PageBreak starts a new page.
type PageBreak struct{}

func (Heading) isBlock()   {}
func (Paragraph) isBlock() {}
func (Table) isBlock()     {}
func (Spacer) isBlock()    {}
func (PageBreak) isBlock() {}

// Document is an ordered block sequence ready for a renderer.
type Document struct {
	Title     string
	Landscape bool
	Blocks    []Block
}

// Pages splits the blocks at page breaks. Empty pages are dropped.
func (d Document) Pages() [][]Block {
	var pages [][]Block
	var cur []Block
	for _, b := range d.Blocks {
		if _, ok := b.(PageBreak); ok {
			if len(cur) > 0 {
				pages = append(pages, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, b)
	}
	if len(cur) > 0 {
		pages = append(pages, cur)
	}
	return pages
}
