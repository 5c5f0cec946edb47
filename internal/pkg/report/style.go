package report

import (
	"fmt"
	"strings"
)

// Options carries per-render column alignment overrides. The zero value
// leaves every column on the style's own default.
type Options struct {
	// Alignments overrides the alignment of named columns.
	Alignments map[string]Alignment
	// Default replaces the style's default alignment when not AlignDefault.
	Default Alignment
}

// Style renders a table to text. Every rendered result ends with a newline.
type Style interface {
	Render(t *Table, opts Options) string
}

// StyleByName maps a user-facing format name to its style.
func StyleByName(name string) (Style, error) {
	switch strings.ToLower(name) {
	case "ascii":
		return NewAsciiStyle(), nil
	case "csv":
		return &CSVStyle{}, nil
	case "markdown":
		return &MarkdownStyle{}, nil
	case "mediawiki":
		return &MediaWikiStyle{}, nil
	}
	return nil, fmt.Errorf("unknown table style %q", name)
}

// StyleNames lists the accepted StyleByName arguments.
func StyleNames() []string {
	return []string{"ascii", "csv", "markdown", "mediawiki"}
}

func resolveAlignments(t *Table, opts Options, styleDefault Alignment) []Alignment {
	def := opts.Default
	if def == AlignDefault {
		def = styleDefault
	}
	out := make([]Alignment, len(t.Columns))
	for i, c := range t.Columns {
		a := opts.Alignments[c]
		if a == AlignDefault {
			a = def
		}
		out[i] = a
	}
	return out
}

// columnWidths measures cell widths over the value rows only. Headers wider
// than every value below them overflow their column, which keeps narrow
// numeric columns narrow.
func columnWidths(t *Table) []int {
	widths := make([]int, len(t.Columns))
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

func alignCell(s string, width int, a Alignment) string {
	gap := width - len(s)
	if gap <= 0 {
		return s
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", gap) + s
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default:
		return s + strings.Repeat(" ", gap)
	}
}

// AsciiStyle renders a plain fixed-width grid:
//
//	+---+----+
//	|a  |b   |
//	+---+----+
//	|1  |long|
//	+---+----+
type AsciiStyle struct {
	Joint      string
	Horizontal string
	Vertical   string
	Pad        string
	PadAmount  int

	TopBorder       bool
	HeaderSeparator bool
	BottomBorder    bool
	LeftBorder      bool
	RightBorder     bool
}

// NewAsciiStyle returns the default bordered grid configuration.
func NewAsciiStyle() *AsciiStyle {
	return &AsciiStyle{
		Joint:           "+",
		Horizontal:      "-",
		Vertical:        "|",
		Pad:             " ",
		TopBorder:       true,
		HeaderSeparator: true,
		BottomBorder:    true,
		LeftBorder:      true,
		RightBorder:     true,
	}
}

func (s *AsciiStyle) Render(t *Table, opts Options) string {
	return s.render(t, opts, s.hLine)
}

// render is shared with MarkdownStyle, which swaps in an alignment-strut
// header separator.
func (s *AsciiStyle) render(t *Table, opts Options, separator func(widths []int, aligns []Alignment) string) string {
	aligns := resolveAlignments(t, opts, AlignLeft)
	widths := columnWidths(t)

	var lines []string
	if s.TopBorder {
		lines = append(lines, s.hLine(widths, aligns))
	}
	lines = append(lines, s.rowLine(t.Columns, widths, aligns))
	if s.HeaderSeparator {
		lines = append(lines, separator(widths, aligns))
	}
	for _, row := range t.Rows {
		lines = append(lines, s.rowLine(row, widths, aligns))
	}
	if s.BottomBorder {
		lines = append(lines, s.hLine(widths, aligns))
	}
	return strings.Join(lines, "\n") + "\n"
}

func (s *AsciiStyle) rowLine(row []string, widths []int, aligns []Alignment) string {
	cells := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = s.padCell(alignCell(cell, widths[i], aligns[i]))
	}
	return s.border(s.Vertical, strings.Join(cells, s.Vertical))
}

func (s *AsciiStyle) hLine(widths []int, _ []Alignment) string {
	struts := make([]string, len(widths))
	for i, w := range widths {
		struts[i] = strings.Repeat(s.Horizontal, w+2*s.PadAmount)
	}
	return s.border(s.Joint, strings.Join(struts, s.Joint))
}

func (s *AsciiStyle) border(element, line string) string {
	if s.LeftBorder {
		line = element + line
	}
	if s.RightBorder {
		line = line + element
	}
	return line
}

func (s *AsciiStyle) padCell(cell string) string {
	pad := strings.Repeat(s.Pad, s.PadAmount)
	return pad + cell + pad
}

// CSVStyle renders delimiter-separated rows. Minimal quoting wraps only
// cells containing the delimiter; QuoteAll wraps every value cell.
type CSVStyle struct {
	Delimiter string
	Quote     string
	QuoteAll  bool
	NoHeader  bool
}

func (s *CSVStyle) Render(t *Table, _ Options) string {
	delim := s.Delimiter
	if delim == "" {
		delim = ","
	}
	quote := s.Quote
	if quote == "" {
		quote = `"`
	}

	var lines []string
	if !s.NoHeader {
		lines = append(lines, strings.Join(t.Columns, delim))
	}
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if s.QuoteAll || strings.Contains(cell, delim) {
				cell = quote + cell + quote
			}
			cells[i] = cell
		}
		lines = append(lines, strings.Join(cells, delim))
	}
	return strings.Join(lines, "\n") + "\n"
}

// MarkdownStyle renders a pipe table with alignment struts in the header
// separator (":---", ":--:", "---:").
type MarkdownStyle struct{}

func (s *MarkdownStyle) Render(t *Table, opts Options) string {
	ascii := &AsciiStyle{
		Joint:           "|",
		Horizontal:      "-",
		Vertical:        "|",
		Pad:             " ",
		PadAmount:       1,
		HeaderSeparator: true,
		LeftBorder:      true,
		RightBorder:     true,
	}
	return ascii.render(t, opts, func(widths []int, aligns []Alignment) string {
		struts := make([]string, len(widths))
		for i, w := range widths {
			// a strut needs room for both colon ends
			if w < 2 {
				w = 2
			}
			struts[i] = ascii.padCell(alignmentStrut(w, aligns[i]))
		}
		return "|" + strings.Join(struts, "|") + "|"
	})
}

func alignmentStrut(width int, a Alignment) string {
	var left, right string
	switch a {
	case AlignCenter:
		left, right = ":", ":"
	case AlignRight:
		left, right = "", ":"
	default:
		left, right = ":", ""
	}
	return left + strings.Repeat("-", width-len(left)-len(right)) + right
}

// MediaWikiStyle renders wikitable markup. Cells carry an explicit align
// attribute; the style default is right alignment, which suits the mostly
// numeric tables this package builds.
type MediaWikiStyle struct{}

var mediaWikiAlignNames = map[Alignment]string{
	AlignLeft:   "left",
	AlignCenter: "center",
	AlignRight:  "right",
}

func (s *MediaWikiStyle) Render(t *Table, opts Options) string {
	aligns := resolveAlignments(t, opts, AlignRight)

	lines := []string{`{|class="wikitable"`}
	lines = append(lines, mediaWikiRow("!", t.Columns, nil))
	for _, row := range t.Rows {
		lines = append(lines, "|-")
		lines = append(lines, mediaWikiRow("|", row, aligns))
	}
	lines = append(lines, "|}")
	return strings.Join(lines, "\n") + "\n"
}

func mediaWikiRow(sep string, row []string, aligns []Alignment) string {
	var b strings.Builder
	for i, cell := range row {
		if aligns != nil {
			b.WriteString(sep)
			b.WriteString(fmt.Sprintf("align=%q", mediaWikiAlignNames[aligns[i]]))
		}
		b.WriteString(sep)
		b.WriteString(cell)
		b.WriteString(sep)
	}
	return strings.TrimRight(b.String(), sep)
}
