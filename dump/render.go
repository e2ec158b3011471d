package dump

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Renderer formats engine rows for a particular presentation. The
// text renderer below emits terminal lines; a grid widget would
// consume Row fields directly behind the same interface.
type Renderer interface {
	Header() string
	RenderRow(Row) string
}

var _ Renderer = &TextRenderer{}

// TextRenderer renders rows as aligned text lines:
//
//	Offset :  0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F : Text
//	     0 : 00 01 08 00 06 04 00 01 50 79 72 6F 00 00 01 02 : ........Pyro....
//	    10 : 03 04 00 00 00 00 00 00 01 02 03 04             : ............
//
// The exported fields may be adjusted after NewTextRenderer and
// before the first row is rendered.
type TextRenderer struct {
	// AddressLabel heads the address column.
	AddressLabel string
	// TextLabel heads the text column.
	TextLabel string
	// NotesLabel heads the annotation column when Annotate is set.
	NotesLabel string
	// HeadingEvery repeats the heading before every Nth row when
	// writing a full dump, with a blank line between blocks. Zero
	// disables repetition; the heading is still written once.
	HeadingEvery int64
	// NoText suppresses the text column.
	NoText bool
	// Annotate, when set, appends a notes column to each row.
	Annotate func(Row) string

	config    Config
	addrWidth int
}

// NewTextRenderer builds a renderer for d's rows. The address column
// width is computed once, from the largest address the dump can
// display.
func NewTextRenderer(d *Dumper) *TextRenderer {
	config := d.Config()
	label := "Offset"
	if config.BaseAddress != 0 {
		label = "Address"
	}
	r := &TextRenderer{
		AddressLabel: label,
		TextLabel:    "Text",
		NotesLabel:   "Notes",
		HeadingEvery: 16,
		config:       config,
	}
	r.addrWidth = len(r.formatAddress(d.MaxAddress()))
	if r.addrWidth < len(r.AddressLabel) {
		r.addrWidth = len(r.AddressLabel)
	}
	return r
}

func (r *TextRenderer) formatAddress(address int64) string {
	if r.config.DecimalAddresses {
		return strconv.FormatInt(address, 10)
	}
	return strings.ToUpper(strconv.FormatInt(address, 16))
}

func (r *TextRenderer) cellWidth() int {
	return int(r.config.Granularity) * 2
}

// dataHeadings labels each cell column with its position within the
// row: bare hex digits for a 16 byte row, +X offsets otherwise, and
// Value for a single column.
func (r *TextRenderer) dataHeadings() []string {
	width := int(r.config.Granularity)
	columns := r.config.RowSize / width
	headings := make([]string, 0, columns)
	switch {
	case r.config.RowSize < 16 && columns == 1:
		headings = append(headings, "Value")
	case r.config.RowSize == 16:
		for v := 0; v < r.config.RowSize; v += width {
			headings = append(headings, fmt.Sprintf("%X", (int64(v)+r.config.BaseAddress)&15))
		}
	default:
		for v := 0; v < r.config.RowSize; v += width {
			headings = append(headings, fmt.Sprintf("+%X", v))
		}
	}
	return headings
}

// Header returns the column heading line.
func (r *TextRenderer) Header() string {
	var line strings.Builder
	fmt.Fprintf(&line, "%*s :", r.addrWidth, r.AddressLabel)
	for _, heading := range r.dataHeadings() {
		fmt.Fprintf(&line, " %*s", r.cellWidth(), heading)
	}
	if !r.NoText {
		line.WriteString(" : ")
		line.WriteString(r.TextLabel)
	}
	if r.Annotate != nil {
		line.WriteString(" : ")
		line.WriteString(r.NotesLabel)
	}
	return line.String()
}

// RenderRow formats one row as an aligned text line. Missing cells on
// a short final row render as blank fields, and a partial cell is
// rendered with only its valid hex digit pairs, left padded, so
// columns line up with the full rows above.
func (r *TextRenderer) RenderRow(row Row) string {
	width := int(r.config.Granularity)
	columns := r.config.RowSize / width
	cellWidth := r.cellWidth()

	var line strings.Builder
	fmt.Fprintf(&line, "%*s :", r.addrWidth, r.formatAddress(row.Address))
	for i := 0; i < columns; i++ {
		if i >= len(row.Cells) {
			fmt.Fprintf(&line, " %*s", cellWidth, "")
			continue
		}
		cell := row.Cells[i]
		fmt.Fprintf(&line, " %*s", cellWidth, fmt.Sprintf("%0*X", cell.ValidBytes*2, cell.Value))
	}
	if !r.NoText {
		line.WriteString(" : ")
		line.WriteString(row.Text)
		for n := utf8.RuneCountInString(row.Text); n < r.config.RowSize; n++ {
			line.WriteByte(' ')
		}
	}
	if r.Annotate != nil {
		line.WriteString(" : ")
		line.WriteString(r.Annotate(row))
	}
	return line.String()
}

// Write renders the complete dump to w, repeating the heading every
// HeadingEvery rows. On a read failure the rows already written
// stand; the error is returned after they have been flushed.
func (r *TextRenderer) Write(w io.Writer, d *Dumper) error {
	rows := d.Rows()
	for n := int64(0); rows.Next(); n++ {
		if n == 0 || (r.HeadingEvery > 0 && n%r.HeadingEvery == 0) {
			if n != 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, r.Header()); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, r.RenderRow(rows.Row())); err != nil {
			return err
		}
	}
	return rows.Err()
}
