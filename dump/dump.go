package dump

import (
	"strings"
)

// Dumper translates a byte range from a Source into rows of cells
// under an immutable Config. It holds no other state; producing the
// rows twice yields identical sequences.
type Dumper struct {
	config Config
	source Source
	start  int64
	end    int64
}

// Cell is one displayed value within a row. ValidBytes is less than
// the cell width only for the final cell of the final row, when the
// source ended mid-cell. The missing bytes are never zero-extended.
type Cell struct {
	Value      uint64
	ValidBytes int
}

// Row is one line of a dump. Text carries one character per byte of
// the row, regardless of granularity, with unprintable values shown
// as '.'.
type Row struct {
	Address int64
	Offset  int64
	Cells   []Cell
	Text    string
}

// New validates config against source and returns a Dumper. All
// configuration errors are reported here, before any row is produced.
func New(config Config, source Source) (*Dumper, error) {
	config = config.withDefaults()
	if err := config.validate(source); err != nil {
		return nil, err
	}
	end := config.EndOffset
	if end == 0 || end > source.Length() {
		end = source.Length()
	}
	return &Dumper{
		config: config,
		source: source,
		start:  config.StartOffset,
		end:    end,
	}, nil
}

// Config returns the effective configuration with defaults applied.
func (d *Dumper) Config() Config {
	return d.config
}

// RowCount returns the number of rows the dump will produce. A
// zero-length range yields zero rows.
func (d *Dumper) RowCount() int64 {
	rowSize := int64(d.config.RowSize)
	return (d.end - d.start + rowSize - 1) / rowSize
}

// MaxAddress returns the highest address that can appear in the dump,
// used to size the address column once per invocation.
func (d *Dumper) MaxAddress() int64 {
	return d.config.BaseAddress + d.end
}

// RowToOffset returns the source offset of the first byte of a row.
func (d *Dumper) RowToOffset(row int64) int64 {
	return d.start + row*int64(d.config.RowSize)
}

// OffsetToRow returns the row containing a source offset.
func (d *Dumper) OffsetToRow(offset int64) int64 {
	return (offset - d.start) / int64(d.config.RowSize)
}

// AddressToCoords converts a displayed address to a row and cell
// column. ok is false when the address falls outside the dump range.
func (d *Dumper) AddressToCoords(address int64) (row, col int64, ok bool) {
	offset := address - d.config.BaseAddress
	if offset < d.start || offset >= d.end {
		return 0, 0, false
	}
	rel := offset - d.start
	rowSize := int64(d.config.RowSize)
	return rel / rowSize, (rel % rowSize) / int64(d.config.Granularity), true
}

// CoordsToAddress converts a row and cell column to the displayed
// address of that cell's first byte. With bound set, out of range
// coordinates are clamped to the nearest valid position; otherwise ok
// is false.
func (d *Dumper) CoordsToAddress(row, col int64, bound bool) (address int64, ok bool) {
	width := int64(d.config.Granularity)
	cols := int64(d.config.RowSize) / width
	if col >= cols {
		if !bound {
			return 0, false
		}
		col = cols - 1
	}
	if col < 0 {
		if !bound {
			return 0, false
		}
		col = 0
	}
	if row < 0 {
		if !bound {
			return 0, false
		}
		row = 0
	}
	offset := d.start + row*int64(d.config.RowSize) + col*width
	if offset >= d.end {
		if !bound {
			return 0, false
		}
		offset = d.end - 1
		if offset < d.start {
			offset = d.start
		}
	}
	return d.config.BaseAddress + offset, true
}

// Rows returns a lazy forward-only iterator over the dump's rows. The
// iterator is not restartable; call Rows again for a fresh pass.
func (d *Dumper) Rows() *RowIter {
	return &RowIter{d: d, count: d.RowCount()}
}

// RowIter produces Rows one at a time in ascending address order, in
// the manner of bufio.Scanner.
type RowIter struct {
	d     *Dumper
	next  int64
	count int64
	row   Row
	err   error
}

// Next advances to the next row. It returns false when the dump is
// complete or a read failed; check Err to distinguish.
func (it *RowIter) Next() bool {
	if it.err != nil || it.next >= it.count {
		return false
	}
	row, err := it.d.row(it.next)
	if err != nil {
		it.err = err
		return false
	}
	it.row = row
	it.next++
	return true
}

// Row returns the row produced by the last successful Next.
func (it *RowIter) Row() Row {
	return it.row
}

// Err returns the read error that stopped iteration, if any.
func (it *RowIter) Err() error {
	return it.err
}

func (d *Dumper) row(i int64) (Row, error) {
	rowSize := int64(d.config.RowSize)
	rowStart := d.start + i*rowSize
	rowEnd := rowStart + rowSize
	if rowEnd > d.end {
		rowEnd = d.end
	}
	data, err := d.source.Read(rowStart, rowEnd-rowStart)
	if err != nil {
		return Row{}, err
	}
	return Row{
		Address: d.config.BaseAddress + rowStart,
		Offset:  rowStart,
		Cells:   d.cells(data),
		Text:    d.text(data),
	}, nil
}

func (d *Dumper) cells(data []byte) []Cell {
	width := int(d.config.Granularity)
	cells := make([]Cell, 0, (len(data)+width-1)/width)
	for i := 0; i < len(data); i += width {
		chunk := data[i:]
		if len(chunk) > width {
			chunk = chunk[:width]
		}
		var value uint64
		if d.config.BigEndian {
			for _, b := range chunk {
				value = value<<8 | uint64(b)
			}
		} else {
			for j, b := range chunk {
				value |= uint64(b) << (8 * j)
			}
		}
		cells = append(cells, Cell{Value: value, ValidBytes: len(chunk)})
	}
	return cells
}

func (d *Dumper) text(data []byte) string {
	var text strings.Builder
	for _, b := range data {
		if d.printable(b) {
			text.WriteRune(rune(b))
		} else {
			text.WriteByte('.')
		}
	}
	return text.String()
}

func (d *Dumper) printable(b byte) bool {
	if b >= 0x20 && b < 0x7F {
		return true
	}
	return d.config.TextHigh && b >= 0xA0
}
