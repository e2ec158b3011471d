package dump

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func collectRows(t *testing.T, d *Dumper) []Row {
	rows := []Row{}
	it := d.Rows()
	for it.Next() {
		rows = append(rows, it.Row())
	}
	require.Nil(t, it.Err())
	return rows
}

func TestRowCount(t *testing.T) {
	type testCase struct {
		length   int
		rowSize  int
		start    int64
		end      int64
		expected int64
	}
	var testData = []testCase{
		{0, 16, 0, 0, 0},
		{1, 16, 0, 0, 1},
		{16, 16, 0, 0, 1},
		{17, 16, 0, 0, 2},
		{256, 16, 0, 0, 16},
		{7, 16, 0, 0, 1},
		{100, 16, 0, 0, 7},
		{100, 8, 20, 52, 4},
		{100, 8, 20, 53, 5},
		{10, 16, 5, 5, 0},
		{10, 16, 10, 0, 0},
	}
	for _, tc := range testData {
		source := make(Buffer, tc.length)
		d, err := New(Config{RowSize: tc.rowSize, StartOffset: tc.start, EndOffset: tc.end}, source)
		require.Nil(t, err)
		display := fmt.Sprintf("RowCount(len=%d rowSize=%d start=%d end=%d) -> %d", tc.length, tc.rowSize, tc.start, tc.end, d.RowCount())
		require.Equal(t, tc.expected, d.RowCount(), display)
		log.Println(display)
	}
}

func TestRowByteCountsSumToRange(t *testing.T) {
	source := make(Buffer, 100)
	for i := range source {
		source[i] = byte(i)
	}
	d, err := New(Config{RowSize: 16, StartOffset: 3, EndOffset: 90}, source)
	require.Nil(t, err)
	total := 0
	for _, row := range collectRows(t, d) {
		total += len(row.Text)
	}
	require.Equal(t, 87, total)
}

func TestRowsIdempotent(t *testing.T) {
	source := Buffer("The quick brown fox jumps over the lazy dog")
	d, err := New(Config{}, source)
	require.Nil(t, err)
	first := collectRows(t, d)
	second := collectRows(t, d)
	require.Equal(t, first, second)
}

func TestByteRoundTrip(t *testing.T) {
	source := make(Buffer, 300)
	for i := range source {
		source[i] = byte(i * 7)
	}
	d, err := New(Config{RowSize: 16, StartOffset: 5, EndOffset: 299}, source)
	require.Nil(t, err)
	encoded := ""
	for _, row := range collectRows(t, d) {
		for _, cell := range row.Cells {
			encoded += fmt.Sprintf("%0*X", cell.ValidBytes*2, cell.Value)
		}
	}
	decoded, err := hex.DecodeString(encoded)
	require.Nil(t, err)
	require.Equal(t, []byte(source[5:299]), decoded)
}

func TestWordLittleEndian(t *testing.T) {
	source := Buffer{0x1C, 0x00, 0x8F, 0xE2}
	d, err := New(Config{Granularity: Word}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Cells, 1)
	require.Equal(t, Cell{Value: 0xE28F001C, ValidBytes: 4}, rows[0].Cells[0])
}

func TestWordBigEndian(t *testing.T) {
	source := Buffer{0x1C, 0x00, 0x8F, 0xE2}
	d, err := New(Config{Granularity: Word, BigEndian: true}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Equal(t, Cell{Value: 0x1C008FE2, ValidBytes: 4}, rows[0].Cells[0])
}

func TestHalfwordAndDoubleword(t *testing.T) {
	source := Buffer{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	d, err := New(Config{RowSize: 8, Granularity: Halfword}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Equal(t, []Cell{
		{Value: 0x0201, ValidBytes: 2},
		{Value: 0x0403, ValidBytes: 2},
		{Value: 0x0605, ValidBytes: 2},
		{Value: 0x0807, ValidBytes: 2},
	}, rows[0].Cells)

	d, err = New(Config{RowSize: 8, Granularity: Doubleword}, source)
	require.Nil(t, err)
	rows = collectRows(t, d)
	require.Equal(t, []Cell{{Value: 0x0807060504030201, ValidBytes: 8}}, rows[0].Cells)
}

func TestPartialFinalRow(t *testing.T) {
	source := make(Buffer, 7)
	d, err := New(Config{RowSize: 16}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Cells, 7)
	require.Len(t, rows[0].Text, 7)
	for _, cell := range rows[0].Cells {
		require.Equal(t, 1, cell.ValidBytes)
	}
}

func TestPartialFinalWordCell(t *testing.T) {
	source := Buffer{0x11, 0x22, 0x33, 0x44, 0x55, 0x66}
	d, err := New(Config{RowSize: 8, Granularity: Word}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Len(t, rows, 1)
	require.Equal(t, []Cell{
		{Value: 0x44332211, ValidBytes: 4},
		{Value: 0x6655, ValidBytes: 2},
	}, rows[0].Cells)
}

func TestEndToEndExample(t *testing.T) {
	source := Buffer{0x1C, 0x00, 0x8F, 0xE2, 0x02, 0x00, 0x00, 0xEF}

	d, err := New(Config{RowSize: 16}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Len(t, rows, 1)
	require.Equal(t, int64(0), rows[0].Address)
	require.Len(t, rows[0].Cells, 8)
	expected := []uint64{0x1C, 0x00, 0x8F, 0xE2, 0x02, 0x00, 0x00, 0xEF}
	for i, cell := range rows[0].Cells {
		require.Equal(t, expected[i], cell.Value)
		require.Equal(t, 1, cell.ValidBytes)
	}
	require.Equal(t, "........", rows[0].Text)

	d, err = New(Config{RowSize: 16, Granularity: Word}, source)
	require.Nil(t, err)
	rows = collectRows(t, d)
	require.Len(t, rows, 1)
	require.Equal(t, []Cell{
		{Value: 0xE28F001C, ValidBytes: 4},
		{Value: 0xEF000002, ValidBytes: 4},
	}, rows[0].Cells)
	require.Equal(t, "........", rows[0].Text)
}

func TestTextMapping(t *testing.T) {
	source := Buffer{0x00, 0x48, 0x1F, 0x20, 0x7E, 0x7F, 0xA9}
	d, err := New(Config{}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Equal(t, ".H. ~..", rows[0].Text)

	d, err = New(Config{TextHigh: true}, source)
	require.Nil(t, err)
	rows = collectRows(t, d)
	require.Equal(t, ".H. ~.©", rows[0].Text)
}

func TestBaseAddressAndStartOffset(t *testing.T) {
	source := make(Buffer, 40)
	d, err := New(Config{RowSize: 16, BaseAddress: 0x8000, StartOffset: 4, EndOffset: 36}, source)
	require.Nil(t, err)
	rows := collectRows(t, d)
	require.Len(t, rows, 2)
	require.Equal(t, int64(0x8004), rows[0].Address)
	require.Equal(t, int64(4), rows[0].Offset)
	require.Equal(t, int64(0x8014), rows[1].Address)
	require.Equal(t, 16, len(rows[0].Text))
}

func TestZeroLengthRange(t *testing.T) {
	source := make(Buffer, 10)
	d, err := New(Config{StartOffset: 5, EndOffset: 5}, source)
	require.Nil(t, err)
	require.Equal(t, int64(0), d.RowCount())
	require.Empty(t, collectRows(t, d))
}

func TestCoordinateConversions(t *testing.T) {
	source := make(Buffer, 40)
	d, err := New(Config{RowSize: 16, BaseAddress: 0x8000}, source)
	require.Nil(t, err)

	require.Equal(t, int64(16), d.RowToOffset(1))
	require.Equal(t, int64(1), d.OffsetToRow(17))

	row, col, ok := d.AddressToCoords(0x8011)
	require.True(t, ok)
	require.Equal(t, int64(1), row)
	require.Equal(t, int64(1), col)

	_, _, ok = d.AddressToCoords(0x8028)
	require.False(t, ok)
	_, _, ok = d.AddressToCoords(0x7FFF)
	require.False(t, ok)

	address, ok := d.CoordsToAddress(1, 1, false)
	require.True(t, ok)
	require.Equal(t, int64(0x8011), address)

	_, ok = d.CoordsToAddress(0, 16, false)
	require.False(t, ok)
	address, ok = d.CoordsToAddress(0, 16, true)
	require.True(t, ok)
	require.Equal(t, int64(0x800F), address)

	_, ok = d.CoordsToAddress(9, 0, false)
	require.False(t, ok)
	address, ok = d.CoordsToAddress(9, 0, true)
	require.True(t, ok)
	require.Equal(t, int64(0x8027), address)
}

func TestWordCoordinateColumns(t *testing.T) {
	source := make(Buffer, 32)
	d, err := New(Config{RowSize: 16, Granularity: Word}, source)
	require.Nil(t, err)
	row, col, ok := d.AddressToCoords(22)
	require.True(t, ok)
	require.Equal(t, int64(1), row)
	require.Equal(t, int64(1), col)
}

type failSource struct {
	data   Buffer
	failAt int64
}

func (s *failSource) Length() int64 {
	return s.data.Length()
}

func (s *failSource) Read(offset, count int64) ([]byte, error) {
	if offset >= s.failAt {
		return nil, &ReadError{Offset: offset, Count: count, Err: errors.New("device error")}
	}
	return s.data.Read(offset, count)
}

func TestReadFailureStopsIteration(t *testing.T) {
	source := &failSource{data: make(Buffer, 64), failAt: 32}
	d, err := New(Config{RowSize: 16}, source)
	require.Nil(t, err)
	rows := []Row{}
	it := d.Rows()
	for it.Next() {
		rows = append(rows, it.Row())
	}
	require.Len(t, rows, 2)
	require.NotNil(t, it.Err())
	var readErr *ReadError
	require.True(t, errors.As(it.Err(), &readErr))
	require.Equal(t, int64(32), readErr.Offset)
	log.Println(it.Err())
	require.False(t, it.Next())
}
