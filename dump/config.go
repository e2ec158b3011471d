package dump

// Granularity is the width in bytes of one displayed cell.
type Granularity int

const (
	Byte       Granularity = 1
	Halfword   Granularity = 2
	Word       Granularity = 4
	Doubleword Granularity = 8
)

// DefaultRowSize is the number of bytes covered by a row when the
// configuration does not say otherwise.
const DefaultRowSize = 16

// Config holds the display parameters for one dump invocation. It is
// validated once by New and never modified afterwards.
type Config struct {
	// RowSize is the number of bytes covered by one row, regardless
	// of granularity. Zero selects DefaultRowSize.
	RowSize int

	// Granularity selects the cell width. Zero selects Byte. RowSize
	// must be a multiple of the cell width.
	Granularity Granularity

	// BaseAddress is added to a byte's source offset to produce its
	// displayed address.
	BaseAddress int64

	// StartOffset is the source offset at which dumping begins.
	StartOffset int64

	// EndOffset is the exclusive upper bound of the dump. Zero means
	// the source length; a zero-length dump of a non-empty source is
	// expressed as StartOffset == EndOffset > 0.
	EndOffset int64

	// BigEndian combines multi-byte cells high byte first instead of
	// the default little-endian order.
	BigEndian bool

	// TextHigh additionally treats byte values 0xA0 and above as
	// printable in the text column.
	TextHigh bool

	// DecimalAddresses renders the address column in decimal instead
	// of hexadecimal.
	DecimalAddresses bool
}

func (c Config) withDefaults() Config {
	if c.RowSize == 0 {
		c.RowSize = DefaultRowSize
	}
	if c.Granularity == 0 {
		c.Granularity = Byte
	}
	return c
}

func (c Config) validate(source Source) error {
	if c.RowSize < 1 {
		return Configf("row size must be at least 1: %d", c.RowSize)
	}
	switch c.Granularity {
	case Byte, Halfword, Word, Doubleword:
	default:
		return Configf("invalid granularity: %d", c.Granularity)
	}
	if c.RowSize%int(c.Granularity) != 0 {
		return Configf("row size %d is not a multiple of the %d byte cell width", c.RowSize, int(c.Granularity))
	}
	if c.StartOffset < 0 {
		return Configf("negative start offset: %d", c.StartOffset)
	}
	if c.StartOffset > source.Length() {
		return Configf("start offset %d beyond source length %d", c.StartOffset, source.Length())
	}
	if c.EndOffset != 0 && c.EndOffset < c.StartOffset {
		return Configf("end offset %d before start offset %d", c.EndOffset, c.StartOffset)
	}
	return nil
}
