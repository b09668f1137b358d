package hzip

// Stats summarizes one compression.
type Stats struct {
	// OriginalSize is the size of the input in bytes.
	OriginalSize int64

	// HeaderSize covers the frame header (if any), the container header
	// and the serialized code table.  Zero for a raw stored copy.
	HeaderSize int64

	// PayloadSize covers the packed code bits plus the trailing padding
	// byte, or the stored bytes when Stored is set.
	PayloadSize int64

	// Padding is the number of zero bits added to the last payload byte.
	Padding uint8

	// Stored is set when the input was copied verbatim because coding
	// would not have made it smaller.
	Stored bool
}

// CompressedSize is the total number of bytes written.
func (s Stats) CompressedSize() int64 {
	return s.HeaderSize + s.PayloadSize
}

// Ratio is CompressedSize as a percentage of OriginalSize.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.CompressedSize()) / float64(s.OriginalSize) * 100
}
