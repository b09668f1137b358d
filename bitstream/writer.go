package bitstream

import (
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// Writer accumulates bits and emits each byte to the sink as soon as all 8 of
// its bits are known.
//
// If the sink is buffered (e.g. a *bufio.Writer), flushing that buffer
// remains the caller's responsibility.
type Writer struct {
	bw    *bitio.Writer
	count uint64
}

// NewWriter returns a Writer that emits bytes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bitio.NewWriter(w)}
}

// WriteBit appends one bit.
func (w *Writer) WriteBit(bit bool) error {
	if err := w.bw.WriteBool(bit); err != nil {
		return errors.Wrap(err, "write bit")
	}
	w.count++
	return nil
}

// WriteBits appends the given bits in order.
func (w *Writer) WriteBits(bits []bool) error {
	for _, bit := range bits {
		if err := w.WriteBit(bit); err != nil {
			return err
		}
	}
	return nil
}

// WriteUint appends the n low-order bits of value, most significant first.
func (w *Writer) WriteUint(value uint64, n uint8) error {
	if n == 0 {
		return nil
	}
	if err := w.bw.WriteBits(value, n); err != nil {
		return errors.Wrapf(err, "write %d bits", n)
	}
	w.count += uint64(n)
	return nil
}

// WriteByte appends 8 bits.  On an unaligned stream the byte straddles the
// partial byte in flight, so ordering is preserved.
func (w *Writer) WriteByte(b byte) error {
	if err := w.bw.WriteByte(b); err != nil {
		return errors.Wrap(err, "write byte")
	}
	w.count += 8
	return nil
}

var _ io.ByteWriter = (*Writer)(nil)

// Flush emits a partial final byte, padded with zero bits in its low-order
// positions.  It is a no-op when the stream is byte-aligned.
func (w *Writer) Flush() error {
	_, err := w.FlushAndGetPadding()
	return err
}

// FlushAndGetPadding is like Flush, but also reports how many padding bits
// were added (0 if the stream was already aligned).
func (w *Writer) FlushAndGetPadding() (uint8, error) {
	padding, err := w.bw.Align()
	if err != nil {
		return 0, errors.Wrap(err, "flush bits")
	}
	return padding, nil
}

// BitsWritten returns the number of data bits written so far, excluding
// padding.
func (w *Writer) BitsWritten() uint64 {
	return w.count
}
