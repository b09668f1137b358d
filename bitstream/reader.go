package bitstream

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// Reader returns the bits of a byte source, most significant bit first.
type Reader struct {
	br *bitio.Reader
}

// NewReader returns a Reader that consumes at most budget bytes from r, even
// if r holds more data.
func NewReader(r io.Reader, budget int64) *Reader {
	return &Reader{br: bitio.NewReader(bufio.NewReader(io.LimitReader(r, budget)))}
}

// ReadBit returns the next bit.  Once the byte budget is exhausted it
// returns io.EOF.
func (r *Reader) ReadBit() (bool, error) {
	bit, err := r.br.ReadBool()
	if err == io.EOF {
		return false, io.EOF
	}
	if err != nil {
		return false, errors.Wrap(err, "read bit")
	}
	return bit, nil
}
