package hzip

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/hzip/huffman"
)

const (
	// tableSize(1) + totalChars(4)
	containerHeaderSize = 5

	// The smallest container is a header followed by the padding byte.
	minContainerSize = containerHeaderSize + 1
)

// layout holds the exact size of a container, computed before anything is
// written.
type layout struct {
	headerSize  int64
	payloadBits uint64
}

func planContainer(freq *huffman.FrequencyTable, table *huffman.CodeTable) layout {
	l := layout{headerSize: containerHeaderSize}
	for _, symbol := range table.Symbols() {
		l.headerSize += 2 + int64(table.Encode(symbol).PackedLen())
	}
	l.payloadBits = table.WeightedSize(freq)
	return l
}

// payloadSize includes the trailing padding byte.
func (l layout) payloadSize() int64 {
	return int64((l.payloadBits+7)/8) + 1
}

func (l layout) totalSize() int64 {
	return l.headerSize + l.payloadSize()
}

func (l layout) padding() uint8 {
	return uint8((8 - l.payloadBits%8) % 8)
}

// encodeTableSize maps 1..256 onto a single byte, with 0 standing for 256.
func encodeTableSize(n int) byte {
	assert.Assertf(n > 0 && n <= huffman.NumSymbols, "table size %d out of range", n)
	if n == huffman.NumSymbols {
		return 0
	}
	return byte(n)
}

func decodeTableSize(b byte) int {
	if b == 0 {
		return huffman.NumSymbols
	}
	return int(b)
}

func writeContainerHeader(w *bufio.Writer, table *huffman.CodeTable, totalChars uint32) error {
	var hdr [containerHeaderSize]byte
	hdr[0] = encodeTableSize(table.Len())
	binary.LittleEndian.PutUint32(hdr[1:], totalChars)
	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Wrap(err, "write header")
	}

	entry := make([]byte, 0, 2+huffman.MaxCodeSize/8)
	for _, symbol := range table.Symbols() {
		hc := table.Encode(symbol)
		entry = append(entry[:0], byte(symbol), hc.Size)
		entry = append(entry, hc.Pack()...)
		if _, err := w.Write(entry); err != nil {
			return errors.Wrapf(err, "write code table entry for symbol %s", huffman.FormatSymbol(symbol))
		}
	}
	return nil
}

type containerHeader struct {
	tableSize  int
	totalChars uint32
}

func readContainerHeader(r io.Reader) (containerHeader, error) {
	var hdr [containerHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return containerHeader{}, readError(err, "header")
	}
	return containerHeader{
		tableSize:  decodeTableSize(hdr[0]),
		totalChars: binary.LittleEndian.Uint32(hdr[1:]),
	}, nil
}

// readCodeTable parses tableSize serialized entries and returns them along
// with the number of bytes consumed.
func readCodeTable(r io.Reader, tableSize int) (huffman.InverseTable, int64, error) {
	inv := make(huffman.InverseTable, tableSize)
	var n int64
	var entry [2]byte
	var packed [huffman.MaxCodeSize / 8]byte
	for i := 0; i < tableSize; i++ {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, n, readError(err, "code table")
		}
		symbol, size := huffman.Symbol(entry[0]), entry[1]
		if size == 0 || size > huffman.MaxCodeSize {
			return nil, n, errors.Wrapf(ErrMalformed, "invalid code length %d for symbol %s", size, huffman.FormatSymbol(symbol))
		}

		m := (int(size) + 7) / 8
		if _, err := io.ReadFull(r, packed[:m]); err != nil {
			return nil, n, readError(err, "code table")
		}
		hc, err := huffman.UnpackCode(size, packed[:m])
		if err != nil {
			return nil, n, errors.Wrap(ErrMalformed, err.Error())
		}
		if err := inv.Add(hc, symbol); err != nil {
			return nil, n, errors.Wrap(ErrMalformed, err.Error())
		}
		n += 2 + int64(m)
	}
	return inv, n, nil
}

// readError classifies a failed read: running out of data means the
// container is truncated, anything else is an I/O error.
func readError(err error, what string) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return errors.Wrapf(ErrMalformed, "truncated %s", what)
	}
	return errors.Wrapf(err, "read %s", what)
}
