package huffman

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

const readChunkSize = 32 * 1024

// FrequencyTable counts the occurrences of each Symbol in some input.  The
// zero value is an empty table, ready for use.
type FrequencyTable struct {
	counts [NumSymbols]uint64
	total  uint64
}

// Add counts every byte of p.
func (ft *FrequencyTable) Add(p []byte) {
	for _, b := range p {
		ft.counts[b]++
	}
	ft.total += uint64(len(p))
}

// ReadFrom counts every byte read from r until EOF.
func (ft *FrequencyTable) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, readChunkSize)
	var n int64
	for {
		m, err := r.Read(buf)
		ft.Add(buf[:m])
		n += int64(m)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, errors.Wrap(err, "read input")
		}
	}
}

var _ io.ReaderFrom = (*FrequencyTable)(nil)

// Count returns the number of occurrences of symbol.
func (ft *FrequencyTable) Count(symbol Symbol) uint64 {
	return ft.counts[symbol]
}

// Total returns the number of Symbols counted so far.
func (ft *FrequencyTable) Total() uint64 {
	return ft.total
}

// Len returns the number of distinct Symbols with a non-zero count.
func (ft *FrequencyTable) Len() int {
	var n int
	for _, count := range ft.counts {
		if count != 0 {
			n++
		}
	}
	return n
}

// Symbols lists the Symbols with a non-zero count, in ascending order.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ft.Len())
	for symbol, count := range ft.counts {
		if count != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	fmt.Fprintf(&buf, "\tTotal() = %d\n", ft.total)
	for _, symbol := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tCount(%s) = %d\n", FormatSymbol(symbol), ft.counts[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// FormatSymbol renders a Symbol as a quoted character when printable, or as a
// hex escape otherwise.
func FormatSymbol(symbol Symbol) string {
	if symbol < 0x80 && strconv.IsPrint(rune(symbol)) {
		return strconv.QuoteRune(rune(symbol))
	}
	return fmt.Sprintf("'\\x%02x'", byte(symbol))
}
