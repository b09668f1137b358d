package huffman

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// CodeTable maps each Symbol of an alphabet to its Code.  Symbols outside
// the alphabet have a zero-length Code.
type CodeTable struct {
	codes   [NumSymbols]Code
	count   int
	minSize byte
	maxSize byte
}

func (ct *CodeTable) set(symbol Symbol, hc Code) {
	if ct.codes[symbol].Size == 0 {
		ct.count++
	}
	ct.codes[symbol] = hc
	if ct.count == 1 || hc.Size < ct.minSize {
		ct.minSize = hc.Size
	}
	if hc.Size > ct.maxSize {
		ct.maxSize = hc.Size
	}
}

// Encode returns the Code for symbol, which has Size 0 if symbol is not part
// of the alphabet.
func (ct *CodeTable) Encode(symbol Symbol) Code {
	return ct.codes[symbol]
}

// Has returns true iff symbol is part of the alphabet.
func (ct *CodeTable) Has(symbol Symbol) bool {
	return ct.codes[symbol].Size != 0
}

// Len returns the number of Symbols in the alphabet.
func (ct *CodeTable) Len() int {
	return ct.count
}

// MinSize is the bit length of the shortest code.
func (ct *CodeTable) MinSize() byte {
	return ct.minSize
}

// MaxSize is the bit length of the longest code.
func (ct *CodeTable) MaxSize() byte {
	return ct.maxSize
}

// Symbols lists the alphabet in ascending order.
func (ct *CodeTable) Symbols() []Symbol {
	out := make([]Symbol, 0, ct.count)
	for symbol, hc := range ct.codes {
		if hc.Size != 0 {
			out = append(out, Symbol(symbol))
		}
	}
	return out
}

// WeightedSize returns the number of bits needed to encode every Symbol
// counted by freq, i.e. the sum of Count(s) × Encode(s).Size.
func (ct *CodeTable) WeightedSize(freq *FrequencyTable) uint64 {
	var sum uint64
	for symbol, hc := range ct.codes {
		sum += freq.Count(Symbol(symbol)) * uint64(hc.Size)
	}
	return sum
}

// Validate checks that no code is a prefix of another code.
func (ct *CodeTable) Validate() error {
	symbols := ct.Symbols()
	for i, a := range symbols {
		for _, b := range symbols[i+1:] {
			ca, cb := ct.codes[a], ct.codes[b]
			if ca.IsPrefixOf(cb) || cb.IsPrefixOf(ca) {
				return errors.Errorf("codes %s (symbol %s) and %s (symbol %s) are not prefix-free", ca, FormatSymbol(a), cb, FormatSymbol(b))
			}
		}
	}
	return nil
}

// Inverse returns the Code → Symbol mapping of this table.
func (ct *CodeTable) Inverse() (InverseTable, error) {
	inv := make(InverseTable, ct.count)
	for _, symbol := range ct.Symbols() {
		if err := inv.Add(ct.codes[symbol], symbol); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer.
func (ct *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", ct.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", ct.maxSize)
	for _, symbol := range ct.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", FormatSymbol(symbol), ct.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
