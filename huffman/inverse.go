package huffman

import (
	"sort"

	"github.com/pkg/errors"
)

// InverseTable maps Codes back to the Symbols they encode.  It is the form
// in which a serialized code table is read back, before Tree.Rebuild turns it
// into a decoding tree.
type InverseTable map[Code]Symbol

// Add records that hc encodes symbol.  It fails if hc is already taken.
func (inv InverseTable) Add(hc Code, symbol Symbol) error {
	if other, found := inv[hc]; found {
		return errors.Errorf("duplicate code %s for symbols %s and %s", hc, FormatSymbol(other), FormatSymbol(symbol))
	}
	inv[hc] = symbol
	return nil
}

// Codes lists the codes ordered by (Size, Bits) ascending.
func (inv InverseTable) Codes() []Code {
	keys := make(byCode, 0, len(inv))
	for hc := range inv {
		keys = append(keys, hc)
	}
	keys.Sort()
	return keys
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	as, ab := a.Size, a.Bits
	bs, bb := b.Size, b.Bits
	if as != bs {
		return as < bs
	}
	return ab < bb
}

var _ sort.Interface = byCode(nil)

// }}}
