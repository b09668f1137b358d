package hzip

import (
	"github.com/chronos-tachyon/hzip/huffman"
)

// Observer receives diagnostics while a file is compressed.  The core never
// prints anything itself; callers that want a report (such as the hzip
// command's -v flag) supply an Observer.
type Observer interface {
	// Frequencies is called once the input has been counted.
	Frequencies(freq *huffman.FrequencyTable)

	// CodeTable is called once the code table has been derived.
	CodeTable(table *huffman.CodeTable)

	// Fallback is called when the coded size would not be smaller than
	// the original, just before the input is stored verbatim.
	Fallback(codedSize, originalSize int64)

	// Compressed is called after the output has been written.
	Compressed(stats Stats)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Frequencies(*huffman.FrequencyTable) {}
func (NopObserver) CodeTable(*huffman.CodeTable)        {}
func (NopObserver) Fallback(int64, int64)               {}
func (NopObserver) Compressed(Stats)                    {}

var _ Observer = NopObserver{}
