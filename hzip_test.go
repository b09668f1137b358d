package hzip

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/hzip/huffman"
)

func compressBytes(t *testing.T, data []byte, opts Options) ([]byte, Stats) {
	t.Helper()
	var buf bytes.Buffer
	stats, err := Compress(&buf, bytes.NewReader(data), opts)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), stats.CompressedSize())
	require.Equal(t, int64(len(data)), stats.OriginalSize)
	return buf.Bytes(), stats
}

func decompressBytes(data []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	err := Decompress(&buf, bytes.NewReader(data), int64(len(data)), opts)
	return buf.Bytes(), err
}

func skewedRandom(n int, seed int64) []byte {
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, n)
	for i := range out {
		// Geometric-ish distribution over a small alphabet.
		b := byte(0)
		for b < 40 && rng.Intn(3) != 0 {
			b++
		}
		out[i] = 'A' + b
	}
	return out
}

func allSymbols() []byte {
	out := bytes.Repeat([]byte{0}, 100000)
	for i := 1; i < 256; i++ {
		out = append(out, bytes.Repeat([]byte{byte(i)}, 400)...)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	type testRow struct {
		Name  string
		Input []byte
	}

	testData := [...]testRow{
		{"single-byte", []byte("z")},
		{"repeated-byte", bytes.Repeat([]byte{'a'}, 1000)},
		{"two-symbols", []byte("ab")},
		{"text", []byte(strings.Repeat("the quick brown fox jumps over the lazy dog\n", 500))},
		{"all-symbols", allSymbols()},
		{"skewed-random", skewedRandom(50000, 42)},
	}

	for _, format := range []Format{FormatFramed, FormatRaw} {
		for _, row := range testData {
			row := row
			opts := Options{Format: format}
			t.Run(format.String()+"/"+row.Name, func(t *testing.T) {
				compressed, stats := compressBytes(t, row.Input, opts)
				if stats.Stored && format == FormatRaw {
					// A raw stored copy is not a container.
					require.Equal(t, row.Input, compressed)
					return
				}
				actual, err := decompressBytes(compressed, opts)
				require.NoError(t, err)
				require.Equal(t, row.Input, actual)
			})
		}
	}
}

func TestCompress_AllSymbolsTable(t *testing.T) {
	input := allSymbols()
	compressed, stats := compressBytes(t, input, Options{Format: FormatRaw})
	require.False(t, stats.Stored)
	require.Less(t, stats.CompressedSize(), int64(len(input)))
	require.Equal(t, byte(0), compressed[0], "a 256-entry table is recorded as 0")
}

func TestCompress_RawFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	random := make([]byte, 64*1024)
	_, _ = rng.Read(random)

	for _, input := range [][]byte{random, []byte("ab")} {
		compressed, stats := compressBytes(t, input, Options{Format: FormatRaw})
		require.True(t, stats.Stored)
		require.Equal(t, int64(0), stats.HeaderSize)
		require.Equal(t, input, compressed)
	}
}

func TestCompress_FramedFallback(t *testing.T) {
	input := []byte("ab")
	compressed, stats := compressBytes(t, input, Options{})
	require.True(t, stats.Stored)
	require.Equal(t, frameHeaderSize+len(input), len(compressed))
	require.Equal(t, frameMagic, string(compressed[:4]))
	require.Equal(t, byte(modeStored), compressed[5])

	actual, err := decompressBytes(compressed, Options{})
	require.NoError(t, err)
	require.Equal(t, input, actual)
}

func TestCompress_Empty(t *testing.T) {
	for _, format := range []Format{FormatFramed, FormatRaw} {
		var buf bytes.Buffer
		_, err := Compress(&buf, bytes.NewReader(nil), Options{Format: format})
		require.True(t, errors.Is(err, ErrEmptyInput), "%v", err)
		require.Equal(t, 0, buf.Len())
	}
}

func TestCompress_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	_, err := Compress(&buf, bytes.NewReader([]byte("abc")), Options{Format: Format(9)})
	require.Error(t, err)
	_, err = decompressBytes([]byte("abc"), Options{Format: Format(9)})
	require.Error(t, err)
}

func TestCompress_SingleSymbolLayout(t *testing.T) {
	compressed, stats := compressBytes(t, bytes.Repeat([]byte{'a'}, 1000), Options{Format: FormatRaw})

	require.False(t, stats.Stored)
	require.Equal(t, int64(8), stats.HeaderSize)
	require.Equal(t, int64(126), stats.PayloadSize)
	require.Equal(t, uint8(0), stats.Padding)
	require.Len(t, compressed, 134)

	require.Equal(t, []byte{1, 0xe8, 0x03, 0x00, 0x00, 'a', 1, 0x00}, compressed[:8])
	require.Equal(t, make([]byte, 125), compressed[8:133])
	require.Equal(t, byte(0), compressed[133])
}

func TestCompress_Padding(t *testing.T) {
	input := []byte(strings.Repeat("mississippi river ", 37))

	var freq huffman.FrequencyTable
	freq.Add(input)
	var tree huffman.Tree
	tree.Build(&freq)
	table := tree.CodeTable()
	bits := table.WeightedSize(&freq)

	compressed, stats := compressBytes(t, input, Options{Format: FormatRaw})
	require.False(t, stats.Stored)
	require.Equal(t, uint8((8-bits%8)%8), stats.Padding)
	require.Equal(t, stats.Padding, compressed[len(compressed)-1])
	require.Equal(t, int64((bits+7)/8)+1, stats.PayloadSize)

	// The decoder stops after the recorded symbol count, so the padding
	// byte does not influence the output.
	for padding := byte(0); padding < 8; padding++ {
		modified := append([]byte(nil), compressed...)
		modified[len(modified)-1] = padding
		actual, err := decompressBytes(modified, Options{Format: FormatRaw})
		require.NoError(t, err, "padding %d", padding)
		require.Equal(t, input, actual)
	}
}

func TestDecompress_Malformed(t *testing.T) {
	type testRow struct {
		Name   string
		Input  []byte
		Expect error
	}

	text := []byte(strings.Repeat("hello world, hello gophers\n", 20))
	valid, _ := compressBytes(t, text, Options{Format: FormatRaw})

	badPadding := append([]byte(nil), valid...)
	badPadding[len(badPadding)-1] = 8

	overcount := append([]byte(nil), valid...)
	overcount[1] += 100

	testData := [...]testRow{
		{"too-small", []byte{1, 0, 0, 0}, ErrTooSmall},
		{"missing-child", []byte{1, 4, 0, 0, 0, 'x', 1, 0x00, 0x10, 0}, ErrMalformed},
		{"duplicate-code", []byte{2, 1, 0, 0, 0, 'a', 1, 0x00, 'b', 1, 0x00, 0x00, 7}, ErrMalformed},
		{"prefix-conflict", []byte{2, 1, 0, 0, 0, 'a', 1, 0x00, 'b', 2, 0x00, 0x00, 6}, ErrMalformed},
		{"zero-length-code", []byte{1, 1, 0, 0, 0, 'a', 0, 0x00, 0}, ErrMalformed},
		{"oversized-code", []byte{1, 1, 0, 0, 0, 'a', 65, 0x00, 0}, ErrMalformed},
		{"truncated-table", []byte{3, 1, 0, 0, 0, 'a', 1, 0x00, 0}, ErrMalformed},
		{"bad-padding", badPadding, ErrMalformed},
		{"truncated-payload", overcount, ErrMalformed},
	}

	for _, row := range testData {
		row := row
		t.Run(row.Name, func(t *testing.T) {
			_, err := decompressBytes(row.Input, Options{Format: FormatRaw})
			require.Error(t, err)
			require.True(t, errors.Is(err, row.Expect), "expected %v, got %v", row.Expect, err)
		})
	}
}

func TestDecompress_Framed(t *testing.T) {
	text := []byte(strings.Repeat("framed containers carry a checksum\n", 40))
	valid, stats := compressBytes(t, text, Options{})
	require.False(t, stats.Stored)
	require.Equal(t, byte(modeHuffman), valid[5])

	corrupt := func(i int, b byte) []byte {
		out := append([]byte(nil), valid...)
		out[i] = b
		return out
	}

	type testRow struct {
		Name   string
		Input  []byte
		Expect error
	}

	testData := [...]testRow{
		{"too-small", valid[:frameHeaderSize-1], ErrTooSmall},
		{"bad-magic", corrupt(0, 'X'), ErrBadMagic},
		{"bad-version", corrupt(4, 2), ErrUnsupportedVersion},
		{"bad-mode", corrupt(5, 7), ErrMalformed},
		{"bad-checksum", corrupt(6, valid[6]^0xff), ErrChecksum},
		{"raw-container", valid[frameHeaderSize:], ErrBadMagic},
	}

	for _, row := range testData {
		row := row
		t.Run(row.Name, func(t *testing.T) {
			_, err := decompressBytes(row.Input, Options{})
			require.Error(t, err)
			require.True(t, errors.Is(err, row.Expect), "expected %v, got %v", row.Expect, err)
		})
	}
}

type recordingObserver struct {
	events   []string
	freq     *huffman.FrequencyTable
	table    *huffman.CodeTable
	fallback [2]int64
	stats    Stats
}

func (o *recordingObserver) Frequencies(freq *huffman.FrequencyTable) {
	o.events = append(o.events, "frequencies")
	o.freq = freq
}

func (o *recordingObserver) CodeTable(table *huffman.CodeTable) {
	o.events = append(o.events, "codetable")
	o.table = table
}

func (o *recordingObserver) Fallback(codedSize, originalSize int64) {
	o.events = append(o.events, "fallback")
	o.fallback = [2]int64{codedSize, originalSize}
}

func (o *recordingObserver) Compressed(stats Stats) {
	o.events = append(o.events, "compressed")
	o.stats = stats
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	_, stats := compressBytes(t, []byte("ab"), Options{Format: FormatRaw, Observer: obs})

	require.Equal(t, []string{"frequencies", "codetable", "fallback", "compressed"}, obs.events)
	require.Equal(t, uint64(2), obs.freq.Total())
	require.Equal(t, 2, obs.table.Len())
	require.Equal(t, [2]int64{13, 2}, obs.fallback)
	require.Equal(t, stats, obs.stats)

	obs = &recordingObserver{}
	_, stats = compressBytes(t, bytes.Repeat([]byte("abc"), 100), Options{Observer: obs})
	require.Equal(t, []string{"frequencies", "codetable", "compressed"}, obs.events)
	require.Equal(t, stats, obs.stats)
	require.Less(t, stats.Ratio(), 100.0)
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"", "framed", "FRAMED", " framed "} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		require.Equal(t, FormatFramed, f)
	}
	f, err := ParseFormat("raw")
	require.NoError(t, err)
	require.Equal(t, FormatRaw, f)

	_, err = ParseFormat("zip")
	require.Error(t, err)
	require.Equal(t, "Format(7)", Format(7).String())
}
