package hzip

import (
	"bufio"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/hzip/bitstream"
	"github.com/chronos-tachyon/hzip/huffman"
)

const copyBufferSize = 32 * 1024

var errInputChanged = errors.New("hzip: input changed while it was being compressed")

// Compress reads all of src, derives a Huffman code from its byte
// frequencies, and writes the result to dst.
//
// The input is read twice: once to count symbols and once to encode them,
// so src must be seekable.  When the coded form would not be smaller than
// the input, Compress stores the input verbatim instead (as a stored frame
// for FormatFramed, or as a plain copy for FormatRaw).
//
// An empty input fails with ErrEmptyInput.
func Compress(dst io.Writer, src io.ReadSeeker, opts Options) (Stats, error) {
	if err := checkFormat(opts.Format); err != nil {
		return Stats{}, err
	}
	obs := opts.observer()

	originalSize, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return Stats{}, errors.Wrap(err, "determine input size")
	}
	if originalSize > math.MaxUint32 {
		return Stats{}, errors.Wrapf(ErrInputTooLarge, "%d bytes exceeds the limit of %d", originalSize, uint64(math.MaxUint32))
	}
	if err := rewind(src); err != nil {
		return Stats{}, err
	}

	var freq huffman.FrequencyTable
	digest := xxhash.New()
	if _, err := freq.ReadFrom(io.TeeReader(src, digest)); err != nil {
		return Stats{}, err
	}
	if freq.Total() == 0 {
		return Stats{}, ErrEmptyInput
	}
	if freq.Total() != uint64(originalSize) {
		return Stats{}, errors.Wrapf(errInputChanged, "expected %d bytes, counted %d", originalSize, freq.Total())
	}
	obs.Frequencies(&freq)

	var tree huffman.Tree
	tree.Build(&freq)
	table := tree.CodeTable()
	obs.CodeTable(&table)

	plan := planContainer(&freq, &table)
	bw := bufio.NewWriter(dst)
	c := compression{
		w:        bw,
		src:      src,
		size:     originalSize,
		format:   opts.Format,
		checksum: digest.Sum64(),
	}

	var stats Stats
	if plan.totalSize() >= originalSize {
		obs.Fallback(plan.totalSize(), originalSize)
		stats, err = c.store()
	} else {
		stats, err = c.encode(&table, plan)
	}
	if err != nil {
		return Stats{}, err
	}
	if err := bw.Flush(); err != nil {
		return Stats{}, errors.Wrap(err, "write output")
	}

	obs.Compressed(stats)
	return stats, nil
}

type compression struct {
	w        *bufio.Writer
	src      io.ReadSeeker
	size     int64
	format   Format
	checksum uint64
}

func (c *compression) writeFrame(mode frameMode) (int64, error) {
	if c.format != FormatFramed {
		return 0, nil
	}
	if err := writeFrameHeader(c.w, frameHeader{mode: mode, checksum: c.checksum}); err != nil {
		return 0, err
	}
	return frameHeaderSize, nil
}

// store copies the input verbatim.
func (c *compression) store() (Stats, error) {
	frameSize, err := c.writeFrame(modeStored)
	if err != nil {
		return Stats{}, err
	}
	if err := rewind(c.src); err != nil {
		return Stats{}, err
	}

	n, err := io.CopyBuffer(c.w, c.src, make([]byte, copyBufferSize))
	if err != nil {
		return Stats{}, errors.Wrap(err, "copy input")
	}
	if n != c.size {
		return Stats{}, errors.Wrapf(errInputChanged, "expected %d bytes, copied %d", c.size, n)
	}

	return Stats{
		OriginalSize: c.size,
		HeaderSize:   frameSize,
		PayloadSize:  n,
		Stored:       true,
	}, nil
}

// encode writes the container: header, code table, packed codes and the
// padding byte.
func (c *compression) encode(table *huffman.CodeTable, plan layout) (Stats, error) {
	frameSize, err := c.writeFrame(modeHuffman)
	if err != nil {
		return Stats{}, err
	}
	if err := writeContainerHeader(c.w, table, uint32(c.size)); err != nil {
		return Stats{}, err
	}
	if err := rewind(c.src); err != nil {
		return Stats{}, err
	}

	bits := bitstream.NewWriter(c.w)
	buf := make([]byte, copyBufferSize)
	var n int64
	for {
		m, readErr := c.src.Read(buf)
		for _, b := range buf[:m] {
			hc := table.Encode(huffman.Symbol(b))
			if hc.Size == 0 {
				return Stats{}, errors.Wrapf(errInputChanged, "symbol %s was never counted", huffman.FormatSymbol(huffman.Symbol(b)))
			}
			if err := bits.WriteUint(hc.Bits, hc.Size); err != nil {
				return Stats{}, errors.Wrap(err, "write payload")
			}
		}
		n += int64(m)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return Stats{}, errors.Wrap(readErr, "read input")
		}
	}
	if n != c.size || bits.BitsWritten() != plan.payloadBits {
		return Stats{}, errors.Wrapf(errInputChanged, "expected %d bytes, encoded %d", c.size, n)
	}

	padding, err := bits.FlushAndGetPadding()
	if err != nil {
		return Stats{}, errors.Wrap(err, "write payload")
	}
	if err := c.w.WriteByte(padding); err != nil {
		return Stats{}, errors.Wrap(err, "write padding")
	}

	return Stats{
		OriginalSize: c.size,
		HeaderSize:   frameSize + plan.headerSize,
		PayloadSize:  plan.payloadSize(),
		Padding:      padding,
	}, nil
}

func rewind(src io.Seeker) error {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "rewind input")
	}
	return nil
}

func checkFormat(f Format) error {
	switch f {
	case FormatFramed, FormatRaw:
		return nil
	default:
		return errors.Errorf("unknown format %v", f)
	}
}
