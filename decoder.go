package hzip

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/hzip/bitstream"
	"github.com/chronos-tachyon/hzip/huffman"
)

// Decompress reads size bytes of compressed data from src and writes the
// original data to dst.
//
// With FormatFramed, the frame header is validated first and the output is
// checked against the recorded checksum; a mismatch yields ErrChecksum after
// the data has been written to dst.  With FormatRaw, src must hold a bare
// container.
func Decompress(dst io.Writer, src io.ReaderAt, size int64, opts Options) error {
	switch opts.Format {
	case FormatRaw:
		return decodeContainer(dst, src, size)
	case FormatFramed:
		return decodeFrame(dst, src, size)
	default:
		return checkFormat(opts.Format)
	}
}

func decodeFrame(dst io.Writer, src io.ReaderAt, size int64) error {
	hdr, err := readFrameHeader(src, size)
	if err != nil {
		return err
	}

	body := io.NewSectionReader(src, frameHeaderSize, size-frameHeaderSize)
	digest := xxhash.New()
	out := io.MultiWriter(dst, digest)

	switch hdr.mode {
	case modeStored:
		if _, err := io.CopyBuffer(out, body, make([]byte, copyBufferSize)); err != nil {
			return errors.Wrap(err, "copy stored data")
		}
	case modeHuffman:
		if err := decodeContainer(out, body, body.Size()); err != nil {
			return err
		}
	}

	if sum := digest.Sum64(); sum != hdr.checksum {
		return errors.Wrapf(ErrChecksum, "expected %016x, got %016x", hdr.checksum, sum)
	}
	return nil
}

// decodeContainer decodes the bare container held in src[0:size].
func decodeContainer(dst io.Writer, src io.ReaderAt, size int64) error {
	if size < minContainerSize {
		return errors.Wrapf(ErrTooSmall, "%d bytes, need at least %d", size, minContainerSize)
	}

	var last [1]byte
	if _, err := src.ReadAt(last[:], size-1); err != nil {
		return readError(err, "padding byte")
	}
	padding := last[0]
	if padding > 7 {
		return errors.Wrapf(ErrMalformed, "invalid padding %d", padding)
	}

	r := io.NewSectionReader(src, 0, size-1)
	hdr, err := readContainerHeader(r)
	if err != nil {
		return err
	}
	inv, tableBytes, err := readCodeTable(r, hdr.tableSize)
	if err != nil {
		return err
	}

	var tree huffman.Tree
	if err := tree.Rebuild(inv); err != nil {
		return errors.Wrap(ErrMalformed, err.Error())
	}

	payloadSize := size - 1 - containerHeaderSize - tableBytes
	return decodePayload(dst, &tree, bitstream.NewReader(r, payloadSize), hdr.totalChars)
}

// decodePayload walks the tree once per output symbol, stopping as soon as
// totalChars symbols have been emitted.  Anything left over is padding.
func decodePayload(dst io.Writer, tree *huffman.Tree, bits *bitstream.Reader, totalChars uint32) error {
	out := make([]byte, 0, copyBufferSize)
	flush := func() error {
		if len(out) == 0 {
			return nil
		}
		if _, err := dst.Write(out); err != nil {
			return errors.Wrap(err, "write output")
		}
		out = out[:0]
		return nil
	}

	root := tree.Root()
	for emitted := uint32(0); emitted < totalChars; emitted++ {
		id := root
		for !tree.IsLeaf(id) {
			bit, err := bits.ReadBit()
			if err == io.EOF {
				return errors.Wrapf(ErrMalformed, "payload ends after %d of %d symbols", emitted, totalChars)
			}
			if err != nil {
				return err
			}
			next := tree.Child(id, bit)
			if next == huffman.InvalidNode {
				return errors.Wrapf(ErrMalformed, "no code matches the bits of symbol %d", emitted)
			}
			id = next
		}

		out = append(out, byte(tree.SymbolOf(id)))
		if len(out) == cap(out) {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}
