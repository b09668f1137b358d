package hzip

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

const (
	frameMagic   = "HZIP"
	frameVersion = 1

	// magic(4) + version(1) + mode(1) + checksum(8)
	frameHeaderSize = 14
)

type frameMode byte

const (
	modeStored  frameMode = 0
	modeHuffman frameMode = 1
)

// frameHeader precedes the body of a FormatFramed file.  The checksum is the
// xxhash64 of the original, uncompressed data.
type frameHeader struct {
	mode     frameMode
	checksum uint64
}

func writeFrameHeader(w io.Writer, h frameHeader) error {
	var buf [frameHeaderSize]byte
	copy(buf[0:4], frameMagic)
	buf[4] = frameVersion
	buf[5] = byte(h.mode)
	binary.BigEndian.PutUint64(buf[6:], h.checksum)
	if _, err := w.Write(buf[:]); err != nil {
		return errors.Wrap(err, "write frame header")
	}
	return nil
}

func readFrameHeader(r io.ReaderAt, size int64) (frameHeader, error) {
	if size < frameHeaderSize {
		return frameHeader{}, errors.Wrapf(ErrTooSmall, "%d bytes, need at least %d", size, frameHeaderSize)
	}

	var buf [frameHeaderSize]byte
	if _, err := r.ReadAt(buf[:], 0); err != nil {
		return frameHeader{}, readError(err, "frame header")
	}
	if string(buf[0:4]) != frameMagic {
		return frameHeader{}, errors.Wrapf(ErrBadMagic, "invalid magic number: %q", buf[0:4])
	}
	if buf[4] != frameVersion {
		return frameHeader{}, errors.Wrapf(ErrUnsupportedVersion, "version %d", buf[4])
	}

	h := frameHeader{
		mode:     frameMode(buf[5]),
		checksum: binary.BigEndian.Uint64(buf[6:]),
	}
	switch h.mode {
	case modeStored, modeHuffman:
		return h, nil
	default:
		return frameHeader{}, errors.Wrapf(ErrMalformed, "unknown frame mode %d", h.mode)
	}
}
