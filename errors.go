package hzip

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned when asked to compress zero bytes.
	ErrEmptyInput = errors.New("hzip: empty input")

	// ErrInputTooLarge is returned when the input holds more symbols than
	// the container's 4-byte symbol count can represent.
	ErrInputTooLarge = errors.New("hzip: input too large")

	// ErrTooSmall is returned when the input is shorter than the smallest
	// possible container.
	ErrTooSmall = errors.New("hzip: input too small to be a container")

	// ErrMalformed is returned when a container is corrupt: an ambiguous or
	// invalid code table, a bit sequence with no matching code, or a
	// truncated payload.
	ErrMalformed = errors.New("hzip: malformed container")

	// ErrBadMagic is returned when a framed container does not start with
	// the expected magic number.
	ErrBadMagic = errors.New("hzip: not an hzip file")

	// ErrUnsupportedVersion is returned for framed containers written by an
	// unknown format version.
	ErrUnsupportedVersion = errors.New("hzip: unsupported format version")

	// ErrChecksum is returned when the decompressed data does not match the
	// checksum recorded in a framed container.
	ErrChecksum = errors.New("hzip: checksum mismatch")
)
