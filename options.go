package hzip

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Format selects the on-disk container layout.
type Format byte

const (
	// FormatFramed wraps every output in a self-identifying frame.
	FormatFramed Format = iota

	// FormatRaw writes the bare container, and a verbatim copy of the input
	// when compression does not pay off.
	FormatRaw
)

// String returns the name of this Format.
func (f Format) String() string {
	switch f {
	case FormatFramed:
		return "framed"
	case FormatRaw:
		return "raw"
	default:
		return fmt.Sprintf("Format(%d)", byte(f))
	}
}

// ParseFormat is the inverse of Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "framed":
		return FormatFramed, nil
	case "raw":
		return FormatRaw, nil
	default:
		return 0, errors.Errorf("unknown format %q", s)
	}
}

// Options configures Compress and Decompress.  The zero value selects
// FormatFramed and no Observer.
type Options struct {
	Format   Format
	Observer Observer
}

func (o Options) observer() Observer {
	if o.Observer == nil {
		return NopObserver{}
	}
	return o.Observer
}
