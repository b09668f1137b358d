// Command hzip compresses and decompresses files with Huffman coding.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/hzip"
)

const usageText = `Usage: hzip [-raw] [-v] -[c|d] <infile> <outfile>
Compress or decompress a file using Huffman coding.

Example: hzip -c input.txt output.hz
         hzip -d output.hz recovered.txt

Options:
  -c          Compress infile to outfile
  -d          Decompress infile to outfile
  -raw        Use the raw container, without frame header or checksum
  -v          Report symbol statistics and the compression ratio
  -h, --help  Show this help message

Environment:
  HZIP_FORMAT  Default container format: "framed" (default) or "raw"
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var (
		compress   bool
		decompress bool
		help       bool
		raw        bool
		verbose    bool
	)

	fs := flag.NewFlagSet("hzip", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&compress, "c", false, "compress")
	fs.BoolVar(&decompress, "d", false, "decompress")
	fs.BoolVar(&help, "h", false, "show help")
	fs.BoolVar(&help, "help", false, "show help")
	fs.BoolVar(&raw, "raw", false, "use the raw container")
	fs.BoolVar(&verbose, "v", false, "verbose")

	if err := fs.Parse(args); err != nil {
		return usageError(stderr, "Unknown command")
	}
	if help {
		fmt.Fprint(stdout, usageText)
		return 0
	}
	switch {
	case fs.NArg() < 2:
		return usageError(stderr, "Too few arguments")
	case fs.NArg() > 2:
		return usageError(stderr, "Too many arguments")
	case compress == decompress:
		return usageError(stderr, "Unknown command")
	}

	logger := NewLogger(stderr, verbose)

	opts, err := loadOptions(raw)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	opts.Observer = logObserver{log: logger}

	inputPath, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		logger.Errorf("%v", errors.Wrap(err, "resolve input path"))
		return 1
	}
	outputPath, err := filepath.Abs(fs.Arg(1))
	if err != nil {
		logger.Errorf("%v", errors.Wrap(err, "resolve output path"))
		return 1
	}

	if compress {
		_, err = hzip.CompressFile(inputPath, outputPath, opts)
	} else {
		err = hzip.DecompressFile(inputPath, outputPath, opts)
	}
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}
	return 0
}

func loadOptions(raw bool) (hzip.Options, error) {
	format, err := hzip.ParseFormat(os.Getenv("HZIP_FORMAT"))
	if err != nil {
		return hzip.Options{}, errors.Wrap(err, "HZIP_FORMAT")
	}
	if raw {
		format = hzip.FormatRaw
	}
	return hzip.Options{Format: format}, nil
}

func usageError(stderr io.Writer, msg string) int {
	fmt.Fprintf(stderr, "%s\n\n%s", msg, usageText)
	return 1
}
