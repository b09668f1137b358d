package hzip

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// CompressFile compresses the file at inputPath into outputPath.  The output
// is written to a temporary file in the same directory and renamed into
// place on success, so a failed run never leaves a partial file behind.
func CompressFile(inputPath, outputPath string, opts Options) (Stats, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return Stats{}, errors.Wrap(err, "open input")
	}
	defer in.Close()

	var stats Stats
	err = writeFileAtomic(outputPath, func(w io.Writer) error {
		var err error
		stats, err = Compress(w, in, opts)
		return err
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// DecompressFile decompresses the file at inputPath into outputPath, with
// the same all-or-nothing behavior as CompressFile.
func DecompressFile(inputPath, outputPath string, opts Options) error {
	in, err := os.Open(inputPath)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return errors.Wrap(err, "stat input")
	}

	return writeFileAtomic(outputPath, func(w io.Writer) error {
		return Decompress(w, in, fi.Size(), opts)
	})
}

func writeFileAtomic(path string, fn func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	tmpPath := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = fn(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrap(err, "write output")
	}
	if err = f.Chmod(0o644); err != nil {
		return errors.Wrap(err, "chmod output")
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "close output")
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return errors.Wrap(err, "rename output")
	}
	return nil
}
