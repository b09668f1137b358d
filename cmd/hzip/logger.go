package main

import (
	"io"
	"log"
	"strings"

	"github.com/chronos-tachyon/hzip"
	"github.com/chronos-tachyon/hzip/huffman"
)

// Logger is the minimal logging surface the command needs.
type Logger interface {
	Infof(format string, v ...any)
	Errorf(format string, v ...any)
}

type stdLogger struct {
	l       *log.Logger
	verbose bool
}

// NewLogger returns a Logger writing to w.  Infof output is dropped unless
// verbose is set.
func NewLogger(w io.Writer, verbose bool) Logger {
	return &stdLogger{l: log.New(w, "hzip: ", 0), verbose: verbose}
}

func (s *stdLogger) Infof(format string, v ...any) {
	if s.verbose {
		s.l.Printf(format, v...)
	}
}

func (s *stdLogger) Errorf(format string, v ...any) { s.l.Printf(format, v...) }

// logObserver reports compression progress through a Logger.
type logObserver struct {
	log Logger
}

func (o logObserver) Frequencies(freq *huffman.FrequencyTable) {
	var buf strings.Builder
	_, _ = freq.Dump(&buf)
	o.log.Infof("read %d bytes, %d distinct symbols\n%s", freq.Total(), freq.Len(), buf.String())
}

func (o logObserver) CodeTable(table *huffman.CodeTable) {
	var buf strings.Builder
	_, _ = table.Dump(&buf)
	o.log.Infof("code lengths %d..%d\n%s", table.MinSize(), table.MaxSize(), buf.String())
}

func (o logObserver) Fallback(codedSize, originalSize int64) {
	o.log.Infof("coded size %d is not smaller than original size %d, storing input as is", codedSize, originalSize)
}

func (o logObserver) Compressed(stats hzip.Stats) {
	o.log.Infof("%d -> %d bytes (header %d, payload %d, padding %d bits), ratio %.2f%%",
		stats.OriginalSize, stats.CompressedSize(), stats.HeaderSize, stats.PayloadSize, stats.Padding, stats.Ratio())
}

var _ hzip.Observer = logObserver{}
