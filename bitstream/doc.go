// Package bitstream reads and writes individual bits packed MSB-first into
// bytes.  The first bit written becomes the most significant bit of its byte,
// and Reader returns bits in the same order.
package bitstream
