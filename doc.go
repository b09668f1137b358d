// Package hzip compresses and decompresses files with a two-pass,
// byte-oriented Huffman coder.
//
// Compression counts byte frequencies, builds an optimal prefix code, and
// writes a container holding the code table followed by the packed code
// bits.  When coding would not make the data smaller, the input is stored
// verbatim instead.
//
// Two container formats are supported.  FormatRaw is the bare container:
//
//     tableSize    1 byte   distinct symbols (0 means 256)
//     totalChars   4 bytes  little-endian count of encoded symbols
//     codeTable    repeated symbol(1) + codeLength(1) + packed code bits
//     payload      packed code bits, MSB-first
//     paddingCount 1 byte   zero bits appended to the last payload byte
//
// A stored FormatRaw file is simply a copy of the input and cannot be told
// apart from a container.  FormatFramed (the default) prefixes a magic
// number, a version, a stored/huffman mode byte and an xxhash64 checksum of
// the original data, so every output is self-identifying and verified on
// decompression.
//
package hzip
