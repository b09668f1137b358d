package huffman

// Symbol represents one byte value of the input alphabet.
type Symbol byte

// NumSymbols is the number of distinct Symbols.
const NumSymbols = 256
