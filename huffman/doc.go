// Package huffman implements the Huffman code model for a byte alphabet:
// frequency tables, optimal prefix trees built from them, and the code tables
// derived from (or used to rebuild) those trees.
//
// Trees are stored as an arena of nodes addressed by NodeID.  Leaves are
// marked explicitly, so every byte value (including 0) is a valid leaf symbol.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
