package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
	mathbits "math/bits"

	"github.com/chronos-tachyon/assert"
	"github.com/pkg/errors"
)

// NodeID identifies a node within a Tree.
type NodeID int32

// InvalidNode is returned by some functions to clearly indicate that no node
// is being returned.
const InvalidNode = NodeID(-1)

type node struct {
	weight uint64
	left   NodeID
	right  NodeID
	symbol Symbol
	leaf   bool
}

// Tree is a binary prefix tree whose leaves hold Symbols.  Descending to the
// left child appends a 0 bit to the path, descending to the right appends a 1.
//
// The zero value is an empty tree.
type Tree struct {
	nodes []node
	root  NodeID
}

// Build constructs an optimal Huffman tree for the given frequencies.  At
// least one Symbol must have a non-zero count.
//
// Nodes are merged two at a time from a min-heap keyed on weight; the first
// node popped becomes the left child.  Equal weights are ordered by NodeID,
// which makes the result deterministic.  A single-Symbol alphabet gets a
// synthetic root so that its only code is "0" rather than the empty code.
//
func (t *Tree) Build(freq *FrequencyTable) {
	symbols := freq.Symbols()
	numLeaves := len(symbols)
	assert.Assertf(numLeaves > 0, "cannot build a Huffman tree from an empty FrequencyTable")

	*t = Tree{nodes: make([]node, 0, 2*numLeaves)}

	h := nodeHeap{tree: t, list: make([]NodeID, 0, numLeaves)}
	for _, symbol := range symbols {
		h.list = append(h.list, t.newLeaf(symbol, freq.Count(symbol)))
	}
	h.Init()

	if h.Len() == 1 {
		only := heap.Pop(&h).(NodeID)
		t.root = t.newInternal(only, InvalidNode)
		return
	}

	for h.Len() > 1 {
		a := heap.Pop(&h).(NodeID)
		b := heap.Pop(&h).(NodeID)
		heap.Push(&h, t.newInternal(a, b))
	}
	t.root = heap.Pop(&h).(NodeID)
}

// Rebuild reconstructs a tree from a table of codes.  Internal nodes are
// created on demand along each code's path, and the node at the end of the
// path becomes the leaf for that code's Symbol.
//
// Rebuild fails if the codes are not prefix-free or if any code is empty.
func (t *Tree) Rebuild(inv InverseTable) error {
	*t = Tree{nodes: make([]node, 0, 2*len(inv)+1)}
	t.root = t.newNode()

	for _, hc := range inv.Codes() {
		symbol := inv[hc]
		if hc.Size == 0 {
			return errors.Errorf("empty code for symbol %s", FormatSymbol(symbol))
		}

		id := t.root
		for i := byte(0); i < hc.Size; i++ {
			if t.nodes[id].leaf {
				other := t.nodes[id].symbol
				return errors.Errorf("code %s for symbol %s extends the code of symbol %s", hc, FormatSymbol(symbol), FormatSymbol(other))
			}
			bit := hc.Bit(i)
			next := t.Child(id, bit)
			if next == InvalidNode {
				next = t.newNode()
				t.setChild(id, bit, next)
			}
			id = next
		}

		n := &t.nodes[id]
		if n.left != InvalidNode || n.right != InvalidNode {
			return errors.Errorf("code %s for symbol %s is a prefix of another code", hc, FormatSymbol(symbol))
		}
		n.leaf = true
		n.symbol = symbol
	}
	return nil
}

// Empty returns true iff the tree has no nodes.
func (t *Tree) Empty() bool {
	return len(t.nodes) == 0
}

// Root returns the root node, or InvalidNode if the tree is empty.
func (t *Tree) Root() NodeID {
	if t.Empty() {
		return InvalidNode
	}
	return t.root
}

// Child returns the right child of id if bit is true, or the left child
// otherwise.  Returns InvalidNode if that child does not exist.
func (t *Tree) Child(id NodeID, bit bool) NodeID {
	n := &t.nodes[id]
	if bit {
		return n.right
	}
	return n.left
}

// IsLeaf returns true iff id is a leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.nodes[id].leaf
}

// SymbolOf returns the Symbol held by the leaf id.
func (t *Tree) SymbolOf(id NodeID) Symbol {
	n := &t.nodes[id]
	assert.Assertf(n.leaf, "node %d is not a leaf", id)
	return n.symbol
}

// CodeTable derives the code of every leaf by walking the tree depth-first.
// An empty tree yields an empty CodeTable.
func (t *Tree) CodeTable() CodeTable {
	var table CodeTable
	if t.Empty() {
		return table
	}

	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		id   NodeID
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, log2uint32(uint32(len(t.nodes)))+1)
	stack = append(stack, stackItem{id: t.root})

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		n := &t.nodes[top.id]
		if n.leaf {
			table.set(n.symbol, top.code)
			stack = stack[:len(stack)-1]
			continue
		}

		x := top.x
		top.x++
		switch x {
		case 0:
			if n.left != InvalidNode {
				stack = append(stack, stackItem{id: n.left, code: top.code.Append(false)})
			}
		case 1:
			if n.right != InvalidNode {
				stack = append(stack, stackItem{id: n.right, code: top.code.Append(true)})
			}
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return table
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tRoot() = %d\n", t.Root())
	for index, n := range t.nodes {
		if n.leaf {
			fmt.Fprintf(&buf, "\tNode(%d) = leaf %s, weight %d\n", index, FormatSymbol(n.symbol), n.weight)
		} else {
			fmt.Fprintf(&buf, "\tNode(%d) = {%d, %d}, weight %d\n", index, n.left, n.right, n.weight)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func (t *Tree) newNode() NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{left: InvalidNode, right: InvalidNode})
	return id
}

func (t *Tree) newLeaf(symbol Symbol, weight uint64) NodeID {
	id := t.newNode()
	n := &t.nodes[id]
	n.symbol = symbol
	n.weight = weight
	n.leaf = true
	return id
}

func (t *Tree) newInternal(left, right NodeID) NodeID {
	weight := t.nodes[left].weight
	if right != InvalidNode {
		weight += t.nodes[right].weight
	}
	id := t.newNode()
	n := &t.nodes[id]
	n.left = left
	n.right = right
	n.weight = weight
	return id
}

func (t *Tree) setChild(id NodeID, bit bool, child NodeID) {
	n := &t.nodes[id]
	if bit {
		n.right = child
	} else {
		n.left = child
	}
}

// log2uint32 approximates the depth of a balanced tree over x nodes.
func log2uint32(x uint32) uint32 {
	if x == 0 {
		x = 1
	}
	return uint32(32 - mathbits.LeadingZeros32(x))
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []NodeID
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := h.tree.nodes[a].weight, h.tree.nodes[b].weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(NodeID))
}

func (h *nodeHeap) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
