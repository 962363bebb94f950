package hashlife

// NodeID identifies a canonical node inside a Store. IDs are indices into the
// store's arena and stay valid until the next Store.Collect.
type NodeID uint32

// The two level-0 leaves are allocated first in every store.
const (
	DeadCell NodeID = 0
	LiveCell NodeID = 1
)

// quad is the structural key of an internal node.
type quad struct {
	nw, ne, sw, se NodeID
}

// node is a square region of 2^level x 2^level cells.
//
// Leaves (level 0) are single cells with zero children. Internal nodes are
// immutable except for the two memo slots, which are tagged so that results
// computed under another rule (or another step) are never returned.
type node struct {
	quad
	level      uint8
	population uint64

	// result is the centre of the node after 2^(level-2) generations.
	result    NodeID
	resultTag uint32

	// stepResult is the centre after 2^step generations, step < level-2.
	stepResult NodeID
	stepTag    uint64
}

func stepTag(epoch uint32, step uint) uint64 {
	return uint64(epoch)<<8 | uint64(step)
}
