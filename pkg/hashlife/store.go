package hashlife

import (
	"fmt"

	"mad-life/pkg/rule"
)

// Stats reports the size of a store and how well its memo table performs.
type Stats struct {
	Nodes       int
	Hits        uint64
	Misses      uint64
	Collections uint64
}

// Store owns every node of a universe and guarantees that structurally equal
// nodes share one NodeID, so identity comparison is equality comparison.
//
// The store also owns the memo table of the generation engine. Memo entries
// carry the rule epoch they were computed under; changing the rule bumps the
// epoch instead of walking the arena.
//
// A Store is not safe for concurrent use.
type Store struct {
	nodes  []node
	index  map[quad]NodeID
	empty  []NodeID
	level2 map[uint16]NodeID

	rule  rule.Rule
	table *rule.Table
	epoch uint32

	stats Stats
}

const initialCapacity = 1 << 12

// NewStore creates a store evaluating r.
func NewStore(r rule.Rule) *Store {
	s := &Store{
		nodes:  make([]node, 2, initialCapacity),
		index:  make(map[quad]NodeID, initialCapacity),
		level2: map[uint16]NodeID{},
		rule:   r,
		table:  rule.NewTable(r),
		epoch:  1,
	}
	s.nodes[LiveCell].population = 1
	return s
}

// Rule returns the rule results are currently computed under.
func (s *Store) Rule() rule.Rule { return s.rule }

// SetRule replaces the rule and invalidates every memoised result.
func (s *Store) SetRule(r rule.Rule) {
	if r == s.rule {
		return
	}
	s.rule = r
	s.table = rule.NewTable(r)
	s.epoch++
}

// Leaf returns the canonical single-cell node.
func (s *Store) Leaf(alive bool) NodeID {
	if alive {
		return LiveCell
	}
	return DeadCell
}

// Node returns the canonical node with the given children, creating it on
// first use. All four children must share a level.
func (s *Store) Node(nw, ne, sw, se NodeID) NodeID {
	key := quad{nw: nw, ne: ne, sw: sw, se: se}
	if id, ok := s.index[key]; ok {
		return id
	}

	level := s.nodes[nw].level
	if s.nodes[ne].level != level || s.nodes[sw].level != level || s.nodes[se].level != level {
		panic(fmt.Sprintf("hashlife: children of mismatched levels %d/%d/%d/%d",
			level, s.nodes[ne].level, s.nodes[sw].level, s.nodes[se].level))
	}

	id := NodeID(len(s.nodes))
	s.nodes = append(s.nodes, node{
		quad:  key,
		level: level + 1,
		population: s.nodes[nw].population + s.nodes[ne].population +
			s.nodes[sw].population + s.nodes[se].population,
	})
	s.index[key] = id
	return id
}

// Level1 builds a 2x2 node; bit 0 is NW, bit 1 NE, bit 2 SW and bit 3 SE.
func (s *Store) Level1(bits uint8) NodeID {
	return s.Node(
		s.Leaf(bits&1 != 0),
		s.Leaf(bits&2 != 0),
		s.Leaf(bits&4 != 0),
		s.Leaf(bits&8 != 0),
	)
}

// Level2 builds a 4x4 node from a bitmask where bit y*4+x is cell (x, y).
func (s *Store) Level2(bits uint16) NodeID {
	if id, ok := s.level2[bits]; ok {
		return id
	}
	quadrant := func(ox, oy uint) uint8 {
		at := func(x, y uint) uint8 { return uint8(bits>>(y*4+x)) & 1 }
		return at(ox, oy) | at(ox+1, oy)<<1 | at(ox, oy+1)<<2 | at(ox+1, oy+1)<<3
	}
	id := s.Node(
		s.Level1(quadrant(0, 0)),
		s.Level1(quadrant(2, 0)),
		s.Level1(quadrant(0, 2)),
		s.Level1(quadrant(2, 2)),
	)
	s.level2[bits] = id
	return id
}

// Empty returns the all-dead node of the given level.
func (s *Store) Empty(level int) NodeID {
	if len(s.empty) == 0 {
		s.empty = append(s.empty, DeadCell)
	}
	for len(s.empty) <= level {
		last := s.empty[len(s.empty)-1]
		s.empty = append(s.empty, s.Node(last, last, last, last))
	}
	return s.empty[level]
}

// Level returns the level of id.
func (s *Store) Level(id NodeID) int { return int(s.nodes[id].level) }

// Population returns the number of live cells below id.
func (s *Store) Population(id NodeID) uint64 { return s.nodes[id].population }

// Children returns the four quadrants of id. Leaves have no children and
// return DeadCell four times.
func (s *Store) Children(id NodeID) (nw, ne, sw, se NodeID) {
	n := &s.nodes[id]
	return n.nw, n.ne, n.sw, n.se
}

// Len returns the number of nodes in the arena, leaves included.
func (s *Store) Len() int { return len(s.nodes) }

// Stats returns counters describing the store.
func (s *Store) Stats() Stats {
	st := s.stats
	st.Nodes = len(s.nodes)
	return st
}

// Result looks up the memoised 2^(level-2)-generation result of id.
func (s *Store) Result(id NodeID) (NodeID, bool) {
	n := &s.nodes[id]
	if n.resultTag != s.epoch {
		s.stats.Misses++
		return 0, false
	}
	s.stats.Hits++
	return n.result, true
}

// SetResult memoises the 2^(level-2)-generation result of id.
func (s *Store) SetResult(id, result NodeID) {
	n := &s.nodes[id]
	n.result = result
	n.resultTag = s.epoch
}

// StepResult looks up the memoised 2^step-generation result of id.
func (s *Store) StepResult(id NodeID, step uint) (NodeID, bool) {
	n := &s.nodes[id]
	if n.stepTag != stepTag(s.epoch, step) {
		s.stats.Misses++
		return 0, false
	}
	s.stats.Hits++
	return n.stepResult, true
}

// SetStepResult memoises the 2^step-generation result of id.
func (s *Store) SetStepResult(id NodeID, step uint, result NodeID) {
	n := &s.nodes[id]
	n.stepResult = result
	n.stepTag = stepTag(s.epoch, step)
}

// Collect drops every node that is not reachable from roots, either as a
// subtree or through a valid memo entry, and compacts the arena. It returns
// the new IDs of roots in order; any other NodeID held by the caller is
// invalidated.
func (s *Store) Collect(roots ...NodeID) []NodeID {
	marked := make([]bool, len(s.nodes))
	marked[DeadCell], marked[LiveCell] = true, true

	var mark func(id NodeID)
	mark = func(id NodeID) {
		if marked[id] {
			return
		}
		marked[id] = true
		n := &s.nodes[id]
		mark(n.nw)
		mark(n.ne)
		mark(n.sw)
		mark(n.se)
		if n.resultTag == s.epoch {
			mark(n.result)
		}
		if uint32(n.stepTag>>8) == s.epoch {
			mark(n.stepResult)
		}
	}
	for _, root := range roots {
		mark(root)
	}

	remap := make([]NodeID, len(s.nodes))
	nodes := make([]node, 0, max(len(s.nodes)/2, initialCapacity))
	for id := range s.nodes {
		if marked[id] {
			remap[id] = NodeID(len(nodes))
			nodes = append(nodes, s.nodes[id])
		}
	}

	index := make(map[quad]NodeID, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		if n.level > 0 {
			n.quad = quad{nw: remap[n.nw], ne: remap[n.ne], sw: remap[n.sw], se: remap[n.se]}
			index[n.quad] = NodeID(i)
		}
		if n.resultTag == s.epoch {
			n.result = remap[n.result]
		} else {
			n.result, n.resultTag = 0, 0
		}
		if uint32(n.stepTag>>8) == s.epoch {
			n.stepResult = remap[n.stepResult]
		} else {
			n.stepResult, n.stepTag = 0, 0
		}
	}

	s.nodes = nodes
	s.index = index
	s.empty = s.empty[:0]
	clear(s.level2)
	s.stats.Collections++

	out := make([]NodeID, len(roots))
	for i, root := range roots {
		out[i] = remap[root]
	}
	return out
}
