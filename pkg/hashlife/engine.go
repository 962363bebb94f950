package hashlife

import "fmt"

// Advance returns the centre of id, one level down, 2^(level-2) generations
// later. id must be at least level 2.
//
// Level-2 nodes are evaluated through the rule table. Larger nodes are split
// into nine overlapping sub-squares which are advanced half way, recombined
// into four and advanced the rest of the way.
func (s *Store) Advance(id NodeID) NodeID {
	n := s.nodes[id]
	if n.level < 2 {
		panic(fmt.Sprintf("hashlife: cannot advance a level %d node", n.level))
	}
	if n.population == 0 {
		return s.Empty(int(n.level) - 1)
	}
	if r, ok := s.Result(id); ok {
		return r
	}

	var r NodeID
	if n.level == 2 {
		r = s.Level1(s.table.Centre(s.block4x4(n)))
	} else {
		nw, ne, sw, se := s.nodes[n.nw], s.nodes[n.ne], s.nodes[n.sw], s.nodes[n.se]

		n00 := s.Advance(n.nw)
		n01 := s.Advance(s.Node(nw.ne, ne.nw, nw.se, ne.sw))
		n02 := s.Advance(n.ne)
		n10 := s.Advance(s.Node(nw.sw, nw.se, sw.nw, sw.ne))
		n11 := s.Advance(s.Node(nw.se, ne.sw, sw.ne, se.nw))
		n12 := s.Advance(s.Node(ne.sw, ne.se, se.nw, se.ne))
		n20 := s.Advance(n.sw)
		n21 := s.Advance(s.Node(sw.ne, se.nw, sw.se, se.sw))
		n22 := s.Advance(n.se)

		r = s.Node(
			s.Advance(s.Node(n00, n01, n10, n11)),
			s.Advance(s.Node(n01, n02, n11, n12)),
			s.Advance(s.Node(n10, n11, n20, n21)),
			s.Advance(s.Node(n11, n12, n21, n22)),
		)
	}

	s.SetResult(id, r)
	return r
}

// AdvanceBy returns the centre of id, one level down, 2^step generations
// later. step must not exceed level-2.
//
// Until step reaches level-2 the nine sub-squares are the centred,
// un-advanced quarter-size squares, so only the final recursion moves time
// forward.
func (s *Store) AdvanceBy(id NodeID, step uint) NodeID {
	n := s.nodes[id]
	if uint(n.level) < step+2 {
		panic(fmt.Sprintf("hashlife: cannot advance a level %d node by 2^%d generations", n.level, step))
	}
	if uint(n.level) == step+2 {
		return s.Advance(id)
	}
	if n.population == 0 {
		return s.Empty(int(n.level) - 1)
	}
	if r, ok := s.StepResult(id, step); ok {
		return r
	}

	nw, ne, sw, se := s.nodes[n.nw], s.nodes[n.ne], s.nodes[n.sw], s.nodes[n.se]
	nwnw, nwne, nwsw, nwse := s.nodes[nw.nw], s.nodes[nw.ne], s.nodes[nw.sw], s.nodes[nw.se]
	nenw, nene, nesw, nese := s.nodes[ne.nw], s.nodes[ne.ne], s.nodes[ne.sw], s.nodes[ne.se]
	swnw, swne, swsw, swse := s.nodes[sw.nw], s.nodes[sw.ne], s.nodes[sw.sw], s.nodes[sw.se]
	senw, sene, sesw, sese := s.nodes[se.nw], s.nodes[se.ne], s.nodes[se.sw], s.nodes[se.se]

	n00 := s.Node(nwnw.se, nwne.sw, nwsw.ne, nwse.nw)
	n01 := s.Node(nwne.se, nenw.sw, nwse.ne, nesw.nw)
	n02 := s.Node(nenw.se, nene.sw, nesw.ne, nese.nw)
	n10 := s.Node(nwsw.se, nwse.sw, swnw.ne, swne.nw)
	n11 := s.Node(nwse.se, nesw.sw, swne.ne, senw.nw)
	n12 := s.Node(nesw.se, nese.sw, senw.ne, sene.nw)
	n20 := s.Node(swnw.se, swne.sw, swsw.ne, swse.nw)
	n21 := s.Node(swne.se, senw.sw, swse.ne, sesw.nw)
	n22 := s.Node(senw.se, sene.sw, sesw.ne, sese.nw)

	r := s.Node(
		s.AdvanceBy(s.Node(n00, n01, n10, n11), step),
		s.AdvanceBy(s.Node(n01, n02, n11, n12), step),
		s.AdvanceBy(s.Node(n10, n11, n20, n21), step),
		s.AdvanceBy(s.Node(n11, n12, n21, n22), step),
	)

	s.SetStepResult(id, step, r)
	return r
}

// block4x4 packs the cells of a level-2 node, bit y*4+x for cell (x, y).
func (s *Store) block4x4(n node) uint16 {
	var block uint16
	for i, child := range [4]NodeID{n.nw, n.ne, n.sw, n.se} {
		c := s.nodes[child]
		ox, oy := uint(i%2)*2, uint(i/2)*2
		for j, cell := range [4]NodeID{c.nw, c.ne, c.sw, c.se} {
			if cell == LiveCell {
				x, y := ox+uint(j%2), oy+uint(j/2)
				block |= 1 << (y*4 + x)
			}
		}
	}
	return block
}
