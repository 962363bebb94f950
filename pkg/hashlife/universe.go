package hashlife

import (
	"context"
	"math/bits"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"mad-life/pkg/rule"
)

const (
	// MaxLevel is the largest tree the universe grows to. Level 62 keeps
	// every coordinate of the tree representable as an int64.
	MaxLevel = 62

	// MaxStep is the largest step exponent accepted by SetStep.
	MaxStep = 48

	minLevel = 3
)

// Cell is the coordinate of a live cell.
type Cell struct {
	X, Y int64
}

type snapshot struct {
	root       NodeID
	generation uint64
}

// Universe is an unbounded Life-like grid. The root node is centred on the
// origin: a root of level L covers [-2^(L-1), 2^(L-1)) on both axes.
type Universe struct {
	store      *Store
	root       NodeID
	generation uint64
	step       uint
	rewind     *snapshot

	nodeLimit int
	log       *zap.Logger
}

// New creates an empty universe at generation 0.
func New(opts ...Option) (*Universe, error) {
	o := newOptions(opts...)
	r, err := rule.New(uint(o.rule.Survive), uint(o.rule.Birth))
	if err != nil {
		return nil, err
	}
	if o.step > MaxStep {
		return nil, errors.Wrapf(ErrInvalidStep, "step %d exceeds %d", o.step, MaxStep)
	}

	u := &Universe{
		store:     NewStore(r),
		step:      o.step,
		nodeLimit: o.nodeLimit,
		log:       o.logger,
	}
	u.root = u.store.Empty(minLevel)
	return u, nil
}

// ClearPattern resets the universe to an empty pattern at generation 0 and
// drops the rewind state. The rule and step are kept.
func (u *Universe) ClearPattern() {
	u.store = NewStore(u.store.Rule())
	u.root = u.store.Empty(minLevel)
	u.generation = 0
	u.rewind = nil
	u.log.Debug("pattern cleared")
}

// SetBit sets or clears the cell at (x, y), growing the tree when a live cell
// is written outside of it.
func (u *Universe) SetBit(x, y int64, living bool) error {
	level := levelFor(extent(x), extent(y))
	if level > MaxLevel {
		return errors.Wrapf(ErrOutOfRange, "cell (%d, %d)", x, y)
	}
	if level > u.Level() {
		if !living {
			return nil
		}
		for u.Level() < level {
			u.root = u.expand(u.root)
		}
		u.log.Debug("universe grown", zap.Int("level", u.Level()))
	}
	u.root = u.setBit(u.root, x, y, living)
	return nil
}

func (u *Universe) setBit(id NodeID, x, y int64, living bool) NodeID {
	s := u.store
	level := s.Level(id)
	if level == 0 {
		return s.Leaf(living)
	}

	var offset int64
	if level >= 2 {
		offset = 1 << (level - 2)
	}
	nw, ne, sw, se := s.Children(id)
	switch {
	case x < 0 && y < 0:
		nw = u.setBit(nw, x+offset, y+offset, living)
	case y < 0:
		ne = u.setBit(ne, x-offset, y+offset, living)
	case x < 0:
		sw = u.setBit(sw, x+offset, y-offset, living)
	default:
		se = u.setBit(se, x-offset, y-offset, living)
	}
	return s.Node(nw, ne, sw, se)
}

// Bit reports whether the cell at (x, y) is alive. Cells outside the tree are dead.
func (u *Universe) Bit(x, y int64) bool {
	if levelFor(extent(x), extent(y)) > u.Level() {
		return false
	}

	s := u.store
	id := u.root
	for {
		if s.Population(id) == 0 {
			return false
		}
		level := s.Level(id)
		if level == 0 {
			return true
		}
		var offset int64
		if level >= 2 {
			offset = 1 << (level - 2)
		}
		nw, ne, sw, se := s.Children(id)
		switch {
		case x < 0 && y < 0:
			id, x, y = nw, x+offset, y+offset
		case y < 0:
			id, x, y = ne, x-offset, y+offset
		case x < 0:
			id, x, y = sw, x+offset, y-offset
		default:
			id, x, y = se, x-offset, y-offset
		}
	}
}

// NextGeneration advances the universe by 2^step generations, or by exactly
// one generation when single is set.
func (u *Universe) NextGeneration(single bool) error {
	step := u.step
	if single {
		step = 0
	}
	u.maybeCollect()
	return u.advance(step)
}

// Advance moves the universe forward by an arbitrary number of generations,
// decomposed into power-of-two steps. ctx is checked between steps; on
// cancellation the universe is left as it was before the call.
func (u *Universe) Advance(ctx context.Context, generations uint64) error {
	u.maybeCollect()
	root, generation := u.root, u.generation
	for k := uint(0); generations != 0; k++ {
		if generations&1 == 1 {
			step, reps := k, uint64(1)
			if step > MaxStep {
				step, reps = MaxStep, 1<<(step-MaxStep)
			}
			for ; reps > 0; reps-- {
				err := ctx.Err()
				if err == nil {
					err = u.advance(step)
				}
				if err != nil {
					u.root, u.generation = root, generation
					return errors.WithStack(err)
				}
			}
		}
		generations >>= 1
	}
	return nil
}

func (u *Universe) advance(step uint) error {
	root := u.root
	for u.store.Level(root) < int(step)+3 || !u.centred(root) {
		if u.store.Level(root) >= MaxLevel {
			return errors.Wrapf(ErrLevelOverflow, "advancing by 2^%d generations", step)
		}
		root = u.expand(root)
	}

	root = u.store.AdvanceBy(root, step)
	for u.store.Level(root) < minLevel {
		root = u.expand(root)
	}
	u.root = root
	u.generation += 1 << step
	return nil
}

// centred reports whether every live cell lies in the central sixteenth of
// root. A step of 2^(level-3) generations from such a root cannot reach past
// the result square.
func (u *Universe) centred(root NodeID) bool {
	s := u.store
	nw, ne, sw, se := s.Children(root)
	return s.Population(nw) == s.Population(s.nodes[s.nodes[nw].se].se) &&
		s.Population(ne) == s.Population(s.nodes[s.nodes[ne].sw].sw) &&
		s.Population(sw) == s.Population(s.nodes[s.nodes[sw].ne].ne) &&
		s.Population(se) == s.Population(s.nodes[s.nodes[se].nw].nw)
}

// expand wraps root in a tree one level higher with root at its centre.
func (u *Universe) expand(root NodeID) NodeID {
	s := u.store
	t := s.Empty(s.Level(root) - 1)
	nw, ne, sw, se := s.Children(root)
	return s.Node(
		s.Node(t, t, t, nw),
		s.Node(t, t, ne, t),
		s.Node(t, sw, t, t),
		s.Node(se, t, t, t),
	)
}

// SaveRewindState remembers the current pattern and generation, replacing any
// earlier snapshot.
func (u *Universe) SaveRewindState() {
	u.rewind = &snapshot{root: u.root, generation: u.generation}
	u.log.Debug("rewind state saved", zap.Uint64("generation", u.generation))
}

// HasRewindState reports whether a snapshot is available.
func (u *Universe) HasRewindState() bool { return u.rewind != nil }

// RestoreRewindState returns to the saved snapshot. The snapshot is kept, so
// it can be restored again.
func (u *Universe) RestoreRewindState() error {
	if u.rewind == nil {
		return errors.WithStack(ErrNoRewindState)
	}
	u.root = u.rewind.root
	u.generation = u.rewind.generation
	u.log.Debug("rewind state restored", zap.Uint64("generation", u.generation))
	return nil
}

// Step returns the step exponent used by NextGeneration(false).
func (u *Universe) Step() uint { return u.step }

// SetStep sets the step exponent; NextGeneration(false) then advances by 2^step.
func (u *Universe) SetStep(step uint) error {
	if step > MaxStep {
		return errors.Wrapf(ErrInvalidStep, "step %d exceeds %d", step, MaxStep)
	}
	u.step = step
	return nil
}

// Rule returns the rule in effect.
func (u *Universe) Rule() rule.Rule { return u.store.Rule() }

// SetRules replaces the rule with the given survive and birth masks.
func (u *Universe) SetRules(survive, birth uint) error {
	r, err := rule.New(survive, birth)
	if err != nil {
		return err
	}
	u.setRule(r)
	return nil
}

// SetRule replaces the rule after validating it.
func (u *Universe) SetRule(r rule.Rule) error {
	return u.SetRules(uint(r.Survive), uint(r.Birth))
}

func (u *Universe) setRule(r rule.Rule) {
	if r == u.store.Rule() {
		return
	}
	u.store.SetRule(r)
	u.log.Debug("rule changed", zap.Stringer("rule", r))
}

// Generation returns the number of generations advanced since the pattern was set up.
func (u *Universe) Generation() uint64 { return u.generation }

// Population returns the number of live cells.
func (u *Universe) Population() uint64 { return u.store.Population(u.root) }

// Level returns the level of the root node.
func (u *Universe) Level() int { return u.store.Level(u.root) }

// Stats returns node store statistics.
func (u *Universe) Stats() Stats { return u.store.Stats() }

// Cells returns every live cell ordered by row, then column.
func (u *Universe) Cells() []Cell {
	var cells []Cell
	half := int64(1) << (u.Level() - 1)
	u.collectCells(u.root, -half, -half, &cells)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

func (u *Universe) collectCells(id NodeID, left, top int64, cells *[]Cell) {
	s := u.store
	if s.Population(id) == 0 {
		return
	}
	level := s.Level(id)
	if level == 0 {
		*cells = append(*cells, Cell{X: left, Y: top})
		return
	}
	half := int64(1) << (level - 1)
	nw, ne, sw, se := s.Children(id)
	u.collectCells(nw, left, top, cells)
	u.collectCells(ne, left+half, top, cells)
	u.collectCells(sw, left, top+half, cells)
	u.collectCells(se, left+half, top+half, cells)
}

// CollectGarbage compacts the node store down to the nodes reachable from the
// current pattern and the rewind state.
func (u *Universe) CollectGarbage() {
	roots := []NodeID{u.root}
	if u.rewind != nil {
		roots = append(roots, u.rewind.root)
	}
	before := u.store.Len()
	out := u.store.Collect(roots...)
	u.root = out[0]
	if u.rewind != nil {
		u.rewind.root = out[1]
	}
	u.log.Debug("node store collected", zap.Int("before", before), zap.Int("after", u.store.Len()))
}

func (u *Universe) maybeCollect() {
	if u.nodeLimit <= 0 || u.store.Len() <= u.nodeLimit {
		return
	}
	u.CollectGarbage()
	if u.store.Len() > u.nodeLimit/2 {
		u.nodeLimit *= 2
		u.log.Debug("node limit raised", zap.Int("limit", u.nodeLimit))
	}
}

// extent returns how far from the origin a tree must reach to contain c:
// c must satisfy -extent <= c < extent.
func extent(c int64) uint64 {
	if c >= 0 {
		return uint64(c) + 1
	}
	return uint64(-(c + 1)) + 1
}

// levelFor returns the smallest level, at least minLevel, whose tree covers
// the given extents.
func levelFor(extents ...uint64) int {
	var m uint64 = 1 << (minLevel - 1)
	for _, e := range extents {
		m = max(m, e)
	}
	return bits.Len64(m-1) + 1
}
