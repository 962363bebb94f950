package hashlife

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SetupField replaces the pattern with live cells at (xs[i], ys[i]) and
// resets the generation counter. Duplicate coordinates are allowed. The
// rewind state is kept. On error the universe is unchanged.
func (u *Universe) SetupField(xs, ys []int64) error {
	if len(xs) != len(ys) {
		return errors.Wrapf(ErrLengthMismatch, "%d xs, %d ys", len(xs), len(ys))
	}

	var m uint64
	for i := range xs {
		m = max(m, extent(xs[i]), extent(ys[i]))
	}
	level := levelFor(m)
	if level > MaxLevel {
		return errors.Wrapf(ErrOutOfRange, "pattern needs level %d", level)
	}

	u.maybeCollect()

	points := make([]Cell, len(xs))
	for i := range xs {
		points[i] = Cell{X: xs[i], Y: ys[i]}
	}
	half := int64(1) << (level - 1)
	u.root = u.build(points, level, -half, -half)
	u.generation = 0
	u.log.Debug("field set up", zap.Int("cells", len(points)), zap.Int("level", level))
	return nil
}

// build constructs the node of the given level whose top-left cell is
// (left, top) from the points inside it. points is reordered in place.
func (u *Universe) build(points []Cell, level int, left, top int64) NodeID {
	s := u.store
	if len(points) == 0 {
		return s.Empty(level)
	}
	if level == 2 {
		var bits uint16
		for _, p := range points {
			bits |= 1 << ((p.Y-top)*4 + p.X - left)
		}
		return s.Level2(bits)
	}

	half := int64(1) << (level - 1)
	midX, midY := left+half, top+half
	south := partition(points, func(p Cell) bool { return p.Y < midY })
	east := partition(points[:south], func(p Cell) bool { return p.X < midX })
	southEast := south + partition(points[south:], func(p Cell) bool { return p.X < midX })

	return s.Node(
		u.build(points[:east], level-1, left, top),
		u.build(points[east:south], level-1, midX, top),
		u.build(points[south:southEast], level-1, left, midY),
		u.build(points[southEast:], level-1, midX, midY),
	)
}

// partition moves the points satisfying pred to the front and returns how
// many there are.
func partition(points []Cell, pred func(Cell) bool) int {
	i := 0
	for j := range points {
		if pred(points[j]) {
			points[i], points[j] = points[j], points[i]
			i++
		}
	}
	return i
}
