package hashlife

import (
	"math/rand/v2"
	"sort"

	"mad-life/pkg/rule"
)

// naive is an unbounded reference stepper over a set of live cells.
type naive struct {
	rule  rule.Rule
	cells map[Cell]bool
}

func newNaive(r rule.Rule, cells []Cell) *naive {
	n := &naive{rule: r, cells: map[Cell]bool{}}
	for _, c := range cells {
		n.cells[c] = true
	}
	return n
}

func (n *naive) step() {
	counts := map[Cell]int{}
	for c := range n.cells {
		counts[c] += 0
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					counts[Cell{X: c.X + dx, Y: c.Y + dy}]++
				}
			}
		}
	}
	next := map[Cell]bool{}
	for c, k := range counts {
		if n.rule.Next(n.cells[c], k) {
			next[c] = true
		}
	}
	n.cells = next
}

func (n *naive) sorted() []Cell {
	out := make([]Cell, 0, len(n.cells))
	for c := range n.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

func soup(seed uint64, radius int64, count int) []Cell {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	cells := make([]Cell, count)
	for i := range cells {
		cells[i] = Cell{X: r.Int64N(2*radius) - radius, Y: r.Int64N(2*radius) - radius}
	}
	return cells
}

func coords(cells []Cell) (xs, ys []int64) {
	for _, c := range cells {
		xs = append(xs, c.X)
		ys = append(ys, c.Y)
	}
	return xs, ys
}

var glider = []Cell{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

func shift(cells []Cell, dx, dy int64) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{X: c.X + dx, Y: c.Y + dy}
	}
	return newNaive(rule.Conway, out).sorted()
}
