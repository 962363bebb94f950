// Package pattern reads and writes Life patterns as coordinate lists ready
// for hashlife.Universe.SetupField.
package pattern

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"mad-life/pkg/core"
	"mad-life/pkg/hashlife"
	"mad-life/pkg/rule"
)

// ErrSyntax is returned for malformed pattern files.
var ErrSyntax = errors.New("pattern: syntax error")

// Pattern is a set of live cells with optional metadata.
type Pattern struct {
	Name     string
	Comments []string
	// Rule is nil when the source does not name one.
	Rule   *rule.Rule
	XS, YS []int64
}

// FromCells builds a pattern from a list of live cells.
func FromCells(cells []hashlife.Cell) *Pattern {
	return &Pattern{
		XS: lo.Map(cells, func(c hashlife.Cell, _ int) int64 { return c.X }),
		YS: lo.Map(cells, func(c hashlife.Cell, _ int) int64 { return c.Y }),
	}
}

// Soup returns a w x h random pattern centred on the origin in which every
// cell is alive with probability density.
func Soup(rng *core.RNG, w, h int, density float64) *Pattern {
	p := &Pattern{Name: "soup"}
	rng.Scatter(-int64(w/2), -int64(h/2), w, h, density, p.add)
	return p
}

func (p *Pattern) add(x, y int64) {
	p.XS = append(p.XS, x)
	p.YS = append(p.YS, y)
}

// Len returns the number of coordinates, duplicates included.
func (p *Pattern) Len() int { return len(p.XS) }

// Cells returns the distinct live cells ordered by row, then column.
func (p *Pattern) Cells() []hashlife.Cell {
	cells := lo.Uniq(lo.Map(p.XS, func(x int64, i int) hashlife.Cell {
		return hashlife.Cell{X: x, Y: p.YS[i]}
	}))
	slices.SortFunc(cells, func(a, b hashlife.Cell) int {
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
	return cells
}

// Bounds returns the inclusive bounding box of the pattern, or
// hashlife.EmptyBounds when it has no cells.
func (p *Pattern) Bounds() hashlife.Bounds {
	if p.Len() == 0 {
		return hashlife.EmptyBounds
	}
	return hashlife.Bounds{
		MinX: lo.Min(p.XS),
		MinY: lo.Min(p.YS),
		MaxX: lo.Max(p.XS),
		MaxY: lo.Max(p.YS),
	}
}

// Translate moves every cell by (dx, dy).
func (p *Pattern) Translate(dx, dy int64) {
	for i := range p.XS {
		p.XS[i] += dx
		p.YS[i] += dy
	}
}

// Centre moves the pattern so its bounding box is centred on the origin.
func (p *Pattern) Centre() {
	b := p.Bounds()
	if b.IsEmpty() {
		return
	}
	p.Translate(-(b.MinX+b.MaxX)/2, -(b.MinY+b.MaxY)/2)
}

// Apply loads the pattern into u, switching to the pattern's rule if it names one.
func (p *Pattern) Apply(u *hashlife.Universe) error {
	if p.Rule != nil {
		if err := u.SetRule(*p.Rule); err != nil {
			return err
		}
	}
	return u.SetupField(p.XS, p.YS)
}

// Fingerprint hashes the set of live cells. It ignores duplicates and
// ordering but not position.
func (p *Pattern) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [16]byte
	for _, c := range p.Cells() {
		binary.LittleEndian.PutUint64(buf[:8], uint64(c.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(c.Y))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
