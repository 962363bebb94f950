package hashlife

import "math"

// Bounds is an inclusive box of cell coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY int64
}

// EmptyBounds is returned by RootBounds for a universe without live cells.
var EmptyBounds = Bounds{MinX: 1, MinY: 1, MaxX: 0, MaxY: 0}

// IsEmpty reports whether b contains no cells.
func (b Bounds) IsEmpty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Contains reports whether (x, y) lies inside b.
func (b Bounds) Contains(x, y int64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Floats returns [minX, minY, maxX, maxY], or four zeros for an empty box.
func (b Bounds) Floats() []float64 {
	if b.IsEmpty() {
		return []float64{0, 0, 0, 0}
	}
	return []float64{float64(b.MinX), float64(b.MinY), float64(b.MaxX), float64(b.MaxY)}
}

const (
	findLeft = 1 << iota
	findTop
	findRight
	findBottom

	findAll = findLeft | findTop | findRight | findBottom
)

// RootBounds returns the tightest box containing every live cell.
func (u *Universe) RootBounds() Bounds {
	if u.Population() == 0 {
		return EmptyBounds
	}
	b := Bounds{MinX: math.MaxInt64, MinY: math.MaxInt64, MaxX: math.MinInt64, MaxY: math.MinInt64}
	half := int64(1) << (u.Level() - 1)
	u.findBounds(u.root, -half, -half, findAll, &b)
	return b
}

// findBounds extends b with the cells of id. mask holds the sides id can
// still improve; a side is dropped once a sibling is known to lie further out.
func (u *Universe) findBounds(id NodeID, left, top int64, mask int, b *Bounds) {
	s := u.store
	if mask == 0 || s.Population(id) == 0 {
		return
	}

	level := s.Level(id)
	if level == 0 {
		b.MinX = min(b.MinX, left)
		b.MaxX = max(b.MaxX, left)
		b.MinY = min(b.MinY, top)
		b.MaxY = max(b.MaxY, top)
		return
	}

	side := int64(1) << level
	if left >= b.MinX && left+side-1 <= b.MaxX && top >= b.MinY && top+side-1 <= b.MaxY {
		return
	}

	nw, ne, sw, se := s.Children(id)
	maskNW, maskNE, maskSW, maskSE := mask, mask, mask, mask
	if s.Population(nw) != 0 {
		maskNE &^= findLeft
		maskSW &^= findTop
		maskSE &^= findLeft | findTop
	}
	if s.Population(ne) != 0 {
		maskNW &^= findRight
		maskSE &^= findTop
		maskSW &^= findRight | findTop
	}
	if s.Population(sw) != 0 {
		maskSE &^= findLeft
		maskNW &^= findBottom
		maskNE &^= findLeft | findBottom
	}
	if s.Population(se) != 0 {
		maskSW &^= findRight
		maskNE &^= findBottom
		maskNW &^= findRight | findBottom
	}

	half := side / 2
	u.findBounds(nw, left, top, maskNW, b)
	u.findBounds(ne, left+half, top, maskNE, b)
	u.findBounds(sw, left, top+half, maskSW, b)
	u.findBounds(se, left+half, top+half, maskSE, b)
}
