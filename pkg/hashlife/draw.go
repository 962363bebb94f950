package hashlife

import "math"

// DrawTupleSize is the number of floats per block in the output of Draw.
const DrawTupleSize = 4

// Block is a rectangle of live cells in viewport pixels.
type Block struct {
	X, Y, W, H float64
}

// DrawBlocks lists the live regions visible in a width x height pixel
// viewport. Cell (cx, cy) covers the pixels starting at
// (x+offsetX+cx*size, y+offsetY+cy*size) and spans size pixels each way.
//
// The tree is walked depth first (NW, NE, SW, SE). Subtrees that are empty or
// outside the viewport are skipped. A fully live subtree, a single cell or a
// subtree no larger than one pixel is emitted as a single block. Blocks that
// straddle the viewport edge are clipped to it. A non-positive size or an
// empty viewport yields no blocks.
func (u *Universe) DrawBlocks(x, y, size, height, width, offsetX, offsetY float64) []Block {
	if !(size > 0) || !(width > 0) || !(height > 0) || u.Population() == 0 {
		return nil
	}
	level := u.Level()
	d := drawer{store: u.store, width: width, height: height}
	half := math.Ldexp(size, level-1)
	d.walk(u.root, x+offsetX-half, y+offsetY-half, math.Ldexp(size, level))
	return d.blocks
}

// Draw is DrawBlocks flattened into consecutive [x, y, w, h] tuples.
func (u *Universe) Draw(x, y, size, height, width, offsetX, offsetY float64) []float64 {
	blocks := u.DrawBlocks(x, y, size, height, width, offsetX, offsetY)
	out := make([]float64, 0, len(blocks)*DrawTupleSize)
	for _, b := range blocks {
		out = append(out, b.X, b.Y, b.W, b.H)
	}
	return out
}

type drawer struct {
	store         *Store
	width, height float64
	blocks        []Block
}

func (d *drawer) walk(id NodeID, px, py, side float64) {
	n := &d.store.nodes[id]
	if n.population == 0 || px+side <= 0 || py+side <= 0 || px >= d.width || py >= d.height {
		return
	}
	if n.level == 0 || side <= 1 || full(n) {
		d.emit(px, py, side)
		return
	}

	half := side / 2
	nw, ne, sw, se := n.nw, n.ne, n.sw, n.se
	d.walk(nw, px, py, half)
	d.walk(ne, px+half, py, half)
	d.walk(sw, px, py+half, half)
	d.walk(se, px+half, py+half, half)
}

func (d *drawer) emit(px, py, side float64) {
	x0, y0 := max(px, 0), max(py, 0)
	x1, y1 := min(px+side, d.width), min(py+side, d.height)
	d.blocks = append(d.blocks, Block{X: x0, Y: y0, W: x1 - x0, H: y1 - y0})
}

func full(n *node) bool {
	return n.level < 32 && n.population == 1<<(2*uint(n.level))
}
