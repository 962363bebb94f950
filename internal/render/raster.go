package render

import (
	"math"

	"mad-life/internal/core"
	"mad-life/pkg/hashlife"
)

// Rasterize clears g and marks every grid cell touched by a block. Blocks are
// in grid units, as produced by hashlife.Universe.DrawBlocks for a viewport of
// g.W x g.H.
func Rasterize(g *core.ByteGrid, blocks []hashlife.Block) {
	g.Clear()
	for _, b := range blocks {
		x0 := int(math.Floor(b.X))
		y0 := int(math.Floor(b.Y))
		x1 := int(math.Ceil(b.X + b.W))
		y1 := int(math.Ceil(b.Y + b.H))
		g.FillRect(x0, y0, x1, y1, 1)
	}
}

// ASCII renders g as text rows, using live for non-zero cells and dead otherwise.
func ASCII(g *core.ByteGrid, live, dead byte) string {
	buf := make([]byte, 0, (g.W+1)*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) != 0 {
				buf = append(buf, live)
			} else {
				buf = append(buf, dead)
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
