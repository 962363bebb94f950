package rule

// Table maps every 4x4 block of cells to the state of its 2x2 centre one
// generation later. Input bit y*4+x is cell (x, y) of the block; output bit
// y*2+x is centre cell (x+1, y+1).
type Table [1 << 16]uint8

// NewTable evaluates r for every 4x4 block.
func NewTable(r Rule) *Table {
	t := &Table{}
	for block := 0; block < len(t); block++ {
		var out uint8
		for cy := 0; cy < 2; cy++ {
			for cx := 0; cx < 2; cx++ {
				x, y := cx+1, cy+1
				neighbours := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						neighbours += block >> ((y+dy)*4 + x + dx) & 1
					}
				}
				alive := block>>(y*4+x)&1 == 1
				if r.Next(alive, neighbours) {
					out |= 1 << (cy*2 + cx)
				}
			}
		}
		t[block] = out
	}
	return t
}

// Centre returns the next state of the 2x2 centre of block.
func (t *Table) Centre(block uint16) uint8 {
	return t[block]
}
