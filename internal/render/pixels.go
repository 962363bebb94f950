package render

import "image/color"

// Palette holds the colours used to paint a binary grid.
type Palette struct {
	On, Off color.Color
}

// DefaultPalette paints live cells white on black.
var DefaultPalette = Palette{On: color.White, Off: color.Black}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, p Palette) {
	rOn, gOn, bOn, aOn := p.On.RGBA()
	rOff, gOff, bOff, aOff := p.Off.RGBA()
	on := [4]byte{uint8(rOn >> 8), uint8(gOn >> 8), uint8(bOn >> 8), uint8(aOn >> 8)}
	off := [4]byte{uint8(rOff >> 8), uint8(gOff >> 8), uint8(bOff >> 8), uint8(aOff >> 8)}
	for i, c := range cells {
		px := off
		if c != 0 {
			px = on
		}
		copy(buf[i*4:i*4+4], px[:])
	}
}
