//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter updates a single RGBA image based on binary cell data.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette Palette
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, palette Palette) *GridPainter {
	return &GridPainter{
		w:       w,
		h:       h,
		img:     ebiten.NewImage(w, h),
		buf:     make([]byte, 4*w*h),
		palette: palette,
	}
}

// Blit uploads the provided cells into the painter image and draws it scaled.
func (gp *GridPainter) Blit(dst *ebiten.Image, cells []uint8, scale int) {
	if len(cells) != gp.w*gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, cells, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
