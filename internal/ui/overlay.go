//go:build ebiten

package ui

import (
	"image/color"

	"mad-life/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status line and key help on top of the simulation view.
type Overlay struct {
	sim      core.Sim
	showHelp bool
	backdrop *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim) *Overlay {
	o := &Overlay{sim: sim, showHelp: true}
	o.backdrop = ebiten.NewImage(1, 1)
	o.backdrop.Fill(color.RGBA{A: 160})
	return o
}

// Update toggles the help panel.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image, paused bool) {
	face := basicfont.Face7x13
	fg := color.RGBA{R: 230, G: 230, B: 120, A: 255}

	lines := []string{}
	if provider, ok := o.sim.(core.ParameterProvider); ok {
		lines = append(lines, StatusLine(provider.Parameters(), paused))
	}
	if o.showHelp {
		lines = append(lines, HelpLines...)
	}
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, line := range lines {
		width = max(width, text.BoundString(face, line).Dx())
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(width+2*overlayPadding), float64(len(lines)*overlayLineHeight+overlayPadding))
	screen.DrawImage(o.backdrop, op)

	for i, line := range lines {
		text.Draw(screen, line, face, overlayPadding, overlayPadding+(i+1)*overlayLineHeight-4, fg)
	}
}

const (
	overlayPadding    = 6
	overlayLineHeight = 15
)
