//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"mad-life/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view: the
// adjustable controls at the top, every other parameter listed below.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	title    string
	snapshot core.ParameterSnapshot

	controls []hudControlState
	setter   core.IntParameterSetter
	offsetX  int
}

type hudControlState struct {
	control   core.ParameterControl
	value     int
	hasValue  bool
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width <= 0 {
		return nil
	}
	h := &HUD{sim: sim, width: width, title: strings.ToUpper(sim.Name())}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
			minus := plus.Sub(image.Pt(buttonSize+buttonGap, 0))
			h.controls = append(h.controls, hudControlState{control: ctrl, top: top, minusRect: minus, plusRect: plus})
		}
	}
	h.setter, _ = sim.(core.IntParameterSetter)
	return h
}

// Update refreshes the cached parameter snapshot and handles clicks on the
// panel, which starts at screen column panelOffsetX.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.offsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	h.snapshot = provider.Parameters()
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		parsed, err := strconv.Atoi(param.Value)
		state.hasValue = ok && err == nil
		state.value = parsed
	}
	h.handleInput()
}

func (h *HUD) handleInput() {
	if h.setter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	pt := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		direction := 0
		switch {
		case pt.In(state.minusRect):
			direction = -1
		case pt.In(state.plusRect):
			direction = 1
		default:
			continue
		}
		step := max(state.control.Step, 1)
		target := state.control.Clamp(state.value + direction*step)
		if target != state.value && h.setter.SetIntParameter(state.control.Key, target) {
			state.value = target
		}
		return
	}
}

// Draw paints the HUD panel at column offsetX, as tall as the scaled simulation.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	for _, state := range h.controls {
		h.drawControl(state)
	}

	y := controlsTop + len(h.controls)*lineHeight + groupGap
	controlled := map[string]bool{}
	for _, state := range h.controls {
		controlled[state.control.Key] = true
	}
	for _, group := range h.snapshot.Groups {
		text.Draw(h.panel, group.Name, face, panelPadding, y, titleColor)
		y += rowHeight
		for _, param := range group.Params {
			if controlled[param.Key] {
				continue
			}
			text.Draw(h.panel, fmt.Sprintf("%-12s %s", param.Label, param.Value), face, panelPadding, y, labelColor)
			y += rowHeight
		}
		y += groupGap
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControl(state hudControlState) {
	face := basicfont.Face7x13
	labelY := state.top + labelBaseline
	text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)

	value, col := "--", dimColor
	if state.hasValue {
		value, col = strconv.Itoa(state.value), labelColor
	}
	valueX := state.minusRect.Min.X - buttonGap - text.BoundString(face, value).Dx()
	text.Draw(h.panel, value, face, valueX, labelY, col)

	enabled := state.hasValue && h.setter != nil
	h.drawButton(state.minusRect, "-", enabled && state.control.Clamp(state.value-1) != state.value)
	h.drawButton(state.plusRect, "+", enabled && state.control.Clamp(state.value+1) != state.value)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := color.RGBA{R: 54, G: 56, B: 64, A: 255}, color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg, fg = color.RGBA{R: 32, G: 34, B: 40, A: 255}, dimColor
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()+bounds.Dy())/2
	text.Draw(h.panel, label, face, x, y, fg)
}

var (
	titleColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor   = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	rowHeight      = 16
	groupGap       = 10
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
