//go:build ebiten

package app

import (
	"time"

	"mad-life/internal/core"
	"mad-life/internal/render"
	"mad-life/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const panStep = 8

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pace    *core.FixedStep

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H, render.DefaultPalette),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim),
		pace:     core.NewFixedStep(cfg.GPS),
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		paused:   cfg.Paused,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.pace.Reset()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.Reset(time.Now().UnixNano())
	}
	g.handleStepSize()
	g.handleRewind()
	g.handleNavigation()
	g.handleEditing()

	g.hud.Update(g.sim.Size().W * g.scale)
	g.overlay.Update()

	switch {
	case g.tickOnce:
		if s, ok := g.sim.(core.SingleStepper); ok {
			s.StepOnce()
		} else {
			g.sim.Step()
		}
		g.tickOnce = false
	case !g.paused && g.pace.ShouldStep():
		g.sim.Step()
	}
	return nil
}

func (g *Game) handleStepSize() {
	s, ok := g.sim.(core.StepSizer)
	if !ok {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		s.SetStepSize(s.StepSize() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		s.SetStepSize(s.StepSize() - 1)
	}
}

func (g *Game) handleRewind() {
	r, ok := g.sim.(core.Rewinder)
	if !ok {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) || inpututil.IsKeyJustPressed(ebiten.KeyS) {
		r.SaveRewind()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		r.RestoreRewind()
	}
}

func (g *Game) handleNavigation() {
	n, ok := g.sim.(core.Navigator)
	if !ok {
		return
	}
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowLeft):
		n.Pan(-panStep, 0)
	case ebiten.IsKeyPressed(ebiten.KeyArrowRight):
		n.Pan(panStep, 0)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		n.Pan(0, -panStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		n.Pan(0, panStep)
	}
	if _, dy := ebiten.Wheel(); dy > 0 {
		n.Zoom(-1)
	} else if dy < 0 {
		n.Zoom(1)
	}
}

func (g *Game) handleEditing() {
	e, ok := g.sim.(core.Editor)
	if !ok {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		e.Clear()
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	x, y := mx/g.scale, my/g.scale
	if size := g.sim.Size(); mx >= 0 && my >= 0 && x < size.W && y < size.H {
		e.Toggle(x, y)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.scale)
	g.overlay.Draw(screen, g.paused)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
