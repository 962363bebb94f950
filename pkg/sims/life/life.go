package life

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"mad-life/internal/core"
	"mad-life/internal/render"
	rng "mad-life/pkg/core"
	"mad-life/pkg/hashlife"
	"mad-life/pkg/pattern"
)

// Life shows a window onto an unbounded hashlife universe.
type Life struct {
	cfg  Config
	u    *hashlife.Universe
	grid *core.ByteGrid
	log  *zap.Logger

	// originX, originY is the cell drawn at the centre of the grid.
	originX, originY int64
	zoom             int

	err error
}

// New returns a Life simulation with the provided configuration and an empty universe.
func New(cfg Config) (*Life, error) {
	log := zap.L().Named("life")
	u, err := hashlife.New(
		hashlife.WithRule(cfg.Rule),
		hashlife.WithStep(cfg.Step),
		hashlife.WithNodeLimit(cfg.NodeLimit),
		hashlife.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return &Life{
		cfg:  cfg,
		u:    u,
		grid: core.NewByteGrid(cfg.Width, cfg.Height),
		log:  log,
		zoom: cfg.Zoom,
	}, nil
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.grid.W, H: l.grid.H} }

// Universe exposes the underlying universe.
func (l *Life) Universe() *hashlife.Universe { return l.u }

// Err returns the last error raised while loading or stepping, if any.
func (l *Life) Err() error { return l.err }

// Cells rasterises the visible window. Values are 1 for live, 0 for dead.
func (l *Life) Cells() []uint8 {
	size := l.cellSize()
	render.Rasterize(l.grid, l.u.DrawBlocks(
		float64(l.grid.W/2), float64(l.grid.H/2), size,
		float64(l.grid.H), float64(l.grid.W),
		-float64(l.originX)*size, -float64(l.originY)*size,
	))
	return l.grid.Cells()
}

func (l *Life) cellSize() float64 {
	return 1 / float64(uint64(1)<<l.zoom)
}

// Reset reloads the configured pattern, or seeds a random soup, recentring
// the view on the origin.
func (l *Life) Reset(seed int64) {
	l.u.ClearPattern()
	l.originX, l.originY = 0, 0
	l.err = nil

	p, err := l.load(seed)
	if err == nil {
		err = p.Apply(l.u)
	}
	if err != nil {
		l.fail(err)
		return
	}
	l.log.Info("pattern loaded", zap.String("name", p.Name), zap.Uint64("population", l.u.Population()))
}

func (l *Life) load(seed int64) (*pattern.Pattern, error) {
	if l.cfg.Pattern == "" {
		return pattern.Soup(rng.NewRNG(seed), l.grid.W, l.grid.H, l.cfg.Density), nil
	}
	data, err := os.ReadFile(l.cfg.Pattern)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	p, err := pattern.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", l.cfg.Pattern)
	}
	p.Centre()
	return p, nil
}

// Step advances the universe by 2^step generations.
func (l *Life) Step() {
	if err := l.u.NextGeneration(false); err != nil {
		l.fail(err)
	}
}

// StepOnce advances the universe by a single generation.
func (l *Life) StepOnce() {
	if err := l.u.NextGeneration(true); err != nil {
		l.fail(err)
	}
}

func (l *Life) fail(err error) {
	l.err = err
	l.log.Error("simulation error", zap.Error(err))
}

// Pan moves the window by dx, dy grid pixels.
func (l *Life) Pan(dx, dy int) {
	l.originX += int64(dx) << l.zoom
	l.originY += int64(dy) << l.zoom
}

// Zoom zooms out by delta powers of two, or in when delta is negative.
func (l *Life) Zoom(delta int) {
	l.setZoom(min(max(l.zoom+delta, 0), MaxZoom))
}

// setZoom keeps the origin on a multiple of the pixel span so that nodes
// line up with grid pixels.
func (l *Life) setZoom(zoom int) {
	l.zoom = zoom
	mask := int64(1)<<zoom - 1
	l.originX &^= mask
	l.originY &^= mask
}

// CellAt returns the world cell under grid pixel (x, y).
func (l *Life) CellAt(x, y int) (int64, int64) {
	return l.originX + int64(x-l.grid.W/2)<<l.zoom, l.originY + int64(y-l.grid.H/2)<<l.zoom
}

// Toggle flips the cell under grid pixel (x, y).
func (l *Life) Toggle(x, y int) {
	cx, cy := l.CellAt(x, y)
	if err := l.u.SetBit(cx, cy, !l.u.Bit(cx, cy)); err != nil {
		l.fail(err)
	}
}

// Clear empties the universe.
func (l *Life) Clear() { l.u.ClearPattern() }

// SaveRewind snapshots the current pattern.
func (l *Life) SaveRewind() { l.u.SaveRewindState() }

// RestoreRewind returns to the snapshot and reports whether one existed.
func (l *Life) RestoreRewind() bool { return l.u.RestoreRewindState() == nil }

// StepSize returns the step exponent.
func (l *Life) StepSize() int { return int(l.u.Step()) }

// SetStepSize changes the step exponent, rejecting values out of range.
func (l *Life) SetStepSize(step int) bool {
	return step >= 0 && l.u.SetStep(uint(step)) == nil
}

// Parameters reports the window and engine state.
func (l *Life) Parameters() core.ParameterSnapshot {
	stats := l.u.Stats()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "View",
			Params: []core.Parameter{
				core.IntParam("w", "Width", int64(l.grid.W)),
				core.IntParam("h", "Height", int64(l.grid.H)),
				core.IntParam("zoom", "Zoom", int64(l.zoom)),
				core.IntParam("x", "Centre X", l.originX),
				core.IntParam("y", "Centre Y", l.originY),
			},
		},
		{
			Name: "Universe",
			Params: []core.Parameter{
				core.StringParam("rule", "Rule", l.u.Rule().String()),
				core.IntParam("step", "Step", int64(l.u.Step())),
				core.UintParam("generation", "Generation", l.u.Generation()),
				core.UintParam("population", "Population", l.u.Population()),
				core.IntParam("level", "Level", int64(l.u.Level())),
				core.FloatParam("density", "Soup density", l.cfg.Density),
			},
		},
		{
			Name: "Store",
			Params: []core.Parameter{
				core.IntParam("nodes", "Nodes", int64(stats.Nodes)),
				core.UintParam("hits", "Memo hits", stats.Hits),
				core.UintParam("misses", "Memo misses", stats.Misses),
			},
		},
	}}
}

// ParameterControls lists the HUD-adjustable parameters.
func (l *Life) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "step", Label: "Step", Step: 1, Min: 0, Max: hashlife.MaxStep, HasMin: true, HasMax: true},
		{Key: "zoom", Label: "Zoom", Step: 1, Min: 0, Max: MaxZoom, HasMin: true, HasMax: true},
	}
}

// SetIntParameter applies a HUD adjustment.
func (l *Life) SetIntParameter(key string, value int) bool {
	switch key {
	case "step":
		return l.SetStepSize(value)
	case "zoom":
		if value < 0 || value > MaxZoom {
			return false
		}
		l.setZoom(value)
		return true
	}
	return false
}

// MustNew is like New but panics on error.
func MustNew(cfg Config) *Life {
	l, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return l
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return MustNew(FromMap(cfg))
	})
}
