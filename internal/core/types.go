package core

import (
	"sort"

	"github.com/samber/lo"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// SingleStepper advances a sim by exactly one generation regardless of its
// configured step size.
type SingleStepper interface {
	StepOnce()
}

// Navigator lets the viewer move and scale the visible window of an unbounded sim.
type Navigator interface {
	Pan(dx, dy int)
	Zoom(delta int)
}

// Editor lets the viewer toggle the cell under a grid position and wipe the pattern.
type Editor interface {
	Toggle(x, y int)
	Clear()
}

// Rewinder keeps one snapshot the sim can return to.
type Rewinder interface {
	SaveRewind()
	RestoreRewind() bool
}

// StepSizer exposes the exponent of the generations advanced per Step.
type StepSizer interface {
	StepSize() int
	SetStepSize(step int) bool
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	names := lo.Keys(sims)
	sort.Strings(names)
	return names
}
