package core

import (
	"testing"
	"time"
)

func TestByteGridFillRectClips(t *testing.T) {
	g := NewByteGrid(4, 3)
	g.FillRect(-2, 1, 2, 10, 1)
	if got := g.Count(); got != 4 {
		t.Fatalf("filled %d cells, expected 4", got)
	}
	if g.At(0, 1) != 1 || g.At(1, 2) != 1 || g.At(2, 1) != 0 || g.At(0, 0) != 0 {
		t.Fatalf("unexpected grid contents %v", g.Cells())
	}
	if g.At(-1, 0) != 0 || g.At(4, 0) != 0 {
		t.Fatalf("reads outside the grid must be zero")
	}
	g.Clear()
	if g.Count() != 0 {
		t.Fatalf("clear left %d cells", g.Count())
	}
}

func TestFixedStep(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }

	if !fs.ShouldStep() {
		t.Fatalf("first tick should fire immediately")
	}
	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatalf("tick fired after half a period")
	}
	clock = clock.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatalf("tick did not fire after a full period")
	}

	clock = clock.Add(time.Second)
	steps := 0
	for fs.ShouldStep() {
		steps++
	}
	if steps != 2 {
		t.Fatalf("lag replayed %d ticks, expected 2", steps)
	}
	if fs.Rate() != 10 {
		t.Fatalf("rate %d, expected 10", fs.Rate())
	}
}

func TestParameterSnapshotLookup(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{IntParam("w", "Width", 3)}},
		{Name: "B", Params: []Parameter{StringParam("rule", "Rule", "B3/S23")}},
	}}
	p, ok := s.Lookup("rule")
	if !ok || p.Value != "B3/S23" || p.Type != ParamTypeString {
		t.Fatalf("lookup returned %+v, %v", p, ok)
	}
	if _, ok := s.Lookup("missing"); ok {
		t.Fatalf("lookup found a missing key")
	}

	c := ParameterControl{Min: 0, Max: 5, HasMin: true, HasMax: true}
	if c.Clamp(-3) != 0 || c.Clamp(9) != 5 || c.Clamp(2) != 2 {
		t.Fatalf("clamp ignored bounds")
	}
}

func TestRegistry(t *testing.T) {
	Register("", func(map[string]string) Sim { return nil })
	Register("zeta", nil)
	Register("test-b", func(map[string]string) Sim { return nil })
	Register("test-a", func(map[string]string) Sim { return nil })
	names := Names()
	if len(names) != 2 || names[0] != "test-a" || names[1] != "test-b" {
		t.Fatalf("names %v", names)
	}
}
