package life

import (
	"os"
	"path/filepath"
	"testing"

	"mad-life/internal/core"
	"mad-life/pkg/rule"
)

func newTestLife(t *testing.T, w, h int) *Life {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = w, h
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return l
}

func expectCells(t *testing.T, l *Life, step string, alive map[[2]int]bool) {
	t.Helper()
	cells := l.Cells()
	w := l.Size().W
	for y := 0; y < l.Size().H; y++ {
		for x := 0; x < w; x++ {
			got := cells[y*w+x] == 1
			if got != alive[[2]int{x, y}] {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", step, x, y, got, alive[[2]int{x, y}])
			}
		}
	}
}

func TestBlinkerOscillation(t *testing.T) {
	life := newTestLife(t, 5, 5)

	life.Toggle(2, 1)
	life.Toggle(2, 2)
	life.Toggle(2, 3)
	expectCells(t, life, "initial", map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true})

	life.Step()
	expectCells(t, life, "first step", map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true})

	life.Step()
	expectCells(t, life, "second step", map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true})

	if g := life.Universe().Generation(); g != 2 {
		t.Fatalf("generation %d, expected 2", g)
	}
}

func TestPanAndZoom(t *testing.T) {
	life := newTestLife(t, 8, 8)
	life.Toggle(4, 4)
	if x, y := life.CellAt(4, 4); x != 0 || y != 0 {
		t.Fatalf("centre pixel maps to (%d,%d)", x, y)
	}

	life.Pan(2, 0)
	expectCells(t, life, "panned", map[[2]int]bool{{2, 4}: true})

	life.Zoom(1)
	if x, y := life.CellAt(4, 4); x != 2 || y != 0 {
		t.Fatalf("centre pixel maps to (%d,%d) after zoom", x, y)
	}
	expectCells(t, life, "zoomed", map[[2]int]bool{{3, 4}: true})

	life.Zoom(-5)
	if life.zoom != 0 {
		t.Fatalf("zoom %d, expected clamp to 0", life.zoom)
	}
}

func TestRewindAndClear(t *testing.T) {
	life := newTestLife(t, 16, 16)
	life.Reset(7)
	before := life.Universe().Population()
	if before == 0 {
		t.Fatalf("soup is empty")
	}

	life.SaveRewind()
	life.StepOnce()
	life.StepOnce()
	if !life.RestoreRewind() {
		t.Fatalf("restore failed after save")
	}
	if got := life.Universe().Population(); got != before {
		t.Fatalf("population %d after restore, expected %d", got, before)
	}

	life.Clear()
	if life.RestoreRewind() {
		t.Fatalf("restore succeeded after clear")
	}
	if life.Universe().Population() != 0 {
		t.Fatalf("clear left live cells")
	}
}

func TestResetLoadsPattern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glider.rle")
	if err := os.WriteFile(path, []byte("x = 3, y = 3, rule = B36/S23\nbob$2bo$3o!\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := FromMap(map[string]string{"w": "9", "h": "9", "pattern": path})
	life, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	life.Reset(1)
	if err := life.Err(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := life.Universe().Rule().String(); got != "B36/S23" {
		t.Fatalf("rule %s, expected the pattern's B36/S23", got)
	}
	expectCells(t, life, "loaded", map[[2]int]bool{{4, 3}: true, {5, 4}: true, {3, 5}: true, {4, 5}: true, {5, 5}: true})

	cfg.Pattern = filepath.Join(t.TempDir(), "missing.rle")
	life, _ = New(cfg)
	life.Reset(1)
	if life.Err() == nil {
		t.Fatalf("missing pattern did not report an error")
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"w": "32", "h": "-1", "rule": "highlife", "step": "6", "zoom": "99", "density": "0.5", "node_limit": "100",
	})
	highLife, _ := rule.Lookup("highlife")
	if c.Width != 32 || c.Height != 256 || c.Rule != highLife || c.Step != 6 || c.Zoom != 0 || c.Density != 0.5 || c.NodeLimit != 100 {
		t.Fatalf("unexpected config %+v", c)
	}
	if FromMap(map[string]string{"rule": "B0/S"}).Rule != rule.Conway {
		t.Fatalf("invalid rule was accepted")
	}
}

func TestParameterControls(t *testing.T) {
	var sim core.Sim = newTestLife(t, 4, 4)
	setter, ok := sim.(core.IntParameterSetter)
	if !ok {
		t.Fatalf("life does not accept parameter updates")
	}
	if !setter.SetIntParameter("step", 5) {
		t.Fatalf("step update rejected")
	}
	if setter.SetIntParameter("step", 99) || setter.SetIntParameter("zoom", -1) || setter.SetIntParameter("nope", 1) {
		t.Fatalf("invalid update accepted")
	}

	snap := sim.(core.ParameterProvider).Parameters()
	if p, ok := snap.Lookup("step"); !ok || p.Value != "5" {
		t.Fatalf("step parameter %+v", p)
	}
	if p, ok := snap.Lookup("rule"); !ok || p.Value != "B3/S23" {
		t.Fatalf("rule parameter %+v", p)
	}
	if _, ok := core.Sims()["life"]; !ok {
		t.Fatalf("life is not registered")
	}
}
