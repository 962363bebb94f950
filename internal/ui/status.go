package ui

import (
	"fmt"
	"strings"

	"mad-life/internal/core"
)

// HelpLines lists the viewer key bindings.
var HelpLines = []string{
	"space  pause / resume",
	"n      advance one generation",
	"+ / -  change step size",
	"w / s  save rewind point",
	"r      rewind",
	"c      clear",
	"bksp   reset, tab reseed",
	"arrows pan, wheel zoom",
	"click  toggle cell",
	"h      hide help",
}

// StatusLine summarises a parameter snapshot for the overlay.
func StatusLine(snap core.ParameterSnapshot, paused bool) string {
	var parts []string
	add := func(key, format string) {
		if p, ok := snap.Lookup(key); ok {
			parts = append(parts, fmt.Sprintf(format, p.Value))
		}
	}
	add("generation", "gen %s")
	add("population", "pop %s")
	add("step", "step 2^%s")
	add("level", "level %s")
	add("rule", "%s")
	if paused {
		parts = append(parts, "paused")
	}
	return strings.Join(parts, "  ")
}
