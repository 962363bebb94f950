package life

import (
	"strconv"

	"mad-life/pkg/hashlife"
	"mad-life/pkg/rule"
)

// MaxZoom bounds how many cells, as a power of two, one grid pixel may span.
const MaxZoom = 40

// Config controls the Life simulation window and seeding.
type Config struct {
	Width  int
	Height int

	Rule    rule.Rule
	Step    uint
	Zoom    int
	Density float64
	// Pattern is the path of an RLE or plaintext file loaded on Reset. When
	// empty, Reset seeds a random soup filling the window.
	Pattern string
	// NodeLimit enables node store garbage collection; zero disables it.
	NodeLimit int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:     256,
		Height:    256,
		Rule:      rule.Conway,
		Density:   0.3,
		NodeLimit: 1 << 22,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Invalid values keep their defaults.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := rule.Parse(v); err == nil {
			c.Rule = parsed
		}
	}
	if v, ok := cfg["step"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 8); err == nil && parsed <= hashlife.MaxStep {
			c.Step = uint(parsed)
		}
	}
	if v, ok := cfg["zoom"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= MaxZoom {
			c.Zoom = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok {
		c.Pattern = v
	}
	if v, ok := cfg["node_limit"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.NodeLimit = parsed
		}
	}
	return c
}
