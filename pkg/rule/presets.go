package rule

import (
	"sort"
	"strings"
)

// Presets lists well-known Life-like rules by name.
var Presets = map[string]Rule{
	"life":             Conway,
	"highlife":         {Survive: 1<<2 | 1<<3, Birth: 1<<3 | 1<<6},
	"seeds":            {Survive: 0, Birth: 1 << 2},
	"dayandnight":      {Survive: 1<<3 | 1<<4 | 1<<6 | 1<<7 | 1<<8, Birth: 1<<3 | 1<<6 | 1<<7 | 1<<8},
	"lifewithoutdeath": {Survive: validMask, Birth: 1 << 3},
	"maze":             {Survive: 1<<1 | 1<<2 | 1<<3 | 1<<4 | 1<<5, Birth: 1 << 3},
	"2x2":              {Survive: 1<<1 | 1<<2 | 1<<5, Birth: 1<<3 | 1<<6},
	"diamoeba":         {Survive: 1<<5 | 1<<6 | 1<<7 | 1<<8, Birth: 1<<3 | 1<<5 | 1<<6 | 1<<7 | 1<<8},
	"morley":           {Survive: 1<<2 | 1<<4 | 1<<5, Birth: 1<<3 | 1<<6 | 1<<8},
}

// Lookup finds a preset by name, ignoring case, spaces and dashes.
func Lookup(name string) (Rule, bool) {
	key := strings.ToLower(name)
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	r, ok := Presets[key]
	return r, ok
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
