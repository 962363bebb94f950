package rule

import (
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidMask is returned when a mask has bits set above neighbour count 8.
	ErrInvalidMask = errors.New("rule mask has bits outside 0-8")

	// ErrUnsupportedRule is returned for rules the engine cannot simulate on an
	// unbounded grid, namely rules where empty space gives birth (B0).
	ErrUnsupportedRule = errors.New("unsupported rule")

	// ErrSyntax is returned when a rule string cannot be parsed.
	ErrSyntax = errors.New("invalid rule syntax")
)

const validMask = 1<<9 - 1

// Rule encodes which live-neighbour counts keep a cell alive and which give
// birth to a dead cell. Bit k refers to k live neighbours.
type Rule struct {
	Survive uint16
	Birth   uint16
}

// Conway is the classic B3/S23 rule.
var Conway = Rule{Survive: 1<<2 | 1<<3, Birth: 1 << 3}

// New validates the masks and returns the corresponding rule.
func New(survive, birth uint) (Rule, error) {
	if survive&^validMask != 0 {
		return Rule{}, errors.Wrapf(ErrInvalidMask, "survive mask %#x", survive)
	}
	if birth&^validMask != 0 {
		return Rule{}, errors.Wrapf(ErrInvalidMask, "birth mask %#x", birth)
	}
	if birth&1 != 0 {
		return Rule{}, errors.Wrap(ErrUnsupportedRule, "B0 rules make empty space come alive")
	}
	return Rule{Survive: uint16(survive), Birth: uint16(birth)}, nil
}

// Next reports whether a cell is alive in the next generation.
func (r Rule) Next(alive bool, neighbours int) bool {
	if neighbours < 0 || neighbours > 8 {
		return false
	}
	mask := r.Birth
	if alive {
		mask = r.Survive
	}
	return mask>>neighbours&1 == 1
}

// String renders the rule in B/S notation, e.g. "B3/S23".
func (r Rule) String() string {
	var sb strings.Builder
	sb.WriteByte('B')
	writeDigits(&sb, r.Birth)
	sb.WriteString("/S")
	writeDigits(&sb, r.Survive)
	return sb.String()
}

func writeDigits(sb *strings.Builder, mask uint16) {
	for k := 0; k <= 8; k++ {
		if mask>>k&1 == 1 {
			sb.WriteByte(byte('0' + k))
		}
	}
}

// Parse reads a rule in B/S notation ("B3/S23", "s23/b3") or in the legacy
// survive/birth digit form ("23/3").
func Parse(s string) (Rule, error) {
	text := strings.ToUpper(strings.TrimSpace(s))
	if text == "" {
		return Rule{}, errors.Wrap(ErrSyntax, "empty rule")
	}
	if r, ok := Lookup(text); ok {
		return r, nil
	}

	parts := strings.Split(text, "/")
	if len(parts) != 2 {
		return Rule{}, errors.Wrapf(ErrSyntax, "%q: expected two parts separated by '/'", s)
	}

	var survive, birth uint
	var haveSurvive, haveBirth bool
	legacy := !strings.ContainsAny(text, "BS")
	for i, part := range parts {
		prefix := byte(0)
		digits := part
		if !legacy {
			if part == "" {
				return Rule{}, errors.Wrapf(ErrSyntax, "%q: empty part", s)
			}
			prefix = part[0]
			digits = part[1:]
		} else if i == 0 {
			prefix = 'S'
		} else {
			prefix = 'B'
		}

		mask, err := parseDigits(digits)
		if err != nil {
			return Rule{}, errors.Wrapf(err, "%q", s)
		}
		switch prefix {
		case 'B':
			if haveBirth {
				return Rule{}, errors.Wrapf(ErrSyntax, "%q: birth given twice", s)
			}
			birth, haveBirth = mask, true
		case 'S':
			if haveSurvive {
				return Rule{}, errors.Wrapf(ErrSyntax, "%q: survival given twice", s)
			}
			survive, haveSurvive = mask, true
		default:
			return Rule{}, errors.Wrapf(ErrSyntax, "%q: unknown prefix %q", s, prefix)
		}
	}
	return New(survive, birth)
}

func parseDigits(digits string) (uint, error) {
	var mask uint
	for _, c := range digits {
		if c < '0' || c > '8' {
			return 0, errors.Wrapf(ErrSyntax, "neighbour count %q", c)
		}
		mask |= 1 << (c - '0')
	}
	return mask, nil
}
