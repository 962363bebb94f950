package pattern

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ParsePlaintext decodes a pattern drawn with '.' for dead and 'O' or '*' for
// live cells, one row per line. Lines starting with '!' are comments; a
// "!Name:" comment sets the pattern name.
func ParsePlaintext(r io.Reader) (*Pattern, error) {
	p := &Pattern{}
	var y int64

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimRight(sc.Text(), " \t\r")
		if rest, ok := strings.CutPrefix(text, "!"); ok {
			if name, ok := strings.CutPrefix(rest, "Name:"); ok {
				p.Name = strings.TrimSpace(name)
			} else {
				p.Comments = append(p.Comments, strings.TrimSpace(rest))
			}
			continue
		}
		for x, ch := range text {
			switch ch {
			case '.':
			case 'O', 'o', '*':
				p.add(int64(x), y)
			default:
				return nil, errors.Wrapf(ErrSyntax, "line %d: unexpected %q", line, ch)
			}
		}
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return p, nil
}

// Parse detects the format of data and decodes it.
func Parse(data []byte) (*Pattern, error) {
	if isRLE(data) {
		return ParseRLE(bytes.NewReader(data))
	}
	return ParsePlaintext(bytes.NewReader(data))
}

func isRLE(data []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
			continue
		case strings.HasPrefix(text, "!"):
			return false
		case strings.HasPrefix(text, "#"):
			return true
		case strings.HasPrefix(text, "x") && strings.Contains(text, "="):
			return true
		}
		return strings.ContainsAny(text, "bo$!")
	}
	return false
}
