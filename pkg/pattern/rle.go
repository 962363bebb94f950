package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"mad-life/pkg/rule"
)

const rleLineWidth = 70

// ParseRLE decodes a pattern in run length encoded format. The top-left cell
// of the pattern is placed at the origin unless a "#P x y" line says otherwise.
func ParseRLE(r io.Reader) (*Pattern, error) {
	p := &Pattern{}
	var (
		x, y, left int64
		run        int64
		header     bool
		done       bool
	)

	sc := bufio.NewScanner(r)
	for line := 1; !done && sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		switch {
		case text == "":
			continue
		case strings.HasPrefix(text, "#"):
			if err := p.rleComment(text, &x, &y, &left); err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			continue
		case !header && strings.HasPrefix(text, "x"):
			header = true
			if err := p.rleHeader(text); err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			continue
		}

		for _, ch := range text {
			switch {
			case ch >= '0' && ch <= '9':
				run = run*10 + int64(ch-'0')
			case ch == ' ' || ch == '\t':
			case ch == '!':
				done = true
			case ch == '$':
				y += max(run, 1)
				x = left
				run = 0
			case ch == 'b' || ch == '.':
				x += max(run, 1)
				run = 0
			case ch == 'o' || (ch >= 'A' && ch <= 'Z'):
				for range max(run, 1) {
					p.add(x, y)
					x++
				}
				run = 0
			default:
				return nil, errors.Wrapf(ErrSyntax, "line %d: unexpected %q", line, ch)
			}
			if done {
				break
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	return p, nil
}

func (p *Pattern) rleComment(text string, x, y, left *int64) error {
	tag, rest, _ := strings.Cut(text[1:], " ")
	rest = strings.TrimSpace(rest)
	switch tag {
	case "N":
		p.Name = rest
	case "C", "c", "O":
		p.Comments = append(p.Comments, rest)
	case "r":
		r, err := rule.Parse(rest)
		if err != nil {
			return err
		}
		p.Rule = lo.ToPtr(r)
	case "P", "R":
		var px, py int64
		if _, err := fmt.Sscan(rest, &px, &py); err != nil {
			return errors.Wrapf(ErrSyntax, "position %q", rest)
		}
		*x, *y, *left = px, py, px
	}
	return nil
}

func (p *Pattern) rleHeader(text string) error {
	for _, field := range strings.Split(text, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return errors.Wrapf(ErrSyntax, "header field %q", field)
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "x", "y":
			if _, err := strconv.ParseUint(value, 10, 63); err != nil {
				return errors.Wrapf(ErrSyntax, "header %s = %q", key, value)
			}
		case "rule":
			r, err := rule.Parse(value)
			if err != nil {
				return err
			}
			p.Rule = lo.ToPtr(r)
		}
	}
	return nil
}

// WriteRLE encodes p in run length encoded format. A "#P" line records the
// position of the top-left corner so ParseRLE restores the same coordinates.
func WriteRLE(w io.Writer, p *Pattern) error {
	bw := bufio.NewWriter(w)
	if p.Name != "" {
		fmt.Fprintf(bw, "#N %s\n", p.Name)
	}
	for _, c := range p.Comments {
		fmt.Fprintf(bw, "#C %s\n", c)
	}

	r := rule.Conway
	if p.Rule != nil {
		r = *p.Rule
	}
	b := p.Bounds()
	if b.IsEmpty() {
		fmt.Fprintf(bw, "x = 0, y = 0, rule = %s\n!\n", r)
		return errors.WithStack(bw.Flush())
	}
	fmt.Fprintf(bw, "#P %d %d\n", b.MinX, b.MinY)
	fmt.Fprintf(bw, "x = %d, y = %d, rule = %s\n", b.MaxX-b.MinX+1, b.MaxY-b.MinY+1, r)

	enc := rleEncoder{w: bw}
	x, y := b.MinX, b.MinY
	for _, c := range p.Cells() {
		if c.Y > y {
			enc.run(c.Y-y, '$')
			x, y = b.MinX, c.Y
		}
		if c.X > x {
			enc.run(c.X-x, 'b')
		}
		enc.run(1, 'o')
		x = c.X + 1
	}
	enc.flush()
	enc.emit("!")
	fmt.Fprintln(bw)
	return errors.WithStack(bw.Flush())
}

// rleEncoder merges consecutive runs of the same tag and wraps output lines.
type rleEncoder struct {
	w     *bufio.Writer
	tag   byte
	count int64
	col   int
}

func (e *rleEncoder) run(n int64, tag byte) {
	if tag == e.tag {
		e.count += n
		return
	}
	e.flush()
	e.tag, e.count = tag, n
}

func (e *rleEncoder) flush() {
	if e.count == 0 {
		return
	}
	token := string(e.tag)
	if e.count > 1 {
		token = strconv.FormatInt(e.count, 10) + token
	}
	e.emit(token)
	e.tag, e.count = 0, 0
}

func (e *rleEncoder) emit(token string) {
	if e.col+len(token) > rleLineWidth {
		e.w.WriteByte('\n')
		e.col = 0
	}
	e.w.WriteString(token)
	e.col += len(token)
}
