package pattern

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mad-life/pkg/core"
	"mad-life/pkg/hashlife"
	"mad-life/pkg/rule"
)

const gliderRLE = `#N Glider
#C The smallest spaceship.
x = 3, y = 3, rule = B3/S23
bob$2bo$3o!
`

const gliderCells = `!Name: Glider
!
.O.
..O
OOO
`

var gliderWant = []hashlife.Cell{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}

func TestParseRLE(t *testing.T) {
	requireT := require.New(t)

	p, err := ParseRLE(strings.NewReader(gliderRLE))
	requireT.NoError(err)
	requireT.Equal("Glider", p.Name)
	requireT.Equal([]string{"The smallest spaceship."}, p.Comments)
	requireT.NotNil(p.Rule)
	requireT.Equal(rule.Conway, *p.Rule)
	requireT.Equal(gliderWant, p.Cells())
}

func TestParseRLERunsAndPosition(t *testing.T) {
	requireT := require.New(t)

	p, err := ParseRLE(strings.NewReader("#P -10 5\nx = 4, y = 3\n4o2$\n2bo!ignored"))
	requireT.NoError(err)
	requireT.Nil(p.Rule)
	requireT.Equal([]hashlife.Cell{{-10, 5}, {-9, 5}, {-8, 5}, {-7, 5}, {-8, 7}}, p.Cells())
}

func TestParseRLEErrors(t *testing.T) {
	for _, input := range []string{
		"x = 3, y = 3\nbo?o!",
		"x = three, y = 3\nbo!",
		"x = 3 y = 3\nbo!",
	} {
		_, err := ParseRLE(strings.NewReader(input))
		require.ErrorIs(t, err, ErrSyntax, input)
	}

	_, err := ParseRLE(strings.NewReader("x = 1, y = 1, rule = B03/S23\no!"))
	require.ErrorIs(t, err, rule.ErrUnsupportedRule)
}

func TestParsePlaintext(t *testing.T) {
	requireT := require.New(t)

	p, err := ParsePlaintext(strings.NewReader(gliderCells))
	requireT.NoError(err)
	requireT.Equal("Glider", p.Name)
	requireT.Equal(gliderWant, p.Cells())

	_, err = ParsePlaintext(strings.NewReader("..X\n"))
	requireT.ErrorIs(err, ErrSyntax)
}

func TestParseDetectsFormat(t *testing.T) {
	requireT := require.New(t)

	for _, input := range []string{gliderRLE, gliderCells, "bob$2bo$3o!", ".O.\n..O\nOOO\n"} {
		p, err := Parse([]byte(input))
		requireT.NoError(err, input)
		requireT.Equal(gliderWant, p.Cells(), input)
	}
}

func TestWriteRLERoundTrip(t *testing.T) {
	requireT := require.New(t)

	p := Soup(core.NewRNG(3), 90, 12, 0.4)
	p.Translate(-1000, 77)
	p.Name = "soup"
	highLife, _ := rule.Lookup("highlife")
	p.Rule = &highLife

	var buf bytes.Buffer
	requireT.NoError(WriteRLE(&buf, p))
	for _, line := range strings.Split(buf.String(), "\n") {
		requireT.LessOrEqual(len(line), 70)
	}

	q, err := ParseRLE(&buf)
	requireT.NoError(err)
	requireT.Equal("soup", q.Name)
	requireT.Equal(highLife, *q.Rule)
	requireT.Equal(p.Cells(), q.Cells())
	requireT.Equal(p.Fingerprint(), q.Fingerprint())
}

func TestWriteRLEEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRLE(&buf, &Pattern{}))
	require.Equal(t, "x = 0, y = 0, rule = B3/S23\n!\n", buf.String())
}

func TestFingerprint(t *testing.T) {
	requireT := require.New(t)

	a := &Pattern{XS: []int64{1, 2, 3}, YS: []int64{4, 5, 6}}
	b := &Pattern{XS: []int64{3, 1, 2, 1}, YS: []int64{6, 4, 5, 4}}
	requireT.Equal(a.Fingerprint(), b.Fingerprint())

	b.Translate(1, 0)
	requireT.NotEqual(a.Fingerprint(), b.Fingerprint())
}

func TestSoup(t *testing.T) {
	requireT := require.New(t)

	p := Soup(core.NewRNG(1), 20, 10, 0.5)
	requireT.NotZero(p.Len())
	b := p.Bounds()
	requireT.GreaterOrEqual(b.MinX, int64(-10))
	requireT.LessOrEqual(b.MaxX, int64(9))
	requireT.GreaterOrEqual(b.MinY, int64(-5))
	requireT.LessOrEqual(b.MaxY, int64(4))

	requireT.Equal(p.Cells(), Soup(core.NewRNG(1), 20, 10, 0.5).Cells())
}

func TestApplyAndCentre(t *testing.T) {
	requireT := require.New(t)

	p, err := Parse([]byte(gliderRLE))
	requireT.NoError(err)
	p.Centre()
	requireT.Equal(hashlife.Bounds{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}, p.Bounds())

	seeds, _ := rule.Lookup("seeds")
	u, err := hashlife.New(hashlife.WithRule(seeds))
	requireT.NoError(err)
	requireT.NoError(p.Apply(u))
	requireT.Equal(rule.Conway, u.Rule())
	requireT.Equal(p.Cells(), u.Cells())
	requireT.Equal(p.Fingerprint(), FromCells(u.Cells()).Fingerprint())
}
