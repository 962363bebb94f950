package hashlife

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"mad-life/pkg/rule"
)

func TestNewUniverse(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.Zero(u.Generation())
	requireT.Zero(u.Population())
	requireT.Zero(u.Step())
	requireT.Equal(3, u.Level())
	requireT.Equal(rule.Conway, u.Rule())
	requireT.False(u.HasRewindState())

	_, err = New(WithStep(MaxStep + 1))
	requireT.ErrorIs(err, ErrInvalidStep)

	_, err = New(WithRule(rule.Rule{Birth: 1}))
	requireT.ErrorIs(err, rule.ErrUnsupportedRule)
}

func TestSetBit(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)

	requireT.NoError(u.SetBit(2, -3, true))
	requireT.True(u.Bit(2, -3))
	requireT.False(u.Bit(-3, 2))
	requireT.EqualValues(1, u.Population())

	requireT.NoError(u.SetBit(2, -3, true))
	requireT.EqualValues(1, u.Population())

	requireT.NoError(u.SetBit(2, -3, false))
	requireT.False(u.Bit(2, -3))
	requireT.Zero(u.Population())
}

func TestSetBitGrowsTree(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)

	requireT.NoError(u.SetBit(1<<40, -(1 << 40), false))
	requireT.Equal(3, u.Level())

	requireT.NoError(u.SetBit(1<<40, -(1 << 40), true))
	requireT.Equal(42, u.Level())
	requireT.True(u.Bit(1<<40, -(1 << 40)))
	requireT.False(u.Bit(1<<50, 0))
	requireT.False(u.Bit(math.MinInt64, math.MaxInt64))

	requireT.NoError(u.SetBit(-(1 << 61), (1<<61)-1, true))
	requireT.Equal(MaxLevel, u.Level())
	requireT.True(u.Bit(-(1 << 61), (1<<61)-1))

	err = u.SetBit(1<<61, 0, true)
	requireT.ErrorIs(err, ErrOutOfRange)
	err = u.SetBit(0, math.MinInt64, true)
	requireT.ErrorIs(err, ErrOutOfRange)
	requireT.EqualValues(2, u.Population())
}

func TestSetupField(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)

	err = u.SetupField([]int64{1, 2}, []int64{1})
	requireT.ErrorIs(err, ErrLengthMismatch)

	requireT.NoError(u.SetupField([]int64{5, 5, -7, 100}, []int64{-2, -2, 3, 100}))
	requireT.EqualValues(3, u.Population())
	requireT.Equal([]Cell{{5, -2}, {-7, 3}, {100, 100}}, u.Cells())

	requireT.NoError(u.NextGeneration(true))
	requireT.NoError(u.SetupField([]int64{0}, []int64{0}))
	requireT.Zero(u.Generation())
	requireT.Equal([]Cell{{0, 0}}, u.Cells())

	err = u.SetupField([]int64{math.MaxInt64}, []int64{0})
	requireT.ErrorIs(err, ErrOutOfRange)
	requireT.Equal([]Cell{{0, 0}}, u.Cells())

	requireT.NoError(u.SetupField(nil, nil))
	requireT.Zero(u.Population())
}

func TestSetupFieldMatchesSetBit(t *testing.T) {
	requireT := require.New(t)
	cells := soup(21, 300, 500)

	a, err := New()
	requireT.NoError(err)
	requireT.NoError(a.SetupField(coords(cells)))

	b, err := New()
	requireT.NoError(err)
	for _, c := range cells {
		requireT.NoError(b.SetBit(c.X, c.Y, true))
	}

	requireT.Equal(a.Level(), b.Level())
	requireT.Equal(a.Cells(), b.Cells())
	requireT.Equal(newNaive(rule.Conway, cells).sorted(), a.Cells())
}

func TestRewind(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.ErrorIs(u.RestoreRewindState(), ErrNoRewindState)

	requireT.NoError(u.SetupField(coords(glider)))
	requireT.NoError(u.NextGeneration(true))
	u.SaveRewindState()
	requireT.True(u.HasRewindState())
	saved := u.Cells()

	for range 10 {
		requireT.NoError(u.NextGeneration(true))
	}
	requireT.NoError(u.RestoreRewindState())
	requireT.EqualValues(1, u.Generation())
	requireT.Equal(saved, u.Cells())

	requireT.NoError(u.SetupField([]int64{9}, []int64{9}))
	requireT.True(u.HasRewindState())
	requireT.NoError(u.RestoreRewindState())
	requireT.Equal(saved, u.Cells())

	u.ClearPattern()
	requireT.False(u.HasRewindState())
	requireT.Zero(u.Population())
	requireT.Zero(u.Generation())
	requireT.ErrorIs(u.RestoreRewindState(), ErrNoRewindState)
}

func TestClearPatternKeepsSettings(t *testing.T) {
	requireT := require.New(t)
	seeds, _ := rule.Lookup("seeds")

	u, err := New(WithRule(seeds), WithStep(4))
	requireT.NoError(err)
	requireT.NoError(u.SetBit(1, 1, true))
	u.ClearPattern()
	requireT.Equal(seeds, u.Rule())
	requireT.EqualValues(4, u.Step())
	requireT.Equal(3, u.Level())
}

func TestSetStepAndRules(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)

	requireT.NoError(u.SetStep(MaxStep))
	requireT.EqualValues(MaxStep, u.Step())
	requireT.ErrorIs(u.SetStep(MaxStep+1), ErrInvalidStep)
	requireT.EqualValues(MaxStep, u.Step())

	requireT.ErrorIs(u.SetRules(1<<9, 1<<3), rule.ErrInvalidMask)
	requireT.ErrorIs(u.SetRules(1<<2, 1), rule.ErrUnsupportedRule)
	requireT.Equal(rule.Conway, u.Rule())

	requireT.NoError(u.SetRules(1<<2|1<<3, 1<<3|1<<6))
	requireT.Equal("B36/S23", u.Rule().String())
}

func TestReadsAreIdempotent(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.NoError(u.SetupField(coords(soup(2, 30, 100))))

	first := []any{u.Cells(), u.RootBounds(), u.Draw(0, 0, 2, 200, 200, 100, 100), u.Population(), u.Level(), u.Generation()}
	second := []any{u.Cells(), u.RootBounds(), u.Draw(0, 0, 2, 200, 200, 100, 100), u.Population(), u.Level(), u.Generation()}
	requireT.Equal(first, second)
}

func TestAdvance(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.NoError(u.SetupField(coords(glider)))

	requireT.NoError(u.Advance(context.Background(), 100))
	requireT.EqualValues(100, u.Generation())
	requireT.Equal(shift(glider, 25, 25), u.Cells())

	requireT.NoError(u.Advance(context.Background(), 0))
	requireT.EqualValues(100, u.Generation())
}

func TestAdvanceCancelled(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.NoError(u.SetupField(coords(glider)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = u.Advance(ctx, 7)
	requireT.ErrorIs(err, context.Canceled)
	requireT.Zero(u.Generation())
	requireT.Equal(shift(glider, 0, 0), u.Cells())
}

func TestLevelOverflow(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.NoError(u.SetBit(-(1 << 61), 0, true))
	requireT.Equal(MaxLevel, u.Level())

	err = u.NextGeneration(true)
	requireT.ErrorIs(err, ErrLevelOverflow)
	requireT.Zero(u.Generation())
	requireT.True(u.Bit(-(1 << 61), 0))
	requireT.Equal(MaxLevel, u.Level())
}

func TestNodeLimitCollects(t *testing.T) {
	requireT := require.New(t)
	cells := soup(9, 20, 160)
	ref := newNaive(rule.Conway, cells)

	u, err := New(WithNodeLimit(2000))
	requireT.NoError(err)
	requireT.NoError(u.SetupField(coords(cells)))
	u.SaveRewindState()

	for gen := 1; gen <= 60; gen++ {
		ref.step()
		requireT.NoError(u.NextGeneration(true))
		requireT.Equal(ref.sorted(), u.Cells(), "generation %d", gen)
	}
	requireT.NotZero(u.Stats().Collections)

	requireT.NoError(u.RestoreRewindState())
	requireT.Equal(newNaive(rule.Conway, cells).sorted(), u.Cells())
}
