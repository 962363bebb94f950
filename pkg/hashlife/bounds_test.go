package hashlife

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootBoundsEmpty(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	b := u.RootBounds()
	requireT.True(b.IsEmpty())
	requireT.Equal(EmptyBounds, b)
	requireT.Equal([]float64{0, 0, 0, 0}, b.Floats())
}

func TestRootBoundsSingleCell(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.NoError(u.SetBit(5, -3, true))

	b := u.RootBounds()
	requireT.Equal(Bounds{MinX: 5, MinY: -3, MaxX: 5, MaxY: -3}, b)
	requireT.Equal([]float64{5, -3, 5, -3}, b.Floats())
	requireT.True(b.Contains(5, -3))
	requireT.False(b.Contains(5, -2))
}

func TestRootBoundsIsTight(t *testing.T) {
	for seed := uint64(1); seed <= 6; seed++ {
		requireT := require.New(t)
		cells := soup(seed, 1000, 40)

		u, err := New()
		requireT.NoError(err)
		requireT.NoError(u.SetupField(coords(cells)))

		want := Bounds{MinX: math.MaxInt64, MinY: math.MaxInt64, MaxX: math.MinInt64, MaxY: math.MinInt64}
		for _, c := range cells {
			want.MinX = min(want.MinX, c.X)
			want.MinY = min(want.MinY, c.Y)
			want.MaxX = max(want.MaxX, c.X)
			want.MaxY = max(want.MaxY, c.Y)
		}
		requireT.Equal(want, u.RootBounds(), "seed %d", seed)
	}
}

func TestRootBoundsFollowsGlider(t *testing.T) {
	requireT := require.New(t)

	u, err := New()
	requireT.NoError(err)
	requireT.NoError(u.SetupField(coords(glider)))
	requireT.NoError(u.Advance(t.Context(), 40))
	requireT.Equal(Bounds{MinX: 10, MinY: 10, MaxX: 12, MaxY: 12}, u.RootBounds())
}
