package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(rows, cols int, opts ...BoardOption) *Board {
	opts = append([]BoardOption{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return NewBoard(rows, cols, opts...)
}

func TestNewBoard_AllDead(t *testing.T) {
	b := newTestBoard(4, 7)

	assert.Equal(t, 4, b.Rows())
	assert.Equal(t, 7, b.Cols())
	assert.Empty(t, b.AliveCells())
	assert.Zero(t, b.Generation())
}

func TestBoard_StepEmptyStaysEmpty(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		b := newTestBoard(10, 12, WithParallelStep(parallel))
		b.Step()
		assert.Empty(t, b.AliveCells())
		assert.Equal(t, 1, b.Generation())
	}
}

func TestBoard_Blinker(t *testing.T) {
	b := newTestBoard(3, 3)
	vertical := []Cell{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}
	horizontal := []Cell{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}}
	for _, c := range vertical {
		b.Toggle(c.X, c.Y)
	}

	b.Step()
	assert.ElementsMatch(t, horizontal, b.AliveCells())

	b.Step()
	assert.ElementsMatch(t, vertical, b.AliveCells())
	assert.True(t, b.IsStagnant())
}

func TestBoard_IsolatedCellDies(t *testing.T) {
	b := newTestBoard(5, 5)
	b.Toggle(2, 2)
	b.Step()
	assert.Empty(t, b.AliveCells())
}

func TestBoard_Survival(t *testing.T) {
	// center cell (2,2) with n live neighbors taken from its ring
	ring := []Cell{{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}, {2, 3}, {1, 3}, {1, 2}}

	for n := 0; n <= 8; n++ {
		for _, alive := range []bool{true, false} {
			g := NewGrid(5, 5)
			g.Set(2, 2, alive)
			for _, c := range ring[:n] {
				g.Set(c.X, c.Y, true)
			}
			require.Equal(t, n, g.CountNeighbors(2, 2))

			next := g.Next(nil, false)
			want := n == 3 || (alive && n == 2)
			assert.Equal(t, want, next.Get(2, 2), "alive=%v neighbors=%d", alive, n)
		}
	}
}

func TestBoard_ToggleTwiceRestores(t *testing.T) {
	b := newTestBoard(6, 8)
	b.Randomize()
	before := b.AliveCells()

	b.Toggle(3, 4)
	assert.NotEqual(t, before, b.AliveCells())
	b.Toggle(3, 4)
	assert.Equal(t, before, b.AliveCells())
}

func TestBoard_ToggleOutOfBounds(t *testing.T) {
	b := newTestBoard(3, 4)
	b.Toggle(1, 1)
	before := b.AliveCells()

	for _, c := range []Cell{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {4, 3}, {100, 100}} {
		b.Toggle(c.X, c.Y)
	}
	assert.Equal(t, before, b.AliveCells())
}

func TestBoard_RandomizeDensity(t *testing.T) {
	b := newTestBoard(50, 50)
	const rounds = 200

	total := 0
	for range rounds {
		b.Randomize()
		total += b.Population()
	}
	fraction := float64(total) / float64(rounds*b.Rows()*b.Cols())
	assert.InDelta(t, 0.5, fraction, 0.01)
}

func TestBoard_InitializeResets(t *testing.T) {
	b := newTestBoard(3, 3, WithPool(NewGridPool()))
	b.Randomize()
	b.Step()

	b.Initialize(5, 9)
	assert.Equal(t, 5, b.Rows())
	assert.Equal(t, 9, b.Cols())
	assert.Empty(t, b.AliveCells())
	assert.Zero(t, b.Generation())
	assert.False(t, b.IsStagnant())
}

func TestBoard_PlaceClipsAtEdges(t *testing.T) {
	b := newTestBoard(4, 4)
	glider, err := LookupPattern("glider")
	require.NoError(t, err)

	b.Place(glider, 2, 1)
	assert.ElementsMatch(t, []Cell{{3, 1}, {2, 3}, {3, 3}}, b.AliveCells())
}

func TestBoard_StillLifeIsStagnant(t *testing.T) {
	b := newTestBoard(4, 4)
	block, err := LookupPattern("block")
	require.NoError(t, err)
	b.Place(block, 1, 1)

	assert.False(t, b.IsStagnant())
	b.Step()
	assert.True(t, b.IsStagnant())
	assert.Equal(t, 4, b.Population())
}

func TestBoard_Clear(t *testing.T) {
	b := newTestBoard(5, 5)
	b.Randomize()
	b.Clear()
	assert.Zero(t, b.Population())
	assert.Equal(t, 5, b.Rows())
}
