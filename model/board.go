package model

import (
	"math/rand"
	"time"
)

const (
	// randomDensity is the probability of a cell being alive after Randomize
	randomDensity = 0.5

	// historySize is how many past generations IsStagnant compares against
	historySize = 3
)

// Board is the Game of Life engine. It exclusively owns its grid; callers only
// get copies of the alive cell set. A Board is not safe for concurrent use.
type Board struct {
	grid       *Grid
	pool       *GridPool
	rng        *rand.Rand
	parallel   bool
	generation int
	history    []string // hashes of recent generations, oldest first
}

// BoardOption configures a Board
type BoardOption func(*Board)

// WithPool makes the board recycle generation buffers through pool
func WithPool(pool *GridPool) BoardOption {
	return func(b *Board) {
		b.pool = pool
	}
}

// WithRand sets the random source used by Randomize
func WithRand(rng *rand.Rand) BoardOption {
	return func(b *Board) {
		b.rng = rng
	}
}

// WithParallelStep splits each generation across CPUs
func WithParallelStep(parallel bool) BoardOption {
	return func(b *Board) {
		b.parallel = parallel
	}
}

// NewBoard creates an all-dead board. Dimensions must be positive.
func NewBoard(rows, cols int, opts ...BoardOption) *Board {
	b := &Board{}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b.Initialize(rows, cols)
	return b
}

// Initialize replaces the grid with an all-dead one of the given dimensions
func (b *Board) Initialize(rows, cols int) {
	GridToPool(b.grid, b.pool)
	if b.pool != nil {
		b.grid = b.pool.Get(rows, cols)
	} else {
		b.grid = NewGrid(rows, cols)
	}
	b.generation = 0
	b.history = nil
}

func (b *Board) Rows() int { return b.grid.Rows() }

func (b *Board) Cols() int { return b.grid.Cols() }

// Generation returns the number of steps since the last Initialize
func (b *Board) Generation() int { return b.generation }

// Population returns the number of living cells
func (b *Board) Population() int { return b.grid.CountLivingCells() }

// IsAlive reports the state of a cell; off-grid cells are dead
func (b *Board) IsAlive(x, y int) bool { return b.grid.Get(x, y) }

// Toggle flips the cell at (x, y). Out of bounds coordinates are a no-op.
func (b *Board) Toggle(x, y int) {
	b.grid.Toggle(x, y)
}

// Randomize makes every cell alive independently with probability 0.5
func (b *Board) Randomize() {
	b.grid.Randomize(b.rng, randomDensity)
}

// Clear kills every cell, keeping the dimensions
func (b *Board) Clear() {
	b.grid.Clear()
}

// Place stamps a pattern with its origin at (x, y); cells falling off the grid are dropped
func (b *Board) Place(p Pattern, x, y int) {
	for _, c := range p {
		b.grid.Set(x+c.X, y+c.Y, true)
	}
}

// Step advances the board one generation. The next grid is built from the old
// one and then swapped in, so the old grid is never read mid-update.
func (b *Board) Step() {
	b.history = append(b.history, b.grid.Hash())
	if len(b.history) > historySize {
		b.history = b.history[1:]
	}

	next := b.grid.Next(b.pool, b.parallel)
	GridToPool(b.grid, b.pool)
	b.grid = next
	b.generation++
}

// AliveCells returns the coordinates of the living cells. Order is unspecified.
func (b *Board) AliveCells() []Cell {
	return b.grid.AliveCells()
}

// IsStagnant reports whether the current state repeats one of the last few
// generations, i.e. the board settled into a still life or short oscillator
func (b *Board) IsStagnant() bool {
	current := b.grid.Hash()
	for _, h := range b.history {
		if h == current {
			return true
		}
	}
	return false
}
