package model

import (
	"crypto/md5"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
)

// Cell is a grid coordinate: X is the column, Y is the row
type Cell struct {
	X int
	Y int
}

// Grid is the fixed-size cell storage of a board. It has hard edges: positions
// outside [0, cols) x [0, rows) read as dead and ignore writes.
type Grid struct {
	rows  int
	cols  int
	cells [][]bool
}

// NewGrid creates an all-dead grid with the specified dimensions
func NewGrid(rows, cols int) *Grid {
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: cells,
	}
}

// Rows returns the number of rows of the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns of the grid
func (g *Grid) Cols() int {
	return g.cols
}

// Reset resets the grid to new dimensions, all cells dead
func (g *Grid) Reset(rows, cols int) {
	g.rows = rows
	g.cols = cols

	// Resize cells if needed
	if len(g.cells) != rows {
		g.cells = make([][]bool, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != cols {
			g.cells[i] = make([]bool, cols)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear kills all cells
func (g *Grid) Clear() {
	for y := range g.rows {
		clear(g.cells[y])
	}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Set sets a cell to alive (true) or dead (false)
func (g *Grid) Set(x, y int, alive bool) {
	if g.inBounds(x, y) {
		g.cells[y][x] = alive
	}
}

// Get returns the state of a cell
func (g *Grid) Get(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.cells[y][x]
}

// Toggle flips the state of a cell; out of bounds coordinates are ignored
func (g *Grid) Toggle(x, y int) {
	if g.inBounds(x, y) {
		g.cells[y][x] = !g.cells[y][x]
	}
}

// CountNeighbors counts living cells in the Moore neighborhood of (x, y).
// Off-grid positions do not contribute.
func (g *Grid) CountNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(g.cols-1, x+1)
	minY := max(0, y-1)
	maxY := min(g.rows-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue // Skip the cell itself
			}
			if g.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// Next computes the following generation into a separate grid. The receiver is
// only read, so rows can be split across workers when parallel is set.
func (g *Grid) Next(pool *GridPool, parallel bool) *Grid {
	var next *Grid
	if pool != nil {
		next = pool.Get(g.rows, g.cols)
	} else {
		next = NewGrid(g.rows, g.cols)
	}

	if !parallel {
		g.nextRows(next, 0, g.rows)
		return next
	}

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			g.nextRows(next, startRow, endRow)
			return nil
		})
	}

	// workers never fail; Wait is only a barrier here
	_ = eg.Wait()

	return next
}

// nextRows writes rows [startRow, endRow) of the next generation into next
func (g *Grid) nextRows(next *Grid, startRow, endRow int) {
	for y := startRow; y < endRow; y++ {
		for x := 0; x < g.cols; x++ {
			next.cells[y][x] = rules.ApplyConwayRules(g.CountNeighbors(x, y), g.cells[y][x])
		}
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				count++
			}
		}
	}
	return
}

// AliveCells returns the coordinates of all living cells in row-major order
func (g *Grid) AliveCells() []Cell {
	cells := make([]Cell, 0, g.CountLivingCells())
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for y := range g.rows {
		for x := range g.cols {
			if g.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Randomize sets every cell alive independently with the given probability
func (g *Grid) Randomize(rng *rand.Rand, density float64) {
	for y := range g.rows {
		for x := range g.cols {
			g.cells[y][x] = rng.Float64() < density
		}
	}
}
