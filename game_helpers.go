package main

import (
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/runner"
	"github.com/sheikhrachel/go-life/utils"
)

const helpText = `Commands:
  start               run generations every interval
  stop                stop running
  step [n]            advance n generations (default 1)
  random              fill the board randomly
  clear               kill every cell
  toggle X Y          flip the cell at column X, row Y
  click PX PY         flip the cell under pixel (PX, PY)
  interval MS         milliseconds between generations
  size PX             cell size in pixels (resets the board)
  place NAME X Y      stamp a pattern (%s)
  help                show this text
  quit                exit`

// game serializes every board access behind mu; the runner and the command
// loop both go through it, so generations and edits never interleave.
type game struct {
	mu       sync.Mutex
	config   utils.Config
	board    *model.Board
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	runner   *runner.Runner
	out      io.Writer

	clearScreen bool
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, out io.Writer) *game {
	opts := []model.BoardOption{model.WithParallelStep(config.UseParallel)}
	if config.UseMemoryPool {
		opts = append(opts, model.WithPool(model.NewGridPool()))
	}
	if config.Seed != 0 {
		opts = append(opts, model.WithRand(rand.New(rand.NewSource(config.Seed))))
	}

	g := &game{
		config:   config,
		board:    model.NewBoard(config.Rows(), config.Cols(), opts...),
		renderer: &model.TerminalRenderer{Out: out},
		stats:    utils.NewStats(),
		out:      out,
	}
	g.runner = runner.New(g.advance, config.Interval())
	return g
}

// advance is the run mode step: one generation, then a redraw
func (g *game) advance() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stepLocked(1)
	g.renderLocked()
}

func (g *game) stepLocked(n int) {
	for range n {
		g.board.Step()
		g.stats.Record(g.board.Generation(), g.board.Population())
	}
}

// render redraws the board from its alive cell snapshot
func (g *game) render() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.renderLocked()
}

func (g *game) renderLocked() {
	if g.clearScreen {
		g.renderer.Clear()
	}
	fmt.Fprintln(g.out, gameStatus(g.board, g.stats, g.runner.Interval()))
	g.renderer.Display(g.board.Rows(), g.board.Cols(), g.board.AliveCells())
}

// gameStatus summarizes the board for the status line
func gameStatus(board *model.Board, stats *utils.Stats, interval time.Duration) string {
	var (
		livingCells = board.Population()
		density     = float64(livingCells) / float64(board.Rows()*board.Cols()) * 100
		status      = "Active"
	)
	switch {
	case livingCells == 0:
		status = "Extinct"
	case board.IsStagnant():
		status = "Stagnant"
	}

	return fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | Status: %s | Interval: %s | %.1f gen/sec",
		board.Generation(), livingCells, density, status, interval, stats.GenerationsPerSecond)
}

// pixelToCell maps a pixel offset within the board to the cell under it
func pixelToCell(px, py, cellSize int) model.Cell {
	return model.Cell{X: floorDiv(px, cellSize), Y: floorDiv(py, cellSize)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// command is one parsed line of user input
type command struct {
	name string
	word string // pattern name for place
	args []int
}

var commandArity = map[string]int{
	"start":    0,
	"stop":     0,
	"random":   0,
	"clear":    0,
	"help":     0,
	"quit":     0,
	"toggle":   2,
	"click":    2,
	"interval": 1,
	"size":     1,
	"place":    2,
}

// parseCommand turns a line of input into a command
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{}, errors.New("[parseCommand] empty command")
	}

	cmd := command{name: fields[0]}
	rest := fields[1:]

	switch cmd.name {
	case "step":
		if len(rest) > 1 {
			return command{}, errors.New("[parseCommand] usage: step [n]")
		}
		n := 1
		if len(rest) == 1 {
			var err error
			if n, err = strconv.Atoi(rest[0]); err != nil || n < 1 {
				return command{}, errors.Errorf("[parseCommand] invalid step count: %q", rest[0])
			}
		}
		cmd.args = []int{n}
		return cmd, nil
	case "place":
		if len(rest) != 3 {
			return command{}, errors.New("[parseCommand] usage: place NAME X Y")
		}
		cmd.word, rest = rest[0], rest[1:]
	}

	arity, ok := commandArity[cmd.name]
	if !ok {
		return command{}, errors.Errorf("[parseCommand] unknown command: %q", cmd.name)
	}
	if len(rest) != arity {
		return command{}, errors.Errorf("[parseCommand] %s takes %d argument(s), got %d", cmd.name, arity, len(rest))
	}
	for _, raw := range rest {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return command{}, errors.Wrapf(err, "[parseCommand] invalid number %q", raw)
		}
		cmd.args = append(cmd.args, n)
	}
	return cmd, nil
}

// execute applies a command. It reports whether the game should exit.
func (g *game) execute(cmd command) (quit bool, err error) {
	// runner control stays outside mu: Stop waits for an in-flight advance,
	// which itself needs mu
	switch cmd.name {
	case "quit":
		g.runner.Stop()
		return true, nil
	case "start":
		g.runner.Start()
		return false, nil
	case "stop":
		g.runner.Stop()
		return false, nil
	case "interval":
		// no range check, matching the interval input it replaces
		g.runner.SetInterval(time.Duration(cmd.args[0]) * time.Millisecond)
		logrus.WithField("interval_ms", cmd.args[0]).Info("Interval changed")
		return false, nil
	case "help":
		fmt.Fprintf(g.out, helpText+"\n", strings.Join(model.PatternNames(), ", "))
		return false, nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	switch cmd.name {
	case "step":
		g.stepLocked(cmd.args[0])
	case "random":
		g.board.Randomize()
	case "clear":
		g.board.Clear()
	case "toggle":
		g.board.Toggle(cmd.args[0], cmd.args[1])
	case "click":
		c := pixelToCell(cmd.args[0], cmd.args[1], g.config.CellSize)
		g.board.Toggle(c.X, c.Y)
	case "size":
		if err = g.resizeLocked(cmd.args[0]); err != nil {
			return false, err
		}
	case "place":
		pattern, err := model.LookupPattern(cmd.word)
		if err != nil {
			return false, err
		}
		g.board.Place(pattern, cmd.args[0], cmd.args[1])
	default:
		return false, errors.Errorf("[execute] unhandled command: %q", cmd.name)
	}

	g.renderLocked()
	return false, nil
}

// resizeLocked changes the cell pixel size and rebuilds an all-dead board
func (g *game) resizeLocked(cellSize int) error {
	config := g.config
	config.CellSize = cellSize
	if err := config.Validate(); err != nil {
		return errors.Wrap(err, "[resize] rejected cell size")
	}

	g.config = config
	g.board.Initialize(config.Rows(), config.Cols())
	logrus.WithFields(logrus.Fields{
		"cell_size": cellSize,
		"rows":      config.Rows(),
		"cols":      config.Cols(),
	}).Info("Board resized")
	return nil
}

// displayFinalStats prints the summary shown on exit
func (g *game) displayFinalStats() {
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprintf(g.out, "Final stats: %d generations in %.1f seconds\n",
		g.board.Generation(), g.stats.Runtime().Seconds())
	fmt.Fprintf(g.out, "Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
}
