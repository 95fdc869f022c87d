package model

import (
	"bufio"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "
	gridBorder   = "|"

	macosClearCmd = "clear"
)

// TerminalRenderer draws a snapshot of alive cells as text
type TerminalRenderer struct {
	Out io.Writer
}

// NewTerminalRenderer returns a renderer writing to stdout
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Display renders a rows x cols view in which only the given cells are alive.
// It never touches a Board, only the snapshot it was handed.
func (r *TerminalRenderer) Display(rows, cols int, cells []Cell) {
	alive := make(map[Cell]struct{}, len(cells))
	for _, c := range cells {
		alive[c] = struct{}{}
	}

	w := bufio.NewWriter(r.Out)
	for y := range rows {
		w.WriteString(gridBorder)
		for x := range cols {
			if _, ok := alive[Cell{X: x, Y: y}]; ok {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteString(gridBorder)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		logrus.WithError(err).Warn("Failed to write board")
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(macosClearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		logrus.WithError(err).Debug("Error clearing terminal")
	}
}
