package game

import (
	"time"

	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/timer"
	"github.com/chimarrao/platformer/internal/ui"
)

// ButtonSwitchDelay is the minimum time between two focus moves while an
// arrow key is held.
const ButtonSwitchDelay = 150 * time.Millisecond

// GridButtonsNavigator moves keyboard focus over rows of buttons with the
// arrow keys and presses the focused one when Enter is released. Moving
// off an edge wraps around.
type GridButtonsNavigator struct {
	grid     [][]*ui.Button
	row, col int
	normal   graphics.Color
	focus    graphics.Color
	timer    *timer.Timer
}

func NewGridButtonsNavigator(grid [][]*ui.Button, normal, focus graphics.Color, clock timer.Clock) *GridButtonsNavigator {
	n := &GridButtonsNavigator{grid: grid, normal: normal, focus: focus, timer: timer.New(clock)}
	n.Activate()
	return n
}

// Activate puts the focus back on the first button.
func (n *GridButtonsNavigator) Activate() {
	n.row, n.col = 0, 0
	n.timer.Restart()
	n.paint()
}

func (n *GridButtonsNavigator) Update(in input.Input) {
	if len(n.grid) == 0 {
		return
	}
	if in.IsKeyReleased(input.KeyEnter) {
		n.Focused().Press()
		return
	}
	if n.timer.Elapsed() < ButtonSwitchDelay {
		return
	}
	row, col := n.row, n.col
	switch {
	case in.IsKeyPressed(input.KeyUp):
		row = (row - 1 + len(n.grid)) % len(n.grid)
	case in.IsKeyPressed(input.KeyDown):
		row = (row + 1) % len(n.grid)
	case in.IsKeyPressed(input.KeyLeft):
		col = (col - 1 + len(n.grid[row])) % len(n.grid[row])
	case in.IsKeyPressed(input.KeyRight):
		col = (col + 1) % len(n.grid[row])
	default:
		return
	}
	n.row, n.col = row, min(col, len(n.grid[row])-1)
	n.timer.Restart()
	n.paint()
}

func (n *GridButtonsNavigator) Focused() *ui.Button {
	if len(n.grid) == 0 {
		return nil
	}
	return n.grid[n.row][n.col]
}

// FocusIndex is the focused button's row and column.
func (n *GridButtonsNavigator) FocusIndex() (row, col int) { return n.row, n.col }

func (n *GridButtonsNavigator) paint() {
	for r, buttons := range n.grid {
		for c, b := range buttons {
			if r == n.row && c == n.col {
				b.SetColor(n.focus)
			} else {
				b.SetColor(n.normal)
			}
		}
	}
}
