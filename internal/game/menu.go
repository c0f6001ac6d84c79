package game

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/timer"
	"github.com/chimarrao/platformer/internal/ui"
)

// LeaveDelay keeps a state from reacting to the Escape press that opened it.
const LeaveDelay = 500 * time.Millisecond

var (
	menuButtonSize  = geom.Vec(200, 40)
	menuButtonColor = graphics.RGB(40, 40, 40)
	menuFocusColor  = graphics.RGB(90, 90, 140)
)

// MenuItem is one button of a MenuState.
type MenuItem struct {
	Label string
	Next  NextState
}

// MenuState is a titled column of buttons, each leading to another state.
// It serves both the main menu and the editor menu.
type MenuState struct {
	pool    graphics.RendererPool
	title   graphics.ID
	buttons []*ui.Button
	nav     *GridButtonsNavigator
	leave   *timer.Timer
	escape  NextState
	next    NextState
}

// NewMenuState lays the items out centered on a screen of the given width.
// Escape returns escape once LeaveDelay has passed; Same disables it.
func NewMenuState(ids *ecs.EntityPool, pool graphics.RendererPool, clock timer.Clock, width float64, title string, items []MenuItem, escape NextState) (*MenuState, error) {
	m := &MenuState{pool: pool, leave: timer.New(clock), escape: escape}
	left := (width - menuButtonSize.X) / 2
	m.title = pool.AcquireText(geom.Vec(left, 80), title, 24, graphics.White)

	grid := make([][]*ui.Button, 0, len(items))
	for i, item := range items {
		next := item.Next
		b, err := ui.NewButton(ids, pool, &ui.ButtonConfig{
			Name:       item.Label,
			Position:   geom.Vec(left, 160+float64(i)*(menuButtonSize.Y+16)),
			Size:       menuButtonSize,
			Color:      menuButtonColor,
			Text:       item.Label,
			TextColor:  graphics.White,
			FontSize:   16,
			TextOffset: geom.Vec(20, 12),
			OnClick:    func() { m.next = next },
		}, clock)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.buttons = append(m.buttons, b)
		grid = append(grid, []*ui.Button{b})
	}
	m.nav = NewGridButtonsNavigator(grid, menuButtonColor, menuFocusColor, clock)
	return m, nil
}

func (m *MenuState) Update(dt time.Duration, in input.Input) NextState {
	if m.escape != Same && in.IsKeyPressed(input.KeyEscape) && m.leave.Elapsed() >= LeaveDelay {
		return m.escape
	}
	for _, b := range m.buttons {
		b.Update(dt, in)
	}
	m.nav.Update(in)
	next := m.next
	m.next = Same
	return next
}

func (m *MenuState) Activate() {
	m.pool.SetVisible(m.title, true)
	for _, b := range m.buttons {
		b.Activate()
	}
	m.nav.Activate()
	m.leave.Restart()
	m.next = Same
}

func (m *MenuState) Deactivate() {
	m.pool.SetVisible(m.title, false)
	for _, b := range m.buttons {
		b.Deactivate()
	}
}

func (m *MenuState) Close() {
	m.pool.Release(m.title)
	for _, b := range m.buttons {
		b.Destroy()
	}
	m.buttons = nil
}

func (m *MenuState) Buttons() []*ui.Button            { return m.buttons }
func (m *MenuState) Navigator() *GridButtonsNavigator { return m.nav }
