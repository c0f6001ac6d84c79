package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/input"
)

// NextState is what a state asks the StatesManager to do after its frame.
type NextState uint8

const (
	Same     NextState = iota
	Previous           // pop the current state
	Menu               // unwind to the main menu
	Game
	Editor
	EditorMenu
	SaveMap
	Exit
)

var nextStateNames = [...]string{"same", "previous", "menu", "game", "editor", "editor menu", "save map", "exit"}

func (n NextState) String() string {
	if int(n) < len(nextStateNames) {
		return nextStateNames[n]
	}
	return fmt.Sprintf("NextState(%d)", n)
}

var ErrUnknownState = errors.New("no builder for state")

// State is one screen on the stack. Only the top state is updated.
type State interface {
	Update(dt time.Duration, in input.Input) NextState
	Activate()
	Deactivate()
	Close()
}

// StateBuilder creates the state a transition pushes. Built states start
// active.
type StateBuilder func() (State, error)

type stackedState struct {
	kind  NextState
	state State
}

// StatesManager keeps the stack of screens and applies the transitions
// their updates return. Single goroutine.
type StatesManager struct {
	stack    []stackedState
	builders map[NextState]StateBuilder
	log      *zap.Logger
}

func NewStatesManager(builders map[NextState]StateBuilder, log *zap.Logger) *StatesManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatesManager{builders: builders, log: log}
}

// Push builds a state of the given kind on top of the stack. On failure
// the previous top stays active.
func (m *StatesManager) Push(kind NextState) error {
	build, ok := m.builders[kind]
	if !ok {
		return fmt.Errorf("%s: %w", kind, ErrUnknownState)
	}
	if top := m.top(); top != nil {
		top.state.Deactivate()
	}
	s, err := build()
	if err != nil {
		if top := m.top(); top != nil {
			top.state.Activate()
		}
		return fmt.Errorf("build %s state: %w", kind, err)
	}
	m.stack = append(m.stack, stackedState{kind: kind, state: s})
	m.log.Debug("state pushed", zap.Stringer("state", kind), zap.Int("depth", len(m.stack)))
	return nil
}

// Update runs the top state for one frame and applies its transition. It
// reports false once the stack is empty.
func (m *StatesManager) Update(dt time.Duration, in input.Input) (bool, error) {
	top := m.top()
	if top == nil {
		return false, nil
	}
	var err error
	switch next := top.state.Update(dt, in); next {
	case Same:
	case Previous:
		m.pop()
	case Menu:
		err = m.unwindToMenu()
	case Exit:
		m.Close()
	default:
		err = m.Push(next)
	}
	return len(m.stack) > 0, err
}

func (m *StatesManager) pop() {
	top := m.top()
	m.stack = m.stack[:len(m.stack)-1]
	top.state.Close()
	m.log.Debug("state popped", zap.Stringer("state", top.kind), zap.Int("depth", len(m.stack)))
	if prev := m.top(); prev != nil {
		prev.state.Activate()
	}
}

// unwindToMenu pops until a menu is on top, building one if none was on
// the stack.
func (m *StatesManager) unwindToMenu() error {
	for len(m.stack) > 0 && m.top().kind != Menu {
		m.pop()
	}
	if len(m.stack) > 0 {
		return nil
	}
	return m.Push(Menu)
}

func (m *StatesManager) top() *stackedState {
	if len(m.stack) == 0 {
		return nil
	}
	return &m.stack[len(m.stack)-1]
}

// Top returns the state being updated, nil when the stack is empty.
func (m *StatesManager) Top() State {
	if top := m.top(); top != nil {
		return top.state
	}
	return nil
}

func (m *StatesManager) TopKind() NextState {
	if top := m.top(); top != nil {
		return top.kind
	}
	return Exit
}

func (m *StatesManager) Len() int { return len(m.stack) }

// Close closes every state, top first.
func (m *StatesManager) Close() {
	for i := len(m.stack) - 1; i >= 0; i-- {
		m.stack[i].state.Close()
	}
	m.stack = m.stack[:0]
}
