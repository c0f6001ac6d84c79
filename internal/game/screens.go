package game

import (
	"errors"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/geom"
)

var (
	ErrNothingToSave = errors.New("no level is being edited")
	ErrNoMapStore    = errors.New("no map store configured")
)

// Screens builds the states the game moves between and carries the level
// from one to the next. The editor works on a copy of the current level;
// once saved, that copy is what the next game plays.
type Screens struct {
	deps    Deps
	ids     *ecs.EntityPool
	level   *data.Level
	editing *data.Level
	store   MapStore
}

func NewScreens(deps Deps, level *data.Level, store MapStore) *Screens {
	return &Screens{deps: deps, ids: ecs.NewEntityPool(), level: level, store: store}
}

// Builders maps every pushable state to its constructor.
func (s *Screens) Builders() map[NextState]StateBuilder {
	return map[NextState]StateBuilder{
		Menu:       s.menu,
		Game:       s.game,
		Editor:     s.editor,
		EditorMenu: s.editorMenu,
		SaveMap:    s.saveMap,
	}
}

// Level is the level the next game starts on.
func (s *Screens) Level() *data.Level { return s.level }

func (s *Screens) screen() geom.Vector {
	w := s.deps.Config.Window
	return geom.Vec(float64(w.Width), float64(w.Height))
}

func (s *Screens) menu() (State, error) {
	return NewMenuState(s.ids, s.deps.Pool, s.deps.Clock, s.screen().X, s.deps.Config.Game.Name, []MenuItem{
		{Label: "Play", Next: Game},
		{Label: "Map editor", Next: Editor},
		{Label: "Exit", Next: Exit},
	}, Same)
}

func (s *Screens) editorMenu() (State, error) {
	return NewMenuState(s.ids, s.deps.Pool, s.deps.Clock, s.screen().X, "Editor", []MenuItem{
		{Label: "Back to editor", Next: Previous},
		{Label: "Save map", Next: SaveMap},
		{Label: "Main menu", Next: Menu},
	}, Previous)
}

func (s *Screens) game() (State, error) {
	return NewGameState(s.deps, s.level)
}

func (s *Screens) editor() (State, error) {
	s.editing = s.level.Clone()
	return NewEditorState(s.deps.Pool, s.deps.Clock, s.editing, s.screen()), nil
}

func (s *Screens) saveMap() (State, error) {
	if s.store == nil {
		return nil, ErrNoMapStore
	}
	if s.editing == nil {
		return nil, ErrNothingToSave
	}
	return NewSaveMapState(s.ids, s.deps.Pool, s.deps.Clock, s.deps.Log, s.screen().X, s.store, s.editing, func(l *data.Level) {
		s.level = l.Clone()
	})
}
