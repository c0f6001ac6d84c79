package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/tilemap"
	"github.com/chimarrao/platformer/internal/timer"
	"github.com/chimarrao/platformer/internal/ui"
)

const saveTimeout = 10 * time.Second

// MapStore persists edited levels. persist.MapRepo and data.LevelDir
// implement it.
type MapStore interface {
	Save(ctx context.Context, level *data.Level) (bool, error)
}

// SaveMapState asks for a map name and stores the edited level under it.
// Enter or the Save button saves and returns to the previous state; Escape
// or Cancel returns without saving.
type SaveMapState struct {
	pool    graphics.RendererPool
	log     *zap.Logger
	store   MapStore
	level   *data.Level
	saved   func(*data.Level)
	title   graphics.ID
	field   *ui.TextField
	buttons []*ui.Button
	leave   *timer.Timer
	next    NextState
}

// NewSaveMapState saves level through store; saved, if set, runs after
// every successful save.
func NewSaveMapState(ids *ecs.EntityPool, pool graphics.RendererPool, clock timer.Clock, log *zap.Logger, width float64, store MapStore, level *data.Level, saved func(*data.Level)) (*SaveMapState, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SaveMapState{pool: pool, log: log, store: store, level: level, saved: saved, leave: timer.New(clock)}
	left := (width - 300) / 2
	s.title = pool.AcquireText(geom.Vec(left, 80), "Map name", 24, graphics.White)

	var err error
	if s.field, err = ui.NewTextField(ids, pool, &ui.TextFieldConfig{
		Name:       "map name",
		Position:   geom.Vec(left, 140),
		Size:       geom.Vec(300, 32),
		Color:      graphics.White,
		TextColor:  graphics.Black,
		FontSize:   16,
		TextOffset: geom.Vec(8, 8),
		Text:       level.Map.Name,
	}); err != nil {
		pool.Release(s.title)
		return nil, err
	}

	for i, b := range []struct {
		label  string
		action func()
	}{
		{"Save", s.save},
		{"Cancel", func() { s.next = Previous }},
	} {
		button, err := ui.NewButton(ids, pool, &ui.ButtonConfig{
			Name:       b.label,
			Position:   geom.Vec(left+float64(i)*160, 200),
			Size:       geom.Vec(140, 36),
			Color:      menuButtonColor,
			HoverColor: menuFocusColor,
			Text:       b.label,
			TextColor:  graphics.White,
			FontSize:   16,
			TextOffset: geom.Vec(20, 10),
			OnClick:    b.action,
		}, clock)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.buttons = append(s.buttons, button)
	}
	return s, nil
}

func (s *SaveMapState) Update(dt time.Duration, in input.Input) NextState {
	if in.IsKeyPressed(input.KeyEscape) && s.leave.Elapsed() >= LeaveDelay {
		return Previous
	}
	s.field.Update(dt, in)
	for _, b := range s.buttons {
		b.Update(dt, in)
	}
	if in.IsKeyReleased(input.KeyEnter) {
		s.save()
	}
	next := s.next
	s.next = Same
	return next
}

// save stores the level under the normalized field text. An empty name or
// a failed save keeps the state open.
func (s *SaveMapState) save() {
	name := tilemap.NormalizeName(s.field.Text())
	if name == "" {
		s.log.Warn("map name is empty")
		return
	}
	previous := s.level.Map.Name
	s.level.Map.Name = name

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	changed, err := s.store.Save(ctx, s.level)
	if err != nil {
		s.level.Map.Name = previous
		s.log.Error("save map failed", zap.String("map", name), zap.Error(err))
		return
	}
	s.log.Info("map saved", zap.String("map", name), zap.Bool("changed", changed))
	if s.saved != nil {
		s.saved(s.level)
	}
	s.next = Previous
}

func (s *SaveMapState) Activate() {
	s.pool.SetVisible(s.title, true)
	s.field.Activate()
	for _, b := range s.buttons {
		b.Activate()
	}
	s.leave.Restart()
	s.next = Same
}

func (s *SaveMapState) Deactivate() {
	s.pool.SetVisible(s.title, false)
	s.field.Deactivate()
	for _, b := range s.buttons {
		b.Deactivate()
	}
}

func (s *SaveMapState) Close() {
	s.pool.Release(s.title)
	s.field.Destroy()
	for _, b := range s.buttons {
		b.Destroy()
	}
	s.buttons = nil
}

func (s *SaveMapState) Field() *ui.TextField { return s.field }
