package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/components"
	"github.com/chimarrao/platformer/internal/config"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
	coresys "github.com/chimarrao/platformer/internal/core/system"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
	"github.com/chimarrao/platformer/internal/scripting"
	"github.com/chimarrao/platformer/internal/timer"
	"github.com/chimarrao/platformer/internal/ui"
)

// PauseDebounce is the minimum time between two pause toggles.
const PauseDebounce = 500 * time.Millisecond

var ErrNoPlayer = errors.New("level has no player spawn")

var resumeButtonSize = geom.Vec(120, 32)

// Deps carries the long-lived services a GameState is built from.
type Deps struct {
	Config    *config.Config
	Pool      graphics.RendererPool
	Animators animations.SettingsRepository
	Templates TemplateRepository
	Scripts   *scripting.Engine // nil: template damage and heal values
	Clock     timer.Clock       // nil: wall clock
	Log       *zap.Logger
	// RenderEachFrame registers a RenderSystem. Window backends that render
	// from their own draw callback leave it off.
	RenderEachFrame bool
}

// GameState owns one running level: its owners, collision world, frame
// systems and pause menu. Single goroutine.
type GameState struct {
	log        *zap.Logger
	ids        *ecs.EntityPool
	owners     *ecs.Manager
	events     *event.Bus
	collisions *physics.CollisionSystem
	factory    *CharacterFactory
	runner     *coresys.Runner
	player     *ecs.ComponentOwner
	hud        *HeadsUpDisplay
	resume     *ui.Button
	quit       *ui.Button
	paused     bool
	over       bool
	leave      bool
}

// NewGameState builds the level's obstacles and spawns, then registers the
// frame systems. Nothing is live until the first Update.
func NewGameState(deps Deps, level *data.Level) (*GameState, error) {
	cfg := deps.Config
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	bounds := level.Map.Bounds().Union(geom.NewBox(0, 0, cfg.Physics.WorldWidth, cfg.Physics.WorldHeight))
	phys := physics.NewFactory(bounds, cfg.Physics.QuadtreeCapacity, cfg.Physics.QuadtreeMaxDepth)

	ids := ecs.NewEntityPool()
	s := &GameState{
		log:        deps.Log,
		ids:        ids,
		owners:     ecs.NewManager(ids),
		events:     event.NewBus(),
		collisions: phys.CreateCollisionSystem(),
		runner:     coresys.NewRunner(),
	}
	s.factory = NewCharacterFactory(FactoryDeps{
		IDs:       ids,
		Pool:      deps.Pool,
		Animators: deps.Animators,
		Templates: deps.Templates,
		Physics:   phys,
		Events:    s.events,
		Scripts:   deps.Scripts,
		Clock:     deps.Clock,
		Log:       deps.Log,
		Movement: components.MovementConfig{
			Speed:     cfg.Physics.MovementSpeed,
			JumpSpeed: cfg.Physics.JumpSpeed,
			Gravity:   cfg.Physics.Gravity,
		},
	})

	built, err := s.build(level)
	if err != nil {
		for _, o := range built {
			o.Destroy()
		}
		return nil, fmt.Errorf("build level %s: %w", level.Map.Name, err)
	}

	if s.hud, err = NewHeadsUpDisplay(ids, deps.Pool, s.player); err != nil {
		for _, o := range built {
			o.Destroy()
		}
		return nil, fmt.Errorf("hud: %w", err)
	}
	if s.resume, err = ui.NewButton(ids, deps.Pool, &ui.ButtonConfig{
		Name:       "resume",
		Size:       resumeButtonSize,
		Color:      graphics.RGB(40, 40, 40),
		HoverColor: graphics.RGB(80, 80, 80),
		Text:       "Resume",
		TextColor:  graphics.White,
		FontSize:   14,
		TextOffset: geom.Vec(34, 10),
		OnClick:    s.Resume,
	}, deps.Clock); err != nil {
		s.hud.Destroy()
		for _, o := range built {
			o.Destroy()
		}
		return nil, fmt.Errorf("pause menu: %w", err)
	}
	if s.quit, err = ui.NewButton(ids, deps.Pool, &ui.ButtonConfig{
		Name:       "quit",
		Size:       resumeButtonSize,
		Color:      graphics.RGB(40, 40, 40),
		HoverColor: graphics.RGB(80, 80, 80),
		Text:       "Menu",
		TextColor:  graphics.White,
		FontSize:   14,
		TextOffset: geom.Vec(40, 10),
		OnClick:    func() { s.leave = true },
	}, deps.Clock); err != nil {
		s.resume.Destroy()
		s.hud.Destroy()
		for _, o := range built {
			o.Destroy()
		}
		return nil, fmt.Errorf("pause menu: %w", err)
	}
	s.resume.Deactivate()
	s.quit.Deactivate()

	for _, o := range built {
		s.owners.Add(o)
	}
	s.subscribe()

	s.runner.Register(NewPauseSystem(s, PauseDebounce, deps.Clock))
	s.runner.Register(NewEventDispatchSystem(s.events))
	s.runner.Register(NewSpawnSystem(s.owners, s.collisions))
	s.runner.Register(NewUpdateSystem(s.owners))
	s.runner.Register(NewResolveSystem(s.collisions))
	s.runner.Register(NewLateUpdateSystem(s.owners, s.hud))
	s.runner.Register(NewCleanupSystem(s.owners, s.collisions))
	if deps.RenderEachFrame {
		s.runner.Register(NewRenderSystem(deps.Pool))
	}

	s.log.Info("level built",
		zap.String("map", level.Map.Name),
		zap.Int("owners", len(built)),
		zap.Int("spawns", len(level.Spawns)))
	return s, nil
}

// build creates obstacles, then the player, then every other spawn. The
// owners built so far are returned even on error so the caller can
// destroy them.
func (s *GameState) build(level *data.Level) ([]*ecs.ComponentOwner, error) {
	built, err := level.Map.Obstacles(s.factory)
	if err != nil {
		return nil, err
	}

	rest := make([]data.Spawn, 0, len(level.Spawns))
	for _, sp := range level.Spawns {
		kind, err := s.factory.Kind(sp.Template)
		if err != nil {
			return built, err
		}
		if kind != KindPlayer {
			rest = append(rest, sp)
			continue
		}
		if s.player != nil {
			s.log.Warn("extra player spawn ignored", zap.String("template", sp.Template))
			continue
		}
		o, err := s.factory.Create(sp, nil)
		if err != nil {
			return built, err
		}
		s.player = o
		built = append(built, o)
	}
	if s.player == nil {
		return built, ErrNoPlayer
	}

	for _, sp := range rest {
		o, err := s.factory.Create(sp, s.player)
		if err != nil {
			return built, err
		}
		built = append(built, o)
	}
	return built, nil
}

func (s *GameState) subscribe() {
	event.Subscribe(s.events, func(e event.OwnerDied) {
		if e.Owner == s.player {
			s.log.Info("player died")
			s.over = true
			return
		}
		s.log.Debug("owner died", zap.String("name", e.Owner.Name()), zap.Uint64("id", uint64(e.Owner.ID())))
		e.Owner.Remove()
	})
	event.Subscribe(s.events, func(e event.AttackHit) {
		s.log.Debug("attack hit",
			zap.String("attacker", e.Attacker.Name()),
			zap.String("target", e.Target.Name()),
			zap.Int("damage", e.Damage),
			zap.Bool("critical", e.Critical))
	})
	event.Subscribe(s.events, func(e event.ItemCollected) {
		s.log.Debug("item collected", zap.String("item", e.Name), zap.String("by", e.Collector.Name()))
	})
	event.Subscribe(s.events, func(e event.ItemUsed) {
		s.log.Debug("item used", zap.String("item", e.Name), zap.String("by", e.Collector.Name()))
	})
}

// Update runs one frame. While paused only input handling, the pause menu
// and rendering run. It asks for the main menu once the player has died or
// the pause menu's Menu button was clicked.
func (s *GameState) Update(dt time.Duration, in input.Input) NextState {
	if !s.paused {
		s.runner.Tick(dt, in)
	} else {
		s.runner.TickPhase(coresys.PhaseInput, dt, in)
		if s.paused {
			s.resume.Update(dt, in)
			s.quit.Update(dt, in)
		}
		s.runner.TickPhase(coresys.PhaseRender, dt, in)
	}
	if s.over || s.leave {
		return Menu
	}
	return Same
}

func (s *GameState) TogglePause() {
	if s.paused {
		s.Resume()
	} else {
		s.Pause()
	}
}

// Pause disables every owner and shows the resume button over the player.
func (s *GameState) Pause() {
	if s.paused {
		return
	}
	s.paused = true
	s.owners.Deactivate()
	at := s.player.Position().Sub(resumeButtonSize.Scale(0.5))
	s.resume.Owner().Transform().SetPosition(at)
	s.quit.Owner().Transform().SetPosition(at.Add(geom.Vec(0, resumeButtonSize.Y+8)))
	s.resume.Activate()
	s.quit.Activate()
	s.log.Debug("paused")
}

func (s *GameState) Resume() {
	if !s.paused {
		return
	}
	s.paused = false
	s.resume.Deactivate()
	s.quit.Deactivate()
	s.owners.Activate()
	// held items stay out of the world
	for _, o := range s.owners.Owners() {
		if item, ok := ecs.GetComponent[*components.CollectableItemComponent](o); ok && item.Collector() != nil {
			o.Disable()
		}
	}
	s.log.Debug("resumed")
}

// Spawn stages an extra owner built from a template; it goes live on the
// next frame.
func (s *GameState) Spawn(sp data.Spawn) (*ecs.ComponentOwner, error) {
	o, err := s.factory.Create(sp, s.player)
	if err != nil {
		return nil, err
	}
	s.owners.Add(o)
	return o, nil
}

// Activate and Deactivate let the game sit under another state, paused.
func (s *GameState) Activate()   { s.Resume() }
func (s *GameState) Deactivate() { s.Pause() }

func (s *GameState) Player() *ecs.ComponentOwner          { return s.player }
func (s *GameState) HUD() *HeadsUpDisplay                 { return s.hud }
func (s *GameState) Owners() *ecs.Manager                 { return s.owners }
func (s *GameState) Collisions() *physics.CollisionSystem { return s.collisions }
func (s *GameState) Factory() *CharacterFactory           { return s.factory }
func (s *GameState) ResumeButton() *ui.Button             { return s.resume }
func (s *GameState) MenuButton() *ui.Button               { return s.quit }
func (s *GameState) IsPaused() bool                       { return s.paused }
func (s *GameState) Frames() uint64                       { return s.runner.Frames() }

// IsOver is true once the player has died.
func (s *GameState) IsOver() bool { return s.over }

// Close destroys every owner and releases their drawables.
func (s *GameState) Close() {
	s.owners.ProcessNewObjects()
	for _, o := range s.owners.Owners() {
		o.Remove()
	}
	s.owners.ProcessRemovals()
	s.collisions.ProcessRemovals()
	s.hud.Destroy()
	s.resume.Destroy()
	s.quit.Destroy()
}
