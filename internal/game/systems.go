package game

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
	coresys "github.com/chimarrao/platformer/internal/core/system"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
	"github.com/chimarrao/platformer/internal/timer"
)

// PauseSystem toggles the game state on Escape, at most once per debounce
// window. Phase 0 (Input), so it also runs while paused.
type PauseSystem struct {
	state    *GameState
	debounce time.Duration
	timer    *timer.Timer
}

func NewPauseSystem(state *GameState, debounce time.Duration, clock timer.Clock) *PauseSystem {
	return &PauseSystem{state: state, debounce: debounce, timer: timer.New(clock)}
}

func (s *PauseSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *PauseSystem) Update(_ time.Duration, in input.Input) {
	if !in.IsKeyPressed(input.KeyEscape) || s.timer.Elapsed() < s.debounce {
		return
	}
	s.timer.Restart()
	s.state.TogglePause()
}

// EventDispatchSystem delivers the events emitted during the previous frame.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(time.Duration, input.Input) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// SpawnSystem moves staged owners into the live set and registers their
// colliders. Phase 2 (Spawn).
type SpawnSystem struct {
	owners     *ecs.Manager
	collisions *physics.CollisionSystem
}

func NewSpawnSystem(owners *ecs.Manager, collisions *physics.CollisionSystem) *SpawnSystem {
	return &SpawnSystem{owners: owners, collisions: collisions}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(time.Duration, input.Input) {
	if added := s.owners.ProcessNewObjects(); len(added) > 0 {
		s.collisions.Add(added)
	}
	s.collisions.Refresh()
}

// UpdateSystem runs the decision pass. Phase 3 (Update).
type UpdateSystem struct {
	owners *ecs.Manager
}

func NewUpdateSystem(owners *ecs.Manager) *UpdateSystem {
	return &UpdateSystem{owners: owners}
}

func (s *UpdateSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *UpdateSystem) Update(dt time.Duration, in input.Input) {
	s.owners.UpdatePass(dt, in)
}

// ResolveSystem clamps the movement proposed during the decision pass.
// Phase 4 (Resolve).
type ResolveSystem struct {
	collisions *physics.CollisionSystem
}

func NewResolveSystem(collisions *physics.CollisionSystem) *ResolveSystem {
	return &ResolveSystem{collisions: collisions}
}

func (s *ResolveSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *ResolveSystem) Update(dt time.Duration, _ input.Input) {
	s.collisions.Update(dt)
}

// LateUpdateSystem runs the effect pass, then moves the HUD onto the
// player's new position. Phase 5 (LateUpdate).
type LateUpdateSystem struct {
	owners *ecs.Manager
	hud    *HeadsUpDisplay
}

func NewLateUpdateSystem(owners *ecs.Manager, hud *HeadsUpDisplay) *LateUpdateSystem {
	return &LateUpdateSystem{owners: owners, hud: hud}
}

func (s *LateUpdateSystem) Phase() coresys.Phase { return coresys.PhaseLateUpdate }

func (s *LateUpdateSystem) Update(dt time.Duration, in input.Input) {
	s.owners.LateUpdatePass(dt, in)
	if s.hud != nil {
		s.hud.Update(dt, in)
	}
}

// CleanupSystem sweeps owners flagged for removal and drops their colliders.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	owners     *ecs.Manager
	collisions *physics.CollisionSystem
}

func NewCleanupSystem(owners *ecs.Manager, collisions *physics.CollisionSystem) *CleanupSystem {
	return &CleanupSystem{owners: owners, collisions: collisions}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(time.Duration, input.Input) {
	if removed := s.owners.ProcessRemovals(); len(removed) > 0 {
		s.collisions.ProcessRemovals()
	}
}

// RenderSystem pushes every visible drawable to the backend.
// Phase 7 (Render).
type RenderSystem struct {
	pool graphics.RendererPool
}

func NewRenderSystem(pool graphics.RendererPool) *RenderSystem {
	return &RenderSystem{pool: pool}
}

func (s *RenderSystem) Phase() coresys.Phase { return coresys.PhaseRender }

func (s *RenderSystem) Update(time.Duration, input.Input) {
	s.pool.RenderAll()
}
