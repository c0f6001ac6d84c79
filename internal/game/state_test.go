package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/components"
	"github.com/chimarrao/platformer/internal/config"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/scripting"
)

func run(s *GameState, in input.Input, frames int) {
	for i := 0; i < frames; i++ {
		s.Update(frame, in)
	}
}

func TestGameStateNeedsAPlayer(t *testing.T) {
	f := newFixture()
	_, err := NewGameState(f.deps, testLevel(t, data.Spawn{Template: "druid", X: 10, Y: 64}))
	require.ErrorIs(t, err, ErrNoPlayer)
	assert.Zero(t, f.pool.Len())
}

func TestGameStateAbortsOnBadSpawn(t *testing.T) {
	f := newFixture()
	_, err := NewGameState(f.deps, testLevel(t,
		data.Spawn{Template: "player", X: 10, Y: 64},
		data.Spawn{Template: "broken", X: 40, Y: 64},
	))
	require.Error(t, err)
	assert.Zero(t, f.pool.Len())
}

func TestGameStateFirstFrameMakesOwnersLive(t *testing.T) {
	f := newFixture()
	s, err := NewGameState(f.deps, testLevel(t,
		data.Spawn{Template: "player", X: 10, Y: 64},
		data.Spawn{Template: "druid", X: 100, Y: 64},
	))
	require.NoError(t, err)

	assert.Zero(t, s.Owners().Len())
	assert.Equal(t, 7, s.Owners().PendingLen()) // 5 floor tiles, player, druid

	s.Update(frame, input.NewStatus())
	assert.Equal(t, 7, s.Owners().Len())
	assert.Equal(t, 7, s.Collisions().Len())
	assert.Equal(t, uint64(1), s.Frames())
}

func TestGameStatePlayerLandsOnFloor(t *testing.T) {
	f := newFixture()
	s, err := NewGameState(f.deps, testLevel(t, data.Spawn{Template: "player", X: 48, Y: 0}))
	require.NoError(t, err)

	run(s, input.NewStatus(), 120)

	assert.InDelta(t, 64, s.Player().Position().Y, 1e-6)
	assert.InDelta(t, 48, s.Player().Position().X, 1e-9)
	v, _ := ecs.GetComponent[*components.VelocityComponent](s.Player())
	assert.Zero(t, v.Velocity().Y)

	// the HUD follows the player
	assert.InDelta(t, 64-hudGap-hudHeight, s.HUD().Owner().Position().Y, 1e-6)
}

func TestGameStateCombatRemovesDeadEnemy(t *testing.T) {
	f := newFixture()
	s, err := NewGameState(f.deps, testLevel(t,
		data.Spawn{Template: "player", X: 48, Y: 64},
		data.Spawn{Template: "bandit", X: 80, Y: 64},
	))
	require.NoError(t, err)

	in := input.NewStatus()
	in.Press(input.KeyF)
	s.Update(frame, in)

	bandit, ok := s.Owners().FindByName("bandit")
	require.True(t, ok)
	health, _ := ecs.GetComponent[*components.HealthComponent](bandit)
	assert.True(t, health.IsDead())

	// the bandit struck back in the same frame
	assert.InDelta(t, 0.85, s.HUD().Ratio(), 1e-9)

	in.Press()
	s.Update(frame, in)
	_, ok = s.Owners().FindByName("bandit")
	assert.False(t, ok)
	assert.True(t, bandit.IsDestroyed())
	assert.False(t, s.IsOver())
}

func TestGameStateScriptedDamage(t *testing.T) {
	scripts, err := scripting.NewEngine("../../scripts", zap.NewNop())
	require.NoError(t, err)
	defer scripts.Close()

	f := newFixture()
	f.deps.Scripts = scripts
	s, err := NewGameState(f.deps, testLevel(t,
		data.Spawn{Template: "player", X: 48, Y: 64},
		data.Spawn{Template: "bandit", X: 80, Y: 64},
	))
	require.NoError(t, err)

	s.Update(frame, input.NewStatus())

	// bandits deal 80% of their base damage: 15 -> 12
	assert.InDelta(t, 0.88, s.HUD().Ratio(), 1e-9)
}

func TestGameStatePlayerDeathEndsGame(t *testing.T) {
	f := newFixture()
	tpl := testTemplates()
	tpl["player"].Health = 10
	f.deps.Templates = tpl
	s, err := NewGameState(f.deps, testLevel(t,
		data.Spawn{Template: "player", X: 48, Y: 64},
		data.Spawn{Template: "bandit", X: 80, Y: 64},
	))
	require.NoError(t, err)

	s.Update(frame, input.NewStatus())
	assert.False(t, s.IsOver(), "death is delivered next frame")
	s.Update(frame, input.NewStatus())
	assert.True(t, s.IsOver())
	_, ok := s.Owners().FindByName("player")
	assert.True(t, ok, "the player is never swept")
}

func TestGameStatePauseDebounce(t *testing.T) {
	f := newFixture()
	s, err := NewGameState(f.deps, testLevel(t, data.Spawn{Template: "player", X: 48, Y: 64}))
	require.NoError(t, err)
	in := input.NewStatus()
	s.Update(frame, in)

	f.clock.Advance(time.Second)
	in.Press(input.KeyEscape)
	s.Update(frame, in)
	require.True(t, s.IsPaused())
	assert.False(t, s.Player().AreComponentsEnabled())
	assert.True(t, s.ResumeButton().IsActive())
	frames := s.Frames()

	// held Escape inside the debounce window changes nothing
	f.clock.Advance(100 * time.Millisecond)
	s.Update(frame, in)
	assert.True(t, s.IsPaused())
	assert.Equal(t, frames, s.Frames(), "paused frames do not tick the simulation")

	f.clock.Advance(PauseDebounce)
	s.Update(frame, in)
	assert.False(t, s.IsPaused())
	assert.True(t, s.Player().AreComponentsEnabled())
	assert.False(t, s.ResumeButton().IsActive())
}

func TestGameStateResumeButton(t *testing.T) {
	f := newFixture()
	s, err := NewGameState(f.deps, testLevel(t, data.Spawn{Template: "player", X: 48, Y: 64}))
	require.NoError(t, err)
	s.Update(frame, input.NewStatus())

	s.Pause()
	require.True(t, s.IsPaused())
	center := s.Player().Position()

	in := input.NewStatus()
	in.SetMousePosition(center)
	in.Press(input.MouseLeft)
	s.Update(frame, in)
	in.Press()
	s.Update(frame, in)
	assert.True(t, s.IsPaused(), "the button is frozen right after activation")

	f.clock.Advance(time.Second)
	in.Press(input.MouseLeft)
	s.Update(frame, in)
	in.Press()
	s.Update(frame, in)
	assert.False(t, s.IsPaused())
}

func TestGameStateResumeKeepsHeldItemsHidden(t *testing.T) {
	f := newFixture()
	s, err := NewGameState(f.deps, testLevel(t,
		data.Spawn{Template: "player", X: 48, Y: 64},
		data.Spawn{Template: "apple", X: 50, Y: 84},
	))
	require.NoError(t, err)

	in := input.NewStatus()
	s.Update(frame, in)
	in.Press(input.KeyE)
	s.Update(frame, in)
	in.Press()
	s.Update(frame, in)

	apple, ok := s.Owners().FindByName("apple")
	require.True(t, ok)
	require.False(t, apple.AreComponentsEnabled())

	s.Pause()
	s.Resume()
	assert.False(t, apple.AreComponentsEnabled())
}

func TestGameStateCloseReleasesDrawables(t *testing.T) {
	f := newFixture()
	s, err := NewGameState(f.deps, testLevel(t,
		data.Spawn{Template: "player", X: 48, Y: 64},
		data.Spawn{Template: "druid", X: 100, Y: 64},
	))
	require.NoError(t, err)
	s.Update(frame, input.NewStatus())
	require.NotZero(t, f.pool.Len())

	s.Close()
	assert.Zero(t, f.pool.Len())
}

func TestSampleDataBuildsMeadow(t *testing.T) {
	animators, err := data.LoadAnimatorSettings("../../data/yaml/animators.yaml")
	require.NoError(t, err)
	templates, err := data.LoadCharacterTemplates("../../data/yaml/templates.yaml")
	require.NoError(t, err)
	level, err := data.LoadLevel("../../data/yaml/maps/meadow.yaml")
	require.NoError(t, err)

	f := newFixture()
	f.deps.Config = config.Default()
	f.deps.Animators = animators
	f.deps.Templates = templates
	s, err := NewGameState(f.deps, level)
	require.NoError(t, err)

	run(s, input.NewStatus(), 60)

	assert.Equal(t, 106+6, s.Owners().Len())
	assert.Equal(t, geom.Vec(64, 288), s.Player().Position())
	assert.False(t, s.IsOver())
}

func TestGameStatesDoNotShareOwnerIDs(t *testing.T) {
	first, err := NewGameState(newFixture().deps, testLevel(t, data.Spawn{Template: "player", X: 48, Y: 64}))
	require.NoError(t, err)
	second, err := NewGameState(newFixture().deps, testLevel(t, data.Spawn{Template: "player", X: 48, Y: 64}))
	require.NoError(t, err)

	assert.NotEqual(t, first.Player().ID(), second.Player().ID())
}
