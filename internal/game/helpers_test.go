package game

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/config"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/tilemap"
	"github.com/chimarrao/platformer/internal/timer"
)

const frame = time.Second / 60

type animatorRepo map[string]animations.AnimatorSettings

func (r animatorRepo) AnimatorSettings(name string) (animations.AnimatorSettings, bool) {
	s, ok := r[name]
	return s, ok
}

type templateRepo map[string]*data.CharacterTemplate

func (r templateRepo) Template(name string) (*data.CharacterTemplate, error) {
	t, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, data.ErrTemplateNotFound)
	}
	return t, nil
}

func settingsFor(name string) animations.AnimatorSettings {
	s := animations.AnimatorSettings{Name: name}
	for _, t := range []string{"idle", "walk", "jump", "attack"} {
		s.Animations = append(s.Animations, animations.AnimationSettings{
			Type:          t,
			Frames:        []string{name + "/" + t + "-1.png", name + "/" + t + "-2.png"},
			FrameDuration: 0.1,
		})
	}
	return s
}

func testAnimators() animatorRepo {
	r := animatorRepo{}
	for _, n := range []string{"player", "rabbit", "druid", "bandit"} {
		r[n] = settingsFor(n)
	}
	return r
}

func testTemplates() templateRepo {
	return templateRepo{
		"player": {Name: "player", Kind: KindPlayer, Animator: "player", Width: 24, Height: 32, Health: 100, Damage: 30, AttackReach: 20, AttackCooldown: 0.5, Capacity: 2},
		"rabbit": {Name: "rabbit", Kind: KindFollower, Animator: "rabbit", Width: 16, Height: 16, Speed: 120, FollowDistance: 40},
		"druid":  {Name: "druid", Kind: KindNpc, Animator: "druid", Width: 24, Height: 32, Health: 60},
		"bandit": {Name: "bandit", Kind: KindEnemy, Animator: "bandit", Width: 24, Height: 32, Health: 30, Speed: 80, Damage: 15, AttackReach: 18, AttackCooldown: 1, SightRange: 200, FollowDistance: 20},
		"apple":  {Name: "apple", Kind: KindItem, Width: 12, Height: 12, Texture: "items/apple.png", HealPoints: 15},
		"ghost":  {Name: "ghost", Kind: "spirit", Animator: "player", Width: 10, Height: 10},
		"broken": {Name: "broken", Kind: KindNpc, Animator: "missing", Width: 10, Height: 10},
	}
}

type fixture struct {
	pool  *graphics.Pool
	clock *timer.Manual
	deps  Deps
}

func newFixture() *fixture {
	f := &fixture{
		pool:  graphics.NewPool(graphics.NewHeadlessRenderer(), graphics.PlaceholderTextureStorage{Width: 16, Height: 16}),
		clock: timer.NewManual(),
	}
	f.deps = Deps{
		Config:          config.Default(),
		Pool:            f.pool,
		Animators:       testAnimators(),
		Templates:       testTemplates(),
		Clock:           f.clock.Now,
		Log:             zap.NewNop(),
		RenderEachFrame: true,
	}
	return f
}

// testLevel is five tiles wide with a floor whose top is at y=96.
func testLevel(t *testing.T, spawns ...data.Spawn) *data.Level {
	t.Helper()
	m, err := tilemap.FromRows("test", 32, []string{
		".....",
		".....",
		".....",
		"GGGGG",
	})
	require.NoError(t, err)
	return &data.Level{Map: m, Spawns: spawns}
}
