package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
	"github.com/chimarrao/platformer/internal/timer"
)

type countingStrategy struct {
	directions []animations.AnimationDirection
}

func (s *countingStrategy) Attack(_ *ecs.ComponentOwner, d animations.AnimationDirection) {
	s.directions = append(s.directions, d)
}

func TestAttackCooldown(t *testing.T) {
	clock := timer.NewManual()
	o := ecs.NewComponentOwner(ecs.NewEntityPool(), geom.Vector{}, "player")
	strategy := &countingStrategy{}
	attack := ecs.Add(o, NewAttackComponent(o, strategy, time.Second, clock.Now))
	attack.BindKey(input.KeyF)
	require.NoError(t, o.LoadDependentComponents())

	assert.True(t, attack.Attack(), "first attack is free")
	assert.False(t, attack.Attack())

	clock.Advance(time.Second)
	in := input.NewStatus()
	in.Press(input.KeyF)
	o.Update(frameTime, in)
	assert.Equal(t, []animations.AnimationDirection{animations.Right, animations.Right}, strategy.directions)
}

func TestMeleeAttack(t *testing.T) {
	w := newTestWorld()
	attacker, anim := w.character("player", geom.Vec(0, 0), physics.TagPlayer, animations.Idle, animations.Attack)
	front := w.enemy("bandit", geom.Vec(15, 0), physics.TagEnemy)
	friend := w.enemy("druid", geom.Vec(12, 0), physics.TagNpc)
	behind := w.enemy("behind", geom.Vec(-15, 0), physics.TagEnemy)
	w.register(attacker, front, friend, behind)

	var hits []event.AttackHit
	event.Subscribe(w.events, func(e event.AttackHit) { hits = append(hits, e) })

	melee := NewMeleeAttack(w.factory.QuadTree(), FixedDamage(30), 20, w.events, physics.TagEnemy)
	attack := ecs.Add(attacker, NewAttackComponent(attacker, melee, time.Second, timer.NewManual().Now))
	require.NoError(t, attacker.LoadDependentComponents())

	require.True(t, attack.Attack())
	assert.Equal(t, animations.Attack, anim.current)
	assert.Equal(t, 70, healthOf(front).CurrentHealth())
	assert.Equal(t, 100, healthOf(friend).CurrentHealth())
	assert.Equal(t, 100, healthOf(behind).CurrentHealth())

	w.dispatch()
	require.Len(t, hits, 1)
	assert.Equal(t, 30, hits[0].Damage)
	assert.Same(t, front, hits[0].Target)

	anim.direction = animations.Left
	melee.Attack(attacker, animations.Left)
	assert.Equal(t, 70, healthOf(behind).CurrentHealth())
}

type critDamage struct{}

func (critDamage) Damage(_, _ *ecs.ComponentOwner) Hit { return Hit{Damage: 45, Critical: true} }

func TestMeleeAttackReportsCritical(t *testing.T) {
	w := newTestWorld()
	attacker, _ := w.character("player", geom.Vec(0, 0), physics.TagPlayer, animations.Idle, animations.Attack)
	target := w.enemy("bandit", geom.Vec(15, 0), physics.TagEnemy)
	w.register(attacker, target)

	var hits []event.AttackHit
	event.Subscribe(w.events, func(e event.AttackHit) { hits = append(hits, e) })

	NewMeleeAttack(w.factory.QuadTree(), critDamage{}, 20, w.events, physics.TagEnemy).Attack(attacker, animations.Right)
	w.dispatch()

	require.Len(t, hits, 1)
	assert.Equal(t, 45, hits[0].Damage)
	assert.True(t, hits[0].Critical)
	assert.Equal(t, 55, healthOf(target).CurrentHealth())
}

func (w *testWorld) enemy(name string, pos geom.Vector, tag physics.Tag) *ecs.ComponentOwner {
	o, _ := w.character(name, pos, tag, animations.Idle)
	ecs.Add(o, NewHealthComponent(o, 100, w.events))
	return o
}

func healthOf(o *ecs.ComponentOwner) *HealthComponent {
	h, _ := ecs.GetComponent[*HealthComponent](o)
	return h
}

func TestArtificialIntelligenceAttackLineOfSight(t *testing.T) {
	setup := func(reach float64) (*testWorld, *ecs.ComponentOwner, *countingStrategy) {
		w := newTestWorld()
		player := w.enemy("player", geom.Vec(0, 90), physics.TagPlayer)
		bandit, _ := w.character("bandit", geom.Vec(50, 90), physics.TagEnemy, animations.Idle, animations.Attack)
		strategy := &countingStrategy{}
		ecs.Add(bandit, NewAttackComponent(bandit, strategy, 0, timer.NewManual().Now))
		ecs.Add(bandit, NewArtificialIntelligenceAttackComponent(bandit, player, w.factory.CreateRayCast(), reach))
		require.NoError(t, bandit.LoadDependentComponents())
		w.register(player, bandit)
		return w, bandit, strategy
	}

	t.Run("visible target in reach", func(t *testing.T) {
		_, bandit, strategy := setup(100)
		bandit.Update(frameTime, input.NewStatus())
		assert.Equal(t, []animations.AnimationDirection{animations.Left}, strategy.directions)
	})

	t.Run("wall blocks sight", func(t *testing.T) {
		w, bandit, strategy := setup(100)
		w.register(w.obstacle(25, 80, 5, 30))
		bandit.Update(frameTime, input.NewStatus())
		assert.Empty(t, strategy.directions)
	})

	t.Run("out of reach", func(t *testing.T) {
		_, bandit, strategy := setup(40)
		bandit.Update(frameTime, input.NewStatus())
		assert.Empty(t, strategy.directions)
	})

	t.Run("dead attacker stays still", func(t *testing.T) {
		w := newTestWorld()
		player := w.enemy("player", geom.Vec(0, 90), physics.TagPlayer)
		bandit, _ := w.character("bandit", geom.Vec(50, 90), physics.TagEnemy, animations.Idle, animations.Attack)
		ecs.Add(bandit, NewHealthComponent(bandit, 100, w.events))
		strategy := &countingStrategy{}
		ecs.Add(bandit, NewAttackComponent(bandit, strategy, 0, timer.NewManual().Now))
		ecs.Add(bandit, NewArtificialIntelligenceAttackComponent(bandit, player, w.factory.CreateRayCast(), 100))
		require.NoError(t, bandit.LoadDependentComponents())
		w.register(player, bandit)

		healthOf(bandit).LoseHealthPoints(100)
		bandit.Update(frameTime, input.NewStatus())
		assert.Empty(t, strategy.directions)
	})

	t.Run("requires attack component", func(t *testing.T) {
		w := newTestWorld()
		o, _ := w.character("bandit", geom.Vector{}, physics.TagEnemy, animations.Idle)
		ecs.Add(o, NewArtificialIntelligenceAttackComponent(o, nil, w.factory.CreateRayCast(), 10))
		assert.ErrorIs(t, o.LoadDependentComponents(), ecs.ErrDependentComponentNotFound)
	})
}
