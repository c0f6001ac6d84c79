package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
	"github.com/chimarrao/platformer/internal/timer"
)

// AttackStrategy performs one attack in the given facing direction.
type AttackStrategy interface {
	Attack(attacker *ecs.ComponentOwner, direction animations.AnimationDirection)
}

// AttackComponent rate-limits an AttackStrategy. The first attack is
// always allowed; later ones wait for the cooldown.
type AttackComponent struct {
	ecs.BaseComponent
	strategy  AttackStrategy
	cooldown  time.Duration
	timer     *timer.Timer
	attacked  bool
	key       input.Key
	keyBound  bool
	animation *AnimationComponent
}

func NewAttackComponent(owner *ecs.ComponentOwner, strategy AttackStrategy, cooldown time.Duration, clock timer.Clock) *AttackComponent {
	return &AttackComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		strategy:      strategy,
		cooldown:      cooldown,
		timer:         timer.New(clock),
	}
}

// BindKey makes a held key trigger attacks.
func (c *AttackComponent) BindKey(k input.Key) {
	c.key = k
	c.keyBound = true
}

// LoadDependentComponents picks up an optional AnimationComponent, which
// must then support Attack.
func (c *AttackComponent) LoadDependentComponents() error {
	var ok bool
	if c.animation, ok = ecs.GetComponent[*AnimationComponent](c.Owner()); ok {
		return c.animation.Require(animations.Attack)
	}
	return nil
}

func (c *AttackComponent) Update(_ time.Duration, in input.Input) {
	if c.keyBound && in.IsKeyPressed(c.key) {
		c.Attack()
	}
}

// Attack reports whether the attack happened.
func (c *AttackComponent) Attack() bool {
	if c.attacked && c.timer.Elapsed() < c.cooldown {
		return false
	}
	c.attacked = true
	c.timer.Restart()

	direction := animations.Right
	if c.animation != nil {
		c.animation.SetAnimation(animations.Attack)
		direction = c.animation.AnimationDirection()
	}
	c.strategy.Attack(c.Owner(), direction)
	return true
}

// Hit is the outcome of one damage roll.
type Hit struct {
	Damage   int
	Critical bool
}

// DamageCalculator decides how much an attacker hurts a target.
type DamageCalculator interface {
	Damage(attacker, target *ecs.ComponentOwner) Hit
}

// FixedDamage always deals the same damage and never crits.
type FixedDamage int

func (d FixedDamage) Damage(_, _ *ecs.ComponentOwner) Hit { return Hit{Damage: int(d)} }

// MeleeAttack hits every target-tagged owner with health inside a box of
// the given reach in front of the attacker.
type MeleeAttack struct {
	query   RegionQuery
	damage  DamageCalculator
	reach   float64
	targets []physics.Tag
	events  *event.Bus
}

func NewMeleeAttack(query RegionQuery, damage DamageCalculator, reach float64, events *event.Bus, targets ...physics.Tag) *MeleeAttack {
	return &MeleeAttack{query: query, damage: damage, reach: reach, targets: targets, events: events}
}

func (m *MeleeAttack) Attack(attacker *ecs.ComponentOwner, direction animations.AnimationDirection) {
	b := geom.Box{Position: attacker.Position()}
	if col, ok := ecs.GetComponent[*BoxColliderComponent](attacker); ok {
		b = col.Bounds()
	}
	area := geom.Box{Position: geom.Vec(b.Right(), b.Top()), Size: geom.Vec(m.reach, max(b.Size.Y, 1))}
	if direction == animations.Left {
		area.Position.X = b.Left() - m.reach
	}

	hit := make(map[*ecs.ComponentOwner]bool)
	for _, col := range m.query.QueryRegion(area) {
		target := col.Owner()
		if target == attacker || hit[target] || !m.isTarget(col.Tag()) {
			continue
		}
		health, ok := ecs.GetComponent[*HealthComponent](target)
		if !ok || health.IsDead() {
			continue
		}
		hit[target] = true
		h := m.damage.Damage(attacker, target)
		health.LoseHealthPoints(h.Damage)
		event.Emit(m.events, event.AttackHit{Attacker: attacker, Target: target, Damage: h.Damage, Critical: h.Critical})
	}
}

func (m *MeleeAttack) isTarget(tag physics.Tag) bool {
	for _, t := range m.targets {
		if t == tag {
			return true
		}
	}
	return false
}
