package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
)

// RayCaster finds the first collider along a segment.
type RayCaster interface {
	Cast(origin, direction geom.Vector, maxDistance float64, ignore ...*ecs.ComponentOwner) (physics.RayCastResult, bool)
}

// ArtificialIntelligenceAttackComponent attacks a target that is in range
// and visible: the first thing a ray toward it hits must be the target.
type ArtificialIntelligenceAttackComponent struct {
	ecs.BaseComponent
	target    *ecs.ComponentOwner
	rays      RayCaster
	reach     float64
	attack    *AttackComponent
	animation *AnimationComponent
	health    *HealthComponent
}

func NewArtificialIntelligenceAttackComponent(owner, target *ecs.ComponentOwner, rays RayCaster, reach float64) *ArtificialIntelligenceAttackComponent {
	return &ArtificialIntelligenceAttackComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		target:        target,
		rays:          rays,
		reach:         reach,
	}
}

func (c *ArtificialIntelligenceAttackComponent) LoadDependentComponents() error {
	var err error
	if c.attack, err = ecs.Require[*AttackComponent](c.Owner(), "ArtificialIntelligenceAttackComponent"); err != nil {
		return err
	}
	if c.animation, err = ecs.Require[*AnimationComponent](c.Owner(), "ArtificialIntelligenceAttackComponent"); err != nil {
		return err
	}
	c.health, _ = ecs.GetComponent[*HealthComponent](c.Owner())
	return c.animation.Require(animations.Attack)
}

func (c *ArtificialIntelligenceAttackComponent) Update(time.Duration, input.Input) {
	if c.health != nil && c.health.IsDead() {
		return
	}
	if !c.CanSeeTarget() {
		return
	}
	if center(c.target).X < center(c.Owner()).X {
		c.animation.SetAnimationDirection(animations.Left)
	} else {
		c.animation.SetAnimationDirection(animations.Right)
	}
	c.attack.Attack()
}

// CanSeeTarget is true when the target is alive, in reach and in line of
// sight.
func (c *ArtificialIntelligenceAttackComponent) CanSeeTarget() bool {
	t := c.target
	if t == nil || t.IsDestroyed() || t.ShouldBeRemoved() {
		return false
	}
	if health, ok := ecs.GetComponent[*HealthComponent](t); ok && health.IsDead() {
		return false
	}
	from, to := center(c.Owner()), center(t)
	if from.Distance(to) > c.reach {
		return false
	}
	hit, ok := c.rays.Cast(from, to.Sub(from), c.reach, c.Owner())
	return ok && hit.Owner == t
}

func (c *ArtificialIntelligenceAttackComponent) SetTarget(target *ecs.ComponentOwner) {
	c.target = target
}
