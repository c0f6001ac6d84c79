package components

import (
	"math"
	"time"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/input"
)

// FollowerComponent walks the owner toward a target until it is within
// stopDistance horizontally. A follower blocked by a wall hops.
type FollowerComponent struct {
	ecs.BaseComponent
	target       *ecs.ComponentOwner
	stopDistance float64
	cfg          MovementConfig
	animation    *AnimationComponent
	velocity     *VelocityComponent
	collider     *BoxColliderComponent
}

func NewFollowerComponent(owner, target *ecs.ComponentOwner, stopDistance float64, cfg MovementConfig) *FollowerComponent {
	return &FollowerComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		target:        target,
		stopDistance:  stopDistance,
		cfg:           cfg,
	}
}

func (c *FollowerComponent) LoadDependentComponents() error {
	var err error
	if c.animation, err = ecs.Require[*AnimationComponent](c.Owner(), "FollowerComponent"); err != nil {
		return err
	}
	if c.velocity, err = ecs.Require[*VelocityComponent](c.Owner(), "FollowerComponent"); err != nil {
		return err
	}
	c.collider, _ = ecs.GetComponent[*BoxColliderComponent](c.Owner())
	return c.animation.Require(walkTypes...)
}

func (c *FollowerComponent) Update(dt time.Duration, _ input.Input) {
	v := c.velocity.Velocity()
	v.X = 0

	if c.target != nil && !c.target.IsDestroyed() {
		dx := center(c.target).X - center(c.Owner()).X
		if math.Abs(dx) > c.stopDistance {
			if dx < 0 {
				v.X = -c.cfg.Speed
				c.animation.SetAnimationDirection(animations.Left)
			} else {
				v.X = c.cfg.Speed
				c.animation.SetAnimationDirection(animations.Right)
			}
		}
	}

	if c.blockedAhead(v.X) && grounded(c.collider) {
		v.Y = -c.cfg.JumpSpeed
	} else {
		v = fall(v, c.cfg, dt)
	}

	walkAnimation(c.animation, v.X)
	c.velocity.SetVelocity(v)
}

func (c *FollowerComponent) blockedAhead(vx float64) bool {
	if c.collider == nil || vx == 0 {
		return false
	}
	if vx < 0 {
		return !c.collider.CanMoveLeft()
	}
	return !c.collider.CanMoveRight()
}

func (c *FollowerComponent) LateUpdate(dt time.Duration, _ input.Input) {
	integrate(c.Owner(), c.velocity, c.collider, dt)
}

func (c *FollowerComponent) Target() *ecs.ComponentOwner          { return c.target }
func (c *FollowerComponent) SetTarget(target *ecs.ComponentOwner) { c.target = target }
