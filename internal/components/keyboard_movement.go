package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/input"
)

// KeyboardMovementComponent walks and jumps the owner from arrow keys.
type KeyboardMovementComponent struct {
	ecs.BaseComponent
	cfg       MovementConfig
	animation *AnimationComponent
	velocity  *VelocityComponent
	collider  *BoxColliderComponent
}

func NewKeyboardMovementComponent(owner *ecs.ComponentOwner, cfg MovementConfig) *KeyboardMovementComponent {
	return &KeyboardMovementComponent{BaseComponent: ecs.NewBaseComponent(owner), cfg: cfg}
}

func (c *KeyboardMovementComponent) LoadDependentComponents() error {
	var err error
	if c.animation, err = ecs.Require[*AnimationComponent](c.Owner(), "KeyboardMovementComponent"); err != nil {
		return err
	}
	if c.velocity, err = ecs.Require[*VelocityComponent](c.Owner(), "KeyboardMovementComponent"); err != nil {
		return err
	}
	c.collider, _ = ecs.GetComponent[*BoxColliderComponent](c.Owner())
	return c.animation.Require(walkTypes...)
}

func (c *KeyboardMovementComponent) Update(dt time.Duration, in input.Input) {
	v := c.velocity.Velocity()

	switch {
	case in.IsKeyPressed(input.KeyLeft):
		v.X = -c.cfg.Speed
		c.animation.SetAnimationDirection(animations.Left)
	case in.IsKeyPressed(input.KeyRight):
		v.X = c.cfg.Speed
		c.animation.SetAnimationDirection(animations.Right)
	default:
		v.X = 0
	}

	if in.IsKeyPressed(input.KeyUp) && grounded(c.collider) {
		v.Y = -c.cfg.JumpSpeed
	} else {
		v = fall(v, c.cfg, dt)
	}

	walkAnimation(c.animation, v.X)
	c.velocity.SetVelocity(v)
}

func (c *KeyboardMovementComponent) LateUpdate(dt time.Duration, _ input.Input) {
	integrate(c.Owner(), c.velocity, c.collider, dt)
}

func (c *KeyboardMovementComponent) Config() MovementConfig       { return c.cfg }
func (c *KeyboardMovementComponent) SetConfig(cfg MovementConfig) { c.cfg = cfg }
