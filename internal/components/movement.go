package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

// MovementConfig tunes walking characters, in units per second.
type MovementConfig struct {
	Speed     float64
	JumpSpeed float64
	Gravity   float64
}

func DefaultMovementConfig() MovementConfig {
	return MovementConfig{Speed: 140, JumpSpeed: 290, Gravity: 400}
}

// grounded is true when the last resolution found ground below and
// nothing above.
func grounded(collider *BoxColliderComponent) bool {
	return collider != nil && !collider.CanMoveDown() && collider.CanMoveUp()
}

func fall(v geom.Vector, cfg MovementConfig, dt time.Duration) geom.Vector {
	v.Y += cfg.Gravity * dt.Seconds()
	return v
}

// walkTypes are the animations walkAnimation switches between.
var walkTypes = []animations.AnimationType{animations.Idle, animations.Walk}

// walkAnimation picks Idle or Walk from the horizontal velocity.
func walkAnimation(animation *AnimationComponent, vx float64) {
	if vx == 0 {
		animation.SetAnimation(animations.Idle)
	} else {
		animation.SetAnimation(animations.Walk)
	}
}

// integrate moves the owner by the frame's collision resolution, or by raw
// velocity when nothing resolved it, and stops velocity on blocked axes.
func integrate(owner *ecs.ComponentOwner, velocity *VelocityComponent, collider *BoxColliderComponent, dt time.Duration) {
	v := velocity.Velocity()
	d := v.Scale(dt.Seconds())

	if collider != nil {
		if r, ok := collider.takeResolution(); ok {
			d = geom.Vec(r.DX, r.DY)
			if (r.BlockedLeft && v.X < 0) || (r.BlockedRight && v.X > 0) {
				v.X = 0
			}
			if (r.BlockedUp && v.Y < 0) || (r.BlockedDown && v.Y > 0) {
				v.Y = 0
			}
		}
	}
	velocity.SetVelocity(v)
	owner.Transform().AddPosition(d.X, d.Y)
}
