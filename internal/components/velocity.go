package components

import (
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

// VelocityComponent stores the owner's velocity in units per second.
type VelocityComponent struct {
	ecs.BaseComponent
	velocity geom.Vector
}

func NewVelocityComponent(owner *ecs.ComponentOwner, velocity geom.Vector) *VelocityComponent {
	return &VelocityComponent{BaseComponent: ecs.NewBaseComponent(owner), velocity: velocity}
}

func (c *VelocityComponent) Velocity() geom.Vector     { return c.velocity }
func (c *VelocityComponent) SetVelocity(v geom.Vector) { c.velocity = v }
