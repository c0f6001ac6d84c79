package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/physics"
)

// BoxColliderComponent puts the owner into the collision system. With a
// VelocityComponent sibling it proposes movement every frame; without one
// its displacement is zero and it acts as a static obstacle.
type BoxColliderComponent struct {
	ecs.BaseComponent
	size       geom.Vector
	offset     geom.Vector
	tag        physics.Tag
	trigger    bool
	velocity   *VelocityComponent
	resolution physics.Resolution
	pending    bool
}

var _ physics.Mover = (*BoxColliderComponent)(nil)

func NewBoxColliderComponent(owner *ecs.ComponentOwner, size, offset geom.Vector, tag physics.Tag, trigger bool) *BoxColliderComponent {
	return &BoxColliderComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		size:          size,
		offset:        offset,
		tag:           tag,
		trigger:       trigger,
	}
}

func (c *BoxColliderComponent) LoadDependentComponents() error {
	c.velocity, _ = ecs.GetComponent[*VelocityComponent](c.Owner())
	return nil
}

func (c *BoxColliderComponent) Bounds() geom.Box {
	return geom.Box{Position: c.Owner().Position().Add(c.offset), Size: c.size}
}

func (c *BoxColliderComponent) Size() geom.Vector     { return c.size }
func (c *BoxColliderComponent) Tag() physics.Tag      { return c.tag }
func (c *BoxColliderComponent) IsTrigger() bool       { return c.trigger }
func (c *BoxColliderComponent) SetSize(s geom.Vector) { c.size = s }

func (c *BoxColliderComponent) ProposedDisplacement(dt time.Duration) geom.Vector {
	if c.velocity == nil {
		return geom.Vector{}
	}
	return c.velocity.Velocity().Scale(dt.Seconds())
}

func (c *BoxColliderComponent) SetResolution(r physics.Resolution) {
	c.resolution = r
	c.pending = true
}

// Resolution is the most recent collision outcome.
func (c *BoxColliderComponent) Resolution() physics.Resolution { return c.resolution }

// takeResolution hands the frame's resolution to movement integration once.
func (c *BoxColliderComponent) takeResolution() (physics.Resolution, bool) {
	if !c.pending {
		return physics.Resolution{}, false
	}
	c.pending = false
	return c.resolution, true
}

func (c *BoxColliderComponent) CanMoveLeft() bool  { return !c.resolution.BlockedLeft }
func (c *BoxColliderComponent) CanMoveRight() bool { return !c.resolution.BlockedRight }
func (c *BoxColliderComponent) CanMoveUp() bool    { return !c.resolution.BlockedUp }
func (c *BoxColliderComponent) CanMoveDown() bool  { return !c.resolution.BlockedDown }

// center returns the middle of the owner's collider, or its position when it
// has none.
func center(owner *ecs.ComponentOwner) geom.Vector {
	if c, ok := ecs.GetComponent[*BoxColliderComponent](owner); ok {
		return c.Bounds().Center()
	}
	return owner.Position()
}
