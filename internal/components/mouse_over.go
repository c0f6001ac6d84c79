package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/input"
)

// MouseOverComponent fires over when the mouse enters the owner's collider
// and out when it leaves.
type MouseOverComponent struct {
	ecs.BaseComponent
	over     func()
	out      func()
	inside   bool
	collider *BoxColliderComponent
}

func NewMouseOverComponent(owner *ecs.ComponentOwner, over, out func()) *MouseOverComponent {
	return &MouseOverComponent{BaseComponent: ecs.NewBaseComponent(owner), over: over, out: out}
}

func (c *MouseOverComponent) LoadDependentComponents() error {
	var err error
	c.collider, err = ecs.Require[*BoxColliderComponent](c.Owner(), "MouseOverComponent")
	return err
}

func (c *MouseOverComponent) Update(_ time.Duration, in input.Input) {
	now := c.collider.Bounds().ContainsPoint(in.MousePosition())
	switch {
	case now && !c.inside && c.over != nil:
		c.over()
	case !now && c.inside && c.out != nil:
		c.out()
	}
	c.inside = now
}

// Disable forgets the hover state so re-enabling fires over again.
func (c *MouseOverComponent) Disable() {
	c.BaseComponent.Disable()
	c.inside = false
}

func (c *MouseOverComponent) IsMouseOver() bool { return c.inside }
