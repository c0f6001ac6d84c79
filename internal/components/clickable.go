package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/input"
)

// KeyAction binds a mouse button or key release to an action.
type KeyAction struct {
	Key    input.Key
	Action func()
}

// ClickableComponent runs an action when its key is released while the
// mouse is inside the owner's collider.
type ClickableComponent struct {
	ecs.BaseComponent
	actions  []KeyAction
	collider *BoxColliderComponent
}

func NewClickableComponent(owner *ecs.ComponentOwner, actions ...KeyAction) *ClickableComponent {
	return &ClickableComponent{BaseComponent: ecs.NewBaseComponent(owner), actions: actions}
}

func (c *ClickableComponent) LoadDependentComponents() error {
	var err error
	c.collider, err = ecs.Require[*BoxColliderComponent](c.Owner(), "ClickableComponent")
	return err
}

func (c *ClickableComponent) Update(_ time.Duration, in input.Input) {
	if !c.collider.Bounds().ContainsPoint(in.MousePosition()) {
		return
	}
	for _, a := range c.actions {
		if in.IsKeyReleased(a.Key) && a.Action != nil {
			a.Action()
		}
	}
}

func (c *ClickableComponent) SetKeyActions(actions ...KeyAction) { c.actions = actions }
