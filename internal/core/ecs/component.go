package ecs

import (
	"time"

	"github.com/chimarrao/platformer/internal/input"
)

// Component is one behaviour or data facet of an owner.
//
// LoadDependentComponents runs once after every component of the owner has
// been attached; it is the only place siblings may be looked up. Update holds
// decision logic, LateUpdate the effects of decisions (movement integration,
// render sync). The owner skips disabled components in both passes.
type Component interface {
	Owner() *ComponentOwner
	LoadDependentComponents() error
	Update(dt time.Duration, in input.Input)
	LateUpdate(dt time.Duration, in input.Input)
	Enable()
	Disable()
	IsEnabled() bool
}

// Destroyer is implemented by components holding external resources
// (drawable handles). Destroy runs when the owner is swept.
type Destroyer interface {
	Destroy()
}

// BaseComponent carries the owner back-reference and the enabled flag.
// Concrete components embed it and override the hooks they need.
type BaseComponent struct {
	owner   *ComponentOwner
	enabled bool
}

func NewBaseComponent(owner *ComponentOwner) BaseComponent {
	return BaseComponent{owner: owner, enabled: true}
}

func (c *BaseComponent) Owner() *ComponentOwner                { return c.owner }
func (c *BaseComponent) LoadDependentComponents() error        { return nil }
func (c *BaseComponent) Update(time.Duration, input.Input)     {}
func (c *BaseComponent) LateUpdate(time.Duration, input.Input) {}
func (c *BaseComponent) Enable()                               { c.enabled = true }
func (c *BaseComponent) Disable()                              { c.enabled = false }
func (c *BaseComponent) IsEnabled() bool                       { return c.enabled }

// OwnerName is a convenience for error messages and logs.
func (c *BaseComponent) OwnerName() string {
	if c.owner == nil {
		return ""
	}
	return c.owner.Name()
}
