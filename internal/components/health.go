package components

import (
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
)

// HealthComponent tracks hit points in [0, maximum].
type HealthComponent struct {
	ecs.BaseComponent
	current   int
	maximum   int
	events    *event.Bus
	announced bool
}

func NewHealthComponent(owner *ecs.ComponentOwner, points int, events *event.Bus) *HealthComponent {
	points = max(points, 0)
	return &HealthComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		current:       points,
		maximum:       points,
		events:        events,
	}
}

func (c *HealthComponent) GainHealthPoints(points int) {
	if points <= 0 {
		return
	}
	c.current = min(c.current+points, c.maximum)
}

// LoseHealthPoints emits OwnerDied the first time health reaches zero.
func (c *HealthComponent) LoseHealthPoints(points int) {
	if points <= 0 {
		return
	}
	c.current = max(c.current-points, 0)
	if c.current == 0 && !c.announced {
		c.announced = true
		event.Emit(c.events, event.OwnerDied{Owner: c.Owner()})
	}
}

func (c *HealthComponent) CurrentHealth() int { return c.current }
func (c *HealthComponent) MaximumHealth() int { return c.maximum }
func (c *HealthComponent) IsDead() bool       { return c.current == 0 }
