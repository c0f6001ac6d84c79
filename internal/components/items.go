package components

import (
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
)

// ItemEffect is applied to the collector when an item is used.
type ItemEffect interface {
	Affect(collector *ecs.ComponentOwner)
}

// HealEffect restores health points.
type HealEffect struct {
	Points int
}

func (e HealEffect) Affect(collector *ecs.ComponentOwner) {
	if health, ok := ecs.GetComponent[*HealthComponent](collector); ok {
		health.GainHealthPoints(e.Points)
	}
}

// CollectableItemComponent makes its owner an item. A collected item is
// disabled (hidden, out of the spatial index) until dropped or used.
type CollectableItemComponent struct {
	ecs.BaseComponent
	name      string
	effect    ItemEffect
	collector *ecs.ComponentOwner
	events    *event.Bus
}

func NewCollectableItemComponent(owner *ecs.ComponentOwner, name string, effect ItemEffect, events *event.Bus) *CollectableItemComponent {
	return &CollectableItemComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		name:          name,
		effect:        effect,
		events:        events,
	}
}

func (c *CollectableItemComponent) CollectBy(collector *ecs.ComponentOwner) {
	c.collector = collector
	c.Owner().Disable()
	event.Emit(c.events, event.ItemCollected{Item: c.Owner(), Collector: collector, Name: c.name})
}

// Drop puts the item back into the world at the collector's position.
func (c *CollectableItemComponent) Drop() {
	if c.collector == nil {
		return
	}
	c.Owner().Transform().SetPosition(c.collector.Position())
	c.collector = nil
	c.Owner().Enable()
}

// Use applies the effect to the collector and flags the item for removal.
// Items nobody holds cannot be used.
func (c *CollectableItemComponent) Use() {
	if c.collector == nil {
		return
	}
	if c.effect != nil {
		c.effect.Affect(c.collector)
	}
	event.Emit(c.events, event.ItemUsed{Item: c.Owner(), Collector: c.collector, Name: c.name})
	c.Owner().Remove()
	c.collector = nil
}

func (c *CollectableItemComponent) Name() string                   { return c.name }
func (c *CollectableItemComponent) Collector() *ecs.ComponentOwner { return c.collector }
