package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
)

// RegionQuery is the broad-phase lookup used by gameplay components.
type RegionQuery interface {
	QueryRegion(region geom.Box) []physics.Collider
}

// ItemCollectorComponent picks up items in reach (KeyE) and uses the oldest
// held item (KeyQ).
type ItemCollectorComponent struct {
	ecs.BaseComponent
	query    RegionQuery
	capacity int
	reach    float64
	items    []*CollectableItemComponent
	collider *BoxColliderComponent
}

func NewItemCollectorComponent(owner *ecs.ComponentOwner, query RegionQuery, capacity int, reach float64) *ItemCollectorComponent {
	return &ItemCollectorComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		query:         query,
		capacity:      capacity,
		reach:         reach,
	}
}

func (c *ItemCollectorComponent) LoadDependentComponents() error {
	var err error
	c.collider, err = ecs.Require[*BoxColliderComponent](c.Owner(), "ItemCollectorComponent")
	return err
}

func (c *ItemCollectorComponent) Update(_ time.Duration, in input.Input) {
	if in.IsKeyReleased(input.KeyE) {
		c.CollectNearest()
	}
	if in.IsKeyReleased(input.KeyQ) {
		c.UseFirst()
	}
}

// CollectNearest collects the closest enabled, unheld item within reach.
// Equal distances go to the lower owner id.
func (c *ItemCollectorComponent) CollectNearest() bool {
	if len(c.items) >= c.capacity {
		return false
	}
	b := c.collider.Bounds()
	area := geom.Box{
		Position: b.Position.Sub(geom.Vec(c.reach, c.reach)),
		Size:     b.Size.Add(geom.Vec(2*c.reach, 2*c.reach)),
	}
	from := b.Center()

	var best *CollectableItemComponent
	bestDist := 0.0
	for _, col := range c.query.QueryRegion(area) {
		item, ok := ecs.GetComponent[*CollectableItemComponent](col.Owner())
		if !ok || !item.IsEnabled() || item.Collector() != nil || col.Owner().ShouldBeRemoved() {
			continue
		}
		d := from.Distance(col.Bounds().Center())
		if best == nil || d < bestDist || (d == bestDist && col.Owner().ID() < best.Owner().ID()) {
			best, bestDist = item, d
		}
	}
	if best == nil {
		return false
	}
	best.CollectBy(c.Owner())
	c.items = append(c.items, best)
	return true
}

func (c *ItemCollectorComponent) UseFirst() bool {
	if len(c.items) == 0 {
		return false
	}
	item := c.items[0]
	c.items = c.items[1:]
	item.Use()
	return true
}

// Drop returns the most recently collected item to the world.
func (c *ItemCollectorComponent) Drop() bool {
	if len(c.items) == 0 {
		return false
	}
	item := c.items[len(c.items)-1]
	c.items = c.items[:len(c.items)-1]
	item.Drop()
	return true
}

func (c *ItemCollectorComponent) Items() []*CollectableItemComponent { return c.items }
