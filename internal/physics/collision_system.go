package physics

import (
	"slices"
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

// CollisionSystem owns the colliders of live owners and resolves mover
// displacement against them once per frame.
type CollisionSystem struct {
	tree      *Quadtree
	colliders []Collider
}

func NewCollisionSystem(tree *Quadtree) *CollisionSystem {
	return &CollisionSystem{tree: tree}
}

// Add registers every collider attached to owners. Owners without one
// are ignored.
func (s *CollisionSystem) Add(owners []*ecs.ComponentOwner) {
	for _, owner := range owners {
		for i := 0; i < owner.ComponentCount(); i++ {
			if c, ok := owner.ComponentAt(i).(Collider); ok {
				s.colliders = append(s.colliders, c)
			}
		}
	}
}

// Len returns the number of registered colliders, enabled or not.
func (s *CollisionSystem) Len() int { return len(s.colliders) }

// Refresh rebuilds the tree from current transforms. Disabled colliders
// are left out of the index.
func (s *CollisionSystem) Refresh() {
	s.tree.Clear()
	for _, c := range s.colliders {
		if c.IsEnabled() && !c.Owner().IsDestroyed() {
			s.tree.Insert(c)
		}
	}
}

// Update refreshes the index, then resolves each enabled mover in
// registration order. A resolved mover is re-indexed at its destination
// before the next one resolves, so two movers never claim the same space.
// Movers proposing no displacement are static and never pushed.
func (s *CollisionSystem) Update(dt time.Duration) {
	s.Refresh()
	for _, c := range s.colliders {
		m, ok := c.(Mover)
		if !ok || !m.IsEnabled() || m.Owner().IsDestroyed() {
			continue
		}
		box, indexed := s.tree.boxOf(m)
		if !indexed {
			box = m.Bounds()
		}
		var res Resolution
		if d := m.ProposedDisplacement(dt); d != (geom.Vector{}) {
			res = resolve(s.tree, m, box, d)
		}
		m.SetResolution(res)
		if indexed && (res.DX != 0 || res.DY != 0) {
			s.tree.move(m, box.Translate(geom.Vec(res.DX, res.DY)))
		}
	}
}

// ProcessRemovals drops colliders of owners flagged for removal or
// already destroyed.
func (s *CollisionSystem) ProcessRemovals() {
	s.colliders = slices.DeleteFunc(s.colliders, func(c Collider) bool {
		owner := c.Owner()
		if owner.ShouldBeRemoved() || owner.IsDestroyed() {
			s.tree.Remove(c)
			return true
		}
		return false
	})
}
