package physics

import (
	"slices"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

// RayCastResult describes the nearest hit of a ray.
type RayCastResult struct {
	Owner    *ecs.ComponentOwner
	Collider Collider
	Distance float64
	Point    geom.Vector
}

// RayCast answers segment queries against a quadtree.
type RayCast struct {
	tree *Quadtree
}

func NewRayCast(tree *Quadtree) *RayCast {
	return &RayCast{tree: tree}
}

// Cast returns the collider first hit by the segment from origin along
// direction, up to maxDistance. Owners in ignore are skipped; so are
// disabled and trigger colliders. Equal distances resolve to the lower
// owner id. A zero direction or a non-positive distance never hits.
func (r *RayCast) Cast(origin, direction geom.Vector, maxDistance float64, ignore ...*ecs.ComponentOwner) (RayCastResult, bool) {
	if direction.IsZero() || maxDistance <= 0 {
		return RayCastResult{}, false
	}
	dir := direction.Normalized()

	var best RayCastResult
	found := false
	r.tree.visitSegment(origin, dir, maxDistance, func(e entry) {
		c := e.collider
		if !c.IsEnabled() || c.IsTrigger() || slices.Contains(ignore, c.Owner()) {
			return
		}
		t, ok := e.box.SegmentIntersection(origin, dir, maxDistance)
		if !ok {
			return
		}
		if found && (t > best.Distance || (t == best.Distance && c.Owner().ID() >= best.Owner.ID())) {
			return
		}
		best = RayCastResult{Owner: c.Owner(), Collider: c, Distance: t, Point: origin.Add(dir.Scale(t))}
		found = true
	})
	return best, found
}
