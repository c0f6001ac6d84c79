package physics

import (
	"slices"

	"github.com/chimarrao/platformer/internal/geom"
)

const (
	DefaultCapacity = 8
	DefaultMaxDepth = 6
)

type entry struct {
	collider Collider
	box      geom.Box
}

type node struct {
	region   geom.Box
	depth    int
	entries  []entry
	children *[4]*node
}

// Quadtree is the broad-phase index. An entry lives in the smallest node
// whose region fully contains its box; straddlers stay in the parent and
// boxes outside the root region stay in the root.
// Not safe for concurrent use.
type Quadtree struct {
	root     *node
	capacity int
	maxDepth int
	location map[Collider]*node
}

func NewQuadtree(bounds geom.Box, capacity, maxDepth int) *Quadtree {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if maxDepth < 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Quadtree{
		root:     &node{region: bounds},
		capacity: capacity,
		maxDepth: maxDepth,
		location: make(map[Collider]*node),
	}
}

func (q *Quadtree) Bounds() geom.Box { return q.root.region }
func (q *Quadtree) Len() int         { return len(q.location) }

// Insert adds c with its current bounds. Inserting a collider twice
// replaces the earlier entry.
func (q *Quadtree) Insert(c Collider) {
	if _, ok := q.location[c]; ok {
		q.Remove(c)
	}
	q.insert(q.root, entry{collider: c, box: c.Bounds()})
}

func (q *Quadtree) insert(n *node, e entry) {
	for {
		if n.children == nil {
			n.entries = append(n.entries, e)
			q.location[e.collider] = n
			if len(n.entries) > q.capacity && n.depth < q.maxDepth {
				q.split(n)
			}
			return
		}
		child := n.childContaining(e.box)
		if child == nil {
			n.entries = append(n.entries, e)
			q.location[e.collider] = n
			return
		}
		n = child
	}
}

func (q *Quadtree) split(n *node) {
	half := n.region.Size.Scale(0.5)
	x, y := n.region.Left(), n.region.Top()
	n.children = &[4]*node{
		{region: geom.Box{Position: geom.Vec(x, y), Size: half}, depth: n.depth + 1},
		{region: geom.Box{Position: geom.Vec(x+half.X, y), Size: half}, depth: n.depth + 1},
		{region: geom.Box{Position: geom.Vec(x, y+half.Y), Size: half}, depth: n.depth + 1},
		{region: geom.Box{Position: geom.Vec(x+half.X, y+half.Y), Size: half}, depth: n.depth + 1},
	}
	kept := n.entries[:0]
	moved := make([]entry, 0, len(n.entries))
	for _, e := range n.entries {
		if n.childContaining(e.box) == nil {
			kept = append(kept, e)
		} else {
			moved = append(moved, e)
		}
	}
	n.entries = kept
	for _, e := range moved {
		q.insert(n, e)
	}
}

func (n *node) childContaining(b geom.Box) *node {
	if n.children == nil {
		return nil
	}
	for _, child := range n.children {
		if child.region.Contains(b) {
			return child
		}
	}
	return nil
}

// Remove deletes c. It reports false when c was not indexed.
func (q *Quadtree) Remove(c Collider) bool {
	n, ok := q.location[c]
	if !ok {
		return false
	}
	delete(q.location, c)
	n.entries = slices.DeleteFunc(n.entries, func(e entry) bool { return e.collider == c })
	return true
}

// Clear drops every entry and collapses the tree to its root.
func (q *Quadtree) Clear() {
	q.root = &node{region: q.root.region}
	clear(q.location)
}

// Depth returns the deepest level holding a node, root being 0.
func (q *Quadtree) Depth() int {
	return q.root.maxDepth()
}

func (n *node) maxDepth() int {
	if n.children == nil {
		return n.depth
	}
	deepest := n.depth
	for _, child := range n.children {
		deepest = max(deepest, child.maxDepth())
	}
	return deepest
}

// QueryRegion returns every collider whose indexed box overlaps region.
// Result order is unspecified.
func (q *Quadtree) QueryRegion(region geom.Box) []Collider {
	var out []Collider
	for _, e := range q.candidates(region) {
		out = append(out, e.collider)
	}
	return out
}

func (q *Quadtree) candidates(region geom.Box) []entry {
	var out []entry
	q.root.query(region, true, func(e entry) {
		if e.box.Intersects(region) {
			out = append(out, e)
		}
	})
	return out
}

// boxOf returns the box c was indexed with.
func (q *Quadtree) boxOf(c Collider) (geom.Box, bool) {
	n, ok := q.location[c]
	if !ok {
		return geom.Box{}, false
	}
	for _, e := range n.entries {
		if e.collider == c {
			return e.box, true
		}
	}
	return geom.Box{}, false
}

// move re-indexes c under box without reading its transform.
func (q *Quadtree) move(c Collider, box geom.Box) {
	q.Remove(c)
	q.insert(q.root, entry{collider: c, box: box})
}

func (n *node) query(region geom.Box, isRoot bool, visit func(entry)) {
	if !isRoot && !n.region.Intersects(region) {
		return
	}
	for _, e := range n.entries {
		visit(e)
	}
	if n.children != nil {
		for _, child := range n.children {
			child.query(region, false, visit)
		}
	}
}

// visitSegment walks entries of nodes crossed by origin + t*dir, t in [0, maxT].
func (q *Quadtree) visitSegment(origin, dir geom.Vector, maxT float64, visit func(entry)) {
	q.root.segment(origin, dir, maxT, true, visit)
}

func (n *node) segment(origin, dir geom.Vector, maxT float64, isRoot bool, visit func(entry)) {
	if !isRoot {
		if _, ok := n.region.SegmentIntersection(origin, dir, maxT); !ok {
			return
		}
	}
	for _, e := range n.entries {
		visit(e)
	}
	if n.children != nil {
		for _, child := range n.children {
			child.segment(origin, dir, maxT, false, visit)
		}
	}
}
