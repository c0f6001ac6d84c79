package physics

import "github.com/chimarrao/platformer/internal/geom"

// Factory hands out the collision system and ray cast sharing one tree.
type Factory struct {
	tree *Quadtree
}

func NewFactory(bounds geom.Box, capacity, maxDepth int) *Factory {
	return &Factory{tree: NewQuadtree(bounds, capacity, maxDepth)}
}

func (f *Factory) QuadTree() *Quadtree                     { return f.tree }
func (f *Factory) CreateRayCast() *RayCast                 { return NewRayCast(f.tree) }
func (f *Factory) CreateCollisionSystem() *CollisionSystem { return NewCollisionSystem(f.tree) }
