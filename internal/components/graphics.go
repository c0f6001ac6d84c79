package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
)

// GraphicsComponent owns one drawable and keeps it on the owner.
type GraphicsComponent struct {
	ecs.BaseComponent
	pool   graphics.RendererPool
	id     graphics.ID
	size   geom.Vector
	offset geom.Vector
}

func NewGraphicsComponent(owner *ecs.ComponentOwner, pool graphics.RendererPool, size geom.Vector, c graphics.Color, layer graphics.Layer) *GraphicsComponent {
	return &GraphicsComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		pool:          pool,
		id:            pool.Acquire(size, owner.Position(), c, layer),
		size:          size,
	}
}

// NewTexturedGraphicsComponent fails with graphics.ErrTextureNotAvailable
// when path cannot be loaded.
func NewTexturedGraphicsComponent(owner *ecs.ComponentOwner, pool graphics.RendererPool, size geom.Vector, path graphics.TexturePath, layer graphics.Layer) (*GraphicsComponent, error) {
	id, err := pool.AcquireTexture(size, owner.Position(), path, layer)
	if err != nil {
		return nil, err
	}
	return &GraphicsComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		pool:          pool,
		id:            id,
		size:          size,
	}, nil
}

func (c *GraphicsComponent) LateUpdate(time.Duration, input.Input) {
	c.pool.SetPosition(c.id, c.Owner().Position().Add(c.offset))
}

func (c *GraphicsComponent) Enable() {
	c.BaseComponent.Enable()
	c.pool.SetVisible(c.id, true)
}

func (c *GraphicsComponent) Disable() {
	c.BaseComponent.Disable()
	c.pool.SetVisible(c.id, false)
}

func (c *GraphicsComponent) Destroy() {
	c.pool.Release(c.id)
	c.id = graphics.InvalidID
}

func (c *GraphicsComponent) ID() graphics.ID              { return c.id }
func (c *GraphicsComponent) Size() geom.Vector            { return c.size }
func (c *GraphicsComponent) SetColor(col graphics.Color)  { c.pool.SetColor(c.id, col) }
func (c *GraphicsComponent) SetVisible(visible bool)      { c.pool.SetVisible(c.id, visible) }
func (c *GraphicsComponent) SetOffset(offset geom.Vector) { c.offset = offset }

func (c *GraphicsComponent) SetSize(size geom.Vector) {
	c.size = size
	c.pool.SetSize(c.id, size)
}
