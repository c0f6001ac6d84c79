package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
)

// TextComponent draws a label at an offset from the owner.
type TextComponent struct {
	ecs.BaseComponent
	pool   graphics.RendererPool
	id     graphics.ID
	offset geom.Vector
	text   string
}

func NewTextComponent(owner *ecs.ComponentOwner, pool graphics.RendererPool, text string, offset geom.Vector, fontSize int, c graphics.Color) *TextComponent {
	return &TextComponent{
		BaseComponent: ecs.NewBaseComponent(owner),
		pool:          pool,
		id:            pool.AcquireText(owner.Position().Add(offset), text, fontSize, c),
		offset:        offset,
		text:          text,
	}
}

func (c *TextComponent) LateUpdate(time.Duration, input.Input) {
	c.pool.SetPosition(c.id, c.Owner().Position().Add(c.offset))
}

func (c *TextComponent) Enable() {
	c.BaseComponent.Enable()
	c.pool.SetVisible(c.id, true)
}

func (c *TextComponent) Disable() {
	c.BaseComponent.Disable()
	c.pool.SetVisible(c.id, false)
}

func (c *TextComponent) Destroy() {
	c.pool.Release(c.id)
	c.id = graphics.InvalidID
}

func (c *TextComponent) ID() graphics.ID { return c.id }
func (c *TextComponent) Text() string    { return c.text }

func (c *TextComponent) SetText(text string) {
	c.text = text
	c.pool.SetText(c.id, text)
}

func (c *TextComponent) SetColor(col graphics.Color) { c.pool.SetColor(c.id, col) }
