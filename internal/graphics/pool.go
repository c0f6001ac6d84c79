package graphics

import (
	"fmt"
	"sort"

	"github.com/chimarrao/platformer/internal/geom"
)

// Pool is the RendererPool implementation. It owns every drawable and is
// shared by all components of a world; it is injected, never global.
// Accessed only from the frame loop goroutine.
type Pool struct {
	renderer   ContextRenderer
	textures   TextureStorage
	drawables  map[ID]*Drawable
	nextSeq    uint64
	background Color
	scratch    []*Drawable
}

var _ RendererPool = (*Pool)(nil)

func NewPool(renderer ContextRenderer, textures TextureStorage) *Pool {
	return &Pool{
		renderer:   renderer,
		textures:   textures,
		drawables:  make(map[ID]*Drawable, 128),
		background: White,
	}
}

// SetBackground changes the clear color.
func (p *Pool) SetBackground(c Color) { p.background = c }

func (p *Pool) Acquire(size, position geom.Vector, c Color, layer Layer) ID {
	d := p.newDrawable(KindShape, layer)
	d.Size = size
	d.Position = position
	d.Color = c
	return d.ID
}

func (p *Pool) AcquireTexture(size, position geom.Vector, path TexturePath, layer Layer) (ID, error) {
	tex, err := p.loadTexture(path)
	if err != nil {
		return InvalidID, err
	}
	d := p.newDrawable(KindShape, layer)
	d.Size = size
	d.Position = position
	d.Color = White
	d.Texture = tex
	d.TexturePath = path
	return d.ID, nil
}

func (p *Pool) AcquireText(position geom.Vector, text string, fontSize int, c Color) ID {
	d := p.newDrawable(KindText, LayerFirst)
	d.Position = position
	d.Text = text
	d.FontSize = fontSize
	d.Color = c
	return d.ID
}

func (p *Pool) Release(id ID) {
	delete(p.drawables, id)
}

func (p *Pool) SetPosition(id ID, position geom.Vector) {
	if d, ok := p.drawables[id]; ok {
		d.Position = position
	}
}

func (p *Pool) SetSize(id ID, size geom.Vector) {
	if d, ok := p.drawables[id]; ok {
		d.Size = size
	}
}

func (p *Pool) SetColor(id ID, c Color) {
	if d, ok := p.drawables[id]; ok {
		d.Color = c
	}
}

func (p *Pool) SetVisible(id ID, visible bool) {
	if d, ok := p.drawables[id]; ok {
		d.Visible = visible
	}
}

func (p *Pool) SetText(id ID, text string) {
	if d, ok := p.drawables[id]; ok {
		d.Text = text
	}
}

func (p *Pool) SetTexture(id ID, path TexturePath, scale geom.Vector) error {
	d, ok := p.drawables[id]
	if !ok {
		return nil
	}
	if d.TexturePath != path {
		tex, err := p.loadTexture(path)
		if err != nil {
			return err
		}
		d.Texture = tex
		d.TexturePath = path
	}
	d.Scale = scale
	return nil
}

func (p *Pool) Position(id ID) (geom.Vector, bool) {
	d, ok := p.drawables[id]
	if !ok {
		return geom.Vector{}, false
	}
	return d.Position, true
}

// Drawable returns a copy of the render state behind id.
func (p *Pool) Drawable(id ID) (Drawable, bool) {
	d, ok := p.drawables[id]
	if !ok {
		return Drawable{}, false
	}
	return *d, true
}

// Len returns the number of live handles.
func (p *Pool) Len() int { return len(p.drawables) }

// RenderAll clears the backend and draws every visible drawable, background
// layer first and LayerFirst last; ties keep acquisition order.
func (p *Pool) RenderAll() {
	p.renderer.Clear(p.background)
	p.renderer.SetView()

	p.scratch = p.scratch[:0]
	for _, d := range p.drawables {
		if d.Visible {
			p.scratch = append(p.scratch, d)
		}
	}
	sort.Slice(p.scratch, func(i, j int) bool {
		a, b := p.scratch[i], p.scratch[j]
		if a.Layer != b.Layer {
			return a.Layer > b.Layer
		}
		return a.seq < b.seq
	})
	for _, d := range p.scratch {
		p.renderer.Draw(d)
	}
}

func (p *Pool) newDrawable(kind Kind, layer Layer) *Drawable {
	p.nextSeq++
	d := &Drawable{
		ID:      NewID(),
		Kind:    kind,
		Layer:   layer,
		Scale:   geom.Vec(1, 1),
		Visible: true,
		seq:     p.nextSeq,
	}
	p.drawables[d.ID] = d
	return d
}

func (p *Pool) loadTexture(path TexturePath) (Texture, error) {
	if p.textures == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrTextureNotAvailable)
	}
	return p.textures.Texture(path)
}
