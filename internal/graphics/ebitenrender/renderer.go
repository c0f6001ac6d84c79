// Package ebitenrender backs the graphics and input collaborators with ebiten.
package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
)

// Renderer draws graphics.Drawables onto the current ebiten screen.
// The screen is only valid inside ebiten's Draw callback, so the window
// sets it right before the pool renders.
type Renderer struct {
	screen *ebiten.Image
	face   text.Face
	width  int
	height int
	follow func() geom.Vector
	offset geom.Vector
}

var _ graphics.ContextRenderer = (*Renderer)(nil)

func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		face:   text.NewGoXFace(basicfont.Face7x13),
		width:  width,
		height: height,
	}
}

// Follow centers the view on the point returned by fn every frame.
func (r *Renderer) Follow(fn func() geom.Vector) { r.follow = fn }

func (r *Renderer) SetTarget(screen *ebiten.Image) { r.screen = screen }

// Offset is the world position of the screen's top-left corner.
func (r *Renderer) Offset() geom.Vector { return r.offset }

func (r *Renderer) Clear(c graphics.Color) {
	if r.screen != nil {
		r.screen.Fill(c)
	}
}

func (r *Renderer) SetView() {
	if r.follow == nil {
		r.offset = geom.Vector{}
		return
	}
	center := r.follow()
	r.offset = geom.Vec(center.X-float64(r.width)/2, center.Y-float64(r.height)/2)
}

func (r *Renderer) Draw(d *graphics.Drawable) {
	if r.screen == nil {
		return
	}
	x := d.Position.X - r.offset.X
	y := d.Position.Y - r.offset.Y

	if d.Kind == graphics.KindText {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, y)
		op.ColorScale.ScaleWithColor(d.Color)
		text.Draw(r.screen, d.Text, r.face, op)
		return
	}
	// placeholder textures draw as their base color
	if tex, ok := d.Texture.(*texture); ok {
		w, h := tex.Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(d.Size.X/float64(w)*d.Scale.X, d.Size.Y/float64(h)*d.Scale.Y)
		if d.Scale.X < 0 {
			x += d.Size.X
		}
		if d.Scale.Y < 0 {
			y += d.Size.Y
		}
		op.GeoM.Translate(x, y)
		r.screen.DrawImage(tex.img, op)
		return
	}
	vector.DrawFilledRect(r.screen, float32(x), float32(y), float32(d.Size.X), float32(d.Size.Y), d.Color, false)
}
