// Package graphics is the rendering collaborator. The simulation never draws:
// components acquire drawable handles from a RendererPool, push state changes
// through it, and release the handles when their owner is destroyed.
package graphics

import (
	"errors"
	"image/color"

	"github.com/google/uuid"

	"github.com/chimarrao/platformer/internal/geom"
)

// ErrTextureNotAvailable is returned when a texture path cannot be loaded.
// It is propagated, not swallowed, so callers choose their own fallback.
var ErrTextureNotAvailable = errors.New("texture not available")

// ID is an opaque drawable handle.
type ID uuid.UUID

// InvalidID never refers to a drawable.
var InvalidID = ID(uuid.Nil)

func NewID() ID { return ID(uuid.New()) }

func (id ID) String() string { return uuid.UUID(id).String() }
func (id ID) IsValid() bool  { return id != InvalidID }

// Color is an 8-bit RGBA color.
type Color = color.RGBA

var (
	Black       = Color{A: 255}
	White       = Color{R: 255, G: 255, B: 255, A: 255}
	Red         = Color{R: 255, A: 255}
	Green       = Color{G: 255, A: 255}
	Blue        = Color{B: 255, A: 255}
	Transparent = Color{}
)

// RGB builds an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// TexturePath locates an image on disk, relative to the texture root.
type TexturePath string

// Layer orders drawables: LayerFirst is drawn last (on top).
type Layer int

const (
	LayerFirst Layer = iota
	LayerSecond
	LayerThird
	LayerBackground
)

// RendererPool is what components see of the renderer.
// Methods taking an unknown ID are no-ops.
type RendererPool interface {
	Acquire(size, position geom.Vector, c Color, layer Layer) ID
	AcquireTexture(size, position geom.Vector, path TexturePath, layer Layer) (ID, error)
	AcquireText(position geom.Vector, text string, fontSize int, c Color) ID
	Release(id ID)

	SetPosition(id ID, position geom.Vector)
	SetSize(id ID, size geom.Vector)
	SetColor(id ID, c Color)
	SetVisible(id ID, visible bool)
	SetText(id ID, text string)
	// SetTexture swaps the texture; scale (-1, 1) mirrors horizontally.
	SetTexture(id ID, path TexturePath, scale geom.Vector) error

	Position(id ID) (geom.Vector, bool)
	RenderAll()
}
