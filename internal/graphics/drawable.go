package graphics

import "github.com/chimarrao/platformer/internal/geom"

// Kind separates shapes from text.
type Kind uint8

const (
	KindShape Kind = iota
	KindText
)

// Texture is a backend image. Only the backend knows its concrete type.
type Texture interface {
	Size() (width, height int)
}

// Drawable is the render state behind a handle.
type Drawable struct {
	ID          ID
	Kind        Kind
	Position    geom.Vector
	Size        geom.Vector
	Color       Color
	Texture     Texture
	TexturePath TexturePath
	Scale       geom.Vector
	Text        string
	FontSize    int
	Layer       Layer
	Visible     bool

	seq uint64
}

// TextureStorage resolves texture paths, caching loaded images.
type TextureStorage interface {
	Texture(path TexturePath) (Texture, error)
}

// ContextRenderer is the drawing backend driven by Pool.RenderAll.
type ContextRenderer interface {
	Clear(c Color)
	SetView()
	Draw(d *Drawable)
}
