package ebitenrender

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp"

	"github.com/chimarrao/platformer/internal/graphics"
)

type texture struct {
	img *ebiten.Image
}

func (t *texture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// TextureStorage loads images from disk once and keeps them on the GPU.
// Keys are path hashes so lookups on the hot path avoid string compares.
type TextureStorage struct {
	root  string
	cache map[uint64]*texture
}

var _ graphics.TextureStorage = (*TextureStorage)(nil)

func NewTextureStorage(root string) *TextureStorage {
	return &TextureStorage{root: root, cache: make(map[uint64]*texture)}
}

func (s *TextureStorage) Texture(path graphics.TexturePath) (graphics.Texture, error) {
	key := xxhash.Sum64String(string(path))
	if tex, ok := s.cache[key]; ok {
		return tex, nil
	}
	f, err := os.Open(filepath.Join(s.root, string(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, graphics.ErrTextureNotAvailable)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %v: %w", path, err, graphics.ErrTextureNotAvailable)
	}
	tex := &texture{img: ebiten.NewImageFromImage(img)}
	s.cache[key] = tex
	return tex, nil
}
