package graphics

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// HeadlessRenderer is a ContextRenderer that draws nothing. It keeps the
// last frame's draw list so a windowless run can still be inspected.
type HeadlessRenderer struct {
	Frames    int
	LastFrame []Drawable
}

func NewHeadlessRenderer() *HeadlessRenderer { return &HeadlessRenderer{} }

func (r *HeadlessRenderer) Clear(Color) {
	r.Frames++
	r.LastFrame = r.LastFrame[:0]
}

func (r *HeadlessRenderer) SetView() {}

func (r *HeadlessRenderer) Draw(d *Drawable) {
	r.LastFrame = append(r.LastFrame, *d)
}

// imageTexture records only the decoded dimensions of a file.
type imageTexture struct {
	width, height int
}

func (t imageTexture) Size() (int, int) { return t.width, t.height }

// FileTextureStorage validates textures against the filesystem without a GPU:
// it decodes the image header (PNG, BMP or WebP) and caches the dimensions.
type FileTextureStorage struct {
	root  string
	cache map[TexturePath]imageTexture
}

func NewFileTextureStorage(root string) *FileTextureStorage {
	return &FileTextureStorage{root: root, cache: make(map[TexturePath]imageTexture)}
}

func (s *FileTextureStorage) Texture(path TexturePath) (Texture, error) {
	if tex, ok := s.cache[path]; ok {
		return tex, nil
	}
	f, err := os.Open(filepath.Join(s.root, string(path)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrTextureNotAvailable)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %v: %w", path, err, ErrTextureNotAvailable)
	}
	tex := imageTexture{width: cfg.Width, height: cfg.Height}
	s.cache[path] = tex
	return tex, nil
}

// PlaceholderTextureStorage resolves every path to a blank texture of a
// fixed size. The headless runtime uses it when no texture root is set.
type PlaceholderTextureStorage struct {
	Width, Height int
}

func (s PlaceholderTextureStorage) Texture(TexturePath) (Texture, error) {
	return imageTexture{width: s.Width, height: s.Height}, nil
}
