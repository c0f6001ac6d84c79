package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimarrao/platformer/internal/geom"
)

type fakeTexture struct{}

func (fakeTexture) Size() (int, int) { return 16, 16 }

type fakeStorage struct {
	valid map[TexturePath]bool
	calls int
}

func (s *fakeStorage) Texture(path TexturePath) (Texture, error) {
	s.calls++
	if !s.valid[path] {
		return nil, fmt.Errorf("%s: %w", path, ErrTextureNotAvailable)
	}
	return fakeTexture{}, nil
}

var (
	size1     = geom.Vec(20, 30)
	position1 = geom.Vec(0, 10)
)

func newTestPool() (*Pool, *HeadlessRenderer, *fakeStorage) {
	r := NewHeadlessRenderer()
	s := &fakeStorage{valid: map[TexturePath]bool{"brick.png": true, "grass.png": true}}
	return NewPool(r, s), r, s
}

func TestPoolAcquireColorShape(t *testing.T) {
	pool, _, _ := newTestPool()

	id := pool.Acquire(size1, position1, Black, LayerFirst)

	require.True(t, id.IsValid())
	pos, ok := pool.Position(id)
	require.True(t, ok)
	assert.Equal(t, position1, pos)
}

func TestPoolAcquireTexture(t *testing.T) {
	pool, _, _ := newTestPool()

	t.Run("available", func(t *testing.T) {
		id, err := pool.AcquireTexture(size1, position1, "brick.png", LayerSecond)
		require.NoError(t, err)
		d, ok := pool.Drawable(id)
		require.True(t, ok)
		assert.Equal(t, TexturePath("brick.png"), d.TexturePath)
	})

	t.Run("not available", func(t *testing.T) {
		id, err := pool.AcquireTexture(size1, position1, "missing.png", LayerSecond)
		require.True(t, errors.Is(err, ErrTextureNotAvailable))
		assert.False(t, id.IsValid())
	})
}

func TestPoolInvalidHandleIsNoop(t *testing.T) {
	pool, _, _ := newTestPool()
	invalid := NewID()

	_, ok := pool.Position(invalid)
	require.False(t, ok)
	require.NotPanics(t, func() {
		pool.SetPosition(invalid, position1)
		pool.SetColor(invalid, Red)
		pool.SetText(invalid, "x")
		pool.Release(invalid)
	})
	require.NoError(t, pool.SetTexture(invalid, "missing.png", geom.Vec(1, 1)))
}

func TestPoolSetTexture(t *testing.T) {
	pool, _, storage := newTestPool()
	id := pool.Acquire(size1, position1, Black, LayerFirst)

	require.NoError(t, pool.SetTexture(id, "grass.png", geom.Vec(-1, 1)))
	d, _ := pool.Drawable(id)
	assert.Equal(t, geom.Vec(-1, 1), d.Scale)

	calls := storage.calls
	require.NoError(t, pool.SetTexture(id, "grass.png", geom.Vec(1, 1)))
	assert.Equal(t, calls, storage.calls, "same path does not reload")

	err := pool.SetTexture(id, "missing.png", geom.Vec(1, 1))
	require.True(t, errors.Is(err, ErrTextureNotAvailable))
}

func TestPoolRenderAll(t *testing.T) {
	pool, r, _ := newTestPool()
	front := pool.Acquire(size1, position1, Red, LayerFirst)
	back := pool.Acquire(size1, position1, Blue, LayerBackground)
	released := pool.Acquire(size1, position1, Green, LayerSecond)
	hidden := pool.Acquire(size1, position1, Green, LayerSecond)
	pool.Release(released)
	pool.SetVisible(hidden, false)

	pool.RenderAll()

	require.Equal(t, 1, r.Frames)
	require.Len(t, r.LastFrame, 2)
	assert.Equal(t, back, r.LastFrame[0].ID, "background draws first")
	assert.Equal(t, front, r.LastFrame[1].ID)
	assert.Equal(t, 3, pool.Len())
}

func TestFileTextureStorage(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "tile.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 4))))
	require.NoError(t, f.Close())

	storage := NewFileTextureStorage(dir)

	tex, err := storage.Texture("tile.png")
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 4, h)

	_, err = storage.Texture("nope.png")
	require.True(t, errors.Is(err, ErrTextureNotAvailable))
}
