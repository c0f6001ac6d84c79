package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxIntersects(t *testing.T) {
	a := NewBox(0, 0, 10, 10)

	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"overlapping", NewBox(5, 5, 10, 10), true},
		{"inside", NewBox(2, 2, 2, 2), true},
		{"touching edge", NewBox(10, 0, 5, 5), false},
		{"touching bottom", NewBox(0, 10, 10, 5), false},
		{"apart", NewBox(20, 20, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Intersects(tt.b))
			assert.Equal(t, tt.want, tt.b.Intersects(a))
		})
	}
}

func TestBoxContains(t *testing.T) {
	outer := NewBox(0, 0, 100, 100)
	assert.True(t, outer.Contains(NewBox(0, 0, 100, 100)))
	assert.True(t, outer.Contains(NewBox(10, 10, 5, 5)))
	assert.False(t, outer.Contains(NewBox(95, 10, 10, 5)))
}

func TestBoxSegmentIntersection(t *testing.T) {
	box := NewBox(10, -1, 2, 2)

	t.Run("hit along x axis", func(t *testing.T) {
		d, ok := box.SegmentIntersection(Vec(0, 0), Vec(1, 0), 100)
		require.True(t, ok)
		assert.InDelta(t, 10.0, d, 1e-9)
	})

	t.Run("segment too short", func(t *testing.T) {
		_, ok := box.SegmentIntersection(Vec(0, 0), Vec(1, 0), 5)
		assert.False(t, ok)
	})

	t.Run("pointing away", func(t *testing.T) {
		_, ok := box.SegmentIntersection(Vec(0, 0), Vec(-1, 0), 100)
		assert.False(t, ok)
	})

	t.Run("parallel outside slab", func(t *testing.T) {
		_, ok := box.SegmentIntersection(Vec(0, 5), Vec(1, 0), 100)
		assert.False(t, ok)
	})

	t.Run("origin inside", func(t *testing.T) {
		d, ok := box.SegmentIntersection(Vec(11, 0), Vec(1, 0), 100)
		require.True(t, ok)
		assert.Zero(t, d)
	})
}

func TestVectorNormalized(t *testing.T) {
	assert.Equal(t, Vector{}, Vector{}.Normalized())
	n := Vec(3, 4).Normalized()
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)
}
