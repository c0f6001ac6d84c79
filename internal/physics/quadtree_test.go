package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

func TestQuadtreeSplitsWhenCapacityExceeded(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 100, 100), 4, 4)

	corners := []*testBox{
		newTestBox(pool, 5, 5, 5, 5),
		newTestBox(pool, 70, 5, 5, 5),
		newTestBox(pool, 5, 70, 5, 5),
		newTestBox(pool, 70, 70, 5, 5),
	}
	for _, c := range corners {
		q.Insert(c)
	}
	assert.Equal(t, 0, q.Depth(), "at capacity, no split yet")

	q.Insert(newTestBox(pool, 10, 10, 5, 5))
	assert.Equal(t, 1, q.Depth())
	assert.Equal(t, 5, q.Len())
	for _, c := range corners {
		assert.NotSame(t, q.root, q.location[c])
	}
}

func TestQuadtreeStraddlerStaysInParent(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 100, 100), 1, 4)

	q.Insert(newTestBox(pool, 5, 5, 5, 5))
	q.Insert(newTestBox(pool, 70, 70, 5, 5))
	straddler := newTestBox(pool, 45, 45, 10, 10)
	q.Insert(straddler)

	assert.Same(t, q.root, q.location[straddler])

	all := q.QueryRegion(geom.NewBox(0, 0, 100, 100))
	assert.Len(t, all, 3, "each entry is returned exactly once")
}

func TestQuadtreeQueryRegion(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 100, 100), 1, 4)

	a := newTestBox(pool, 10, 10, 5, 5)
	b := newTestBox(pool, 80, 80, 5, 5)
	c := newTestBox(pool, 45, 45, 10, 10)
	for _, x := range []*testBox{a, b, c} {
		q.Insert(x)
	}

	t.Run("overlapping entries only", func(t *testing.T) {
		got := q.QueryRegion(geom.NewBox(0, 0, 50, 50))
		assert.ElementsMatch(t, []Collider{a, c}, got)
	})

	t.Run("empty region", func(t *testing.T) {
		assert.Empty(t, q.QueryRegion(geom.NewBox(60, 0, 10, 10)))
	})

	t.Run("touching edge is not an overlap", func(t *testing.T) {
		assert.Empty(t, q.QueryRegion(geom.NewBox(15, 10, 5, 5)))
	})
}

func TestQuadtreeOutOfBoundsLivesInRoot(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 100, 100), 1, 4)

	outside := newTestBox(pool, 200, 200, 10, 10)
	q.Insert(newTestBox(pool, 5, 5, 5, 5))
	q.Insert(newTestBox(pool, 70, 70, 5, 5))
	q.Insert(outside)

	assert.Same(t, q.root, q.location[outside])
	assert.Equal(t, []Collider{outside}, q.QueryRegion(geom.NewBox(190, 190, 30, 30)))
}

func TestQuadtreeRemoveAndClear(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 100, 100), 1, 4)

	a := newTestBox(pool, 10, 10, 5, 5)
	b := newTestBox(pool, 80, 80, 5, 5)
	q.Insert(a)
	q.Insert(b)

	require.True(t, q.Remove(a))
	assert.False(t, q.Remove(a))
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, []Collider{b}, q.QueryRegion(geom.NewBox(0, 0, 100, 100)))

	q.Clear()
	assert.Zero(t, q.Len())
	assert.Zero(t, q.Depth())
	assert.Empty(t, q.QueryRegion(geom.NewBox(0, 0, 100, 100)))
}

func TestQuadtreeReinsertReplaces(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 100, 100), 4, 4)

	a := newTestBox(pool, 10, 10, 5, 5)
	q.Insert(a)
	a.Owner().Transform().SetPosition(geom.Vec(80, 80))
	q.Insert(a)

	assert.Equal(t, 1, q.Len())
	assert.Empty(t, q.QueryRegion(geom.NewBox(0, 0, 50, 50)))
	assert.Equal(t, []Collider{a}, q.QueryRegion(geom.NewBox(50, 50, 50, 50)))
}
