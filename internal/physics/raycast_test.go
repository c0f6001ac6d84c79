package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

func TestRayCast(t *testing.T) {
	pool := ecs.NewEntityPool()
	f := NewFactory(geom.NewBox(0, 0, 200, 200), 2, 4)
	near := newTestBox(pool, 10, 0, 5, 10)
	far := newTestBox(pool, 30, 0, 5, 10)
	f.QuadTree().Insert(far)
	f.QuadTree().Insert(near)
	ray := f.CreateRayCast()
	origin := geom.Vec(0, 5)

	t.Run("nearest hit", func(t *testing.T) {
		hit, ok := ray.Cast(origin, geom.Vec(1, 0), 100)
		require.True(t, ok)
		assert.Same(t, near.Owner(), hit.Owner)
		assert.InDelta(t, 10, hit.Distance, 1e-9)
		assert.True(t, hit.Point.ApproxEqual(geom.Vec(10, 5), 1e-9))
	})

	t.Run("direction is normalized", func(t *testing.T) {
		hit, ok := ray.Cast(origin, geom.Vec(7, 0), 100)
		require.True(t, ok)
		assert.InDelta(t, 10, hit.Distance, 1e-9)
	})

	t.Run("ignored owner is transparent", func(t *testing.T) {
		hit, ok := ray.Cast(origin, geom.Vec(1, 0), 100, near.Owner())
		require.True(t, ok)
		assert.Same(t, far.Owner(), hit.Owner)
	})

	t.Run("misses", func(t *testing.T) {
		for name, tc := range map[string]struct {
			dir  geom.Vector
			dist float64
		}{
			"away":          {geom.Vec(-1, 0), 100},
			"too short":     {geom.Vec(1, 0), 5},
			"zero distance": {geom.Vec(1, 0), 0},
			"zero dir":      {geom.Vec(0, 0), 100},
		} {
			t.Run(name, func(t *testing.T) {
				_, ok := ray.Cast(origin, tc.dir, tc.dist)
				assert.False(t, ok)
			})
		}
	})
}

func TestRayCastSkipsTriggersAndDisabled(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 200, 200), 4, 4)
	trigger := newTestBox(pool, 10, 0, 5, 10)
	trigger.trigger = true
	disabled := newTestBox(pool, 20, 0, 5, 10)
	disabled.Disable()
	wall := newTestBox(pool, 30, 0, 5, 10)
	for _, b := range []*testBox{trigger, disabled, wall} {
		q.Insert(b)
	}

	hit, ok := NewRayCast(q).Cast(geom.Vec(0, 5), geom.Vec(1, 0), 100)
	require.True(t, ok)
	assert.Same(t, wall.Owner(), hit.Owner)
}

func TestRayCastTieBreaksByOwnerID(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 200, 200), 4, 4)
	first := newTestBox(pool, 10, 0, 5, 10)
	second := newTestBox(pool, 10, 4, 5, 10)
	q.Insert(second)
	q.Insert(first)

	for i := 0; i < 3; i++ {
		hit, ok := NewRayCast(q).Cast(geom.Vec(0, 6), geom.Vec(1, 0), 100)
		require.True(t, ok)
		assert.Same(t, first.Owner(), hit.Owner)
	}
}

func TestRayCastOriginInsideBox(t *testing.T) {
	pool := ecs.NewEntityPool()
	q := NewQuadtree(geom.NewBox(0, 0, 200, 200), 4, 4)
	q.Insert(newTestBox(pool, 0, 0, 20, 20))

	hit, ok := NewRayCast(q).Cast(geom.Vec(5, 5), geom.Vec(0, 1), 50)
	require.True(t, ok)
	assert.Zero(t, hit.Distance)
}
