package physics

import (
	"time"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
)

type testBox struct {
	ecs.BaseComponent
	size    geom.Vector
	tag     Tag
	trigger bool
}

func (b *testBox) Bounds() geom.Box { return geom.Box{Position: b.Owner().Position(), Size: b.size} }
func (b *testBox) Tag() Tag         { return b.tag }
func (b *testBox) IsTrigger() bool  { return b.trigger }

type testMover struct {
	testBox
	velocity geom.Vector
	result   Resolution
	resolved bool
}

func (m *testMover) ProposedDisplacement(dt time.Duration) geom.Vector {
	return m.velocity.Scale(dt.Seconds())
}

func (m *testMover) SetResolution(r Resolution) {
	m.result = r
	m.resolved = true
}

func newTestBox(pool *ecs.EntityPool, x, y, w, h float64) *testBox {
	owner := ecs.NewComponentOwner(pool, geom.Vec(x, y), "box")
	return ecs.Add(owner, &testBox{BaseComponent: ecs.NewBaseComponent(owner), size: geom.Vec(w, h), tag: TagObstacle})
}

func newTestMover(pool *ecs.EntityPool, x, y, w, h float64, velocity geom.Vector) *testMover {
	owner := ecs.NewComponentOwner(pool, geom.Vec(x, y), "mover")
	return ecs.Add(owner, &testMover{
		testBox:  testBox{BaseComponent: ecs.NewBaseComponent(owner), size: geom.Vec(w, h), tag: TagPlayer},
		velocity: velocity,
	})
}
