package components

import (
	"time"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/core/event"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
)

type fakeAnimator struct {
	supported map[animations.AnimationType]bool
	current   animations.AnimationType
	direction animations.AnimationDirection
	updates   int
}

func newFakeAnimator(types ...animations.AnimationType) *fakeAnimator {
	f := &fakeAnimator{supported: make(map[animations.AnimationType]bool)}
	for _, t := range types {
		f.supported[t] = true
	}
	return f
}

func (f *fakeAnimator) Update(time.Duration) bool {
	f.updates++
	return false
}

func (f *fakeAnimator) SetAnimation(t animations.AnimationType) error {
	return f.SetAnimationWithDirection(t, f.direction)
}

func (f *fakeAnimator) SetAnimationWithDirection(t animations.AnimationType, d animations.AnimationDirection) error {
	if !f.supported[t] {
		return animations.ErrAnimationTypeNotSupported
	}
	f.current, f.direction = t, d
	return nil
}

func (f *fakeAnimator) SetAnimationDirection(d animations.AnimationDirection) { f.direction = d }
func (f *fakeAnimator) AnimationType() animations.AnimationType               { return f.current }
func (f *fakeAnimator) AnimationDirection() animations.AnimationDirection     { return f.direction }
func (f *fakeAnimator) Supports(t animations.AnimationType) bool              { return f.supported[t] }

type testWorld struct {
	ids        *ecs.EntityPool
	gfx        *graphics.Pool
	factory    *physics.Factory
	collisions *physics.CollisionSystem
	events     *event.Bus
}

func newTestWorld() *testWorld {
	f := physics.NewFactory(geom.NewBox(0, 0, 400, 400), 4, 4)
	return &testWorld{
		ids:        ecs.NewEntityPool(),
		gfx:        graphics.NewPool(graphics.NewHeadlessRenderer(), graphics.PlaceholderTextureStorage{Width: 16, Height: 16}),
		factory:    f,
		collisions: f.CreateCollisionSystem(),
		events:     event.NewBus(),
	}
}

// character builds an owner with velocity, animation and a 10x10 collider.
func (w *testWorld) character(name string, pos geom.Vector, tag physics.Tag, types ...animations.AnimationType) (*ecs.ComponentOwner, *fakeAnimator) {
	o := ecs.NewComponentOwner(w.ids, pos, name)
	anim := newFakeAnimator(types...)
	ecs.Add(o, NewVelocityComponent(o, geom.Vector{}))
	ecs.Add(o, NewAnimationComponent(o, anim, nil))
	ecs.Add(o, NewBoxColliderComponent(o, geom.Vec(10, 10), geom.Vector{}, tag, false))
	return o, anim
}

func (w *testWorld) obstacle(x, y, width, height float64) *ecs.ComponentOwner {
	o := ecs.NewComponentOwner(w.ids, geom.Vec(x, y), "obstacle")
	ecs.Add(o, NewBoxColliderComponent(o, geom.Vec(width, height), geom.Vector{}, physics.TagObstacle, false))
	return o
}

func (w *testWorld) register(owners ...*ecs.ComponentOwner) {
	w.collisions.Add(owners)
	w.collisions.Refresh()
}

// frame runs one update, resolve, late update cycle.
func (w *testWorld) frame(dt time.Duration, in input.Input, owners ...*ecs.ComponentOwner) {
	for _, o := range owners {
		o.Update(dt, in)
	}
	w.collisions.Update(dt)
	for _, o := range owners {
		o.LateUpdate(dt, in)
	}
}

func (w *testWorld) dispatch() {
	w.events.SwapBuffers()
	w.events.DispatchAll()
}
