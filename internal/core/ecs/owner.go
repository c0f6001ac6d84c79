package ecs

import (
	"reflect"
	"time"

	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
)

// ComponentOwner is an entity: a named, identified, ordered collection of
// components. Insertion order matters. Later components usually depend on
// earlier "core" ones, so every pass walks the slice back to front.
// Accessed only from the frame loop goroutine, no locks.
type ComponentOwner struct {
	name       string
	pool       *EntityPool
	components []Component
	byType     map[reflect.Type]Component
	transform  *TransformComponent
	id         *IDComponent
	toRemove   bool
	destroyed  bool
}

// NewComponentOwner creates an owner with its transform and identity
// components already attached. The identity is drawn from pool.
func NewComponentOwner(pool *EntityPool, position geom.Vector, name string) *ComponentOwner {
	o := &ComponentOwner{
		name:       name,
		pool:       pool,
		components: make([]Component, 0, 8),
		byType:     make(map[reflect.Type]Component, 8),
	}
	o.transform = Add(o, NewTransformComponent(o, position))
	o.id = Add(o, NewIDComponent(o, pool.Create()))
	return o
}

// Add attaches c to owner and returns it typed. The owner is the sole
// strong holder; the returned handle is a borrowed reference.
// The first component of a concrete type wins type lookups.
func Add[T Component](owner *ComponentOwner, c T) T {
	owner.components = append(owner.components, c)
	t := reflect.TypeOf(c)
	if _, exists := owner.byType[t]; !exists {
		owner.byType[t] = c
	}
	return c
}

// GetComponent returns the first component of type T. Concrete types are an
// O(1) registry hit; interface types fall back to an ordered scan.
func GetComponent[T any](owner *ComponentOwner) (T, bool) {
	var zero T
	if owner == nil {
		return zero, false
	}
	if c, ok := owner.byType[reflect.TypeOf((*T)(nil)).Elem()]; ok {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	for _, c := range owner.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	return zero, false
}

// HasComponent reports whether a component of type T is attached.
func HasComponent[T any](owner *ComponentOwner) bool {
	_, ok := GetComponent[T](owner)
	return ok
}

func (o *ComponentOwner) Name() string                   { return o.name }
func (o *ComponentOwner) ID() EntityID                   { return o.id.ID() }
func (o *ComponentOwner) Transform() *TransformComponent { return o.transform }
func (o *ComponentOwner) Position() geom.Vector          { return o.transform.Position() }
func (o *ComponentOwner) ComponentCount() int            { return len(o.components) }
func (o *ComponentOwner) ComponentAt(i int) Component    { return o.components[i] }
func (o *ComponentOwner) IsDestroyed() bool              { return o.destroyed }
func (o *ComponentOwner) ShouldBeRemoved() bool          { return o.toRemove }

// LoadDependentComponents wires sibling references, newest component first.
// The first failure is returned as-is and the owner must not be used.
func (o *ComponentOwner) LoadDependentComponents() error {
	for i := len(o.components) - 1; i >= 0; i-- {
		if err := o.components[i].LoadDependentComponents(); err != nil {
			return err
		}
	}
	return nil
}

// Update runs the decision pass over enabled components.
func (o *ComponentOwner) Update(dt time.Duration, in input.Input) {
	for i := len(o.components) - 1; i >= 0; i-- {
		if c := o.components[i]; c.IsEnabled() {
			c.Update(dt, in)
		}
	}
}

// LateUpdate runs the effect pass over enabled components.
func (o *ComponentOwner) LateUpdate(dt time.Duration, in input.Input) {
	for i := len(o.components) - 1; i >= 0; i-- {
		if c := o.components[i]; c.IsEnabled() {
			c.LateUpdate(dt, in)
		}
	}
}

func (o *ComponentOwner) Enable() {
	for _, c := range o.components {
		c.Enable()
	}
}

func (o *ComponentOwner) Disable() {
	for _, c := range o.components {
		c.Disable()
	}
}

// AreComponentsEnabled is true iff no component is disabled.
func (o *ComponentOwner) AreComponentsEnabled() bool {
	for _, c := range o.components {
		if !c.IsEnabled() {
			return false
		}
	}
	return true
}

// Remove flags the owner for the next removal sweep. Nothing is freed here.
func (o *ComponentOwner) Remove() {
	o.toRemove = true
}

// Destroy releases component resources and the identity. It is called by
// the removal sweep, or directly for owners that never entered a manager.
func (o *ComponentOwner) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	for i := len(o.components) - 1; i >= 0; i-- {
		if d, ok := o.components[i].(Destroyer); ok {
			d.Destroy()
		}
	}
	o.pool.Destroy(o.id.ID())
}
