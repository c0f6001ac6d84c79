package ecs

import "github.com/chimarrao/platformer/internal/geom"

// TransformComponent holds the owner's world position. Every owner has one.
type TransformComponent struct {
	BaseComponent
	position geom.Vector
}

func NewTransformComponent(owner *ComponentOwner, position geom.Vector) *TransformComponent {
	return &TransformComponent{BaseComponent: NewBaseComponent(owner), position: position}
}

func (t *TransformComponent) Position() geom.Vector     { return t.position }
func (t *TransformComponent) SetPosition(p geom.Vector) { t.position = p }
func (t *TransformComponent) AddPosition(dx, dy float64) {
	t.position.X += dx
	t.position.Y += dy
}

// IDComponent exposes the owner's identity as a component.
type IDComponent struct {
	BaseComponent
	id EntityID
}

func NewIDComponent(owner *ComponentOwner, id EntityID) *IDComponent {
	return &IDComponent{BaseComponent: NewBaseComponent(owner), id: id}
}

func (c *IDComponent) ID() EntityID { return c.id }
