// Package components holds the concrete gameplay components. Each one is
// attached to a ComponentOwner and looks its siblings up once, in
// LoadDependentComponents.
package components

import (
	"github.com/chimarrao/platformer/internal/core/event"
	"github.com/chimarrao/platformer/internal/graphics"
)

// SharedContext carries the collaborators shared by every owner of a world.
// Events may be nil.
type SharedContext struct {
	Renderer graphics.RendererPool
	Events   *event.Bus
}
