// Package ui builds widgets out of components.
package ui

import (
	"errors"
	"time"

	"github.com/chimarrao/platformer/internal/components"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/physics"
	"github.com/chimarrao/platformer/internal/timer"
)

var ErrUIConfigNotFound = errors.New("ui config not found")

// ActivationFreeze is how long a freshly activated button ignores clicks,
// so the click that opened a screen does not also press a button on it.
const ActivationFreeze = 250 * time.Millisecond

type ButtonConfig struct {
	Name       string
	Position   geom.Vector
	Size       geom.Vector
	Color      graphics.Color
	HoverColor graphics.Color
	Text       string
	TextColor  graphics.Color
	FontSize   int
	TextOffset geom.Vector
	OnClick    func()
}

// Button is a clickable rectangle with a label. Buttons are driven by their
// screen, not by a ComponentOwnersManager.
type Button struct {
	owner     *ecs.ComponentOwner
	graphics  *components.GraphicsComponent
	text      *components.TextComponent
	clickable *components.ClickableComponent
	freeze    *timer.Timer
	frozen    bool
	onClick   func()
}

func NewButton(ids *ecs.EntityPool, pool graphics.RendererPool, cfg *ButtonConfig, clock timer.Clock) (*Button, error) {
	if cfg == nil {
		return nil, ErrUIConfigNotFound
	}
	o := ecs.NewComponentOwner(ids, cfg.Position, cfg.Name)
	b := &Button{owner: o, freeze: timer.New(clock), onClick: cfg.OnClick}

	b.graphics = ecs.Add(o, components.NewGraphicsComponent(o, pool, cfg.Size, cfg.Color, graphics.LayerFirst))
	b.text = ecs.Add(o, components.NewTextComponent(o, pool, cfg.Text, cfg.TextOffset, cfg.FontSize, cfg.TextColor))
	ecs.Add(o, components.NewBoxColliderComponent(o, cfg.Size, geom.Vector{}, physics.TagUI, true))
	b.clickable = ecs.Add(o, components.NewClickableComponent(o, components.KeyAction{Key: input.MouseLeft, Action: cfg.OnClick}))
	if cfg.HoverColor != (graphics.Color{}) {
		normal, hover := cfg.Color, cfg.HoverColor
		ecs.Add(o, components.NewMouseOverComponent(o,
			func() { b.graphics.SetColor(hover) },
			func() { b.graphics.SetColor(normal) },
		))
	}
	if err := o.LoadDependentComponents(); err != nil {
		o.Destroy()
		return nil, err
	}
	b.Activate()
	return b, nil
}

// Update releases the activation freeze once it has passed, then runs the
// button's components.
func (b *Button) Update(dt time.Duration, in input.Input) {
	if !b.IsActive() {
		return
	}
	if b.frozen && b.freeze.Elapsed() >= ActivationFreeze {
		b.frozen = false
		b.clickable.Enable()
	}
	b.owner.Update(dt, in)
	b.owner.LateUpdate(dt, in)
}

// Press runs the click action as if the button had been clicked. It does
// nothing while the button is hidden or frozen.
func (b *Button) Press() bool {
	if !b.IsActive() || b.frozen || b.onClick == nil {
		return false
	}
	b.onClick()
	return true
}

func (b *Button) Activate() {
	b.owner.Enable()
	b.clickable.Disable()
	b.frozen = true
	b.freeze.Restart()
}

func (b *Button) Deactivate() {
	b.owner.Disable()
	b.frozen = false
}

// IsActive is true while the button is shown, frozen or not.
func (b *Button) IsActive() bool { return b.graphics.IsEnabled() }

func (b *Button) IsFrozen() bool             { return b.frozen }
func (b *Button) SetColor(c graphics.Color)  { b.graphics.SetColor(c) }
func (b *Button) SetText(text string)        { b.text.SetText(text) }
func (b *Button) Owner() *ecs.ComponentOwner { return b.owner }
func (b *Button) Destroy()                   { b.owner.Destroy() }
