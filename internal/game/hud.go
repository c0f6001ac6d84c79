package game

import (
	"fmt"
	"time"

	"github.com/chimarrao/platformer/internal/components"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
)

const (
	hudWidth  = 40.0
	hudHeight = 4.0
	hudGap    = 6.0
)

var hudBackground = graphics.RGB(60, 60, 60)

// HeadsUpDisplay is a health bar floating over the player. Its owner is
// not managed; GameState moves it after the effect pass.
type HeadsUpDisplay struct {
	owner  *ecs.ComponentOwner
	player *ecs.ComponentOwner
	health *components.HealthComponent
	fill   *components.GraphicsComponent
	label  *components.TextComponent
}

// NewHeadsUpDisplay fails with ecs.ErrDependentComponentNotFound when the
// player has no health.
func NewHeadsUpDisplay(ids *ecs.EntityPool, pool graphics.RendererPool, player *ecs.ComponentOwner) (*HeadsUpDisplay, error) {
	health, err := ecs.Require[*components.HealthComponent](player, "HeadsUpDisplay")
	if err != nil {
		return nil, err
	}
	o := ecs.NewComponentOwner(ids, player.Position(), "hud")
	h := &HeadsUpDisplay{owner: o, player: player, health: health}
	ecs.Add(o, components.NewGraphicsComponent(o, pool, geom.Vec(hudWidth, hudHeight), hudBackground, graphics.LayerFirst))
	h.fill = ecs.Add(o, components.NewGraphicsComponent(o, pool, geom.Vec(hudWidth, hudHeight), graphics.Red, graphics.LayerFirst))
	h.label = ecs.Add(o, components.NewTextComponent(o, pool, "", geom.Vec(hudWidth+2, -3), labelFontSize, graphics.White))
	h.Update(0, nil)
	return h, nil
}

// Update scales the bar to the player's health and moves it above the
// player.
func (h *HeadsUpDisplay) Update(dt time.Duration, in input.Input) {
	h.owner.Transform().SetPosition(h.player.Position().Sub(geom.Vec(0, hudGap+hudHeight)))
	h.fill.SetSize(geom.Vec(hudWidth*h.Ratio(), hudHeight))
	h.label.SetText(fmt.Sprintf("%d/%d", h.health.CurrentHealth(), h.health.MaximumHealth()))
	h.owner.LateUpdate(dt, in)
}

// Ratio is current over maximum health, 0 for a zero maximum.
func (h *HeadsUpDisplay) Ratio() float64 {
	if h.health.MaximumHealth() == 0 {
		return 0
	}
	return float64(h.health.CurrentHealth()) / float64(h.health.MaximumHealth())
}

func (h *HeadsUpDisplay) Owner() *ecs.ComponentOwner { return h.owner }
func (h *HeadsUpDisplay) Destroy()                   { h.owner.Destroy() }
