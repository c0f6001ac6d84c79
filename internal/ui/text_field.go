package ui

import (
	"time"
	"unicode"

	"github.com/chimarrao/platformer/internal/components"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
)

const defaultTextFieldLength = 32

type TextFieldConfig struct {
	Name       string
	Position   geom.Vector
	Size       geom.Vector
	Color      graphics.Color
	TextColor  graphics.Color
	FontSize   int
	TextOffset geom.Vector
	Text       string
	MaxLength  int // runes; 0 means 32
}

// TextField is a single line of editable text. While active it appends the
// printable characters typed each frame and drops the last one on every
// Backspace release.
type TextField struct {
	owner    *ecs.ComponentOwner
	graphics *components.GraphicsComponent
	label    *components.TextComponent
	value    []rune
	max      int
}

func NewTextField(ids *ecs.EntityPool, pool graphics.RendererPool, cfg *TextFieldConfig) (*TextField, error) {
	if cfg == nil {
		return nil, ErrUIConfigNotFound
	}
	o := ecs.NewComponentOwner(ids, cfg.Position, cfg.Name)
	f := &TextField{owner: o, max: cfg.MaxLength}
	if f.max <= 0 {
		f.max = defaultTextFieldLength
	}
	f.graphics = ecs.Add(o, components.NewGraphicsComponent(o, pool, cfg.Size, cfg.Color, graphics.LayerSecond))
	f.label = ecs.Add(o, components.NewTextComponent(o, pool, "", cfg.TextOffset, cfg.FontSize, cfg.TextColor))
	if err := o.LoadDependentComponents(); err != nil {
		o.Destroy()
		return nil, err
	}
	f.SetText(cfg.Text)
	return f, nil
}

func (f *TextField) Update(dt time.Duration, in input.Input) {
	if !f.IsActive() {
		return
	}
	changed := false
	if ti, ok := in.(input.TextInput); ok {
		for _, r := range ti.TypedText() {
			if len(f.value) < f.max && unicode.IsPrint(r) {
				f.value = append(f.value, r)
				changed = true
			}
		}
	}
	if in.IsKeyReleased(input.KeyBackspace) && len(f.value) > 0 {
		f.value = f.value[:len(f.value)-1]
		changed = true
	}
	if changed {
		f.label.SetText(string(f.value))
	}
	f.owner.Update(dt, in)
	f.owner.LateUpdate(dt, in)
}

// SetText replaces the value, cut to the field's maximum length.
func (f *TextField) SetText(text string) {
	f.value = []rune(text)
	if len(f.value) > f.max {
		f.value = f.value[:f.max]
	}
	f.label.SetText(string(f.value))
}

func (f *TextField) Text() string               { return string(f.value) }
func (f *TextField) Activate()                  { f.owner.Enable() }
func (f *TextField) Deactivate()                { f.owner.Disable() }
func (f *TextField) IsActive() bool             { return f.graphics.IsEnabled() }
func (f *TextField) Owner() *ecs.ComponentOwner { return f.owner }
func (f *TextField) Destroy()                   { f.owner.Destroy() }
