package animations

import (
	"errors"
	"fmt"
	"time"

	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
)

var (
	ErrAnimatorSettingsNotFound  = errors.New("animator settings not found")
	ErrInvalidAnimatorSettings   = errors.New("invalid animator settings")
	ErrAnimationTypeNotSupported = errors.New("animation type not supported")
)

// TextureSetter is the slice of graphics.RendererPool an animator drives.
type TextureSetter interface {
	SetTexture(id graphics.ID, path graphics.TexturePath, scale geom.Vector) error
}

// Animator switches between the animations of one character and pushes the
// current frame to its drawable.
type Animator struct {
	name       string
	id         graphics.ID
	textures   TextureSetter
	animations map[AnimationType]*Animation
	current    AnimationType
	direction  AnimationDirection
	typeSet    bool
	dirSet     bool
}

// NewAnimator builds the animator called name from repo. Every frame is
// pushed to the drawable once, so a missing texture fails here instead of
// in a later frame.
func NewAnimator(name string, id graphics.ID, textures TextureSetter, repo SettingsRepository, initial AnimationType, direction AnimationDirection) (*Animator, error) {
	settings, ok := repo.AnimatorSettings(name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrAnimatorSettingsNotFound)
	}
	if settings.Name != name {
		return nil, fmt.Errorf("%s: got settings for %q: %w", name, settings.Name, ErrInvalidAnimatorSettings)
	}

	a := &Animator{
		name:       name,
		id:         id,
		textures:   textures,
		animations: make(map[AnimationType]*Animation, len(settings.Animations)),
		current:    initial,
		direction:  direction,
	}
	for _, s := range settings.Animations {
		t, err := ParseAnimationType(s.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", name, err, ErrInvalidAnimatorSettings)
		}
		if len(s.Frames) == 0 || s.FrameDuration <= 0 {
			return nil, fmt.Errorf("%s: %s needs frames and a positive frame duration: %w", name, t, ErrInvalidAnimatorSettings)
		}
		frames := make([]graphics.TexturePath, len(s.Frames))
		for i, f := range s.Frames {
			frames[i] = graphics.TexturePath(f)
			if err := textures.SetTexture(id, frames[i], direction.Scale()); err != nil {
				return nil, fmt.Errorf("%s: %s: %w", name, t, err)
			}
		}
		a.animations[t] = NewAnimation(frames, time.Duration(s.FrameDuration*float64(time.Second)))
	}

	if !a.Supports(initial) {
		return nil, fmt.Errorf("%s: %s: %w", name, initial, ErrAnimationTypeNotSupported)
	}
	if err := textures.SetTexture(id, a.animations[initial].CurrentFrame(), direction.Scale()); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return a, nil
}

// Update advances the current animation and pushes the frame to the
// drawable when it, the type, or the direction changed.
func (a *Animator) Update(dt time.Duration) bool {
	anim := a.animations[a.current]
	frameChanged := anim.Update(dt)
	if !frameChanged && !a.typeSet && !a.dirSet {
		return false
	}
	a.typeSet, a.dirSet = false, false
	if err := a.textures.SetTexture(a.id, anim.CurrentFrame(), a.direction.Scale()); err != nil {
		// every frame already loaded once in NewAnimator
		return false
	}
	return true
}

func (a *Animator) SetAnimation(t AnimationType) error {
	return a.SetAnimationWithDirection(t, a.direction)
}

func (a *Animator) SetAnimationWithDirection(t AnimationType, d AnimationDirection) error {
	if !a.Supports(t) {
		return fmt.Errorf("%s: %s: %w", a.name, t, ErrAnimationTypeNotSupported)
	}
	if a.current != t {
		a.current = t
		a.animations[t].Reset()
		a.typeSet = true
	}
	a.SetAnimationDirection(d)
	return nil
}

func (a *Animator) SetAnimationDirection(d AnimationDirection) {
	if a.direction == d {
		return
	}
	a.direction = d
	a.animations[a.current].Reset()
	a.dirSet = true
}

func (a *Animator) Supports(t AnimationType) bool {
	_, ok := a.animations[t]
	return ok
}

func (a *Animator) Name() string                           { return a.name }
func (a *Animator) AnimationType() AnimationType           { return a.current }
func (a *Animator) AnimationDirection() AnimationDirection { return a.direction }

// FrameIndex is the frame shown by the current animation.
func (a *Animator) FrameIndex() int { return a.animations[a.current].FrameIndex() }
