package components

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/animations"
	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/input"
)

// Animator is the state machine behind an AnimationComponent.
type Animator interface {
	Update(dt time.Duration) bool
	SetAnimation(t animations.AnimationType) error
	SetAnimationWithDirection(t animations.AnimationType, d animations.AnimationDirection) error
	SetAnimationDirection(d animations.AnimationDirection)
	AnimationType() animations.AnimationType
	AnimationDirection() animations.AnimationDirection
	Supports(t animations.AnimationType) bool
}

// AnimationComponent forwards animation requests to an Animator.
// Components that drive it Require their types while loading, so a
// missing animation fails construction instead of a frame.
type AnimationComponent struct {
	ecs.BaseComponent
	animator Animator
	log      *zap.Logger
}

// NewAnimationComponent logs rejected requests to log; nil discards them.
func NewAnimationComponent(owner *ecs.ComponentOwner, animator Animator, log *zap.Logger) *AnimationComponent {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnimationComponent{BaseComponent: ecs.NewBaseComponent(owner), animator: animator, log: log}
}

func (c *AnimationComponent) Update(dt time.Duration, _ input.Input) {
	c.animator.Update(dt)
}

// Require fails with ErrAnimationTypeNotSupported for the first missing type.
func (c *AnimationComponent) Require(types ...animations.AnimationType) error {
	for _, t := range types {
		if !c.animator.Supports(t) {
			return fmt.Errorf("%s: %s: %w", c.OwnerName(), t, animations.ErrAnimationTypeNotSupported)
		}
	}
	return nil
}

// SetAnimation switches to t. An unsupported type leaves the current
// animation playing and returns ErrAnimationTypeNotSupported.
func (c *AnimationComponent) SetAnimation(t animations.AnimationType) error {
	if err := c.animator.SetAnimation(t); err != nil {
		c.log.Warn("animation rejected",
			zap.String("owner", c.OwnerName()),
			zap.Stringer("type", t),
			zap.Error(err))
		return err
	}
	return nil
}

func (c *AnimationComponent) SetAnimationDirection(d animations.AnimationDirection) {
	c.animator.SetAnimationDirection(d)
}

func (c *AnimationComponent) Supports(t animations.AnimationType) bool { return c.animator.Supports(t) }
func (c *AnimationComponent) AnimationType() animations.AnimationType {
	return c.animator.AnimationType()
}
func (c *AnimationComponent) AnimationDirection() animations.AnimationDirection {
	return c.animator.AnimationDirection()
}
