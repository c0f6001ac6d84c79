// Package animations drives frame-based sprite animations. An Animator is a
// small state machine over (AnimationType, AnimationDirection) whose frames
// come from named settings.
package animations

import (
	"fmt"
	"strings"

	"github.com/chimarrao/platformer/internal/geom"
)

type AnimationType uint8

const (
	Idle AnimationType = iota
	Walk
	Jump
	Attack
	Sleep
)

var typeNames = [...]string{
	Idle:   "Idle",
	Walk:   "Walk",
	Jump:   "Jump",
	Attack: "Attack",
	Sleep:  "Sleep",
}

func (t AnimationType) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("AnimationType(%d)", t)
}

// ParseAnimationType accepts names case-insensitively.
func ParseAnimationType(s string) (AnimationType, error) {
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return AnimationType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown animation type %q", s)
}

type AnimationDirection uint8

const (
	Right AnimationDirection = iota
	Left
)

func (d AnimationDirection) String() string {
	if d == Left {
		return "Left"
	}
	return "Right"
}

// Scale is the texture scale for the direction; textures face right.
func (d AnimationDirection) Scale() geom.Vector {
	if d == Left {
		return geom.Vec(-1, 1)
	}
	return geom.Vec(1, 1)
}

// Sign is -1 for Left and +1 for Right.
func (d AnimationDirection) Sign() float64 {
	if d == Left {
		return -1
	}
	return 1
}
