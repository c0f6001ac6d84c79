package animations

import (
	"time"

	"github.com/chimarrao/platformer/internal/graphics"
)

// Animation cycles through texture frames at a fixed rate.
type Animation struct {
	frames        []graphics.TexturePath
	frameDuration time.Duration
	elapsed       time.Duration
	index         int
}

func NewAnimation(frames []graphics.TexturePath, frameDuration time.Duration) *Animation {
	return &Animation{frames: frames, frameDuration: frameDuration}
}

// Update advances the animation and reports whether the frame changed.
func (a *Animation) Update(dt time.Duration) bool {
	if a.frameDuration <= 0 {
		return false
	}
	a.elapsed += dt
	changed := false
	for a.elapsed >= a.frameDuration {
		a.elapsed -= a.frameDuration
		next := (a.index + 1) % len(a.frames)
		changed = changed || next != a.index
		a.index = next
	}
	return changed
}

func (a *Animation) Reset() {
	a.elapsed = 0
	a.index = 0
}

func (a *Animation) CurrentFrame() graphics.TexturePath { return a.frames[a.index] }
func (a *Animation) FrameIndex() int                    { return a.index }
func (a *Animation) FrameCount() int                    { return len(a.frames) }
