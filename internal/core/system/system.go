package system

import (
	"time"

	"github.com/chimarrao/platformer/internal/input"
)

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: poll the input snapshot
	PhasePreUpdate               // 1: dispatch last frame's events
	PhaseSpawn                   // 2: flush staged owners, register colliders
	PhaseUpdate                  // 3: decision pass
	PhaseResolve                 // 4: collision resolution
	PhaseLateUpdate              // 5: effect pass (movement integration)
	PhaseCleanup                 // 6: removal sweeps
	PhaseRender                  // 7: push drawables to the backend
)

var phaseNames = [...]string{"input", "pre-update", "spawn", "update", "resolve", "late-update", "cleanup", "render"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every frame system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration, in input.Input)
}
