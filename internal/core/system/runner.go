package system

import (
	"sort"
	"time"

	"github.com/chimarrao/platformer/internal/input"
)

// Runner executes systems in phase order each frame. Systems sharing a phase
// keep their registration order.
type Runner struct {
	systems []System
	sorted  bool
	frames  uint64
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs one full frame.
func (r *Runner) Tick(dt time.Duration, in input.Input) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt, in)
	}
	r.frames++
}

// TickPhase runs only the systems of one phase. Used while paused to keep
// input and rendering alive without advancing the simulation.
func (r *Runner) TickPhase(phase Phase, dt time.Duration, in input.Input) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt, in)
		}
	}
}

// Frames returns the number of completed full ticks.
func (r *Runner) Frames() uint64 { return r.frames }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
