package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chimarrao/platformer/internal/input"
)

type probe struct {
	phase   Phase
	name    string
	journal *[]string
}

func (p probe) Phase() Phase { return p.phase }
func (p probe) Update(time.Duration, input.Input) {
	*p.journal = append(*p.journal, p.name)
}

func TestRunnerTickRunsInPhaseOrder(t *testing.T) {
	var journal []string
	r := NewRunner()
	r.Register(probe{PhaseRender, "render", &journal})
	r.Register(probe{PhaseCleanup, "cleanup", &journal})
	r.Register(probe{PhaseUpdate, "update-a", &journal})
	r.Register(probe{PhaseSpawn, "spawn", &journal})
	r.Register(probe{PhaseUpdate, "update-b", &journal})
	r.Register(probe{PhaseResolve, "resolve", &journal})
	r.Register(probe{PhaseLateUpdate, "late", &journal})

	r.Tick(time.Millisecond, input.NewStatus())

	require.Equal(t, []string{"spawn", "update-a", "update-b", "resolve", "late", "cleanup", "render"}, journal)
	require.Equal(t, uint64(1), r.Frames())
}

func TestRunnerTickPhase(t *testing.T) {
	var journal []string
	r := NewRunner()
	r.Register(probe{PhaseUpdate, "update", &journal})
	r.Register(probe{PhaseRender, "render", &journal})

	r.TickPhase(PhaseRender, time.Millisecond, input.NewStatus())

	require.Equal(t, []string{"render"}, journal)
	require.Zero(t, r.Frames())
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "resolve", PhaseResolve.String())
	require.Equal(t, "unknown", Phase(42).String())
}
