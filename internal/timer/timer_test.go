package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimerManualClock(t *testing.T) {
	clock := NewManual()
	tm := New(clock.Now)

	require.Zero(t, tm.Elapsed())

	clock.Advance(250 * time.Millisecond)
	require.Equal(t, 250*time.Millisecond, tm.Elapsed())
	require.InDelta(t, 0.25, tm.ElapsedSeconds(), 1e-9)

	tm.Restart()
	require.Zero(t, tm.Elapsed())
}
