// Package timer provides elapsed-time timers polled once per frame.
// Nothing here schedules callbacks: owners compare elapsed time themselves.
package timer

import "time"

// Clock returns the current time. Tests substitute a manual clock.
type Clock func() time.Time

// Timer measures time since the last Start/Restart.
type Timer struct {
	now   Clock
	start time.Time
}

// New creates a started timer. A nil clock uses time.Now.
func New(clock Clock) *Timer {
	if clock == nil {
		clock = time.Now
	}
	t := &Timer{now: clock}
	t.Start()
	return t
}

func (t *Timer) Start()   { t.start = t.now() }
func (t *Timer) Restart() { t.Start() }

// Elapsed returns the time passed since the last (re)start.
func (t *Timer) Elapsed() time.Duration {
	return t.now().Sub(t.start)
}

func (t *Timer) ElapsedSeconds() float64 {
	return t.Elapsed().Seconds()
}

// Manual is a controllable clock for deterministic tests and replays.
type Manual struct {
	current time.Time
}

func NewManual() *Manual {
	return &Manual{current: time.Unix(0, 0)}
}

func (m *Manual) Now() time.Time          { return m.current }
func (m *Manual) Advance(d time.Duration) { m.current = m.current.Add(d) }
