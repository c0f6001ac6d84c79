package input

import "github.com/chimarrao/platformer/internal/geom"

// Status is a bitmask-backed Input snapshot. A frame driver calls
// SetReleasedKeys once per frame after polling, which turns last frame's
// pressed-but-no-longer-held keys into released keys.
type Status struct {
	pressed  uint32
	previous uint32
	released uint32
	mouse    geom.Vector
	typed    []rune
}

var (
	_ Input     = (*Status)(nil)
	_ TextInput = (*Status)(nil)
)

func NewStatus() *Status { return &Status{} }

func (s *Status) IsKeyPressed(k Key) bool  { return s.pressed&(1<<k) != 0 }
func (s *Status) IsKeyReleased(k Key) bool { return s.released&(1<<k) != 0 }
func (s *Status) MousePosition() geom.Vector {
	return s.mouse
}

func (s *Status) TypedText() []rune { return s.typed }

func (s *Status) SetKeyPressed(k Key)            { s.pressed |= 1 << k }
func (s *Status) AppendText(r ...rune)           { s.typed = append(s.typed, r...) }
func (s *Status) SetMousePosition(p geom.Vector) { s.mouse = p }

// SetReleasedKeys computes released keys from the previous and current frame.
func (s *Status) SetReleasedKeys() {
	s.released = s.previous &^ s.pressed
	s.previous = s.pressed
}

// ClearPressedKeys starts a new polling round. Typed text is dropped too.
func (s *Status) ClearPressedKeys() {
	s.pressed = 0
	s.typed = s.typed[:0]
}

// Press is a test helper: clear, press the given keys, and latch releases.
func (s *Status) Press(keys ...Key) {
	s.ClearPressedKeys()
	for _, k := range keys {
		s.SetKeyPressed(k)
	}
	s.SetReleasedKeys()
}
