// Package input holds the per-frame input snapshot the simulation reads.
// The core only reads it; the window backend is the sole writer.
package input

import "github.com/chimarrao/platformer/internal/geom"

// Key enumerates the keys the game reacts to.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyShift
	KeyEnter
	KeyEscape
	KeyE // collect item
	KeyQ // use item
	KeyF // attack
	KeyBackspace
	MouseLeft
	MouseRight

	keyCount
)

var keyNames = [keyCount]string{
	"Up", "Down", "Left", "Right", "Space", "Shift", "Enter", "Escape",
	"E", "Q", "F", "Backspace", "MouseLeft", "MouseRight",
}

func (k Key) String() string {
	if k >= keyCount {
		return "Unknown"
	}
	return keyNames[k]
}

// AllKeys lists every key a backend should poll.
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Input is the read-only view components receive every frame.
type Input interface {
	IsKeyPressed(Key) bool
	// IsKeyReleased is true during the single frame after a key goes up.
	IsKeyReleased(Key) bool
	MousePosition() geom.Vector
}

// TextInput is implemented by inputs that also carry the characters typed
// during the frame.
type TextInput interface {
	TypedText() []rune
}
