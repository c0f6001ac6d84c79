package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/input"
)

var keyBindings = map[input.Key][]ebiten.Key{
	input.KeyUp:     {ebiten.KeyArrowUp, ebiten.KeyW},
	input.KeyDown:   {ebiten.KeyArrowDown, ebiten.KeyS},
	input.KeyLeft:   {ebiten.KeyArrowLeft, ebiten.KeyA},
	input.KeyRight:  {ebiten.KeyArrowRight, ebiten.KeyD},
	input.KeySpace:  {ebiten.KeySpace},
	input.KeyShift:  {ebiten.KeyShift},
	input.KeyEnter:  {ebiten.KeyEnter},
	input.KeyEscape: {ebiten.KeyEscape},
	input.KeyE:      {ebiten.KeyE},
	input.KeyQ:      {ebiten.KeyQ},
	input.KeyF:      {ebiten.KeyF},

	input.KeyBackspace: {ebiten.KeyBackspace},
}

var mouseBindings = map[input.Key]ebiten.MouseButton{
	input.MouseLeft:  ebiten.MouseButtonLeft,
	input.MouseRight: ebiten.MouseButtonRight,
}

// PollInput refreshes status from ebiten's current keyboard and mouse state.
func PollInput(status *input.Status) {
	status.ClearPressedKeys()
	status.AppendText(ebiten.AppendInputChars(nil)...)
	for key, bound := range keyBindings {
		for _, k := range bound {
			if ebiten.IsKeyPressed(k) {
				status.SetKeyPressed(key)
				break
			}
		}
	}
	for key, button := range mouseBindings {
		if ebiten.IsMouseButtonPressed(button) {
			status.SetKeyPressed(key)
		}
	}
	mx, my := ebiten.CursorPosition()
	status.SetMousePosition(geom.Vec(float64(mx), float64(my)))
	status.SetReleasedKeys()
}
