package ebitenrender

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
)

// ErrQuit ends the window loop without reporting a failure.
var ErrQuit = errors.New("quit requested")

// FrameFunc advances the simulation by one frame.
type FrameFunc func(dt time.Duration, in input.Input) error

// Window adapts a frame function and a renderer pool to ebiten.Game.
type Window struct {
	frame    FrameFunc
	pool     *graphics.Pool
	renderer *Renderer
	status   *input.Status
	width    int
	height   int
}

func NewWindow(frame FrameFunc, pool *graphics.Pool, renderer *Renderer, width, height int) *Window {
	return &Window{
		frame:    frame,
		pool:     pool,
		renderer: renderer,
		status:   input.NewStatus(),
		width:    width,
		height:   height,
	}
}

func (w *Window) Update() error {
	PollInput(w.status)
	w.status.SetMousePosition(w.status.MousePosition().Add(w.renderer.Offset()))
	dt := time.Second / time.Duration(ebiten.TPS())
	if err := w.frame(dt, w.status); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.renderer.SetTarget(screen)
	w.pool.RenderAll()
}

func (w *Window) Layout(int, int) (int, int) {
	return w.width, w.height
}

// Run opens the window and blocks until it is closed or the frame quits.
func Run(title string, w *Window) error {
	ebiten.SetWindowSize(w.width, w.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(w)
}
