package game

import (
	"math"
	"time"

	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/tilemap"
	"github.com/chimarrao/platformer/internal/timer"
)

// EditorPanSpeed is how fast the arrow keys scroll the editor view, in
// pixels per second.
const EditorPanSpeed = 400.0

var brushes = []tilemap.TileType{tilemap.Grass, tilemap.Dirt, tilemap.Stone}

var tileColors = map[tilemap.TileType]graphics.Color{
	tilemap.Empty: graphics.RGB(200, 220, 240),
	tilemap.Grass: graphics.RGB(70, 160, 60),
	tilemap.Dirt:  graphics.RGB(130, 90, 50),
	tilemap.Stone: graphics.RGB(120, 120, 120),
}

// EditorState paints the tiles of a level: the left mouse button places
// the current brush, the right one clears, Space cycles the brush and the
// arrow keys scroll. Escape opens the editor menu.
type EditorState struct {
	pool   graphics.RendererPool
	level  *data.Level
	cells  []graphics.ID
	label  graphics.ID
	brush  int
	view   geom.Vector // center of the screen, world space
	screen geom.Vector
	leave  *timer.Timer
}

// NewEditorState edits level in place.
func NewEditorState(pool graphics.RendererPool, clock timer.Clock, level *data.Level, screen geom.Vector) *EditorState {
	m := level.Map
	e := &EditorState{
		pool:   pool,
		level:  level,
		cells:  make([]graphics.ID, len(m.Tiles)),
		view:   screen.Scale(0.5),
		screen: screen,
		leave:  timer.New(clock),
	}
	size := geom.Vec(m.TileSize-1, m.TileSize-1)
	for i, t := range m.Tiles {
		pos := geom.Vec(float64(i%m.Width)*m.TileSize, float64(i/m.Width)*m.TileSize)
		e.cells[i] = pool.Acquire(size, pos, tileColors[t], graphics.LayerBackground)
	}
	e.label = pool.AcquireText(e.labelPosition(), "", 14, graphics.Black)
	e.updateLabel()
	return e
}

func (e *EditorState) Update(dt time.Duration, in input.Input) NextState {
	if in.IsKeyPressed(input.KeyEscape) && e.leave.Elapsed() >= LeaveDelay {
		return EditorMenu
	}
	if in.IsKeyReleased(input.KeySpace) {
		e.brush = (e.brush + 1) % len(brushes)
		e.updateLabel()
	}

	step := EditorPanSpeed * dt.Seconds()
	if in.IsKeyPressed(input.KeyLeft) {
		e.view.X -= step
	}
	if in.IsKeyPressed(input.KeyRight) {
		e.view.X += step
	}
	if in.IsKeyPressed(input.KeyUp) {
		e.view.Y -= step
	}
	if in.IsKeyPressed(input.KeyDown) {
		e.view.Y += step
	}
	e.pool.SetPosition(e.label, e.labelPosition())

	switch {
	case in.IsKeyPressed(input.MouseLeft):
		e.paint(in.MousePosition(), brushes[e.brush])
	case in.IsKeyPressed(input.MouseRight):
		e.paint(in.MousePosition(), tilemap.Empty)
	}
	return Same
}

// paint sets the tile under p, a world-space point. Points off the map are
// ignored.
func (e *EditorState) paint(p geom.Vector, t tilemap.TileType) {
	m := e.level.Map
	x, y := int(math.Floor(p.X/m.TileSize)), int(math.Floor(p.Y/m.TileSize))
	if !m.SetTile(x, y, t) {
		return
	}
	e.pool.SetColor(e.cells[y*m.Width+x], tileColors[t])
}

func (e *EditorState) labelPosition() geom.Vector {
	return e.view.Sub(e.screen.Scale(0.5)).Add(geom.Vec(8, 8))
}

func (e *EditorState) updateLabel() {
	e.pool.SetText(e.label, "brush: "+brushes[e.brush].String())
}

func (e *EditorState) Activate() {
	e.setVisible(true)
	e.leave.Restart()
}

func (e *EditorState) Deactivate() { e.setVisible(false) }

func (e *EditorState) setVisible(visible bool) {
	for _, id := range e.cells {
		e.pool.SetVisible(id, visible)
	}
	e.pool.SetVisible(e.label, visible)
}

func (e *EditorState) Close() {
	for _, id := range e.cells {
		e.pool.Release(id)
	}
	e.pool.Release(e.label)
	e.cells = nil
}

// ViewCenter is the world point shown at the center of the screen.
func (e *EditorState) ViewCenter() geom.Vector { return e.view }

func (e *EditorState) Brush() tilemap.TileType { return brushes[e.brush] }
func (e *EditorState) Level() *data.Level      { return e.level }
