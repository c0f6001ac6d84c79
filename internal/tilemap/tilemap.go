// Package tilemap holds the level grid and turns solid tiles into static
// obstacle owners.
package tilemap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/chimarrao/platformer/internal/core/ecs"
	"github.com/chimarrao/platformer/internal/geom"
	"github.com/chimarrao/platformer/internal/graphics"
)

var ErrInvalidMap = errors.New("invalid tile map")

type TileType uint8

const (
	Empty TileType = iota
	Grass
	Dirt
	Stone
)

var tileGlyphs = [...]byte{Empty: '.', Grass: 'G', Dirt: 'D', Stone: 'S'}
var tileNames = [...]string{Empty: "empty", Grass: "grass", Dirt: "dirt", Stone: "stone"}

func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return fmt.Sprintf("TileType(%d)", t)
}

func (t TileType) IsSolid() bool { return t != Empty }

// IsValid reports whether t is one of the known tile types.
func (t TileType) IsValid() bool { return int(t) < len(tileNames) }

// Texture is the texture path drawn for a solid tile.
func (t TileType) Texture() graphics.TexturePath {
	return graphics.TexturePath("tiles/" + t.String() + ".png")
}

func tileFromGlyph(g byte) (TileType, bool) {
	for i, c := range tileGlyphs {
		if c == g {
			return TileType(i), true
		}
	}
	return Empty, false
}

// TileMap is a row-major grid of tiles.
type TileMap struct {
	Name     string
	Width    int
	Height   int
	TileSize float64
	Tiles    []TileType
}

func New(name string, width, height int, tileSize float64) *TileMap {
	return &TileMap{
		Name:     name,
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		Tiles:    make([]TileType, width*height),
	}
}

// FromRows parses one string per row, one glyph per tile
// ('.' empty, 'G' grass, 'D' dirt, 'S' stone).
func FromRows(name string, tileSize float64, rows []string) (*TileMap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no rows: %w", name, ErrInvalidMap)
	}
	m := New(name, len(rows[0]), len(rows), tileSize)
	for y, row := range rows {
		if len(row) != m.Width {
			return nil, fmt.Errorf("%s: row %d has %d tiles, want %d: %w", name, y, len(row), m.Width, ErrInvalidMap)
		}
		for x := 0; x < len(row); x++ {
			t, ok := tileFromGlyph(row[x])
			if !ok {
				return nil, fmt.Errorf("%s: row %d col %d: unknown tile %q: %w", name, y, x, row[x], ErrInvalidMap)
			}
			m.Tiles[y*m.Width+x] = t
		}
	}
	return m, m.Validate()
}

func (m *TileMap) Clone() *TileMap {
	c := *m
	c.Tiles = append([]TileType(nil), m.Tiles...)
	return &c
}

// Rows renders the grid back into glyph rows.
func (m *TileMap) Rows() []string {
	rows := make([]string, m.Height)
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		sb.Reset()
		for x := 0; x < m.Width; x++ {
			t := m.Tiles[y*m.Width+x]
			if int(t) < len(tileGlyphs) {
				sb.WriteByte(tileGlyphs[t])
			} else {
				sb.WriteByte('?')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func (m *TileMap) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%s: size %dx%d: %w", m.Name, m.Width, m.Height, ErrInvalidMap)
	}
	if m.TileSize <= 0 {
		return fmt.Errorf("%s: tile size %g: %w", m.Name, m.TileSize, ErrInvalidMap)
	}
	if len(m.Tiles) != m.Width*m.Height {
		return fmt.Errorf("%s: %d tiles for %dx%d: %w", m.Name, len(m.Tiles), m.Width, m.Height, ErrInvalidMap)
	}
	for i, t := range m.Tiles {
		if !t.IsValid() {
			return fmt.Errorf("%s: tile %d: unknown type %d: %w", m.Name, i, uint8(t), ErrInvalidMap)
		}
	}
	return nil
}

func (m *TileMap) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

func (m *TileMap) Tile(x, y int) (TileType, bool) {
	if !m.inside(x, y) {
		return Empty, false
	}
	return m.Tiles[y*m.Width+x], true
}

func (m *TileMap) SetTile(x, y int, t TileType) bool {
	if !m.inside(x, y) {
		return false
	}
	m.Tiles[y*m.Width+x] = t
	return true
}

// Bounds is the world-space box covered by the grid.
func (m *TileMap) Bounds() geom.Box {
	return geom.NewBox(0, 0, float64(m.Width)*m.TileSize, float64(m.Height)*m.TileSize)
}

// ObstacleFactory builds one static obstacle owner.
type ObstacleFactory interface {
	CreateObstacle(position, size geom.Vector, tile TileType) (*ecs.ComponentOwner, error)
}

// Obstacles creates an owner per solid tile, row by row. On failure the
// owners built so far are destroyed.
func (m *TileMap) Obstacles(f ObstacleFactory) ([]*ecs.ComponentOwner, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	size := geom.Vec(m.TileSize, m.TileSize)
	var owners []*ecs.ComponentOwner
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			t := m.Tiles[y*m.Width+x]
			if !t.IsSolid() {
				continue
			}
			pos := geom.Vec(float64(x)*m.TileSize, float64(y)*m.TileSize)
			o, err := f.CreateObstacle(pos, size, t)
			if err != nil {
				for _, built := range owners {
					built.Destroy()
				}
				return nil, fmt.Errorf("%s: tile (%d,%d): %w", m.Name, x, y, err)
			}
			owners = append(owners, o)
		}
	}
	return owners, nil
}

// Checksum identifies the map content. Two maps with equal checksums have
// the same size, tile size and tiles; the name is not part of it.
func (m *TileMap) Checksum() [32]byte {
	h, _ := blake2b.New256(nil)
	var hdr [24]byte
	binary.LittleEndian.PutUint64(hdr[0:], uint64(m.Width))
	binary.LittleEndian.PutUint64(hdr[8:], uint64(m.Height))
	binary.LittleEndian.PutUint64(hdr[16:], uint64(m.TileSize*1000))
	h.Write(hdr[:])
	buf := make([]byte, len(m.Tiles))
	for i, t := range m.Tiles {
		buf[i] = byte(t)
	}
	h.Write(buf)
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// NormalizeName turns a display name into a storage key: NFC, lower case,
// trimmed, inner whitespace runs collapsed to '-'.
func NormalizeName(name string) string {
	s := cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(name)))
	return strings.Join(strings.Fields(s), "-")
}
