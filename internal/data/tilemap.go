package data

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chimarrao/platformer/internal/tilemap"
)

// Spawn places one templated owner in a level.
type Spawn struct {
	Template string  `yaml:"template"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
}

type mapFile struct {
	Name     string   `yaml:"name"`
	TileSize float64  `yaml:"tile_size"`
	Rows     []string `yaml:"rows"`
	Spawns   []Spawn  `yaml:"spawns"`
}

// Level is a tile map plus where its characters and items start.
type Level struct {
	Map    *tilemap.TileMap
	Spawns []Spawn
}

// Clone copies the tiles and spawns, so the copy can be edited freely.
func (l *Level) Clone() *Level {
	return &Level{Map: l.Map.Clone(), Spawns: append([]Spawn(nil), l.Spawns...)}
}

// LoadLevel loads a level from a YAML file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	var f mapFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	m, err := tilemap.FromRows(f.Name, f.TileSize, f.Rows)
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", path, err)
	}
	return &Level{Map: m, Spawns: f.Spawns}, nil
}

// SaveLevel writes a level in the format LoadLevel reads.
func SaveLevel(path string, l *Level) error {
	if err := l.Map.Validate(); err != nil {
		return err
	}
	out, err := yaml.Marshal(mapFile{
		Name:     l.Map.Name,
		TileSize: l.Map.TileSize,
		Rows:     l.Map.Rows(),
		Spawns:   l.Spawns,
	})
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	return nil
}

// LevelDir stores levels as YAML files named after the map. It is the map
// store used when no database is configured.
type LevelDir string

// Save writes l to <dir>/<map name>.yaml. It always reports a change.
func (d LevelDir) Save(_ context.Context, l *Level) (bool, error) {
	if l.Map.Name == "" || strings.ContainsAny(l.Map.Name, `/\`) {
		return false, fmt.Errorf("map name %q: %w", l.Map.Name, tilemap.ErrInvalidMap)
	}
	if err := os.MkdirAll(string(d), 0o755); err != nil {
		return false, fmt.Errorf("create map dir: %w", err)
	}
	if err := SaveLevel(filepath.Join(string(d), l.Map.Name+".yaml"), l); err != nil {
		return false, err
	}
	return true, nil
}
