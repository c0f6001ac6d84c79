package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"

	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/tilemap"
)

var ErrMapNotFound = errors.New("tile map not found")

// MapRow is one stored level, keyed by its normalized name.
type MapRow struct {
	Name        string
	DisplayName string
	Width       int
	Height      int
	TileSize    float64
	Tiles       []byte
	Spawns      []byte
	Checksum    []byte
}

type MapRepo struct {
	db *DB
}

func NewMapRepo(db *DB) *MapRepo {
	return &MapRepo{db: db}
}

// Save upserts level. It reports false when the stored copy already has
// the same content.
func (r *MapRepo) Save(ctx context.Context, level *data.Level) (bool, error) {
	row, err := levelToRow(level)
	if err != nil {
		return false, err
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var stored []byte
	err = tx.QueryRow(ctx, `SELECT checksum FROM tile_maps WHERE name = $1 FOR UPDATE`, row.Name).Scan(&stored)
	switch {
	case err == nil && bytes.Equal(stored, row.Checksum):
		return false, nil
	case err != nil && !errors.Is(err, pgx.ErrNoRows):
		return false, fmt.Errorf("load checksum %s: %w", row.Name, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO tile_maps (name, display_name, width, height, tile_size, tiles, spawns, checksum, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		 ON CONFLICT (name) DO UPDATE SET
		   display_name = EXCLUDED.display_name,
		   width = EXCLUDED.width,
		   height = EXCLUDED.height,
		   tile_size = EXCLUDED.tile_size,
		   tiles = EXCLUDED.tiles,
		   spawns = EXCLUDED.spawns,
		   checksum = EXCLUDED.checksum,
		   updated_at = now()`,
		row.Name, row.DisplayName, row.Width, row.Height, row.TileSize, row.Tiles, row.Spawns, row.Checksum,
	)
	if err != nil {
		return false, fmt.Errorf("save map %s: %w", row.Name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit map %s: %w", row.Name, err)
	}
	r.db.log.Info("tile map saved", zap.String("name", row.Name), zap.Int("width", row.Width), zap.Int("height", row.Height))
	return true, nil
}

// Load returns the level stored under name (normalized before lookup).
func (r *MapRepo) Load(ctx context.Context, name string) (*data.Level, error) {
	var row MapRow
	err := r.db.Pool.QueryRow(ctx,
		`SELECT name, display_name, width, height, tile_size, tiles, spawns, checksum
		 FROM tile_maps WHERE name = $1`, tilemap.NormalizeName(name),
	).Scan(&row.Name, &row.DisplayName, &row.Width, &row.Height, &row.TileSize, &row.Tiles, &row.Spawns, &row.Checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrMapNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load map %s: %w", name, err)
	}
	return rowToLevel(row)
}

// List returns stored map names in order.
func (r *MapRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name FROM tile_maps ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (r *MapRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tile_maps WHERE name = $1`, tilemap.NormalizeName(name))
	if err != nil {
		return fmt.Errorf("delete map %s: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", name, ErrMapNotFound)
	}
	return nil
}

func levelToRow(level *data.Level) (MapRow, error) {
	m := level.Map
	if err := m.Validate(); err != nil {
		return MapRow{}, err
	}
	spawns := level.Spawns
	if spawns == nil {
		spawns = []data.Spawn{}
	}
	spawnsJSON, err := json.Marshal(spawns)
	if err != nil {
		return MapRow{}, fmt.Errorf("encode spawns: %w", err)
	}
	tiles := make([]byte, len(m.Tiles))
	for i, t := range m.Tiles {
		tiles[i] = byte(t)
	}
	sum := m.Checksum()
	checksum := blake2b.Sum256(append(sum[:], spawnsJSON...))

	return MapRow{
		Name:        tilemap.NormalizeName(m.Name),
		DisplayName: m.Name,
		Width:       m.Width,
		Height:      m.Height,
		TileSize:    m.TileSize,
		Tiles:       tiles,
		Spawns:      spawnsJSON,
		Checksum:    checksum[:],
	}, nil
}

func rowToLevel(row MapRow) (*data.Level, error) {
	m := tilemap.New(row.DisplayName, row.Width, row.Height, row.TileSize)
	if len(row.Tiles) != len(m.Tiles) {
		return nil, fmt.Errorf("%s: %d tiles stored for %dx%d: %w", row.Name, len(row.Tiles), row.Width, row.Height, tilemap.ErrInvalidMap)
	}
	for i, b := range row.Tiles {
		t := tilemap.TileType(b)
		if !t.IsValid() {
			return nil, fmt.Errorf("%s: tile %d: unknown type %d: %w", row.Name, i, b, tilemap.ErrInvalidMap)
		}
		m.Tiles[i] = t
	}
	var spawns []data.Spawn
	if len(row.Spawns) > 0 {
		if err := json.Unmarshal(row.Spawns, &spawns); err != nil {
			return nil, fmt.Errorf("decode spawns %s: %w", row.Name, err)
		}
	}
	return &data.Level{Map: m, Spawns: spawns}, nil
}
