package persist

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/config"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/tilemap"
)

func testLevel(t *testing.T) *data.Level {
	m, err := tilemap.FromRows("Prado del Sur", 32, []string{"..S", "GGG"})
	require.NoError(t, err)
	return &data.Level{Map: m, Spawns: []data.Spawn{{Template: "player", X: 10, Y: 20}}}
}

func TestLevelRowConversion(t *testing.T) {
	level := testLevel(t)

	row, err := levelToRow(level)
	require.NoError(t, err)
	assert.Equal(t, "prado-del-sur", row.Name)
	assert.Equal(t, "Prado del Sur", row.DisplayName)
	assert.Len(t, row.Tiles, 6)
	assert.Len(t, row.Checksum, 32)

	back, err := rowToLevel(row)
	require.NoError(t, err)
	assert.Equal(t, level.Map.Rows(), back.Map.Rows())
	assert.Equal(t, level.Spawns, back.Spawns)

	level.Spawns[0].X = 11
	moved, err := levelToRow(level)
	require.NoError(t, err)
	assert.NotEqual(t, row.Checksum, moved.Checksum, "spawns are part of the checksum")
}

func TestRowToLevelRejectsShortTiles(t *testing.T) {
	row, err := levelToRow(testLevel(t))
	require.NoError(t, err)
	row.Tiles = row.Tiles[:4]

	_, err = rowToLevel(row)
	assert.ErrorIs(t, err, tilemap.ErrInvalidMap)
}

func TestRowToLevelRejectsUnknownTiles(t *testing.T) {
	row, err := levelToRow(testLevel(t))
	require.NoError(t, err)
	row.Tiles[2] = 200

	_, err = rowToLevel(row)
	assert.ErrorIs(t, err, tilemap.ErrInvalidMap)
}

// TestMapRepo needs a scratch PostgreSQL database.
func TestMapRepo(t *testing.T) {
	dsn := os.Getenv("CHIMARRAO_TEST_DSN")
	if dsn == "" {
		t.Skip("CHIMARRAO_TEST_DSN not set")
	}
	ctx := context.Background()
	cfg := config.Default().Database
	cfg.DSN = dsn

	db, err := NewDB(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, RunMigrations(ctx, db))

	repo := NewMapRepo(db)
	_ = repo.Delete(ctx, "Prado del Sur")

	level := testLevel(t)
	saved, err := repo.Save(ctx, level)
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = repo.Save(ctx, level)
	require.NoError(t, err)
	assert.False(t, saved, "unchanged content is skipped")

	got, err := repo.Load(ctx, "PRADO  del sur")
	require.NoError(t, err)
	assert.Equal(t, level.Map.Checksum(), got.Map.Checksum())

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "prado-del-sur")

	require.NoError(t, repo.Delete(ctx, "prado del sur"))
	_, err = repo.Load(ctx, "prado del sur")
	assert.ErrorIs(t, err, ErrMapNotFound)
}
