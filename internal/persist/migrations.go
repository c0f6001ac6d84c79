package persist

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Schema for stored tile maps. Files are numbered goose migrations.
//
//go:embed migrations/*.sql
var schema embed.FS

// gooseLog routes goose progress lines into the database logger.
type gooseLog struct{ log *zap.SugaredLogger }

func (g gooseLog) Printf(format string, v ...any) { g.log.Infof(format, v...) }
func (g gooseLog) Fatalf(format string, v ...any) { g.log.Fatalf(format, v...) }

// RunMigrations brings the map schema up to date and logs the version it
// ended on.
func RunMigrations(ctx context.Context, db *DB) error {
	goose.SetLogger(gooseLog{log: db.log.Named("goose").Sugar()})
	goose.SetBaseFS(schema)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migrate map schema: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	db.log.Info("map schema ready", zap.Int64("version", version))
	return nil
}
