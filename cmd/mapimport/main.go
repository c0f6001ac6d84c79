// mapimport copies YAML levels into PostgreSQL, or exports a stored level
// back to YAML.
//
//	mapimport [-config game.toml] import <level.yaml>...
//	mapimport [-config game.toml] export <name> <output.yaml>
//	mapimport [-config game.toml] list
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/chimarrao/platformer/internal/config"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/persist"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: mapimport [-config file] import <level.yaml>... | export <name> <output.yaml> | list")
}

func run() error {
	cfgPath := flag.String("config", "config/game.toml", "config file")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	if err := persist.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	repo := persist.NewMapRepo(db)

	switch args[0] {
	case "import":
		if len(args) < 2 {
			usage()
			os.Exit(2)
		}
		for _, path := range args[1:] {
			level, err := data.LoadLevel(path)
			if err != nil {
				return err
			}
			changed, err := repo.Save(ctx, level)
			if err != nil {
				return err
			}
			if changed {
				fmt.Printf("imported %s from %s\n", level.Map.Name, path)
			} else {
				fmt.Printf("unchanged %s\n", level.Map.Name)
			}
		}
	case "export":
		if len(args) != 3 {
			usage()
			os.Exit(2)
		}
		level, err := repo.Load(ctx, args[1])
		if err != nil {
			return err
		}
		if err := data.SaveLevel(args[2], level); err != nil {
			return err
		}
		fmt.Printf("exported %s to %s\n", level.Map.Name, args[2])
	case "list":
		names, err := repo.List(ctx)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
	default:
		usage()
		os.Exit(2)
	}
	return nil
}
