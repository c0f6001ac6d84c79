package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/chimarrao/platformer/internal/config"
	"github.com/chimarrao/platformer/internal/data"
	"github.com/chimarrao/platformer/internal/game"
	"github.com/chimarrao/platformer/internal/graphics"
	"github.com/chimarrao/platformer/internal/graphics/ebitenrender"
	"github.com/chimarrao/platformer/internal/input"
	"github.com/chimarrao/platformer/internal/persist"
	"github.com/chimarrao/platformer/internal/scripting"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(name string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             Chimarrao  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mgame:\033[0m %s\n\n", name)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main game logic ───────────────────────────────────────────────

func run() error {
	cfgPath := flag.String("config", "config/game.toml", "config file (overridden by "+config.EnvPath+")")
	headless := flag.Bool("headless", false, "run without a window")
	flag.Parse()

	// 1. Load config
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *headless {
		cfg.Window.Headless = true
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Game.Name)

	// 3. Static data
	printSection("data")
	animators, err := data.LoadAnimatorSettings(filepath.Join(cfg.Paths.DataDir, "animators.yaml"))
	if err != nil {
		return fmt.Errorf("animators: %w", err)
	}
	printStat("animators", animators.Count())

	templates, err := data.LoadCharacterTemplates(filepath.Join(cfg.Paths.DataDir, "templates.yaml"))
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	printStat("templates", templates.Count())

	level, err := data.LoadLevel(cfg.Paths.MapFile)
	if err != nil {
		return fmt.Errorf("level: %w", err)
	}

	// 4. Stored maps override the YAML copy
	var store game.MapStore = data.LevelDir(cfg.Paths.MapsDir)
	if cfg.Database.Enabled {
		db, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := persist.NewMapRepo(db)
		if level, err = loadStoredLevel(repo, level, log); err != nil {
			return err
		}
		store = repo
	}
	printOK(fmt.Sprintf("map %s (%dx%d)", level.Map.Name, level.Map.Width, level.Map.Height))

	// 5. Lua formulas
	scripts, err := scripting.NewEngine(cfg.Paths.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	printOK("lua scripts loaded")
	fmt.Println()

	if cfg.Window.Headless {
		return runHeadless(cfg, level, animators, templates, scripts, log)
	}
	return runWindow(cfg, level, store, animators, templates, scripts, log)
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*persist.DB, error) {
	printSection("database")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	printOK("PostgreSQL connected")

	if err := persist.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	printOK("migrations applied")
	return db, nil
}

func loadStoredLevel(repo *persist.MapRepo, fallback *data.Level, log *zap.Logger) (*data.Level, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stored, err := repo.Load(ctx, fallback.Map.Name)
	if errors.Is(err, persist.ErrMapNotFound) {
		log.Info("map not stored, using yaml", zap.String("map", fallback.Map.Name))
		return fallback, nil
	}
	if err != nil {
		return nil, err
	}
	printOK("map loaded from database")
	return stored, nil
}

// runWindow starts on the main menu; the states manager moves between the
// game, the map editor and their menus until Exit or the window closes.
func runWindow(cfg *config.Config, level *data.Level, store game.MapStore, animators *data.AnimatorSettingsTable, templates *data.TemplateTable, scripts *scripting.Engine, log *zap.Logger) error {
	renderer := ebitenrender.NewRenderer(cfg.Window.Width, cfg.Window.Height)
	var textures graphics.TextureStorage = graphics.PlaceholderTextureStorage{Width: 32, Height: 32}
	if cfg.Paths.Textures != "" {
		textures = ebitenrender.NewTextureStorage(cfg.Paths.Textures)
	}
	pool := graphics.NewPool(renderer, textures)
	pool.SetBackground(graphics.RGB(120, 180, 230))

	screens := game.NewScreens(game.Deps{
		Config:    cfg,
		Pool:      pool,
		Animators: animators,
		Templates: templates,
		Scripts:   scripts,
		Log:       log,
	}, level, store)
	states := game.NewStatesManager(screens.Builders(), log)
	if err := states.Push(game.Menu); err != nil {
		return err
	}
	defer states.Close()

	printSection("ready")
	printReady(fmt.Sprintf("window %dx%d", cfg.Window.Width, cfg.Window.Height))
	fmt.Println()

	frames := uint64(0)
	frame := func(dt time.Duration, in input.Input) error {
		running, err := states.Update(dt, in)
		if err != nil {
			log.Warn("state change failed", zap.Error(err))
		}
		if !running {
			return ebitenrender.ErrQuit
		}
		frames++
		switch top := states.Top().(type) {
		case *game.GameState:
			renderer.Follow(top.Player().Position)
		case *game.EditorState:
			renderer.Follow(top.ViewCenter)
		default:
			renderer.Follow(nil)
		}
		return nil
	}
	if err := ebitenrender.Run(cfg.Window.Title, ebitenrender.NewWindow(frame, pool, renderer, cfg.Window.Width, cfg.Window.Height)); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	log.Info("window closed", zap.Uint64("frames", frames))
	return nil
}

// runHeadless steps the simulation on a ticker until a signal arrives, the
// player dies or max_frames is reached.
func runHeadless(cfg *config.Config, level *data.Level, animators *data.AnimatorSettingsTable, templates *data.TemplateTable, scripts *scripting.Engine, log *zap.Logger) error {
	pool := graphics.NewPool(graphics.NewHeadlessRenderer(), graphics.PlaceholderTextureStorage{Width: 32, Height: 32})
	state, err := game.NewGameState(game.Deps{
		Config:          cfg,
		Pool:            pool,
		Animators:       animators,
		Templates:       templates,
		Scripts:         scripts,
		Log:             log,
		RenderEachFrame: true,
	}, level)
	if err != nil {
		return fmt.Errorf("game state: %w", err)
	}
	defer state.Close()

	printSection("ready")
	printReady(fmt.Sprintf("headless loop (tick: %s)", cfg.Game.TickRate))
	fmt.Println()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(sigCtx)
	done := make(chan struct{})

	g.Go(func() error {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received")
		case <-done:
		}
		return nil
	})
	g.Go(func() error {
		defer close(done)
		ticker := time.NewTicker(cfg.Game.TickRate)
		defer ticker.Stop()

		in := input.NewStatus()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				state.Update(cfg.Game.TickRate, in)
				if state.IsOver() {
					log.Info("game over", zap.Uint64("frames", state.Frames()))
					return nil
				}
				if cfg.Game.MaxFrames > 0 && state.Frames() >= uint64(cfg.Game.MaxFrames) {
					log.Info("frame limit reached", zap.Uint64("frames", state.Frames()))
					return nil
				}
			}
		}
	})
	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("game stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
