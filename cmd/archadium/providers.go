package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/config"
	"github.com/cory-johannsen/archadium/internal/frontend/console"
	"github.com/cory-johannsen/archadium/internal/frontend/render"
	"github.com/cory-johannsen/archadium/internal/game/combat"
	"github.com/cory-johannsen/archadium/internal/game/command"
	"github.com/cory-johannsen/archadium/internal/game/dice"
	"github.com/cory-johannsen/archadium/internal/game/event"
	"github.com/cory-johannsen/archadium/internal/game/inventory"
	"github.com/cory-johannsen/archadium/internal/game/npc"
	"github.com/cory-johannsen/archadium/internal/game/scene"
	"github.com/cory-johannsen/archadium/internal/game/world"
	"github.com/cory-johannsen/archadium/internal/observability"
	"github.com/cory-johannsen/archadium/internal/scripting"
	"github.com/cory-johannsen/archadium/internal/server"
	"github.com/cory-johannsen/archadium/internal/storage"
	"github.com/cory-johannsen/archadium/internal/storage/file"
	"github.com/cory-johannsen/archadium/internal/storage/postgres"
)

// configPath is the -config flag value.
type configPath string

// App is the assembled game process.
type App struct {
	Config    config.Config
	Logger    *zap.Logger
	Lifecycle *server.Lifecycle
}

const tracerShutdownTimeout = 5 * time.Second

func provideConfig(path configPath) (config.Config, error) {
	cfg, err := config.Load(string(path))
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func provideTracer(ctx context.Context, cfg config.Config, logger *zap.Logger) (trace.Tracer, func(), error) {
	tracer, shutdown, err := observability.SetupTracing(ctx, cfg.Telemetry)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing tracing: %w", err)
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logger.Warn("flushing traces", zap.Error(err))
		}
	}
	return tracer, cleanup, nil
}

func provideRoller(cfg config.Config, logger *zap.Logger) *dice.Roller {
	if cfg.Game.Seed != 0 {
		logger.Info("rolling from a fixed seed", zap.Uint64("seed", cfg.Game.Seed))
		return dice.NewLoggedRoller(dice.NewSeededSource(cfg.Game.Seed), logger)
	}
	return dice.NewLoggedRoller(dice.NewCryptoSource(), logger)
}

func provideItems(cfg config.Config, logger *zap.Logger) (*inventory.Registry, error) {
	return inventory.LoadRegistry(filepath.Join(cfg.Game.ContentDir, "items"), logger)
}

func provideEnemies(cfg config.Config, logger *zap.Logger) (*npc.Registry, error) {
	return npc.LoadRegistry(filepath.Join(cfg.Game.ContentDir, "enemies"), logger)
}

func provideWorld(cfg config.Config, logger *zap.Logger) (*world.Manager, error) {
	mgr, err := world.LoadManager(filepath.Join(cfg.Game.ContentDir, "rooms"), logger)
	if err != nil {
		return nil, err
	}
	if _, ok := mgr.GetRoom(cfg.Game.StartRoom); !ok {
		return nil, fmt.Errorf("start room %q not found", cfg.Game.StartRoom)
	}
	return mgr, nil
}

func provideCommands() *command.Registry {
	return command.DefaultRegistry()
}

// provideStore opens the configured save backend.
//
// Postcondition: The cleanup closes any database pool that was opened.
func provideStore(ctx context.Context, cfg config.Config, tracer trace.Tracer, logger *zap.Logger) (storage.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		status, err := pool.Health(ctx, cfg.Database.HealthTimeout)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("checking save database: %w", err)
		}
		logger.Info("using postgres save store",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.Name),
			zap.Int("slots", status.Slots),
			zap.Int32("conns", status.Conns),
			zap.Duration("latency", status.Latency),
		)
		return postgres.NewSaveRepository(pool.DB(), tracer, logger), pool.Close, nil
	default:
		logger.Info("using file save store", zap.String("dir", cfg.Storage.Dir))
		return file.NewStore(afero.NewOsFs(), cfg.Storage.Dir, tracer, logger), func() {}, nil
	}
}

// provideScripts loads the Lua hooks and subscribes them to battle events.
func provideScripts(cfg config.Config, roller *dice.Roller, bus *event.Bus, logger *zap.Logger) (*scripting.Manager, func(), error) {
	m := scripting.NewManager(roller, logger)
	if cfg.Scripting.Dir != "" {
		if err := m.Load(cfg.Scripting.Dir, cfg.Scripting.InstructionLimit); err != nil {
			return nil, nil, err
		}
	}
	m.Attach(bus)
	logger.Info("battle scripts attached", zap.Bool("loaded", m.Loaded()))
	return m, m.Close, nil
}

func provideEngine(cfg config.Config, items *inventory.Registry, roller *dice.Roller, bus *event.Bus, tracer trace.Tracer, logger *zap.Logger) *combat.Engine {
	return combat.NewEngine(combat.EngineConfig{
		Items:           items,
		Roller:          roller,
		Bus:             bus,
		Logger:          logger,
		Tracer:          tracer,
		CascadeLevelUps: cfg.Progression.CascadeLevelUps,
	})
}

func provideConsole(cfg config.Config) (*console.Console, func()) {
	var opts []console.Option
	if cfg.Game.Pacing {
		opts = append(opts, console.WithPacing(cfg.Game.TypewriterDelay))
	}
	c := console.New(os.Stdin, os.Stdout, opts...)
	c.NotifyInterrupt()
	return c, c.Close
}

func provideRenderer() *render.Renderer {
	return render.New(lipgloss.NewRenderer(os.Stdout))
}

func provideArt(cfg config.Config) *render.ArtLibrary {
	return render.NewArtLibrary(afero.NewOsFs(), filepath.Join(cfg.Game.ContentDir, "art"))
}

func provideGame(
	cfg config.Config,
	items *inventory.Registry,
	enemies *npc.Registry,
	mgr *world.Manager,
	commands *command.Registry,
	store storage.Store,
	engine *combat.Engine,
	scripts *scripting.Manager,
	c *console.Console,
	r *render.Renderer,
	art *render.ArtLibrary,
	logger *zap.Logger,
) *scene.Game {
	g := &scene.Game{
		Settings: scene.Settings{
			StartRoom:   cfg.Game.StartRoom,
			DefaultName: cfg.Game.DefaultName,
			SaveSlot:    cfg.Game.SaveSlot,
		},
		Items:    items,
		Enemies:  enemies,
		World:    mgr,
		Commands: commands,
		Store:    store,
		Engine:   engine,
		Console:  c,
		Render:   r,
		Art:      art,
		Logger:   logger,
	}
	g.BindScripts(scripts)
	return g
}

// provideLifecycle runs the game loop as the process's main service. The
// console owns SIGINT, so only SIGTERM ends the lifecycle from outside.
func provideLifecycle(g *scene.Game, c *console.Console, logger *zap.Logger) *server.Lifecycle {
	lc := server.NewLifecycle(logger, syscall.SIGTERM)
	loop := scene.NewGameLoop(g)
	lc.Add("game", &server.FuncService{
		StartFn: func(ctx context.Context) error {
			err := loop.Run(ctx, scene.Title)
			if errors.Is(err, context.Canceled) {
				logger.Info("game stopped by signal", zap.String("scene", loop.Current()))
				return nil
			}
			return err
		},
		StopFn: c.Close,
	})
	return lc
}
