package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/config"
	"github.com/cory-johannsen/archadium/internal/game/event"
	"github.com/cory-johannsen/archadium/internal/observability"
	"github.com/cory-johannsen/archadium/internal/storage/file"
	"github.com/cory-johannsen/archadium/internal/storage/postgres"
	"github.com/cory-johannsen/archadium/internal/testutil"
)

const testRooms = `rooms:
  - id: village_square
    name: Village Square
    description: A quiet square.
`

func writeRooms(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "rooms"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rooms", "village.yaml"), []byte(testRooms), 0o644))
	return dir
}

func TestProvideConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := provideConfig(configPath(filepath.Join(t.TempDir(), "absent.yaml")))
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestProvideWorld(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.ContentDir = writeRooms(t)

	mgr, err := provideWorld(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, mgr.RoomCount())
}

func TestProvideWorld_MissingStartRoom(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.ContentDir = writeRooms(t)
	cfg.Game.StartRoom = "nowhere"

	_, err := provideWorld(cfg, zap.NewNop())
	assert.ErrorContains(t, err, `start room "nowhere" not found`)
}

func TestProvideStore_FileDriver(t *testing.T) {
	cfg := config.Defaults()
	cfg.Storage.Dir = t.TempDir()

	store, cleanup, err := provideStore(context.Background(), cfg, observability.NoopTracer(), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &file.Store{}, store)
}

func TestProvideRegistries_MissingDirsAreEmpty(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.ContentDir = writeRooms(t)
	logger := zap.NewNop()

	items, err := provideItems(cfg, logger)
	require.NoError(t, err)
	enemies, err := provideEnemies(cfg, logger)
	require.NoError(t, err)
	mgr, err := provideWorld(cfg, logger)
	require.NoError(t, err)

	assert.Equal(t, 0, items.Len())
	assert.Equal(t, 0, enemies.Len())
	assert.Equal(t, 1, mgr.RoomCount())
}

func TestShippedContent(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.ContentDir = filepath.Join("..", "..", "content")
	cfg.Scripting.Dir = filepath.Join(cfg.Game.ContentDir, "scripts")
	logger := zap.NewNop()

	items, err := provideItems(cfg, logger)
	require.NoError(t, err)
	enemies, err := provideEnemies(cfg, logger)
	require.NoError(t, err)
	mgr, err := provideWorld(cfg, logger)
	require.NoError(t, err)

	assert.Empty(t, mgr.DanglingExits())
	for _, room := range mgr.AllRooms() {
		for _, id := range room.Items {
			_, ok := items.Item(id)
			assert.True(t, ok, "room %s holds unknown item %s", room.ID, id)
		}
		for _, id := range room.Enemies {
			_, ok := enemies.Template(id)
			assert.True(t, ok, "room %s holds unknown enemy %s", room.ID, id)
		}
	}
	for _, def := range items.All() {
		if def.IsConsumable() {
			assert.Positive(t, def.HealAmount, "consumable %s heals nothing", def.ID)
		}
	}

	scripts, cleanup, err := provideScripts(cfg, provideRoller(cfg, logger), event.NewBus(), logger)
	require.NoError(t, err)
	defer cleanup()
	assert.True(t, scripts.Loaded())
}

func TestProvideStore_PostgresDriver(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	cfg := config.Defaults()
	cfg.Storage.Driver = config.DriverPostgres
	cfg.Database = pc.Config

	_, _, err := provideStore(context.Background(), cfg, observability.NoopTracer(), zap.NewNop())
	assert.ErrorContains(t, err, "checking save database", "the saves table must exist before play")

	pc.ApplyMigrations(t)
	store, cleanup, err := provideStore(context.Background(), cfg, observability.NoopTracer(), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &postgres.SaveRepository{}, store)
}

func TestProvideRoller_SeedIsReproducible(t *testing.T) {
	cfg := config.Defaults()
	cfg.Game.Seed = 7
	a := provideRoller(cfg, zap.NewNop())
	b := provideRoller(cfg, zap.NewNop())
	for range 20 {
		require.Equal(t, a.Check("flee", 0.5).Roll, b.Check("flee", 0.5).Roll)
		require.Equal(t, a.Roll("d20", 20), b.Roll("d20", 20))
	}
}
