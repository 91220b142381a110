package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/storage"
	"github.com/cory-johannsen/archadium/internal/storage/postgres"
	"github.com/cory-johannsen/archadium/internal/testutil"
)

func setupSaves(t *testing.T) *postgres.SaveRepository {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return postgres.NewSaveRepository(pc.RawPool, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
}

func TestSaveRepository(t *testing.T) {
	repo := setupSaves(t)
	ctx := context.Background()

	t.Run("missing slot", func(t *testing.T) {
		_, err := repo.Load(ctx, "absent")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		c := character.New("Ayla", "forest_path")
		c.AddItem("health_potion")
		c.SetFlag("met_elder")
		c.MarkDefeated("goblin")
		require.NoError(t, repo.Save(ctx, "rt", c))

		got, err := repo.Load(ctx, "rt")
		require.NoError(t, err)
		assert.Equal(t, c, got)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		c := character.New("Ayla", "village_square")
		require.NoError(t, repo.Save(ctx, "up", c))
		c.Gold = 500
		require.NoError(t, repo.Save(ctx, "up", c))

		got, err := repo.Load(ctx, "up")
		require.NoError(t, err)
		assert.Equal(t, 500, got.Gold)
	})
}
