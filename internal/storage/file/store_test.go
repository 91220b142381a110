package file_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/storage"
	"github.com/cory-johannsen/archadium/internal/storage/file"
)

func newStore(fs afero.Fs, dir string) *file.Store {
	return file.NewStore(fs, dir, noop.NewTracerProvider().Tracer("test"), zap.NewNop())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := newStore(afero.NewMemMapFs(), "saves")
	ctx := context.Background()

	c := character.New("Ayla", "forest_path")
	c.AddItem("iron_sword")
	c.EquippedWeapon = "iron_sword"
	c.SetFlag("met_elder")
	c.MarkDefeated("goblin")
	c.Gold = 42

	require.NoError(t, s.Save(ctx, storage.DefaultSlot, c))
	got, err := s.Load(ctx, storage.DefaultSlot)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestStore_LoadMissingSlot(t *testing.T) {
	s := newStore(afero.NewMemMapFs(), "saves")
	_, err := s.Load(context.Background(), "nothing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := newStore(afero.NewMemMapFs(), "saves")
	ctx := context.Background()

	c := character.New("Ayla", "village_square")
	require.NoError(t, s.Save(ctx, "slot", c))
	c.Gold = 99
	require.NoError(t, s.Save(ctx, "slot", c))

	got, err := s.Load(ctx, "slot")
	require.NoError(t, err)
	assert.Equal(t, 99, got.Gold)
}

func TestStore_Path(t *testing.T) {
	s := newStore(afero.NewMemMapFs(), "saves")
	assert.Equal(t, filepath.Join("saves", "save1.json"), s.Path("save1"))
}

func TestStore_CorruptSave(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := newStore(fs, "saves")
	require.NoError(t, afero.WriteFile(fs, s.Path("bad"), []byte("{not json"), 0o644))

	_, err := s.Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_RealFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "saves")
	s := newStore(afero.NewOsFs(), dir)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "save1", character.New("Hero", "village_square")))
	exists, err := afero.Exists(afero.NewOsFs(), filepath.Join(dir, "save1.json"))
	require.NoError(t, err)
	assert.True(t, exists)
}
