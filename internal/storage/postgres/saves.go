package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/storage"
)

// SaveRepository stores save slots in the saves table.
type SaveRepository struct {
	db     *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

// NewSaveRepository creates a SaveRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool with the saves
// migration applied; tracer and logger must be non-nil.
func NewSaveRepository(db *pgxpool.Pool, tracer trace.Tracer, logger *zap.Logger) *SaveRepository {
	return &SaveRepository{db: db, tracer: tracer, logger: logger}
}

// Save upserts the snapshot of c under slot.
//
// Postcondition: Exactly one row exists for slot holding c.
func (r *SaveRepository) Save(ctx context.Context, slot string, c *character.Character) error {
	ctx, span := r.tracer.Start(ctx, "storage.postgres.save", trace.WithAttributes(attribute.String("save.slot", slot)))
	defer span.End()

	data, err := storage.Marshal(c)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO saves (slot, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE
		SET data = EXCLUDED.data, updated_at = NOW()`,
		slot, data,
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("upserting save %q: %w", slot, err)
	}
	r.logger.Info("game saved", zap.String("slot", slot), zap.String("driver", "postgres"))
	return nil
}

// Load reads the snapshot stored under slot.
//
// Postcondition: Returns storage.ErrNotFound if no row exists for slot.
func (r *SaveRepository) Load(ctx context.Context, slot string) (*character.Character, error) {
	ctx, span := r.tracer.Start(ctx, "storage.postgres.load", trace.WithAttributes(attribute.String("save.slot", slot)))
	defer span.End()

	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM saves WHERE slot = $1`, slot).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("loading save %q: %w", slot, err)
	}
	c, err := storage.Unmarshal(data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("save %q: %w", slot, err)
	}
	r.logger.Info("game loaded", zap.String("slot", slot), zap.String("driver", "postgres"))
	return c, nil
}
