// Package file stores save slots as JSON documents in a directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/storage"
)

// Store keeps each slot at <dir>/<slot>.json.
type Store struct {
	fs     afero.Fs
	dir    string
	tracer trace.Tracer
	logger *zap.Logger
}

// NewStore creates a Store rooted at dir on fs.
//
// Precondition: fs, tracer, and logger must be non-nil; dir must be non-empty.
func NewStore(fs afero.Fs, dir string, tracer trace.Tracer, logger *zap.Logger) *Store {
	return &Store{fs: fs, dir: dir, tracer: tracer, logger: logger}
}

// Path returns the file backing slot.
func (s *Store) Path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

// Save writes c to slot, creating the directory if needed.
//
// Postcondition: The slot file holds the full snapshot of c.
func (s *Store) Save(ctx context.Context, slot string, c *character.Character) error {
	_, span := s.tracer.Start(ctx, "storage.file.save", trace.WithAttributes(attribute.String("save.slot", slot)))
	defer span.End()

	data, err := storage.Marshal(c)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		span.RecordError(err)
		return fmt.Errorf("creating save dir %q: %w", s.dir, err)
	}
	path := s.Path(slot)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		span.RecordError(err)
		return fmt.Errorf("writing save %q: %w", path, err)
	}
	s.logger.Info("game saved", zap.String("slot", slot), zap.String("path", path))
	return nil
}

// Load reads slot.
//
// Postcondition: Returns storage.ErrNotFound when the slot file does not exist.
func (s *Store) Load(ctx context.Context, slot string) (*character.Character, error) {
	_, span := s.tracer.Start(ctx, "storage.file.load", trace.WithAttributes(attribute.String("save.slot", slot)))
	defer span.End()

	path := s.Path(slot)
	data, err := afero.ReadFile(s.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("reading save %q: %w", path, err)
	}
	c, err := storage.Unmarshal(data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save %q: %w", path, err)
	}
	s.logger.Info("game loaded", zap.String("slot", slot), zap.String("path", path))
	return c, nil
}
