package inventory

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/content"
)

// Registry holds all loaded item definitions indexed by ID.
// Lookup order for name searches is load order.
type Registry struct {
	items map[string]*ItemDef
	order []string
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*ItemDef)}
}

// Register adds d to the registry, replacing any definition with the same ID.
//
// Precondition: d must not be nil.
// Postcondition: Item(d.ID) returns (d, true); replaced is true iff an earlier definition was overwritten.
func (r *Registry) Register(d *ItemDef) (replaced bool) {
	if _, exists := r.items[d.ID]; exists {
		replaced = true
	} else {
		r.order = append(r.order, d.ID)
	}
	r.items[d.ID] = d
	return replaced
}

// Item returns the ItemDef for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Item(id string) (*ItemDef, bool) {
	d, ok := r.items[id]
	return d, ok
}

// FindByName returns the first item, in load order, whose name contains name
// case-insensitively.
func (r *Registry) FindByName(name string) (*ItemDef, bool) {
	needle := strings.ToLower(name)
	for _, id := range r.order {
		d := r.items[id]
		if strings.Contains(strings.ToLower(d.Name), needle) {
			return d, true
		}
	}
	return nil, false
}

// All returns every registered ItemDef in load order.
func (r *Registry) All() []*ItemDef {
	out := make([]*ItemDef, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out
}

// Len returns the number of registered items.
func (r *Registry) Len() int { return len(r.items) }

// LoadRegistry loads every item file under dir into a new Registry.
// Duplicate IDs are resolved last-loaded-wins and logged at debug.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a populated Registry (empty when dir is absent) or a non-nil error.
func LoadRegistry(dir string, logger *zap.Logger) (*Registry, error) {
	defs, err := content.LoadDir(dir, "items", NewItemDef)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	r := NewRegistry()
	for _, d := range defs {
		if r.Register(d) {
			logger.Debug("duplicate item id, keeping last loaded", zap.String("id", d.ID))
		}
	}
	logger.Info("items loaded", zap.Int("count", r.Len()), zap.String("dir", filepath.Clean(dir)))
	return r, nil
}
