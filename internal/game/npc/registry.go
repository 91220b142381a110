package npc

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/content"
)

// Registry holds enemy templates indexed by ID.
type Registry struct {
	templates map[string]*Template
	order     []string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Register adds tmpl, replacing any template with the same ID.
//
// Precondition: tmpl must not be nil.
// Postcondition: replaced is true iff an earlier template was overwritten.
func (r *Registry) Register(tmpl *Template) (replaced bool) {
	if _, exists := r.templates[tmpl.ID]; exists {
		replaced = true
	} else {
		r.order = append(r.order, tmpl.ID)
	}
	r.templates[tmpl.ID] = tmpl
	return replaced
}

// Template returns the template for id and whether it was found.
func (r *Registry) Template(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// Spawn creates a fresh Instance of the template id with a new unique instance ID.
//
// Postcondition: ok is false iff id is not registered; the template is never mutated.
func (r *Registry) Spawn(id string) (*Instance, bool) {
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, false
	}
	return NewInstance(uuid.NewString(), tmpl), true
}

// FindByName returns the first template, in load order, whose name contains
// name case-insensitively.
func (r *Registry) FindByName(name string) (*Template, bool) {
	needle := strings.ToLower(name)
	for _, id := range r.order {
		t := r.templates[id]
		if strings.Contains(strings.ToLower(t.Name), needle) {
			return t, true
		}
	}
	return nil, false
}

// All returns every template in load order.
func (r *Registry) All() []*Template {
	out := make([]*Template, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.templates[id])
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int { return len(r.templates) }

// LoadRegistry loads every enemy file under dir into a new Registry.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a populated Registry (empty when dir is absent) or a non-nil error.
func LoadRegistry(dir string, logger *zap.Logger) (*Registry, error) {
	tmpls, err := content.LoadDir(dir, "enemies", NewTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading enemies: %w", err)
	}
	r := NewRegistry()
	for _, t := range tmpls {
		if r.Register(t) {
			logger.Debug("duplicate enemy id, keeping last loaded", zap.String("id", t.ID))
		}
	}
	logger.Info("enemies loaded", zap.Int("count", r.Len()))
	return r, nil
}
