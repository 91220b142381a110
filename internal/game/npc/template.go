// Package npc provides enemy template definitions and live battle instances.
package npc

import (
	"github.com/cory-johannsen/archadium/internal/game/content"
)

// Template defines a reusable enemy archetype loaded from YAML.
// Templates are never mutated after load.
type Template struct {
	ID          string   `yaml:"id" validate:"required"`
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	HP          int      `yaml:"hp" validate:"gt=0"`
	Attack      int      `yaml:"attack" validate:"gte=0"`
	Defense     int      `yaml:"defense" validate:"gte=0"`
	XPReward    int      `yaml:"xp_reward" validate:"gte=0"`
	GoldReward  int      `yaml:"gold_reward" validate:"gte=0"`
	Art         []string `yaml:"art"`
}

// NewTemplate returns a Template holding the content defaults.
func NewTemplate() Template {
	return Template{
		HP:         30,
		Attack:     8,
		Defense:    2,
		XPReward:   10,
		GoldReward: 5,
	}
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, HP >= 1, and no stat is negative.
func (t *Template) Validate() error {
	return content.Validate(t)
}
