// Package inventory provides item templates and the item registry.
package inventory

import (
	"github.com/cory-johannsen/archadium/internal/game/content"
)

// Type constants for ItemDef.Type.
const (
	TypeWeapon     = "weapon"
	TypeArmor      = "armor"
	TypeConsumable = "consumable"
	TypeKey        = "key"
	TypeMisc       = "misc"
)

// Equipment slot names.
const (
	SlotWeapon = "weapon"
	SlotArmor  = "armor"
)

// ItemDef defines the static properties of an item loaded from YAML.
// Bonuses apply only while the item is equipped in its matching slot.
type ItemDef struct {
	ID           string `yaml:"id" json:"id" validate:"required"`
	Name         string `yaml:"name" json:"name" validate:"required"`
	Description  string `yaml:"description" json:"description"`
	Type         string `yaml:"type" json:"type" validate:"oneof=weapon armor consumable key misc"`
	AttackBonus  int    `yaml:"attack_bonus" json:"attack_bonus"`
	DefenseBonus int    `yaml:"defense_bonus" json:"defense_bonus"`
	HealAmount   int    `yaml:"heal_amount" json:"heal_amount" validate:"gte=0"`
	Value        int    `yaml:"value" json:"value" validate:"gte=0"`
	AttackType   string `yaml:"attack_type" json:"attack_type,omitempty"`
	Stackable    bool   `yaml:"stackable" json:"stackable"`
}

// NewItemDef returns an ItemDef holding the content defaults.
func NewItemDef() ItemDef {
	return ItemDef{Type: TypeMisc}
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *ItemDef) Validate() error {
	return content.Validate(d)
}

// Slot returns the equipment slot this item occupies, or "" when it cannot be equipped.
func (d *ItemDef) Slot() string {
	switch d.Type {
	case TypeWeapon:
		return SlotWeapon
	case TypeArmor:
		return SlotArmor
	default:
		return ""
	}
}

// IsConsumable reports whether the item is used up when used.
func (d *ItemDef) IsConsumable() bool {
	return d.Type == TypeConsumable
}
