// Package storage defines save-slot persistence for the player's progress.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cory-johannsen/archadium/internal/game/character"
)

// DefaultSlot is the slot used when none is configured.
const DefaultSlot = "save1"

// ErrNotFound is returned by Load when the slot holds no save.
var ErrNotFound = errors.New("save not found")

// Store persists full snapshots of a Character under named slots.
type Store interface {
	// Save writes c to slot, replacing any previous save.
	Save(ctx context.Context, slot string, c *character.Character) error
	// Load reads slot. It returns ErrNotFound when the slot is empty.
	Load(ctx context.Context, slot string) (*character.Character, error)
}

// snapshot is the persisted document. Empty equipment slots encode as null.
type snapshot struct {
	PlayerName      string          `json:"player_name"`
	CurrentRoom     string          `json:"current_room"`
	HP              int             `json:"hp"`
	MaxHP           int             `json:"max_hp"`
	Attack          int             `json:"attack"`
	Defense         int             `json:"defense"`
	Level           int             `json:"level"`
	XP              int             `json:"xp"`
	XPToLevel       int             `json:"xp_to_level"`
	Gold            int             `json:"gold"`
	Inventory       []string        `json:"inventory"`
	EquippedWeapon  *string         `json:"equipped_weapon"`
	EquippedArmor   *string         `json:"equipped_armor"`
	Flags           map[string]bool `json:"flags"`
	DefeatedEnemies []string        `json:"defeated_enemies"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Marshal encodes c as an indented JSON document.
//
// Postcondition: Nil collections encode as empty JSON arrays and objects.
func Marshal(c *character.Character) ([]byte, error) {
	snap := snapshot{
		PlayerName:      c.PlayerName,
		CurrentRoom:     c.CurrentRoom,
		HP:              c.HP,
		MaxHP:           c.MaxHP,
		Attack:          c.Attack,
		Defense:         c.Defense,
		Level:           c.Level,
		XP:              c.XP,
		XPToLevel:       c.XPToLevel,
		Gold:            c.Gold,
		Inventory:       c.Inventory,
		EquippedWeapon:  optional(c.EquippedWeapon),
		EquippedArmor:   optional(c.EquippedArmor),
		Flags:           c.Flags,
		DefeatedEnemies: c.DefeatedEnemies,
	}
	if snap.Inventory == nil {
		snap.Inventory = []string{}
	}
	if snap.Flags == nil {
		snap.Flags = map[string]bool{}
	}
	if snap.DefeatedEnemies == nil {
		snap.DefeatedEnemies = []string{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding save: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a save document. Keys that are absent keep the values of
// a new character; unknown keys are ignored.
//
// Postcondition: Returns a Character with a non-nil Flags map, or an error.
func Unmarshal(data []byte) (*character.Character, error) {
	def := character.New(character.DefaultName, character.DefaultStartRoom)
	snap := snapshot{
		PlayerName:  def.PlayerName,
		CurrentRoom: def.CurrentRoom,
		HP:          def.HP,
		MaxHP:       def.MaxHP,
		Attack:      def.Attack,
		Defense:     def.Defense,
		Level:       def.Level,
		XP:          def.XP,
		XPToLevel:   def.XPToLevel,
		Gold:        def.Gold,
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding save: %w", err)
	}
	c := &character.Character{
		PlayerName:      snap.PlayerName,
		CurrentRoom:     snap.CurrentRoom,
		HP:              snap.HP,
		MaxHP:           snap.MaxHP,
		Attack:          snap.Attack,
		Defense:         snap.Defense,
		Level:           snap.Level,
		XP:              snap.XP,
		XPToLevel:       snap.XPToLevel,
		Gold:            snap.Gold,
		Inventory:       snap.Inventory,
		EquippedWeapon:  deref(snap.EquippedWeapon),
		EquippedArmor:   deref(snap.EquippedArmor),
		Flags:           snap.Flags,
		DefeatedEnemies: snap.DefeatedEnemies,
	}
	if c.Flags == nil {
		c.Flags = make(map[string]bool)
	}
	return c, nil
}
