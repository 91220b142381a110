package character

import (
	"errors"
	"slices"

	"github.com/cory-johannsen/archadium/internal/game/inventory"
)

// Item operation failures.
var (
	ErrNotCarried    = errors.New("item not carried")
	ErrUnknownItem   = errors.New("unknown item")
	ErrNotEquippable = errors.New("item cannot be equipped")
	ErrNotUsable     = errors.New("item cannot be used")
	ErrSlotEmpty     = errors.New("nothing equipped in slot")
	ErrUnknownSlot   = errors.New("unknown slot")
)

// ItemLookup resolves item templates by ID.
type ItemLookup interface {
	Item(id string) (*inventory.ItemDef, bool)
}

// ItemCount is one inventory stack.
type ItemCount struct {
	ID    string
	Count int
}

// AddItem appends itemID to the inventory.
func (c *Character) AddItem(itemID string) {
	c.Inventory = append(c.Inventory, itemID)
}

// HasItem reports whether at least one itemID is carried.
func (c *Character) HasItem(itemID string) bool {
	return slices.Contains(c.Inventory, itemID)
}

// RemoveItem removes one itemID from the inventory. When the last copy
// leaves, any slot holding it is cleared.
//
// Postcondition: Returns true iff an item was removed.
func (c *Character) RemoveItem(itemID string) bool {
	idx := slices.Index(c.Inventory, itemID)
	if idx < 0 {
		return false
	}
	c.Inventory = slices.Delete(c.Inventory, idx, idx+1)
	if !c.HasItem(itemID) {
		if c.EquippedWeapon == itemID {
			c.EquippedWeapon = ""
		}
		if c.EquippedArmor == itemID {
			c.EquippedArmor = ""
		}
	}
	return true
}

// ItemCounts groups the inventory into stacks in first-occurrence order.
func (c *Character) ItemCounts() []ItemCount {
	var out []ItemCount
	index := make(map[string]int)
	for _, id := range c.Inventory {
		if i, ok := index[id]; ok {
			out[i].Count++
			continue
		}
		index[id] = len(out)
		out = append(out, ItemCount{ID: id, Count: 1})
	}
	return out
}

// Consumables returns the distinct consumable items carried, in
// first-occurrence order. IDs missing from items are skipped.
func (c *Character) Consumables(items ItemLookup) []*inventory.ItemDef {
	var out []*inventory.ItemDef
	for _, stack := range c.ItemCounts() {
		def, ok := items.Item(stack.ID)
		if ok && def.IsConsumable() {
			out = append(out, def)
		}
	}
	return out
}

// EffectiveAttack is base attack plus the equipped weapon's attack bonus.
// An unknown equipped ID contributes nothing.
func (c *Character) EffectiveAttack(items ItemLookup) int {
	bonus := 0
	if c.EquippedWeapon != "" {
		if def, ok := items.Item(c.EquippedWeapon); ok {
			bonus = def.AttackBonus
		}
	}
	return c.Attack + bonus
}

// EffectiveDefense is base defense plus the equipped armor's defense bonus.
// An unknown equipped ID contributes nothing.
func (c *Character) EffectiveDefense(items ItemLookup) int {
	bonus := 0
	if c.EquippedArmor != "" {
		if def, ok := items.Item(c.EquippedArmor); ok {
			bonus = def.DefenseBonus
		}
	}
	return c.Defense + bonus
}

// WeaponName returns the equipped weapon's display name, or "Fists".
func (c *Character) WeaponName(items ItemLookup) string {
	if c.EquippedWeapon != "" {
		if def, ok := items.Item(c.EquippedWeapon); ok {
			return def.Name
		}
	}
	return "Fists"
}

// ArmorName returns the equipped armor's display name, or "None".
func (c *Character) ArmorName(items ItemLookup) string {
	if c.EquippedArmor != "" {
		if def, ok := items.Item(c.EquippedArmor); ok {
			return def.Name
		}
	}
	return "None"
}

// Equip places a carried weapon or armor in its slot, replacing whatever was there.
//
// Postcondition: On success returns the equipped definition. On error the
// character is unchanged and the error is ErrNotCarried, ErrUnknownItem, or ErrNotEquippable.
func (c *Character) Equip(itemID string, items ItemLookup) (*inventory.ItemDef, error) {
	if !c.HasItem(itemID) {
		return nil, ErrNotCarried
	}
	def, ok := items.Item(itemID)
	if !ok {
		return nil, ErrUnknownItem
	}
	switch def.Slot() {
	case inventory.SlotWeapon:
		c.EquippedWeapon = itemID
	case inventory.SlotArmor:
		c.EquippedArmor = itemID
	default:
		return def, ErrNotEquippable
	}
	return def, nil
}

// Unequip clears the named slot, "weapon" or "armor". The item stays in the inventory.
//
// Postcondition: Returns ErrSlotEmpty or ErrUnknownSlot on failure.
func (c *Character) Unequip(slot string) error {
	switch slot {
	case inventory.SlotWeapon:
		if c.EquippedWeapon == "" {
			return ErrSlotEmpty
		}
		c.EquippedWeapon = ""
	case inventory.SlotArmor:
		if c.EquippedArmor == "" {
			return ErrSlotEmpty
		}
		c.EquippedArmor = ""
	default:
		return ErrUnknownSlot
	}
	return nil
}

// UseItem consumes one carried consumable and applies its healing.
//
// Postcondition: On success one copy is removed and healed is the HP actually
// restored. On error the character is unchanged.
func (c *Character) UseItem(itemID string, items ItemLookup) (def *inventory.ItemDef, healed int, err error) {
	if !c.HasItem(itemID) {
		return nil, 0, ErrNotCarried
	}
	def, ok := items.Item(itemID)
	if !ok {
		return nil, 0, ErrUnknownItem
	}
	if !def.IsConsumable() {
		return def, 0, ErrNotUsable
	}
	c.RemoveItem(itemID)
	if def.HealAmount > 0 {
		healed = c.Heal(def.HealAmount)
	}
	return def, healed, nil
}
