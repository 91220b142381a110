package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/game/inventory"
	"github.com/cory-johannsen/archadium/internal/game/world"
)

// Reply is the player-facing result of an item command. OK is false for
// refusals so the caller can style them as errors.
type Reply struct {
	Text string
	OK   bool
}

func succeed(format string, args ...any) Reply {
	return Reply{Text: fmt.Sprintf(format, args...), OK: true}
}

func fail(text string) Reply {
	return Reply{Text: text}
}

// findCarried returns the first carried item whose name contains target.
func findCarried(ch *character.Character, items character.ItemLookup, target string) (*inventory.ItemDef, bool) {
	for _, id := range ch.Inventory {
		if def, found := items.Item(id); found && MatchName(target, def.Name) {
			return def, true
		}
	}
	return nil, false
}

// findInRoom returns the first room item whose name contains target.
func findInRoom(room *world.Room, items character.ItemLookup, target string) (*inventory.ItemDef, bool) {
	for _, id := range room.Items {
		if def, found := items.Item(id); found && MatchName(target, def.Name) {
			return def, true
		}
	}
	return nil, false
}

// HandleTake moves the first matching room item into the inventory.
//
// Precondition: ch, room, and items must not be nil.
// Postcondition: On success exactly one item moved from room to inventory.
func HandleTake(ch *character.Character, room *world.Room, items character.ItemLookup, arg string) Reply {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fail("Take what?")
	}
	def, found := findInRoom(room, items, arg)
	if !found {
		return fail("You don't see that here.")
	}
	room.RemoveItem(def.ID)
	ch.AddItem(def.ID)
	return succeed("You pick up the %s.", def.Name)
}

// HandleDrop moves the first matching carried item into the room.
//
// Precondition: ch, room, and items must not be nil.
// Postcondition: On success exactly one item moved from inventory to room;
// a dropped equipped item leaves its slot when no copy remains.
func HandleDrop(ch *character.Character, room *world.Room, items character.ItemLookup, arg string) Reply {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fail("Drop what?")
	}
	def, found := findCarried(ch, items, arg)
	if !found {
		return fail("You don't have that.")
	}
	ch.RemoveItem(def.ID)
	room.AddItem(def.ID)
	return succeed("You drop the %s.", def.Name)
}

// HandleExamine describes a carried item in full, or a room item by name
// and description only.
//
// Precondition: ch and items must not be nil; room may be nil.
func HandleExamine(ch *character.Character, room *world.Room, items character.ItemLookup, arg string) Reply {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fail("Examine what?")
	}
	if def, found := findCarried(ch, items, arg); found {
		lines := []string{describe(def)}
		if def.AttackBonus != 0 {
			lines = append(lines, fmt.Sprintf("  Attack bonus: +%d", def.AttackBonus))
		}
		if def.DefenseBonus != 0 {
			lines = append(lines, fmt.Sprintf("  Defense bonus: +%d", def.DefenseBonus))
		}
		if def.HealAmount != 0 {
			lines = append(lines, fmt.Sprintf("  Heals: %d HP", def.HealAmount))
		}
		if def.Value != 0 {
			lines = append(lines, fmt.Sprintf("  Value: %d gold", def.Value))
		}
		return Reply{Text: strings.Join(lines, "\n"), OK: true}
	}
	if room != nil {
		if def, found := findInRoom(room, items, arg); found {
			return Reply{Text: describe(def), OK: true}
		}
	}
	return fail("You don't see that here.")
}

func describe(def *inventory.ItemDef) string {
	return def.Name + " - " + def.Description
}

// HandleEquip equips the first carried item whose name matches arg.
//
// Precondition: ch and items must not be nil.
// Postcondition: On failure both equipment slots are unchanged.
func HandleEquip(ch *character.Character, items character.ItemLookup, arg string) Reply {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fail("Equip what?")
	}
	def, found := findCarried(ch, items, arg)
	if !found {
		return fail("You don't have that.")
	}
	if _, err := ch.Equip(def.ID, items); err != nil {
		return fail(itemError(err, def))
	}
	return succeed("You equip the %s.", def.Name)
}

// HandleUnequip clears the slot named by arg, "weapon" or "armor".
//
// Precondition: ch must not be nil.
func HandleUnequip(ch *character.Character, arg string) Reply {
	slot := strings.ToLower(strings.TrimSpace(arg))
	if slot != inventory.SlotWeapon && slot != inventory.SlotArmor {
		return Reply{Text: "Specify 'weapon' or 'armor' to unequip."}
	}
	if err := ch.Unequip(slot); err != nil {
		if errors.Is(err, character.ErrSlotEmpty) {
			return fail(fmt.Sprintf("Nothing equipped in %s slot.", slot))
		}
		return fail("Unknown slot. Use 'weapon' or 'armor'.")
	}
	return succeed("You unequip your %s.", slot)
}

// HandleUse consumes the first carried item whose name matches arg.
//
// Precondition: ch and items must not be nil.
// Postcondition: On success one copy is removed and HP <= MaxHP.
func HandleUse(ch *character.Character, items character.ItemLookup, arg string) Reply {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fail("Use what?")
	}
	def, found := findCarried(ch, items, arg)
	if !found {
		return fail("You don't have that.")
	}
	used, healed, err := ch.UseItem(def.ID, items)
	if err != nil {
		return fail(itemError(err, def))
	}
	if used.HealAmount > 0 {
		return succeed("You use %s and recover %d HP!", used.Name, healed)
	}
	return succeed("You use %s.", used.Name)
}

// itemError maps a character item failure onto the message shown to the player.
func itemError(err error, def *inventory.ItemDef) string {
	switch {
	case errors.Is(err, character.ErrNotCarried):
		return "You don't have that item."
	case errors.Is(err, character.ErrUnknownItem):
		return "Unknown item."
	case errors.Is(err, character.ErrNotEquippable):
		return fmt.Sprintf("%s can't be equipped.", def.Name)
	case errors.Is(err, character.ErrNotUsable):
		return fmt.Sprintf("%s can't be used that way.", def.Name)
	default:
		return err.Error()
	}
}
