// Package command provides the command registry, parser, and built-in command definitions.
package command

// Categories for organizing commands.
const (
	CategoryMovement    = "movement"
	CategoryWorld       = "world"
	CategoryItems       = "items"
	CategoryInteraction = "interaction"
	CategoryCombat      = "combat"
	CategorySystem      = "system"
)

// Canonical verbs produced by Parse.
const (
	VerbMove      = "move"
	VerbLook      = "look"
	VerbExamine   = "examine"
	VerbTake      = "take"
	VerbDrop      = "drop"
	VerbUse       = "use"
	VerbEquip     = "equip"
	VerbUnequip   = "unequip"
	VerbInventory = "inventory"
	VerbTalk      = "talk"
	VerbAttack    = "attack"
	VerbFlee      = "flee"
	VerbDefend    = "defend"
	VerbHelp      = "help"
	VerbQuit      = "quit"
	VerbSave      = "save"
	VerbLoad      = "load"
	VerbStats     = "stats"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage is the argument synopsis shown by help, if any.
	Usage string
	// Help is the short help text displayed to players. Commands without
	// help text are not listed.
	Help string
	// Category groups the command.
	Category string
	// Verb is the verb Parse reports for this command. Direction commands
	// report VerbMove; every other command reports its own Name.
	Verb string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement commands
		{Name: "north", Aliases: []string{"n"}, Help: "Move north", Category: CategoryMovement, Verb: VerbMove},
		{Name: "south", Aliases: []string{"s"}, Help: "Move south", Category: CategoryMovement, Verb: VerbMove},
		{Name: "east", Aliases: []string{"e"}, Help: "Move east", Category: CategoryMovement, Verb: VerbMove},
		{Name: "west", Aliases: []string{"w"}, Help: "Move west", Category: CategoryMovement, Verb: VerbMove},
		{Name: "up", Aliases: []string{"u"}, Help: "Move up", Category: CategoryMovement, Verb: VerbMove},
		{Name: "down", Aliases: []string{"d"}, Help: "Move down", Category: CategoryMovement, Verb: VerbMove},
		{Name: VerbMove, Aliases: []string{"go", "walk"}, Usage: "<direction>", Help: "Move in a direction", Category: CategoryMovement, Verb: VerbMove},

		// World commands
		{Name: VerbLook, Aliases: []string{"l"}, Help: "Examine your surroundings", Category: CategoryWorld, Verb: VerbLook},
		{Name: VerbExamine, Aliases: []string{"x", "inspect", "search"}, Usage: "<item>", Help: "Inspect an item closely", Category: CategoryWorld, Verb: VerbExamine},

		// Item commands
		{Name: VerbTake, Aliases: []string{"get", "grab", "pick"}, Usage: "<item>", Help: "Pick up an item", Category: CategoryItems, Verb: VerbTake},
		{Name: VerbDrop, Usage: "<item>", Help: "Drop an item", Category: CategoryItems, Verb: VerbDrop},
		{Name: VerbUse, Aliases: []string{"drink", "eat"}, Usage: "<item>", Help: "Use a consumable item", Category: CategoryItems, Verb: VerbUse},
		{Name: VerbEquip, Aliases: []string{"wear", "wield"}, Usage: "<item>", Help: "Equip a weapon or armor", Category: CategoryItems, Verb: VerbEquip},
		{Name: VerbUnequip, Aliases: []string{"remove"}, Usage: "weapon|armor", Help: "Unequip a slot", Category: CategoryItems, Verb: VerbUnequip},
		{Name: VerbInventory, Aliases: []string{"i", "inv"}, Help: "View your inventory", Category: CategoryItems, Verb: VerbInventory},

		// Interaction commands
		{Name: VerbTalk, Aliases: []string{"speak", "chat"}, Usage: "<npc>", Help: "Talk to someone", Category: CategoryInteraction, Verb: VerbTalk},

		// Combat commands
		{Name: VerbAttack, Aliases: []string{"fight", "hit"}, Help: "Fight an enemy in the room", Category: CategoryCombat, Verb: VerbAttack},
		{Name: VerbFlee, Aliases: []string{"run"}, Category: CategoryCombat, Verb: VerbFlee},
		{Name: VerbDefend, Aliases: []string{"block"}, Category: CategoryCombat, Verb: VerbDefend},

		// System commands
		{Name: VerbStats, Aliases: []string{"status"}, Help: "View your stats", Category: CategorySystem, Verb: VerbStats},
		{Name: VerbSave, Help: "Save your game", Category: CategorySystem, Verb: VerbSave},
		{Name: VerbLoad, Help: "Load your game", Category: CategorySystem, Verb: VerbLoad},
		{Name: VerbHelp, Aliases: []string{"h", "?"}, Help: "Show available commands", Category: CategorySystem, Verb: VerbHelp},
		{Name: VerbQuit, Aliases: []string{"exit", "q"}, Help: "Exit the game", Category: CategorySystem, Verb: VerbQuit},
	}
}

// IsMovementCommand reports whether the command name is a movement direction.
func IsMovementCommand(name string) bool {
	switch name {
	case "north", "south", "east", "west", "up", "down":
		return true
	default:
		return false
	}
}
