// Package character defines the player's progress state and the pure rules
// that mutate it.
package character

import "slices"

// Starting values for a new game.
const (
	DefaultName      = "Hero"
	DefaultStartRoom = "village_square"
	StartingHP       = 100
	StartingAttack   = 10
	StartingDefense  = 5
	StartingXPToNext = 100
)

// Character is the mutable record of one run. It is the single source of
// truth for player progress and is persisted whole on save.
type Character struct {
	PlayerName  string
	CurrentRoom string

	// HP is kept in [0, MaxHP].
	HP      int
	MaxHP   int
	Attack  int
	Defense int

	Level     int
	XP        int
	XPToLevel int
	// Gold is never negative.
	Gold int

	// Inventory is an ordered list of item IDs; duplicates represent stacks.
	Inventory []string
	// EquippedWeapon and EquippedArmor hold an item ID or "" when empty.
	EquippedWeapon string
	EquippedArmor  string

	Flags map[string]bool
	// DefeatedEnemies holds enemy template IDs; it never contains duplicates.
	DefeatedEnemies []string
}

// New returns a Character with the starting stats.
//
// Postcondition: An empty name becomes DefaultName and an empty startRoom becomes DefaultStartRoom.
func New(name, startRoom string) *Character {
	if name == "" {
		name = DefaultName
	}
	if startRoom == "" {
		startRoom = DefaultStartRoom
	}
	return &Character{
		PlayerName:  name,
		CurrentRoom: startRoom,
		HP:          StartingHP,
		MaxHP:       StartingHP,
		Attack:      StartingAttack,
		Defense:     StartingDefense,
		Level:       1,
		XPToLevel:   StartingXPToNext,
		Flags:       make(map[string]bool),
	}
}

// SetFlag sets the named flag to true.
func (c *Character) SetFlag(name string) {
	c.SetFlagValue(name, true)
}

// SetFlagValue sets the named flag to v.
func (c *Character) SetFlagValue(name string, v bool) {
	if c.Flags == nil {
		c.Flags = make(map[string]bool)
	}
	c.Flags[name] = v
}

// HasFlag reports whether the named flag is set. Unknown flags are false.
func (c *Character) HasFlag(name string) bool {
	return c.Flags[name]
}

// IsAlive reports whether the player has hit points remaining.
func (c *Character) IsAlive() bool {
	return c.HP > 0
}

// Heal restores up to amount hit points.
//
// Postcondition: HP <= MaxHP; returns the hit points actually restored.
func (c *Character) Heal(amount int) int {
	before := c.HP
	c.HP = min(c.HP+amount, c.MaxHP)
	if c.HP < before {
		c.HP = before
	}
	return c.HP - before
}

// TakeDamage applies an incoming hit reduced by defense, which callers pass
// as the effective defense including equipment.
//
// Postcondition: Returns max(1, incoming-defense); HP never drops below 0.
func (c *Character) TakeDamage(incoming, defense int) int {
	actual := max(1, incoming-defense)
	c.HP = max(0, c.HP-actual)
	return actual
}

// AddGold adjusts gold by amount.
//
// Postcondition: Gold >= 0.
func (c *Character) AddGold(amount int) {
	c.Gold = max(0, c.Gold+amount)
}

// AddXP grants experience and applies level-ups. With cascade false at most
// one level is gained per call; with cascade true every level the total pays
// for is applied.
//
// Postcondition: Returns the number of levels gained.
func (c *Character) AddXP(amount int, cascade bool) int {
	c.XP += amount
	gained := 0
	for c.XP >= c.XPToLevel && c.XPToLevel > 0 {
		c.levelUp()
		gained++
		if !cascade {
			break
		}
	}
	return gained
}

func (c *Character) levelUp() {
	c.XP -= c.XPToLevel
	c.Level++
	c.XPToLevel = c.XPToLevel * 3 / 2
	c.MaxHP += 10
	c.HP = c.MaxHP
	c.Attack += 2
	c.Defense++
}

// MarkDefeated records enemyID as permanently defeated.
//
// Postcondition: Returns true iff enemyID was not already recorded.
func (c *Character) MarkDefeated(enemyID string) bool {
	if c.HasDefeated(enemyID) {
		return false
	}
	c.DefeatedEnemies = append(c.DefeatedEnemies, enemyID)
	return true
}

// HasDefeated reports whether enemyID is in the defeated list.
func (c *Character) HasDefeated(enemyID string) bool {
	return slices.Contains(c.DefeatedEnemies, enemyID)
}
