// Package world provides the game world model: rooms, exits, and directions.
package world

import "slices"

// Direction represents a movement direction.
type Direction string

// Standard compass directions and vertical movements.
const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
	Up    Direction = "up"
	Down  Direction = "down"
)

// StandardDirections contains all directions the command parser recognises.
var StandardDirections = []Direction{North, South, East, West, Up, Down}

// IsStandard reports whether d is one of the six standard directions.
func (d Direction) IsStandard() bool {
	return slices.Contains(StandardDirections, d)
}

// Opposite returns the opposite of a standard direction.
// For custom directions, it returns an empty string.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return ""
	}
}

// DefaultLockMessage is shown when a locked exit has no message of its own.
const DefaultLockMessage = "The way is blocked."

// FlagChecker reports whether a named progress flag is set.
type FlagChecker interface {
	HasFlag(name string) bool
}

// Exit represents a passage from one room to another.
type Exit struct {
	Direction   Direction
	TargetRoom  string
	Description string
	// Locked exits are passable only when RequiredFlag is non-empty and set.
	Locked       bool
	RequiredFlag string
	LockMessage  string
}

// IsAccessible reports whether the exit can be used given the current flags.
//
// Postcondition: true iff !Locked, or RequiredFlag is non-empty and set in flags.
func (e Exit) IsAccessible(flags FlagChecker) bool {
	if !e.Locked {
		return true
	}
	return e.RequiredFlag != "" && flags.HasFlag(e.RequiredFlag)
}

// Room represents a location in the game world.
//
// Items is mutable world state: it changes as the player takes and drops
// things, and the change persists for the life of the process.
type Room struct {
	ID          string
	Name        string
	Description string
	Ambient     string
	Exits       []Exit
	Items       []string
	// Enemies lists the enemy template IDs nominally present. Defeated
	// enemies are filtered by the caller, not removed.
	Enemies     []string
	NPCs        []string
	OnEnterFlag string
	Art         string
}

// ExitForDirection returns the exit in the given direction, if one exists.
//
// Postcondition: Returns (exit, true) if found, or (Exit{}, false) otherwise.
func (r *Room) ExitForDirection(dir Direction) (Exit, bool) {
	for _, e := range r.Exits {
		if e.Direction == dir {
			return e, true
		}
	}
	return Exit{}, false
}

// ExitDirections returns the directions of all exits in declaration order.
func (r *Room) ExitDirections() []Direction {
	dirs := make([]Direction, 0, len(r.Exits))
	for _, e := range r.Exits {
		dirs = append(dirs, e.Direction)
	}
	return dirs
}

// AddItem places itemID on the room floor.
func (r *Room) AddItem(itemID string) {
	r.Items = append(r.Items, itemID)
}

// RemoveItem removes the first occurrence of itemID from the room floor.
//
// Postcondition: Returns true iff an item was removed.
func (r *Room) RemoveItem(itemID string) bool {
	idx := slices.Index(r.Items, itemID)
	if idx < 0 {
		return false
	}
	r.Items = slices.Delete(r.Items, idx, idx+1)
	return true
}

// AliveEnemies returns the enemy IDs not yet defeated, in declaration order.
//
// Precondition: defeated must be non-nil.
func (r *Room) AliveEnemies(defeated func(enemyID string) bool) []string {
	var alive []string
	for _, id := range r.Enemies {
		if !defeated(id) {
			alive = append(alive, id)
		}
	}
	return alive
}
