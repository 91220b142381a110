package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrRoomNotFound is returned when a room ID is not registered.
var ErrRoomNotFound = errors.New("room not found")

// ErrNoExit is returned when a room has no exit in the requested direction.
var ErrNoExit = errors.New("no exit in that direction")

// BlockedError reports an exit that exists but is not accessible.
type BlockedError struct {
	Exit Exit
}

func (e *BlockedError) Error() string { return e.Exit.LockMessage }

// Manager provides access to the loaded rooms indexed by ID.
//
// The game loop is single-threaded, so Manager carries no lock; room item
// lists are mutated in place by the caller.
type Manager struct {
	rooms map[string]*Room
	order []string
}

// NewManager creates a Manager from the given rooms. Duplicate IDs are
// resolved last-wins.
//
// Postcondition: Returns a Manager with all rooms indexed by ID.
func NewManager(rooms []*Room) *Manager {
	m := &Manager{rooms: make(map[string]*Room, len(rooms))}
	for _, r := range rooms {
		m.add(r)
	}
	return m
}

func (m *Manager) add(r *Room) (replaced bool) {
	if _, exists := m.rooms[r.ID]; exists {
		replaced = true
	} else {
		m.order = append(m.order, r.ID)
	}
	m.rooms[r.ID] = r
	return replaced
}

// LoadManager loads every room under dir into a new Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a Manager (empty when dir is absent) or a non-nil error.
func LoadManager(dir string, logger *zap.Logger) (*Manager, error) {
	rooms, err := LoadRoomsFromDir(dir)
	if err != nil {
		return nil, err
	}
	m := &Manager{rooms: make(map[string]*Room, len(rooms))}
	for _, r := range rooms {
		if m.add(r) {
			logger.Debug("duplicate room id, keeping last loaded", zap.String("id", r.ID))
		}
	}
	if dangling := m.DanglingExits(); len(dangling) > 0 {
		logger.Warn("exits target unknown rooms", zap.Strings("exits", dangling))
	}
	if oneWay := m.OneWayExits(); len(oneWay) > 0 {
		logger.Warn("exits have no way back", zap.Strings("exits", oneWay))
	}
	logger.Info("rooms loaded", zap.Int("count", m.RoomCount()))
	return m, nil
}

// DanglingExits lists "room:direction" for every exit whose target is not loaded.
func (m *Manager) DanglingExits() []string {
	var out []string
	for _, id := range m.order {
		for _, e := range m.rooms[id].Exits {
			if _, ok := m.rooms[e.TargetRoom]; !ok {
				out = append(out, fmt.Sprintf("%s:%s", id, e.Direction))
			}
		}
	}
	return out
}

// OneWayExits lists "room:direction" for every standard-direction exit whose
// loaded target has no exit in the opposite direction leading back. Custom
// directions and dangling exits are not reported.
func (m *Manager) OneWayExits() []string {
	var out []string
	for _, id := range m.order {
		for _, e := range m.rooms[id].Exits {
			if !e.Direction.IsStandard() {
				continue
			}
			target, ok := m.rooms[e.TargetRoom]
			if !ok {
				continue
			}
			if back, ok := target.ExitForDirection(e.Direction.Opposite()); !ok || back.TargetRoom != id {
				out = append(out, fmt.Sprintf("%s:%s", id, e.Direction))
			}
		}
	}
	return out
}

// GetRoom returns the room with the given ID.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (m *Manager) GetRoom(id string) (*Room, bool) {
	r, ok := m.rooms[id]
	return r, ok
}

// Navigate resolves movement from a room in a direction.
//
// Precondition: flags must be non-nil.
// Postcondition: Returns the exit to follow, or ErrRoomNotFound, ErrNoExit, or
// a *BlockedError. The target room is not required to exist.
func (m *Manager) Navigate(fromRoomID string, dir Direction, flags FlagChecker) (Exit, error) {
	from, ok := m.rooms[fromRoomID]
	if !ok {
		return Exit{}, fmt.Errorf("room %q: %w", fromRoomID, ErrRoomNotFound)
	}
	exit, ok := from.ExitForDirection(dir)
	if !ok {
		return Exit{}, ErrNoExit
	}
	if !exit.IsAccessible(flags) {
		return Exit{}, &BlockedError{Exit: exit}
	}
	return exit, nil
}

// RoomCount returns the total number of rooms.
func (m *Manager) RoomCount() int {
	return len(m.rooms)
}

// AllRooms returns every room in load order.
func (m *Manager) AllRooms() []*Room {
	out := make([]*Room, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rooms[id])
	}
	return out
}
