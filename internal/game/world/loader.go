package world

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/archadium/internal/game/content"
)

// yamlRoom is the YAML representation of a room.
type yamlRoom struct {
	ID          string     `yaml:"id" validate:"required"`
	Name        string     `yaml:"name" validate:"required"`
	Description string     `yaml:"description" validate:"required"`
	Ambient     string     `yaml:"ambient"`
	Exits       []yamlExit `yaml:"exits" validate:"dive"`
	Items       []string   `yaml:"items"`
	Enemies     []string   `yaml:"enemies"`
	NPCs        []string   `yaml:"npcs"`
	OnEnterFlag string     `yaml:"on_enter_flag"`
	ASCIIArt    string     `yaml:"ascii_art"`
}

// yamlExit is the YAML representation of an exit.
type yamlExit struct {
	Direction    string `yaml:"direction" validate:"required"`
	Target       string `yaml:"target" validate:"required"`
	Description  string `yaml:"description"`
	Locked       bool   `yaml:"locked"`
	RequiredFlag string `yaml:"required_flag"`
	LockMessage  string `yaml:"lock_message"`
}

func newYAMLRoom() yamlRoom { return yamlRoom{} }

// LoadRoomsFromBytes parses and validates the rooms in one YAML document.
//
// Postcondition: Returns the rooms in document order or a non-nil error.
func LoadRoomsFromBytes(data []byte) ([]*Room, error) {
	recs, err := content.Decode(data, "rooms", newYAMLRoom)
	if err != nil {
		return nil, fmt.Errorf("parsing rooms: %w", err)
	}
	return convertYAMLRooms(recs), nil
}

// LoadRoomsFromDir loads all YAML files in a directory as rooms.
//
// Postcondition: Returns every room in file-name order; a missing directory yields none.
func LoadRoomsFromDir(dir string) ([]*Room, error) {
	recs, err := content.LoadDir(dir, "rooms", newYAMLRoom)
	if err != nil {
		return nil, fmt.Errorf("loading rooms: %w", err)
	}
	return convertYAMLRooms(recs), nil
}

func convertYAMLRooms(recs []*yamlRoom) []*Room {
	rooms := make([]*Room, 0, len(recs))
	for _, yr := range recs {
		room := &Room{
			ID:          yr.ID,
			Name:        yr.Name,
			Description: strings.TrimSpace(yr.Description),
			Ambient:     strings.TrimSpace(yr.Ambient),
			Items:       append([]string(nil), yr.Items...),
			Enemies:     append([]string(nil), yr.Enemies...),
			NPCs:        append([]string(nil), yr.NPCs...),
			OnEnterFlag: yr.OnEnterFlag,
			Art:         strings.TrimRight(yr.ASCIIArt, "\n"),
		}
		for _, ye := range yr.Exits {
			msg := ye.LockMessage
			if msg == "" {
				msg = DefaultLockMessage
			}
			room.Exits = append(room.Exits, Exit{
				Direction:    Direction(strings.ToLower(ye.Direction)),
				TargetRoom:   ye.Target,
				Description:  ye.Description,
				Locked:       ye.Locked,
				RequiredFlag: ye.RequiredFlag,
				LockMessage:  msg,
			})
		}
		rooms = append(rooms, room)
	}
	return rooms
}
