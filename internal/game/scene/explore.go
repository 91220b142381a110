package scene

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/frontend/render"
	"github.com/cory-johannsen/archadium/internal/game/command"
	"github.com/cory-johannsen/archadium/internal/game/world"
)

// ExplorePrompt is the prompt for exploration commands.
const ExplorePrompt = "> "

// ExploreScene is the main mode: moving between rooms, handling items, and
// starting fights.
type ExploreScene struct {
	g      *Game
	looked bool
}

// NewExploreScene creates the explore scene.
func NewExploreScene(g *Game) *ExploreScene {
	return &ExploreScene{g: g}
}

// Enter describes the current room.
func (s *ExploreScene) Enter(ctx context.Context) error {
	s.looked = false
	s.look()
	return nil
}

// Update reads and runs one command.
//
// Postcondition: A missing current room sends the player back to the title.
func (s *ExploreScene) Update(ctx context.Context) (Transition, error) {
	if _, ok := s.g.currentRoom(); !ok {
		s.g.Logger.Error("current room not found", zap.String("room", s.g.Player.CurrentRoom))
		s.g.Console.Println(s.g.Render.Error(fmt.Sprintf("Room '%s' not found.", s.g.Player.CurrentRoom)))
		return To(Title), nil
	}
	if !s.looked {
		s.look()
	}

	s.g.Console.Println()
	line, err := s.g.Console.ReadLine(ctx, s.g.Render.Prompt(ExplorePrompt))
	if err != nil {
		return Stay, err
	}
	cmd := s.g.Commands.Parse(line)
	if cmd.Verb == "" {
		return Stay, nil
	}
	return s.handle(ctx, cmd)
}

func (s *ExploreScene) handle(ctx context.Context, cmd command.Parsed) (Transition, error) {
	g := s.g
	room, _ := g.currentRoom()
	reply := func(r command.Reply) {
		g.Console.Println(g.Render.Reply(r.Text, r.OK))
	}

	switch cmd.Verb {
	case command.VerbLook:
		s.look()
	case command.VerbMove:
		return s.move(cmd), nil
	case command.VerbTake:
		reply(command.HandleTake(g.Player, room, g.Items, cmd.ArgText()))
	case command.VerbDrop:
		reply(command.HandleDrop(g.Player, room, g.Items, cmd.ArgText()))
	case command.VerbExamine:
		reply(command.HandleExamine(g.Player, room, g.Items, cmd.ArgText()))
	case command.VerbInventory:
		g.Console.Println(g.Render.Inventory(s.inventoryRows()))
	case command.VerbEquip:
		reply(command.HandleEquip(g.Player, g.Items, cmd.ArgText()))
	case command.VerbUnequip:
		reply(command.HandleUnequip(g.Player, cmd.ArgText()))
	case command.VerbUse:
		reply(command.HandleUse(g.Player, g.Items, cmd.ArgText()))
	case command.VerbStats:
		g.Console.Println(g.Render.Stats(s.stats()))
	case command.VerbAttack:
		alive := g.aliveEnemies(room)
		if len(alive) == 0 {
			g.Console.Println(g.Render.Info("There's nothing to fight here."))
			return Stay, nil
		}
		g.PendingEnemy = alive[0]
		return To(Combat), nil
	case command.VerbFlee, command.VerbDefend:
		g.Console.Println(g.Render.Info("You are not in combat."))
	case command.VerbTalk:
		s.talk(room, cmd)
	case command.VerbSave:
		if err := g.Save(ctx); err != nil {
			g.Logger.Error("save failed", zap.Error(err))
			g.Console.Println(g.Render.Error(fmt.Sprintf("Save failed: %v", err)))
			return Stay, nil
		}
		g.Console.Println(g.Render.Success("Game saved."))
	case command.VerbLoad:
		if g.LoadSave(ctx) {
			g.Console.Println(g.Render.Success("Game loaded."))
			s.looked = false
			s.look()
		}
	case command.VerbHelp:
		g.Console.Println()
		g.Console.Println(g.Render.Help(g.Commands.Documented()))
	case command.VerbQuit:
		return Quit, nil
	default:
		g.Console.Println(g.Render.Error("Unknown command. Type 'help' for a list of commands."))
	}
	return Stay, nil
}

// look sets the room's entry flag and shows the HUD and the room.
func (s *ExploreScene) look() {
	g := s.g
	room, ok := g.currentRoom()
	if !ok {
		return
	}
	if room.OnEnterFlag != "" {
		g.Player.SetFlag(room.OnEnterFlag)
	}

	g.Console.Println(g.Render.Separator())
	g.Console.Println(g.Render.HUD(render.HUD{
		Name:   g.Player.PlayerName,
		Level:  g.Player.Level,
		HP:     g.Player.HP,
		MaxHP:  g.Player.MaxHP,
		Gold:   g.Player.Gold,
		Weapon: g.Player.WeaponName(g.Items),
		Room:   room.Name,
	}))
	g.Console.Println()
	if room.Art != "" {
		for _, line := range g.Render.Art(strings.Split(room.Art, "\n"), false) {
			g.Console.Println(line)
		}
	}
	g.Console.Println(g.Render.Room(s.roomView(room)))
	s.looked = true
}

func (s *ExploreScene) roomView(room *world.Room) render.RoomView {
	g := s.g
	v := render.RoomView{
		Description: room.Description,
		Ambient:     room.Ambient,
		NPCs:        room.NPCs,
	}
	for _, id := range room.Items {
		name := id
		if def, ok := g.Items.Item(id); ok {
			name = def.Name
		}
		v.Items = append(v.Items, name)
	}
	for _, id := range g.aliveEnemies(room) {
		name := id
		if tmpl, ok := g.Enemies.Template(id); ok {
			name = tmpl.Name
		}
		v.Enemies = append(v.Enemies, name)
	}
	for _, e := range room.Exits {
		v.Exits = append(v.Exits, render.ExitView{
			Direction:   string(e.Direction),
			Description: e.Description,
			Locked:      !e.IsAccessible(g.Player),
		})
	}
	return v
}

// move follows an exit. Entering a room with an undefeated enemy starts a
// fight with the first one.
func (s *ExploreScene) move(cmd command.Parsed) Transition {
	g := s.g
	if len(cmd.Args) == 0 {
		g.Console.Println(g.Render.Error("Move where? Specify a direction."))
		return Stay
	}
	dir, _ := g.Commands.Direction(cmd.Args[0])

	exit, err := g.World.Navigate(g.Player.CurrentRoom, world.Direction(dir), g.Player)
	var blocked *world.BlockedError
	switch {
	case errors.As(err, &blocked):
		g.Console.Println(g.Render.Error(blocked.Error()))
		return Stay
	case err != nil:
		msg := fmt.Sprintf("You can't go %s.", dir)
		if room, ok := g.currentRoom(); ok && len(room.Exits) > 0 {
			dirs := make([]string, 0, len(room.Exits))
			for _, d := range room.ExitDirections() {
				dirs = append(dirs, string(d))
			}
			msg += " Exits: " + strings.Join(dirs, ", ") + "."
		}
		g.Console.Println(g.Render.Error(msg))
		return Stay
	}

	g.Logger.Debug("player moved",
		zap.String("from", g.Player.CurrentRoom),
		zap.String("to", exit.TargetRoom),
		zap.String("direction", dir),
	)
	g.Player.CurrentRoom = exit.TargetRoom
	s.looked = false
	s.look()
	g.enterRoom(exit.TargetRoom)

	if room, ok := g.currentRoom(); ok {
		if alive := g.aliveEnemies(room); len(alive) > 0 {
			g.PendingEnemy = alive[0]
			return To(Combat)
		}
	}
	return Stay
}

// talk greets the first NPC whose name contains the argument, or the first
// NPC when there is no argument.
func (s *ExploreScene) talk(room *world.Room, cmd command.Parsed) {
	g := s.g
	if len(room.NPCs) == 0 {
		g.Console.Println(g.Render.Info("There's no one to talk to here."))
		return
	}
	target := cmd.ArgText()
	for _, name := range room.NPCs {
		if target == "" || command.MatchName(target, name) {
			g.Console.Println(g.Render.NPC(name) + " has nothing to say... yet.")
			return
		}
	}
	g.Console.Println(g.Render.Error("You don't see them here."))
}

func (s *ExploreScene) inventoryRows() []render.InventoryRow {
	g := s.g
	var rows []render.InventoryRow
	for _, stack := range g.Player.ItemCounts() {
		def, ok := g.Items.Item(stack.ID)
		if !ok {
			continue
		}
		rows = append(rows, render.InventoryRow{
			Name:        def.Name,
			Type:        def.Type,
			Quantity:    stack.Count,
			Description: def.Description,
			Equipped:    stack.ID == g.Player.EquippedWeapon || stack.ID == g.Player.EquippedArmor,
		})
	}
	return rows
}

func (s *ExploreScene) stats() render.Stats {
	p := s.g.Player
	return render.Stats{
		Name:      p.PlayerName,
		Level:     p.Level,
		XP:        p.XP,
		XPToLevel: p.XPToLevel,
		HP:        p.HP,
		MaxHP:     p.MaxHP,
		Attack:    p.EffectiveAttack(s.g.Items),
		Defense:   p.EffectiveDefense(s.g.Items),
		Gold:      p.Gold,
		Weapon:    p.WeaponName(s.g.Items),
		Armor:     p.ArmorName(s.g.Items),
	}
}
