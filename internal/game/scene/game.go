package scene

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/frontend/render"
	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/game/combat"
	"github.com/cory-johannsen/archadium/internal/game/command"
	"github.com/cory-johannsen/archadium/internal/game/inventory"
	"github.com/cory-johannsen/archadium/internal/game/npc"
	"github.com/cory-johannsen/archadium/internal/game/world"
	"github.com/cory-johannsen/archadium/internal/scripting"
	"github.com/cory-johannsen/archadium/internal/storage"
)

// MenuPrompt is the prompt for numbered menus.
const MenuPrompt = "> "

// Console is the player's terminal.
type Console interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
	Println(a ...any)
	Typewriter(text string)
	DramaticPause(d time.Duration)
	Lines(lines []string, d time.Duration)
}

// Settings holds the session options scenes consult.
type Settings struct {
	StartRoom   string
	DefaultName string
	SaveSlot    string
}

// Game is the state every scene shares. Player is replaced on new game and
// load; everything else is fixed for the life of the process.
type Game struct {
	Settings Settings

	Items    *inventory.Registry
	Enemies  *npc.Registry
	World    *world.Manager
	Commands *command.Registry

	Player *character.Character
	// PendingEnemy is the enemy template ID the combat scene fights next.
	PendingEnemy string

	Store   storage.Store
	Engine  *combat.Engine
	Console Console
	Render  *render.Renderer
	Art     *render.ArtLibrary
	Logger  *zap.Logger

	scripts *scripting.Manager
}

// NewGame starts a fresh run for name, falling back to the configured
// default name.
//
// Postcondition: g.Player is a new Character in the start room.
func (g *Game) NewGame(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = g.Settings.DefaultName
	}
	g.Player = character.New(name, g.Settings.StartRoom)
	g.PendingEnemy = ""
	g.Logger.Info("new game", zap.String("player", g.Player.PlayerName))
}

// Save writes the current player to the configured slot.
func (g *Game) Save(ctx context.Context) error {
	if err := g.Store.Save(ctx, g.Settings.SaveSlot, g.Player); err != nil {
		return fmt.Errorf("saving slot %q: %w", g.Settings.SaveSlot, err)
	}
	g.Logger.Info("game saved", zap.String("slot", g.Settings.SaveSlot))
	return nil
}

// LoadSave replaces the player with the configured slot's contents and
// tells the player when that fails.
//
// Postcondition: Returns true iff g.Player was replaced.
func (g *Game) LoadSave(ctx context.Context) bool {
	loaded, err := g.Store.Load(ctx, g.Settings.SaveSlot)
	if errors.Is(err, storage.ErrNotFound) {
		g.Console.Println(g.Render.Error("No save file found."))
		return false
	}
	if err != nil {
		g.Logger.Error("loading save", zap.String("slot", g.Settings.SaveSlot), zap.Error(err))
		g.Console.Println(g.Render.Error(fmt.Sprintf("Could not load save: %v", err)))
		return false
	}
	g.Player = loaded
	g.PendingEnemy = ""
	g.Logger.Info("game loaded", zap.String("slot", g.Settings.SaveSlot), zap.String("player", loaded.PlayerName))
	return true
}

// Choose shows a numbered menu and reads a 1-based choice.
//
// Postcondition: Returns the 0-based index, or -1 after telling the player
// the choice was invalid.
func (g *Game) Choose(ctx context.Context, prompt string, choices []string) (int, error) {
	g.Console.Println()
	g.Console.Println(g.Render.Menu(prompt, choices))
	line, err := g.Console.ReadLine(ctx, g.Render.Prompt(MenuPrompt))
	if err != nil {
		return -1, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(choices) {
		g.Console.Println(g.Render.Error("Invalid choice."))
		return -1, nil
	}
	return n - 1, nil
}

// BindScripts points the script engine's callbacks at whichever player is
// current when a hook runs.
func (g *Game) BindScripts(m *scripting.Manager) {
	g.scripts = m
	m.Message = func(text string) {
		g.Console.Println(g.Render.Flavor(text))
	}
	m.SetFlag = func(name string) {
		if g.Player != nil {
			g.Player.SetFlag(name)
		}
	}
	m.HasFlag = func(name string) bool {
		return g.Player != nil && g.Player.HasFlag(name)
	}
}

// enterRoom tells the scripts the player walked into roomID.
func (g *Game) enterRoom(roomID string) {
	if g.scripts != nil {
		g.scripts.EnterRoom(roomID)
	}
}

// aliveEnemies lists the current room's enemies the player has not defeated.
func (g *Game) aliveEnemies(room *world.Room) []string {
	return room.AliveEnemies(g.Player.HasDefeated)
}

// currentRoom returns the room the player is in.
func (g *Game) currentRoom() (*world.Room, bool) {
	return g.World.GetRoom(g.Player.CurrentRoom)
}

// NewGameLoop returns a Loop with the title, explore, combat, and death
// scenes registered against g.
//
// Precondition: g.Console, g.Render, and g.Logger must be non-nil.
func NewGameLoop(g *Game) *Loop {
	l := NewLoop(g.Console, g.Render.Info, g.Logger)
	l.Register(Title, NewTitleScene(g))
	l.Register(Explore, NewExploreScene(g))
	l.Register(Combat, NewCombatScene(g))
	l.Register(Death, NewDeathScene(g))
	return l
}
