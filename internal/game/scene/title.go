package scene

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// artFrameDelay paces art drawn line by line.
const artFrameDelay = 60 * time.Millisecond

// TitleScene offers a new game, a saved game, or quitting.
type TitleScene struct {
	g *Game
}

// NewTitleScene creates the title scene.
func NewTitleScene(g *Game) *TitleScene {
	return &TitleScene{g: g}
}

// Enter draws the title art.
func (s *TitleScene) Enter(ctx context.Context) error {
	c := s.g.Console
	c.Lines(s.g.Render.Art(s.g.Art.Lines("title"), false), artFrameDelay)
	c.Println()
	c.Println(s.g.Render.Subtitle("A text adventure awaits..."))
	return nil
}

// Update runs the title menu once.
func (s *TitleScene) Update(ctx context.Context) (Transition, error) {
	idx, err := s.g.Choose(ctx, "What would you like to do?", []string{"New Game", "Load Game", "Quit"})
	if err != nil {
		return Stay, err
	}
	switch idx {
	case 0:
		return s.newGame(ctx)
	case 1:
		if !s.g.LoadSave(ctx) {
			return Stay, nil
		}
		s.g.Console.Println(s.g.Render.Success(fmt.Sprintf("Welcome back, %s.", s.g.Player.PlayerName)))
		s.g.Console.DramaticPause(800 * time.Millisecond)
		return To(Explore), nil
	case 2:
		return Quit, nil
	}
	return Stay, nil
}

// newGame asks for a name. End of input at the name prompt takes the default.
func (s *TitleScene) newGame(ctx context.Context) (Transition, error) {
	s.g.Console.Println()
	name, err := s.g.Console.ReadLine(ctx, s.g.Render.Prompt("Enter your name: "))
	if err != nil && !errors.Is(err, io.EOF) {
		return Stay, err
	}
	s.g.NewGame(name)
	s.g.Console.Println()
	s.g.Console.Println(s.g.Render.Success(fmt.Sprintf("Welcome, %s. Your adventure begins...", s.g.Player.PlayerName)))
	s.g.Console.DramaticPause(time.Second)
	return To(Explore), nil
}
