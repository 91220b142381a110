package scene

import (
	"context"
)

// DeathScene is shown after a defeat.
type DeathScene struct {
	g *Game
}

// NewDeathScene creates the death scene.
func NewDeathScene(g *Game) *DeathScene {
	return &DeathScene{g: g}
}

// Enter announces the defeat.
func (s *DeathScene) Enter(ctx context.Context) error {
	c := s.g.Console
	c.Println()
	c.Typewriter(s.g.Render.Error("You have fallen..."))
	c.Println()
	c.Lines(s.g.Render.Art(s.g.Art.Lines("death"), true), artFrameDelay)
	return nil
}

// Update offers loading the save, a new game, or quitting.
func (s *DeathScene) Update(ctx context.Context) (Transition, error) {
	idx, err := s.g.Choose(ctx, "What would you like to do?", []string{"Load Save", "New Game", "Quit"})
	if err != nil {
		return Stay, err
	}
	switch idx {
	case 0:
		if !s.g.LoadSave(ctx) {
			return Stay, nil
		}
		return To(Explore), nil
	case 1:
		return To(Title), nil
	case 2:
		return Quit, nil
	}
	return Stay, nil
}
