package scene

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/frontend/render"
	"github.com/cory-johannsen/archadium/internal/game/combat"
)

// CombatScene fights the pending enemy to a finish.
type CombatScene struct {
	g *Game
}

// NewCombatScene creates the combat scene.
func NewCombatScene(g *Game) *CombatScene {
	return &CombatScene{g: g}
}

// Enter does nothing; the battle announces itself.
func (s *CombatScene) Enter(ctx context.Context) error { return nil }

// Update runs one whole battle against the pending enemy, which is consumed
// whether or not the battle completes.
//
// Postcondition: Victory and flight return to exploring, defeat goes to the
// death scene, and a missing or unknown enemy returns to exploring.
func (s *CombatScene) Update(ctx context.Context) (Transition, error) {
	g := s.g
	id := g.PendingEnemy
	g.PendingEnemy = ""
	if id == "" {
		return To(Explore), nil
	}

	enemy, ok := g.Enemies.Spawn(id)
	if !ok {
		g.Logger.Warn("unknown enemy", zap.String("enemy_id", id))
		g.Console.Println(g.Render.Error(fmt.Sprintf("Unknown enemy: %s", id)))
		return To(Explore), nil
	}

	result, err := g.Engine.Run(ctx, g.Player, enemy, g.Console, render.NewBattlePresenter(g.Render, g.Console))
	if err != nil {
		return Stay, err
	}
	g.Console.Println()

	switch result.Outcome {
	case combat.OutcomeVictory:
		return To(Explore), nil
	case combat.OutcomeFled:
		g.Console.Println(g.Render.Info("You retreat to safety."))
		return To(Explore), nil
	default:
		return To(Death), nil
	}
}
