package combat

import (
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/game/inventory"
	"github.com/cory-johannsen/archadium/internal/game/npc"
)

// Prompts shown while a battle is driven interactively.
const (
	ActionPrompt = "Combat> "
	ItemPrompt   = "> "
)

// Input supplies lines of player input.
type Input interface {
	// ReadLine shows prompt and blocks for one line. It returns io.EOF when
	// input is exhausted.
	ReadLine(ctx context.Context, prompt string) (string, error)
}

// Presenter displays a battle.
type Presenter interface {
	// Portrait shows the enemy's art after it is announced.
	Portrait(b *Battle)
	// Status shows both combatants at the start of a player turn.
	Status(b *Battle)
	// Actions shows the numbered action menu.
	Actions()
	// Items shows the numbered consumable menu with a cancel entry.
	Items(options []*inventory.ItemDef)
	// Narrate shows battle messages in order.
	Narrate(msgs ...Message)
}

// NopPresenter discards all output.
type NopPresenter struct{}

func (NopPresenter) Portrait(*Battle)           {}
func (NopPresenter) Status(*Battle)             {}
func (NopPresenter) Actions()                   {}
func (NopPresenter) Items([]*inventory.ItemDef) {}
func (NopPresenter) Narrate(...Message)         {}

// Run drives a whole battle from in, presenting it through out. End of input
// at the action prompt counts as an attempt to flee.
//
// Precondition: player and enemy must be alive; in and out must be non-nil.
// Postcondition: On nil error the returned Result has a terminal Outcome.
// Input errors other than io.EOF abort the battle and are returned unchanged.
func (e *Engine) Run(ctx context.Context, player *character.Character, enemy *npc.Instance, in Input, out Presenter) (Result, error) {
	b, step := e.start(ctx, player, enemy, out)
	defer b.Close()

	for !b.Over() {
		if step.NewTurn {
			out.Status(b)
			out.Actions()
		}
		line, err := in.ReadLine(ctx, ActionPrompt)
		if errors.Is(err, io.EOF) {
			line = "4"
		} else if err != nil {
			return Result{}, err
		}

		action := Action{Kind: ParseAction(line)}
		if action.Kind == ActionUseItem {
			if options := b.Consumables(); len(options) > 0 {
				out.Items(options)
				id, err := chooseItem(ctx, in, options)
				if err != nil {
					return Result{}, err
				}
				action.ItemID = id
			}
		}

		step, err = b.Act(action)
		if err != nil {
			return Result{}, err
		}
	}
	return b.Result(), nil
}

// chooseItem reads a 1-based menu choice. Cancel, end of input, and invalid
// choices all yield an empty ID.
func chooseItem(ctx context.Context, in Input, options []*inventory.ItemDef) (string, error) {
	line, err := in.ReadLine(ctx, ItemPrompt)
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(options) {
		return "", nil
	}
	return options[n-1].ID, nil
}
