package combat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/game/dice"
	"github.com/cory-johannsen/archadium/internal/game/event"
	"github.com/cory-johannsen/archadium/internal/game/inventory"
	"github.com/cory-johannsen/archadium/internal/game/npc"
)

// ErrBattleOver is returned by Act once the battle has reached a terminal phase.
var ErrBattleOver = errors.New("battle is over")

// EngineConfig carries the collaborators shared by every battle.
type EngineConfig struct {
	Items  character.ItemLookup
	Roller *dice.Roller
	Bus    *event.Bus
	Logger *zap.Logger
	// Tracer may be nil, in which case battles are not traced.
	Tracer trace.Tracer
	// CascadeLevelUps applies every level-up a victory's xp pays for.
	CascadeLevelUps bool
}

// Engine starts battles.
type Engine struct {
	cfg EngineConfig
}

// NewEngine creates an Engine.
//
// Precondition: cfg.Items, cfg.Roller, cfg.Bus, and cfg.Logger must be non-nil.
func NewEngine(cfg EngineConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Battle is one encounter. It is driven by Act and is not safe for concurrent use.
type Battle struct {
	ID     string
	Player *character.Character
	Enemy  *npc.Instance
	// Turn counts player turns; it is 1 during the first player turn.
	Turn      int
	Defending bool

	phase  Phase
	result Result
	eng    *Engine
	logger *zap.Logger
	span   trace.Span
	// out, when set, is shown each message and the portrait as they are
	// produced, ahead of any event published later in the same step.
	out Presenter
}

// Start announces enemy and opens the battle at the first player turn.
//
// Precondition: player and enemy must be non-nil and both alive.
// Postcondition: battle_start is published; Phase() == PhasePlayerTurn and Turn == 1.
func (e *Engine) Start(ctx context.Context, player *character.Character, enemy *npc.Instance) (*Battle, Step) {
	return e.start(ctx, player, enemy, nil)
}

// start opens a battle. A non-nil out is shown messages immediately and the
// returned steps carry none.
func (e *Engine) start(ctx context.Context, player *character.Character, enemy *npc.Instance, out Presenter) (*Battle, Step) {
	b := &Battle{
		ID:     uuid.NewString(),
		Player: player,
		Enemy:  enemy,
		phase:  PhaseEngage,
		eng:    e,
		out:    out,
	}
	b.logger = e.cfg.Logger.With(zap.String("battle_id", b.ID), zap.String("enemy_id", enemy.TemplateID))
	if e.cfg.Tracer != nil {
		_, b.span = e.cfg.Tracer.Start(ctx, "combat.battle", trace.WithAttributes(
			attribute.String("battle.id", b.ID),
			attribute.String("enemy.id", enemy.TemplateID),
			attribute.Int("player.level", player.Level),
		))
	}

	step := b.newStep()
	step.say(ToneAnnounce, fmt.Sprintf("A %s appears!", enemy.Name))
	if enemy.Description != "" {
		step.say(ToneInfo, enemy.Description)
	}
	if out != nil {
		out.Portrait(b)
	}
	b.logger.Info("battle started", zap.Int("enemy_hp", enemy.HP), zap.Int("player_hp", player.HP))
	b.publish(event.Event{Name: event.BattleStart})

	b.beginPlayerTurn(&step)
	step.Phase = b.phase
	return b, step
}

// Phase returns the current state.
func (b *Battle) Phase() Phase { return b.phase }

// Over reports whether the battle has ended.
func (b *Battle) Over() bool { return b.phase.Terminal() }

// Result returns the outcome; it is meaningful once Over is true.
func (b *Battle) Result() Result { return b.result }

// Consumables returns the distinct consumables the player may use, in menu order.
func (b *Battle) Consumables() []*inventory.ItemDef {
	return b.Player.Consumables(b.eng.cfg.Items)
}

// Act resolves one player action and, when the turn is consumed and the enemy
// survives, the enemy's reply.
//
// Precondition: Phase() == PhasePlayerTurn.
// Postcondition: Returns ErrBattleOver if the battle already ended. An
// unconsumed step leaves the turn, the defending flag, and both combatants unchanged.
func (b *Battle) Act(a Action) (Step, error) {
	if b.Over() {
		return Step{Phase: b.phase}, ErrBattleOver
	}
	step := b.newStep()
	switch a.Kind {
	case ActionAttack:
		b.attack(&step)
	case ActionDefend:
		b.Defending = true
		step.say(ToneInfo, "You brace yourself for the next attack.")
		step.Consumed = true
	case ActionUseItem:
		b.useItem(&step, a.ItemID)
	case ActionFlee:
		b.flee(&step)
	default:
		step.say(ToneError, "Choose 1-4.")
	}

	if step.Consumed && !b.Over() {
		if !b.Enemy.IsAlive() {
			b.victory(&step)
		} else {
			b.enemyTurn(&step)
			if !b.Player.IsAlive() {
				b.defeat(&step)
			} else {
				b.beginPlayerTurn(&step)
			}
		}
	}
	step.Phase = b.phase
	return step, nil
}

// Close ends the trace span of an abandoned battle. It is safe to call more than once.
func (b *Battle) Close() {
	if b.span != nil {
		if !b.Over() {
			b.span.SetStatus(codes.Error, "abandoned")
		}
		b.span.End()
		b.span = nil
	}
}

func (b *Battle) newStep() Step {
	if b.out == nil {
		return Step{}
	}
	return Step{narrate: func(m Message) { b.out.Narrate(m) }}
}

func (b *Battle) beginPlayerTurn(step *Step) {
	b.phase = PhasePlayerTurn
	b.Turn++
	b.Defending = false
	step.NewTurn = true
}

func (b *Battle) attack(step *Step) {
	items := b.eng.cfg.Items
	dmg := b.Enemy.TakeDamage(b.Player.EffectiveAttack(items))
	step.say(ToneDamage, fmt.Sprintf("You strike the %s for %d damage!", b.Enemy.Name, dmg))
	b.logger.Debug("player attack", zap.Int("damage", dmg), zap.Int("enemy_hp", b.Enemy.HP))
	b.publish(event.Event{Name: event.PlayerAttack, Damage: dmg})
	step.Consumed = true
}

func (b *Battle) useItem(step *Step, itemID string) {
	options := b.Consumables()
	if len(options) == 0 {
		step.say(ToneInfo, "You have no usable items.")
		return
	}
	if itemID == "" {
		return
	}
	def, healed, err := b.Player.UseItem(itemID, b.eng.cfg.Items)
	if err != nil {
		// Not carried, not a consumable, or unknown: treated as a cancelled menu.
		return
	}
	if def.HealAmount > 0 {
		step.say(ToneHeal, fmt.Sprintf("You use %s and recover %d HP!", def.Name, healed))
	} else {
		step.say(ToneHeal, fmt.Sprintf("You use %s.", def.Name))
	}
	b.logger.Debug("item used", zap.String("item_id", itemID), zap.Int("healed", healed))
	step.Consumed = true
}

func (b *Battle) flee(step *Step) {
	step.Consumed = true
	chance := FleeChance(b.Turn)
	if b.eng.cfg.Roller.Check("flee", chance).Success {
		step.say(ToneInfo, "You flee from battle!")
		b.publish(event.Event{Name: event.BattleFlee})
		b.finish(OutcomeFled)
		return
	}
	step.say(ToneError, "You failed to escape!")
}

func (b *Battle) enemyTurn(step *Step) {
	b.phase = PhaseEnemyTurn
	incoming := IncomingDamage(b.Enemy.Attack, b.Defending)
	actual := b.Player.TakeDamage(incoming, b.Player.EffectiveDefense(b.eng.cfg.Items))
	step.say(ToneDamage, fmt.Sprintf("The %s attacks you for %d damage!", b.Enemy.Name, actual))
	b.logger.Debug("enemy attack",
		zap.Int("incoming", incoming),
		zap.Int("damage", actual),
		zap.Bool("defending", b.Defending),
		zap.Int("player_hp", b.Player.HP),
	)
	b.publish(event.Event{Name: event.EnemyAttack, Damage: actual})
}

func (b *Battle) victory(step *Step) {
	xp, gold := b.Enemy.XPReward, b.Enemy.GoldReward
	step.say(ToneSuccess, fmt.Sprintf("You defeated the %s!", b.Enemy.Name))

	b.Player.AddGold(gold)
	levels := b.Player.AddXP(xp, b.eng.cfg.CascadeLevelUps)
	step.say(ToneReward, fmt.Sprintf("+%d gold  +%d XP", gold, xp))
	if levels > 0 {
		step.say(ToneSuccess, fmt.Sprintf("Level up! You are now level %d!", b.Player.Level))
	}
	b.Player.MarkDefeated(b.Enemy.TemplateID)
	b.Player.SetFlag("defeated_" + b.Enemy.TemplateID)

	b.result.XP = xp
	b.result.Gold = gold
	b.result.LevelsGained = levels
	b.publish(event.Event{Name: event.BattleVictory, XP: xp, Gold: gold})
	b.finish(OutcomeVictory)
}

func (b *Battle) defeat(step *Step) {
	step.say(ToneError, "You have been defeated...")
	b.publish(event.Event{Name: event.BattleDefeat})
	b.finish(OutcomeDefeat)
}

func (b *Battle) finish(o Outcome) {
	switch o {
	case OutcomeVictory:
		b.phase = PhaseVictory
	case OutcomeDefeat:
		b.phase = PhaseDefeat
	case OutcomeFled:
		b.phase = PhaseFled
	}
	b.result.Outcome = o
	b.result.Turns = b.Turn
	b.logger.Info("battle ended",
		zap.Stringer("outcome", o),
		zap.Int("turns", b.Turn),
		zap.Int("xp", b.result.XP),
		zap.Int("gold", b.result.Gold),
	)
	if b.span != nil {
		b.span.SetAttributes(
			attribute.String("battle.outcome", o.String()),
			attribute.Int("battle.turns", b.Turn),
		)
		b.span.End()
		b.span = nil
	}
}

func (b *Battle) publish(ev event.Event) {
	ev.BattleID = b.ID
	ev.EnemyID = b.Enemy.TemplateID
	ev.EnemyName = b.Enemy.Name
	b.eng.cfg.Bus.Publish(ev)
}

func (s *Step) say(tone Tone, text string) {
	m := Message{Tone: tone, Text: text}
	if s.narrate != nil {
		s.narrate(m)
		return
	}
	s.Messages = append(s.Messages, m)
}
