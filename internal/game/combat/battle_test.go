package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/cory-johannsen/archadium/internal/game/character"
	"github.com/cory-johannsen/archadium/internal/game/combat"
	"github.com/cory-johannsen/archadium/internal/game/dice"
	"github.com/cory-johannsen/archadium/internal/game/event"
	"github.com/cory-johannsen/archadium/internal/game/inventory"
	"github.com/cory-johannsen/archadium/internal/game/npc"
)

type fixture struct {
	engine *combat.Engine
	bus    *event.Bus
	items  *inventory.Registry
	events []event.Name
}

func newFixture(t *testing.T, rolls ...float64) *fixture {
	t.Helper()
	if len(rolls) == 0 {
		rolls = []float64{0.99}
	}
	f := &fixture{bus: event.NewBus(), items: inventory.NewRegistry()}
	f.items.Register(&inventory.ItemDef{ID: "potion", Name: "Health Potion", Type: inventory.TypeConsumable, HealAmount: 20})
	f.items.Register(&inventory.ItemDef{ID: "bread", Name: "Bread", Type: inventory.TypeConsumable})
	f.items.Register(&inventory.ItemDef{ID: "sword", Name: "Iron Sword", Type: inventory.TypeWeapon, AttackBonus: 5})
	for _, name := range event.BattleEvents {
		f.bus.Subscribe(name, func(ev event.Event) { f.events = append(f.events, ev.Name) })
	}
	logger := zap.NewNop()
	f.engine = combat.NewEngine(combat.EngineConfig{
		Items:  f.items,
		Roller: dice.NewLoggedRoller(dice.NewFixedSource(rolls...), logger),
		Bus:    f.bus,
		Logger: logger,
	})
	return f
}

func goblin() *npc.Instance {
	return npc.NewInstance("g-1", &npc.Template{
		ID: "goblin", Name: "Goblin", HP: 30, Attack: 8, Defense: 2, XPReward: 25, GoldReward: 10,
	})
}

func texts(step combat.Step) []string {
	out := make([]string, 0, len(step.Messages))
	for _, m := range step.Messages {
		out = append(out, m.Text)
	}
	return out
}

func TestStart_OpensFirstPlayerTurn(t *testing.T) {
	f := newFixture(t)
	b, step := f.engine.Start(context.Background(), character.New("Hero", "village_square"), goblin())

	assert.Equal(t, combat.PhasePlayerTurn, b.Phase())
	assert.Equal(t, 1, b.Turn)
	assert.False(t, b.Defending)
	assert.True(t, step.NewTurn)
	assert.Equal(t, "A Goblin appears!", step.Messages[0].Text)
	assert.Equal(t, []event.Name{event.BattleStart}, f.events)
	assert.NotEmpty(t, b.ID)
}

func TestAttack_DealsAttackMinusDefense(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.Attack = 10
	e := goblin()
	b, _ := f.engine.Start(context.Background(), p, e)

	step, err := b.Act(combat.Action{Kind: combat.ActionAttack})
	require.NoError(t, err)
	assert.True(t, step.Consumed)
	assert.Equal(t, 22, e.HP)
	assert.Contains(t, texts(step), "You strike the Goblin for 8 damage!")
	assert.Contains(t, texts(step), "The Goblin attacks you for 3 damage!")
	assert.Equal(t, 2, b.Turn)
}

func TestDefend_HalvesEnemyAttackBeforeDefense(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.Defense = 5
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionDefend})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"You brace yourself for the next attack.",
		"The Goblin attacks you for 1 damage!",
	}, texts(step))
	assert.Equal(t, 99, p.HP)
	assert.False(t, b.Defending, "defending resets at the next player turn")
}

func TestUseItem_HealsAndConsumes(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.HP = 90
	p.Defense = 100
	p.AddItem("potion")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionUseItem, ItemID: "potion"})
	require.NoError(t, err)
	assert.True(t, step.Consumed)
	assert.Equal(t, "You use Health Potion and recover 10 HP!", step.Messages[0].Text)
	assert.False(t, p.HasItem("potion"))
	assert.Equal(t, 99, p.HP, "healed to 100 then hit for the minimum 1")
}

func TestUseItem_WithoutHealing(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.AddItem("bread")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionUseItem, ItemID: "bread"})
	require.NoError(t, err)
	assert.Equal(t, "You use Bread.", step.Messages[0].Text)
}

func TestUseItem_NoConsumablesDoesNotSpendTurn(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.AddItem("sword")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionUseItem})
	require.NoError(t, err)
	assert.False(t, step.Consumed)
	assert.Equal(t, []string{"You have no usable items."}, texts(step))
	assert.Equal(t, 1, b.Turn)
	assert.Equal(t, 100, p.HP)
}

func TestUseItem_CancelledDoesNotSpendTurn(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.AddItem("potion")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	for _, id := range []string{"", "sword", "ghost"} {
		step, err := b.Act(combat.Action{Kind: combat.ActionUseItem, ItemID: id})
		require.NoError(t, err)
		assert.False(t, step.Consumed, "item %q", id)
		assert.Empty(t, step.Messages)
	}
	assert.True(t, p.HasItem("potion"))
}

func TestUnknownAction_DoesNotSpendTurn(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionUnknown})
	require.NoError(t, err)
	assert.False(t, step.Consumed)
	assert.False(t, step.NewTurn)
	assert.Equal(t, []string{"Choose 1-4."}, texts(step))
	assert.Equal(t, 1, b.Turn)
	assert.Equal(t, 100, p.HP)
}

func TestFlee_Success(t *testing.T) {
	f := newFixture(t, 0.1)
	p := character.New("Hero", "village_square")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionFlee})
	require.NoError(t, err)
	assert.Equal(t, []string{"You flee from battle!"}, texts(step))
	assert.Equal(t, combat.PhaseFled, b.Phase())
	assert.Equal(t, combat.OutcomeFled, b.Result().Outcome)
	assert.Equal(t, 100, p.HP, "the enemy does not strike a fleeing player")
	assert.Equal(t, []event.Name{event.BattleStart, event.BattleFlee}, f.events)
}

func TestFlee_FailureLetsEnemyStrike(t *testing.T) {
	f := newFixture(t, 0.99)
	p := character.New("Hero", "village_square")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionFlee})
	require.NoError(t, err)
	assert.Equal(t, "You failed to escape!", step.Messages[0].Text)
	assert.Equal(t, combat.PhasePlayerTurn, b.Phase())
	assert.Less(t, p.HP, 100)
}

func TestFlee_UsesTurnScaledChance(t *testing.T) {
	// 0.56 fails at turn 1 (0.55) and succeeds at turn 2 (0.60).
	f := newFixture(t, 0.56)
	p := character.New("Hero", "village_square")
	b, _ := f.engine.Start(context.Background(), p, goblin())

	_, err := b.Act(combat.Action{Kind: combat.ActionFlee})
	require.NoError(t, err)
	require.False(t, b.Over())
	_, err = b.Act(combat.Action{Kind: combat.ActionFlee})
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeFled, b.Result().Outcome)
}

func TestVictory_AppliesRewards(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	e := goblin()
	e.HP = 1
	b, _ := f.engine.Start(context.Background(), p, e)

	step, err := b.Act(combat.Action{Kind: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, combat.PhaseVictory, step.Phase)
	assert.Equal(t, []string{
		"You strike the Goblin for 8 damage!",
		"You defeated the Goblin!",
		"+10 gold  +25 XP",
	}, texts(step))
	assert.Equal(t, 10, p.Gold)
	assert.Equal(t, 25, p.XP)
	assert.True(t, p.HasDefeated("goblin"))
	assert.True(t, p.HasFlag("defeated_goblin"))
	assert.Equal(t, combat.Result{Outcome: combat.OutcomeVictory, XP: 25, Gold: 10, Turns: 1}, b.Result())
	assert.Equal(t, []event.Name{event.BattleStart, event.PlayerAttack, event.BattleVictory}, f.events)
}

func TestVictory_AnnouncesLevelUp(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.XP = 90
	e := goblin()
	e.HP = 1
	b, _ := f.engine.Start(context.Background(), p, e)

	step, err := b.Act(combat.Action{Kind: combat.ActionAttack})
	require.NoError(t, err)
	assert.Contains(t, texts(step), "Level up! You are now level 2!")
	assert.Equal(t, 1, b.Result().LevelsGained)
}

func TestDefeat(t *testing.T) {
	f := newFixture(t)
	p := character.New("Hero", "village_square")
	p.HP = 1
	b, _ := f.engine.Start(context.Background(), p, goblin())

	step, err := b.Act(combat.Action{Kind: combat.ActionDefend})
	require.NoError(t, err)
	assert.Equal(t, combat.PhaseDefeat, step.Phase)
	assert.Equal(t, "You have been defeated...", step.Messages[len(step.Messages)-1].Text)
	assert.Equal(t, 0, p.HP)
	assert.Equal(t, []event.Name{event.BattleStart, event.EnemyAttack, event.BattleDefeat}, f.events)

	_, err = b.Act(combat.Action{Kind: combat.ActionAttack})
	assert.ErrorIs(t, err, combat.ErrBattleOver)
}

func TestEvents_CarryBattleIdentity(t *testing.T) {
	f := newFixture(t)
	var got []event.Event
	f.bus.Subscribe(event.PlayerAttack, func(ev event.Event) { got = append(got, ev) })
	b, _ := f.engine.Start(context.Background(), character.New("Hero", "village_square"), goblin())

	_, err := b.Act(combat.Action{Kind: combat.ActionAttack})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].BattleID)
	assert.Equal(t, "goblin", got[0].EnemyID)
	assert.Equal(t, "Goblin", got[0].EnemyName)
	assert.Equal(t, 8, got[0].Damage)
}

func TestBattle_RecordsSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	f := newFixture(t, 0.0)
	engine := combat.NewEngine(combat.EngineConfig{
		Items:  f.items,
		Roller: dice.NewLoggedRoller(dice.NewFixedSource(0.0), zap.NewNop()),
		Bus:    f.bus,
		Logger: zap.NewNop(),
		Tracer: tp.Tracer("test"),
	})
	b, _ := engine.Start(context.Background(), character.New("Hero", "village_square"), goblin())
	_, err := b.Act(combat.Action{Kind: combat.ActionFlee})
	require.NoError(t, err)
	b.Close()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "combat.battle", spans[0].Name())
	found := false
	for _, kv := range spans[0].Attributes() {
		if kv.Key == "battle.outcome" {
			found = true
			assert.Equal(t, "fled", kv.Value.AsString())
		}
	}
	assert.True(t, found)
}
