package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/archadium/internal/game/combat"
)

func TestAttackDamage(t *testing.T) {
	assert.Equal(t, 8, combat.AttackDamage(10, 2))
	assert.Equal(t, 1, combat.AttackDamage(3, 10), "damage never falls below 1")
}

func TestIncomingDamage_DefendingHalves(t *testing.T) {
	assert.Equal(t, 8, combat.IncomingDamage(8, false))
	assert.Equal(t, 4, combat.IncomingDamage(8, true))
	assert.Equal(t, 3, combat.IncomingDamage(7, true), "halving floors")
}

func TestFleeChance(t *testing.T) {
	assert.InDelta(t, 0.5, combat.FleeChance(0), 1e-9)
	assert.InDelta(t, 0.55, combat.FleeChance(1), 1e-9)
	assert.Greater(t, combat.FleeChance(20), 1.0, "chance is not clamped")
}

func TestParseAction(t *testing.T) {
	cases := map[string]combat.ActionKind{
		"1":      combat.ActionAttack,
		"attack": combat.ActionAttack,
		" 2 ":    combat.ActionDefend,
		"DEFEND": combat.ActionDefend,
		"3":      combat.ActionUseItem,
		"item":   combat.ActionUseItem,
		"4":      combat.ActionFlee,
		"run":    combat.ActionFlee,
		"5":      combat.ActionUnknown,
		"":       combat.ActionUnknown,
		"dance":  combat.ActionUnknown,
	}
	for in, want := range cases {
		assert.Equal(t, want, combat.ParseAction(in), "input %q", in)
	}
}

func TestPropertyFleeChanceMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.IntRange(0, 1000).Draw(t, "a")
		b := rapid.IntRange(a, 1000).Draw(t, "b")
		if combat.FleeChance(a) > combat.FleeChance(b) {
			t.Fatalf("FleeChance(%d) > FleeChance(%d)", a, b)
		}
	})
}

func TestPropertyAttackDamageAtLeastOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		atk := rapid.IntRange(0, 500).Draw(t, "attack")
		def := rapid.IntRange(0, 500).Draw(t, "defense")
		d := combat.AttackDamage(atk, def)
		if d < 1 {
			t.Fatalf("damage %d < 1", d)
		}
		if atk-def >= 1 && d != atk-def {
			t.Fatalf("damage %d, want %d", d, atk-def)
		}
	})
}
