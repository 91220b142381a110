package combat

import "strings"

// Flee probability parameters.
const (
	FleeBaseChance    = 0.5
	FleeChancePerTurn = 0.05
)

// AttackDamage is the damage an attack of the given strength deals through defense.
//
// Postcondition: Returns max(1, attack-defense).
func AttackDamage(attack, defense int) int {
	return max(1, attack-defense)
}

// IncomingDamage is the enemy's attack before the player's defense applies.
// Defending halves it with floor division.
func IncomingDamage(enemyAttack int, defending bool) int {
	if defending {
		return enemyAttack / 2
	}
	return enemyAttack
}

// FleeChance returns the flee success probability on the given turn.
// The value is not clamped; anything >= 1 always succeeds against a roll in [0,1).
//
// Postcondition: FleeChance(0) == 0.5 and the result is non-decreasing in turn.
func FleeChance(turn int) float64 {
	return FleeBaseChance + FleeChancePerTurn*float64(turn)
}

// ParseAction maps raw combat input to an action kind.
//
// Postcondition: Returns ActionUnknown for anything but the accepted inputs.
func ParseAction(raw string) ActionKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "attack":
		return ActionAttack
	case "2", "defend":
		return ActionDefend
	case "3", "use", "item":
		return ActionUseItem
	case "4", "flee", "run":
		return ActionFlee
	default:
		return ActionUnknown
	}
}
