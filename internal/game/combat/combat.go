// Package combat implements the turn-based battle engine between the
// player's progress state and a spawned enemy instance.
package combat

// Phase is a state of the battle state machine.
type Phase int

const (
	PhaseEngage Phase = iota
	PhasePlayerTurn
	PhaseEnemyTurn
	PhaseVictory
	PhaseDefeat
	PhaseFled
)

// String returns a lower-case phase label.
func (p Phase) String() string {
	switch p {
	case PhaseEngage:
		return "engage"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the battle.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat || p == PhaseFled
}

// ActionKind is a player turn choice.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionAttack
	ActionDefend
	ActionUseItem
	ActionFlee
)

// String returns the canonical action name.
func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionUseItem:
		return "use"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is one submitted player choice. ItemID is only read for ActionUseItem;
// an empty ItemID there means the item menu was cancelled.
type Action struct {
	Kind   ActionKind
	ItemID string
}

// Tone classifies narration for display styling.
type Tone int

const (
	ToneInfo Tone = iota
	ToneDamage
	ToneHeal
	ToneError
	ToneSuccess
	ToneReward
	ToneAnnounce
)

// Message is one line of battle narration.
type Message struct {
	Tone Tone
	Text string
}

// Step reports the effect of one Start or Act call.
type Step struct {
	// Messages is the narration, in order. It is empty when the battle is
	// driven by Run, which presents each message as it happens.
	Messages []Message
	// Consumed is true when the player's turn was spent.
	Consumed bool
	// NewTurn is true when a fresh player turn has begun and the status
	// should be redisplayed.
	NewTurn bool
	Phase   Phase

	narrate func(Message)
}

// Outcome is the terminal result of a battle.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
	OutcomeFled
)

// String returns a lower-case outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	default:
		return "none"
	}
}

// Result summarises a finished battle.
type Result struct {
	Outcome      Outcome
	XP           int
	Gold         int
	LevelsGained int
	Turns        int
}
