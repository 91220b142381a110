// Package dice provides the randomness abstraction used by the combat engine.
package dice

// Source is the randomness provider for combat rolls.
type Source interface {
	// Float64 returns a uniformly distributed value in [0, 1).
	Float64() float64
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// ChanceResult records one probability check.
//
// Postcondition: Success == (Roll < Chance).
type ChanceResult struct {
	Label   string
	Chance  float64
	Roll    float64
	Success bool
}

// Check rolls src once against chance.
//
// Precondition: src must be non-nil.
// Postcondition: Success is true iff the roll is strictly below chance, so a
// chance >= 1 always succeeds and a chance <= 0 never does.
func Check(label string, chance float64, src Source) ChanceResult {
	roll := src.Float64()
	return ChanceResult{
		Label:   label,
		Chance:  chance,
		Roll:    roll,
		Success: roll < chance,
	}
}
