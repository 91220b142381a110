package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged chance checks.
// All checks are logged at debug level with label, chance, roll, and outcome.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Check rolls against chance and logs the result at debug level.
//
// Postcondition: result logged; Success == (Roll < chance).
func (r *Roller) Check(label string, chance float64) ChanceResult {
	res := Check(label, chance, r.src)
	r.logger.Debug("chance roll",
		zap.String("label", res.Label),
		zap.Float64("chance", res.Chance),
		zap.Float64("roll", res.Roll),
		zap.Bool("success", res.Success),
	)
	return res
}

// Roll throws one die with the given number of sides and logs the result at
// debug level.
//
// Precondition: sides > 0.
// Postcondition: Returns a value in [1, sides].
func (r *Roller) Roll(label string, sides int) int {
	v := r.src.Intn(sides) + 1
	r.logger.Debug("die roll",
		zap.String("label", label),
		zap.Int("sides", sides),
		zap.Int("result", v),
	)
	return v
}
