package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger. All rolls are logged at debug level in
// their "3d6: 4+2+6 = 12" form.
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

// Roll evaluates expr and logs the result.
func (r *Roller) Roll(expr Expression) (RollResult, error) {
	result, err := Roll(expr, r.src)
	if err != nil {
		return RollResult{}, err
	}
	r.logger.Debug("dice roll",
		zap.Stringer("roll", result),
		zap.Int("total", result.Total()),
	)
	return result, nil
}
