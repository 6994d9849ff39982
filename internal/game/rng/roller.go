package rng

import "go.uber.org/zap"

// Roller wraps a Source with the battle-specific roll shapes and logs each
// roll at debug level with its purpose, bound, and result.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Intn returns a random int in [0, n), logging the draw.
//
// Precondition: n > 0.
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("rng draw",
		zap.Int("bound", n),
		zap.Int("value", v),
	)
	return v
}

// Percent draws a 1–100 roll and reports whether it is <= chance.
// A chance of 100 always succeeds; a chance of 0 never does.
//
// Precondition: chance in [0, 100].
func (r *Roller) Percent(chance int) bool {
	if chance >= 100 {
		return true
	}
	if chance <= 0 {
		return false
	}
	roll := r.src.Intn(100) + 1
	ok := roll <= chance
	r.logger.Debug("percent roll",
		zap.Int("chance", chance),
		zap.Int("roll", roll),
		zap.Bool("success", ok),
	)
	return ok
}

// Between returns a random int in [lo, hi] inclusive.
//
// Precondition: lo <= hi.
func (r *Roller) Between(lo, hi int) int {
	if lo > hi {
		panic("rng: Between called with lo > hi")
	}
	if lo == hi {
		return lo
	}
	v := lo + r.src.Intn(hi-lo+1)
	r.logger.Debug("range roll",
		zap.Int("lo", lo),
		zap.Int("hi", hi),
		zap.Int("value", v),
	)
	return v
}
