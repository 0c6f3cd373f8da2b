package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic sampling.
// Each scenario draws from its own stream so that reproducibility is an
// explicit contract: the same (name, seed) pair always yields the same
// sequence, independent of what other scenarios have drawn.
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
