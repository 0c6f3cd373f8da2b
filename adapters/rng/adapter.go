package rng

import (
	"context"
	"math/rand"

	"gocausal/internal/errors"
)

// Adapter implements ports.RNGPort with deterministic seeded streams.
type Adapter struct{}

// NewAdapter creates a new RNG adapter
func NewAdapter() *Adapter {
	return &Adapter{}
}

// SeededStream creates a deterministic random number generator for a named operation.
// The name participates in the seed so that two scenarios sharing a base seed
// still draw independent sequences.
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name == "" {
		return nil, errors.InvalidInput("stream name cannot be empty")
	}
	return rand.New(rand.NewSource(seed + int64(hashString(name)))), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
