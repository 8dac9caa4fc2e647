package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic operations.
// The bootstrap test depends on this so that determinism and parallel
// reproducibility are testable contracts, not incidental behavior.
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// ChunkStream derives an independent sub-stream for one worker chunk.
	// Streams for distinct chunk indices must be identical regardless of how
	// many workers consume them, so results are invariant to parallelism.
	ChunkStream(ctx context.Context, name string, baseSeed int64, chunk int) (*rand.Rand, error)
}
