package ports

import (
	"context"

	"gocausal/domain/core"
)

// LedgerWriterPort provides append-only write access to artifacts
type LedgerWriterPort interface {
	StoreArtifact(ctx context.Context, runID string, artifact core.Artifact) error
}

// LedgerReaderPort provides read-only access to stored artifacts
// Use this for queries, replay, and UI/API access
type LedgerReaderPort interface {
	ListArtifacts(ctx context.Context, filters ArtifactFilters) ([]core.Artifact, error)
	GetArtifact(ctx context.Context, artifactID core.ArtifactID) (*core.Artifact, error)
	GetArtifactsByRun(ctx context.Context, runID core.RunID) ([]core.Artifact, error)
	ListRuns(ctx context.Context, limit int) ([]core.RunID, error)
}

// ArtifactFilters for querying artifacts
type ArtifactFilters struct {
	RunID *core.RunID
	Kind  *core.ArtifactKind
	Limit int
}

// LedgerPort combines read and write access
type LedgerPort interface {
	LedgerWriterPort
	LedgerReaderPort
}
