package ledger

import (
	"context"
	"sync"

	"gocausal/domain/core"
	"gocausal/internal/errors"
	"gocausal/ports"
)

// InMemoryLedger implements ports.LedgerPort with mutex-guarded in-memory
// storage. Used by the CLI and tests; the Postgres adapter serves the server.
type InMemoryLedger struct {
	artifacts    map[core.ArtifactID]core.Artifact
	runArtifacts map[core.RunID][]core.ArtifactID
	runOrder     []core.RunID
	mu           sync.RWMutex
}

// NewInMemoryLedger creates an empty in-memory ledger
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{
		artifacts:    make(map[core.ArtifactID]core.Artifact),
		runArtifacts: make(map[core.RunID][]core.ArtifactID),
	}
}

func (l *InMemoryLedger) StoreArtifact(ctx context.Context, runID string, artifact core.Artifact) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	artifactID := core.ArtifactID(artifact.ID)
	l.artifacts[artifactID] = artifact

	runIDTyped := core.RunID(runID)
	if l.runArtifacts[runIDTyped] == nil {
		l.runOrder = append(l.runOrder, runIDTyped)
	}
	l.runArtifacts[runIDTyped] = append(l.runArtifacts[runIDTyped], artifactID)

	return nil
}

func (l *InMemoryLedger) ListArtifacts(ctx context.Context, filters ports.ArtifactFilters) ([]core.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var results []core.Artifact
	for _, artifact := range l.artifacts {
		if filters.Kind != nil && artifact.Kind != *filters.Kind {
			continue
		}
		if filters.RunID != nil && !l.runContains(*filters.RunID, core.ArtifactID(artifact.ID)) {
			continue
		}
		results = append(results, artifact)
		if filters.Limit > 0 && len(results) >= filters.Limit {
			break
		}
	}
	return results, nil
}

func (l *InMemoryLedger) GetArtifact(ctx context.Context, artifactID core.ArtifactID) (*core.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	artifact, exists := l.artifacts[artifactID]
	if !exists {
		return nil, errors.NotFound("artifact " + artifactID.String())
	}
	return &artifact, nil
}

func (l *InMemoryLedger) GetArtifactsByRun(ctx context.Context, runID core.RunID) ([]core.Artifact, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	artifactIDs, exists := l.runArtifacts[runID]
	if !exists {
		return []core.Artifact{}, nil
	}

	artifacts := make([]core.Artifact, 0, len(artifactIDs))
	for _, aid := range artifactIDs {
		if artifact, ok := l.artifacts[aid]; ok {
			artifacts = append(artifacts, artifact)
		}
	}
	return artifacts, nil
}

func (l *InMemoryLedger) ListRuns(ctx context.Context, limit int) ([]core.RunID, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	runs := make([]core.RunID, len(l.runOrder))
	copy(runs, l.runOrder)
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}
	return runs, nil
}

func (l *InMemoryLedger) runContains(runID core.RunID, artifactID core.ArtifactID) bool {
	for _, aid := range l.runArtifacts[runID] {
		if aid == artifactID {
			return true
		}
	}
	return false
}
