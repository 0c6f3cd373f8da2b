package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gocausal/domain/core"
	"gocausal/ports"

	"github.com/jmoiron/sqlx"
)

// RunRepository persists scenario-run artifacts in PostgreSQL. It implements
// ports.LedgerPort with the same append-only semantics as the in-memory
// ledger; payloads are stored as JSONB.
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// EnsureSchema creates the artifact table if it does not exist
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS scenario_artifacts (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scenario_artifacts_run ON scenario_artifacts (run_id);
		CREATE INDEX IF NOT EXISTS idx_scenario_artifacts_kind ON scenario_artifacts (kind)`

	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure artifact schema: %w", err)
	}
	return nil
}

// StoreArtifact appends an artifact to a run
func (r *RunRepository) StoreArtifact(ctx context.Context, runID string, artifact core.Artifact) error {
	payloadJSON, err := json.Marshal(artifact.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact payload: %w", err)
	}

	query := `
		INSERT INTO scenario_artifacts (id, run_id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = r.db.ExecContext(ctx, query,
		artifact.ID.String(),
		runID,
		string(artifact.Kind),
		payloadJSON,
		artifact.CreatedAt.Time(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert artifact: %w", err)
	}
	return nil
}

// ListArtifacts queries artifacts with optional run/kind filters
func (r *RunRepository) ListArtifacts(ctx context.Context, filters ports.ArtifactFilters) ([]core.Artifact, error) {
	query := `
		SELECT id, kind, payload, created_at
		FROM scenario_artifacts
		WHERE ($1::TEXT IS NULL OR run_id = $1)
		  AND ($2::TEXT IS NULL OR kind = $2)
		ORDER BY created_at DESC
		LIMIT $3`

	var runID, kind sql.NullString
	if filters.RunID != nil {
		runID = sql.NullString{String: filters.RunID.String(), Valid: true}
	}
	if filters.Kind != nil {
		kind = sql.NullString{String: string(*filters.Kind), Valid: true}
	}
	limit := filters.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.QueryContext(ctx, query, runID, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	return scanArtifacts(rows)
}

// GetArtifact fetches a single artifact by ID
func (r *RunRepository) GetArtifact(ctx context.Context, artifactID core.ArtifactID) (*core.Artifact, error) {
	query := `
		SELECT id, kind, payload, created_at
		FROM scenario_artifacts
		WHERE id = $1`

	rows, err := r.db.QueryContext(ctx, query, artifactID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact: %w", err)
	}
	defer rows.Close()

	artifacts, err := scanArtifacts(rows)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, nil
	}
	return &artifacts[0], nil
}

// GetArtifactsByRun fetches all artifacts of a run in insertion order
func (r *RunRepository) GetArtifactsByRun(ctx context.Context, runID core.RunID) ([]core.Artifact, error) {
	query := `
		SELECT id, kind, payload, created_at
		FROM scenario_artifacts
		WHERE run_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get artifacts by run: %w", err)
	}
	defer rows.Close()

	return scanArtifacts(rows)
}

// ListRuns returns the most recent run IDs
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]core.RunID, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT run_id
		FROM scenario_artifacts
		GROUP BY run_id
		ORDER BY MAX(created_at) DESC
		LIMIT $1`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]core.RunID, len(ids))
	for i, id := range ids {
		runs[i] = core.RunID(id)
	}
	return runs, nil
}

func scanArtifacts(rows *sql.Rows) ([]core.Artifact, error) {
	var artifacts []core.Artifact
	for rows.Next() {
		var (
			id          string
			kind        string
			payloadJSON []byte
			createdAt   sql.NullTime
		)
		if err := rows.Scan(&id, &kind, &payloadJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan artifact row: %w", err)
		}

		var payload interface{}
		if err := json.Unmarshal(payloadJSON, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal artifact payload: %w", err)
		}

		artifacts = append(artifacts, core.Artifact{
			ID:        core.ID(id),
			Kind:      core.ArtifactKind(kind),
			Payload:   payload,
			CreatedAt: core.NewTimestamp(createdAt.Time),
		})
	}
	return artifacts, rows.Err()
}
