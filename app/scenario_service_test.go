package app

import (
	"context"
	"math"
	"testing"

	"gocausal/adapters/rng"
	"gocausal/domain/core"
	"gocausal/internal/ledger"
	"gocausal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*ScenarioService, *ledger.InMemoryLedger) {
	store := ledger.NewInMemoryLedger()
	return NewScenarioService(rng.NewAdapter(), store), store
}

func TestRunAssociationSummary(t *testing.T) {
	service, store := newTestService()
	runID := core.RunID("test-run")

	summary, err := service.RunAssociation(context.Background(), runID, 50000, 42)
	require.NoError(t, err)

	assert.Equal(t, 50000, summary.SampleSize)
	assert.InDelta(t, 0.39, summary.PTreatment, 0.02)

	// Conditioning on the outcome raises the treatment's probability well
	// above its marginal: association without intervention.
	assert.Greater(t, summary.PTreatmentGivenOutcome, summary.PTreatment+0.1)

	artifacts, err := store.GetArtifactsByRun(context.Background(), runID)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, core.ArtifactAssociationSummary, artifacts[0].Kind)
}

func TestRunInterventionSummary(t *testing.T) {
	service, _ := newTestService()

	summary, err := service.RunIntervention(context.Background(), core.RunID("test-run"), 20000, 1.5, 42)
	require.NoError(t, err)

	assert.InDelta(t, 0.98, summary.Observational.R, 0.01)
	assert.Less(t, summary.Observational.PValue, 1e-6)

	// do(A=1.5): mean(B) = 5*1.5 + mean(U1) ~ 7.5
	assert.InDelta(t, 7.5, summary.MeanOutcomeUnderDose, 0.1)

	// do(B): the correlation collapses.
	assert.Less(t, math.Abs(summary.SeveredOutcome.R), 0.1)
}

func TestRunCounterfactualWorkedExample(t *testing.T) {
	service, store := newTestService()
	runID := core.RunID("test-run")

	summary, err := service.RunCounterfactual(context.Background(), runID, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1.0, summary.Case.Trait)
	assert.Equal(t, 0.0, summary.OutcomeUntreated)
	assert.Equal(t, 1.0, summary.OutcomeTreated)

	artifacts, err := store.GetArtifactsByRun(context.Background(), runID)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, core.ArtifactCounterfactualCase, artifacts[0].Kind)
}

func TestRunCounterfactualRejectsHalfTreatment(t *testing.T) {
	service, _ := newTestService()

	_, err := service.RunCounterfactual(context.Background(), core.RunID("test-run"), 0.5, 1)
	assert.Error(t, err)
}

func TestRunAllStoresManifestAndSummaries(t *testing.T) {
	service, store := newTestService()

	result, err := service.RunAll(context.Background(), 5000, 1.5, 42)
	require.NoError(t, err)
	assert.False(t, core.ID(result.RunID).IsEmpty())

	artifacts, err := store.GetArtifactsByRun(context.Background(), result.RunID)
	require.NoError(t, err)
	require.Len(t, artifacts, 4)

	kinds := map[core.ArtifactKind]bool{}
	for _, a := range artifacts {
		kinds[a.Kind] = true
	}
	assert.True(t, kinds[core.ArtifactAssociationSummary])
	assert.True(t, kinds[core.ArtifactInterventionSummary])
	assert.True(t, kinds[core.ArtifactCounterfactualCase])
	assert.True(t, kinds[core.ArtifactRunManifest])
}

func TestRunAllReproducibleBySeed(t *testing.T) {
	first, _ := newTestService()
	second, _ := newTestService()

	a, err := first.RunAll(context.Background(), 2000, 1.5, 7)
	require.NoError(t, err)
	b, err := second.RunAll(context.Background(), 2000, 1.5, 7)
	require.NoError(t, err)

	// Run IDs differ, statistics match exactly under the same seed.
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, a.Association, b.Association)
	assert.Equal(t, a.Intervention, b.Intervention)
	assert.Equal(t, a.Counterfactual, b.Counterfactual)
}

var _ ports.LedgerPort = (*ledger.InMemoryLedger)(nil)
