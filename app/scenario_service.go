package app

import (
	"context"

	"gocausal/domain/core"
	"gocausal/domain/scm"
	"gocausal/internal/analysis"
	"gocausal/internal/errors"
	"gocausal/internal/sampler"
	"gocausal/ports"

	"golang.org/x/sync/errgroup"
)

// Scenario stream names. Each scenario owns a distinct RNG stream derived
// from (name, seed) so reseeding per scenario is explicit and the streams
// stay independent of each other and of scheduling order.
const (
	StreamAssociation  = "association"
	StreamIntervention = "intervention"
)

// AssociationSummary captures the observed probabilities of the binary
// scenario: conditioning on the outcome shifts the treatment's distribution
// even though nothing intervened on it.
type AssociationSummary struct {
	SampleSize             int     `json:"sample_size"`
	PTreatment             float64 `json:"p_treatment"`
	POutcome               float64 `json:"p_outcome"`
	PTreatmentGivenOutcome float64 `json:"p_treatment_given_outcome"`
	POutcomeGivenTreatment float64 `json:"p_outcome_given_treatment"`
}

// InterventionSummary contrasts the observational correlation with the two
// do-operations: forcing the treatment preserves the structural link to the
// outcome, while forcing the outcome severs it.
type InterventionSummary struct {
	SampleSize           int                  `json:"sample_size"`
	Observational        analysis.Correlation `json:"observational"`
	TreatmentDose        float64              `json:"treatment_dose"`
	MeanOutcomeObserved  float64              `json:"mean_outcome_observed"`
	MeanOutcomeUnderDose float64              `json:"mean_outcome_under_dose"`
	SeveredOutcome       analysis.Correlation `json:"severed_outcome"`
}

// CounterfactualSummary is one individual's abducted trait plus the outcome
// predicted under each hypothetical treatment.
type CounterfactualSummary struct {
	Case             scm.CounterfactualCase `json:"case"`
	OutcomeUntreated float64                `json:"outcome_untreated"`
	OutcomeTreated   float64                `json:"outcome_treated"`
}

// RunManifest records what is needed to replay a run byte-for-byte.
type RunManifest struct {
	RunID      core.RunID `json:"run_id"`
	Seed       int64      `json:"seed"`
	SampleSize int        `json:"sample_size"`
	Scenarios  []string   `json:"scenarios"`
}

// RunResult bundles the artifacts of one full run.
type RunResult struct {
	RunID          core.RunID            `json:"run_id"`
	Association    AssociationSummary    `json:"association"`
	Intervention   InterventionSummary   `json:"intervention"`
	Counterfactual CounterfactualSummary `json:"counterfactual"`
}

// ScenarioService runs the teaching scenarios and records their artifacts.
type ScenarioService struct {
	rng    ports.RNGPort
	ledger ports.LedgerWriterPort
}

// NewScenarioService creates a scenario service
func NewScenarioService(rng ports.RNGPort, ledger ports.LedgerWriterPort) *ScenarioService {
	return &ScenarioService{rng: rng, ledger: ledger}
}

// RunAssociation samples the binary scenario and summarizes its observed
// marginal and conditional probabilities
func (s *ScenarioService) RunAssociation(ctx context.Context, runID core.RunID, n int, seed int64) (AssociationSummary, error) {
	stream, err := s.rng.SeededStream(ctx, StreamAssociation, seed)
	if err != nil {
		return AssociationSummary{}, errors.Wrap(err, "failed to create association stream")
	}

	data, err := sampler.NewBinaryScenario(stream).Sample(n)
	if err != nil {
		return AssociationSummary{}, err
	}

	pTreatmentGivenOutcome, err := analysis.ConditionalProbability(data.A, data.B)
	if err != nil {
		return AssociationSummary{}, errors.Wrap(err, "failed to condition treatment on outcome")
	}
	pOutcomeGivenTreatment, err := analysis.ConditionalProbability(data.B, data.A)
	if err != nil {
		return AssociationSummary{}, errors.Wrap(err, "failed to condition outcome on treatment")
	}

	summary := AssociationSummary{
		SampleSize:             n,
		PTreatment:             analysis.Probability(data.A),
		POutcome:               analysis.Probability(data.B),
		PTreatmentGivenOutcome: pTreatmentGivenOutcome,
		POutcomeGivenTreatment: pOutcomeGivenTreatment,
	}

	if err := s.store(ctx, runID, core.ArtifactAssociationSummary, summary); err != nil {
		return AssociationSummary{}, err
	}
	return summary, nil
}

// RunIntervention samples the continuous scenario observationally, then
// applies do(A = dose) and do(B) to the same draw
func (s *ScenarioService) RunIntervention(ctx context.Context, runID core.RunID, n int, dose float64, seed int64) (InterventionSummary, error) {
	stream, err := s.rng.SeededStream(ctx, StreamIntervention, seed)
	if err != nil {
		return InterventionSummary{}, errors.Wrap(err, "failed to create intervention stream")
	}

	scenario := sampler.NewContinuousScenario(stream)
	observed, err := scenario.Sample(n)
	if err != nil {
		return InterventionSummary{}, err
	}

	observational, err := analysis.PearsonCorrelation(observed.A, observed.B)
	if err != nil {
		return InterventionSummary{}, errors.Wrap(err, "failed to correlate observational draw")
	}

	dosed := scenario.DoTreatment(observed, dose)
	severed := scenario.DoOutcome(observed)

	severedCorr, err := analysis.PearsonCorrelation(severed.A, severed.B)
	if err != nil {
		return InterventionSummary{}, errors.Wrap(err, "failed to correlate severed draw")
	}

	summary := InterventionSummary{
		SampleSize:           n,
		Observational:        observational,
		TreatmentDose:        dose,
		MeanOutcomeObserved:  analysis.Mean(observed.B),
		MeanOutcomeUnderDose: analysis.Mean(dosed.B),
		SeveredOutcome:       severedCorr,
	}

	if err := s.store(ctx, runID, core.ArtifactInterventionSummary, summary); err != nil {
		return InterventionSummary{}, err
	}
	return summary, nil
}

// RunCounterfactual abducts the latent trait from an observed (treatment,
// outcome) pair and predicts the outcome under both hypothetical treatments
func (s *ScenarioService) RunCounterfactual(ctx context.Context, runID core.RunID, tObs, yObs float64) (CounterfactualSummary, error) {
	cfCase, err := scm.AbductCase(tObs, yObs)
	if err != nil {
		return CounterfactualSummary{}, err
	}

	summary := CounterfactualSummary{
		Case:             cfCase,
		OutcomeUntreated: cfCase.Predict(0),
		OutcomeTreated:   cfCase.Predict(1),
	}

	if err := s.store(ctx, runID, core.ArtifactCounterfactualCase, summary); err != nil {
		return CounterfactualSummary{}, err
	}
	return summary, nil
}

// RunAll executes the three scenarios for a fresh run. Scenarios run
// concurrently; each owns its own RNG stream, so the result is reproducible
// by (seed, n, dose) regardless of scheduling.
func (s *ScenarioService) RunAll(ctx context.Context, n int, dose float64, seed int64) (*RunResult, error) {
	runID := core.RunID(core.NewID())
	result := &RunResult{RunID: runID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.RunAssociation(gctx, runID, n, seed)
		if err != nil {
			return err
		}
		result.Association = summary
		return nil
	})
	g.Go(func() error {
		summary, err := s.RunIntervention(gctx, runID, n, dose, seed)
		if err != nil {
			return err
		}
		result.Intervention = summary
		return nil
	})
	g.Go(func() error {
		// The worked example: an individual observed treated with a positive outcome.
		summary, err := s.RunCounterfactual(gctx, runID, 1, 1)
		if err != nil {
			return err
		}
		result.Counterfactual = summary
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	manifest := RunManifest{
		RunID:      runID,
		Seed:       seed,
		SampleSize: n,
		Scenarios:  []string{StreamAssociation, StreamIntervention, "counterfactual"},
	}
	if err := s.store(ctx, runID, core.ArtifactRunManifest, manifest); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *ScenarioService) store(ctx context.Context, runID core.RunID, kind core.ArtifactKind, payload interface{}) error {
	artifact := core.Artifact{
		ID:        core.NewID(),
		Kind:      kind,
		Payload:   payload,
		CreatedAt: core.Now(),
	}
	if err := s.ledger.StoreArtifact(ctx, runID.String(), artifact); err != nil {
		return errors.Wrapf(err, "failed to store %s artifact", kind)
	}
	return nil
}
