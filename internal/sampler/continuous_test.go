package sampler

import (
	"math"
	"math/rand"
	"testing"

	"gocausal/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContinuousObservationalStructure(t *testing.T) {
	s := NewContinuousScenario(rand.New(rand.NewSource(42)))

	data, err := s.Sample(1000)
	require.NoError(t, err)
	require.Equal(t, 1000, data.Len())

	// B must satisfy its structural equation exactly against the stored noise.
	for i := range data.A {
		assert.Equal(t, 5*data.A[i]+data.U1[i], data.B[i])
	}
}

func TestContinuousObservationalCorrelationIsStrong(t *testing.T) {
	s := NewContinuousScenario(rand.New(rand.NewSource(42)))

	data, err := s.Sample(10000)
	require.NoError(t, err)

	corr, err := analysis.PearsonCorrelation(data.A, data.B)
	require.NoError(t, err)
	assert.InDelta(t, 0.98, corr.R, 0.01)
}

func TestContinuousSampleRejectsNonPositiveSize(t *testing.T) {
	s := NewContinuousScenario(rand.New(rand.NewSource(42)))

	_, err := s.Sample(0)
	assert.Error(t, err)
}

func TestDoTreatmentReusesNoise(t *testing.T) {
	s := NewContinuousScenario(rand.New(rand.NewSource(42)))

	observed, err := s.Sample(2000)
	require.NoError(t, err)

	const dose = 1.5
	dosed := s.DoTreatment(observed, dose)

	// U1 must be bitwise identical, never redrawn.
	assert.Equal(t, observed.U1, dosed.U1)

	// B is a deterministic affine function of the pre-intervention noise.
	for i := range dosed.B {
		assert.Equal(t, 5*dose+observed.U1[i], dosed.B[i])
		assert.Equal(t, dose, dosed.A[i])
	}
}

func TestDoTreatmentDoesNotMutateInput(t *testing.T) {
	s := NewContinuousScenario(rand.New(rand.NewSource(42)))

	observed, err := s.Sample(100)
	require.NoError(t, err)
	a0, b0 := observed.A[0], observed.B[0]

	s.DoTreatment(observed, -2.0)
	assert.Equal(t, a0, observed.A[0])
	assert.Equal(t, b0, observed.B[0])
}

func TestDoOutcomeSeversDependence(t *testing.T) {
	// Forcing B severs the A->B edge: across many seeds |r| stays small and
	// never approaches the observational ~0.98.
	for seed := int64(1); seed <= 20; seed++ {
		s := NewContinuousScenario(rand.New(rand.NewSource(seed)))

		observed, err := s.Sample(5000)
		require.NoError(t, err)

		severed := s.DoOutcome(observed)
		corr, err := analysis.PearsonCorrelation(severed.A, severed.B)
		require.NoError(t, err)
		assert.Less(t, math.Abs(corr.R), 0.1, "seed %d", seed)
	}
}

func TestDoOutcomeKeepsTreatmentAndNoise(t *testing.T) {
	s := NewContinuousScenario(rand.New(rand.NewSource(42)))

	observed, err := s.Sample(500)
	require.NoError(t, err)

	severed := s.DoOutcome(observed)
	assert.Equal(t, observed.A, severed.A)
	assert.Equal(t, observed.U1, severed.U1)

	// The fresh B ignores the structural equation entirely.
	diffs := 0
	for i := range severed.B {
		if severed.B[i] != 5*severed.A[i]+severed.U1[i] {
			diffs++
		}
	}
	assert.Positive(t, diffs)
}
