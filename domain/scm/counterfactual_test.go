package scm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbductWorkedExample(t *testing.T) {
	// An individual observed with treatment=1 and outcome=1 must carry trait 1.
	u, err := Abduct(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, u)
}

func TestAbductAllBinaryCombinations(t *testing.T) {
	cases := []struct {
		treatment, outcome, want float64
	}{
		{1, 1, 1},
		{1, 0, 0},
		{0, 0, 1},
		{0, 1, 0},
	}

	for _, tc := range cases {
		u, err := Abduct(tc.treatment, tc.outcome)
		require.NoError(t, err)
		assert.Equal(t, tc.want, u, "Abduct(%v, %v)", tc.treatment, tc.outcome)
	}
}

func TestAbductRejectsHalfTreatment(t *testing.T) {
	_, err := Abduct(0.5, 1)
	assert.Error(t, err, "t=0.5 zeroes the denominator and must fail fast")
}

func TestPredictWorkedExample(t *testing.T) {
	// The trait-1 individual, had treatment been withheld, sees outcome 0.
	assert.Equal(t, 0.0, Predict(1.0, 0))
}

func TestAbductPredictRoundTrip(t *testing.T) {
	// Predicting under the same treatment that was observed must recover the
	// observed outcome exactly.
	for _, treatment := range []float64{0, 1} {
		for _, outcome := range []float64{0, 1} {
			u, err := Abduct(treatment, outcome)
			require.NoError(t, err)
			assert.Equal(t, outcome, Predict(u, treatment),
				"round trip for t=%v y=%v", treatment, outcome)
		}
	}
}

func TestActionProducesIndependentEquations(t *testing.T) {
	treated := Action(1)
	untreated := Action(0)

	// Evaluating one closure must not disturb the other.
	assert.Equal(t, 1.0, treated(1.0))
	assert.Equal(t, 0.0, untreated(1.0))
	assert.Equal(t, 1.0, treated(1.0))
	assert.Equal(t, 1.0, untreated(0.0))
}

func TestActionIsDeterministic(t *testing.T) {
	eq := Action(1)
	for i := 0; i < 5; i++ {
		assert.Equal(t, 0.25, eq(0.25))
	}
}

func TestAbductCaseFreezesTrait(t *testing.T) {
	c, err := AbductCase(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Trait)

	// Repeated predictions under different hypotheticals reuse the same trait.
	assert.Equal(t, 0.0, c.Predict(0))
	assert.Equal(t, 1.0, c.Predict(1))
	assert.Equal(t, 1.0, c.Trait)
}

func TestAbductCaseRejectsHalfTreatment(t *testing.T) {
	_, err := AbductCase(0.5, 0)
	assert.Error(t, err)
}
