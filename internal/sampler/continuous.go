package sampler

import (
	"math/rand"

	"gocausal/domain/scm"
	"gocausal/internal/errors"
)

// The continuous interventional scenario is the fixed SCM
//
//	U0, U1 ~ Normal(0,1)
//	A = U0
//	B = 5·A + U1
//
// Interventions perform do-operator surgery on an already-drawn dataset: the
// intervened variable is cut loose from its structural equation while the
// exogenous noise of every non-intervened variable is kept bitwise intact.
// Only the severed relationship changes, which is what isolates the causal
// effect for measurement.
const continuousEffectSlope = 5.0

// Exogenous variable declarations for the continuous scenario.
var continuousExogenous = []scm.ExogenousVariable{
	{Name: "u0", Distribution: scm.DistStdNormal},
	{Name: "u1", Distribution: scm.DistStdNormal},
}

// ContinuousScenario samples the continuous SCM from a seeded stream.
type ContinuousScenario struct {
	rng *rand.Rand
}

// NewContinuousScenario creates a sampler bound to the given RNG stream
func NewContinuousScenario(rng *rand.Rand) *ContinuousScenario {
	return &ContinuousScenario{rng: rng}
}

// Exogenous returns the scenario's exogenous variable declarations
func (s *ContinuousScenario) Exogenous() []scm.ExogenousVariable {
	return continuousExogenous
}

// Sample draws n independent observational realizations of (A, B),
// retaining U1 so later interventions can reuse it
func (s *ContinuousScenario) Sample(n int) (scm.ContinuousDataset, error) {
	if n <= 0 {
		return scm.ContinuousDataset{}, errors.InvalidInput("sample size must be positive")
	}

	a := make([]float64, n)
	u1 := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		a[i] = s.rng.NormFloat64() // A = U0
	}
	for i := 0; i < n; i++ {
		u1[i] = s.rng.NormFloat64()
		b[i] = continuousEffectSlope*a[i] + u1[i]
	}

	return scm.ContinuousDataset{A: a, B: b, U1: u1}, nil
}

// DoTreatment applies do(A = v): A becomes the constant v for every sample
// and B is recomputed through its structural equation against the U1 noise
// already bound to the dataset. U1 is never redrawn.
func (s *ContinuousScenario) DoTreatment(data scm.ContinuousDataset, v float64) scm.ContinuousDataset {
	n := data.Len()
	a := make([]float64, n)
	b := make([]float64, n)
	u1 := make([]float64, n)
	copy(u1, data.U1)
	for i := 0; i < n; i++ {
		a[i] = v
		b[i] = continuousEffectSlope*a[i] + u1[i]
	}
	return scm.ContinuousDataset{A: a, B: b, U1: u1}
}

// DoOutcome applies do(B): B is replaced by a fresh independent Normal(0,1)
// draw, ignoring its structural equation entirely. Severing B from its
// parents is the defining property of the do-operation; afterwards B carries
// no dependence on A.
func (s *ContinuousScenario) DoOutcome(data scm.ContinuousDataset) scm.ContinuousDataset {
	n := data.Len()
	a := make([]float64, n)
	copy(a, data.A)
	u1 := make([]float64, n)
	copy(u1, data.U1)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		b[i] = s.rng.NormFloat64()
	}
	return scm.ContinuousDataset{A: a, B: b, U1: u1}
}
