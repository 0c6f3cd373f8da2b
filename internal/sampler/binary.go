package sampler

import (
	"math/rand"

	"gocausal/domain/scm"
	"gocausal/internal/errors"
)

// The binary association scenario is the fixed SCM
//
//	U0 ~ Uniform(0,1)   U1 ~ Normal(0,1)
//	A  = 1{U0 > 0.61}
//	B  = 1{a + 0.5·U1 > 0.2}   with a = 1.0 if A else 0.0
//
// A causes B through the second equation; conditioning on B therefore shifts
// the observed distribution of A even though nothing intervenes on A.
const (
	binaryTreatmentCutoff = 0.61
	binaryOutcomeCutoff   = 0.2
	binaryNoiseScale      = 0.5
)

// Exogenous variable declarations for the binary scenario.
var binaryExogenous = []scm.ExogenousVariable{
	{Name: "u0", Distribution: scm.DistUniform01},
	{Name: "u1", Distribution: scm.DistStdNormal},
}

// BinaryScenario samples the binary association SCM from a seeded stream.
type BinaryScenario struct {
	rng *rand.Rand
}

// NewBinaryScenario creates a sampler bound to the given RNG stream
func NewBinaryScenario(rng *rand.Rand) *BinaryScenario {
	return &BinaryScenario{rng: rng}
}

// Exogenous returns the scenario's exogenous variable declarations
func (s *BinaryScenario) Exogenous() []scm.ExogenousVariable {
	return binaryExogenous
}

// Sample draws n independent realizations of (A, B)
func (s *BinaryScenario) Sample(n int) (scm.BinaryDataset, error) {
	if n <= 0 {
		return scm.BinaryDataset{}, errors.InvalidInput("sample size must be positive")
	}

	u0 := make([]float64, n)
	u1 := make([]float64, n)
	for i := 0; i < n; i++ {
		u0[i] = s.rng.Float64()
	}
	for i := 0; i < n; i++ {
		u1[i] = s.rng.NormFloat64()
	}

	a := make([]bool, n)
	b := make([]bool, n)
	for i := 0; i < n; i++ {
		a[i] = u0[i] > binaryTreatmentCutoff
		aNum := 0.0
		if a[i] {
			aNum = 1.0
		}
		b[i] = aNum+binaryNoiseScale*u1[i] > binaryOutcomeCutoff
	}

	return scm.BinaryDataset{A: a, B: b}, nil
}
