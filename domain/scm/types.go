package scm

// Distribution identifies the sampling distribution of an exogenous variable.
type Distribution string

const (
	// DistUniform01 draws uniformly from [0, 1).
	DistUniform01 Distribution = "uniform_01"
	// DistStdNormal draws from the standard normal N(0, 1).
	DistStdNormal Distribution = "std_normal"
)

// ExogenousVariable is a named source of randomness external to the model.
// It is immutable once defined and sampled fresh on each draw; realizations
// carry no persistent identity across calls.
type ExogenousVariable struct {
	Name         string       `json:"name"`
	Distribution Distribution `json:"distribution"`
}

// StructuralEquation is a pure deterministic function assigning an endogenous
// variable from its single parent value. The same input always produces the
// same output; implementations must not close over mutable state.
type StructuralEquation func(parent float64) float64

// BinaryDataset holds n i.i.d. realizations of the binary association
// scenario's endogenous variables. A and B always have equal length.
type BinaryDataset struct {
	A []bool `json:"a"`
	B []bool `json:"b"`
}

// Len returns the number of samples in the dataset.
func (d BinaryDataset) Len() int { return len(d.A) }

// ContinuousDataset holds n i.i.d. realizations of the continuous scenario.
// U1 is retained alongside the endogenous variables so that do-operator
// surgery on A can recompute B from the noise already drawn, never
// resampling it.
type ContinuousDataset struct {
	A  []float64 `json:"a"`
	B  []float64 `json:"b"`
	U1 []float64 `json:"u1"`
}

// Len returns the number of samples in the dataset.
func (d ContinuousDataset) Len() int { return len(d.A) }

// CounterfactualCase is one individual's observed treatment and outcome plus
// the latent trait implied by them. Trait is computed once via abduction and
// is then frozen as a fact about the individual; it is reused, unmodified,
// for any number of predictions under hypothetical treatments.
type CounterfactualCase struct {
	ObservedTreatment float64 `json:"observed_treatment"`
	ObservedOutcome   float64 `json:"observed_outcome"`
	Trait             float64 `json:"trait"`
}
