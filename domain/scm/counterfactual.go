package scm

import (
	"gocausal/internal/errors"
)

// The counterfactual engine works on the fixed bivariate structural equation
//
//	Y = T·U + (T−1)·(U−1)
//
// where treatment T and outcome Y are binary and U is the individual's latent
// trait. The three steps below are deliberately separate operations: abduction
// recovers U from the observed evidence, action rewires the model under a
// hypothetical treatment, and prediction evaluates the rewired model at the
// frozen trait. Callers compose them; nothing here holds state.

// Abduct solves the outcome equation for the latent trait U given observed
// treatment t and outcome y:
//
//	u = (t + y − 1) / (2t − 1)
//
// The model is only defined for binary treatment, so t = 0.5 (the root of the
// denominator) is rejected rather than silently producing Inf or NaN.
func Abduct(t, y float64) (float64, error) {
	if t == 0.5 {
		return 0, errors.InvalidInput("treatment must be binary: t = 0.5 makes the outcome equation unsolvable")
	}
	return (t + y - 1) / (2*t - 1), nil
}

// Action performs model surgery: it replaces the treatment's structural
// equation with the constant t and returns the resulting outcome equation as
// a pure function of the latent trait. Each call produces an independent
// equation bound to its own t; no state is shared between calls.
func Action(t float64) StructuralEquation {
	return func(u float64) float64 {
		return t*u + (t-1)*(u-1)
	}
}

// Predict evaluates the post-surgery outcome equation at the given trait,
// returning the counterfactual outcome under treatment t.
func Predict(u, t float64) float64 {
	return Action(t)(u)
}

// AbductCase runs abduction for an observed (treatment, outcome) pair and
// freezes the result as a CounterfactualCase.
func AbductCase(t, y float64) (CounterfactualCase, error) {
	u, err := Abduct(t, y)
	if err != nil {
		return CounterfactualCase{}, err
	}
	return CounterfactualCase{ObservedTreatment: t, ObservedOutcome: y, Trait: u}, nil
}

// Predict returns the counterfactual outcome for this individual had the
// treatment been set to t, holding the abducted trait fixed.
func (c CounterfactualCase) Predict(t float64) float64 {
	return Predict(c.Trait, t)
}
