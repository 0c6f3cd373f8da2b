package analysis

import (
	"math"

	"gocausal/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Probability returns the empirical marginal probability of a boolean sequence
func Probability(xs []bool) float64 {
	if len(xs) == 0 {
		return 0
	}
	count := 0
	for _, x := range xs {
		if x {
			count++
		}
	}
	return float64(count) / float64(len(xs))
}

// ConditionalProbability returns P(event | given) by boolean masking: the
// mean of event restricted to indices where given holds
func ConditionalProbability(event, given []bool) (float64, error) {
	if len(event) != len(given) {
		return 0, errors.InvalidInput("event and condition sequences must have equal length")
	}

	total, hits := 0, 0
	for i := range given {
		if !given[i] {
			continue
		}
		total++
		if event[i] {
			hits++
		}
	}
	if total == 0 {
		return 0, errors.InvalidInput("conditioning event never occurs")
	}
	return float64(hits) / float64(total), nil
}

// Correlation holds a Pearson correlation coefficient with its two-sided
// p-value under the t-distribution.
type Correlation struct {
	R      float64 `json:"r"`
	PValue float64 `json:"p_value"`
	N      int     `json:"n"`
}

// PearsonCorrelation computes the Pearson correlation between two equal-length
// sequences and its two-sided p-value via the Student's t transform
func PearsonCorrelation(x, y []float64) (Correlation, error) {
	if len(x) != len(y) {
		return Correlation{}, errors.InvalidInput("sequences must have equal length")
	}
	if len(x) < 3 {
		return Correlation{}, errors.InvalidInput("correlation requires at least 3 samples")
	}

	r, err := stats.Correlation(x, y)
	if err != nil {
		return Correlation{}, errors.Wrap(err, "correlation computation failed")
	}
	if math.IsNaN(r) {
		return Correlation{}, errors.InvalidInput("correlation undefined: zero variance input")
	}

	return Correlation{R: r, PValue: correlationPValue(r, len(x)), N: len(x)}, nil
}

// correlationPValue transforms r to a t-statistic with n-2 degrees of freedom
// and returns the two-tailed tail probability.
func correlationPValue(r float64, n int) float64 {
	df := float64(n - 2)
	denom := 1 - r*r
	if denom <= 0 {
		// |r| = 1: perfectly collinear, the t-statistic diverges
		return 0
	}
	t := r * math.Sqrt(df/denom)

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - tDist.CDF(math.Abs(t)))
}

// BoolsToFloats maps a boolean sequence to 1.0/0.0 for numeric routines
func BoolsToFloats(xs []bool) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if x {
			out[i] = 1.0
		}
	}
	return out
}

// Mean returns the arithmetic mean of a sequence, 0 for empty input
func Mean(xs []float64) float64 {
	m, err := stats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}
