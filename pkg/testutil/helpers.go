// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/prequal/pkg/output"
)

// FindEvaluation finds an evaluation by application name.
// Returns a pointer to the evaluation if found, nil otherwise.
func FindEvaluation(evaluations []output.Evaluation, name string) *output.Evaluation {
	for i := range evaluations {
		if evaluations[i].Name == name {
			return &evaluations[i]
		}
	}
	return nil
}

// AssertApprox fails t when got and want differ by more than tolerance.
func AssertApprox(t testing.TB, name string, got, want, tolerance float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tolerance {
		t.Errorf("%s = %.4f, expected %.4f (±%v)", name, got, want, tolerance)
	}
}
