package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/prequal/pkg/output"
	"github.com/iwvelando/prequal/pkg/prequal"
)

func TestFindEvaluation(t *testing.T) {
	evaluations := []output.Evaluation{
		{Name: "Application A", Result: prequal.Result{Status: prequal.StatusApproved}},
		{Name: "Application B", Result: prequal.Result{Status: prequal.StatusDeclined}},
		{Name: "Another Application", Result: prequal.Result{Status: prequal.StatusConditional}},
	}

	tests := []struct {
		name           string
		searchName     string
		expectFound    bool
		expectedStatus prequal.Status
	}{
		{name: "Find application A", searchName: "Application A", expectFound: true, expectedStatus: prequal.StatusApproved},
		{name: "Find application B", searchName: "Application B", expectFound: true, expectedStatus: prequal.StatusDeclined},
		{name: "Find longer name", searchName: "Another Application", expectFound: true, expectedStatus: prequal.StatusConditional},
		{name: "Search for non-existent application", searchName: "Non-existent", expectFound: false},
		{name: "Search is case-sensitive", searchName: "application a", expectFound: false},
		{name: "Empty name", searchName: "", expectFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindEvaluation(evaluations, tt.searchName)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("Expected not to find %q, but found %q", tt.searchName, result.Name)
				}
				return
			}
			if result == nil {
				t.Fatalf("Expected to find %q, but got nil", tt.searchName)
			}
			if result.Status != tt.expectedStatus {
				t.Errorf("Expected status %s, got %s", tt.expectedStatus, result.Status)
			}
		})
	}
}

func TestFindEvaluationReturnsPointerIntoSlice(t *testing.T) {
	evaluations := []output.Evaluation{{Name: "A"}}
	found := FindEvaluation(evaluations, "A")
	found.Detail = "changed"
	if evaluations[0].Detail != "changed" {
		t.Error("FindEvaluation should return a pointer into the original slice")
	}
}

func TestFindEvaluationEmpty(t *testing.T) {
	if FindEvaluation(nil, "A") != nil {
		t.Error("Expected nil for nil slice")
	}
}

// recorder captures failures from helpers under test.
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(string, ...interface{}) { r.failed = true }

func TestAssertApprox(t *testing.T) {
	rec := &recorder{}
	AssertApprox(rec, "exact", 1.0, 1.0, 0)
	AssertApprox(rec, "within", 100.004, 100, 0.01)
	if rec.failed {
		t.Error("AssertApprox failed for values within tolerance")
	}

	for _, got := range []float64{100.02, math.NaN()} {
		rec = &recorder{}
		AssertApprox(rec, "outside", got, 100, 0.01)
		if !rec.failed {
			t.Errorf("AssertApprox should fail for %v", got)
		}
	}
}
