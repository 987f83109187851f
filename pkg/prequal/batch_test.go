package prequal

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeBatch(t *testing.T) {
	engine := New()
	reqs := []Request{approvedPersonal(), scenarioB(), {}, approvedPersonal()}

	results, err := engine.ComputeBatch(context.Background(), reqs, 2)
	if err != nil {
		t.Fatalf("ComputeBatch() error = %v", err)
	}
	if len(results) != len(reqs) {
		t.Fatalf("got %d results, expected %d", len(results), len(reqs))
	}
	for i, req := range reqs {
		if diff := cmp.Diff(engine.Compute(req), results[i]); diff != "" {
			t.Errorf("result %d out of order or different (-want +got):\n%s", i, diff)
		}
	}
}

func TestComputeBatchEmpty(t *testing.T) {
	results, err := New().ComputeBatch(context.Background(), nil, 0)
	if err != nil {
		t.Fatalf("ComputeBatch() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, expected none", len(results))
	}
}

func TestComputeBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := New().ComputeBatch(ctx, []Request{approvedPersonal()}, 1)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ComputeBatch() error = %v, expected context.Canceled", err)
	}
	if results != nil {
		t.Errorf("results = %v, expected nil on cancellation", results)
	}
}
