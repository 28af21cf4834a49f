package memory

import (
	"context"
	"math"
	"testing"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2}, b: []float32{1, 2}, want: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1},
		{name: "mismatched", a: []float32{1, 0}, b: []float32{1}, want: 0},
		{name: "zero norm", a: []float32{0, 0}, b: []float32{1, 1}, want: 0},
		{name: "empty", want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Cosine(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("Cosine() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStoreQueryOrdersBySimilarity(t *testing.T) {
	store := New()
	err := store.Upsert(context.Background(), []domain.VectorRecord{
		{ID: "b", Vector: []float32{1, 0}},
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "c", Vector: []float32{0, 1}},
		{ID: "empty"},
		{Vector: []float32{1, 0}},
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if store.Len() != 3 {
		t.Fatalf("records without id or vector must be skipped, len=%d", store.Len())
	}

	matches, err := store.Query(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(matches) != 2 || matches[0].ID != "a" || matches[1].ID != "b" {
		t.Fatalf("unexpected matches %+v", matches)
	}

	if matches, _ := store.Query(context.Background(), nil, 2); len(matches) != 0 {
		t.Fatalf("empty query vector should match nothing, got %+v", matches)
	}
}

func TestStoreUpsertCopiesVectors(t *testing.T) {
	store := New()
	vector := []float32{1, 0}
	_ = store.Upsert(context.Background(), []domain.VectorRecord{{ID: "a", Vector: vector}})
	vector[0], vector[1] = 0, 1

	matches, _ := store.Query(context.Background(), []float32{1, 0}, 1)
	if matches[0].Score != 1 {
		t.Fatalf("stored vector must not alias caller memory, score=%v", matches[0].Score)
	}
}

func TestStoreContains(t *testing.T) {
	store := New()
	_ = store.Upsert(context.Background(), []domain.VectorRecord{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0, 1}},
	})

	if ok, _ := store.Contains(context.Background(), []string{"a", "b"}); !ok {
		t.Fatalf("expected stored ids to be reported present")
	}
	if ok, _ := store.Contains(context.Background(), []string{"a", "c"}); ok {
		t.Fatalf("expected a missing id to fail the check")
	}
}
