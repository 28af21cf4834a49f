package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestForOperation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Operations["qdrant"] = OperationPolicy{Prefixes: []string{"qdrant."}, RetryMaxAttempts: 4}
	cfg.Operations["qdrant-search"] = OperationPolicy{Prefixes: []string{"qdrant.search"}, RetryMaxAttempts: 5}

	tests := []struct {
		operation   string
		attempts    int
		minRequests uint32
		openTimeout time.Duration
	}{
		{operation: "ollama.embed", attempts: 1, minRequests: 5, openTimeout: 15 * time.Second},
		{operation: "openai.embeddings", attempts: 1, minRequests: 5, openTimeout: 15 * time.Second},
		{operation: "ollama.generate", attempts: 2, minRequests: 10, openTimeout: 30 * time.Second},
		{operation: "nats.publish", attempts: 2, minRequests: 10, openTimeout: 10 * time.Second},
		{operation: "qdrant.upsert", attempts: 4, minRequests: 10, openTimeout: 30 * time.Second},
		{operation: "qdrant.search", attempts: 5, minRequests: 10, openTimeout: 30 * time.Second},
		{operation: "unknown", attempts: 3, minRequests: 10, openTimeout: 30 * time.Second},
	}
	for _, tc := range tests {
		t.Run(tc.operation, func(t *testing.T) {
			got := cfg.ForOperation(tc.operation)
			if got.RetryMaxAttempts != tc.attempts || got.BreakerMinRequests != tc.minRequests || got.BreakerOpenTimeout != tc.openTimeout {
				t.Fatalf("ForOperation(%q) = attempts=%d min=%d open=%s", tc.operation, got.RetryMaxAttempts, got.BreakerMinRequests, got.BreakerOpenTimeout)
			}
			if got.Operations != nil {
				t.Fatalf("resolved config must not carry policies")
			}
		})
	}
}

func TestDefaultOperationPoliciesAreIndependent(t *testing.T) {
	a := DefaultOperationPolicies()
	a[PolicyEmbed] = OperationPolicy{}
	if DefaultOperationPolicies()[PolicyEmbed].RetryMaxAttempts != 1 {
		t.Fatalf("default policies must not be shared")
	}
}

func TestExecuteAppliesOperationPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RetryInitialBackoff = time.Millisecond
	cfg.RetryMaxBackoff = time.Millisecond
	cfg.BreakerEnabled = false
	exec := NewExecutor(cfg)

	errTemp := errors.New("temporary")
	retryable := func(error) ErrorClassification {
		return ErrorClassification{Retryable: true, RecordFailure: true}
	}

	for operation, want := range map[string]int{"ollama.embed": 1, "ollama.generate": 2, "qdrant.search": 3} {
		attempts := 0
		_ = exec.Execute(context.Background(), operation, func(context.Context) error {
			attempts++
			return errTemp
		}, retryable)
		if attempts != want {
			t.Fatalf("%s: expected %d attempts, got %d", operation, want, attempts)
		}
	}
}
