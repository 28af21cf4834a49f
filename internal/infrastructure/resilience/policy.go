package resilience

import (
	"strings"
	"time"
)

// Policy names for the collaborator classes that get their own defaults.
const (
	PolicyEmbed   = "embed"
	PolicySummary = "summary"
	PolicyPublish = "publish"
)

type Config struct {
	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	RetryMultiplier     float64

	BreakerEnabled          bool
	BreakerMinRequests      uint32
	BreakerFailureRatio     float64
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenMaxCalls uint32

	// Operations overrides the base settings for operations whose name starts
	// with one of the policy prefixes. Zero fields inherit the base value.
	Operations map[string]OperationPolicy
}

type OperationPolicy struct {
	Prefixes           []string
	RetryMaxAttempts   int
	BreakerMinRequests uint32
	BreakerOpenTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: 100 * time.Millisecond,
		RetryMaxBackoff:     400 * time.Millisecond,
		RetryMultiplier:     2.0,

		BreakerEnabled:          true,
		BreakerMinRequests:      10,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      30 * time.Second,
		BreakerHalfOpenMaxCalls: 2,

		Operations: DefaultOperationPolicies(),
	}
}

// DefaultOperationPolicies returns a fresh map on every call. Embeddings are
// not retried and their breaker trips and recovers sooner.
func DefaultOperationPolicies() map[string]OperationPolicy {
	return map[string]OperationPolicy{
		PolicyEmbed: {
			Prefixes:           []string{"ollama.embed", "openai.embeddings"},
			RetryMaxAttempts:   1,
			BreakerMinRequests: 5,
			BreakerOpenTimeout: 15 * time.Second,
		},
		PolicySummary: {
			Prefixes:         []string{"ollama.generate", "openai.responses"},
			RetryMaxAttempts: 2,
		},
		PolicyPublish: {
			Prefixes:           []string{"nats.publish"},
			RetryMaxAttempts:   2,
			BreakerOpenTimeout: 10 * time.Second,
		},
	}
}

// ForOperation resolves the effective settings of one operation. The policy
// with the longest matching prefix wins.
func (c Config) ForOperation(operation string) Config {
	out := c
	out.Operations = nil

	best := -1
	var chosen OperationPolicy
	for _, policy := range c.Operations {
		for _, prefix := range policy.Prefixes {
			if prefix == "" || !strings.HasPrefix(operation, prefix) || len(prefix) <= best {
				continue
			}
			best = len(prefix)
			chosen = policy
		}
	}
	if best < 0 {
		return out
	}

	if chosen.RetryMaxAttempts > 0 {
		out.RetryMaxAttempts = chosen.RetryMaxAttempts
	}
	if chosen.BreakerMinRequests > 0 {
		out.BreakerMinRequests = chosen.BreakerMinRequests
	}
	if chosen.BreakerOpenTimeout > 0 {
		out.BreakerOpenTimeout = chosen.BreakerOpenTimeout
	}
	return out
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()

	if out.RetryMaxAttempts <= 0 {
		out.RetryMaxAttempts = def.RetryMaxAttempts
	}
	if out.RetryInitialBackoff <= 0 {
		out.RetryInitialBackoff = def.RetryInitialBackoff
	}
	if out.RetryMaxBackoff <= 0 {
		out.RetryMaxBackoff = def.RetryMaxBackoff
	}
	if out.RetryMaxBackoff < out.RetryInitialBackoff {
		out.RetryMaxBackoff = out.RetryInitialBackoff
	}
	if out.RetryMultiplier < 1.0 {
		out.RetryMultiplier = def.RetryMultiplier
	}

	if out.BreakerMinRequests == 0 {
		out.BreakerMinRequests = def.BreakerMinRequests
	}
	if out.BreakerFailureRatio <= 0 || out.BreakerFailureRatio > 1 {
		out.BreakerFailureRatio = def.BreakerFailureRatio
	}
	if out.BreakerOpenTimeout <= 0 {
		out.BreakerOpenTimeout = def.BreakerOpenTimeout
	}
	if out.BreakerHalfOpenMaxCalls == 0 {
		out.BreakerHalfOpenMaxCalls = def.BreakerHalfOpenMaxCalls
	}

	return out
}
