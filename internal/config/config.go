package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/resilience"
)

type Config struct {
	APIPort  string
	LogLevel string

	CatalogPath     string
	RetrievalLimit  int
	SemanticEnabled bool
	EmbedProvider   string
	SummaryProvider string
	EmbedTimeout    time.Duration

	OllamaURL        string
	OllamaGenModel   string
	OllamaEmbedModel string

	OpenAIBaseURL      string
	OpenAIAPIKey       string
	OpenAIEmbedModel   string
	OpenAISummaryModel string

	VectorStore      string
	QdrantURL        string
	QdrantCollection string

	NATSEnabled    bool
	NATSURL        string
	NATSSubject    string
	ActivityWindow int

	APIRateLimitRPS   float64
	APIRateLimitBurst int
	APIMaxInFlight    int
	APIQueueWait      time.Duration

	Resilience resilience.Config
}

const (
	ProviderOllama     = "ollama"
	ProviderOpenAI     = "openai"
	ProviderNone       = "none"
	ProviderExtractive = "extractive"

	VectorStoreMemory = "memory"
	VectorStoreQdrant = "qdrant"
)

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		CatalogPath:     mustEnv("CATALOG_PATH", ""),
		RetrievalLimit:  mustEnvInt("RETRIEVAL_LIMIT", 6),
		SemanticEnabled: mustEnvBool("SEMANTIC_ENABLED", true),
		EmbedProvider:   mustEnvChoice("EMBED_PROVIDER", ProviderNone, ProviderOllama, ProviderOpenAI, ProviderNone),
		SummaryProvider: mustEnvChoice("SUMMARY_PROVIDER", ProviderExtractive, ProviderOllama, ProviderOpenAI, ProviderExtractive),
		EmbedTimeout:    mustEnvDuration("EMBED_TIMEOUT", 5*time.Second),

		OllamaURL:        mustEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaGenModel:   mustEnv("OLLAMA_GEN_MODEL", "llama3.1:8b"),
		OllamaEmbedModel: mustEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),

		OpenAIBaseURL:      mustEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:       mustEnv("OPENAI_API_KEY", ""),
		OpenAIEmbedModel:   mustEnv("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		OpenAISummaryModel: mustEnv("OPENAI_SUMMARY_MODEL", "gpt-4.1-mini"),

		VectorStore:      mustEnvChoice("VECTOR_STORE", VectorStoreMemory, VectorStoreMemory, VectorStoreQdrant),
		QdrantURL:        mustEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: mustEnv("QDRANT_COLLECTION", "static_sources"),

		NATSEnabled:    mustEnvBool("NATS_ENABLED", false),
		NATSURL:        mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject:    mustEnv("NATS_SUBJECT", "nerdvana.cases"),
		ActivityWindow: mustEnvInt("ACTIVITY_WINDOW", 5),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 20),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 40),
		APIMaxInFlight:    mustEnvInt("API_MAX_IN_FLIGHT", 32),
		APIQueueWait:      mustEnvDuration("API_QUEUE_WAIT", 250*time.Millisecond),

		Resilience: loadResilience(),
	}
}

func loadResilience() resilience.Config {
	def := resilience.DefaultConfig()
	return resilience.Config{
		RetryMaxAttempts:    mustEnvInt("RESILIENCE_RETRY_MAX_ATTEMPTS", def.RetryMaxAttempts),
		RetryInitialBackoff: mustEnvDuration("RESILIENCE_RETRY_INITIAL_BACKOFF", def.RetryInitialBackoff),
		RetryMaxBackoff:     mustEnvDuration("RESILIENCE_RETRY_MAX_BACKOFF", def.RetryMaxBackoff),
		RetryMultiplier:     mustEnvFloat("RESILIENCE_RETRY_MULTIPLIER", def.RetryMultiplier),

		BreakerEnabled:          mustEnvBool("RESILIENCE_BREAKER_ENABLED", def.BreakerEnabled),
		BreakerMinRequests:      uint32(mustEnvInt("RESILIENCE_BREAKER_MIN_REQUESTS", int(def.BreakerMinRequests))),
		BreakerFailureRatio:     mustEnvFloat("RESILIENCE_BREAKER_FAILURE_RATIO", def.BreakerFailureRatio),
		BreakerOpenTimeout:      mustEnvDuration("RESILIENCE_BREAKER_OPEN_TIMEOUT", def.BreakerOpenTimeout),
		BreakerHalfOpenMaxCalls: uint32(mustEnvInt("RESILIENCE_BREAKER_HALF_OPEN_MAX_CALLS", int(def.BreakerHalfOpenMaxCalls))),

		Operations: loadOperationPolicies(def.Operations),
	}
}

func loadOperationPolicies(policies map[string]resilience.OperationPolicy) map[string]resilience.OperationPolicy {
	keys := map[string]string{
		resilience.PolicyEmbed:   "RESILIENCE_EMBED_RETRY_MAX_ATTEMPTS",
		resilience.PolicySummary: "RESILIENCE_SUMMARY_RETRY_MAX_ATTEMPTS",
		resilience.PolicyPublish: "RESILIENCE_PUBLISH_RETRY_MAX_ATTEMPTS",
	}
	for name, key := range keys {
		policy := policies[name]
		policy.RetryMaxAttempts = mustEnvInt(key, policy.RetryMaxAttempts)
		policies[name] = policy
	}
	return policies
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

// mustEnvChoice lowercases the value and falls back when it is not allowed.
func mustEnvChoice(key, fallback string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
