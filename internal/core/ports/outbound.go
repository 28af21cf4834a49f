package ports

//go:generate mockgen -source=outbound.go -destination=mocks/mock_outbound.go -package=mocks

import (
	"context"
	"time"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

// Embedder turns text into a vector. An empty vector means the provider is
// unavailable; callers treat errors the same way.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Summarizer condenses one evidence category into a summary and points.
type Summarizer interface {
	Summarize(ctx context.Context, category, question string, chunks []string) (domain.CategorySummary, error)
}

// VectorStore keeps corpus embeddings and answers nearest-neighbour queries.
type VectorStore interface {
	Upsert(ctx context.Context, records []domain.VectorRecord) error
	Query(ctx context.Context, vector []float32, limit int) ([]domain.VectorMatch, error)
}

// VectorInventory is implemented by stores that can report whether every
// given record id is already present.
type VectorInventory interface {
	Contains(ctx context.Context, ids []string) (bool, error)
}

// CaseRecorder receives resolved cases for the recent-activity window.
type CaseRecorder interface {
	RecordCase(ctx context.Context, event domain.CaseEvent) error
}

// RetrievalObserver receives retrieval telemetry. Implementations must be cheap.
type RetrievalObserver interface {
	ObserveResolution(source domain.ContextSource, confidence domain.ContextConfidence)
	ObserveRetrieval(mode domain.RetrievalMode, fallbackReason string, sourceCount int, duration time.Duration)
	ObserveEmbedding(outcome string, duration time.Duration)
}
