package ports

import (
	"context"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

// TopicResolverService maps questions to topics.
type TopicResolverService interface {
	Resolve(question, explicitHint string) domain.ResolvedContext
	Stabilize(resolved domain.ResolvedContext, dominant domain.TopicID) domain.ResolvedContext
	Describe(id domain.TopicID) domain.AliasEntry
}

// SourceRetriever ranks corpus documents for a question.
type SourceRetriever interface {
	Retrieve(ctx context.Context, question string, topicHint domain.TopicID, limit int) domain.RetrievalResult
}

// EvidenceSelector groups retrieved sources into summarizer input.
type EvidenceSelector interface {
	Select(sources []domain.StaticSource, question string, topic domain.TopicID) domain.EvidenceBundle
}

// AnswerService is the inbound contract for the full question flow.
type AnswerService interface {
	Answer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error)
}

// DominantTopicReader exposes the recent-activity signal.
type DominantTopicReader interface {
	DominantTopic(userID string) domain.TopicID
}
