package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/ports"
)

const (
	semanticCandidateLimit = 12
	semanticWeightBoost    = 0.08
	semanticTopicBoost     = 0.25

	DefaultEmbedTimeout = 5 * time.Second

	indexBuildKey = "corpus"
)

// Fallback reasons reported to the observer when the lexical path answers.
const (
	FallbackNone               = ""
	FallbackSemanticDisabled   = "semantic_disabled"
	FallbackEmptyQueryVector   = "empty_query_embedding"
	FallbackIndexUnavailable   = "index_unavailable"
	FallbackVectorQueryFailed  = "vector_query_failed"
	FallbackNoNearestNeighbors = "no_matches"
	FallbackEmptyAfterDedupe   = "empty_after_dedupe"
)

type SemanticIndexOptions struct {
	// EmbedTimeout bounds every embedding call. Zero means DefaultEmbedTimeout.
	EmbedTimeout time.Duration
	Logger       *slog.Logger
	Observer     ports.RetrievalObserver
}

// SemanticIndex embeds the corpus once and answers questions by cosine
// similarity, reranked with source authority and topic match. Whenever the
// embedding path cannot produce results it answers from the lexical index.
type SemanticIndex struct {
	embedder ports.Embedder
	store    ports.VectorStore
	lexical  *LexicalIndex
	corpus   []domain.StaticSource
	byID     map[string]domain.StaticSource

	embedTimeout time.Duration
	logger       *slog.Logger
	observer     ports.RetrievalObserver

	build   singleflight.Group
	mu      sync.RWMutex
	built   bool
	indexed int
}

func NewSemanticIndex(
	embedder ports.Embedder,
	store ports.VectorStore,
	lexical *LexicalIndex,
	opts SemanticIndexOptions,
) *SemanticIndex {
	corpus := lexical.Sources()
	byID := make(map[string]domain.StaticSource, len(corpus))
	for _, source := range corpus {
		byID[source.ID] = source
	}

	timeout := opts.EmbedTimeout
	if timeout <= 0 {
		timeout = DefaultEmbedTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SemanticIndex{
		embedder:     embedder,
		store:        store,
		lexical:      lexical,
		corpus:       corpus,
		byID:         byID,
		embedTimeout: timeout,
		logger:       logger,
		observer:     opts.Observer,
	}
}

// EnsureIndex embeds the corpus into the vector store. It runs at most once;
// concurrent callers wait for the same in-flight build. A store failure leaves
// the index unbuilt so a later call can try again. When the store already holds
// every corpus document no embedding is computed.
func (idx *SemanticIndex) EnsureIndex(ctx context.Context) error {
	if idx.embedder == nil || idx.store == nil {
		return nil
	}
	if idx.isBuilt() {
		return nil
	}

	_, err, _ := idx.build.Do(indexBuildKey, func() (any, error) {
		if idx.isBuilt() {
			return nil, nil
		}
		buildCtx := context.WithoutCancel(ctx)
		start := time.Now()

		if idx.storeHoldsCorpus(buildCtx) {
			idx.markBuilt(len(idx.corpus))
			idx.logger.Info("semantic_index_reused", "documents", len(idx.corpus))
			return nil, nil
		}

		records := make([]domain.VectorRecord, 0, len(idx.corpus))
		for _, source := range idx.corpus {
			vector := idx.embed(buildCtx, source.EmbeddingText())
			if len(vector) == 0 {
				continue
			}
			records = append(records, domain.VectorRecord{
				ID:     source.ID,
				Vector: vector,
				Metadata: map[string]string{
					"source_id": source.ID,
					"topic_id":  string(source.TopicID),
					"type":      source.Type.String(),
				},
			})
		}
		if len(records) > 0 {
			if err := idx.store.Upsert(buildCtx, records); err != nil {
				return nil, fmt.Errorf("upsert corpus vectors: %w", err)
			}
		}

		idx.markBuilt(len(records))
		idx.logger.Info("semantic_index_built",
			"documents", len(idx.corpus),
			"indexed", len(records),
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
		return nil, nil
	})
	return err
}

func (idx *SemanticIndex) storeHoldsCorpus(ctx context.Context) bool {
	inventory, ok := idx.store.(ports.VectorInventory)
	if !ok || len(idx.corpus) == 0 {
		return false
	}
	ids := make([]string, 0, len(idx.corpus))
	for _, source := range idx.corpus {
		ids = append(ids, source.ID)
	}
	present, err := inventory.Contains(ctx, ids)
	if err != nil {
		idx.logger.Warn("semantic_index_inventory_failed", "error", err)
		return false
	}
	return present
}

func (idx *SemanticIndex) markBuilt(indexed int) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.built = true
	idx.indexed = indexed
}

// Indexed reports how many corpus documents carry an embedding.
func (idx *SemanticIndex) Indexed() (int, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.indexed, idx.built
}

// Retrieve answers from the vector index, falling back to lexical ranking when
// embeddings are unavailable or yield nothing.
func (idx *SemanticIndex) Retrieve(
	ctx context.Context,
	question string,
	topicHint domain.TopicID,
	limit int,
) domain.RetrievalResult {
	start := time.Now()
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}
	if idx.embedder == nil || idx.store == nil {
		return idx.fallback(question, topicHint, limit, FallbackSemanticDisabled, start)
	}

	queryVector := idx.embed(ctx, question)
	if len(queryVector) == 0 {
		return idx.fallback(question, topicHint, limit, FallbackEmptyQueryVector, start)
	}

	if err := idx.EnsureIndex(ctx); err != nil {
		idx.logger.Warn("semantic_index_unavailable", "error", err)
		return idx.fallback(question, topicHint, limit, FallbackIndexUnavailable, start)
	}

	matches, err := idx.store.Query(ctx, queryVector, semanticCandidateLimit)
	if err != nil {
		idx.logger.Warn("semantic_query_failed", "error", err)
		return idx.fallback(question, topicHint, limit, FallbackVectorQueryFailed, start)
	}
	if len(matches) == 0 {
		return idx.fallback(question, topicHint, limit, FallbackNoNearestNeighbors, start)
	}

	ranked := idx.rerank(matches, topicHint)
	sources := dedupeSources(ranked, limit)
	if len(sources) == 0 {
		return idx.fallback(question, topicHint, limit, FallbackEmptyAfterDedupe, start)
	}

	similarity := make(map[string]float64, len(matches))
	for _, match := range matches {
		similarity[match.ID] = match.Score
	}
	kept := make(map[string]float64, len(sources))
	for _, source := range sources {
		kept[source.ID] = similarity[source.ID]
	}

	idx.observeRetrieval(domain.RetrievalModeSemantic, FallbackNone, len(sources), start)
	return domain.RetrievalResult{
		Mode:       domain.RetrievalModeSemantic,
		Sources:    sources,
		Similarity: kept,
	}
}

// RetrieveSources is Retrieve without the retrieval metadata.
func (idx *SemanticIndex) RetrieveSources(
	ctx context.Context,
	question string,
	topicHint domain.TopicID,
	limit int,
) []domain.StaticSource {
	return idx.Retrieve(ctx, question, topicHint, limit).Sources
}

func (idx *SemanticIndex) rerank(matches []domain.VectorMatch, topicHint domain.TopicID) []scoredSource {
	hint := normalizeText(string(topicHint))
	out := make([]scoredSource, 0, len(matches))
	for _, match := range matches {
		source, ok := idx.byID[match.ID]
		if !ok {
			continue
		}
		score := match.Score + semanticWeightBoost*float64(source.Type.Weight())
		if hint != "" && normalizeText(string(source.TopicID)) == hint {
			score += semanticTopicBoost
		}
		out = append(out, scoredSource{source: source, score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].score != out[j].score {
			return out[i].score > out[j].score
		}
		return out[i].source.ID < out[j].source.ID
	})
	return out
}

func (idx *SemanticIndex) fallback(
	question string,
	topicHint domain.TopicID,
	limit int,
	reason string,
	start time.Time,
) domain.RetrievalResult {
	sources := idx.lexical.Retrieve(question, topicHint, limit)
	idx.logger.Debug("semantic_fallback", "reason", reason, "sources", len(sources))
	idx.observeRetrieval(domain.RetrievalModeLexical, reason, len(sources), start)
	return domain.RetrievalResult{
		Mode:    domain.RetrievalModeLexical,
		Sources: sources,
	}
}

func (idx *SemanticIndex) embed(ctx context.Context, text string) []float32 {
	embedCtx, cancel := context.WithTimeout(ctx, idx.embedTimeout)
	defer cancel()

	start := time.Now()
	vector, err := idx.embedder.Embed(embedCtx, text)
	switch {
	case err != nil:
		idx.logger.Debug("embedding_failed", "error", err)
		idx.observeEmbedding("error", start)
		return nil
	case len(vector) == 0:
		idx.observeEmbedding("empty", start)
		return nil
	default:
		idx.observeEmbedding("ok", start)
		return vector
	}
}

func (idx *SemanticIndex) isBuilt() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.built
}

func (idx *SemanticIndex) observeRetrieval(mode domain.RetrievalMode, reason string, count int, start time.Time) {
	if idx.observer == nil {
		return
	}
	idx.observer.ObserveRetrieval(mode, reason, count, time.Since(start))
}

func (idx *SemanticIndex) observeEmbedding(outcome string, start time.Time) {
	if idx.observer == nil {
		return
	}
	idx.observer.ObserveEmbedding(outcome, time.Since(start))
}
