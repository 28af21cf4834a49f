package usecase

import "github.com/kirillkom/nerdvana-retrieval/internal/core/domain"

// redundancyThreshold is the Jaccard similarity at which two same-topic
// sources are considered to cover the same fact.
const redundancyThreshold = 0.82

type keptSource struct {
	source    domain.StaticSource
	canonical string
	tokens    map[string]struct{}
}

func canonicalSourceText(source domain.StaticSource) string {
	return normalizeText(source.Title + " " + source.Text)
}

func newKeptSource(source domain.StaticSource) keptSource {
	canonical := canonicalSourceText(source)
	return keptSource{source: source, canonical: canonical, tokens: toTokenSet(canonical)}
}

func (k keptSource) redundantWith(kept []keptSource) bool {
	for _, existing := range kept {
		if existing.source.ID == k.source.ID {
			continue
		}
		if existing.canonical == k.canonical {
			return true
		}
		if normalizeText(string(existing.source.TopicID)) != normalizeText(string(k.source.TopicID)) {
			continue
		}
		if jaccard(k.tokens, existing.tokens) >= redundancyThreshold {
			return true
		}
	}
	return false
}

// dedupeSources walks ranked sources best first and keeps those that are not
// redundant with an already kept one, stopping at limit.
func dedupeSources(ranked []scoredSource, limit int) []domain.StaticSource {
	kept := make([]keptSource, 0, limit)
	for _, entry := range ranked {
		candidate := newKeptSource(entry.source)
		if candidate.redundantWith(kept) {
			continue
		}
		kept = append(kept, candidate)
		if len(kept) >= limit {
			break
		}
	}

	out := make([]domain.StaticSource, 0, len(kept))
	for _, k := range kept {
		out = append(out, k.source)
	}
	return out
}

// DedupeSources applies the redundancy rule to an already ranked list.
func DedupeSources(ranked []domain.StaticSource, limit int) []domain.StaticSource {
	if limit <= 0 {
		limit = len(ranked)
	}
	if limit == 0 {
		return []domain.StaticSource{}
	}
	entries := make([]scoredSource, 0, len(ranked))
	for _, source := range ranked {
		entries = append(entries, scoredSource{source: source})
	}
	return dedupeSources(entries, limit)
}
