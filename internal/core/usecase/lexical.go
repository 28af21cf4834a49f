package usecase

import (
	"sort"
	"strings"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

// DefaultRetrievalLimit is used when callers pass a non-positive limit.
const DefaultRetrievalLimit = 6

type scoredSource struct {
	source domain.StaticSource
	score  float64
}

// LexicalIndex ranks the static corpus by keyword and tag overlap weighted by
// source authority. It never mutates the corpus.
type LexicalIndex struct {
	sources []domain.StaticSource
}

func NewLexicalIndex(sources []domain.StaticSource) *LexicalIndex {
	copied := make([]domain.StaticSource, len(sources))
	copy(copied, sources)
	return &LexicalIndex{sources: copied}
}

// Retrieve returns up to limit deduplicated sources, best first.
func (idx *LexicalIndex) Retrieve(question string, topicHint domain.TopicID, limit int) []domain.StaticSource {
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}

	normalizedQuestion := normalizeText(question)
	keywords := queryKeywords(question)
	hint := normalizeText(string(topicHint))

	scored := make([]scoredSource, 0, len(idx.sources))
	for _, source := range idx.sources {
		score := lexicalScore(source, normalizedQuestion, keywords, hint)
		if score <= 0 {
			continue
		}
		scored = append(scored, scoredSource{source: source, score: float64(score)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		wi, wj := scored[i].source.Type.Weight(), scored[j].source.Type.Weight()
		if wi != wj {
			return wi > wj
		}
		return scored[i].source.ID < scored[j].source.ID
	})

	return dedupeSources(scored, limit)
}

// Sources exposes the indexed corpus in catalog order.
func (idx *LexicalIndex) Sources() []domain.StaticSource {
	out := make([]domain.StaticSource, len(idx.sources))
	copy(out, idx.sources)
	return out
}

func lexicalScore(source domain.StaticSource, normalizedQuestion string, keywords []string, hint string) int {
	weight := source.Type.Weight()
	searchable := normalizeText(source.Title + " " + source.Text + " " + strings.Join(source.Tags, " "))

	score := weight * 4
	for _, keyword := range keywords {
		if strings.Contains(searchable, keyword) {
			score += 2 + weight
		}
	}
	for _, tag := range source.Tags {
		if strings.Contains(normalizedQuestion, normalizeText(tag)) {
			score += 3 + weight
		}
	}
	if hint != "" && normalizeText(string(source.TopicID)) == hint {
		score += 6 + 2*weight
	}
	if source.Type != domain.SourceTypeUnknown && strings.Contains(normalizedQuestion, source.Type.String()) {
		score++
	}
	return score
}
