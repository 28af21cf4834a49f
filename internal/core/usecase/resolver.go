package usecase

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

const (
	multiWordAliasScore     = 4
	singleWordAliasScore    = 2
	queryHighScoreThreshold = 6
	inferredScoreThreshold  = 3

	stabilizeKeepThreshold = 0.7
	stabilizeOverrideFloor = 0.4
	stabilizeCeiling       = 0.85
	stabilizeBoost         = 0.1

	highConfidenceFloor   = 0.75
	mediumConfidenceFloor = 0.45

	fallbackTopicType = "Item"
)

// Aliases that are ordinary words as well; a win carried by one of them is
// never trusted as a high confidence match.
var genericAliases = map[string]struct{}{
	"dream":  {},
	"titan":  {},
	"ending": {},
	"themes": {},
	"plot":   {},
}

type aliasMatcher struct {
	alias string
	// nil for multi-word aliases, which match as plain substrings.
	wordPattern *regexp.Regexp
}

type topicMatchers struct {
	entry    domain.AliasEntry
	matchers []aliasMatcher
}

type topicScore struct {
	id      domain.TopicID
	score   int
	longest int
	alias   string
}

// TopicResolver maps free-text questions to topics of the alias table.
// It is immutable after construction and safe for concurrent use.
type TopicResolver struct {
	topics []topicMatchers
	byID   map[domain.TopicID]domain.AliasEntry
}

func NewTopicResolver(entries []domain.AliasEntry) *TopicResolver {
	r := &TopicResolver{
		topics: make([]topicMatchers, 0, len(entries)),
		byID:   make(map[domain.TopicID]domain.AliasEntry, len(entries)),
	}
	for _, entry := range entries {
		all := make([]string, 0, len(entry.Aliases)+1)
		all = append(all, string(entry.ID))
		all = append(all, entry.Aliases...)

		matchers := make([]aliasMatcher, 0, len(all))
		for _, alias := range all {
			normalized := normalizeText(alias)
			if normalized == "" {
				continue
			}
			m := aliasMatcher{alias: normalized}
			if !strings.Contains(normalized, " ") {
				m.wordPattern = regexp.MustCompile(`\b` + regexp.QuoteMeta(normalized) + `\b`)
			}
			matchers = append(matchers, m)
		}

		r.topics = append(r.topics, topicMatchers{entry: entry, matchers: matchers})
		r.byID[entry.ID] = entry
	}
	return r
}

// Resolve classifies the question. A non-empty explicit hint always wins.
func (r *TopicResolver) Resolve(question, explicitHint string) domain.ResolvedContext {
	if hint := normalizeText(explicitHint); hint != "" {
		return domain.ResolvedContext{
			Item:       domain.TopicID(hint),
			Source:     domain.SourceExplicit,
			Confidence: domain.ConfidenceHigh,
			Candidates: []domain.ContextCandidate{},
		}
	}

	normalized := normalizeText(question)
	if normalized == "" {
		return domain.UnknownContext()
	}

	scores := r.scoreTopics(normalized)
	if len(scores) == 0 {
		return domain.UnknownContext()
	}

	best := scores[0]
	total := 0
	for _, s := range scores {
		total += s.score
	}

	tied := make([]domain.ContextCandidate, 0, 2)
	for _, s := range scores {
		if s.score != best.score || s.longest != best.longest {
			break
		}
		tied = append(tied, r.candidate(s.id, float64(s.score)/float64(total)))
	}
	if len(tied) > 1 {
		sort.SliceStable(tied, func(i, j int) bool {
			return tied[i].Confidence > tied[j].Confidence
		})
		return domain.ResolvedContext{
			Source:     domain.SourceAmbiguous,
			Confidence: domain.ConfidenceLow,
			Candidates: tied,
		}
	}

	_, generic := genericAliases[best.alias]
	switch {
	case best.score >= queryHighScoreThreshold && !generic:
		return domain.ResolvedContext{
			Item:       best.id,
			Source:     domain.SourceQuery,
			Confidence: domain.ConfidenceHigh,
			Candidates: []domain.ContextCandidate{},
		}
	case best.score >= inferredScoreThreshold:
		confidence := domain.ConfidenceMedium
		if generic {
			confidence = domain.ConfidenceLow
		}
		return domain.ResolvedContext{
			Item:       best.id,
			Source:     domain.SourceInferred,
			Confidence: confidence,
			Candidates: []domain.ContextCandidate{},
		}
	default:
		return domain.UnknownContext()
	}
}

// ResolveItem returns the resolved topic or an empty id.
func (r *TopicResolver) ResolveItem(question, explicitHint string) domain.TopicID {
	return r.Resolve(question, explicitHint).Item
}

// Stabilize lets a user's dominant recent topic confirm or replace a weakly
// inferred one. Only inferred contexts are ever touched.
func (r *TopicResolver) Stabilize(resolved domain.ResolvedContext, dominant domain.TopicID) domain.ResolvedContext {
	if dominant == "" {
		return resolved
	}
	if resolved.Source != domain.SourceInferred || !resolved.HasItem() {
		return resolved
	}

	score := confidenceScore(resolved.Confidence)
	if score >= stabilizeKeepThreshold {
		return resolved
	}
	if dominant != resolved.Item && score < stabilizeOverrideFloor {
		return resolved
	}

	out := resolved
	out.Item = dominant
	out.Source = domain.SourceIdentityStabilized
	out.Confidence = confidenceBucket(math.Min(stabilizeCeiling, score+stabilizeBoost))
	return out
}

// Describe returns the alias entry for id, or a title-cased placeholder for
// topics outside the table.
func (r *TopicResolver) Describe(id domain.TopicID) domain.AliasEntry {
	if entry, ok := r.byID[id]; ok {
		return entry
	}
	return domain.AliasEntry{
		ID:    id,
		Label: titleCaseSlug(string(id)),
		Type:  fallbackTopicType,
	}
}

// Topics lists the alias table in catalog order.
func (r *TopicResolver) Topics() []domain.AliasEntry {
	out := make([]domain.AliasEntry, 0, len(r.topics))
	for _, t := range r.topics {
		out = append(out, t.entry)
	}
	return out
}

func (r *TopicResolver) scoreTopics(normalizedQuestion string) []topicScore {
	scores := make([]topicScore, 0, 4)
	for _, topic := range r.topics {
		current := topicScore{id: topic.entry.ID}
		for _, m := range topic.matchers {
			points := m.score(normalizedQuestion)
			if points <= 0 {
				continue
			}
			current.score += points
			if n := utf8.RuneCountInString(m.alias); n > current.longest {
				current.longest = n
				current.alias = m.alias
			}
		}
		if current.score > 0 {
			scores = append(scores, current)
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].score != scores[j].score {
			return scores[i].score > scores[j].score
		}
		return scores[i].longest > scores[j].longest
	})
	return scores
}

func (m aliasMatcher) score(normalizedQuestion string) int {
	if m.wordPattern == nil {
		if strings.Contains(normalizedQuestion, m.alias) {
			return multiWordAliasScore
		}
		return 0
	}
	return singleWordAliasScore * len(m.wordPattern.FindAllStringIndex(normalizedQuestion, -1))
}

// candidate rounds down so the confidences of tied candidates never sum above one.
func (r *TopicResolver) candidate(id domain.TopicID, confidence float64) domain.ContextCandidate {
	entry := r.Describe(id)
	return domain.ContextCandidate{
		ID:         id,
		Label:      entry.Label,
		Type:       entry.Type,
		Confidence: math.Floor(confidence*100) / 100,
	}
}

func confidenceScore(c domain.ContextConfidence) float64 {
	switch c {
	case domain.ConfidenceHigh:
		return 0.8
	case domain.ConfidenceMedium:
		return 0.6
	default:
		return 0.3
	}
}

func confidenceBucket(score float64) domain.ContextConfidence {
	switch {
	case score >= highConfidenceFloor:
		return domain.ConfidenceHigh
	case score >= mediumConfidenceFloor:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

func titleCaseSlug(slug string) string {
	parts := strings.Split(slug, "-")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		words = append(words, strings.ToUpper(string(r))+part[size:])
	}
	return strings.Join(words, " ")
}
