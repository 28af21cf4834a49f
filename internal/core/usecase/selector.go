package usecase

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

const (
	evidenceGroupPrefix         = "source_"
	questionPhraseBonus         = 2
	retrievalStatusDescription  = "Static keyword retrieval checks question tokens against item documents."
	defaultEvidenceContextLabel = "query context"
)

var labelSeparatorPattern = regexp.MustCompile(`[_-]+`)

type rankedDocument struct {
	doc   domain.EvidenceDocument
	score int
}

// DocumentSelector groups retrieved sources per source type and orders the
// groups by overlap with the literal question.
type DocumentSelector struct {
	fallback map[domain.TopicID][]domain.EvidenceDocument
}

// NewDocumentSelector takes per-topic fragments used when retrieval returned
// nothing for a known topic.
func NewDocumentSelector(fallback map[domain.TopicID][]domain.EvidenceDocument) *DocumentSelector {
	copied := make(map[domain.TopicID][]domain.EvidenceDocument, len(fallback))
	for topic, docs := range fallback {
		copied[domain.TopicID(normalizeText(string(topic)))] = append([]domain.EvidenceDocument(nil), docs...)
	}
	return &DocumentSelector{fallback: copied}
}

func (s *DocumentSelector) Select(sources []domain.StaticSource, question string, topic domain.TopicID) domain.EvidenceBundle {
	trimmed := strings.TrimSpace(question)
	normalizedTopic := domain.TopicID(normalizeText(string(topic)))

	docs, citations := groupSources(sources)
	if len(docs) == 0 && normalizedTopic != "" {
		docs = s.fallback[normalizedTopic]
	}
	if trimmed == "" || len(docs) == 0 {
		return retrievalStatusBundle(trimmed, normalizedTopic)
	}

	contextLabel := string(normalizedTopic)
	if contextLabel == "" {
		contextLabel = defaultEvidenceContextLabel
	}

	ranked := rankDocuments(docs, trimmed)
	groups := make([]domain.EvidenceGroup, 0, len(ranked))
	for _, entry := range ranked {
		cited := citations[entry.doc.Label]
		if cited == nil {
			cited = []domain.Citation{}
		}
		groups = append(groups, domain.EvidenceGroup{
			ID:          evidenceGroupPrefix + entry.doc.Label,
			Title:       formatGroupTitle(entry.doc.Label),
			Label:       entry.doc.Label,
			Description: fmt.Sprintf("Retrieved from static sources for %s.", contextLabel),
			Text:        entry.doc.Text,
			Score:       entry.score,
			Sources:     cited,
		})
	}

	return domain.EvidenceBundle{
		Question: trimmed,
		Topic:    normalizedTopic,
		Groups:   groups,
	}
}

// groupSources concatenates "{title}. {text}" per source type in first-seen
// order. A URL already present in a group is skipped.
func groupSources(sources []domain.StaticSource) ([]domain.EvidenceDocument, map[string][]domain.Citation) {
	order := make([]string, 0, 3)
	texts := make(map[string][]string)
	citations := make(map[string][]domain.Citation)
	seenURLs := make(map[string]map[string]struct{})

	for _, source := range sources {
		label := source.Type.String()
		if _, ok := seenURLs[label]; !ok {
			seenURLs[label] = make(map[string]struct{})
			order = append(order, label)
		}
		if _, dup := seenURLs[label][source.URL]; dup {
			continue
		}
		seenURLs[label][source.URL] = struct{}{}

		texts[label] = append(texts[label], source.Title+". "+source.Text)
		citations[label] = append(citations[label], domain.Citation{
			Title: source.Title,
			URL:   source.URL,
			Type:  source.Type,
			Text:  source.Text,
		})
	}

	docs := make([]domain.EvidenceDocument, 0, len(order))
	for _, label := range order {
		docs = append(docs, domain.EvidenceDocument{
			Label: label,
			Text:  strings.Join(texts[label], " "),
		})
	}
	return docs, citations
}

// rankDocuments scores documents by keyword hits plus a bonus when the whole
// question appears verbatim. Without any hit every document is returned.
func rankDocuments(docs []domain.EvidenceDocument, question string) []rankedDocument {
	normalizedQuestion := normalizeText(question)
	keywords := queryKeywords(question)

	ranked := make([]rankedDocument, 0, len(docs))
	for _, doc := range docs {
		ranked = append(ranked, rankedDocument{doc: doc, score: documentScore(doc, normalizedQuestion, keywords)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].doc.Label < ranked[j].doc.Label
	})

	withHits := ranked[:0:0]
	for _, entry := range ranked {
		if entry.score > 0 {
			withHits = append(withHits, entry)
		}
	}
	if len(withHits) == 0 {
		return ranked
	}
	return withHits
}

func documentScore(doc domain.EvidenceDocument, normalizedQuestion string, keywords []string) int {
	haystack := normalizeText(doc.Label + " " + doc.Text)
	score := 0
	for _, keyword := range keywords {
		if strings.Contains(haystack, keyword) {
			score++
		}
	}
	if normalizedQuestion != "" && strings.Contains(haystack, normalizedQuestion) {
		score += questionPhraseBonus
	}
	return score
}

func retrievalStatusBundle(question string, topic domain.TopicID) domain.EvidenceBundle {
	shown := question
	if shown == "" {
		shown = "empty"
	}
	contextLine := "No item context provided in query parameter 'item'."
	if topic != "" {
		contextLine = `Context item "` + string(topic) + `" has no indexed documents.`
	}

	return domain.EvidenceBundle{
		Question: question,
		Topic:    topic,
		Groups: []domain.EvidenceGroup{{
			ID:          domain.RetrievalStatusCategoryID,
			Title:       domain.RetrievalStatusTitle,
			Label:       domain.RetrievalStatusCategoryID,
			Description: retrievalStatusDescription,
			Lines: []string{
				`Question: "` + shown + `"`,
				contextLine,
			},
			Sources: []domain.Citation{},
		}},
	}
}

func formatGroupTitle(label string) string {
	return strings.ToUpper(labelSeparatorPattern.ReplaceAllString(label, " "))
}
