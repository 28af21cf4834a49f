package domain

import (
	"fmt"
	"strings"
)

// SourceType is the closed set of corpus document kinds.
type SourceType int

const (
	SourceTypeUnknown SourceType = iota
	SourceTypeWiki
	SourceTypeArticle
	SourceTypeReddit
)

var sourceTypeNames = map[SourceType]string{
	SourceTypeUnknown: "unknown",
	SourceTypeWiki:    "wiki",
	SourceTypeArticle: "article",
	SourceTypeReddit:  "reddit",
}

func ParseSourceType(raw string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "wiki":
		return SourceTypeWiki, nil
	case "article":
		return SourceTypeArticle, nil
	case "reddit":
		return SourceTypeReddit, nil
	default:
		return SourceTypeUnknown, fmt.Errorf("unsupported source type %q", raw)
	}
}

func (t SourceType) String() string {
	if name, ok := sourceTypeNames[t]; ok {
		return name
	}
	return sourceTypeNames[SourceTypeUnknown]
}

// Weight is the authority prior used by ranking: official content outranks
// discussion threads at equal textual relevance.
func (t SourceType) Weight() int {
	switch t {
	case SourceTypeWiki:
		return 3
	case SourceTypeArticle:
		return 2
	case SourceTypeReddit:
		return 1
	case SourceTypeUnknown:
		return 0
	default:
		return 0
	}
}

func (t SourceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *SourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseSourceType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// StaticSource is one immutable corpus document.
type StaticSource struct {
	ID      string     `json:"id"`
	TopicID TopicID    `json:"topic_id"`
	Type    SourceType `json:"type"`
	Title   string     `json:"title"`
	URL     string     `json:"url"`
	Text    string     `json:"text"`
	Tags    []string   `json:"tags"`
}

// EmbeddingText is the text embedded for the vector index.
func (s StaticSource) EmbeddingText() string {
	return strings.TrimSpace(s.Title + ". " + s.Text + " " + strings.Join(s.Tags, " "))
}
