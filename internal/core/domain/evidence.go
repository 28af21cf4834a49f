package domain

import "regexp"

const (
	RetrievalStatusCategoryID = "retrieval_status"
	RetrievalStatusTitle      = "RETRIEVAL STATUS"
)

var spoilerLabelPattern = regexp.MustCompile(`(?i)ending|bookshelf|twist|finale|spoiler`)

// EvidenceDocument is a labelled block of text handed to ranking, either a
// source-type group or a fallback fragment such as "plot".
type EvidenceDocument struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type Citation struct {
	Title string     `json:"title"`
	URL   string     `json:"url"`
	Type  SourceType `json:"type"`
	Text  string     `json:"text"`
}

type EvidenceGroup struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Text        string     `json:"text,omitempty"`
	Score       int        `json:"score"`
	Lines       []string   `json:"lines,omitempty"`
	Sources     []Citation `json:"sources"`
}

// EvidenceBundle is the per-category evidence passed to summarization.
type EvidenceBundle struct {
	Question string          `json:"question"`
	Topic    TopicID         `json:"topic,omitempty"`
	Groups   []EvidenceGroup `json:"groups"`
}

// IsRetrievalStatus reports whether the bundle is the placeholder emitted when
// nothing could be retrieved.
func (b EvidenceBundle) IsRetrievalStatus() bool {
	return len(b.Groups) == 1 && b.Groups[0].ID == RetrievalStatusCategoryID
}

// SpoilerGroup picks the group most likely to carry spoilers, falling back to
// the top ranked one.
func (b EvidenceBundle) SpoilerGroup() (EvidenceGroup, bool) {
	if len(b.Groups) == 0 || b.IsRetrievalStatus() {
		return EvidenceGroup{}, false
	}
	for _, group := range b.Groups {
		if spoilerLabelPattern.MatchString(group.Label) {
			return group, true
		}
	}
	return b.Groups[0], true
}
