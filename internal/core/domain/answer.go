package domain

import "time"

// AnswerRequest carries a question, an optional explicit topic hint and the
// user whose recent activity may stabilize an inferred topic.
type AnswerRequest struct {
	Question string
	Item     string
	UserID   string
	Limit    int
}

type AnswerCategory struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Summary     string        `json:"summary,omitempty"`
	Points      []AnswerPoint `json:"points"`
	Sources     []Citation    `json:"sources"`
}

type Answer struct {
	Question   string           `json:"question"`
	Context    ResolvedContext  `json:"context"`
	Mode       RetrievalMode    `json:"mode"`
	Summary    string           `json:"summary"`
	Categories []AnswerCategory `json:"categories"`
	Spoilers   string           `json:"spoilers"`
}

// CaseEvent records that a user asked about a topic. Events feed the recent
// activity window used for identity stabilization.
type CaseEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Topic      TopicID   `json:"topic,omitempty"`
	Question   string    `json:"question"`
	OccurredAt time.Time `json:"occurred_at"`
}
