package domain

// TopicID is the canonical slug of a franchise or work, e.g. "attack-on-titan".
type TopicID string

// ContextSource tags where a resolved topic came from.
type ContextSource string

const (
	SourceExplicit           ContextSource = "explicit"
	SourceQuery              ContextSource = "query"
	SourceInferred           ContextSource = "inferred"
	SourceIdentityStabilized ContextSource = "identity-stabilized"
	SourceAmbiguous          ContextSource = "ambiguous"
	SourceUnknown            ContextSource = "unknown"
)

type ContextConfidence string

const (
	ConfidenceHigh   ContextConfidence = "high"
	ConfidenceMedium ContextConfidence = "medium"
	ConfidenceLow    ContextConfidence = "low"
)

// AliasEntry describes one topic of the alias table. Aliases keep catalog order.
type AliasEntry struct {
	ID      TopicID  `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type"`
	Aliases []string `json:"aliases"`
}

type ContextCandidate struct {
	ID         TopicID `json:"id"`
	Label      string  `json:"label"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

// ResolvedContext is the outcome of topic resolution. Item is empty only for
// ambiguous and unknown sources; Candidates is filled only for ambiguous ones.
type ResolvedContext struct {
	Item       TopicID            `json:"item,omitempty"`
	Source     ContextSource      `json:"source"`
	Confidence ContextConfidence  `json:"confidence"`
	Candidates []ContextCandidate `json:"candidates"`
}

func UnknownContext() ResolvedContext {
	return ResolvedContext{
		Source:     SourceUnknown,
		Confidence: ConfidenceLow,
		Candidates: []ContextCandidate{},
	}
}

func (c ResolvedContext) HasItem() bool {
	return c.Item != ""
}

// Valid reports whether the context is specific enough to scope retrieval.
func (c ResolvedContext) Valid() bool {
	return c.HasItem() && c.Source != SourceAmbiguous && c.Confidence != ConfidenceLow
}

// TopCandidates returns at most n candidates for display.
func (c ResolvedContext) TopCandidates(n int) []ContextCandidate {
	if n <= 0 || len(c.Candidates) <= n {
		out := make([]ContextCandidate, len(c.Candidates))
		copy(out, c.Candidates)
		return out
	}
	out := make([]ContextCandidate, n)
	copy(out, c.Candidates[:n])
	return out
}
