package domain

type RetrievalMode string

const (
	RetrievalModeSemantic RetrievalMode = "semantic"
	RetrievalModeLexical  RetrievalMode = "lexical"
)

type VectorRecord struct {
	ID       string            `json:"id"`
	Vector   []float32         `json:"vector"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type VectorMatch struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

// RetrievalResult is a ranked, deduplicated source list. Similarity holds the
// raw cosine score per source id and is only set on the semantic path.
type RetrievalResult struct {
	Mode       RetrievalMode      `json:"mode"`
	Sources    []StaticSource     `json:"sources"`
	Similarity map[string]float64 `json:"similarity,omitempty"`
}
