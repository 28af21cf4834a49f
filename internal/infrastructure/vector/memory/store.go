package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

// Store is an in-process vector store scanned linearly on every query.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.VectorRecord
}

func New() *Store {
	return &Store{records: make(map[string]domain.VectorRecord)}
}

func (s *Store) Upsert(_ context.Context, records []domain.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		if record.ID == "" || len(record.Vector) == 0 {
			continue
		}
		vector := make([]float32, len(record.Vector))
		copy(vector, record.Vector)
		record.Vector = vector
		s.records[record.ID] = record
	}
	return nil
}

// Query returns the limit records most similar to vector, ordered by cosine
// similarity descending and id ascending.
func (s *Store) Query(_ context.Context, vector []float32, limit int) ([]domain.VectorMatch, error) {
	if len(vector) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	matches := make([]domain.VectorMatch, 0, len(s.records))
	for id, record := range s.records {
		matches = append(matches, domain.VectorMatch{ID: id, Score: Cosine(vector, record.Vector)})
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (s *Store) Contains(_ context.Context, ids []string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range ids {
		if _, ok := s.records[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Cosine is 0 for empty or mismatched vectors and for zero norms.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
