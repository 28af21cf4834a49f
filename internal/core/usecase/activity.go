package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

const DefaultActivityWindow = 5

// ActivityTracker keeps the topics of each user's most recent cases in memory.
type ActivityTracker struct {
	window int

	mu     sync.RWMutex
	recent map[string][]domain.TopicID
}

func NewActivityTracker(window int) *ActivityTracker {
	if window <= 0 {
		window = DefaultActivityWindow
	}
	return &ActivityTracker{
		window: window,
		recent: make(map[string][]domain.TopicID),
	}
}

// RecordCase appends the event topic to the user's window. Cases without a
// topic still occupy a slot.
func (t *ActivityTracker) RecordCase(_ context.Context, event domain.CaseEvent) error {
	userID := strings.TrimSpace(event.UserID)
	if userID == "" {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	topics := append(t.recent[userID], event.Topic)
	if len(topics) > t.window {
		topics = append([]domain.TopicID(nil), topics[len(topics)-t.window:]...)
	}
	t.recent[userID] = topics
	return nil
}

// DominantTopic is the most frequent topic in the window; ties go to the
// topic seen most recently.
func (t *ActivityTracker) DominantTopic(userID string) domain.TopicID {
	t.mu.RLock()
	topics := t.recent[strings.TrimSpace(userID)]
	snapshot := append([]domain.TopicID(nil), topics...)
	t.mu.RUnlock()

	counts := make(map[domain.TopicID]int, len(snapshot))
	order := make([]domain.TopicID, 0, len(snapshot))
	for i := len(snapshot) - 1; i >= 0; i-- {
		topic := snapshot[i]
		if topic == "" {
			continue
		}
		if _, ok := counts[topic]; !ok {
			order = append(order, topic)
		}
		counts[topic]++
	}

	var dominant domain.TopicID
	best := 0
	for _, topic := range order {
		if counts[topic] > best {
			best = counts[topic]
			dominant = topic
		}
	}
	return dominant
}
