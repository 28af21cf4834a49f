package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirillkom/nerdvana-retrieval/internal/config"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/observability/metrics"
)

type answerFlowFake struct {
	resolved  domain.ResolvedContext
	retrieval domain.RetrievalResult
	bundle    domain.EvidenceBundle
	answer    *domain.Answer
	err       error

	lastRequest domain.AnswerRequest
}

func (f *answerFlowFake) ResolveContext(question, item, userID string) domain.ResolvedContext {
	f.lastRequest = domain.AnswerRequest{Question: question, Item: item, UserID: userID}
	return f.resolved
}

func (f *answerFlowFake) Evidence(_ context.Context, req domain.AnswerRequest) (domain.ResolvedContext, domain.RetrievalResult, domain.EvidenceBundle, error) {
	f.lastRequest = req
	return f.resolved, f.retrieval, f.bundle, f.err
}

func (f *answerFlowFake) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

type topicsFake map[domain.TopicID]domain.AliasEntry

func (f topicsFake) Topic(id domain.TopicID) (domain.AliasEntry, bool) {
	entry, ok := f[id]
	return entry, ok
}

func newTestHandler(cfg config.Config, flow AnswerFlow) http.Handler {
	return NewRouter(cfg, Deps{
		Answers: flow,
		Topics: topicsFake{
			"inception": {ID: "inception", Label: "Inception", Type: "Movie", Aliases: []string{"inception", "cobb"}},
		},
		Metrics: metrics.NewServerMetrics("api-test"),
	}).Handler()
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestResolveContextIncludesTopicEntry(t *testing.T) {
	flow := &answerFlowFake{resolved: domain.ResolvedContext{
		Item:       "inception",
		Source:     domain.SourceInferred,
		Confidence: domain.ConfidenceMedium,
		Candidates: []domain.ContextCandidate{},
	}}
	res := postJSON(t, newTestHandler(config.Config{}, flow), "/v1/context/resolve", map[string]any{
		"question": "Why does Cobb spin the totem?",
		"user_id":  "u-1",
	})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp resolveResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Context.Source != domain.SourceInferred || resp.Topic == nil || resp.Topic.Label != "Inception" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if flow.lastRequest.UserID != "u-1" {
		t.Fatalf("expected user id to reach the use case, got %+v", flow.lastRequest)
	}
}

func TestSearchSourcesReturnsEmptyListNotNull(t *testing.T) {
	flow := &answerFlowFake{
		resolved:  domain.UnknownContext(),
		retrieval: domain.RetrievalResult{Mode: domain.RetrievalModeLexical},
	}
	res := postJSON(t, newTestHandler(config.Config{}, flow), "/v1/sources/search", map[string]any{"question": "zzz"})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), `"sources":[]`) {
		t.Fatalf("expected empty sources array, got %s", res.Body.String())
	}
}

func TestEvidenceReturnsBundle(t *testing.T) {
	flow := &answerFlowFake{
		resolved:  domain.UnknownContext(),
		retrieval: domain.RetrievalResult{Mode: domain.RetrievalModeLexical},
		bundle: domain.EvidenceBundle{Groups: []domain.EvidenceGroup{{
			ID:    domain.RetrievalStatusCategoryID,
			Title: domain.RetrievalStatusTitle,
			Lines: []string{`Question: "empty"`},
		}}},
	}
	res := postJSON(t, newTestHandler(config.Config{}, flow), "/v1/evidence", map[string]any{"question": ""})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if !strings.Contains(res.Body.String(), domain.RetrievalStatusTitle) {
		t.Fatalf("expected status group in body, got %s", res.Body.String())
	}
}

func TestAnswerRequiresQuestion(t *testing.T) {
	res := postJSON(t, newTestHandler(config.Config{}, &answerFlowFake{}), "/v1/answers", map[string]any{"question": ""})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAnswerRejectsOversizedLimit(t *testing.T) {
	res := postJSON(t, newTestHandler(config.Config{}, &answerFlowFake{}), "/v1/answers", map[string]any{"question": "q", "limit": 50})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestAnswerMapsTemporaryErrorTo503(t *testing.T) {
	flow := &answerFlowFake{err: domain.WrapError(domain.ErrTemporary, "answer", errors.New("embedder down"))}
	res := postJSON(t, newTestHandler(config.Config{}, flow), "/v1/answers", map[string]any{"question": "What is tenet?"})
	if res.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", res.Code)
	}
}

func TestAnswerReturnsPayload(t *testing.T) {
	flow := &answerFlowFake{answer: &domain.Answer{
		Question: "What is tenet?",
		Mode:     domain.RetrievalModeSemantic,
		Summary:  "Tenet is a time inversion thriller.",
	}}
	res := postJSON(t, newTestHandler(config.Config{}, flow), "/v1/answers", map[string]any{"question": "What is tenet?", "item": "tenet"})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if flow.lastRequest.Item != "tenet" {
		t.Fatalf("expected item to reach the use case, got %+v", flow.lastRequest)
	}
	var answer domain.Answer
	if err := json.Unmarshal(res.Body.Bytes(), &answer); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if answer.Summary != "Tenet is a time inversion thriller." {
		t.Fatalf("unexpected answer %+v", answer)
	}
}

func TestGetTopicReturns404ForUnknown(t *testing.T) {
	res := httptest.NewRecorder()
	newTestHandler(config.Config{}, &answerFlowFake{}).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/v1/topics/missing", nil))
	if res.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.Code)
	}
}

func TestInvalidJSONReturns400(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/evidence", strings.NewReader("{"))
	res := httptest.NewRecorder()
	newTestHandler(config.Config{}, &answerFlowFake{}).ServeHTTP(res, req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	res := httptest.NewRecorder()
	newTestHandler(config.Config{}, &answerFlowFake{}).ServeHTTP(res, req)
	if got := res.Header().Get(requestIDHeader); got != "req-123" {
		t.Fatalf("expected request id echo, got %q", got)
	}
}

func TestMetricsEndpointIsServed(t *testing.T) {
	res := httptest.NewRecorder()
	newTestHandler(config.Config{}, &answerFlowFake{}).ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
}
