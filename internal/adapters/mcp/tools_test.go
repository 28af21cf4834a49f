package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

type answerFlowFake struct {
	resolved  domain.ResolvedContext
	retrieval domain.RetrievalResult
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
	return f.resolved, f.retrieval, domain.EvidenceBundle{}, f.err
}

func (f *answerFlowFake) Answer(_ context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	f.lastRequest = req
	return f.answer, f.err
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestResolveTopicReturnsContextJSON(t *testing.T) {
	flow := &answerFlowFake{resolved: domain.ResolvedContext{
		Item:       "interstellar",
		Source:     domain.SourceExplicit,
		Confidence: domain.ConfidenceHigh,
		Candidates: []domain.ContextCandidate{},
	}}
	tools := NewTools(flow, nil)

	result, err := tools.ResolveTopic(context.Background(), callRequest(map[string]any{
		"question": "What is the bookshelf?",
		"item":     "interstellar",
	}))
	if err != nil {
		t.Fatalf("ResolveTopic() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var resolved domain.ResolvedContext
	if err := json.Unmarshal([]byte(resultText(t, result)), &resolved); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if resolved.Item != "interstellar" || flow.lastRequest.Item != "interstellar" {
		t.Fatalf("unexpected resolution %+v / request %+v", resolved, flow.lastRequest)
	}
}

func TestResolveTopicRequiresQuestion(t *testing.T) {
	result, err := NewTools(&answerFlowFake{}, nil).ResolveTopic(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("ResolveTopic() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error for missing question")
	}
}

func TestSearchSourcesRejectsLimitOutOfRange(t *testing.T) {
	result, err := NewTools(&answerFlowFake{}, nil).SearchSources(context.Background(), callRequest(map[string]any{
		"question": "q",
		"limit":    40,
	}))
	if err != nil {
		t.Fatalf("SearchSources() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error for limit 40")
	}
}

func TestSearchSourcesPassesLimit(t *testing.T) {
	flow := &answerFlowFake{
		resolved:  domain.UnknownContext(),
		retrieval: domain.RetrievalResult{Mode: domain.RetrievalModeLexical},
	}
	result, err := NewTools(flow, nil).SearchSources(context.Background(), callRequest(map[string]any{
		"question": "dream layers",
		"limit":    3,
	}))
	if err != nil || result.IsError {
		t.Fatalf("SearchSources() = %+v, %v", result, err)
	}
	if flow.lastRequest.Limit != 3 {
		t.Fatalf("expected limit 3, got %d", flow.lastRequest.Limit)
	}
}

func TestAnswerQuestionSurfacesErrorsAsToolErrors(t *testing.T) {
	flow := &answerFlowFake{err: domain.WrapError(domain.ErrInvalidInput, "evidence", errors.New("too long"))}
	result, err := NewTools(flow, nil).AnswerQuestion(context.Background(), callRequest(map[string]any{"question": "q"}))
	if err != nil {
		t.Fatalf("AnswerQuestion() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error")
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	s := NewServer(NewTools(&answerFlowFake{}, nil))
	if s == nil {
		t.Fatalf("expected server")
	}
}
