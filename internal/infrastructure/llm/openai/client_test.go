package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/resilience"
)

func TestEmbedSendsBearerTokenAndModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		if payload["model"] != "text-embedding-3-small" || payload["input"] != "totem" {
			t.Fatalf("unexpected payload %v", payload)
		}
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
	}))
	defer server.Close()

	embedder := NewEmbedder(New(server.URL, "sk-test", Options{}), "text-embedding-3-small")
	vector, err := embedder.Embed(context.Background(), "totem")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(vector) != 3 {
		t.Fatalf("unexpected vector %v", vector)
	}
}

func TestEmbedEmptyDataIsEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	vector, err := NewEmbedder(New(server.URL, "", Options{}), "m").Embed(context.Background(), "totem")
	if err != nil || len(vector) != 0 {
		t.Fatalf("Embed() = %v, %v", vector, err)
	}
}

func TestSummarizeReadsOutputText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			http.NotFound(w, r)
			return
		}
		reply := "```json\n{\"summary\":\"The bookshelf links Cooper to Murph.\",\"points\":[\"a\",\"b\",\"c\",\"d\",\"e\",\"f\"]}\n```"
		_ = json.NewEncoder(w).Encode(map[string]string{"output_text": reply})
	}))
	defer server.Close()

	summarizer := NewSummarizer(New(server.URL, "sk", Options{}), "gpt-4.1-mini")
	got, err := summarizer.Summarize(context.Background(), "article", "What is the bookshelf?", []string{"chunk"})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if got.Summary != "The bookshelf links Cooper to Murph." {
		t.Fatalf("unexpected summary %q", got.Summary)
	}
	if len(got.Points) != domain.MaxSummaryPoints {
		t.Fatalf("expected points capped at %d, got %d", domain.MaxSummaryPoints, len(got.Points))
	}
}

func TestSummarizeFallsBackToStructuredOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":[{"content":[{"type":"output_text","text":"{\"summary\":\"s\",\"points\":[\"a\",\"b\",\"c\"]}"}]}]}`))
	}))
	defer server.Close()

	got, err := NewSummarizer(New(server.URL, "sk", Options{}), "m").Summarize(context.Background(), "wiki", "q", []string{"c"})
	if err != nil || got.Summary != "s" {
		t.Fatalf("Summarize() = %+v, %v", got, err)
	}
}

func TestStatusErrorKeepsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewEmbedder(New(server.URL, "bad", Options{}), "m").Embed(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "invalid api key") {
		t.Fatalf("expected body in error, got %v", err)
	}
	if !resilience.IsHTTPStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 status error, got %v", err)
	}
}
