package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/llm/prompt"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, genModel, embedModel string) *Client {
	return NewWithOptions(baseURL, genModel, embedModel, Options{})
}

func NewWithOptions(baseURL, genModel, embedModel string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

// Embed returns the embedding of a single text. An empty model response
// yields an empty vector, not an error.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	request := map[string]any{
		"model": e.client.embedModel,
		"input": []string{text},
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := e.client.postJSON(ctx, "/api/embed", request, &response, "embed"); err != nil {
		return nil, err
	}
	if len(response.Embeddings) == 0 {
		return nil, nil
	}
	return response.Embeddings[0], nil
}

type Summarizer struct {
	client *Client
}

func NewSummarizer(client *Client) *Summarizer {
	return &Summarizer{client: client}
}

func (s *Summarizer) Summarize(ctx context.Context, category, question string, chunks []string) (domain.CategorySummary, error) {
	if len(chunks) == 0 {
		return domain.CategorySummary{}, domain.WrapError(domain.ErrInvalidInput, "ollama summarize", fmt.Errorf("no chunks"))
	}
	raw, err := s.client.generateJSON(ctx, prompt.Summary(category, question, chunks))
	if err != nil {
		return domain.CategorySummary{}, err
	}
	return domain.ParseCategorySummary(raw, category)
}

func (c *Client) generateJSON(ctx context.Context, promptText string) (string, error) {
	reqBody := map[string]any{
		"model":   c.genModel,
		"prompt":  promptText,
		"stream":  false,
		"format":  "json",
		"options": map[string]any{"temperature": 0.2},
	}
	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}
