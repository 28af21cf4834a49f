// Package openai talks to OpenAI-compatible embeddings and responses
// endpoints.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/llm/prompt"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/resilience"
)

const DefaultBaseURL = "https://api.openai.com"

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

func New(baseURL, apiKey string, options Options) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

type Embedder struct {
	client *Client
	model  string
}

func NewEmbedder(client *Client, model string) *Embedder {
	return &Embedder{client: client, model: model}
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	request := map[string]any{
		"model": e.model,
		"input": text,
	}
	var response struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := e.client.postJSON(ctx, "/v1/embeddings", request, &response, "embeddings"); err != nil {
		return nil, err
	}
	if len(response.Data) == 0 {
		return nil, nil
	}
	return response.Data[0].Embedding, nil
}

type Summarizer struct {
	client *Client
	model  string
}

func NewSummarizer(client *Client, model string) *Summarizer {
	return &Summarizer{client: client, model: model}
}

func (s *Summarizer) Summarize(ctx context.Context, category, question string, chunks []string) (domain.CategorySummary, error) {
	if len(chunks) == 0 {
		return domain.CategorySummary{}, domain.WrapError(domain.ErrInvalidInput, "openai summarize", fmt.Errorf("no chunks"))
	}
	request := map[string]any{
		"model":       s.model,
		"temperature": 0.2,
		"input":       prompt.Summary(category, question, chunks),
	}
	var response responsesReply
	if err := s.client.postJSON(ctx, "/v1/responses", request, &response, "responses"); err != nil {
		return domain.CategorySummary{}, err
	}
	return domain.ParseCategorySummary(response.text(), category)
}

// responsesReply covers both the output_text shortcut and the structured
// output list.
type responsesReply struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

func (r responsesReply) text() string {
	if strings.TrimSpace(r.OutputText) != "" {
		return strings.TrimSpace(r.OutputText)
	}
	var b strings.Builder
	for _, item := range r.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" {
				b.WriteString(content.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	call := func(callCtx context.Context) error {
		req, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create %s request: %w", operation, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("openai %s request: %w", operation, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			return &resilience.HTTPStatusError{
				Operation:  "openai " + operation,
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       strings.TrimSpace(string(msg)),
			}
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		return nil
	}

	op := "openai." + operation
	if c.executor == nil {
		return call(ctx)
	}
	err = c.executor.Execute(ctx, op, call, resilience.ClassifyHTTPError)
	return resilience.WrapTemporary(op, err, resilience.ClassifyHTTPError)
}
