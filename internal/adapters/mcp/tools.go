// Package mcpadapter exposes topic resolution, source search and answers as
// MCP tools.
package mcpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

const (
	serverName    = "nerdvana-retrieval"
	serverVersion = "1.0.0"
)

type AnswerFlow interface {
	ResolveContext(question, item, userID string) domain.ResolvedContext
	Evidence(ctx context.Context, req domain.AnswerRequest) (domain.ResolvedContext, domain.RetrievalResult, domain.EvidenceBundle, error)
	Answer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error)
}

type Tools struct {
	answers AnswerFlow
	logger  *slog.Logger
}

func NewTools(answers AnswerFlow, logger *slog.Logger) *Tools {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tools{answers: answers, logger: logger}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(tools *Tools) *server.MCPServer {
	s := server.NewMCPServer(serverName, serverVersion, server.WithToolCapabilities(true))

	s.AddTool(mcp.NewTool("resolve_topic",
		mcp.WithDescription("Resolve which franchise a question is about. Returns the topic, its source and confidence, and candidates when ambiguous."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The user question.")),
		mcp.WithString("item", mcp.Description("Optional explicit topic id, e.g. inception.")),
		mcp.WithString("user_id", mcp.Description("Optional user id used to stabilize follow-up questions.")),
	), tools.ResolveTopic)

	s.AddTool(mcp.NewTool("search_sources",
		mcp.WithDescription("Retrieve ranked, deduplicated static sources for a question."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The user question.")),
		mcp.WithString("item", mcp.Description("Optional explicit topic id.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of sources, 1 to 12.")),
	), tools.SearchSources)

	s.AddTool(mcp.NewTool("answer_question",
		mcp.WithDescription("Answer a question with per-source-type summaries, citations and a separate spoiler summary."),
		mcp.WithString("question", mcp.Required(), mcp.Description("The user question.")),
		mcp.WithString("item", mcp.Description("Optional explicit topic id.")),
		mcp.WithString("user_id", mcp.Description("Optional user id.")),
	), tools.AnswerQuestion)

	return s
}

func (t *Tools) ResolveTopic(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resolved := t.answers.ResolveContext(question, req.GetString("item", ""), req.GetString("user_id", ""))
	return jsonResult(resolved)
}

func (t *Tools) SearchSources(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", 0)
	if limit < 0 || limit > 12 {
		return mcp.NewToolResultError("limit must be between 1 and 12"), nil
	}

	resolved, retrieval, _, err := t.answers.Evidence(ctx, domain.AnswerRequest{
		Question: question,
		Item:     req.GetString("item", ""),
		Limit:    limit,
	})
	if err != nil {
		t.logger.Warn("mcp_tool_failed", "tool", "search_sources", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	sources := retrieval.Sources
	if sources == nil {
		sources = []domain.StaticSource{}
	}
	return jsonResult(map[string]any{
		"context": resolved,
		"mode":    retrieval.Mode,
		"sources": sources,
	})
}

func (t *Tools) AnswerQuestion(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if strings.TrimSpace(question) == "" {
		return mcp.NewToolResultError("question must not be empty"), nil
	}

	answer, err := t.answers.Answer(ctx, domain.AnswerRequest{
		Question: question,
		Item:     req.GetString("item", ""),
		UserID:   req.GetString("user_id", ""),
	})
	if err != nil {
		t.logger.Warn("mcp_tool_failed", "tool", "answer_question", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(answer)
}

func jsonResult(payload any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
