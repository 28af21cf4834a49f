package httpadapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

const maxRequestBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

type questionRequest struct {
	Question string `json:"question" validate:"max=2000"`
	Item     string `json:"item" validate:"omitempty,max=64"`
	UserID   string `json:"user_id" validate:"omitempty,max=128"`
	Limit    int    `json:"limit" validate:"gte=0,lte=12"`
}

type answerRequest struct {
	Question string `json:"question" validate:"required,max=2000"`
	Item     string `json:"item" validate:"omitempty,max=64"`
	UserID   string `json:"user_id" validate:"omitempty,max=128"`
	Limit    int    `json:"limit" validate:"gte=0,lte=12"`
}

type resolveResponse struct {
	Context domain.ResolvedContext `json:"context"`
	Topic   *domain.AliasEntry     `json:"topic,omitempty"`
}

type sourcesResponse struct {
	Question   string                 `json:"question"`
	Context    domain.ResolvedContext `json:"context"`
	Mode       domain.RetrievalMode   `json:"mode"`
	Sources    []domain.StaticSource  `json:"sources"`
	Similarity map[string]float64     `json:"similarity,omitempty"`
}

type evidenceResponse struct {
	Context  domain.ResolvedContext `json:"context"`
	Mode     domain.RetrievalMode   `json:"mode"`
	Evidence domain.EvidenceBundle  `json:"evidence"`
}

func (rt *Router) getTopic(w http.ResponseWriter, r *http.Request) {
	id := domain.TopicID(strings.ToLower(strings.TrimSpace(chi.URLParam(r, "topicID"))))
	entry, ok := rt.lookupTopic(id)
	if !ok {
		writeError(w, domain.WrapError(domain.ErrTopicNotFound, "get topic", fmt.Errorf("id=%s", id)))
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (rt *Router) resolveContext(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resolved := rt.answers.ResolveContext(req.Question, req.Item, req.UserID)
	resp := resolveResponse{Context: resolved}
	if entry, ok := rt.lookupTopic(resolved.Item); ok {
		resp.Topic = &entry
	}
	writeJSON(w, http.StatusOK, resp)
}

func (rt *Router) searchSources(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resolved, retrieval, bundle, err := rt.answers.Evidence(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	sources := retrieval.Sources
	if sources == nil {
		sources = []domain.StaticSource{}
	}
	writeJSON(w, http.StatusOK, sourcesResponse{
		Question:   bundle.Question,
		Context:    resolved,
		Mode:       retrieval.Mode,
		Sources:    sources,
		Similarity: retrieval.Similarity,
	})
}

func (rt *Router) evidence(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, err)
		return
	}

	resolved, retrieval, bundle, err := rt.answers.Evidence(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, evidenceResponse{Context: resolved, Mode: retrieval.Mode, Evidence: bundle})
}

func (rt *Router) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(w, err)
		return
	}

	answer, err := rt.answers.Answer(r.Context(), domain.AnswerRequest{
		Question: req.Question,
		Item:     req.Item,
		UserID:   req.UserID,
		Limit:    req.Limit,
	})
	if err != nil {
		rt.logger.Error("answer_failed", "request_id", requestIDFromContext(r.Context()), "error", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, answer)
}

func (rt *Router) lookupTopic(id domain.TopicID) (domain.AliasEntry, bool) {
	if rt.topics == nil || id == "" {
		return domain.AliasEntry{}, false
	}
	return rt.topics.Topic(id)
}

func (req questionRequest) toDomain() domain.AnswerRequest {
	return domain.AnswerRequest{
		Question: req.Question,
		Item:     req.Item,
		UserID:   req.UserID,
		Limit:    req.Limit,
	}
}

func decodeRequest(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "decode request", fmt.Errorf("invalid json: %w", err))
	}
	if err := validate.Struct(dst); err != nil {
		return domain.WrapError(domain.ErrInvalidInput, "validate request", err)
	}
	return nil
}
