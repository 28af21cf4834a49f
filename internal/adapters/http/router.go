package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kirillkom/nerdvana-retrieval/internal/config"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/observability/metrics"
)

// AnswerFlow is the slice of the answer use case the HTTP API needs.
type AnswerFlow interface {
	ResolveContext(question, item, userID string) domain.ResolvedContext
	Evidence(ctx context.Context, req domain.AnswerRequest) (domain.ResolvedContext, domain.RetrievalResult, domain.EvidenceBundle, error)
	Answer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error)
}

type TopicDirectory interface {
	Topic(id domain.TopicID) (domain.AliasEntry, bool)
}

type Deps struct {
	Answers AnswerFlow
	Topics  TopicDirectory
	Metrics *metrics.ServerMetrics
	Logger  *slog.Logger
}

type Router struct {
	cfg     config.Config
	answers AnswerFlow
	topics  TopicDirectory
	metrics *metrics.ServerMetrics
	logger  *slog.Logger
}

func NewRouter(cfg config.Config, deps Deps) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		cfg:     cfg,
		answers: deps.Answers,
		topics:  deps.Topics,
		metrics: deps.Metrics,
		logger:  logger,
	}
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(rt.logger))
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}

	r.Get("/healthz", rt.healthz)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return rateLimitMiddleware(next, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst, rt.rejected)
		})
		r.Use(func(next http.Handler) http.Handler {
			return backpressureMiddleware(next, rt.cfg.APIMaxInFlight, rt.cfg.APIQueueWait, rt.rejected)
		})

		r.Get("/topics/{topicID}", rt.getTopic)
		r.Post("/context/resolve", rt.resolveContext)
		r.Post("/sources/search", rt.searchSources)
		r.Post("/evidence", rt.evidence)
		r.Post("/answers", rt.answer)
	})
	return r
}

func (rt *Router) rejected(reason string) {
	if rt.metrics != nil {
		rt.metrics.RecordRejected(reason)
	}
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
