package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sony/gobreaker/v2"

	"github.com/kirillkom/nerdvana-retrieval/internal/config"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/ports"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/usecase"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/catalog"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/llm/openai"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/queue/nats"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/resilience"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/vector/memory"
	"github.com/kirillkom/nerdvana-retrieval/internal/infrastructure/vector/qdrant"
	"github.com/kirillkom/nerdvana-retrieval/internal/observability/metrics"
)

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.ServerMetrics

	Catalog  *catalog.Catalog
	Resolver *usecase.TopicResolver
	Index    *usecase.SemanticIndex
	Activity *usecase.ActivityTracker
	AnswerUC *usecase.AnswerUseCase

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, service string, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	serverMetrics := metrics.NewServerMetrics(service)
	executor := resilience.NewExecutor(cfg.Resilience,
		resilience.WithLogger(logger),
		resilience.WithStateListener(func(operation string, _ gobreaker.State, to gobreaker.State) {
			serverMetrics.ObserveBreakerState(operation, to.String())
		}),
	)

	embedder := newEmbedder(cfg, executor)
	store := newVectorStore(cfg, executor)
	primary := newSummarizer(cfg, executor)

	resolver := usecase.NewTopicResolver(cat.Topics)
	lexical := usecase.NewLexicalIndex(cat.Sources)
	index := usecase.NewSemanticIndex(embedder, store, lexical, usecase.SemanticIndexOptions{
		EmbedTimeout: cfg.EmbedTimeout,
		Logger:       logger,
		Observer:     serverMetrics,
	})
	selector := usecase.NewDocumentSelector(cat.Fallback)
	summaries := usecase.NewSummaryService(primary, logger)
	activity := usecase.NewActivityTracker(cfg.ActivityWindow)

	var recorder ports.CaseRecorder = activity
	closeFn := func() {}
	if cfg.NATSEnabled {
		bus, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			ResilienceExecutor: executor,
			Logger:             logger,
		})
		if err != nil {
			return nil, fmt.Errorf("init case bus: %w", err)
		}
		recorder = bus

		subCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := bus.SubscribeCases(subCtx, activity.RecordCase); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("case_subscription_failed", "error", err)
			}
		}()
		closeFn = func() {
			cancel()
			<-done
			bus.Close()
		}
	}

	answerUC := usecase.NewAnswerUseCase(resolver, index, selector, summaries, usecase.AnswerUseCaseOptions{
		Limit:    cfg.RetrievalLimit,
		Activity: activity,
		Recorder: recorder,
		Observer: serverMetrics,
		Logger:   logger,
	})

	logger.Info("bootstrap_ready",
		"topics", len(cat.Topics),
		"sources", len(cat.Sources),
		"embed_provider", cfg.EmbedProvider,
		"summary_provider", cfg.SummaryProvider,
		"vector_store", cfg.VectorStore,
		"nats_enabled", cfg.NATSEnabled,
	)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Metrics:  serverMetrics,
		Catalog:  cat,
		Resolver: resolver,
		Index:    index,
		Activity: activity,
		AnswerUC: answerUC,
		closeFn:  closeFn,
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// Topic satisfies the HTTP topic directory.
func (a *App) Topic(id domain.TopicID) (domain.AliasEntry, bool) {
	return a.Catalog.Topic(id)
}

func newEmbedder(cfg config.Config, executor *resilience.Executor) ports.Embedder {
	if !cfg.SemanticEnabled {
		return nil
	}
	switch cfg.EmbedProvider {
	case config.ProviderOllama:
		client := ollama.NewWithOptions(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, ollama.Options{
			ResilienceExecutor: executor,
		})
		return ollama.NewEmbedder(client)
	case config.ProviderOpenAI:
		client := openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, openai.Options{ResilienceExecutor: executor})
		return openai.NewEmbedder(client, cfg.OpenAIEmbedModel)
	default:
		return nil
	}
}

func newVectorStore(cfg config.Config, executor *resilience.Executor) ports.VectorStore {
	if cfg.VectorStore == config.VectorStoreQdrant {
		return qdrant.NewWithOptions(cfg.QdrantURL, cfg.QdrantCollection, qdrant.Options{ResilienceExecutor: executor})
	}
	return memory.New()
}

func newSummarizer(cfg config.Config, executor *resilience.Executor) ports.Summarizer {
	switch cfg.SummaryProvider {
	case config.ProviderOllama:
		client := ollama.NewWithOptions(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, ollama.Options{
			ResilienceExecutor: executor,
		})
		return ollama.NewSummarizer(client)
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil
		}
		client := openai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, openai.Options{ResilienceExecutor: executor})
		return openai.NewSummarizer(client, cfg.OpenAISummaryModel)
	default:
		return nil
	}
}
