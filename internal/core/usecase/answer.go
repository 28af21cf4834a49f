package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/ports"
)

const (
	spoilerCategory       = "spoilers"
	noSpoilerText         = "No spoiler excerpt available because retrieval did not return relevant chunks."
	maxQuestionRunes      = 2000
	summaryConcurrencyCap = 4
)

type AnswerUseCaseOptions struct {
	Limit    int
	Activity ports.DominantTopicReader
	Recorder ports.CaseRecorder
	Observer ports.RetrievalObserver
	Logger   *slog.Logger
	Now      func() time.Time
}

// AnswerUseCase runs the full flow: resolve, stabilize, retrieve, select and
// summarize each evidence category.
type AnswerUseCase struct {
	resolver   ports.TopicResolverService
	retriever  ports.SourceRetriever
	selector   ports.EvidenceSelector
	summarizer ports.Summarizer

	limit    int
	activity ports.DominantTopicReader
	recorder ports.CaseRecorder
	observer ports.RetrievalObserver
	logger   *slog.Logger
	now      func() time.Time
}

func NewAnswerUseCase(
	resolver ports.TopicResolverService,
	retriever ports.SourceRetriever,
	selector ports.EvidenceSelector,
	summarizer ports.Summarizer,
	opts AnswerUseCaseOptions,
) *AnswerUseCase {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultRetrievalLimit
	}
	return &AnswerUseCase{
		resolver:   resolver,
		retriever:  retriever,
		selector:   selector,
		summarizer: summarizer,
		limit:      limit,
		activity:   opts.Activity,
		recorder:   opts.Recorder,
		observer:   opts.Observer,
		logger:     logger,
		now:        now,
	}
}

// ResolveContext resolves and, when the user has recent activity, stabilizes
// the topic of a question.
func (uc *AnswerUseCase) ResolveContext(question, item, userID string) domain.ResolvedContext {
	resolved := uc.resolver.Resolve(question, item)
	if uc.activity != nil && strings.TrimSpace(userID) != "" {
		resolved = uc.resolver.Stabilize(resolved, uc.activity.DominantTopic(userID))
	}
	if uc.observer != nil {
		uc.observer.ObserveResolution(resolved.Source, resolved.Confidence)
	}
	return resolved
}

// Evidence resolves the topic, retrieves sources and groups them.
func (uc *AnswerUseCase) Evidence(
	ctx context.Context,
	req domain.AnswerRequest,
) (domain.ResolvedContext, domain.RetrievalResult, domain.EvidenceBundle, error) {
	question := strings.TrimSpace(req.Question)
	if len([]rune(question)) > maxQuestionRunes {
		return domain.ResolvedContext{}, domain.RetrievalResult{}, domain.EvidenceBundle{}, domain.WrapError(
			domain.ErrInvalidInput,
			"evidence",
			fmt.Errorf("question exceeds %d characters", maxQuestionRunes),
		)
	}

	resolved := uc.ResolveContext(question, req.Item, req.UserID)
	limit := req.Limit
	if limit <= 0 {
		limit = uc.limit
	}

	var retrieval domain.RetrievalResult
	if question == "" {
		retrieval = domain.RetrievalResult{Mode: domain.RetrievalModeLexical, Sources: []domain.StaticSource{}}
	} else {
		retrieval = uc.retriever.Retrieve(ctx, question, resolved.Item, limit)
	}
	bundle := uc.selector.Select(retrieval.Sources, question, resolved.Item)
	return resolved, retrieval, bundle, nil
}

func (uc *AnswerUseCase) Answer(ctx context.Context, req domain.AnswerRequest) (*domain.Answer, error) {
	resolved, retrieval, bundle, err := uc.Evidence(ctx, req)
	if err != nil {
		return nil, err
	}
	question := bundle.Question

	answer := &domain.Answer{
		Question: question,
		Context:  resolved,
		Mode:     retrieval.Mode,
	}

	if bundle.IsRetrievalStatus() {
		status := bundle.Groups[0]
		points := make([]domain.AnswerPoint, 0, len(status.Lines))
		for _, line := range status.Lines {
			points = append(points, domain.AnswerPoint{Text: line})
		}
		answer.Summary = noEvidenceSummary(bundle.Topic)
		answer.Categories = []domain.AnswerCategory{{
			ID:          status.ID,
			Title:       status.Title,
			Description: status.Description,
			Points:      points,
			Sources:     status.Sources,
		}}
		answer.Spoilers = noSpoilerText
		return answer, nil
	}

	categories := make([]domain.AnswerCategory, len(bundle.Groups))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(summaryConcurrencyCap)
	for i, group := range bundle.Groups {
		g.Go(func() error {
			summary, err := uc.summarizer.Summarize(gctx, group.Label, question, []string{group.Text})
			if err != nil {
				summary = ExtractiveSummary(group.Label, []string{group.Text})
			}
			categories[i] = domain.AnswerCategory{
				ID:          group.ID,
				Title:       group.Title,
				Description: group.Description,
				Summary:     summary.Summary,
				Points:      summary.Points,
				Sources:     group.Sources,
			}
			return nil
		})
	}
	var spoilers domain.CategorySummary
	if spoilerGroup, ok := bundle.SpoilerGroup(); ok {
		g.Go(func() error {
			summary, err := uc.summarizer.Summarize(gctx, spoilerCategory, question, []string{spoilerGroup.Text})
			if err != nil {
				summary = ExtractiveSummary(spoilerCategory, []string{spoilerGroup.Text})
			}
			spoilers = summary
			return nil
		})
	}
	_ = g.Wait()

	answer.Categories = categories
	answer.Summary = categories[0].Summary
	answer.Spoilers = spoilers.Summary

	uc.recordCase(ctx, req.UserID, question, resolved)
	return answer, nil
}

func (uc *AnswerUseCase) recordCase(ctx context.Context, userID, question string, resolved domain.ResolvedContext) {
	if uc.recorder == nil || strings.TrimSpace(userID) == "" || !resolved.Valid() {
		return
	}
	event := domain.CaseEvent{
		ID:         uuid.NewString(),
		UserID:     strings.TrimSpace(userID),
		Topic:      resolved.Item,
		Question:   question,
		OccurredAt: uc.now().UTC(),
	}
	if err := uc.recorder.RecordCase(ctx, event); err != nil {
		uc.logger.Warn("record_case_failed", "user_id", event.UserID, "topic", event.Topic, "error", err)
	}
}

func noEvidenceSummary(topic domain.TopicID) string {
	scope := ""
	if topic != "" {
		scope = ` for item "` + string(topic) + `"`
	}
	return "No matching static documents were found" + scope + ". Ask a more specific question to improve keyword retrieval."
}
