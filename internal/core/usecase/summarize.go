package usecase

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/ports"
)

const (
	pointsPerChunk         = 2
	extractivePointChars   = 140
	extractiveSummaryChars = 240
)

var sentenceBoundaryPattern = regexp.MustCompile(`[.!?]+`)

// SummaryService summarizes evidence with an optional primary summarizer and
// falls back to an extractive summary whenever it is missing, fails or
// returns an unusable result. It never returns an error.
type SummaryService struct {
	primary ports.Summarizer
	logger  *slog.Logger
}

func NewSummaryService(primary ports.Summarizer, logger *slog.Logger) *SummaryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryService{primary: primary, logger: logger}
}

func (s *SummaryService) Summarize(
	ctx context.Context,
	category, question string,
	chunks []string,
) (domain.CategorySummary, error) {
	cleaned := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if trimmed := strings.TrimSpace(chunk); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 || s.primary == nil {
		return ExtractiveSummary(category, cleaned), nil
	}

	result, err := s.primary.Summarize(ctx, category, question, cleaned)
	if err != nil {
		s.logger.Warn("summary_fallback", "category", category, "error", err)
		return ExtractiveSummary(category, cleaned), nil
	}
	if strings.TrimSpace(result.Summary) == "" || len(result.Points) < domain.MinSummaryPoints {
		s.logger.Warn("summary_fallback", "category", category, "points", len(result.Points))
		return ExtractiveSummary(category, cleaned), nil
	}
	return result, nil
}

// ExtractiveSummary builds a summary from the chunks themselves: up to two
// sentences per chunk, at most five unique points, padded to three.
func ExtractiveSummary(category string, chunks []string) domain.CategorySummary {
	seen := make(map[string]struct{})
	texts := make([]string, 0, domain.MaxSummaryPoints)
	for _, chunk := range chunks {
		for _, sentence := range extractSentences(chunk) {
			point := domain.TruncateText(sentence, extractivePointChars)
			if _, dup := seen[point]; dup {
				continue
			}
			seen[point] = struct{}{}
			texts = append(texts, point)
		}
	}
	if len(texts) > domain.MaxSummaryPoints {
		texts = texts[:domain.MaxSummaryPoints]
	}

	for len(texts) < domain.MinSummaryPoints {
		switch len(texts) {
		case 0:
			texts = append(texts, "No strong evidence found for "+category+".")
		case 1:
			texts = append(texts, "Try asking with a more specific question.")
		default:
			texts = append(texts, "Use item-specific terms to improve retrieval.")
		}
	}

	points := make([]domain.AnswerPoint, 0, len(texts))
	for _, text := range texts {
		points = append(points, domain.AnswerPoint{Text: strings.TrimSpace(text), Source: strings.TrimSpace(category)})
	}
	return domain.CategorySummary{
		Summary: domain.TruncateText(strings.TrimSpace(strings.Join(chunks, " ")), extractiveSummaryChars),
		Points:  points,
	}
}

func extractSentences(text string) []string {
	parts := sentenceBoundaryPattern.Split(text, -1)
	out := make([]string, 0, pointsPerChunk)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == pointsPerChunk {
			break
		}
	}
	return out
}
