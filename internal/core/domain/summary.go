package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const (
	MaxSummaryChars  = 280
	MaxPointChars    = 160
	MinSummaryPoints = 3
	MaxSummaryPoints = 5
)

var fencedJSONPattern = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")

type AnswerPoint struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// CategorySummary is what a summarizer returns for one evidence category.
type CategorySummary struct {
	Summary string        `json:"summary"`
	Points  []AnswerPoint `json:"points"`
}

// ParseCategorySummary decodes a summarizer reply, optionally wrapped in a
// fenced json block. Points may be plain strings or {text, source} objects.
// Replies without a summary or with fewer than three usable points are
// rejected with ErrMalformedSummary.
func ParseCategorySummary(raw, category string) (CategorySummary, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return CategorySummary{}, WrapError(ErrMalformedSummary, "parse summary", fmt.Errorf("empty reply"))
	}
	if match := fencedJSONPattern.FindStringSubmatch(candidate); match != nil {
		candidate = strings.TrimSpace(match[1])
	}

	var payload struct {
		Summary json.RawMessage   `json:"summary"`
		Points  []json.RawMessage `json:"points"`
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return CategorySummary{}, WrapError(ErrMalformedSummary, "parse summary", err)
	}

	var summary string
	if len(payload.Summary) > 0 {
		_ = json.Unmarshal(payload.Summary, &summary)
	}
	summary = TruncateText(strings.TrimSpace(summary), MaxSummaryChars)

	points := make([]AnswerPoint, 0, len(payload.Points))
	for _, rawPoint := range payload.Points {
		point, ok := decodePoint(rawPoint, category)
		if !ok {
			continue
		}
		points = append(points, point)
		if len(points) == MaxSummaryPoints {
			break
		}
	}

	if summary == "" || len(points) < MinSummaryPoints {
		return CategorySummary{}, WrapError(
			ErrMalformedSummary,
			"parse summary",
			fmt.Errorf("summary=%t points=%d", summary != "", len(points)),
		)
	}
	return CategorySummary{Summary: summary, Points: points}, nil
}

func decodePoint(raw json.RawMessage, category string) (AnswerPoint, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return AnswerPoint{}, false
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return AnswerPoint{}, false
		}
		text = TruncateText(strings.TrimSpace(text), MaxPointChars)
		if text == "" {
			return AnswerPoint{}, false
		}
		return AnswerPoint{Text: text, Source: strings.TrimSpace(category)}, true
	}

	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return AnswerPoint{}, false
	}
	text, _ := obj["text"].(string)
	text = strings.TrimSpace(text)
	if text == "" {
		return AnswerPoint{}, false
	}
	source := category
	if s, ok := obj["source"].(string); ok {
		source = strings.TrimSpace(s)
		if source == "" {
			source = category
		}
	}
	return AnswerPoint{
		Text:   TruncateText(text, MaxPointChars),
		Source: strings.TrimSpace(source),
	}, true
}

// TruncateText cuts value to maxLength runes, ending with "..." when cut.
func TruncateText(value string, maxLength int) string {
	runes := []rune(value)
	if len(runes) <= maxLength {
		return value
	}
	keep := maxLength - 3
	if keep < 0 {
		keep = 0
	}
	return strings.TrimRight(string(runes[:keep]), " \t\r\n") + "..."
}
