package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCategorySummary(t *testing.T) {
	raw := "Here you go:\n```json\n{\"summary\": \"Cobb lets go.\", \"points\": [\"The top wobbles.\", {\"text\": \"He walks away.\", \"source\": \"wiki\"}, {\"text\": \"Nolan keeps it open.\", \"source\": \"\"}, {\"text\": \"\"}, 42]}\n```"

	got, err := ParseCategorySummary(raw, "reddit")
	if err != nil {
		t.Fatalf("ParseCategorySummary() error = %v", err)
	}
	if got.Summary != "Cobb lets go." || len(got.Points) != 3 {
		t.Fatalf("unexpected summary %+v", got)
	}
	want := []AnswerPoint{
		{Text: "The top wobbles.", Source: "reddit"},
		{Text: "He walks away.", Source: "wiki"},
		{Text: "Nolan keeps it open.", Source: "reddit"},
	}
	for i := range want {
		if got.Points[i] != want[i] {
			t.Fatalf("point %d = %+v, want %+v", i, got.Points[i], want[i])
		}
	}
}

func TestParseCategorySummaryTruncates(t *testing.T) {
	long := strings.Repeat("x", MaxSummaryChars+50)
	point := strings.Repeat("y", MaxPointChars+10)
	raw := `{"summary":"` + long + `","points":["` + point + `","b","c","d","e","f"]}`

	got, err := ParseCategorySummary(raw, "wiki")
	if err != nil {
		t.Fatalf("ParseCategorySummary() error = %v", err)
	}
	if n := len([]rune(got.Summary)); n != MaxSummaryChars || !strings.HasSuffix(got.Summary, "...") {
		t.Fatalf("summary not truncated: %d runes", n)
	}
	if len([]rune(got.Points[0].Text)) != MaxPointChars {
		t.Fatalf("point not truncated: %q", got.Points[0].Text)
	}
	if len(got.Points) != MaxSummaryPoints {
		t.Fatalf("expected %d points, got %d", MaxSummaryPoints, len(got.Points))
	}
}

func TestParseCategorySummaryRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"empty":        "  ",
		"not json":     "the model rambled",
		"no summary":   `{"points":["a","b","c"]}`,
		"too few":      `{"summary":"s","points":["a","b"]}`,
		"blank points": `{"summary":"s","points":["a"," ",{"text":""}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCategorySummary(raw, "wiki"); !errors.Is(err, ErrMalformedSummary) {
				t.Fatalf("expected malformed summary, got %v", err)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	if got := TruncateText("short", 10); got != "short" {
		t.Fatalf("TruncateText() = %q", got)
	}
	if got := TruncateText("hello world again", 10); got != "hello w..." {
		t.Fatalf("TruncateText() = %q", got)
	}
	if got := TruncateText("héllo wörld", 8); got != "héllo..." {
		t.Fatalf("TruncateText() = %q", got)
	}
}
