package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSourceType(t *testing.T) {
	tests := []struct {
		raw    string
		want   SourceType
		weight int
		err    bool
	}{
		{raw: "wiki", want: SourceTypeWiki, weight: 3},
		{raw: " Article ", want: SourceTypeArticle, weight: 2},
		{raw: "REDDIT", want: SourceTypeReddit, weight: 1},
		{raw: "podcast", want: SourceTypeUnknown, weight: 0, err: true},
	}
	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseSourceType(tc.raw)
			if (err != nil) != tc.err || got != tc.want || got.Weight() != tc.weight {
				t.Fatalf("ParseSourceType(%q) = %v, %v", tc.raw, got, err)
			}
		})
	}
}

func TestSourceTypeJSON(t *testing.T) {
	data, err := json.Marshal(StaticSource{ID: "s", Type: SourceTypeArticle})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded StaticSource
	if err := json.Unmarshal(data, &decoded); err != nil || decoded.Type != SourceTypeArticle {
		t.Fatalf("round trip failed: %s %v", data, err)
	}
	if err := json.Unmarshal([]byte(`{"type":"blog"}`), &decoded); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestEmbeddingText(t *testing.T) {
	s := StaticSource{Title: "Bookshelf", Text: "Cooper signals Murph.", Tags: []string{"tesseract", "gravity"}}
	if got := s.EmbeddingText(); got != "Bookshelf. Cooper signals Murph. tesseract gravity" {
		t.Fatalf("EmbeddingText() = %q", got)
	}
}

func TestResolvedContextValid(t *testing.T) {
	tests := []struct {
		name string
		ctx  ResolvedContext
		want bool
	}{
		{name: "explicit", ctx: ResolvedContext{Item: "dune", Source: SourceExplicit, Confidence: ConfidenceHigh}, want: true},
		{name: "inferred medium", ctx: ResolvedContext{Item: "dune", Source: SourceInferred, Confidence: ConfidenceMedium}, want: true},
		{name: "inferred low", ctx: ResolvedContext{Item: "dune", Source: SourceInferred, Confidence: ConfidenceLow}},
		{name: "ambiguous", ctx: ResolvedContext{Source: SourceAmbiguous, Confidence: ConfidenceLow}},
		{name: "unknown", ctx: UnknownContext()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ctx.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTopCandidates(t *testing.T) {
	ctx := ResolvedContext{Candidates: []ContextCandidate{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	top := ctx.TopCandidates(2)
	if len(top) != 2 || top[1].ID != "b" {
		t.Fatalf("TopCandidates(2) = %+v", top)
	}
	top[0].ID = "changed"
	if ctx.Candidates[0].ID != "a" {
		t.Fatalf("TopCandidates must copy")
	}
	if all := ctx.TopCandidates(0); len(all) != 3 {
		t.Fatalf("TopCandidates(0) = %+v", all)
	}
}

func TestEvidenceBundleSpoilerGroup(t *testing.T) {
	bundle := EvidenceBundle{Groups: []EvidenceGroup{{ID: "source_plot", Label: "plot"}, {ID: "source_bookshelf", Label: "bookshelf"}}}
	if group, ok := bundle.SpoilerGroup(); !ok || group.Label != "bookshelf" {
		t.Fatalf("unexpected spoiler group %+v", group)
	}

	bundle.Groups = bundle.Groups[:1]
	if group, ok := bundle.SpoilerGroup(); !ok || group.Label != "plot" {
		t.Fatalf("expected top group as spoiler fallback, got %+v", group)
	}

	status := EvidenceBundle{Groups: []EvidenceGroup{{ID: RetrievalStatusCategoryID}}}
	if !status.IsRetrievalStatus() {
		t.Fatalf("expected status bundle")
	}
	if _, ok := status.SpoilerGroup(); ok {
		t.Fatalf("status bundle has no spoiler group")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(ErrTemporary, "op", nil) != nil {
		t.Fatalf("nil error must stay nil")
	}
	cause := errors.New("boom")
	err := WrapError(ErrTemporary, "qdrant.query", cause)
	if !IsKind(err, ErrTemporary) || !errors.Is(err, cause) {
		t.Fatalf("wrapped error lost its chain: %v", err)
	}
	if err.Error() != "qdrant.query: temporary failure: boom" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
