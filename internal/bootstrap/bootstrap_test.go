package bootstrap

import (
	"context"
	"testing"

	"github.com/kirillkom/nerdvana-retrieval/internal/config"
	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

func TestNewWiresLexicalOnlyApp(t *testing.T) {
	cfg := config.Config{
		RetrievalLimit:  6,
		EmbedProvider:   config.ProviderNone,
		SummaryProvider: config.ProviderExtractive,
		VectorStore:     config.VectorStoreMemory,
		ActivityWindow:  5,
	}

	app, err := New(context.Background(), cfg, "test", nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer app.Close()

	if _, ok := app.Topic("inception"); !ok {
		t.Fatalf("expected embedded catalog to define inception")
	}

	answer, err := app.AnswerUC.Answer(context.Background(), domain.AnswerRequest{
		Question: "Why does Cobb spin the totem?",
		UserID:   "u-1",
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer.Mode != domain.RetrievalModeLexical {
		t.Fatalf("expected lexical mode without an embedder, got %s", answer.Mode)
	}
	if answer.Context.Item != "inception" {
		t.Fatalf("expected inception context, got %+v", answer.Context)
	}
	if len(answer.Categories) == 0 || answer.Summary == "" {
		t.Fatalf("expected summarized categories, got %+v", answer)
	}
	if got := app.Activity.DominantTopic("u-1"); got != "inception" {
		t.Fatalf("expected case to be recorded for u-1, got %q", got)
	}
}

func TestNewFailsOnMissingCatalog(t *testing.T) {
	_, err := New(context.Background(), config.Config{CatalogPath: "/nonexistent/catalog.yaml"}, "test", nil)
	if err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}
