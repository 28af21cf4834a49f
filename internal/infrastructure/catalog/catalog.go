// Package catalog loads the alias table, the static source corpus and the
// per-topic fallback fragments from YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/kirillkom/nerdvana-retrieval/internal/core/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

var validate = validator.New()

type Catalog struct {
	Topics   []domain.AliasEntry
	Sources  []domain.StaticSource
	Fallback map[domain.TopicID][]domain.EvidenceDocument
}

// Topic looks up an alias entry by id.
func (c *Catalog) Topic(id domain.TopicID) (domain.AliasEntry, bool) {
	for _, topic := range c.Topics {
		if topic.ID == id {
			return topic, true
		}
	}
	return domain.AliasEntry{}, false
}

type catalogFile struct {
	Topics   []topicRecord    `yaml:"topics" validate:"required,min=1,dive"`
	Sources  []sourceRecord   `yaml:"sources" validate:"dive"`
	Fallback []fallbackRecord `yaml:"fallback" validate:"dive"`
}

type topicRecord struct {
	ID      string   `yaml:"id" validate:"required"`
	Label   string   `yaml:"label" validate:"required"`
	Type    string   `yaml:"type" validate:"required"`
	Aliases []string `yaml:"aliases" validate:"dive,required"`
}

type sourceRecord struct {
	ID    string   `yaml:"id" validate:"required"`
	Topic string   `yaml:"topic" validate:"required"`
	Type  string   `yaml:"type" validate:"required,oneof=wiki article reddit"`
	Title string   `yaml:"title" validate:"required"`
	URL   string   `yaml:"url" validate:"required,url"`
	Text  string   `yaml:"text" validate:"required"`
	Tags  []string `yaml:"tags" validate:"dive,required"`
}

type fallbackRecord struct {
	Topic     string           `yaml:"topic" validate:"required"`
	Documents []documentRecord `yaml:"documents" validate:"required,min=1,dive"`
}

type documentRecord struct {
	Label string `yaml:"label" validate:"required"`
	Text  string `yaml:"text" validate:"required"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Load reads a catalog file; an empty path selects the embedded catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.WrapError(domain.ErrCatalogInvalid, "decode catalog", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, domain.WrapError(domain.ErrCatalogInvalid, "validate catalog", err)
	}

	out := &Catalog{
		Topics:   make([]domain.AliasEntry, 0, len(file.Topics)),
		Sources:  make([]domain.StaticSource, 0, len(file.Sources)),
		Fallback: make(map[domain.TopicID][]domain.EvidenceDocument, len(file.Fallback)),
	}

	seenTopics := make(map[domain.TopicID]struct{}, len(file.Topics))
	for _, t := range file.Topics {
		id := domain.TopicID(strings.ToLower(strings.TrimSpace(t.ID)))
		if _, dup := seenTopics[id]; dup {
			return nil, domain.WrapError(domain.ErrCatalogInvalid, "validate catalog", fmt.Errorf("duplicate topic %q", id))
		}
		seenTopics[id] = struct{}{}
		out.Topics = append(out.Topics, domain.AliasEntry{
			ID:      id,
			Label:   strings.TrimSpace(t.Label),
			Type:    strings.TrimSpace(t.Type),
			Aliases: append([]string(nil), t.Aliases...),
		})
	}

	seenSources := make(map[string]struct{}, len(file.Sources))
	for _, s := range file.Sources {
		id := strings.TrimSpace(s.ID)
		if _, dup := seenSources[id]; dup {
			return nil, domain.WrapError(domain.ErrCatalogInvalid, "validate catalog", fmt.Errorf("duplicate source %q", id))
		}
		seenSources[id] = struct{}{}

		sourceType, err := domain.ParseSourceType(s.Type)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCatalogInvalid, "validate catalog", fmt.Errorf("source %q: %w", id, err))
		}
		out.Sources = append(out.Sources, domain.StaticSource{
			ID:      id,
			TopicID: domain.TopicID(strings.ToLower(strings.TrimSpace(s.Topic))),
			Type:    sourceType,
			Title:   strings.TrimSpace(s.Title),
			URL:     strings.TrimSpace(s.URL),
			Text:    strings.TrimSpace(s.Text),
			Tags:    append([]string(nil), s.Tags...),
		})
	}

	for _, f := range file.Fallback {
		topic := domain.TopicID(strings.ToLower(strings.TrimSpace(f.Topic)))
		for _, d := range f.Documents {
			out.Fallback[topic] = append(out.Fallback[topic], domain.EvidenceDocument{
				Label: strings.TrimSpace(d.Label),
				Text:  strings.TrimSpace(d.Text),
			})
		}
	}

	return out, nil
}
