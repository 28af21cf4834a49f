package usecase

import "github.com/kirillkom/nerdvana-retrieval/internal/core/domain"

func testTopics() []domain.AliasEntry {
	return []domain.AliasEntry{
		{ID: "inception", Label: "Inception", Type: "Movie", Aliases: []string{"inception", "cobb", "spinning top", "dream", "totem"}},
		{ID: "interstellar", Label: "Interstellar", Type: "Movie", Aliases: []string{"interstellar", "bookshelf", "cooper", "wormhole", "tesseract"}},
		{ID: "jujutsu-kaisen", Label: "Jujutsu Kaisen", Type: "Anime", Aliases: []string{"jjk", "jujutsu", "gojo", "cursed binding", "sukuna"}},
		{ID: "attack-on-titan", Label: "Attack on Titan", Type: "Anime", Aliases: []string{"attack titan", "attack on titan", "aot", "eren", "shingeki", "titan"}},
	}
}

func testCorpus() []domain.StaticSource {
	return []domain.StaticSource{
		{
			ID: "reddit_inception_ending_1", TopicID: "inception", Type: domain.SourceTypeReddit,
			Title: "Inception ending and the spinning top debate",
			URL:   "https://reddit.com/r/movies/comments/inception-ending-debate",
			Text:  "Many viewers focus on the spinning top wobble, but Cobb walking away from the totem is treated as emotional closure over literal certainty.",
			Tags:  []string{"inception", "ending", "spinning top", "cobb", "totem"},
		},
		{
			ID: "wiki_inception_1", TopicID: "inception", Type: domain.SourceTypeWiki,
			Title: "Inception plot and themes summary",
			URL:   "https://example-wiki.org/inception",
			Text:  "Inception follows Dom Cobb through layered dream infiltration. Themes include guilt, memory, and uncertainty between reality and illusion.",
			Tags:  []string{"inception", "plot", "themes", "dream", "reality"},
		},
		{
			ID: "article_inception_ending_1", TopicID: "inception", Type: domain.SourceTypeArticle,
			Title: "Why Inception ends on ambiguity",
			URL:   "https://filmjournal.example.com/inception-ambiguity",
			Text:  "Critical readings describe the final cut as intentional ambiguity, prioritizing character resolution rather than proving objective reality.",
			Tags:  []string{"inception", "ending", "ambiguity", "analysis"},
		},
		{
			ID: "reddit_interstellar_bookshelf_1", TopicID: "interstellar", Type: domain.SourceTypeReddit,
			Title: "Bookshelf scene explained by fans",
			URL:   "https://reddit.com/r/interstellar/comments/bookshelf-scene-explained",
			Text:  "The bookshelf scene is often explained as Cooper communicating through gravity from a higher-dimensional tesseract to Murph.",
			Tags:  []string{"interstellar", "bookshelf", "cooper", "murph", "tesseract"},
		},
		{
			ID: "wiki_interstellar_1", TopicID: "interstellar", Type: domain.SourceTypeWiki,
			Title: "Interstellar story notes and scientific concepts",
			URL:   "https://example-wiki.org/interstellar",
			Text:  "Interstellar combines survival stakes with relativity and causal loops. The mission to find habitable worlds intersects with family sacrifice.",
			Tags:  []string{"interstellar", "plot", "wormhole", "time dilation", "causal loop"},
		},
		{
			ID: "article_interstellar_time_1", TopicID: "interstellar", Type: domain.SourceTypeArticle,
			Title: "Interstellar, causality, and emotional logic",
			URL:   "https://cinema-notes.example.com/interstellar-causality",
			Text:  "Analyses frame the film as a closed causal structure where scientific communication and emotional motivation coexist.",
			Tags:  []string{"interstellar", "bookshelf", "causality", "analysis"},
		},
	}
}

func testFallback() map[domain.TopicID][]domain.EvidenceDocument {
	return map[domain.TopicID][]domain.EvidenceDocument{
		"inception": {
			{Label: "plot", Text: "Inception follows Dom Cobb, a thief who enters dreams to steal ideas."},
			{Label: "ending", Text: "The ending features Cobb returning home and seeing his children. The spinning top keeps wobbling before the film cuts to black."},
			{Label: "themes", Text: "The key themes include guilt, reality versus illusion, grief, and emotional closure."},
		},
	}
}

func sourceIDs(sources []domain.StaticSource) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		out = append(out, s.ID)
	}
	return out
}
