// Package prompt builds the model prompts shared by the LLM adapters.
package prompt

import (
	"fmt"
	"strings"
)

const maxChunkRunes = 4000

func Summary(category, question string, chunks []string) string {
	var b strings.Builder
	b.WriteString(`You are a retrieval summarizer for a pop-culture Q&A service.
Return only strict JSON with keys: summary (string), points (array of objects).
Rules:
- Use only the provided chunks. Do not add facts.
- Keep summary <= 2 sentences.
- Return 3 to 5 distinct bullet points in points.
- Each bullet must represent a different fact or angle from the chunks.
- Keep each bullet concise and evidence-grounded.
- Each bullet object must be: {"text": "...", "source": "..."}.
`)
	fmt.Fprintf(&b, "- Source must be one of: %s.\n", category)
	fmt.Fprintf(&b, "Category: %s\n", category)
	fmt.Fprintf(&b, "Question: %s\n", strings.TrimSpace(question))
	b.WriteString("Chunks:")
	for idx, chunk := range chunks {
		fmt.Fprintf(&b, "\n[%d] %s", idx+1, clip(strings.TrimSpace(chunk)))
	}
	return b.String()
}

func clip(text string) string {
	runes := []rune(text)
	if len(runes) <= maxChunkRunes {
		return text
	}
	return string(runes[:maxChunkRunes])
}
