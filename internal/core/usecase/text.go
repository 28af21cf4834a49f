package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "how": {}, "in": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "what": {}, "when": {}, "where": {}, "why": {}, "with": {},
}

// normalizeText folds compatibility forms, trims and lowercases.
func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(s)))
}

// tokenize returns lowercase [a-z0-9]+ runs longer than one character.
func tokenize(s string) []string {
	raw := splitAlphaNumLower(s)
	out := raw[:0]
	for _, token := range raw {
		if len(token) > 1 {
			out = append(out, token)
		}
	}
	return out
}

// queryKeywords is tokenize without stop words, keeping duplicates and order.
func queryKeywords(question string) []string {
	tokens := tokenize(normalizeText(question))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, stop := stopWords[token]; stop {
			continue
		}
		out = append(out, token)
	}
	return out
}

func toTokenSet(s string) map[string]struct{} {
	tokens := tokenize(s)
	out := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		out[token] = struct{}{}
	}
	return out
}

// jaccard compares token sets; two empty sets are identical.
func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 1
	}
	return float64(intersection) / float64(union)
}

func splitAlphaNumLower(s string) []string {
	if s == "" {
		return nil
	}

	tokens := make([]string, 0, 16)
	var b strings.Builder
	for _, r := range s {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
