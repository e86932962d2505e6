package retrieval

import "strings"

// minTermLength filters out short function words when mining related terms.
const minTermLength = 4

var stopwords = map[string]bool{
	"this": true, "that": true, "with": true, "from": true, "have": true,
	"will": true, "your": true, "what": true, "when": true, "where": true,
	"which": true, "their": true, "there": true, "about": true, "would": true,
	"could": true, "should": true, "been": true, "being": true, "into": true,
	"also": true, "other": true, "more": true, "most": true, "some": true,
	"such": true, "than": true, "then": true, "them": true, "they": true,
	"were": true, "these": true, "those": true, "only": true, "over": true,
	"very": true, "used": true, "uses": true, "using": true, "many": true,
	"each": true, "between": true, "through": true, "while": true, "after": true,
}

func tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range tokenize(text) {
		set[token] = true
	}
	return set
}

// jaccard returns the token-set Jaccard similarity of two strings, in [0, 1].
func jaccard(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	shared := 0
	for token := range setA {
		if setB[token] {
			shared++
		}
	}
	union := len(setA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

// sharedTokenCount counts tokens the two strings have in common.
func sharedTokenCount(a, b string) int {
	setA, setB := tokenSet(a), tokenSet(b)
	shared := 0
	for token := range setA {
		if setB[token] {
			shared++
		}
	}
	return shared
}

// contentTerms extracts candidate expansion terms from free text: lowercased
// tokens of at least minTermLength characters that are neither stopwords nor
// tokens of the keyword itself, deduplicated in first-seen order.
func contentTerms(text, keyword string) []string {
	keywordTokens := tokenSet(keyword)
	seen := make(map[string]bool)
	var terms []string
	for _, token := range tokenize(text) {
		if len(token) < minTermLength || stopwords[token] || keywordTokens[token] || seen[token] {
			continue
		}
		seen[token] = true
		terms = append(terms, token)
	}
	return terms
}
