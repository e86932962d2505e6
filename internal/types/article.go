//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Section is a single generated article section
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// WordCount returns the number of whitespace-separated words in the body.
func (s Section) WordCount() int {
	return len(strings.Fields(s.Body))
}

// Article is a complete generated article: the brief it was built from plus
// the generated sections. TotalWordCount always equals the sum of the
// sections' word counts.
type Article struct {
	ContentBrief
	Sections       []Section `json:"sections"`
	TotalWordCount int       `json:"total_word_count"`
}

// RecountWords recomputes TotalWordCount from the sections.
func (a *Article) RecountWords() {
	total := 0
	for _, s := range a.Sections {
		total += s.WordCount()
	}
	a.TotalWordCount = total
}
