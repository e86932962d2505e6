package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/seo-assistant/internal/cache"
	"github.com/jonathan/seo-assistant/internal/types"
)

// Relevance scoring weights. Title overlap dominates, snippet overlap
// refines, and an exact keyword match in the title earns a small bonus.
// The combined score is capped at 1.0.
const (
	titleWeight     = 0.6
	snippetWeight   = 0.3
	exactMatchBonus = 0.1
)

// Options bounds how much signal a retrieval gathers.
type Options struct {
	SearchLimit        int // documents requested from the source
	MaxSources         int // knowledge sources kept after scoring
	MaxRelatedKeywords int
	MaxOpportunities   int
	MaxQuestions       int

	// Finalize, when set, runs on each freshly built context before it is
	// cached. Once a context is in the cache it is shared across goroutines
	// and must not be written again.
	Finalize func(*types.RetrievalContext)
}

// DefaultOptions returns the standard retrieval bounds.
func DefaultOptions() Options {
	return Options{
		SearchLimit:        8,
		MaxSources:         10,
		MaxRelatedKeywords: 15,
		MaxOpportunities:   8,
		MaxQuestions:       8,
	}
}

func (o Options) withDefaults() Options {
	defaults := DefaultOptions()
	if o.SearchLimit <= 0 {
		o.SearchLimit = defaults.SearchLimit
	}
	if o.MaxSources <= 0 {
		o.MaxSources = defaults.MaxSources
	}
	if o.MaxRelatedKeywords <= 0 {
		o.MaxRelatedKeywords = defaults.MaxRelatedKeywords
	}
	if o.MaxOpportunities <= 0 {
		o.MaxOpportunities = defaults.MaxOpportunities
	}
	if o.MaxQuestions <= 0 {
		o.MaxQuestions = defaults.MaxQuestions
	}
	return o
}

// Retriever builds retrieval contexts for keywords. Results are cached by
// normalized keyword; the knowledge source is only consulted on a miss.
type Retriever struct {
	source Source
	cache  *cache.ContextCache
	opts   Options
}

// New creates a retriever over the given knowledge source and cache.
// The cache may be nil, in which case every call hits the source.
func New(source Source, contextCache *cache.ContextCache, opts Options) *Retriever {
	return &Retriever{
		source: source,
		cache:  contextCache,
		opts:   opts.withDefaults(),
	}
}

// Retrieve assembles the retrieval context for a keyword. A source failure
// is not fatal: retrieval degrades to an empty knowledge-source list and the
// keyword-derived signal (intent, opportunities, questions) still populates.
func (r *Retriever) Retrieve(ctx context.Context, keyword, goal string) (*types.RetrievalContext, error) {
	normalized := types.NormalizeKeyword(keyword)
	if normalized == "" {
		return nil, fmt.Errorf("keyword must not be empty")
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(normalized); ok {
			return cached, nil
		}
	}

	var docs []Document
	if r.source != nil {
		found, err := r.source.Search(ctx, normalized, r.opts.SearchLimit)
		if err == nil {
			docs = found
		}
		// On error docs stays empty and retrieval degrades.
	}

	sources := r.scoreSources(normalized, docs)
	related := r.relatedKeywords(normalized, docs)
	intent, explanation := classifyIntent(normalized)

	result := &types.RetrievalContext{
		Keyword:              normalized,
		Goal:                 goal,
		SearchIntent:         intent,
		IntentExplanation:    explanation,
		RelatedKeywords:      related,
		ContentOpportunities: r.opportunities(normalized, related),
		UserQuestions:        r.questions(normalized, related),
		KnowledgeSources:     sources,
		CreatedAt:            time.Now().UTC(),
	}

	if r.opts.Finalize != nil {
		r.opts.Finalize(result)
	}
	if r.cache != nil {
		r.cache.Put(normalized, result)
	}
	return result, nil
}

// scoreSources keeps documents that share at least one token with the
// keyword, scores them, and returns the top MaxSources sorted by relevance.
func (r *Retriever) scoreSources(keyword string, docs []Document) []types.KnowledgeSource {
	sources := make([]types.KnowledgeSource, 0, len(docs))
	for _, doc := range docs {
		if sharedTokenCount(keyword, doc.Title+" "+doc.Snippet) == 0 {
			continue
		}
		sources = append(sources, types.KnowledgeSource{
			Title:          doc.Title,
			URL:            doc.URL,
			Snippet:        doc.Snippet,
			RelevanceScore: relevanceScore(keyword, doc),
		})
	}

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].RelevanceScore > sources[j].RelevanceScore
	})
	if len(sources) > r.opts.MaxSources {
		sources = sources[:r.opts.MaxSources]
	}
	return sources
}

func relevanceScore(keyword string, doc Document) float64 {
	score := titleWeight*jaccard(keyword, doc.Title) + snippetWeight*jaccard(keyword, doc.Snippet)
	if containsPhrase(doc.Title, keyword) {
		score += exactMatchBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// containsPhrase reports whether the normalized text contains the phrase on
// word boundaries.
func containsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	padded := " " + types.NormalizeKeyword(text) + " "
	return strings.Contains(padded, " "+phrase+" ")
}

// relatedKeywords mines expansion terms from document titles and snippets.
func (r *Retriever) relatedKeywords(keyword string, docs []Document) []string {
	seen := make(map[string]bool)
	var related []string
	for _, doc := range docs {
		for _, term := range contentTerms(doc.Title+" "+doc.Snippet, keyword) {
			if seen[term] {
				continue
			}
			seen[term] = true
			related = append(related, term)
			if len(related) >= r.opts.MaxRelatedKeywords {
				return related
			}
		}
	}
	return related
}

// opportunities proposes content angles for the keyword, seeded by proven
// templates and expanded with mined related terms.
func (r *Retriever) opportunities(keyword string, related []string) []string {
	opportunities := []string{
		fmt.Sprintf("Complete guide to %s", keyword),
		fmt.Sprintf("%s for beginners", keyword),
		fmt.Sprintf("Common %s mistakes to avoid", keyword),
		fmt.Sprintf("%s best practices", keyword),
	}
	for _, term := range related {
		opportunities = append(opportunities, fmt.Sprintf("%s and %s", keyword, term))
	}
	if len(opportunities) > r.opts.MaxOpportunities {
		opportunities = opportunities[:r.opts.MaxOpportunities]
	}
	return opportunities
}

// questions proposes user questions the content should answer.
func (r *Retriever) questions(keyword string, related []string) []string {
	questions := []string{
		fmt.Sprintf("What is %s?", keyword),
		fmt.Sprintf("How does %s work?", keyword),
		fmt.Sprintf("Why is %s important?", keyword),
		fmt.Sprintf("How do I get started with %s?", keyword),
	}
	for _, term := range related {
		questions = append(questions, fmt.Sprintf("How does %s relate to %s?", term, keyword))
	}
	if len(questions) > r.opts.MaxQuestions {
		questions = questions[:r.opts.MaxQuestions]
	}
	return questions
}
