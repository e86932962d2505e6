// Package retrieval gathers raw signal for a keyword: ranked knowledge-source
// references, related-keyword expansion, content opportunities, and user
// questions. This is the "Advanced Retrieval" phase of the pipeline.
package retrieval

import "context"

// Document is one candidate result from the knowledge source.
type Document struct {
	Title   string
	URL     string
	Snippet string
}

// Source is the knowledge-source collaborator. Search returns ranked
// candidate documents for a query, an empty slice on a miss, and fails with
// transient errors only.
type Source interface {
	Search(ctx context.Context, query string, limit int) ([]Document, error)
}
