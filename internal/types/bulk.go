//nolint:revive // types is a standard Go package name pattern
package types

// Keyword processing outcome states within a bulk batch
const (
	BulkStatusSuccess = "success"
	BulkStatusFailed  = "failed"
)

// KeywordOutcome is the per-keyword result of a bulk batch: either a
// generated brief or a failure reason, never both.
type KeywordOutcome struct {
	Keyword string        `json:"keyword"`
	Status  string        `json:"status"`
	Brief   *ContentBrief `json:"content_brief,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// BulkResult aggregates a best-effort batch run. Results preserves the
// caller's keyword order regardless of completion order, and
// Succeeded+Failed always equals Total.
type BulkResult struct {
	Results   []KeywordOutcome `json:"results"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}
