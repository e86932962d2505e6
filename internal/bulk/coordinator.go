// Package bulk generates content briefs for batches of keywords with
// bounded concurrency. Keyword failures are isolated: one bad keyword never
// fails the batch.
package bulk

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/types"
)

// Batch limits.
const (
	MaxKeywords        = 50
	DefaultConcurrency = 5
)

// Coordinator fans keyword briefs out over the pipeline.
type Coordinator struct {
	pipeline    *pipeline.Pipeline
	concurrency int
}

// NewCoordinator creates a coordinator with the given concurrency limit.
// Non-positive limits fall back to the default.
func NewCoordinator(p *pipeline.Pipeline, concurrency int) *Coordinator {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Coordinator{pipeline: p, concurrency: concurrency}
}

// Process generates a brief per keyword and returns outcomes in input order.
// The batch is validated up front; no generation starts for an invalid batch.
func (c *Coordinator) Process(ctx context.Context, keywords []string, goal string) (*types.BulkResult, error) {
	if len(keywords) == 0 {
		return nil, &pipeline.ValidationError{Field: "keywords", Message: "must not be empty"}
	}
	if len(keywords) > MaxKeywords {
		return nil, &pipeline.ValidationError{
			Field:   "keywords",
			Message: fmt.Sprintf("batch of %d exceeds the maximum of %d", len(keywords), MaxKeywords),
		}
	}

	results := make([]types.KeywordOutcome, len(keywords))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, keyword := range keywords {
		g.Go(func() error {
			brief, err := c.pipeline.GenerateBrief(ctx, keyword, goal)
			if err != nil {
				results[i] = types.KeywordOutcome{
					Keyword: keyword,
					Status:  types.BulkStatusFailed,
					Error:   err.Error(),
				}
				return nil
			}
			results[i] = types.KeywordOutcome{
				Keyword: keyword,
				Status:  types.BulkStatusSuccess,
				Brief:   brief,
			}
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	result := &types.BulkResult{
		Results: results,
		Total:   len(keywords),
	}
	for _, outcome := range results {
		if outcome.Status == types.BulkStatusSuccess {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}
	return result, nil
}
