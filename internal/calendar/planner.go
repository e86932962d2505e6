// Package calendar turns a keyword list into a prioritized publishing
// schedule. Keywords are briefed in bulk, ranked, and spread evenly across
// the requested timeframe with the highest priorities in the earliest weeks.
package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jonathan/seo-assistant/internal/bulk"
	"github.com/jonathan/seo-assistant/internal/pipeline"
	"github.com/jonathan/seo-assistant/internal/types"
)

// Planning limits.
const (
	MaxKeywords = 100
	MinWeeks    = 1
	MaxWeeks    = 52
)

// Priority weights. Context quality dominates; the opportunity count
// rewards keywords with more distinct angles to cover. Saturation target
// matches the retrieval opportunity cap.
const (
	qualityWeight       = 0.7
	opportunityWeight   = 0.3
	opportunitiesTarget = 8
)

// Planner schedules keyword content over a number of weeks.
type Planner struct {
	pipeline    *pipeline.Pipeline
	coordinator *bulk.Coordinator
}

// NewPlanner creates a planner that briefs keywords through the coordinator.
func NewPlanner(p *pipeline.Pipeline, coordinator *bulk.Coordinator) *Planner {
	return &Planner{pipeline: p, coordinator: coordinator}
}

// Plan briefs every keyword and distributes the successful ones across the
// timeframe, highest priority first. Failed keywords are reported as
// skipped, never silently dropped.
func (pl *Planner) Plan(ctx context.Context, keywords []string, weeks int, goal string) (*types.Calendar, error) {
	if len(keywords) == 0 {
		return nil, &pipeline.ValidationError{Field: "keywords", Message: "must not be empty"}
	}
	if len(keywords) > MaxKeywords {
		return nil, &pipeline.ValidationError{
			Field:   "keywords",
			Message: fmt.Sprintf("list of %d exceeds the maximum of %d", len(keywords), MaxKeywords),
		}
	}
	if weeks < MinWeeks || weeks > MaxWeeks {
		return nil, &pipeline.ValidationError{
			Field:   "timeframe_weeks",
			Message: fmt.Sprintf("must be between %d and %d", MinWeeks, MaxWeeks),
		}
	}

	outcomes, err := pl.briefAll(ctx, keywords, goal)
	if err != nil {
		return nil, err
	}

	calendar := &types.Calendar{
		TimeframeWeeks: weeks,
		CreatedAt:      time.Now().UTC(),
	}

	var items []types.CalendarItem
	for _, outcome := range outcomes {
		if outcome.Status != types.BulkStatusSuccess {
			calendar.Skipped = append(calendar.Skipped, types.SkippedKeyword{
				Keyword: outcome.Keyword,
				Reason:  outcome.Error,
			})
			continue
		}
		items = append(items, types.CalendarItem{
			Keyword:       outcome.Keyword,
			Title:         outcome.Brief.Title,
			ContentType:   outcome.Brief.ContentType,
			PriorityScore: pl.priority(ctx, outcome.Keyword, goal),
			BriefSummary:  outcome.Brief.MetaDescription,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})
	scheduleWeeks(items, weeks)

	calendar.Items = items
	return calendar, nil
}

// briefAll runs the keywords through the bulk coordinator, chunked to its
// batch limit so calendars may exceed a single batch.
func (pl *Planner) briefAll(ctx context.Context, keywords []string, goal string) ([]types.KeywordOutcome, error) {
	outcomes := make([]types.KeywordOutcome, 0, len(keywords))
	for start := 0; start < len(keywords); start += bulk.MaxKeywords {
		end := start + bulk.MaxKeywords
		if end > len(keywords) {
			end = len(keywords)
		}
		result, err := pl.coordinator.Process(ctx, keywords[start:end], goal)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, result.Results...)
	}
	return outcomes, nil
}

// priority scores a keyword from its designed context. The context was
// cached while briefing, so this does not consult the knowledge source.
func (pl *Planner) priority(ctx context.Context, keyword, goal string) float64 {
	rc, err := pl.pipeline.AnalyzeKeyword(ctx, keyword, goal)
	if err != nil {
		return 0
	}
	opportunities := float64(len(rc.ContentOpportunities)) / opportunitiesTarget
	if opportunities > 1.0 {
		opportunities = 1.0
	}
	return qualityWeight*rc.QualityScore + opportunityWeight*opportunities
}

// scheduleWeeks fills weeks front to back with at most ceil(n/weeks) items
// each, so the load stays even and early weeks get the top priorities.
func scheduleWeeks(items []types.CalendarItem, weeks int) {
	if len(items) == 0 {
		return
	}
	perWeek := (len(items) + weeks - 1) / weeks
	for i := range items {
		items[i].ScheduledWeek = i/perWeek + 1
	}
}
