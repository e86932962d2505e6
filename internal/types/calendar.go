//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// CalendarItem schedules one keyword into a publishing week.
// Higher priority scores are scheduled into earlier weeks.
type CalendarItem struct {
	Keyword       string      `json:"keyword"`
	Title         string      `json:"title"`
	ContentType   ContentType `json:"content_type"`
	PriorityScore float64     `json:"priority_score"`
	ScheduledWeek int         `json:"scheduled_week"` // 1-based, <= TimeframeWeeks
	BriefSummary  string      `json:"brief_summary,omitempty"`
}

// SkippedKeyword records a keyword excluded from the calendar because its
// processing failed, so callers are not silently missing coverage.
type SkippedKeyword struct {
	Keyword string `json:"keyword"`
	Reason  string `json:"reason"`
}

// Calendar is a time-boxed, priority-ordered publishing schedule.
type Calendar struct {
	TimeframeWeeks int              `json:"timeframe_weeks"`
	Items          []CalendarItem   `json:"items"`
	Skipped        []SkippedKeyword `json:"skipped,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Week returns the items scheduled for a given week, preserving priority order.
func (c *Calendar) Week(week int) []CalendarItem {
	var items []CalendarItem
	for _, item := range c.Items {
		if item.ScheduledWeek == week {
			items = append(items, item)
		}
	}
	return items
}
