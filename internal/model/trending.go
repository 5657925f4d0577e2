package model

import "time"

// Timeframe selects the decay window for trending queries.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAllTime Timeframe = "all-time"
)

// ParseTimeframe maps a query value to a Timeframe. Empty defaults to daily.
func ParseTimeframe(s string) (Timeframe, bool) {
	switch s {
	case "", "daily":
		return TimeframeDaily, true
	case "weekly":
		return TimeframeWeekly, true
	case "monthly":
		return TimeframeMonthly, true
	case "all-time", "all":
		return TimeframeAllTime, true
	}
	return "", false
}

// Window returns the decay window for the timeframe, or 0 for all-time
// (decay disabled).
func (t Timeframe) Window() time.Duration {
	switch t {
	case TimeframeDaily:
		return 24 * time.Hour
	case TimeframeWeekly:
		return 7 * 24 * time.Hour
	case TimeframeMonthly:
		return 30 * 24 * time.Hour
	}
	return 0
}

// TrendingEntry is one ranked prompt. Computed fresh per query, never persisted.
type TrendingEntry struct {
	PromptID    int64      `json:"promptId"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	PromptType  PromptType `json:"promptType"`
	Score       float64    `json:"score"`
	Rank        int        `json:"rank"`
	UpvoteCount int        `json:"upvoteCount"`
	ViewCount   int        `json:"viewCount"`
	CopyCount   int        `json:"copyCount"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TrendingResponse is the API response for trending queries, echoing the
// query metadata alongside the ranked entries.
type TrendingResponse struct {
	Entries   []TrendingEntry `json:"entries"`
	Timeframe Timeframe       `json:"timeframe"`
	Limit     int             `json:"limit"`
	Type      string          `json:"type,omitempty"`
	Category  *int64          `json:"category,omitempty"`
}
