package model

// CommunityStats holds platform-wide totals over published prompts and all users.
type CommunityStats struct {
	TotalPrompts int `json:"totalPrompts"`
	TotalVotes   int `json:"totalVotes"`
	TotalViews   int `json:"totalViews"`
	TotalCopies  int `json:"totalCopies"`
	TotalUsers   int `json:"totalUsers"`
}

// EngagementStats holds ratios derived from the community totals. All ratios
// are zero when the platform is empty, never NaN.
type EngagementStats struct {
	AvgVotesPerPrompt  float64 `json:"avgVotesPerPrompt"`
	AvgViewsPerPrompt  float64 `json:"avgViewsPerPrompt"`
	AvgCopiesPerPrompt float64 `json:"avgCopiesPerPrompt"`
	CopyToViewRatio    float64 `json:"copyToViewRatio"`
	VoteToViewRatio    float64 `json:"voteToViewRatio"`
}

// StatsResponse is the API response for community stats. Engagement is only
// present when detailed stats were requested.
type StatsResponse struct {
	Community  CommunityStats   `json:"community"`
	Engagement *EngagementStats `json:"engagement,omitempty"`
}
