package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/nermalcat69/promptu/internal/model"
	"github.com/nermalcat69/promptu/internal/repository"
)

// StatsService produces platform-wide totals and derived engagement ratios
// from the same counters the voting core maintains. Read-only.
type StatsService struct {
	repo  *repository.StatsRepo
	cache *CacheService
}

func NewStatsService(repo *repository.StatsRepo, cache *CacheService) *StatsService {
	return &StatsService{repo: repo, cache: cache}
}

// DeriveEngagement computes ratios from community totals. Empty platforms
// yield all-zero ratios, never a division error or NaN.
func DeriveEngagement(c *model.CommunityStats) *model.EngagementStats {
	return &model.EngagementStats{
		AvgVotesPerPrompt:  safeRatio(c.TotalVotes, c.TotalPrompts),
		AvgViewsPerPrompt:  safeRatio(c.TotalViews, c.TotalPrompts),
		AvgCopiesPerPrompt: safeRatio(c.TotalCopies, c.TotalPrompts),
		CopyToViewRatio:    safeRatio(c.TotalCopies, c.TotalViews),
		VoteToViewRatio:    safeRatio(c.TotalVotes, c.TotalViews),
	}
}

func safeRatio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// Stats returns the community totals, with engagement ratios when detailed
// is set. Recomputed from current counters on every cache miss.
func (s *StatsService) Stats(ctx context.Context, detailed bool) (*model.StatsResponse, error) {
	cacheKey := StatsKey(detailed)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("cache: stats get error: %v", err)
		} else if cached != nil {
			var resp model.StatsResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	community, err := s.repo.GetCommunityStats(ctx)
	if err != nil {
		return nil, err
	}

	resp := &model.StatsResponse{Community: *community}
	if detailed {
		resp.Engagement = DeriveEngagement(community)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, StatsCacheTTL); err != nil {
			log.Printf("cache: stats set error: %v", err)
		}
	}

	return resp, nil
}
