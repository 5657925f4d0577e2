package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/nermalcat69/promptu/internal/model"
	"github.com/nermalcat69/promptu/internal/repository"
)

// Signal weights for the trending score. An upvote is the strongest
// engagement signal, a copy is stronger than a view.
const (
	upvoteWeight = 3.0
	copyWeight   = 1.5
	viewWeight   = 0.25
)

// Decay returns the linear decay multiplier for a prompt of the given age:
// 1 at age zero, falling to 0 at the window boundary, 0 beyond it. A zero
// window disables decay (the all-time timeframe) and always returns 1.
// Age is measured from the prompt's creation time, not its last engagement.
func Decay(age, window time.Duration) float64 {
	if window <= 0 {
		return 1
	}
	if age < 0 {
		age = 0
	}
	if age >= window {
		return 0
	}
	return 1 - float64(age)/float64(window)
}

// RawScore is the decay-free weighted engagement sum.
func RawScore(upvotes, views, copies int) float64 {
	return upvoteWeight*float64(upvotes) + copyWeight*float64(copies) + viewWeight*float64(views)
}

// Score evaluates one prompt's trending score at instant now.
func Score(p *model.Prompt, now time.Time, timeframe model.Timeframe) float64 {
	return Decay(now.Sub(p.CreatedAt), timeframe.Window()) * RawScore(p.UpvoteCount, p.ViewCount, p.CopyCount)
}

// Rank scores the candidate set and returns the top-limit entries in
// descending score order. Ties break by createdAt descending (newer wins),
// then by ID descending, so the ordering is fully deterministic.
func Rank(prompts []model.Prompt, now time.Time, timeframe model.Timeframe, limit int) []model.TrendingEntry {
	entries := make([]model.TrendingEntry, 0, len(prompts))
	for i := range prompts {
		p := &prompts[i]
		entries = append(entries, model.TrendingEntry{
			PromptID:    p.ID,
			Slug:        p.Slug,
			Title:       p.Title,
			PromptType:  p.PromptType,
			Score:       Score(p, now, timeframe),
			UpvoteCount: p.UpvoteCount,
			ViewCount:   p.ViewCount,
			CopyCount:   p.CopyCount,
			CreatedAt:   p.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		}
		return entries[i].PromptID > entries[j].PromptID
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// TrendingService ranks prompts by a time-decayed engagement score. Every
// query recomputes from current counters; the Redis layer only shortens the
// read path and is never required for correctness.
type TrendingService struct {
	prompts *repository.PromptRepo
	cache   *CacheService
}

func NewTrendingService(prompts *repository.PromptRepo, cache *CacheService) *TrendingService {
	return &TrendingService{prompts: prompts, cache: cache}
}

// Trending returns the top-limit prompts for the timeframe.
func (s *TrendingService) Trending(ctx context.Context, limit int, timeframe model.Timeframe) (*model.TrendingResponse, error) {
	return s.query(ctx, limit, timeframe, nil, nil)
}

// TrendingByType restricts the candidate set to one prompt type. An unknown
// type yields an empty result, not an error.
func (s *TrendingService) TrendingByType(ctx context.Context, ptype model.PromptType, limit int, timeframe model.Timeframe) (*model.TrendingResponse, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if !model.ValidPromptTypes[ptype] {
		return &model.TrendingResponse{
			Entries:   []model.TrendingEntry{},
			Timeframe: timeframe,
			Limit:     limit,
			Type:      string(ptype),
		}, nil
	}
	return s.query(ctx, limit, timeframe, &ptype, nil)
}

// TrendingByCategory restricts the candidate set to one category. An unknown
// category simply matches nothing.
func (s *TrendingService) TrendingByCategory(ctx context.Context, categoryID int64, limit int, timeframe model.Timeframe) (*model.TrendingResponse, error) {
	return s.query(ctx, limit, timeframe, nil, &categoryID)
}

func (s *TrendingService) query(ctx context.Context, limit int, timeframe model.Timeframe, ptype *model.PromptType, categoryID *int64) (*model.TrendingResponse, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	typeKey, catKey := "", ""
	if ptype != nil {
		typeKey = string(*ptype)
	}
	if categoryID != nil {
		catKey = strconv.FormatInt(*categoryID, 10)
	}
	cacheKey := TrendingKey(string(timeframe), typeKey, catKey, limit)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("cache: trending get error: %v", err)
		} else if cached != nil {
			var resp model.TrendingResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return &resp, nil
			}
		}
	}

	now := time.Now().UTC()

	// Candidate filters apply before scoring and truncation, so limit always
	// returns the top-N of the filtered population. For decaying timeframes
	// anything older than the window scores zero and is excluded in SQL.
	filter := repository.TrendingFilter{PromptType: ptype, CategoryID: categoryID}
	if w := timeframe.Window(); w > 0 {
		since := now.Add(-w)
		filter.Since = &since
	}

	candidates, err := s.prompts.ListForTrending(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &model.TrendingResponse{
		Entries:   Rank(candidates, now, timeframe, limit),
		Timeframe: timeframe,
		Limit:     limit,
		Type:      typeKey,
		Category:  categoryID,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, resp, TrendingCacheTTL); err != nil {
			log.Printf("cache: trending set error: %v", err)
		}
	}

	return resp, nil
}
