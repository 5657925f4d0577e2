package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nermalcat69/promptu/internal/model"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// GetCommunityStats returns platform-wide totals in a single round trip.
// Every total covers published prompts only; the vote total comes from the
// ledger (not the denormalized counters), joined to published prompts so the
// derived ratios agree with the visible counters.
func (r *StatsRepo) GetCommunityStats(ctx context.Context) (*model.CommunityStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM prompts WHERE published = TRUE) AS total_prompts,
			(SELECT COUNT(*) FROM votes v
				JOIN prompts p ON p.id = v.prompt_id
				WHERE p.published = TRUE) AS total_votes,
			(SELECT COALESCE(SUM(view_count), 0) FROM prompts WHERE published = TRUE) AS total_views,
			(SELECT COALESCE(SUM(copy_count), 0) FROM prompts WHERE published = TRUE) AS total_copies,
			(SELECT COUNT(*) FROM users) AS total_users`

	var stats model.CommunityStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalPrompts, &stats.TotalVotes, &stats.TotalViews,
		&stats.TotalCopies, &stats.TotalUsers,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
