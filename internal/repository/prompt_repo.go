package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nermalcat69/promptu/internal/model"
)

type PromptRepo struct {
	pool *pgxpool.Pool
}

func NewPromptRepo(pool *pgxpool.Pool) *PromptRepo {
	return &PromptRepo{pool: pool}
}

const promptColumns = `
	id, slug, title, author_id, prompt_type, category_id, published,
	upvote_count, view_count, copy_count, created_at, updated_at`

// FindBySlug returns a single published prompt by slug.
// Returns pgx.ErrNoRows for absent or unpublished prompts.
func (r *PromptRepo) FindBySlug(ctx context.Context, slug string) (*model.Prompt, error) {
	query := `
		SELECT ` + promptColumns + `
		FROM prompts
		WHERE slug = $1 AND published = TRUE`

	var p model.Prompt
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.Slug, &p.Title, &p.AuthorID, &p.PromptType, &p.CategoryID, &p.Published,
		&p.UpvoteCount, &p.ViewCount, &p.CopyCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugByID returns the slug for a prompt ID.
func (r *PromptRepo) SlugByID(ctx context.Context, promptID int64) (string, error) {
	var slug string
	err := r.pool.QueryRow(ctx, `SELECT slug FROM prompts WHERE id = $1`, promptID).Scan(&slug)
	return slug, err
}

// IncrementViewCount bumps the view counter by one and returns the new value.
// Views are an independent monotonic counter, incremented atomically by the
// storage engine.
func (r *PromptRepo) IncrementViewCount(ctx context.Context, promptID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		UPDATE prompts SET view_count = view_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING view_count`,
		promptID).Scan(&n)
	return n, err
}

// IncrementCopyCount bumps the copy counter by one and returns the new value.
func (r *PromptRepo) IncrementCopyCount(ctx context.Context, promptID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		UPDATE prompts SET copy_count = copy_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING copy_count`,
		promptID).Scan(&n)
	return n, err
}

// TrendingFilter narrows the trending candidate set. Filters apply before
// scoring so a limit always returns the top-N of the filtered population.
type TrendingFilter struct {
	Since      *time.Time        // only prompts created after this instant (nil = all)
	PromptType *model.PromptType // restrict to one prompt type
	CategoryID *int64            // restrict to one category
}

// ListForTrending returns the published candidate set for a trending query.
// Ranking happens in the service; this only fetches counters and timestamps.
func (r *PromptRepo) ListForTrending(ctx context.Context, f TrendingFilter) ([]model.Prompt, error) {
	query := `
		SELECT ` + promptColumns + `
		FROM prompts
		WHERE published = TRUE`
	args := []any{}

	if f.Since != nil {
		args = append(args, *f.Since)
		query += ` AND created_at > $` + strconv.Itoa(len(args))
	}
	if f.PromptType != nil {
		args = append(args, string(*f.PromptType))
		query += ` AND prompt_type = $` + strconv.Itoa(len(args))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		query += ` AND category_id = $` + strconv.Itoa(len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []model.Prompt
	for rows.Next() {
		var p model.Prompt
		err := rows.Scan(
			&p.ID, &p.Slug, &p.Title, &p.AuthorID, &p.PromptType, &p.CategoryID, &p.Published,
			&p.UpvoteCount, &p.ViewCount, &p.CopyCount, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}
