package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// VoteRepo is the vote ledger: the durable, uniqueness-enforcing record of
// who voted for what. It is also the only writer of prompts.upvote_count,
// which it adjusts in the same transaction as every ledger write.
type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// ToggleResult is the post-toggle state of one (prompt, user) pair.
type ToggleResult struct {
	Voted       bool
	UpvoteCount int
}

// Toggle flips the vote state for a (prompt, user) pair atomically.
//
// The ledger delete runs first: if a row existed, this is a toggle-off and
// the counter is decremented. Otherwise an insert is attempted with
// ON CONFLICT DO NOTHING — the unique (prompt_id, user_id) index is what
// serializes concurrent toggle-ons, so a lost conflict means another request
// already created the vote and this call resolves as a no-op rather than a
// double increment. Counter updates are relative adjustments evaluated by the
// storage engine, never read-modify-write in application code, so concurrent
// toggles by different users on the same prompt never lose updates.
func (r *VoteRepo) Toggle(ctx context.Context, promptID int64, userID, ipHash string) (*ToggleResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Keep the user row fresh (auto-create on first vote)
	_, err = tx.Exec(ctx, `
		INSERT INTO users (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET last_active = NOW()`,
		userID)
	if err != nil {
		return nil, err
	}

	res := &ToggleResult{}

	ct, err := tx.Exec(ctx, `
		DELETE FROM votes WHERE prompt_id = $1 AND user_id = $2`,
		promptID, userID)
	if err != nil {
		return nil, err
	}

	if ct.RowsAffected() > 0 {
		// Toggle off: ledger row removed, decrement in the same transaction.
		// GREATEST guards against ever driving the counter negative.
		err = tx.QueryRow(ctx, `
			UPDATE prompts
			SET upvote_count = GREATEST(upvote_count - 1, 0), updated_at = NOW()
			WHERE id = $1
			RETURNING upvote_count`,
			promptID).Scan(&res.UpvoteCount)
		if err != nil {
			return nil, err
		}
		res.Voted = false
	} else {
		ct, err = tx.Exec(ctx, `
			INSERT INTO votes (prompt_id, user_id, ip_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (prompt_id, user_id) DO NOTHING`,
			promptID, userID, ipHash)
		if err != nil {
			return nil, err
		}

		if ct.RowsAffected() > 0 {
			// Toggle on: ledger row created, increment in the same transaction.
			err = tx.QueryRow(ctx, `
				UPDATE prompts
				SET upvote_count = upvote_count + 1, updated_at = NOW()
				WHERE id = $1
				RETURNING upvote_count`,
				promptID).Scan(&res.UpvoteCount)
			if err != nil {
				return nil, err
			}
		} else {
			// A concurrent request inserted the vote first. The duplicate is
			// absorbed as a no-op: report voted with the current count.
			err = tx.QueryRow(ctx, `
				SELECT upvote_count FROM prompts WHERE id = $1`,
				promptID).Scan(&res.UpvoteCount)
			if err != nil {
				return nil, err
			}
		}
		res.Voted = true
	}

	// Wake the reconcile worker for this prompt
	_, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1::text)`, promptID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

// HasVoted reports whether the user holds an active vote on the prompt.
func (r *VoteRepo) HasVoted(ctx context.Context, promptID int64, userID string) (bool, error) {
	var voted bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM votes WHERE prompt_id = $1 AND user_id = $2)`,
		promptID, userID).Scan(&voted)
	return voted, err
}

// CountVotes returns the authoritative ledger count for a prompt.
func (r *VoteRepo) CountVotes(ctx context.Context, promptID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM votes WHERE prompt_id = $1`,
		promptID).Scan(&n)
	return n, err
}

// ReconcileCount sets the denormalized counter to the ledger's true count and
// returns the drift that was repaired (0 when counter and ledger agreed).
func (r *VoteRepo) ReconcileCount(ctx context.Context, promptID int64) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var counter int
	err = tx.QueryRow(ctx, `
		SELECT upvote_count FROM prompts WHERE id = $1 FOR UPDATE`,
		promptID).Scan(&counter)
	if err != nil {
		return 0, err
	}

	var ledger int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM votes WHERE prompt_id = $1`,
		promptID).Scan(&ledger)
	if err != nil {
		return 0, err
	}

	drift := counter - ledger
	if drift != 0 {
		_, err = tx.Exec(ctx, `
			UPDATE prompts SET upvote_count = $1, updated_at = NOW() WHERE id = $2`,
			ledger, promptID)
		if err != nil {
			return 0, err
		}
	}

	return drift, tx.Commit(ctx)
}
