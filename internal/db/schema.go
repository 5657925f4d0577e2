package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates the core tables. The (prompt_id, user_id) unique constraint
// on votes is load-bearing: it is what serializes concurrent toggle inserts.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id     TEXT PRIMARY KEY,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    last_active TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS prompts (
    id           BIGSERIAL PRIMARY KEY,
    slug         TEXT UNIQUE NOT NULL,
    title        TEXT NOT NULL,
    author_id    TEXT NOT NULL REFERENCES users(user_id),
    prompt_type  TEXT NOT NULL CHECK (prompt_type IN ('system', 'user', 'developer')),
    category_id  BIGINT,
    published    BOOLEAN NOT NULL DEFAULT TRUE,
    upvote_count INTEGER NOT NULL DEFAULT 0 CHECK (upvote_count >= 0),
    view_count   INTEGER NOT NULL DEFAULT 0,
    copy_count   INTEGER NOT NULL DEFAULT 0,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS votes (
    id         BIGSERIAL PRIMARY KEY,
    prompt_id  BIGINT NOT NULL REFERENCES prompts(id) ON DELETE CASCADE,
    user_id    TEXT NOT NULL REFERENCES users(user_id),
    vote_type  TEXT NOT NULL DEFAULT 'upvote' CHECK (vote_type IN ('upvote')),
    ip_hash    TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (prompt_id, user_id)
);

CREATE INDEX IF NOT EXISTS idx_prompts_trending
    ON prompts (published, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_votes_prompt ON votes (prompt_id);
`

// Bootstrap creates the tables and indexes if they do not exist.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
