package service

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nermalcat69/promptu/internal/repository"
)

// ReconcileWorker listens for PostgreSQL NOTIFY on the 'vote_changes' channel
// and batch-verifies that each touched prompt's denormalized upvote counter
// still equals the ledger's row count, repairing any drift it finds. The
// toggle transaction alone upholds the invariant; this is a safety net that
// turns silent drift into a logged, repaired event.
type ReconcileWorker struct {
	pool    *pgxpool.Pool
	votes   *repository.VoteRepo
	prompts *repository.PromptRepo
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[int64]struct{} // prompt IDs waiting for verification
}

// NewReconcileWorker creates a counter reconciliation worker.
func NewReconcileWorker(pool *pgxpool.Pool, votes *repository.VoteRepo, prompts *repository.PromptRepo, cache *CacheService) *ReconcileWorker {
	return &ReconcileWorker{
		pool:    pool,
		votes:   votes,
		prompts: prompts,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[int64]struct{}),
	}
}

// Start begins listening for vote_changes notifications and processing batches.
func (w *ReconcileWorker) Start(ctx context.Context) {
	log.Printf("reconcile-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("reconcile-worker: stopping (context cancelled)")
				return
			}
			log.Printf("reconcile-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("reconcile-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on vote_changes, and
// collects prompt IDs into batched windows.
func (w *ReconcileWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN vote_changes")
	if err != nil {
		return err
	}
	log.Println("reconcile-worker: listening on vote_changes")

	flushCtx, flushCancel := context.WithCancel(ctx)
	flushDone := make(chan struct{})
	go func() {
		defer close(flushDone)
		w.flushLoop(flushCtx)
	}()
	// Wait for the final flush before releasing the connection
	defer func() {
		flushCancel()
		<-flushDone
	}()

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		promptID, err := strconv.ParseInt(notification.Payload, 10, 64)
		if err != nil {
			continue
		}

		w.mu.Lock()
		w.pending[promptID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and verifies counters.
func (w *ReconcileWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit, bounded so shutdown cannot hang on a
			// slow or closing database
			finalCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flush(finalCtx)
			cancel()
			return
		}
	}
}

// flush drains the pending set and reconciles each prompt's counter against
// the ledger.
func (w *ReconcileWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[int64]struct{})
	w.mu.Unlock()

	repaired := 0
	for promptID := range batch {
		drift, err := w.votes.ReconcileCount(ctx, promptID)
		if err != nil {
			log.Printf("reconcile-worker: reconcile error for prompt %d: %v", promptID, err)
			continue
		}
		if drift == 0 {
			continue
		}

		log.Printf("reconcile-worker: repaired drift of %+d on prompt %d", drift, promptID)
		repaired++

		// Drop the stale cached prompt so the next read sees the fixed count
		if w.cache != nil {
			slug, err := w.prompts.SlugByID(ctx, promptID)
			if err != nil {
				continue
			}
			if err := w.cache.InvalidatePrompt(ctx, slug); err != nil {
				log.Printf("reconcile-worker: cache invalidate error for prompt %d: %v", promptID, err)
			}
		}
	}

	if repaired > 0 {
		log.Printf("reconcile-worker: batch complete, %d counters repaired (from %d notifications)",
			repaired, len(batch))
	}
}
