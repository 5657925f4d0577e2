package service

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"

	"github.com/nermalcat69/promptu/internal/model"
	"github.com/nermalcat69/promptu/internal/repository"
)

// VoteService is the toggle state machine clients interact with. Each
// (prompt, user) pair is either NOT_VOTED or VOTED; Toggle flips between the
// two. The ledger transaction in VoteRepo keeps the denormalized counter in
// agreement with the ledger under concurrent requests.
type VoteService struct {
	prompts *repository.PromptRepo
	votes   *repository.VoteRepo
	cache   *CacheService
}

func NewVoteService(prompts *repository.PromptRepo, votes *repository.VoteRepo, cache *CacheService) *VoteService {
	return &VoteService{prompts: prompts, votes: votes, cache: cache}
}

// Toggle flips the caller's vote on the prompt identified by slug.
// Returns ErrPromptNotFound for absent or unpublished prompts and ErrSelfVote
// when the caller authored the prompt. Self-vote rejection happens before any
// write, so a rejected call never mutates ledger or counter.
func (s *VoteService) Toggle(ctx context.Context, slug, userID, ipHash string) (*model.VoteToggleResponse, error) {
	p, err := s.prompts.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	if err := checkSelfVote(p, userID); err != nil {
		return nil, err
	}

	res, err := s.votes.Toggle(ctx, p.ID, userID, ipHash)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePrompt(ctx, slug); err != nil {
			log.Printf("cache: invalidate prompt error: %v", err)
		}
	}

	msg := "vote removed"
	if res.Voted {
		msg = "vote recorded"
	}

	return &model.VoteToggleResponse{
		Voted:       res.Voted,
		UpvoteCount: res.UpvoteCount,
		NetScore:    res.UpvoteCount,
		Message:     msg,
	}, nil
}

// checkSelfVote rejects votes by the prompt's author. Runs before any write,
// so a rejected toggle never touches ledger or counter.
func checkSelfVote(p *model.Prompt, userID string) error {
	if p.AuthorID == userID {
		return ErrSelfVote
	}
	return nil
}

// Status returns the caller's vote state and the current count. Read-only.
// Anonymous callers (empty userID) get voted=false without error.
func (s *VoteService) Status(ctx context.Context, slug, userID string) (*model.VoteStatusResponse, error) {
	p, err := s.prompts.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}

	voted := false
	if userID != "" {
		voted, err = s.votes.HasVoted(ctx, p.ID, userID)
		if err != nil {
			return nil, err
		}
	}

	// netScore equals upvoteCount: there is no downvote concept.
	return &model.VoteStatusResponse{
		Voted:       voted,
		UpvoteCount: p.UpvoteCount,
		NetScore:    p.UpvoteCount,
	}, nil
}
