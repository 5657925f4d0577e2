package model

import "time"

// VoteType is the closed set of vote kinds. Only upvotes exist today; the
// enum leaves room for new kinds without a schema migration.
type VoteType string

const VoteTypeUpvote VoteType = "upvote"

// Vote represents one user's endorsement of one prompt. The (prompt, user)
// pair is unique: a user holds at most one active vote per prompt.
type Vote struct {
	ID        int64     `json:"id"`
	PromptID  int64     `json:"promptId"`
	UserID    string    `json:"userId"`
	VoteType  VoteType  `json:"voteType"`
	CreatedAt time.Time `json:"createdAt"`
	IPHash    string    `json:"-"`
}

// VoteRequest is the API request body for toggling a vote.
type VoteRequest struct {
	Type string `json:"type"`
}

// VoteStatusResponse is the API response for vote status reads.
type VoteStatusResponse struct {
	Voted       bool `json:"voted"`
	UpvoteCount int  `json:"upvoteCount"`
	NetScore    int  `json:"netScore"`
}

// VoteToggleResponse is the API response after toggling a vote.
type VoteToggleResponse struct {
	Voted       bool   `json:"voted"`
	UpvoteCount int    `json:"upvoteCount"`
	NetScore    int    `json:"netScore"`
	Message     string `json:"message"`
}
