package service

import "errors"

// Client-facing failures. Handlers map these to stable error codes; anything
// else is an internal error and is never leaked to the client.
var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrSelfVote       = errors.New("authors cannot vote on their own prompts")
	ErrInvalidLimit   = errors.New("limit must be a positive integer")
)
