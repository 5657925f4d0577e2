package model

import "time"

// PromptType is the closed set of prompt kinds.
type PromptType string

const (
	PromptTypeSystem    PromptType = "system"
	PromptTypeUser      PromptType = "user"
	PromptTypeDeveloper PromptType = "developer"
)

// ValidPromptTypes are the allowed prompt type values.
var ValidPromptTypes = map[PromptType]bool{
	PromptTypeSystem:    true,
	PromptTypeUser:      true,
	PromptTypeDeveloper: true,
}

// Prompt represents a published prompt with its denormalized engagement counters.
type Prompt struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	AuthorID    string     `json:"authorId"`
	PromptType  PromptType `json:"promptType"`
	CategoryID  *int64     `json:"categoryId,omitempty"`
	Published   bool       `json:"-"`
	UpvoteCount int        `json:"upvoteCount"`
	ViewCount   int        `json:"viewCount"`
	CopyCount   int        `json:"copyCount"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PromptResponse is the API response for prompt lookups.
type PromptResponse struct {
	ID          int64      `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	AuthorID    string     `json:"authorId"`
	PromptType  PromptType `json:"promptType"`
	CategoryID  *int64     `json:"categoryId,omitempty"`
	UpvoteCount int        `json:"upvoteCount"`
	ViewCount   int        `json:"viewCount"`
	CopyCount   int        `json:"copyCount"`
	CreatedAt   time.Time  `json:"createdAt"`
}
