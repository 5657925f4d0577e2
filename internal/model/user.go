package model

import "time"

// User holds the minimal identity record the voting core needs. Profile data
// lives with the account collaborator, not here.
type User struct {
	UserID     string    `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
	LastActive time.Time `json:"-"`
}
