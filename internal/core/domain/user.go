package domain

import "time"

// User is an identity that can belong to groups and appear in expenses.
// Users are immutable after creation and referenced by id everywhere else.
type User struct {
	UserID         string    `json:"userID"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
}
