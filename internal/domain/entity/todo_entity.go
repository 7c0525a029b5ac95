package entity

import (
	"time"
)

// Todo belongs to exactly one user. OwnerID is set at creation and never
// changes; every query against todos is filtered by it.
//
// CompletedAt is epoch milliseconds and is non-nil exactly when
// Completed is true.
type Todo struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Completed   bool      `json:"completed"`
	CompletedAt *int64    `json:"completedAt"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
