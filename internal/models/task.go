package models

import "time"

// Task belongs to exactly one user; only the owner may read or change it.
type Task struct {
	ID          string    `json:"id"`
	OwnerID     int       `json:"owner_id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
