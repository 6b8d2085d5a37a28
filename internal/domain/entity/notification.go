// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// Notification is a message the backend queued for the user (plan reminders,
// streak milestones, subscription notices).
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Kind      string    `json:"kind"` // e.g. "reminder", "milestone", "billing".
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
