// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// CompletionRecord marks one plan day as done. The backend stores one record
// per (user, plan type, date); submitting the same day twice is a no-op.
type CompletionRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PlanType    string    `json:"planType"` // "diet" or "workout".
	Date        string    `json:"date"`     // Calendar day in YYYY-MM-DD, user's local time.
	CompletedAt time.Time `json:"completedAt"`
}

// Streak summarizes consecutive completion runs for one plan type.
type Streak struct {
	PlanType      string `json:"planType"`
	Current       int    `json:"current"`       // Length of the run ending today or yesterday.
	Longest       int    `json:"longest"`       // Longest run ever recorded.
	TotalComplete int    `json:"totalComplete"` // Lifetime completed days.
}
