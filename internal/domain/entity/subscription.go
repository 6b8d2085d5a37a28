// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// Subscription represents the user's current billing state as reported by the
// backend. The client never mutates billing directly; it only reads status
// and surfaces upgrade prompts.
type Subscription struct {
	ID        string     `json:"id"`        // The Global Unique Identifier (GUID) for the subscription.
	UserID    string     `json:"userId"`    // The ID of the owning user.
	Plan      string     `json:"plan"`      // "free", "monthly" or "yearly".
	IsActive  bool       `json:"isActive"`  // Indicates if this subscription is active.
	RenewsAt  *time.Time `json:"renewsAt"`  // Next renewal date; nil for the free tier.
	StartedAt time.Time  `json:"startedAt"` // Timestamp of when the subscription was created.
	UpdatedAt time.Time  `json:"updatedAt"` // Timestamp of the last modification.
}
