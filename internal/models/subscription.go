package models

import "time"

// Subscription marks a subscriber's interest in one person's events. The
// upcoming-events query joins against this set to produce personalized
// views.
type Subscription struct {
	ID           string    `db:"id" json:"id"`
	SubscriberID string    `db:"subscriber_id" json:"subscriber_id"`
	PersonID     string    `db:"person_id" json:"person_id"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
