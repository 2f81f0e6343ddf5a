package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dorot-app/dorot-api/internal/models"
)

// SubscriptionRepository persists subscriber-to-person interest records.
type SubscriptionRepository struct {
	db *sqlx.DB
}

// NewSubscriptionRepository constructs a subscription repository.
func NewSubscriptionRepository(db *sqlx.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListBySubscriber returns the subscription set of one subscriber.
func (r *SubscriptionRepository) ListBySubscriber(ctx context.Context, subscriberID string) ([]models.Subscription, error) {
	const query = `SELECT id, subscriber_id, person_id, created_at FROM subscriptions WHERE subscriber_id = $1 ORDER BY created_at ASC`
	var subs []models.Subscription
	if err := r.db.SelectContext(ctx, &subs, query, subscriberID); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}

// Create inserts a subscription; duplicates are a no-op thanks to the unique
// (subscriber_id, person_id) constraint.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO subscriptions (id, subscriber_id, person_id, created_at)
VALUES (:id, :subscriber_id, :person_id, :created_at)
ON CONFLICT (subscriber_id, person_id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, sub); err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	return nil
}

// Delete removes a subscription.
func (r *SubscriptionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM subscriptions WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	return nil
}
