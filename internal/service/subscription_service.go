package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
)

type subscriptionRepository interface {
	ListBySubscriber(ctx context.Context, subscriberID string) ([]models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) error
	Delete(ctx context.Context, id string) error
}

// SubscriptionService manages subscriber interest sets.
type SubscriptionService struct {
	repo   subscriptionRepository
	logger *zap.Logger
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(repo subscriptionRepository, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{repo: repo, logger: logger}
}

// List returns one subscriber's subscriptions.
func (s *SubscriptionService) List(ctx context.Context, subscriberID string) ([]models.Subscription, error) {
	if subscriberID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subscriber_id is required")
	}
	subs, err := s.repo.ListBySubscriber(ctx, subscriberID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subscriptions")
	}
	return subs, nil
}

// Create registers interest in a person's events.
func (s *SubscriptionService) Create(ctx context.Context, subscriberID, personID string) (*models.Subscription, error) {
	if subscriberID == "" || personID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subscriber_id and person_id are required")
	}
	sub := &models.Subscription{SubscriberID: subscriberID, PersonID: personID}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subscription")
	}
	return sub, nil
}

// Delete removes a subscription.
func (s *SubscriptionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subscription")
	}
	return nil
}
