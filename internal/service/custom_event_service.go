package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
)

type customEventRepository interface {
	ListByPerson(ctx context.Context, personID string) ([]models.CustomEvent, error)
	GetByID(ctx context.Context, id string) (*models.CustomEvent, error)
	Create(ctx context.Context, event *models.CustomEvent) error
	Update(ctx context.Context, event *models.CustomEvent) error
	Delete(ctx context.Context, id string) error
}

type personLookup interface {
	GetByID(ctx context.Context, id string) (*models.Person, error)
}

// CustomEventService manages externally recorded dated events.
type CustomEventService struct {
	repo      customEventRepository
	persons   personLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCustomEventService constructs the service.
func NewCustomEventService(repo customEventRepository, persons personLookup, validate *validator.Validate, logger *zap.Logger) *CustomEventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomEventService{repo: repo, persons: persons, validator: validate, logger: logger}
}

// CreateCustomEventRequest describes the create payload.
type CreateCustomEventRequest struct {
	RelatedPersonID *string `json:"related_person_id"`
	EventType       string  `json:"event_type" validate:"required"`
	Name            *string `json:"name"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	AfterSunset     bool    `json:"after_sunset"`
}

// UpdateCustomEventRequest describes the update payload.
type UpdateCustomEventRequest struct {
	RelatedPersonID *string `json:"related_person_id"`
	EventType       string  `json:"event_type" validate:"required"`
	Name            *string `json:"name"`
	Date            string  `json:"date" validate:"required,datetime=2006-01-02"`
	AfterSunset     bool    `json:"after_sunset"`
}

// ListByPerson returns a person's custom events.
func (s *CustomEventService) ListByPerson(ctx context.Context, personID string) ([]models.CustomEvent, error) {
	events, err := s.repo.ListByPerson(ctx, personID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list custom events")
	}
	return events, nil
}

// Create attaches a new custom event to a person.
func (s *CustomEventService) Create(ctx context.Context, personID string, req CreateCustomEventRequest) (*models.CustomEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	eventType := models.EventType(strings.ToLower(req.EventType))
	if !models.ValidEventType(eventType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown event type")
	}
	if _, err := s.persons.GetByID(ctx, personID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load person")
	}
	event := &models.CustomEvent{
		PersonID:        personID,
		RelatedPersonID: req.RelatedPersonID,
		EventType:       eventType,
		Name:            req.Name,
		Date:            req.Date,
		AfterSunset:     req.AfterSunset,
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create custom event")
	}
	return event, nil
}

// Update modifies a custom event.
func (s *CustomEventService) Update(ctx context.Context, id string, req UpdateCustomEventRequest) (*models.CustomEvent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	eventType := models.EventType(strings.ToLower(req.EventType))
	if !models.ValidEventType(eventType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown event type")
	}
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "custom event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load custom event")
	}
	event.RelatedPersonID = req.RelatedPersonID
	event.EventType = eventType
	event.Name = req.Name
	event.Date = req.Date
	event.AfterSunset = req.AfterSunset
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update custom event")
	}
	return event, nil
}

// Delete removes a custom event.
func (s *CustomEventService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete custom event")
	}
	return nil
}
