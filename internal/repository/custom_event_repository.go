package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dorot-app/dorot-api/internal/models"
)

const customEventColumns = `id, person_id, related_person_id, event_type, name, date, after_sunset, created_at, updated_at`

// CustomEventRepository persists externally recorded dated events.
type CustomEventRepository struct {
	db *sqlx.DB
}

// NewCustomEventRepository constructs a custom event repository.
func NewCustomEventRepository(db *sqlx.DB) *CustomEventRepository {
	return &CustomEventRepository{db: db}
}

// ListByPerson returns all custom events attached to a person.
func (r *CustomEventRepository) ListByPerson(ctx context.Context, personID string) ([]models.CustomEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM custom_events WHERE person_id = $1 ORDER BY date ASC", customEventColumns)
	var events []models.CustomEvent
	if err := r.db.SelectContext(ctx, &events, query, personID); err != nil {
		return nil, fmt.Errorf("list custom events: %w", err)
	}
	return events, nil
}

// All returns the full custom-event snapshot consumed by the refresh cycle.
func (r *CustomEventRepository) All(ctx context.Context) ([]models.CustomEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM custom_events ORDER BY id", customEventColumns)
	var events []models.CustomEvent
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("load custom event snapshot: %w", err)
	}
	return events, nil
}

// GetByID fetches a custom event.
func (r *CustomEventRepository) GetByID(ctx context.Context, id string) (*models.CustomEvent, error) {
	query := fmt.Sprintf("SELECT %s FROM custom_events WHERE id = $1", customEventColumns)
	var event models.CustomEvent
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create inserts a custom event.
func (r *CustomEventRepository) Create(ctx context.Context, event *models.CustomEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	query := `INSERT INTO custom_events (id, person_id, related_person_id, event_type, name, date, after_sunset, created_at, updated_at)
VALUES (:id, :person_id, :related_person_id, :event_type, :name, :date, :after_sunset, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create custom event: %w", err)
	}
	return nil
}

// Update modifies a custom event.
func (r *CustomEventRepository) Update(ctx context.Context, event *models.CustomEvent) error {
	event.UpdatedAt = time.Now().UTC()
	query := `UPDATE custom_events SET related_person_id = :related_person_id, event_type = :event_type, name = :name,
date = :date, after_sunset = :after_sunset, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("update custom event: %w", err)
	}
	return nil
}

// Delete removes a custom event.
func (r *CustomEventRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM custom_events WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete custom event: %w", err)
	}
	return nil
}
