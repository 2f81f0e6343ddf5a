package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/dorot-app/dorot-api/internal/models"
)

const upcomingColumns = `e.id, e.person_id, e.related_person_id, e.custom_event_id, e.event_type, e.name, e.occurs_on, e.hebrew_date, e.source_date, e.years, e.computed_at`

// UpcomingEventRepository persists the derived upcoming-events cache table.
// Rows are disposable: the refresh replaces a whole look-ahead window in one
// transaction so readers never observe a partially refreshed window.
type UpcomingEventRepository struct {
	db *sqlx.DB
}

// NewUpcomingEventRepository constructs an upcoming event repository.
func NewUpcomingEventRepository(db *sqlx.DB) *UpcomingEventRepository {
	return &UpcomingEventRepository{db: db}
}

// ReplaceWindow atomically swaps all cached rows whose occurrence date falls
// inside [start, end] for the provided set.
func (r *UpcomingEventRepository) ReplaceWindow(ctx context.Context, start, end time.Time, events []models.UpcomingEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin window replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM upcoming_events WHERE occurs_on BETWEEN $1 AND $2", start, end); err != nil {
		return fmt.Errorf("clear window: %w", err)
	}

	const insert = `INSERT INTO upcoming_events (id, person_id, related_person_id, custom_event_id, event_type, name, occurs_on, hebrew_date, source_date, years, computed_at)
VALUES (:id, :person_id, :related_person_id, :custom_event_id, :event_type, :name, :occurs_on, :hebrew_date, :source_date, :years, :computed_at)`
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
		}
		if _, err := tx.NamedExecContext(ctx, insert, events[i]); err != nil {
			return fmt.Errorf("insert upcoming event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit window replace: %w", err)
	}
	return nil
}

// List returns cached upcoming events inside the filter range, optionally
// narrowed to event types and to a subscriber's subscription set.
func (r *UpcomingEventRepository) List(ctx context.Context, filter models.UpcomingFilter) ([]models.UpcomingEvent, int, error) {
	base := "FROM upcoming_events e"
	where := []string{}
	args := []interface{}{}

	if filter.SubscriberID != "" {
		base += " JOIN subscriptions s ON s.person_id = e.person_id"
		where = append(where, fmt.Sprintf("s.subscriber_id = $%d", len(args)+1))
		args = append(args, filter.SubscriberID)
	}
	where = append(where, fmt.Sprintf("e.occurs_on >= $%d", len(args)+1))
	args = append(args, filter.Start)
	where = append(where, fmt.Sprintf("e.occurs_on <= $%d", len(args)+1))
	args = append(args, filter.End)
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		where = append(where, fmt.Sprintf("e.event_type = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(types))
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY e.occurs_on ASC, e.person_id ASC, e.event_type ASC LIMIT %d OFFSET %d",
		upcomingColumns, base, whereClause, size, offset)
	var events []models.UpcomingEvent
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list upcoming events: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count upcoming events: %w", err)
	}
	return events, total, nil
}
