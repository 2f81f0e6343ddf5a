package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dorot-app/dorot-api/internal/models"
)

const personColumns = `id, first_name, last_name, gender, birthday, birthday_after_sunset, date_of_passing, passing_after_sunset, created_at, updated_at`

// PersonRepository persists family-tree person records.
type PersonRepository struct {
	db *sqlx.DB
}

// NewPersonRepository constructs a person repository.
func NewPersonRepository(db *sqlx.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// List returns persons matching the filter.
func (r *PersonRepository) List(ctx context.Context, filter models.PersonFilter) ([]models.Person, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Query != "" {
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Query+"%")
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM persons WHERE %s ORDER BY last_name ASC, first_name ASC LIMIT %d OFFSET %d`,
		personColumns, whereClause, size, offset)
	var persons []models.Person
	if err := r.db.SelectContext(ctx, &persons, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list persons: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM persons WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count persons: %w", err)
	}
	return persons, total, nil
}

// All returns the full person snapshot consumed by the refresh cycle.
func (r *PersonRepository) All(ctx context.Context) ([]models.Person, error) {
	query := fmt.Sprintf("SELECT %s FROM persons ORDER BY id", personColumns)
	var persons []models.Person
	if err := r.db.SelectContext(ctx, &persons, query); err != nil {
		return nil, fmt.Errorf("load person snapshot: %w", err)
	}
	return persons, nil
}

// GetByID fetches a single person.
func (r *PersonRepository) GetByID(ctx context.Context, id string) (*models.Person, error) {
	query := fmt.Sprintf("SELECT %s FROM persons WHERE id = $1", personColumns)
	var person models.Person
	if err := r.db.GetContext(ctx, &person, query, id); err != nil {
		return nil, err
	}
	return &person, nil
}

// Create inserts a person record.
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now
	query := `INSERT INTO persons (id, first_name, last_name, gender, birthday, birthday_after_sunset, date_of_passing, passing_after_sunset, created_at, updated_at)
VALUES (:id, :first_name, :last_name, :gender, :birthday, :birthday_after_sunset, :date_of_passing, :passing_after_sunset, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

// Update modifies a person record.
func (r *PersonRepository) Update(ctx context.Context, person *models.Person) error {
	person.UpdatedAt = time.Now().UTC()
	query := `UPDATE persons SET first_name = :first_name, last_name = :last_name, gender = :gender, birthday = :birthday,
birthday_after_sunset = :birthday_after_sunset, date_of_passing = :date_of_passing, passing_after_sunset = :passing_after_sunset, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, person); err != nil {
		return fmt.Errorf("update person: %w", err)
	}
	return nil
}

// Delete removes a person record.
func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM persons WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}
