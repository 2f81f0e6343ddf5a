package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
)

type personRepository interface {
	List(ctx context.Context, filter models.PersonFilter) ([]models.Person, int, error)
	GetByID(ctx context.Context, id string) (*models.Person, error)
	Create(ctx context.Context, person *models.Person) error
	Update(ctx context.Context, person *models.Person) error
	Delete(ctx context.Context, id string) error
}

// PersonService manages family-tree person records.
type PersonService struct {
	repo      personRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPersonService constructs the service.
func NewPersonService(repo personRepository, validate *validator.Validate, logger *zap.Logger) *PersonService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonService{repo: repo, validator: validate, logger: logger}
}

// PersonListRequest describes filters for listing persons.
type PersonListRequest struct {
	Query    string
	Page     int
	PageSize int
}

// CreatePersonRequest describes the create payload.
type CreatePersonRequest struct {
	FirstName           string  `json:"first_name" validate:"required"`
	LastName            string  `json:"last_name" validate:"required"`
	Gender              string  `json:"gender" validate:"required,oneof=M F O"`
	Birthday            string  `json:"birthday" validate:"required,datetime=2006-01-02"`
	BirthdayAfterSunset bool    `json:"birthday_after_sunset"`
	DateOfPassing       *string `json:"date_of_passing" validate:"omitempty,datetime=2006-01-02"`
	PassingAfterSunset  bool    `json:"passing_after_sunset"`
}

// UpdatePersonRequest describes the update payload.
type UpdatePersonRequest struct {
	FirstName           string  `json:"first_name" validate:"required"`
	LastName            string  `json:"last_name" validate:"required"`
	Gender              string  `json:"gender" validate:"required,oneof=M F O"`
	Birthday            string  `json:"birthday" validate:"required,datetime=2006-01-02"`
	BirthdayAfterSunset bool    `json:"birthday_after_sunset"`
	DateOfPassing       *string `json:"date_of_passing" validate:"omitempty,datetime=2006-01-02"`
	PassingAfterSunset  bool    `json:"passing_after_sunset"`
}

// List returns person records.
func (s *PersonService) List(ctx context.Context, req PersonListRequest) ([]models.Person, *models.Pagination, error) {
	filter := models.PersonFilter{Query: req.Query, Page: req.Page, PageSize: req.PageSize}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	persons, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list persons")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	return persons, pagination, nil
}

// Get returns a person by id.
func (s *PersonService) Get(ctx context.Context, id string) (*models.Person, error) {
	person, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get person")
	}
	return person, nil
}

// Create registers a new person.
func (s *PersonService) Create(ctx context.Context, req CreatePersonRequest) (*models.Person, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := ensureDateOrder(req.Birthday, req.DateOfPassing); err != nil {
		return nil, err
	}
	person := &models.Person{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Gender:              models.Gender(req.Gender),
		Birthday:            req.Birthday,
		BirthdayAfterSunset: req.BirthdayAfterSunset,
		DateOfPassing:       req.DateOfPassing,
		PassingAfterSunset:  req.PassingAfterSunset,
	}
	if err := s.repo.Create(ctx, person); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create person")
	}
	return person, nil
}

// Update modifies a person.
func (s *PersonService) Update(ctx context.Context, id string, req UpdatePersonRequest) (*models.Person, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if err := ensureDateOrder(req.Birthday, req.DateOfPassing); err != nil {
		return nil, err
	}
	person, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "person not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load person")
	}
	person.FirstName = req.FirstName
	person.LastName = req.LastName
	person.Gender = models.Gender(req.Gender)
	person.Birthday = req.Birthday
	person.BirthdayAfterSunset = req.BirthdayAfterSunset
	person.DateOfPassing = req.DateOfPassing
	person.PassingAfterSunset = req.PassingAfterSunset
	if err := s.repo.Update(ctx, person); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update person")
	}
	return person, nil
}

// Delete removes a person record.
func (s *PersonService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete person")
	}
	return nil
}

// ensureDateOrder enforces that a date of passing, when present, is on or
// after the birth date. Both strings are already format-validated.
func ensureDateOrder(birthday string, passing *string) error {
	if passing == nil {
		return nil
	}
	b, err := time.Parse(sourceDateLayout, birthday)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid birthday")
	}
	p, err := time.Parse(sourceDateLayout, *passing)
	if err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid date of passing")
	}
	if p.Before(b) {
		return appErrors.Clone(appErrors.ErrValidation, "date_of_passing must be on or after birthday")
	}
	return nil
}
