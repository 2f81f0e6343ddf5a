package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
)

type personRepoMock struct {
	created *models.Person
	stored  *models.Person
	getErr  error
}

func (m *personRepoMock) List(ctx context.Context, filter models.PersonFilter) ([]models.Person, int, error) {
	return nil, 0, nil
}

func (m *personRepoMock) GetByID(ctx context.Context, id string) (*models.Person, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.stored, nil
}

func (m *personRepoMock) Create(ctx context.Context, person *models.Person) error {
	m.created = person
	return nil
}

func (m *personRepoMock) Update(ctx context.Context, person *models.Person) error {
	m.stored = person
	return nil
}

func (m *personRepoMock) Delete(ctx context.Context, id string) error {
	return nil
}

func TestPersonServiceCreate(t *testing.T) {
	repo := &personRepoMock{}
	svc := NewPersonService(repo, nil, nil)

	person, err := svc.Create(context.Background(), CreatePersonRequest{
		FirstName: "Rivka",
		LastName:  "Stern",
		Gender:    "F",
		Birthday:  "2000-01-01",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, "Rivka Stern", person.FullName())
	assert.Equal(t, models.GenderFemale, person.Gender)
}

func TestPersonServiceCreateRejectsBadGender(t *testing.T) {
	svc := NewPersonService(&personRepoMock{}, nil, nil)

	_, err := svc.Create(context.Background(), CreatePersonRequest{
		FirstName: "Rivka",
		LastName:  "Stern",
		Gender:    "X",
		Birthday:  "2000-01-01",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPersonServiceCreateRejectsBadDate(t *testing.T) {
	svc := NewPersonService(&personRepoMock{}, nil, nil)

	_, err := svc.Create(context.Background(), CreatePersonRequest{
		FirstName: "Rivka",
		LastName:  "Stern",
		Gender:    "F",
		Birthday:  "01/01/2000",
	})
	require.Error(t, err)
}

func TestPersonServiceCreateRejectsPassingBeforeBirth(t *testing.T) {
	svc := NewPersonService(&personRepoMock{}, nil, nil)

	passing := "1999-01-01"
	_, err := svc.Create(context.Background(), CreatePersonRequest{
		FirstName:     "Rivka",
		LastName:      "Stern",
		Gender:        "F",
		Birthday:      "2000-01-01",
		DateOfPassing: &passing,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestPersonServiceGetNotFound(t *testing.T) {
	svc := NewPersonService(&personRepoMock{getErr: sql.ErrNoRows}, nil, nil)

	_, err := svc.Get(context.Background(), "p404")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPersonServiceUpdate(t *testing.T) {
	repo := &personRepoMock{stored: &models.Person{ID: "p1", FirstName: "Rivka", LastName: "Stern", Gender: models.GenderFemale, Birthday: "2000-01-01"}}
	svc := NewPersonService(repo, nil, nil)

	person, err := svc.Update(context.Background(), "p1", UpdatePersonRequest{
		FirstName: "Rivka",
		LastName:  "Stern-Katz",
		Gender:    "F",
		Birthday:  "2000-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Stern-Katz", person.LastName)
}
