package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorot-app/dorot-api/internal/models"
	"github.com/dorot-app/dorot-api/internal/service"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
)

type personServiceMock struct {
	listResp []models.Person
	getResp  *models.Person
	getErr   error
}

func (m *personServiceMock) List(ctx context.Context, req service.PersonListRequest) ([]models.Person, *models.Pagination, error) {
	return m.listResp, &models.Pagination{Page: 1, PageSize: 50, TotalCount: len(m.listResp)}, nil
}

func (m *personServiceMock) Get(ctx context.Context, id string) (*models.Person, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getResp, nil
}

func (m *personServiceMock) Create(ctx context.Context, req service.CreatePersonRequest) (*models.Person, error) {
	return &models.Person{ID: "p1", FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (m *personServiceMock) Update(ctx context.Context, id string, req service.UpdatePersonRequest) (*models.Person, error) {
	return &models.Person{ID: id, FirstName: req.FirstName, LastName: req.LastName}, nil
}

func (m *personServiceMock) Delete(ctx context.Context, id string) error {
	return nil
}

func TestPersonHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPersonHandler(&personServiceMock{listResp: []models.Person{{ID: "p1", FirstName: "Rivka"}}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/people?q=rivka", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data       []models.Person    `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "p1", envelope.Data[0].ID)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, 1, envelope.Pagination.TotalCount)
}

func TestPersonHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPersonHandler(&personServiceMock{getErr: appErrors.Clone(appErrors.ErrNotFound, "person not found")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/people/p404", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "p404"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPersonHandler(&personServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(service.CreatePersonRequest{
		FirstName: "Rivka",
		LastName:  "Stern",
		Gender:    "F",
		Birthday:  "2000-01-01",
	})
	req, _ := http.NewRequest(http.MethodPost, "/people", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestPersonHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPersonHandler(&personServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/people", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPersonHandler(&personServiceMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/people/p1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "p1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}
