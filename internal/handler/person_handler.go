package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dorot-app/dorot-api/internal/models"
	"github.com/dorot-app/dorot-api/internal/service"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
	"github.com/dorot-app/dorot-api/pkg/response"
)

type personService interface {
	List(ctx context.Context, req service.PersonListRequest) ([]models.Person, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Person, error)
	Create(ctx context.Context, req service.CreatePersonRequest) (*models.Person, error)
	Update(ctx context.Context, id string, req service.UpdatePersonRequest) (*models.Person, error)
	Delete(ctx context.Context, id string) error
}

// PersonHandler exposes the person record endpoints.
type PersonHandler struct {
	service personService
}

// NewPersonHandler constructs the handler.
func NewPersonHandler(service personService) *PersonHandler {
	return &PersonHandler{service: service}
}

// List serves GET /people.
func (h *PersonHandler) List(c *gin.Context) {
	req := service.PersonListRequest{
		Query:    c.Query("q"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 50),
	}
	persons, pagination, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, persons, pagination)
}

// Get serves GET /people/:id.
func (h *PersonHandler) Get(c *gin.Context) {
	person, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// Create serves POST /people.
func (h *PersonHandler) Create(c *gin.Context) {
	var req service.CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	person, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, person)
}

// Update serves PUT /people/:id.
func (h *PersonHandler) Update(c *gin.Context) {
	var req service.UpdatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	person, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// Delete serves DELETE /people/:id.
func (h *PersonHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
