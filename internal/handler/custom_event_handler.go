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

type customEventService interface {
	ListByPerson(ctx context.Context, personID string) ([]models.CustomEvent, error)
	Create(ctx context.Context, personID string, req service.CreateCustomEventRequest) (*models.CustomEvent, error)
	Update(ctx context.Context, id string, req service.UpdateCustomEventRequest) (*models.CustomEvent, error)
	Delete(ctx context.Context, id string) error
}

// CustomEventHandler exposes custom event endpoints.
type CustomEventHandler struct {
	service customEventService
}

// NewCustomEventHandler constructs the handler.
func NewCustomEventHandler(service customEventService) *CustomEventHandler {
	return &CustomEventHandler{service: service}
}

// ListByPerson serves GET /people/:id/events.
func (h *CustomEventHandler) ListByPerson(c *gin.Context) {
	events, err := h.service.ListByPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Create serves POST /people/:id/events.
func (h *CustomEventHandler) Create(c *gin.Context) {
	var req service.CreateCustomEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	event, err := h.service.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update serves PUT /events/:id.
func (h *CustomEventHandler) Update(c *gin.Context) {
	var req service.UpdateCustomEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	event, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete serves DELETE /events/:id.
func (h *CustomEventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
