package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
	"github.com/dorot-app/dorot-api/pkg/response"
)

type subscriptionService interface {
	List(ctx context.Context, subscriberID string) ([]models.Subscription, error)
	Create(ctx context.Context, subscriberID, personID string) (*models.Subscription, error)
	Delete(ctx context.Context, id string) error
}

// SubscriptionHandler exposes subscription endpoints.
type SubscriptionHandler struct {
	service subscriptionService
}

// NewSubscriptionHandler constructs the handler.
func NewSubscriptionHandler(service subscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{service: service}
}

type createSubscriptionRequest struct {
	SubscriberID string `json:"subscriber_id"`
	PersonID     string `json:"person_id"`
}

// List serves GET /subscriptions?subscriber_id=.
func (h *SubscriptionHandler) List(c *gin.Context) {
	subs, err := h.service.List(c.Request.Context(), c.Query("subscriber_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subs, nil)
}

// Create serves POST /subscriptions.
func (h *SubscriptionHandler) Create(c *gin.Context) {
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	sub, err := h.service.Create(c.Request.Context(), req.SubscriberID, req.PersonID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sub)
}

// Delete serves DELETE /subscriptions/:id.
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
