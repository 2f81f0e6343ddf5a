package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dorot-app/dorot-api/internal/models"
	"github.com/dorot-app/dorot-api/internal/service"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
	"github.com/dorot-app/dorot-api/pkg/jobs"
	"github.com/dorot-app/dorot-api/pkg/response"
)

type upcomingService interface {
	List(ctx context.Context, req service.UpcomingListRequest, today time.Time) ([]models.UpcomingEvent, *models.DateRange, *models.Pagination, error)
}

type refreshEnqueuer interface {
	Enqueue(job jobs.Job) error
}

// UpcomingHandler exposes the upcoming-events query and refresh endpoints.
type UpcomingHandler struct {
	service upcomingService
	queue   refreshEnqueuer
	now     func() time.Time
}

// NewUpcomingHandler constructs the handler.
func NewUpcomingHandler(service upcomingService, queue refreshEnqueuer) *UpcomingHandler {
	return &UpcomingHandler{service: service, queue: queue, now: func() time.Time { return time.Now().UTC() }}
}

// List serves GET /upcoming. The period token bounds the query; custom
// periods take explicit start/end dates.
func (h *UpcomingHandler) List(c *gin.Context) {
	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		response.Error(c, err)
		return
	}

	req := service.UpcomingListRequest{
		Period:       models.PeriodToken(c.Query("period")),
		Start:        start,
		End:          end,
		SubscriberID: c.Query("subscriber_id"),
		Page:         intQuery(c, "page", 1),
		PageSize:     intQuery(c, "page_size", 100),
	}
	if raw := c.Query("types"); raw != "" {
		req.Types = strings.Split(raw, ",")
	}

	events, rng, pagination, err := h.service.List(c.Request.Context(), req, h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"range": rng,
	}
	response.JSON(c, http.StatusOK, events, pagination, meta)
}

// Refresh serves POST /upcoming/refresh by queueing an asynchronous window
// recomputation.
func (h *UpcomingHandler) Refresh(c *gin.Context) {
	if h.queue == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "refresh queue unavailable"))
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Payload: h.now()}
	if err := h.queue.Enqueue(job); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrConflict.Code, http.StatusServiceUnavailable, "refresh queue is full"))
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"job_id": job.ID}, nil)
}
