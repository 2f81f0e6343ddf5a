package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dorot-app/dorot-api/internal/models"
	"github.com/dorot-app/dorot-api/internal/service"
	"github.com/dorot-app/dorot-api/pkg/response"
)

type feedService interface {
	ICS(ctx context.Context, start, end time.Time) ([]byte, error)
	Export(ctx context.Context, format string, start, end time.Time) ([]byte, string, error)
}

// FeedHandler serves the iCalendar feed and tabular exports of the upcoming
// window.
type FeedHandler struct {
	service feedService
	now     func() time.Time
}

// NewFeedHandler constructs the handler.
func NewFeedHandler(service feedService) *FeedHandler {
	return &FeedHandler{service: service, now: func() time.Time { return time.Now().UTC() }}
}

// ICS serves GET /upcoming/feed.ics.
func (h *FeedHandler) ICS(c *gin.Context) {
	rng, err := h.resolveRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := h.service.ICS(c.Request.Context(), rng.Start, rng.End)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="upcoming.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", payload)
}

// Export serves GET /upcoming/export?format=csv|pdf.
func (h *FeedHandler) Export(c *gin.Context) {
	rng, err := h.resolveRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	format := c.DefaultQuery("format", service.ExportFormatCSV)
	payload, contentType, err := h.service.Export(c.Request.Context(), format, rng.Start, rng.End)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="upcoming.%s"`, format))
	c.Data(http.StatusOK, contentType, payload)
}

func (h *FeedHandler) resolveRange(c *gin.Context) (models.DateRange, error) {
	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		return models.DateRange{}, err
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		return models.DateRange{}, err
	}
	token := models.PeriodToken(c.DefaultQuery("period", string(models.PeriodThisMonth)))
	return service.ResolvePeriod(token, h.now(), start, end)
}
