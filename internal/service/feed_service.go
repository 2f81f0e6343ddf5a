package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
	"github.com/dorot-app/dorot-api/pkg/export"
)

const feedProductID = "-//Dorot//Upcoming Events//EN"

// Export formats served by the feed service.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type upcomingLister interface {
	List(ctx context.Context, filter models.UpcomingFilter) ([]models.UpcomingEvent, int, error)
}

// FeedService renders the cached upcoming-events window as an iCalendar
// feed or a tabular export.
type FeedService struct {
	upcoming upcomingLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewFeedService constructs the service.
func NewFeedService(upcoming upcomingLister, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{
		upcoming: upcoming,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ICS renders the events in [start, end] as an iCalendar document with one
// all-day VEVENT per occurrence.
func (s *FeedService) ICS(ctx context.Context, start, end time.Time) ([]byte, error) {
	events, err := s.load(ctx, start, end)
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, feedProductID)

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(start.UTC())

	for _, ev := range events {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, feedUID(ev))
		event.Props.SetText(ical.PropSummary, feedSummary(ev))
		event.Props.SetText(ical.PropDescription, fmt.Sprintf("%s (%s)", ev.HebrewDate, ev.EventType))

		dtStart := ical.NewProp(ical.PropDateTimeStart)
		dtStart.SetDate(ev.OccursOn)
		event.Props.Set(dtStart)
		event.Props.Set(stamp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode calendar feed")
	}
	return buf.Bytes(), nil
}

// Export renders the events in [start, end] as CSV or PDF bytes, returning
// the payload and its content type.
func (s *FeedService) Export(ctx context.Context, format string, start, end time.Time) ([]byte, string, error) {
	events, err := s.load(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Date", "Hebrew Date", "Type", "Name", "Years"},
	}
	for _, ev := range events {
		data.Rows = append(data.Rows, map[string]string{
			"Date":        ev.OccursOn.Format(sourceDateLayout),
			"Hebrew Date": ev.HebrewDate,
			"Type":        string(ev.EventType),
			"Name":        ev.Name,
			"Years":       fmt.Sprintf("%d", ev.Years),
		})
	}

	switch strings.ToLower(format) {
	case ExportFormatCSV:
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case ExportFormatPDF:
		title := fmt.Sprintf("Upcoming events %s to %s", start.Format(sourceDateLayout), end.Format(sourceDateLayout))
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *FeedService) load(ctx context.Context, start, end time.Time) ([]models.UpcomingEvent, error) {
	events, _, err := s.upcoming.List(ctx, models.UpcomingFilter{Start: start, End: end, PageSize: 500})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load upcoming events")
	}
	return events, nil
}

func feedUID(ev models.UpcomingEvent) string {
	return fmt.Sprintf("%s-%s-%s@dorot", ev.PersonID, ev.EventType, ev.OccursOn.Format("20060102"))
}

func feedSummary(ev models.UpcomingEvent) string {
	label := strings.ReplaceAll(string(ev.EventType), "_", " ")
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return fmt.Sprintf("%s: %s (%d)", label, ev.Name, ev.Years)
}
