package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
	"github.com/dorot-app/dorot-api/pkg/hebcal"
)

const sourceDateLayout = "2006-01-02"

type personSnapshotRepository interface {
	All(ctx context.Context) ([]models.Person, error)
}

type customEventSnapshotRepository interface {
	All(ctx context.Context) ([]models.CustomEvent, error)
}

type upcomingEventRepository interface {
	ReplaceWindow(ctx context.Context, start, end time.Time, events []models.UpcomingEvent) error
	List(ctx context.Context, filter models.UpcomingFilter) ([]models.UpcomingEvent, int, error)
}

type upcomingCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// UpcomingService derives the upcoming-events cache from person and custom
// event records and serves range queries over it.
type UpcomingService struct {
	persons    personSnapshotRepository
	events     customEventSnapshotRepository
	upcoming   upcomingEventRepository
	cache      upcomingCache
	metrics    *MetricsService
	windowDays int
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewUpcomingService constructs the service. cache and metrics may be nil.
func NewUpcomingService(
	persons personSnapshotRepository,
	events customEventSnapshotRepository,
	upcoming upcomingEventRepository,
	cache upcomingCache,
	metrics *MetricsService,
	windowDays int,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *UpcomingService {
	if windowDays <= 0 {
		windowDays = 60
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UpcomingService{
		persons:    persons,
		events:     events,
		upcoming:   upcoming,
		cache:      cache,
		metrics:    metrics,
		windowDays: windowDays,
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// RefreshSummary reports one refresh cycle.
type RefreshSummary struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Computed    int       `json:"computed"`
	Skipped     int       `json:"skipped"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// Refresh recomputes the look-ahead window [today, today+windowDays] and
// swaps it into the cache table atomically. Running it twice for the same
// today and input set yields the same rows. Individual records with
// unparseable dates are skipped and reported; only an unavailable store is
// fatal.
func (s *UpcomingService) Refresh(ctx context.Context, today time.Time) (*RefreshSummary, error) {
	start := time.Now()
	day := dateOnly(today)
	end := day.AddDate(0, 0, s.windowDays)

	persons, err := s.persons.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "person snapshot unavailable")
	}
	events, err := s.events.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "custom event snapshot unavailable")
	}

	summary := &RefreshSummary{WindowStart: day, WindowEnd: end}
	computed := make(map[string]models.UpcomingEvent)

	record := func(ev models.UpcomingEvent) {
		// Last write wins; inputs are deterministic for a fixed today.
		key := fmt.Sprintf("%s|%s|%s", ev.PersonID, ev.EventType, ev.OccursOn.Format(sourceDateLayout))
		computed[key] = ev
	}

	for _, p := range persons {
		occ, err := s.resolve(p.Birthday, p.BirthdayAfterSunset, hebcal.KindBirthday, day, end)
		if err != nil {
			summary.Skipped++
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("person %s: birthday: %v", p.ID, err))
		} else if occ != nil {
			record(models.UpcomingEvent{
				PersonID:   p.ID,
				EventType:  models.EventTypeBirthday,
				Name:       p.FullName(),
				OccursOn:   occ.Gregorian,
				HebrewDate: occ.Hebrew.String(),
				SourceDate: p.Birthday,
				Years:      occ.Years,
				ComputedAt: day,
			})
		}

		if p.DateOfPassing == nil {
			continue
		}
		occ, err = s.resolve(*p.DateOfPassing, p.PassingAfterSunset, hebcal.KindYahrzeit, day, end)
		if err != nil {
			summary.Skipped++
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("person %s: date of passing: %v", p.ID, err))
		} else if occ != nil {
			record(models.UpcomingEvent{
				PersonID:   p.ID,
				EventType:  models.EventTypeYahrzeit,
				Name:       p.FullName(),
				OccursOn:   occ.Gregorian,
				HebrewDate: occ.Hebrew.String(),
				SourceDate: *p.DateOfPassing,
				Years:      occ.Years,
				ComputedAt: day,
			})
		}
	}

	for _, ev := range events {
		kind := hebcal.KindAnniversary
		if ev.EventType == models.EventTypeYahrzeit {
			kind = hebcal.KindYahrzeit
		}
		occ, err := s.resolve(ev.Date, ev.AfterSunset, kind, day, end)
		if err != nil {
			summary.Skipped++
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("custom event %s: %v", ev.ID, err))
			continue
		}
		if occ == nil {
			continue
		}
		name := string(ev.EventType)
		if ev.Name != nil && *ev.Name != "" {
			name = *ev.Name
		}
		eventID := ev.ID
		record(models.UpcomingEvent{
			PersonID:        ev.PersonID,
			RelatedPersonID: ev.RelatedPersonID,
			CustomEventID:   &eventID,
			EventType:       ev.EventType,
			Name:            name,
			OccursOn:        occ.Gregorian,
			HebrewDate:      occ.Hebrew.String(),
			SourceDate:      ev.Date,
			Years:           occ.Years,
			ComputedAt:      day,
		})
	}

	rows := make([]models.UpcomingEvent, 0, len(computed))
	for _, ev := range computed {
		rows = append(rows, ev)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].OccursOn.Equal(rows[j].OccursOn) {
			return rows[i].OccursOn.Before(rows[j].OccursOn)
		}
		if rows[i].PersonID != rows[j].PersonID {
			return rows[i].PersonID < rows[j].PersonID
		}
		return rows[i].EventType < rows[j].EventType
	})

	if err := s.upcoming.ReplaceWindow(ctx, day, end, rows); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace upcoming window")
	}
	summary.Computed = len(rows)

	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "upcoming:*"); err != nil {
			s.logger.Sugar().Warnw("failed to invalidate upcoming cache", "error", err)
		}
	}
	if s.metrics != nil {
		s.metrics.ObserveRefresh(summary.Computed, summary.Skipped, time.Since(start))
	}

	for _, w := range summary.Warnings {
		s.logger.Sugar().Warnw("skipped malformed record", "detail", w)
	}
	s.logger.Sugar().Infow("upcoming window refreshed",
		"start", day.Format(sourceDateLayout),
		"end", end.Format(sourceDateLayout),
		"computed", summary.Computed,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// resolve parses a stored source date and finds its next occurrence in the
// window. A nil occurrence with nil error means nothing falls inside the
// window.
func (s *UpcomingService) resolve(raw string, afterSunset bool, kind hebcal.Kind, ref, end time.Time) (*hebcal.Occurrence, error) {
	original, err := time.Parse(sourceDateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("unparseable date %q", raw)
	}
	occ, err := hebcal.NextOccurrence(original, afterSunset, kind, ref, end)
	if err != nil {
		if errors.Is(err, hebcal.ErrOutOfRange) {
			return nil, fmt.Errorf("date %q outside supported calendar range", raw)
		}
		return nil, err
	}
	return occ, nil
}

// UpcomingListRequest describes an upcoming-events query.
type UpcomingListRequest struct {
	Period       models.PeriodToken
	Start        *time.Time
	End          *time.Time
	Types        []string
	SubscriberID string
	Page         int
	PageSize     int
}

type cachedUpcomingList struct {
	Events     []models.UpcomingEvent `json:"events"`
	Pagination models.Pagination      `json:"pagination"`
}

// List resolves the requested period and returns cached upcoming events in
// that range.
func (s *UpcomingService) List(ctx context.Context, req UpcomingListRequest, today time.Time) ([]models.UpcomingEvent, *models.DateRange, *models.Pagination, error) {
	token := req.Period
	if token == "" {
		token = models.PeriodThisWeek
	}
	rng, err := ResolvePeriod(token, today, req.Start, req.End)
	if err != nil {
		return nil, nil, nil, err
	}

	types := make([]models.EventType, 0, len(req.Types))
	for _, raw := range req.Types {
		t := models.EventType(strings.ToLower(strings.TrimSpace(raw)))
		if t == "" {
			continue
		}
		if t != models.EventTypeBirthday && t != models.EventTypeYahrzeit && !models.ValidEventType(t) {
			return nil, nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown event type %q", raw))
		}
		types = append(types, t)
	}

	filter := models.UpcomingFilter{
		Start:        rng.Start,
		End:          rng.End,
		Types:        types,
		SubscriberID: req.SubscriberID,
		Page:         req.Page,
		PageSize:     req.PageSize,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 100
	}

	key := listCacheKey(filter)
	if s.cache != nil {
		var cached cachedUpcomingList
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached.Events, &rng, &cached.Pagination, nil
		}
	}

	events, total, err := s.upcoming.List(ctx, filter)
	if err != nil {
		return nil, nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list upcoming events")
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}

	if s.cache != nil {
		payload := cachedUpcomingList{Events: events, Pagination: *pagination}
		if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
			s.logger.Sugar().Warnw("failed to cache upcoming list", "error", err)
		}
	}
	return events, &rng, pagination, nil
}

func listCacheKey(f models.UpcomingFilter) string {
	types := make([]string, len(f.Types))
	for i, t := range f.Types {
		types[i] = string(t)
	}
	return fmt.Sprintf("upcoming:%s:%s:%s:%s:%d:%d",
		f.Start.Format(sourceDateLayout),
		f.End.Format(sourceDateLayout),
		strings.Join(types, ","),
		f.SubscriberID,
		f.Page,
		f.PageSize,
	)
}
