package service

import (
	"time"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
	"github.com/dorot-app/dorot-api/pkg/hebcal"
)

// ResolvePeriod maps a named period token to a concrete inclusive Gregorian
// date range relative to today, with Hebrew-formatted boundaries. Weeks run
// Sunday through Saturday. The custom token requires explicit start and end.
func ResolvePeriod(token models.PeriodToken, today time.Time, start, end *time.Time) (models.DateRange, error) {
	day := dateOnly(today)

	var s, e time.Time
	switch token {
	case models.PeriodThisWeek:
		s = day.AddDate(0, 0, -int(day.Weekday()))
		e = s.AddDate(0, 0, 6)
	case models.PeriodNextWeek:
		s = day.AddDate(0, 0, 7-int(day.Weekday()))
		e = s.AddDate(0, 0, 6)
	case models.PeriodThisMonth:
		s = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		e = s.AddDate(0, 1, -1)
	case models.PeriodNextMonth:
		s = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		e = s.AddDate(0, 1, -1)
	case models.PeriodThisHebrewMonth:
		h, err := hebcal.FromGregorian(day)
		if err != nil {
			return models.DateRange{}, appErrors.Clone(appErrors.ErrOutOfRange, "")
		}
		return hebrewMonthRange(h.Year, h.Month)
	case models.PeriodNextHebrewMonth:
		h, err := hebcal.FromGregorian(day)
		if err != nil {
			return models.DateRange{}, appErrors.Clone(appErrors.ErrOutOfRange, "")
		}
		// The day after the last day of the current month is the 1st of the
		// next month, with year rollover handled by the calendar.
		next := hebcal.HDate{Year: h.Year, Month: h.Month, Day: hebcal.DaysInMonth(h.Year, h.Month)}.Next()
		return hebrewMonthRange(next.Year, next.Month)
	case models.PeriodCustom:
		if start == nil || end == nil {
			return models.DateRange{}, appErrors.Clone(appErrors.ErrInvalidPeriod, "custom period requires start and end")
		}
		if end.Before(*start) {
			return models.DateRange{}, appErrors.Clone(appErrors.ErrInvalidPeriod, "start must not be after end")
		}
		s, e = dateOnly(*start), dateOnly(*end)
	default:
		return models.DateRange{}, appErrors.Clone(appErrors.ErrInvalidPeriod, "unknown period token")
	}

	return rangeWithHebrew(s, e)
}

func hebrewMonthRange(year, month int) (models.DateRange, error) {
	first := hebcal.HDate{Year: year, Month: month, Day: 1}
	last := hebcal.HDate{Year: year, Month: month, Day: hebcal.DaysInMonth(year, month)}
	s, err := first.Gregorian()
	if err != nil {
		return models.DateRange{}, appErrors.Clone(appErrors.ErrOutOfRange, "")
	}
	e, err := last.Gregorian()
	if err != nil {
		return models.DateRange{}, appErrors.Clone(appErrors.ErrOutOfRange, "")
	}
	return models.DateRange{Start: s, End: e, HebrewStart: first.String(), HebrewEnd: last.String()}, nil
}

func rangeWithHebrew(s, e time.Time) (models.DateRange, error) {
	hs, err := hebcal.FromGregorian(s)
	if err != nil {
		return models.DateRange{}, appErrors.Clone(appErrors.ErrOutOfRange, "")
	}
	he, err := hebcal.FromGregorian(e)
	if err != nil {
		return models.DateRange{}, appErrors.Clone(appErrors.ErrOutOfRange, "")
	}
	return models.DateRange{Start: s, End: e, HebrewStart: hs.String(), HebrewEnd: he.String()}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
