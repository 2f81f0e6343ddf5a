package models

import "time"

// PeriodToken names a pre-defined date range resolved relative to a
// reference date.
type PeriodToken string

const (
	PeriodThisWeek        PeriodToken = "this_week"
	PeriodNextWeek        PeriodToken = "next_week"
	PeriodThisMonth       PeriodToken = "this_month"
	PeriodNextMonth       PeriodToken = "next_month"
	PeriodThisHebrewMonth PeriodToken = "this_hebrew_month"
	PeriodNextHebrewMonth PeriodToken = "next_hebrew_month"
	PeriodCustom          PeriodToken = "custom"
)

// DateRange is an inclusive Gregorian date range with Hebrew-formatted
// boundaries for display.
type DateRange struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	HebrewStart string    `json:"hebrew_start"`
	HebrewEnd   string    `json:"hebrew_end"`
}
