// Package hebcal implements bidirectional conversion between the Gregorian
// and Hebrew (lunisolar) calendars, plus the recurrence rules for annual
// observances (birthdays, anniversaries, yahrzeits).
//
// Months follow the numbering of Calendrical Calculations: Nisan=1 through
// Elul=6, Tishrei=7 through Adar=12, with Adar II=13 existing only in leap
// years. The year number increments at 1 Tishrei.
package hebcal

import (
	"errors"
	"fmt"
	"time"
)

// Hebrew month numbers.
const (
	Nisan    = 1
	Iyar     = 2
	Sivan    = 3
	Tammuz   = 4
	Av       = 5
	Elul     = 6
	Tishrei  = 7
	Cheshvan = 8
	Kislev   = 9
	Tevet    = 10
	Shevat   = 11
	Adar     = 12
	AdarII   = 13
)

// ErrOutOfRange reports a date outside the supported conversion span.
var ErrOutOfRange = errors.New("hebcal: date out of supported range")

// Supported Gregorian span. The Hebrew span follows from it.
const (
	minGregorianYear = 1
	maxGregorianYear = 9999
)

// HDate is a date in the Hebrew calendar. It is a pure value: produced by
// conversion, never mutated.
type HDate struct {
	Year  int
	Month int
	Day   int
}

var monthNames = [...]string{
	Nisan:    "Nisan",
	Iyar:     "Iyar",
	Sivan:    "Sivan",
	Tammuz:   "Tammuz",
	Av:       "Av",
	Elul:     "Elul",
	Tishrei:  "Tishrei",
	Cheshvan: "Cheshvan",
	Kislev:   "Kislev",
	Tevet:    "Tevet",
	Shevat:   "Shevat",
	Adar:     "Adar",
	AdarII:   "Adar II",
}

// IsLeapYear reports whether Hebrew year y has 13 months. Seven years of
// every 19-year Metonic cycle (positions 3, 6, 8, 11, 14, 17, 19) are leap.
func IsLeapYear(y int) bool {
	return (7*y+1)%19 < 7
}

// MonthsInYear returns 12 or 13.
func MonthsInYear(y int) int {
	if IsLeapYear(y) {
		return 13
	}
	return 12
}

// LastMonthOfYear returns Adar in a common year and Adar II in a leap year.
func LastMonthOfYear(y int) int {
	if IsLeapYear(y) {
		return AdarII
	}
	return Adar
}

// MonthName returns the display name of month m in year y. Adar is rendered
// as "Adar I" when the year is leap.
func MonthName(y, m int) string {
	if m == Adar && IsLeapYear(y) {
		return "Adar I"
	}
	if m >= Nisan && m <= AdarII {
		return monthNames[m]
	}
	return fmt.Sprintf("month %d", m)
}

// elapsedDays returns the number of days from the Hebrew epoch to the mean
// start of Hebrew year y, adjusted by the four postponement rules (dechiyot)
// so that 1 Tishrei never falls on Sunday, Wednesday or Friday.
func elapsedDays(y int) int {
	monthsElapsed := 235*((y-1)/19) + 12*((y-1)%19) + (7*((y-1)%19)+1)/19
	partsElapsed := 204 + 793*(monthsElapsed%1080)
	hoursElapsed := 5 + 12*monthsElapsed + 793*(monthsElapsed/1080) + partsElapsed/1080
	day := 1 + 29*monthsElapsed + hoursElapsed/24
	parts := 1080*(hoursElapsed%24) + partsElapsed%1080

	if parts >= 19440 ||
		(day%7 == 2 && parts >= 9924 && !IsLeapYear(y)) ||
		(day%7 == 1 && parts >= 16789 && IsLeapYear(y-1)) {
		day++
	}

	// 1 Tishrei may not fall on Sunday, Wednesday or Friday.
	if day%7 == 0 || day%7 == 3 || day%7 == 5 {
		day++
	}
	return day
}

// DaysInYear returns the length of Hebrew year y (353, 354, 355, 383, 384
// or 385 days).
func DaysInYear(y int) int {
	return elapsedDays(y+1) - elapsedDays(y)
}

// longCheshvan reports whether Cheshvan has 30 days in year y ("complete"
// year type).
func longCheshvan(y int) bool {
	return DaysInYear(y)%10 == 5
}

// shortKislev reports whether Kislev has 29 days in year y ("deficient"
// year type).
func shortKislev(y int) bool {
	return DaysInYear(y)%10 == 3
}

// DaysInMonth returns the length (29 or 30) of month m in Hebrew year y.
func DaysInMonth(y, m int) int {
	switch m {
	case Iyar, Tammuz, Elul, Tevet, AdarII:
		return 29
	case Adar:
		if !IsLeapYear(y) {
			return 29
		}
	case Cheshvan:
		if !longCheshvan(y) {
			return 29
		}
	case Kislev:
		if shortKislev(y) {
			return 29
		}
	}
	return 30
}

// Valid reports whether the date names an existing Hebrew calendar day.
func (h HDate) Valid() bool {
	if h.Year < 1 || h.Month < Nisan || h.Month > MonthsInYear(h.Year) {
		return false
	}
	return h.Day >= 1 && h.Day <= DaysInMonth(h.Year, h.Month)
}

// Next returns the following Hebrew calendar day, rolling over months and,
// at 29 Elul, the year.
func (h HDate) Next() HDate {
	if h.Day < DaysInMonth(h.Year, h.Month) {
		return HDate{Year: h.Year, Month: h.Month, Day: h.Day + 1}
	}
	switch h.Month {
	case Elul:
		return HDate{Year: h.Year + 1, Month: Tishrei, Day: 1}
	case LastMonthOfYear(h.Year):
		return HDate{Year: h.Year, Month: Nisan, Day: 1}
	}
	return HDate{Year: h.Year, Month: h.Month + 1, Day: 1}
}

// String renders the date as e.g. "10 Av 5785".
func (h HDate) String() string {
	return fmt.Sprintf("%d %s %d", h.Day, MonthName(h.Year, h.Month), h.Year)
}

// Fixed day numbers (rata die, day 1 = 1 January 1 CE Gregorian).
const (
	hebrewEpoch = -1373429 // aligns elapsedDays with fixed dates: 1 Tishrei A.M. 1 = day -1373427
	rdUnixEpoch = 719163   // 1 January 1970
)

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// rdFromTime maps the calendar date of t (its location's year, month, day)
// to a fixed day number.
func rdFromTime(t time.Time) int {
	y, m, d := t.Date()
	// Noon keeps the division clear of the midnight boundary.
	secs := time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Unix()
	return int(floorDiv(secs, 86400)) + rdUnixEpoch
}

// timeFromRD returns midnight UTC of the given fixed day number.
func timeFromRD(rd int) time.Time {
	return time.Unix(int64(rd-rdUnixEpoch)*86400, 0).UTC()
}

// rdFromHebrew maps a Hebrew date to a fixed day number. Days beyond the end
// of a month overflow arithmetically into the following month; callers that
// need strict dates validate first.
func rdFromHebrew(h HDate) int {
	days := h.Day
	if h.Month < Tishrei {
		// Spring months: count the whole autumn/winter half first.
		for m := Tishrei; m <= MonthsInYear(h.Year); m++ {
			days += DaysInMonth(h.Year, m)
		}
		for m := Nisan; m < h.Month; m++ {
			days += DaysInMonth(h.Year, m)
		}
	} else {
		for m := Tishrei; m < h.Month; m++ {
			days += DaysInMonth(h.Year, m)
		}
	}
	return hebrewEpoch + elapsedDays(h.Year) + days
}

func hebrewFromRD(rd int) HDate {
	approx := (rd - hebrewEpoch) / 366
	year := approx
	for rd >= rdFromHebrew(HDate{Year: year + 1, Month: Tishrei, Day: 1}) {
		year++
	}
	month := Tishrei
	if rd >= rdFromHebrew(HDate{Year: year, Month: Nisan, Day: 1}) {
		month = Nisan
	}
	for rd > rdFromHebrew(HDate{Year: year, Month: month, Day: DaysInMonth(year, month)}) {
		month++
	}
	day := rd - rdFromHebrew(HDate{Year: year, Month: month, Day: 1}) + 1
	return HDate{Year: year, Month: month, Day: day}
}

// FromGregorian converts a Gregorian date (the calendar date of t in its
// location) to its Hebrew equivalent.
func FromGregorian(t time.Time) (HDate, error) {
	if t.Year() < minGregorianYear || t.Year() > maxGregorianYear {
		return HDate{}, ErrOutOfRange
	}
	return hebrewFromRD(rdFromTime(t)), nil
}

// Gregorian converts the Hebrew date back to a Gregorian one (midnight UTC).
// The date must name an existing calendar day.
func (h HDate) Gregorian() (time.Time, error) {
	if !h.Valid() {
		return time.Time{}, ErrOutOfRange
	}
	g := timeFromRD(rdFromHebrew(h))
	if g.Year() < minGregorianYear || g.Year() > maxGregorianYear {
		return time.Time{}, ErrOutOfRange
	}
	return g, nil
}
