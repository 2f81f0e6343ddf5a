package hebcal

import "time"

// Kind selects the anniversary rule applied when resolving a recurrence.
// Yahrzeits follow the halachic adjustment table; every other kind uses the
// plain same-month/same-day rule.
type Kind string

const (
	KindBirthday    Kind = "birthday"
	KindAnniversary Kind = "anniversary"
	KindYahrzeit    Kind = "yahrzeit"
)

// Occurrence is one resolved annual recurrence of an event.
type Occurrence struct {
	Gregorian time.Time
	Hebrew    HDate
	// Years elapsed since the original event: age, years married, or years
	// since passing, depending on the event kind.
	Years int
}

// ApplySunset shifts a Hebrew date forward one day when the underlying
// Gregorian timestamp fell after sunset, i.e. already inside the next
// halachic day.
func ApplySunset(d HDate, afterSunset bool) HDate {
	if !afterSunset {
		return d
	}
	return d.Next()
}

// anniversaryRD returns the fixed day of the anniversary of orig in Hebrew
// year y. Events in the last month of the year (Adar, or Adar II in leap
// years) track the last month of the anniversary year; otherwise day 30 of a
// month that has only 29 days in year y overflows to the 1st of the next
// month.
func anniversaryRD(orig HDate, y int) int {
	if orig.Month == LastMonthOfYear(orig.Year) {
		return rdFromHebrew(HDate{Year: y, Month: LastMonthOfYear(y), Day: orig.Day})
	}
	return rdFromHebrew(HDate{Year: y, Month: orig.Month, Day: 1}) + orig.Day - 1
}

// yahrzeitRD returns the fixed day on which the yahrzeit of a death on orig
// is observed in Hebrew year y, per the conventional rule:
//
//   - death on 30 Cheshvan, when the first anniversary year had a short
//     Cheshvan: observed on the day before 1 Kislev;
//   - death on 30 Kislev, when the first anniversary year had a short
//     Kislev: observed on the day before 1 Tevet;
//   - death in Adar II: observed in the last month of year y (Adar II in
//     leap years, Adar otherwise);
//   - death on 30 Adar I, when year y is not leap: observed on 30 Shevat;
//   - otherwise the original month and day, with day 30 overflowing to the
//     1st of the next month when the month is short in year y.
func yahrzeitRD(orig HDate, y int) int {
	switch {
	case orig.Month == Cheshvan && orig.Day == 30 && !longCheshvan(orig.Year+1):
		return rdFromHebrew(HDate{Year: y, Month: Kislev, Day: 1}) - 1
	case orig.Month == Kislev && orig.Day == 30 && shortKislev(orig.Year+1):
		return rdFromHebrew(HDate{Year: y, Month: Tevet, Day: 1}) - 1
	case orig.Month == AdarII:
		return rdFromHebrew(HDate{Year: y, Month: LastMonthOfYear(y), Day: orig.Day})
	case orig.Month == Adar && orig.Day == 30 && !IsLeapYear(y):
		return rdFromHebrew(HDate{Year: y, Month: Shevat, Day: 30})
	default:
		return rdFromHebrew(HDate{Year: y, Month: orig.Month, Day: 1}) + orig.Day - 1
	}
}

// NextOccurrence resolves the next annual recurrence of an event that
// originally happened on original (Gregorian), searching the window
// [ref, windowEnd]. Candidates are taken from the Hebrew year containing ref
// and the year after it; the earliest in-window candidate wins. A nil result
// means no occurrence falls inside the window, which is a normal outcome,
// including when windowEnd precedes ref.
func NextOccurrence(original time.Time, afterSunset bool, kind Kind, ref, windowEnd time.Time) (*Occurrence, error) {
	orig, err := FromGregorian(original)
	if err != nil {
		return nil, err
	}
	orig = ApplySunset(orig, afterSunset)

	refH, err := FromGregorian(ref)
	if err != nil {
		return nil, err
	}

	refRD := rdFromTime(ref)
	endRD := rdFromTime(windowEnd)

	for offset := 0; offset <= 1; offset++ {
		year := refH.Year + offset
		var rd int
		if kind == KindYahrzeit {
			rd = yahrzeitRD(orig, year)
		} else {
			rd = anniversaryRD(orig, year)
		}
		if rd < refRD || rd > endRD {
			continue
		}
		return &Occurrence{
			Gregorian: timeFromRD(rd),
			Hebrew:    hebrewFromRD(rd),
			Years:     year - orig.Year,
		}, nil
	}
	return nil, nil
}
