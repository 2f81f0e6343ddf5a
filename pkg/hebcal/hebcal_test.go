package hebcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsLeapYear(t *testing.T) {
	// Positions 3, 6, 8, 11, 14, 17, 19 of the Metonic cycle are leap.
	assert.True(t, IsLeapYear(5784))
	assert.False(t, IsLeapYear(5785))
	assert.False(t, IsLeapYear(5786))
	assert.True(t, IsLeapYear(5787))

	leaps := 0
	for y := 5778; y < 5778+19; y++ {
		if IsLeapYear(y) {
			leaps++
		}
	}
	assert.Equal(t, 7, leaps)
}

func TestMonthsInYear(t *testing.T) {
	assert.Equal(t, 13, MonthsInYear(5784))
	assert.Equal(t, 12, MonthsInYear(5785))
	assert.Equal(t, Adar, LastMonthOfYear(5785))
	assert.Equal(t, AdarII, LastMonthOfYear(5787))
}

func TestDaysInYear(t *testing.T) {
	assert.Equal(t, 355, DaysInYear(5785))
	assert.Equal(t, 354, DaysInYear(5786))

	for y := 5700; y < 5800; y++ {
		n := DaysInYear(y)
		if IsLeapYear(y) {
			assert.Contains(t, []int{383, 384, 385}, n, "leap year %d", y)
		} else {
			assert.Contains(t, []int{353, 354, 355}, n, "common year %d", y)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	// Fixed-length months.
	assert.Equal(t, 30, DaysInMonth(5785, Nisan))
	assert.Equal(t, 29, DaysInMonth(5785, Iyar))
	assert.Equal(t, 29, DaysInMonth(5785, Elul))
	assert.Equal(t, 30, DaysInMonth(5785, Tishrei))

	// Adar has 30 days only as Adar I of a leap year.
	assert.Equal(t, 29, DaysInMonth(5785, Adar))
	assert.Equal(t, 30, DaysInMonth(5784, Adar))
	assert.Equal(t, 29, DaysInMonth(5784, AdarII))

	// Variable months: 5785 is complete (355 days), 5786 is regular (354).
	assert.Equal(t, 30, DaysInMonth(5785, Cheshvan))
	assert.Equal(t, 30, DaysInMonth(5785, Kislev))
	assert.Equal(t, 29, DaysInMonth(5786, Cheshvan))
	assert.Equal(t, 30, DaysInMonth(5786, Kislev))
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Adar", MonthName(5785, Adar))
	assert.Equal(t, "Adar I", MonthName(5784, Adar))
	assert.Equal(t, "Adar II", MonthName(5784, AdarII))
	assert.Equal(t, "Tishrei", MonthName(5785, Tishrei))
}

func TestHDateValid(t *testing.T) {
	assert.True(t, HDate{Year: 5785, Month: Cheshvan, Day: 30}.Valid())
	assert.False(t, HDate{Year: 5786, Month: Cheshvan, Day: 30}.Valid())
	assert.False(t, HDate{Year: 5785, Month: AdarII, Day: 1}.Valid())
	assert.True(t, HDate{Year: 5784, Month: AdarII, Day: 29}.Valid())
	assert.False(t, HDate{Year: 5784, Month: AdarII, Day: 30}.Valid())
	assert.False(t, HDate{Year: 5785, Month: Nisan, Day: 0}.Valid())
	assert.False(t, HDate{Year: 0, Month: Nisan, Day: 1}.Valid())
}

func TestHDateNext(t *testing.T) {
	assert.Equal(t, HDate{Year: 5785, Month: Av, Day: 11}, HDate{Year: 5785, Month: Av, Day: 10}.Next())

	// Month rollover.
	assert.Equal(t, HDate{Year: 5785, Month: Iyar, Day: 1}, HDate{Year: 5785, Month: Nisan, Day: 30}.Next())

	// Year rollover happens at the end of Elul, not at the end of Adar.
	assert.Equal(t, HDate{Year: 5786, Month: Tishrei, Day: 1}, HDate{Year: 5785, Month: Elul, Day: 29}.Next())
	assert.Equal(t, HDate{Year: 5785, Month: Nisan, Day: 1}, HDate{Year: 5785, Month: Adar, Day: 29}.Next())
	assert.Equal(t, HDate{Year: 5784, Month: Nisan, Day: 1}, HDate{Year: 5784, Month: AdarII, Day: 29}.Next())
	assert.Equal(t, HDate{Year: 5784, Month: AdarII, Day: 1}, HDate{Year: 5784, Month: Adar, Day: 30}.Next())
}

func TestHDateString(t *testing.T) {
	assert.Equal(t, "10 Av 5785", HDate{Year: 5785, Month: Av, Day: 10}.String())
	assert.Equal(t, "15 Adar II 5784", HDate{Year: 5784, Month: AdarII, Day: 15}.String())
}

func TestFromGregorianKnownDates(t *testing.T) {
	cases := []struct {
		gregorian time.Time
		hebrew    HDate
	}{
		{date(2025, time.September, 23), HDate{Year: 5786, Month: Tishrei, Day: 1}},
		{date(2024, time.October, 3), HDate{Year: 5785, Month: Tishrei, Day: 1}},
		{date(2025, time.April, 13), HDate{Year: 5785, Month: Nisan, Day: 15}},
		{date(2025, time.December, 15), HDate{Year: 5786, Month: Kislev, Day: 25}},
		{date(2026, time.March, 19), HDate{Year: 5786, Month: Nisan, Day: 1}},
		{date(1948, time.May, 14), HDate{Year: 5708, Month: Iyar, Day: 5}},
		{date(2000, time.January, 1), HDate{Year: 5760, Month: Tevet, Day: 23}},
		{date(2024, time.March, 25), HDate{Year: 5784, Month: AdarII, Day: 15}},
	}
	for _, tc := range cases {
		h, err := FromGregorian(tc.gregorian)
		require.NoError(t, err)
		assert.Equal(t, tc.hebrew, h, "gregorian %s", tc.gregorian.Format("2006-01-02"))

		back, err := tc.hebrew.Gregorian()
		require.NoError(t, err)
		assert.True(t, back.Equal(tc.gregorian), "hebrew %s", tc.hebrew)
	}
}

func TestFromGregorianIgnoresTimeOfDay(t *testing.T) {
	morning, err := FromGregorian(time.Date(2025, time.September, 23, 6, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	evening, err := FromGregorian(time.Date(2025, time.September, 23, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, morning, evening)
}

func TestRoundTripSpan(t *testing.T) {
	// Walk a stretch of days covering leap and common years, including the
	// 5784 leap year and the long/short month variations around it.
	day := date(2023, time.January, 1)
	end := date(2027, time.December, 31)
	var prev HDate
	for !day.After(end) {
		h, err := FromGregorian(day)
		require.NoError(t, err)
		require.True(t, h.Valid(), "invalid conversion for %s: %s", day.Format("2006-01-02"), h)

		back, err := h.Gregorian()
		require.NoError(t, err)
		require.True(t, back.Equal(day), "round trip mismatch for %s", day.Format("2006-01-02"))

		if prev != (HDate{}) {
			require.Equal(t, h, prev.Next(), "non-consecutive hebrew days at %s", day.Format("2006-01-02"))
		}
		prev = h
		day = day.AddDate(0, 0, 1)
	}
}

func TestFromGregorianOutOfRange(t *testing.T) {
	_, err := FromGregorian(time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestGregorianRejectsInvalidDate(t *testing.T) {
	_, err := HDate{Year: 5786, Month: Cheshvan, Day: 30}.Gregorian()
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = HDate{Year: 5785, Month: AdarII, Day: 10}.Gregorian()
	assert.ErrorIs(t, err, ErrOutOfRange)
}
