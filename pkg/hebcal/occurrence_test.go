package hebcal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySunset(t *testing.T) {
	d := HDate{Year: 5785, Month: Av, Day: 10}
	assert.Equal(t, d, ApplySunset(d, false))
	assert.Equal(t, HDate{Year: 5785, Month: Av, Day: 11}, ApplySunset(d, true))

	// After sunset at the end of Elul is already the next Hebrew year.
	eve := HDate{Year: 5785, Month: Elul, Day: 29}
	assert.Equal(t, HDate{Year: 5786, Month: Tishrei, Day: 1}, ApplySunset(eve, true))
}

func TestNextOccurrenceBirthday(t *testing.T) {
	// Born 1 January 2000 = 23 Tevet 5760.
	occ, err := NextOccurrence(date(2000, time.January, 1), false, KindBirthday,
		date(2025, time.December, 1), date(2026, time.January, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2026, time.January, 12)))
	assert.Equal(t, HDate{Year: 5786, Month: Tevet, Day: 23}, occ.Hebrew)
	assert.Equal(t, 26, occ.Years)
}

func TestNextOccurrenceBirthdayAfterSunset(t *testing.T) {
	// A birth after sunset on 1 January 2000 counts as 24 Tevet.
	occ, err := NextOccurrence(date(2000, time.January, 1), true, KindBirthday,
		date(2025, time.December, 1), date(2026, time.January, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2026, time.January, 13)))
	assert.Equal(t, HDate{Year: 5786, Month: Tevet, Day: 24}, occ.Hebrew)
}

func TestNextOccurrenceFromNewYear(t *testing.T) {
	// Born 21 July 2010 = 10 Av 5770. From Rosh Hashana 5786 with a
	// thirteen-month window the resolver finds the 5786 occurrence.
	occ, err := NextOccurrence(date(2010, time.July, 21), false, KindBirthday,
		date(2025, time.September, 23), date(2026, time.October, 23))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2026, time.July, 24)))
	assert.Equal(t, HDate{Year: 5786, Month: Av, Day: 10}, occ.Hebrew)
	assert.Equal(t, 16, occ.Years)
	assert.False(t, occ.Gregorian.Before(date(2025, time.September, 23)))
	assert.False(t, occ.Gregorian.After(date(2026, time.October, 23)))
}

func TestNextOccurrenceBirthdayAdarIICollapse(t *testing.T) {
	// Birthdays in Adar II also track the last month of a common year.
	occ, err := NextOccurrence(date(2024, time.March, 25), false, KindBirthday,
		date(2026, time.January, 1), date(2026, time.December, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.Equal(t, HDate{Year: 5786, Month: Adar, Day: 15}, occ.Hebrew)
}

func TestNextOccurrenceSpansYearBoundary(t *testing.T) {
	// In late Elul 5786 the Tevet birthday has already passed for the year;
	// the resolver reaches into 5787.
	occ, err := NextOccurrence(date(2000, time.January, 1), false, KindBirthday,
		date(2026, time.August, 27), date(2027, time.January, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2027, time.January, 2)))
	assert.Equal(t, 27, occ.Years)
}

func TestNextOccurrenceOutsideWindow(t *testing.T) {
	occ, err := NextOccurrence(date(2000, time.January, 1), false, KindBirthday,
		date(2026, time.August, 27), date(2026, time.September, 30))
	require.NoError(t, err)
	assert.Nil(t, occ)
}

func TestNextOccurrenceEmptyWindow(t *testing.T) {
	occ, err := NextOccurrence(date(2000, time.January, 1), false, KindBirthday,
		date(2026, time.January, 1), date(2025, time.December, 1))
	require.NoError(t, err)
	assert.Nil(t, occ)
}

func TestNextOccurrenceYahrzeitPlain(t *testing.T) {
	// Death on 21 July 2010 = 10 Av 5770.
	occ, err := NextOccurrence(date(2010, time.July, 21), false, KindYahrzeit,
		date(2025, time.July, 1), date(2025, time.August, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2025, time.August, 4)))
	assert.Equal(t, HDate{Year: 5785, Month: Av, Day: 10}, occ.Hebrew)
	assert.Equal(t, 15, occ.Years)
}

func TestNextOccurrenceYahrzeitAdarII(t *testing.T) {
	// Death on 25 March 2024 = 15 Adar II 5784 (leap year). In a common year
	// the yahrzeit collapses to 15 Adar.
	occ, err := NextOccurrence(date(2024, time.March, 25), false, KindYahrzeit,
		date(2026, time.January, 1), date(2026, time.December, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2026, time.March, 4)))
	assert.Equal(t, HDate{Year: 5786, Month: Adar, Day: 15}, occ.Hebrew)
	assert.Equal(t, 2, occ.Years)
}

func TestNextOccurrenceYahrzeitAdarIIInLeapYear(t *testing.T) {
	// In the next leap year (5787) the same yahrzeit returns to Adar II.
	occ, err := NextOccurrence(date(2024, time.March, 25), false, KindYahrzeit,
		date(2026, time.June, 1), date(2027, time.June, 1))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2027, time.March, 24)))
	assert.Equal(t, HDate{Year: 5787, Month: AdarII, Day: 15}, occ.Hebrew)
	assert.Equal(t, 3, occ.Years)
}

func TestNextOccurrenceYahrzeitCheshvan30(t *testing.T) {
	// Death on 1 December 2024 = 30 Cheshvan 5785. The first anniversary year
	// 5786 has a 29-day Cheshvan, fixing the observance to the day before
	// 1 Kislev.
	occ, err := NextOccurrence(date(2024, time.December, 1), false, KindYahrzeit,
		date(2025, time.October, 1), date(2025, time.December, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2025, time.November, 20)))
	assert.Equal(t, HDate{Year: 5786, Month: Cheshvan, Day: 29}, occ.Hebrew)
	assert.Equal(t, 1, occ.Years)
}

func TestNextOccurrenceAnniversaryDay30Overflow(t *testing.T) {
	// For non-yahrzeit events a 30 Cheshvan origin overflows to 1 Kislev when
	// Cheshvan is short.
	occ, err := NextOccurrence(date(2024, time.December, 1), false, KindAnniversary,
		date(2025, time.October, 1), date(2025, time.December, 31))
	require.NoError(t, err)
	require.NotNil(t, occ)
	assert.True(t, occ.Gregorian.Equal(date(2025, time.November, 21)))
	assert.Equal(t, HDate{Year: 5786, Month: Kislev, Day: 1}, occ.Hebrew)
}

func TestNextOccurrenceOutOfRangeOriginal(t *testing.T) {
	_, err := NextOccurrence(time.Date(10000, time.January, 1, 0, 0, 0, 0, time.UTC),
		false, KindBirthday, date(2025, time.January, 1), date(2025, time.December, 31))
	assert.ErrorIs(t, err, ErrOutOfRange)
}
