package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dorot-app/dorot-api/internal/models"
	appErrors "github.com/dorot-app/dorot-api/pkg/errors"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriodThisWeek(t *testing.T) {
	// Wednesday 17 December 2025; weeks run Sunday through Saturday.
	rng, err := ResolvePeriod(models.PeriodThisWeek, day(2025, time.December, 17), nil, nil)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(day(2025, time.December, 14)))
	assert.True(t, rng.End.Equal(day(2025, time.December, 20)))
	assert.Equal(t, "24 Kislev 5786", rng.HebrewStart)
	assert.Equal(t, "30 Kislev 5786", rng.HebrewEnd)
}

func TestResolvePeriodThisWeekOnSunday(t *testing.T) {
	rng, err := ResolvePeriod(models.PeriodThisWeek, day(2025, time.December, 14), nil, nil)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(day(2025, time.December, 14)))
	assert.True(t, rng.End.Equal(day(2025, time.December, 20)))
}

func TestResolvePeriodNextWeek(t *testing.T) {
	rng, err := ResolvePeriod(models.PeriodNextWeek, day(2025, time.December, 17), nil, nil)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(day(2025, time.December, 21)))
	assert.True(t, rng.End.Equal(day(2025, time.December, 27)))
}

func TestResolvePeriodThisMonth(t *testing.T) {
	rng, err := ResolvePeriod(models.PeriodThisMonth, day(2025, time.December, 17), nil, nil)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(day(2025, time.December, 1)))
	assert.True(t, rng.End.Equal(day(2025, time.December, 31)))
	assert.Equal(t, "11 Kislev 5786", rng.HebrewStart)
	assert.Equal(t, "11 Tevet 5786", rng.HebrewEnd)
}

func TestResolvePeriodNextMonth(t *testing.T) {
	rng, err := ResolvePeriod(models.PeriodNextMonth, day(2025, time.December, 17), nil, nil)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(day(2026, time.January, 1)))
	assert.True(t, rng.End.Equal(day(2026, time.January, 31)))
}

func TestResolvePeriodThisHebrewMonth(t *testing.T) {
	// 17 December 2025 = 27 Kislev 5786; Kislev 5786 spans 21 Nov - 20 Dec.
	rng, err := ResolvePeriod(models.PeriodThisHebrewMonth, day(2025, time.December, 17), nil, nil)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(day(2025, time.November, 21)))
	assert.True(t, rng.End.Equal(day(2025, time.December, 20)))
	assert.Equal(t, "1 Kislev 5786", rng.HebrewStart)
	assert.Equal(t, "30 Kislev 5786", rng.HebrewEnd)
}

func TestResolvePeriodNextHebrewMonth(t *testing.T) {
	rng, err := ResolvePeriod(models.PeriodNextHebrewMonth, day(2025, time.December, 17), nil, nil)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(day(2025, time.December, 21)))
	assert.True(t, rng.End.Equal(day(2026, time.January, 18)))
	assert.Equal(t, "1 Tevet 5786", rng.HebrewStart)
	assert.Equal(t, "29 Tevet 5786", rng.HebrewEnd)
}

func TestResolvePeriodCustom(t *testing.T) {
	start := day(2026, time.March, 1)
	end := day(2026, time.April, 15)
	rng, err := ResolvePeriod(models.PeriodCustom, day(2025, time.December, 17), &start, &end)
	require.NoError(t, err)
	assert.True(t, rng.Start.Equal(start))
	assert.True(t, rng.End.Equal(end))
	assert.NotEmpty(t, rng.HebrewStart)
	assert.NotEmpty(t, rng.HebrewEnd)
}

func TestResolvePeriodCustomMissingBounds(t *testing.T) {
	start := day(2026, time.March, 1)
	_, err := ResolvePeriod(models.PeriodCustom, day(2025, time.December, 17), &start, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPeriod.Code, appErrors.FromError(err).Code)
}

func TestResolvePeriodCustomInverted(t *testing.T) {
	start := day(2026, time.April, 15)
	end := day(2026, time.March, 1)
	_, err := ResolvePeriod(models.PeriodCustom, day(2025, time.December, 17), &start, &end)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPeriod.Code, appErrors.FromError(err).Code)
}

func TestResolvePeriodUnknownToken(t *testing.T) {
	_, err := ResolvePeriod(models.PeriodToken("fortnight"), day(2025, time.December, 17), nil, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidPeriod.Code, appErrors.FromError(err).Code)
}
