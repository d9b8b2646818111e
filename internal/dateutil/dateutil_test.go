package dateutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	return NewCalendar("Asia/Dhaka")
}

func TestDisplayRoundTrip(t *testing.T) {
	c := newTestCalendar(t)

	t.Run("valid date converts both ways", func(t *testing.T) {
		iso, err := c.ParseDisplay("13/06/2024")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-13", iso)

		display, err := c.FormatDisplay(iso)
		require.NoError(t, err)
		assert.Equal(t, "13/06/2024", display)
	})

	t.Run("single-digit input is zero-padded", func(t *testing.T) {
		iso, err := c.ParseDisplay("1/6/2024")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-01", iso)
	})

	t.Run("non-round-tripping date rejected", func(t *testing.T) {
		_, err := c.ParseDisplay("31/02/2025")
		assert.Error(t, err)

		_, err = c.ParseDisplay("32/01/2025")
		assert.Error(t, err)
	})

	t.Run("malformed input rejected", func(t *testing.T) {
		for _, in := range []string{"2024-06-13", "13-06-2024", "13/06/24", "abc"} {
			_, err := c.ParseDisplay(in)
			assert.Error(t, err, in)
		}
	})
}

func TestWeekdayOf(t *testing.T) {
	c := newTestCalendar(t)

	day, err := c.WeekdayOf("2024-06-13")
	require.NoError(t, err)
	assert.Equal(t, "Thursday", day)

	_, err = c.WeekdayOf("not-a-date")
	assert.Error(t, err)
}

func TestWeekWindow(t *testing.T) {
	c := newTestCalendar(t)

	t.Run("days before the anchor shift forward a week", func(t *testing.T) {
		days, err := c.WeekWindow("2024-06-13")
		require.NoError(t, err)
		require.Len(t, days, 7)

		// Saturday 2024-06-08 starts the containing week; it and every
		// day before Thursday the 13th land on the following week.
		assert.Equal(t, "2024-06-15", days[0].ISO)
		assert.Equal(t, "Saturday", days[0].Weekday)
		assert.Equal(t, "2024-06-13", days[5].ISO)
		assert.Equal(t, "Thursday", days[5].Weekday)
		assert.Equal(t, "2024-06-14", days[6].ISO)

		seen := map[string]bool{}
		for _, d := range days {
			seen[d.ISO] = true
		}
		for _, want := range []string{
			"2024-06-13", "2024-06-14", "2024-06-15", "2024-06-16",
			"2024-06-17", "2024-06-18", "2024-06-19",
		} {
			assert.True(t, seen[want], want)
		}
	})

	t.Run("saturday anchor keeps its own week", func(t *testing.T) {
		days, err := c.WeekWindow("2024-06-08")
		require.NoError(t, err)
		assert.Equal(t, "2024-06-08", days[0].ISO)
		assert.Equal(t, "2024-06-14", days[6].ISO)
	})

	t.Run("invalid anchor", func(t *testing.T) {
		_, err := c.WeekWindow("13/06/2024")
		assert.Error(t, err)
	})
}
