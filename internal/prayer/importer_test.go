package prayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

func TestEntriesScenarioDayOne(t *testing.T) {
	days := []DayTimes{
		{Day: 1, Times: [TimesPerDay]string{"05:00", "06:10", "12:30", "15:45", "18:00", "19:20"}},
	}
	entries := Entries(7, days)
	require.Len(t, entries, 6)

	wantStarts := []string{"05:00", "06:00", "12:30", "15:30", "18:00", "19:00"}
	for i, e := range entries {
		assert.Equal(t, int64(7), e.UserID)
		assert.Equal(t, wantStarts[i], e.Time, "entry %d", i+1)
		assert.Equal(t, 30, e.DurationMin)
		assert.Equal(t, domain.FrequencyDaily, e.Frequency)
		assert.Equal(t, "1/12/2024", e.Date)
		assert.Equal(t, "Sunday", e.DayOfWeek) // 1 December 2024

		start, err := domain.ParseSlot(e.Time)
		require.NoError(t, err)
		assert.Equal(t, start+30, domain.SlotEnd(start))
	}

	assert.Equal(t, "Bomdod (Starts at 05:00)", entries[0].Activity)
	assert.Equal(t, "Xufton (Starts at 19:20)", entries[5].Activity)
}

func TestEntriesSixPerDay(t *testing.T) {
	var days []DayTimes
	for d := 1; d <= 10; d++ {
		days = append(days, DayTimes{
			Day:   d,
			Times: [TimesPerDay]string{"05:12", "06:40", "12:05", "15:33", "17:58", "19:21"},
		})
	}
	entries := Entries(1, days)
	assert.Len(t, entries, 6*10)

	// Per-day dates and derived weekdays.
	assert.Equal(t, "2/12/2024", entries[6].Date)
	assert.Equal(t, "Monday", entries[6].DayOfWeek)
}

func TestEntriesSkipsMalformedTimes(t *testing.T) {
	days := []DayTimes{
		{Day: 1, Times: [TimesPerDay]string{"05:00", "bad", "12:30", "", "18:00", "19:20"}},
	}
	entries := Entries(1, days)
	assert.Len(t, entries, 4)
}

func TestEntriesStartAlwaysOnGrid(t *testing.T) {
	days := []DayTimes{
		{Day: 15, Times: [TimesPerDay]string{"05:29", "06:30", "12:31", "15:59", "18:01", "23:45"}},
	}
	for _, e := range Entries(1, days) {
		_, err := domain.ParseSlot(e.Time)
		assert.NoError(t, err, e.Time)
	}
}
