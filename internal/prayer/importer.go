package prayer

import (
	"fmt"
	"time"

	"github.com/olmastoretgshop/weekly-scheduler-for-muslims/internal/domain"
)

// Names maps prayer-time index to its name, in published column order.
var Names = [TimesPerDay]string{"Bomdod", "Quyosh", "Peshin", "Asr", "Shom", "Xufton"}

// The calendar month is currently fixed.
const (
	ScheduleYear  = 2024
	ScheduleMonth = time.December
)

// Entries converts the raw monthly rows into schedule entries: six per
// day, start rounded down to the half hour, 30-minute duration, daily
// frequency, and the raw start time embedded in the activity label.
// Raw times that fail to parse are skipped.
func Entries(userID int64, days []DayTimes) []domain.Entry {
	var out []domain.Entry
	for _, d := range days {
		date := time.Date(ScheduleYear, ScheduleMonth, d.Day, 0, 0, 0, 0, time.UTC)
		label := domain.FormatDateLabel(date)
		weekday := date.Weekday().String()

		for i, raw := range d.Times {
			mins, err := domain.ParseTime(raw)
			if err != nil {
				continue
			}
			start := domain.RoundDownToSlot(mins)
			out = append(out, domain.Entry{
				UserID:      userID,
				Date:        label,
				DayOfWeek:   weekday,
				Time:        domain.FormatMinutes(start),
				Activity:    fmt.Sprintf("%s (Starts at %s)", Names[i], raw),
				DurationMin: domain.SlotMinutes,
				Frequency:   domain.FrequencyDaily,
			})
		}
	}
	return out
}
