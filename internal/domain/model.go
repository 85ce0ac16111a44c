package domain

import "time"

// FrequencyDaily marks entries that occur every day (prayer imports).
const FrequencyDaily = "Daily"

// User is one chat participant. Created on first interaction, the
// eligibility answer is recorded once and never mutated afterwards.
type User struct {
	ChatID     int64
	IsEligible bool
	CreatedAt  time.Time // UTC
}

// Entry is one scheduled activity occurrence owned by a single user.
//
// Date is the label the original store keeps: "D/MM/YYYY" for imported
// prayer rows (fixed month), "TBD" for manually added activities.
// Time is always a half-hour grid point ("HH:MM").
// Frequency is either FrequencyDaily or a comma-joined weekday list in
// order of selection. There is no uniqueness or overlap constraint on
// (UserID, Time); entries may legitimately collide.
type Entry struct {
	ID          int64
	UserID      int64
	Date        string
	DayOfWeek   string
	Time        string
	Activity    string
	DurationMin int
	Frequency   string
}
