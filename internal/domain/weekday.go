package domain

import "strings"

// Weekdays is the canonical weekday order offered in frequency menus.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// CanonWeekday maps a case-insensitive token to its canonical weekday
// name, or "" when the token is not a weekday.
func CanonWeekday(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	for _, d := range Weekdays {
		if strings.ToLower(d) == t {
			return d
		}
	}
	return ""
}

// JoinDays renders a selection-ordered weekday list the way the store
// keeps it: "Monday, Wednesday".
func JoinDays(days []string) string {
	return strings.Join(days, ", ")
}
