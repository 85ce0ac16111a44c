package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// The daily axis is 48 half-hour points: 00:00, 00:30, ..., 23:30.
const (
	SlotMinutes  = 30
	SlotsPerDay  = 48
	MinutesInDay = 24 * 60
)

var (
	ErrBadTime     = errors.New("invalid time")
	ErrOffGrid     = errors.New("time is not on the half-hour grid")
	ErrBadDuration = errors.New("invalid duration")
)

// Slots returns the fixed 48-point time axis as "HH:MM" labels.
func Slots() []string {
	out := make([]string, 0, SlotsPerDay)
	for m := 0; m < MinutesInDay; m += SlotMinutes {
		out = append(out, FormatMinutes(m))
	}
	return out
}

// FormatMinutes returns HH:MM for minutes since midnight, wrapping at 24h.
func FormatMinutes(mins int) string {
	mins = ((mins % MinutesInDay) + MinutesInDay) % MinutesInDay
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// ParseTime parses "HH:MM" into minutes since midnight.
func ParseTime(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: bad hour in %q", ErrBadTime, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: bad minute in %q", ErrBadTime, s)
	}
	return h*60 + m, nil
}

// ParseSlot parses "HH:MM" and requires it to be a grid point.
func ParseSlot(s string) (int, error) {
	m, err := ParseTime(s)
	if err != nil {
		return 0, err
	}
	if m%SlotMinutes != 0 {
		return 0, fmt.Errorf("%w: %q", ErrOffGrid, s)
	}
	return m, nil
}

// RoundDownToSlot floors raw minutes since midnight to the enclosing
// half-hour grid point.
func RoundDownToSlot(mins int) int {
	return mins - mins%SlotMinutes
}

// SlotEnd returns the end of the half-hour block that starts at start:
// start+30, rounded up to the next grid point if it were to land off
// grid. For on-grid starts this is always the next boundary strictly
// greater than start.
func SlotEnd(start int) int {
	end := start + SlotMinutes
	if rem := end % SlotMinutes; rem != 0 {
		end += SlotMinutes - rem
	}
	return end
}

// ParseDurationMinutes parses duration input like "60 minutes" or "60"
// into a positive minute count.
func ParseDurationMinutes(s string) (int, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0, ErrBadDuration
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
	}
	return n, nil
}

// DurationChoices returns the duration option labels offered in the
// add and edit flows: "10 minutes" .. "120 minutes" in 10-minute steps.
func DurationChoices() []string {
	out := make([]string, 0, 12)
	for n := 10; n <= 120; n += 10 {
		out = append(out, fmt.Sprintf("%d minutes", n))
	}
	return out
}
