package domain

import "errors"

var ErrNoWeekdays = errors.New("no weekdays selected")

// Draft is an in-progress activity under construction by the dialog
// flows. It accumulates weekday selections until the user finishes;
// only Finalize produces something fit to persist.
type Draft struct {
	Time        string
	Activity    string
	DurationMin int

	days []string
}

// Accumulate appends a weekday in selection order. The add flow does
// not suppress duplicates.
func (d *Draft) Accumulate(day string) {
	d.days = append(d.days, day)
}

// AccumulateOnce appends a weekday unless already selected, reporting
// whether it was added. The edit flow suppresses duplicates.
func (d *Draft) AccumulateOnce(day string) bool {
	for _, have := range d.days {
		if have == day {
			return false
		}
	}
	d.days = append(d.days, day)
	return true
}

// Days returns the selection-ordered weekday list.
func (d *Draft) Days() []string {
	return d.days
}

// Frequency renders the accumulated weekdays, failing on an empty set.
func (d *Draft) Frequency() (string, error) {
	if len(d.days) == 0 {
		return "", ErrNoWeekdays
	}
	return JoinDays(d.days), nil
}

// Finalize validates the draft and returns the entry to persist.
// Manually added activities carry no concrete date in the original
// schema; the placeholder column values are kept.
func (d *Draft) Finalize(userID int64) (Entry, error) {
	freq, err := d.Frequency()
	if err != nil {
		return Entry{}, err
	}
	if d.DurationMin <= 0 {
		return Entry{}, ErrBadDuration
	}
	return Entry{
		UserID:      userID,
		Date:        "TBD",
		DayOfWeek:   "TBD",
		Time:        d.Time,
		Activity:    d.Activity,
		DurationMin: d.DurationMin,
		Frequency:   freq,
	}, nil
}
