package domain

import (
	"sort"
	"time"
)

// dateLayout matches the store's date labels: no leading zero on the
// day, e.g. "1/12/2024".
const dateLayout = "2/01/2006"

// Cell is one occupied grid position.
type Cell struct {
	Label       string
	DurationMin int
}

// Grid is the date-by-slot matrix consumed by every render backend.
// Cells is indexed [slot][date]; a nil cell is empty. Renderers must
// not reorder or reinterpret it, so image, PDF and spreadsheet output
// stay consistent for the same data.
type Grid struct {
	Dates []string
	Slots []string
	Cells [][]*Cell
}

// BuildGrid collapses one user's entries into a Grid. Columns are the
// distinct date labels present, sorted chronologically (labels that do
// not parse as dates sort after those that do, in first-seen order).
// Each cell holds the first entry in source order whose date and time
// match that position.
func BuildGrid(entries []Entry) Grid {
	seen := make(map[string]bool)
	var dates []string
	for _, e := range entries {
		if !seen[e.Date] {
			seen[e.Date] = true
			dates = append(dates, e.Date)
		}
	}
	sort.SliceStable(dates, func(i, j int) bool {
		ti, oki := parseDateLabel(dates[i])
		tj, okj := parseDateLabel(dates[j])
		if oki != okj {
			return oki
		}
		if !oki {
			return false
		}
		return ti.Before(tj)
	})

	col := make(map[string]int, len(dates))
	for i, d := range dates {
		col[d] = i
	}

	slots := Slots()
	row := make(map[string]int, len(slots))
	for i, s := range slots {
		row[s] = i
	}

	cells := make([][]*Cell, len(slots))
	for i := range cells {
		cells[i] = make([]*Cell, len(dates))
	}
	for _, e := range entries {
		r, ok := row[e.Time]
		if !ok {
			continue
		}
		c := col[e.Date]
		if cells[r][c] == nil {
			cells[r][c] = &Cell{Label: e.Activity, DurationMin: e.DurationMin}
		}
	}

	return Grid{Dates: dates, Slots: slots, Cells: cells}
}

func parseDateLabel(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDateLabel renders a date the way the store keeps it.
func FormatDateLabel(t time.Time) string {
	return t.Format(dateLayout)
}

// HeaderLabel renders a date column header for export, "2 December".
func HeaderLabel(label string) string {
	t, ok := parseDateLabel(label)
	if !ok {
		return label
	}
	return t.Format("2 January")
}
