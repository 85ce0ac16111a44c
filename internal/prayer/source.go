package prayer

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// TimesPerDay is the number of prayer times published per day.
const TimesPerDay = 6

// DayTimes is one row of the monthly table: a day number and its six
// raw "HH:MM" times in published order.
type DayTimes struct {
	Day   int
	Times [TimesPerDay]string
}

// Source produces the raw monthly prayer-time rows. An empty result
// means the upstream had no data; callers treat it as "try later".
type Source interface {
	MonthlyTimes(ctx context.Context) ([]DayTimes, error)
}

// HTTPSource scrapes the monthly prayer-time table from the public
// calendar page.
type HTTPSource struct {
	url    string
	client *http.Client
	log    *zap.Logger
}

// NewHTTPSource creates a Source for the given monthly page URL.
func NewHTTPSource(url string, log *zap.Logger) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 20 * time.Second},
		log:    log,
	}
}

// MonthlyTimes fetches and parses the calendar table. Rows that do not
// carry a day number and six time cells are skipped.
func (s *HTTPSource) MonthlyTimes(ctx context.Context) ([]DayTimes, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch prayer times: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch prayer times: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse prayer times: %w", err)
	}
	return parseCalendar(doc, s.log), nil
}

// parseCalendar walks table.table_calendar rows, skipping the header
// row, and collects day number plus the six time cells.
func parseCalendar(doc *goquery.Document, log *zap.Logger) []DayTimes {
	var out []DayTimes
	doc.Find("table.table_calendar tbody tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		tds := row.Find("td")
		if tds.Length() < 1+TimesPerDay {
			return
		}
		day, err := strconv.Atoi(leadingDigits(strings.TrimSpace(tds.Eq(0).Text())))
		if err != nil || day < 1 || day > 31 {
			if log != nil {
				log.Debug("skipping calendar row", zap.Int("row", i))
			}
			return
		}
		var dt DayTimes
		dt.Day = day
		for j := 0; j < TimesPerDay; j++ {
			dt.Times[j] = strings.TrimSpace(tds.Eq(j + 1).Text())
		}
		out = append(out, dt)
	})
	return out
}

// leadingDigits strips an ordinal suffix from cells like "1st".
func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}
