package prayer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const calendarHTML = `<html><body>
<table class="table_calendar"><tbody>
<tr><td>Kun</td><td>Bomdod</td><td>Quyosh</td><td>Peshin</td><td>Asr</td><td>Shom</td><td>Xufton</td><td>#</td></tr>
<tr><td>1</td><td>05:52</td><td>07:14</td><td>12:17</td><td>15:10</td><td>17:13</td><td>18:30</td><td>1</td></tr>
<tr><td>2</td><td>05:53</td><td>07:15</td><td>12:17</td><td>15:10</td><td>17:12</td><td>18:30</td><td>2</td></tr>
<tr><td>garbage</td><td></td><td></td><td></td><td></td><td></td><td></td><td></td></tr>
</tbody></table>
</body></html>`

func TestMonthlyTimesParsesCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(calendarHTML))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, zap.NewNop())
	days, err := src.MonthlyTimes(context.Background())
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, "05:52", days[0].Times[0])
	assert.Equal(t, "18:30", days[0].Times[5])
	assert.Equal(t, 2, days[1].Day)
}

func TestMonthlyTimesEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, zap.NewNop())
	days, err := src.MonthlyTimes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, days)
}

func TestMonthlyTimesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, zap.NewNop())
	_, err := src.MonthlyTimes(context.Background())
	assert.Error(t, err)
}
