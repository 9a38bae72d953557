package calendar

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

func losAngeles(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return loc
}

var mathEntry = model.MeetingEntry{
	Summary:     "MATH 51-3",
	Location:    "Daly Science 300",
	Description: "Schaeffer",
	Start:       "2025-09-22T13:00:00",
	End:         "2025-09-22T14:05:00",
	DaysOfWeek:  model.Weekdays{model.Monday, model.Wednesday, model.Friday},
	EndSem:      "2025-12-12",
}

func TestRecurrence(t *testing.T) {
	rule, ok := Recurrence(mathEntry)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(rule, "RRULE:FREQ=WEEKLY"))
	assert.Contains(t, rule, "BYDAY=MO,WE,FR")
	assert.Contains(t, rule, "UNTIL=20251212T235959Z")

	noDays := mathEntry
	noDays.DaysOfWeek = nil
	_, ok = Recurrence(noDays)
	assert.False(t, ok)

	noEnd := mathEntry
	noEnd.EndSem = ""
	_, ok = Recurrence(noEnd)
	assert.False(t, ok)

	unknownDays := mathEntry
	unknownDays.DaysOfWeek = model.Weekdays{"XX"}
	_, ok = Recurrence(unknownDays)
	assert.False(t, ok)
}

func TestBuildEvent(t *testing.T) {
	loc := losAngeles(t)

	ev, err := BuildEvent(mathEntry, loc)
	require.NoError(t, err)
	assert.Equal(t, "MATH 51-3", ev.Summary)
	assert.Equal(t, "Daly Science 300", ev.Location)
	assert.Equal(t, "2025-09-22T13:00:00", ev.Start.DateTime)
	assert.Equal(t, "America/Los_Angeles", ev.Start.TimeZone)
	assert.Equal(t, "2025-09-22T14:05:00", ev.End.DateTime)
	require.Len(t, ev.Recurrence, 1)

	broken := mathEntry
	broken.End = ""
	_, err = BuildEvent(broken, loc)
	assert.Error(t, err)
}

func TestExportICS(t *testing.T) {
	loc := losAngeles(t)

	data, err := ExportICS("Fall Schedule", []model.MeetingEntry{mathEntry, {Summary: "TBA"}}, loc)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "BEGIN:VCALENDAR")
	assert.Contains(t, text, "X-WR-CALNAME:Fall Schedule")
	assert.Contains(t, text, "SUMMARY:MATH 51-3")
	assert.Contains(t, text, "RRULE:FREQ=WEEKLY")
	assert.Equal(t, 1, strings.Count(text, "BEGIN:VEVENT"))

	again, err := ExportICS("Fall Schedule", []model.MeetingEntry{mathEntry}, loc)
	require.NoError(t, err)
	assert.Contains(t, string(again), "UID:"+eventUID("Fall Schedule", mathEntry))

	_, err = ExportICS("Empty", []model.MeetingEntry{{Summary: "TBA"}}, loc)
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	data, err := ExportCSV([]model.MeetingEntry{mathEntry})
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"summary", "location", "description", "start", "end", "days_of_week", "end_sem"}, rows[0])
	assert.Equal(t, "MO,WE,FR", rows[1][5])
	assert.Equal(t, "2025-12-12", rows[1][6])
}

func TestGoogleClient(t *testing.T) {
	var inserted []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/users/me/calendarList"):
			_ = json.NewEncoder(w).Encode(gcal.CalendarList{Items: []*gcal.CalendarListEntry{
				{Id: "primary", Summary: "Personal"},
				{Id: "cal-1", Summary: "Class Schedule"},
			}})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/calendars"):
			var c gcal.Calendar
			require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
			inserted = append(inserted, "calendar:"+c.Summary)
			_ = json.NewEncoder(w).Encode(gcal.Calendar{Id: "cal-new", Summary: c.Summary})
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/calendars/cal-1/events"):
			var ev gcal.Event
			require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
			inserted = append(inserted, "event:"+ev.Summary)
			ev.Id = "ev-1"
			_ = json.NewEncoder(w).Encode(ev)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := gcal.NewService(ctx, option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	c := NewGoogleClientWithService(svc, losAngeles(t), zap.NewNop())

	id, err := c.GetOrCreateCalendar(ctx, "Class Schedule")
	require.NoError(t, err)
	assert.Equal(t, "cal-1", id)

	id, err = c.GetOrCreateCalendar(ctx, "Spring 2025")
	require.NoError(t, err)
	assert.Equal(t, "cal-new", id)

	ev, err := BuildEvent(mathEntry, c.Location())
	require.NoError(t, err)
	created, err := c.InsertEvent(ctx, "cal-1", ev)
	require.NoError(t, err)
	assert.Equal(t, "ev-1", created.Id)

	assert.Equal(t, []string{"calendar:Spring 2025", "event:MATH 51-3"}, inserted)
}
