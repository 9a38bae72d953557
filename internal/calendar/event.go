package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/teambition/rrule-go"
	gcal "google.golang.org/api/calendar/v3"
)

const googleDateTime = "2006-01-02T15:04:05"

var weekdays = map[model.Weekday]rrule.Weekday{
	model.Monday:    rrule.MO,
	model.Tuesday:   rrule.TU,
	model.Wednesday: rrule.WE,
	model.Thursday:  rrule.TH,
	model.Friday:    rrule.FR,
	model.Saturday:  rrule.SA,
	model.Sunday:    rrule.SU,
}

// Recurrence строит RRULE еженедельного повторения до конца семестра включительно.
// ok=false, если нет дней недели или end_sem.
func Recurrence(entry model.MeetingEntry) (string, bool) {
	if len(entry.DaysOfWeek) == 0 || entry.EndSem == "" {
		return "", false
	}

	endSem, err := time.Parse("2006-01-02", strings.TrimSpace(entry.EndSem))
	if err != nil {
		return "", false
	}

	var days []rrule.Weekday
	for _, d := range entry.DaysOfWeek {
		if wd, ok := weekdays[model.Weekday(strings.ToUpper(strings.TrimSpace(string(d))))]; ok {
			days = append(days, wd)
		}
	}
	if len(days) == 0 {
		return "", false
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: days,
		Until:     time.Date(endSem.Year(), endSem.Month(), endSem.Day(), 23, 59, 59, 0, time.UTC),
	}
	return "RRULE:" + opt.RRuleString(), true
}

// BuildEvent переводит занятие в событие Google Calendar в поясе loc
func BuildEvent(entry model.MeetingEntry, loc *time.Location) (*gcal.Event, error) {
	start, ok := schedule.ParseTimeIn(entry.Start, loc)
	if !ok {
		return nil, fmt.Errorf("invalid start %q for %s", entry.Start, entry.Summary)
	}
	end, ok := schedule.ParseTimeIn(entry.End, loc)
	if !ok {
		return nil, fmt.Errorf("invalid end %q for %s", entry.End, entry.Summary)
	}

	ev := &gcal.Event{
		Summary:     entry.Summary,
		Location:    entry.Location,
		Description: entry.Description,
		Start: &gcal.EventDateTime{
			DateTime: start.In(loc).Format(googleDateTime),
			TimeZone: loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: end.In(loc).Format(googleDateTime),
			TimeZone: loc.String(),
		},
	}

	if rule, ok := Recurrence(entry); ok {
		ev.Recurrence = []string{rule}
	}

	return ev, nil
}
