package calendar

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
)

const productID = "-//schedule_builder//Course Schedule//EN"

// ExportICS сериализует вариант расписания в iCalendar.
// Занятия с неразбираемым временем пропускаются.
func ExportICS(name string, entries []model.MeetingEntry, loc *time.Location) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(name)
	cal.SetXWRTimezone(loc.String())

	stamp := time.Now().UTC()
	added := 0
	for _, e := range entries {
		start, ok := schedule.ParseTimeIn(e.Start, loc)
		if !ok {
			continue
		}
		end, ok := schedule.ParseTimeIn(e.End, loc)
		if !ok {
			continue
		}

		ev := cal.AddEvent(eventUID(name, e))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(e.Summary)
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if rule, ok := Recurrence(e); ok {
			ev.SetProperty(ics.ComponentPropertyRrule, strings.TrimPrefix(rule, "RRULE:"))
		}
		added++
	}

	if added == 0 && len(entries) > 0 {
		return nil, fmt.Errorf("no exportable meetings in %q", name)
	}

	return []byte(cal.Serialize()), nil
}

// eventUID стабилен для одного и того же занятия в одном календаре
func eventUID(name string, e model.MeetingEntry) string {
	key := strings.Join([]string{name, e.Summary, e.Start, e.DaysOfWeek.String()}, "|")
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String() + "@schedule_builder"
}

// csvRow строка schedule.csv, дни недели одной строкой
type csvRow struct {
	Summary     string `csv:"summary"`
	Location    string `csv:"location"`
	Description string `csv:"description"`
	Start       string `csv:"start"`
	End         string `csv:"end"`
	DaysOfWeek  string `csv:"days_of_week"`
	EndSem      string `csv:"end_sem"`
}

// ExportCSV выгружает занятия в формате summary,location,description,start,end,days_of_week,end_sem
func ExportCSV(entries []model.MeetingEntry) ([]byte, error) {
	rows := make([]csvRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, csvRow{
			Summary:     e.Summary,
			Location:    e.Location,
			Description: e.Description,
			Start:       e.Start,
			End:         e.End,
			DaysOfWeek:  e.DaysOfWeek.String(),
			EndSem:      e.EndSem,
		})
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("marshal csv: %w", err)
	}
	return out, nil
}
