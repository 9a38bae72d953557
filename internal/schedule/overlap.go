package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/model"
)

// Mode определяет, как сравниваются start/end двух занятий с общим днём недели
type Mode int

const (
	// ModeDateTime сравнивает полные дата-время (поведение исходной системы).
	// Занятия с разной датой первой встречи никогда не пересекутся.
	ModeDateTime Mode = iota
	// ModeTimeOfDay сравнивает только время суток
	ModeTimeOfDay
)

// ParseMode разбирает значение SCHEDULE_OVERLAP_MODE
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "datetime", "date_time":
		return ModeDateTime, nil
	case "time_of_day", "timeofday":
		return ModeTimeOfDay, nil
	default:
		return ModeDateTime, fmt.Errorf("unknown overlap mode %q", s)
	}
}

func (m Mode) String() string {
	if m == ModeTimeOfDay {
		return "time_of_day"
	}
	return "datetime"
}

// Форматы с часовым поясом
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04Z07:00",
}

// Форматы без часового пояса
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// timestamp разобранное значение start/end
type timestamp struct {
	t     time.Time
	zoned bool
}

// parseTimestamp разбирает ISO-8601 дату-время. ok=false означает «неизвестно».
func parseTimestamp(s string) (timestamp, bool) {
	if s == "" {
		return timestamp{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return timestamp{t: t, zoned: true}, true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return timestamp{t: t}, true
		}
	}
	return timestamp{}, false
}

// ParseTimeIn разбирает start/end занятия; значения без пояса относятся к loc
func ParseTimeIn(s string, loc *time.Location) (time.Time, bool) {
	ts, ok := parseTimestamp(s)
	if !ok {
		return time.Time{}, false
	}
	if ts.zoned {
		return ts.t, true
	}
	t := ts.t
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), true
}

// interval начало и конец занятия, приведённые к сравнимому виду
type interval struct {
	start timestamp
	end   timestamp
}

func entryInterval(e model.MeetingEntry) (interval, bool) {
	if e.Start == "" || e.End == "" {
		return interval{}, false
	}
	start, ok := parseTimestamp(e.Start)
	if !ok {
		return interval{}, false
	}
	end, ok := parseTimestamp(e.End)
	if !ok {
		return interval{}, false
	}
	return interval{start: start, end: end}, true
}

// sharesDay проверяет пересечение наборов дней недели
func sharesDay(a, b model.Weekdays) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	for _, d := range a {
		day := model.Weekday(strings.ToUpper(strings.TrimSpace(string(d))))
		if day == "" {
			continue
		}
		if b.Contains(day) {
			return true
		}
	}
	return false
}

// clock переводит момент в смещение от полуночи того же дня
func clock(t time.Time) time.Duration {
	h, m, s := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second + time.Duration(t.Nanosecond())
}

// clockRange время суток начала и конца. Значения с поясом сначала
// приводятся к UTC. Конец на следующую дату сдвигается на сутки вперёд.
func clockRange(iv interval) (time.Duration, time.Duration) {
	start, end := iv.start.t, iv.end.t
	if iv.start.zoned {
		start, end = start.UTC(), end.UTC()
	}
	from, to := clock(start), clock(end)
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	startDay := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	endDay := time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)
	if endDay.After(startDay) {
		to += 24 * time.Hour
	}
	return from, to
}

// EntriesOverlap проверяет конфликт двух занятий в режиме ModeDateTime.
// Если среди четырёх значений start/end есть и значения с поясом, и без него,
// пара считается бесконфликтной, хотя ParseTimeIn такие значения принимает.
func EntriesOverlap(a, b model.MeetingEntry) bool {
	return entriesOverlap(a, b, ModeDateTime)
}

// entriesOverlap: общий день недели и пересечение полуоткрытых интервалов.
// Неполные или неразбираемые start/end считаются «конфликта нет».
func entriesOverlap(a, b model.MeetingEntry, mode Mode) bool {
	if !sharesDay(a.DaysOfWeek, b.DaysOfWeek) {
		return false
	}

	ia, ok := entryInterval(a)
	if !ok {
		return false
	}
	ib, ok := entryInterval(b)
	if !ok {
		return false
	}

	// Смешение значений с поясом и без пояса несравнимо
	zoned := ia.start.zoned
	if ia.end.zoned != zoned || ib.start.zoned != zoned || ib.end.zoned != zoned {
		return false
	}

	if mode == ModeTimeOfDay {
		aFrom, aTo := clockRange(ia)
		bFrom, bTo := clockRange(ib)
		return aFrom < bTo && bFrom < aTo
	}
	return ia.start.t.Before(ib.end.t) && ib.start.t.Before(ia.end.t)
}
