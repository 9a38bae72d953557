package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Weekday: код дня недели в формате iCalendar (MO, TU, WE, TH, FR, SA, SU)
type Weekday string

const (
	Monday    Weekday = "MO"
	Tuesday   Weekday = "TU"
	Wednesday Weekday = "WE"
	Thursday  Weekday = "TH"
	Friday    Weekday = "FR"
	Saturday  Weekday = "SA"
	Sunday    Weekday = "SU"
)

// AllWeekdays в порядке отображения (с понедельника)
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Weekdays набор дней, по которым повторяется занятие.
// В JSON принимает как массив ["MO","WE"], так и строку "MO,WE".
type Weekdays []Weekday

// ParseWeekdays разбирает строку вида "MO,WE,FR"
func ParseWeekdays(s string) Weekdays {
	var days Weekdays
	for _, part := range strings.Split(s, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		days = append(days, Weekday(part))
	}
	return days
}

// String возвращает дни через запятую, как их ждёт RRULE BYDAY
func (w Weekdays) String() string {
	parts := make([]string, 0, len(w))
	for _, d := range w {
		parts = append(parts, string(d))
	}
	return strings.Join(parts, ",")
}

// Contains проверяет наличие дня в наборе
func (w Weekdays) Contains(day Weekday) bool {
	for _, d := range w {
		if strings.EqualFold(strings.TrimSpace(string(d)), string(day)) {
			return true
		}
	}
	return false
}

func (w *Weekdays) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		days := make(Weekdays, 0, len(list))
		for _, d := range list {
			d = strings.ToUpper(strings.TrimSpace(d))
			if d != "" {
				days = append(days, Weekday(d))
			}
		}
		*w = days
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("days_of_week must be a list or a comma-separated string")
	}
	*w = ParseWeekdays(s)
	return nil
}

// MeetingEntry одно занятие секции курса. Start/End хранятся как пришли
// от внешнего источника и разбираются только при проверке конфликтов.
type MeetingEntry struct {
	Summary     string   `json:"summary" csv:"summary"`
	Location    string   `json:"location" csv:"location"`
	Description string   `json:"description" csv:"description"`
	Start       string   `json:"start" csv:"start"`
	End         string   `json:"end" csv:"end"`
	DaysOfWeek  Weekdays `json:"days_of_week" csv:"-"`
	EndSem      string   `json:"end_sem" csv:"end_sem"`
}

// ScheduleCandidate один вариант расписания с плюсами и минусами.
// Неизвестные поля сохраняются в Extra и возвращаются клиенту без изменений.
type ScheduleCandidate struct {
	Schedule []MeetingEntry             `json:"schedule"`
	Pros     []string                   `json:"pros"`
	Cons     []string                   `json:"cons"`
	Extra    map[string]json.RawMessage `json:"-"`
}

type candidateFields struct {
	Schedule []MeetingEntry `json:"schedule"`
	Pros     []string       `json:"pros"`
	Cons     []string       `json:"cons"`
}

func (c *ScheduleCandidate) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))

	// Старый формат: вариант: просто массив занятий без анализа
	if strings.HasPrefix(trimmed, "[") {
		var entries []MeetingEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode bare schedule: %w", err)
		}
		*c = ScheduleCandidate{Schedule: entries, Pros: []string{}, Cons: []string{}}
		return nil
	}

	var fields candidateFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	delete(raw, "schedule")
	delete(raw, "pros")
	delete(raw, "cons")

	c.Schedule = fields.Schedule
	c.Pros = fields.Pros
	c.Cons = fields.Cons
	if c.Pros == nil {
		c.Pros = []string{}
	}
	if c.Cons == nil {
		c.Cons = []string{}
	}
	c.Extra = nil
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

func (c ScheduleCandidate) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+3)
	for k, v := range c.Extra {
		out[k] = v
	}

	schedule := c.Schedule
	if schedule == nil {
		schedule = []MeetingEntry{}
	}
	pros := c.Pros
	if pros == nil {
		pros = []string{}
	}
	cons := c.Cons
	if cons == nil {
		cons = []string{}
	}

	out["schedule"] = schedule
	out["pros"] = pros
	out["cons"] = cons
	return json.Marshal(out)
}
