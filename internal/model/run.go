package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleRequest пожелания студента к расписанию
type ScheduleRequest struct {
	Quarter           string   `json:"quarter"`
	DaysOfWeek        []string `json:"days_of_week"`
	TimePreference    string   `json:"time_preference"`
	Courses           []string `json:"courses"`
	TeacherPreference string   `json:"teacher_preference"`
	NumSchedules      int      `json:"num_schedules"`
}

// FilterOutcome результат фильтрации вариантов
type FilterOutcome string

const (
	FilterOutcomeFiltered   FilterOutcome = "filtered"   // остались только варианты без конфликтов
	FilterOutcomeUnfiltered FilterOutcome = "unfiltered" // чистых вариантов нет, отдали исходный набор
)

// ScheduleRun одна генерация расписаний и её результат
type ScheduleRun struct {
	ID         uuid.UUID           `json:"id"`
	StudentID  *int64              `json:"student_id,omitempty"`
	Request    ScheduleRequest     `json:"request"`
	Sections   []SectionChoice     `json:"all_sections"`
	Professors []*ProfessorRating  `json:"professor_info"`
	Candidates []ScheduleCandidate `json:"recommendations"`
	Outcome    FilterOutcome       `json:"outcome"`
	Dropped    int                 `json:"dropped"`
	Notice     string              `json:"notice,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// CalendarExport запись о добавлении варианта в Google Calendar
type CalendarExport struct {
	ID             int64     `json:"id"`
	RunID          uuid.UUID `json:"run_id"`
	CandidateIndex int       `json:"candidate_index"`
	CalendarID     string    `json:"calendar_id"`
	EventCount     int       `json:"event_count"`
	CreatedAt      time.Time `json:"created_at"`
}
