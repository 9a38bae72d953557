package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/Freeeeeet/schedule_builder/internal/api/respond"
	"github.com/Freeeeeet/schedule_builder/internal/calendar"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/Freeeeeet/schedule_builder/internal/service"
)

const maxBodyBytes = 1 << 20

// Planner генерация и проверка расписаний
type Planner interface {
	Generate(ctx context.Context, studentID *int64, req model.ScheduleRequest) (*model.ScheduleRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*model.ScheduleRun, error)
	Validate(candidates []model.ScheduleCandidate) (schedule.FilterResult, []service.CandidateReport)
}

// Calendar добавление расписания в Google Calendar
type Calendar interface {
	AddToCalendar(ctx context.Context, name string, entries []model.MeetingEntry) (*service.AddResult, error)
	AddCandidate(ctx context.Context, runID uuid.UUID, index int, name string) (*service.AddResult, error)
}

// ScheduleHandler обработчики /api/*
type ScheduleHandler struct {
	planner  Planner
	calendar Calendar
	quarters []model.Quarter
	loc      *time.Location
	logger   *zap.Logger
}

// NewScheduleHandler; calendar может быть nil, тогда /api/add-to-calendar отвечает 503
func NewScheduleHandler(planner Planner, calendar Calendar, quarters []model.Quarter, loc *time.Location, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		planner:  planner,
		calendar: calendar,
		quarters: quarters,
		loc:      loc,
		logger:   logger,
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.WriteBadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// Health GET /api/health
func (h *ScheduleHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Quarters GET /api/quarters
func (h *ScheduleHandler) Quarters(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.quarters)
}

type generateRequest struct {
	Quarter           string   `json:"quarter"`
	DaysOfWeek        []string `json:"days_of_week"`
	TimePreference    string   `json:"time_preference"`
	Courses           courses  `json:"courses"`
	TeacherPreference string   `json:"teacher_preference"`
	NumSchedules      int      `json:"num_schedules"`
}

// courses принимает массив или строку через запятую
type courses []string

func (c *courses) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*c = trimAll(list)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New("courses must be an array or a comma-separated string")
	}
	*c = trimAll(strings.Split(s, ","))
	return nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

type generateSummary struct {
	TotalSections        int `json:"total_sections"`
	ProfessorsResearched int `json:"professors_researched"`
	RecommendationsCount int `json:"recommendations_count"`
	DroppedForConflicts  int `json:"dropped_for_conflicts"`
}

type generateResponse struct {
	RunID           uuid.UUID                 `json:"run_id"`
	AllSections     []model.SectionChoice     `json:"all_sections"`
	ProfessorInfo   []*model.ProfessorRating  `json:"professor_info"`
	Recommendations []model.ScheduleCandidate `json:"recommendations"`
	Outcome         model.FilterOutcome       `json:"outcome"`
	Notice          string                    `json:"notice,omitempty"`
	Summary         generateSummary           `json:"summary"`
}

func newGenerateResponse(run *model.ScheduleRun) generateResponse {
	meetings := 0
	for _, c := range run.Candidates {
		meetings += len(c.Schedule)
	}
	researched := 0
	for _, p := range run.Professors {
		if p != nil {
			researched++
		}
	}

	return generateResponse{
		RunID:           run.ID,
		AllSections:     nonNil(run.Sections),
		ProfessorInfo:   nonNil(run.Professors),
		Recommendations: nonNil(run.Candidates),
		Outcome:         run.Outcome,
		Notice:          run.Notice,
		Summary: generateSummary{
			TotalSections:        meetings,
			ProfessorsResearched: researched,
			RecommendationsCount: len(run.Candidates),
			DroppedForConflicts:  run.Dropped,
		},
	}
}

// GenerateSchedule POST /api/generate-schedule
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if !decode(w, r, &body) {
		return
	}

	req := model.ScheduleRequest{
		Quarter:           body.Quarter,
		DaysOfWeek:        body.DaysOfWeek,
		TimePreference:    body.TimePreference,
		Courses:           body.Courses,
		TeacherPreference: body.TeacherPreference,
		NumSchedules:      body.NumSchedules,
	}

	h.logger.Info("Received schedule generation request",
		zap.String("quarter", req.Quarter),
		zap.Strings("courses", req.Courses),
		zap.Int("num_schedules", req.NumSchedules),
	)

	run, err := h.planner.Generate(r.Context(), nil, req)
	if err != nil {
		h.logger.Error("Failed to generate schedule", zap.Error(err))
		respond.WriteInternalError(w, err.Error())
		return
	}

	respond.WriteData(w, newGenerateResponse(run))
}

// GetRun GET /api/runs/{id}
func (h *ScheduleHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respond.WriteBadRequest(w, "invalid run id")
		return
	}

	run, err := h.planner.GetRun(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRunNotFound) {
			respond.WriteNotFound(w, err.Error())
			return
		}
		h.logger.Error("Failed to get run", zap.String("run_id", id.String()), zap.Error(err))
		respond.WriteInternalError(w, err.Error())
		return
	}

	respond.WriteData(w, newGenerateResponse(run))
}

type addToCalendarRequest struct {
	Schedule     []model.MeetingEntry `json:"schedule"`
	CalendarName string               `json:"calendar_name"`
	RunID        *uuid.UUID           `json:"run_id"`
	Index        int                  `json:"index"`
}

type addToCalendarResponse struct {
	Success bool `json:"success"`
	*service.AddResult
	Message string `json:"message"`
}

// AddToCalendar POST /api/add-to-calendar
func (h *ScheduleHandler) AddToCalendar(w http.ResponseWriter, r *http.Request) {
	if h.calendar == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "Google Calendar is not configured")
		return
	}

	var body addToCalendarRequest
	if !decode(w, r, &body) {
		return
	}

	var (
		result *service.AddResult
		err    error
	)
	if body.RunID != nil {
		result, err = h.calendar.AddCandidate(r.Context(), *body.RunID, body.Index, body.CalendarName)
	} else {
		result, err = h.calendar.AddToCalendar(r.Context(), body.CalendarName, body.Schedule)
	}

	switch {
	case errors.Is(err, service.ErrEmptySchedule), errors.Is(err, service.ErrCandidateIndex):
		respond.WriteBadRequest(w, err.Error())
		return
	case errors.Is(err, service.ErrRunNotFound):
		respond.WriteNotFound(w, err.Error())
		return
	case err != nil:
		h.logger.Error("Failed to add schedule to calendar", zap.Error(err))
		respond.WriteInternalError(w, err.Error())
		return
	}

	respond.WriteJSON(w, http.StatusOK, addToCalendarResponse{
		Success:   true,
		AddResult: result,
		Message:   "Schedule added to Google Calendar successfully!",
	})
}

type validateRequest struct {
	Candidates []model.ScheduleCandidate `json:"candidates"`
}

type validateResponse struct {
	Outcome    model.FilterOutcome       `json:"outcome"`
	Dropped    int                       `json:"dropped"`
	Notice     string                    `json:"notice,omitempty"`
	Candidates []model.ScheduleCandidate `json:"candidates"`
	Reports    []service.CandidateReport `json:"reports"`
}

// Validate POST /api/validate
func (h *ScheduleHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var body validateRequest
	if !decode(w, r, &body) {
		return
	}

	result, reports := h.planner.Validate(body.Candidates)

	respond.WriteData(w, validateResponse{
		Outcome:    model.FilterOutcome(result.Outcome.String()),
		Dropped:    result.Dropped,
		Notice:     result.Notice(),
		Candidates: nonNil(result.Candidates),
		Reports:    reports,
	})
}

type exportRequest struct {
	Schedule     []model.MeetingEntry `json:"schedule"`
	CalendarName string               `json:"calendar_name"`
}

// ExportICS POST /api/export/ics
func (h *ScheduleHandler) ExportICS(w http.ResponseWriter, r *http.Request) {
	var body exportRequest
	if !decode(w, r, &body) {
		return
	}
	if len(body.Schedule) == 0 {
		respond.WriteBadRequest(w, service.ErrEmptySchedule.Error())
		return
	}

	name := body.CalendarName
	if name == "" {
		name = service.DefaultCalendarName
	}

	data, err := calendar.ExportICS(name, body.Schedule, h.loc)
	if err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	respond.WriteFile(w, "text/calendar; charset=utf-8", "schedule.ics", data)
}

// ExportCSV POST /api/export/csv
func (h *ScheduleHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var body exportRequest
	if !decode(w, r, &body) {
		return
	}

	data, err := calendar.ExportCSV(body.Schedule)
	if err != nil {
		h.logger.Error("Failed to export csv", zap.Error(err))
		respond.WriteInternalError(w, err.Error())
		return
	}

	respond.WriteFile(w, "text/csv; charset=utf-8", "schedule.csv", data)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
