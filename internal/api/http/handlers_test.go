package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/Freeeeeet/schedule_builder/internal/service"
)

type mockPlanner struct {
	run    *model.ScheduleRun
	err    error
	gotReq model.ScheduleRequest
}

func (m *mockPlanner) Generate(ctx context.Context, studentID *int64, req model.ScheduleRequest) (*model.ScheduleRun, error) {
	m.gotReq = req
	return m.run, m.err
}

func (m *mockPlanner) GetRun(ctx context.Context, id uuid.UUID) (*model.ScheduleRun, error) {
	if m.run == nil || m.run.ID != id {
		return nil, service.ErrRunNotFound
	}
	return m.run, nil
}

func (m *mockPlanner) Validate(candidates []model.ScheduleCandidate) (schedule.FilterResult, []service.CandidateReport) {
	f := schedule.NewFilter(schedule.ModeDateTime, nil)
	reports := make([]service.CandidateReport, len(candidates))
	for i, c := range candidates {
		reports[i] = service.CandidateReport{Index: i, Valid: f.IsValid(c.Schedule), Conflicts: f.Conflicts(c.Schedule)}
	}
	return f.Apply(candidates), reports
}

type mockCalendar struct {
	gotName  string
	gotRunID uuid.UUID
	err      error
}

func (m *mockCalendar) AddToCalendar(ctx context.Context, name string, entries []model.MeetingEntry) (*service.AddResult, error) {
	m.gotName = name
	if m.err != nil {
		return nil, m.err
	}
	if len(entries) == 0 {
		return nil, service.ErrEmptySchedule
	}
	return &service.AddResult{CalendarID: "cal-1", EventIDs: []string{"ev-1"}}, nil
}

func (m *mockCalendar) AddCandidate(ctx context.Context, runID uuid.UUID, index int, name string) (*service.AddResult, error) {
	m.gotRunID = runID
	if index > 0 {
		return nil, service.ErrCandidateIndex
	}
	return &service.AddResult{CalendarID: "cal-2", EventIDs: []string{}}, nil
}

const entryJSON = `{"summary":"MATH 51-3","location":"Daly Science 300","description":"Schaeffer","start":"2025-09-22T13:00:00","end":"2025-09-22T14:05:00","days_of_week":["MO","WE","FR"],"end_sem":"2025-12-12"}`

func newRouter(p Planner, c Calendar) *mux.Router {
	h := NewScheduleHandler(p, c, []model.Quarter{{Value: "Fall", Label: "Fall 2024"}}, time.UTC, zap.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/api/health", h.Health)
	r.HandleFunc("/api/quarters", h.Quarters)
	r.HandleFunc("/api/generate-schedule", h.GenerateSchedule)
	r.HandleFunc("/api/validate", h.Validate)
	r.HandleFunc("/api/runs/{id}", h.GetRun)
	r.HandleFunc("/api/add-to-calendar", h.AddToCalendar)
	r.HandleFunc("/api/export/ics", h.ExportICS)
	r.HandleFunc("/api/export/csv", h.ExportCSV)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestHealthAndQuarters(t *testing.T) {
	r := newRouter(&mockPlanner{}, nil)

	rr := do(t, r, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rr.Body.String())

	rr = do(t, r, http.MethodGet, "/api/quarters", "")
	assert.JSONEq(t, `[{"value":"Fall","label":"Fall 2024"}]`, rr.Body.String())
}

func TestGenerateSchedule(t *testing.T) {
	run := &model.ScheduleRun{
		ID:         uuid.New(),
		Professors: []*model.ProfessorRating{nil, {ProfessorInfo: model.ProfessorInfo{FirstName: "Ann"}}},
		Candidates: []model.ScheduleCandidate{{Schedule: []model.MeetingEntry{{Summary: "MATH 51-3"}, {Summary: "PHYS 32-2"}}}},
		Outcome:    model.FilterOutcomeFiltered,
		Dropped:    1,
		Notice:     "Removed 1 of 2 schedule options because of time conflicts.",
	}
	p := &mockPlanner{run: run}
	r := newRouter(p, nil)

	rr := do(t, r, http.MethodPost, "/api/generate-schedule", `{"quarter":"Winter","courses":"MATH 51, PHYS 32","teacher_preference":"kind","num_schedules":2}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"MATH 51", "PHYS 32"}, p.gotReq.Courses)
	assert.Equal(t, 2, p.gotReq.NumSchedules)

	var resp struct {
		Success bool             `json:"success"`
		Data    generateResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, run.ID, resp.Data.RunID)
	assert.Equal(t, 2, resp.Data.Summary.TotalSections)
	assert.Equal(t, 1, resp.Data.Summary.ProfessorsResearched)
	assert.Equal(t, 1, resp.Data.Summary.RecommendationsCount)
	assert.Equal(t, 1, resp.Data.Summary.DroppedForConflicts)
	assert.Equal(t, run.Notice, resp.Data.Notice)
	assert.Contains(t, rr.Body.String(), `"all_sections":[]`)

	rr = do(t, r, http.MethodPost, "/api/generate-schedule", `{"courses":["MATH 51"]}`)
	assert.Equal(t, []string{"MATH 51"}, p.gotReq.Courses)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGenerateSchedule_Errors(t *testing.T) {
	r := newRouter(&mockPlanner{err: errors.New("bedrock throttled")}, nil)

	rr := do(t, r, http.MethodPost, "/api/generate-schedule", `{}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"success":false,"error":"bedrock throttled"}`, rr.Body.String())

	rr = do(t, r, http.MethodPost, "/api/generate-schedule", `{"courses": 5}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetRun(t *testing.T) {
	run := &model.ScheduleRun{ID: uuid.New(), Outcome: model.FilterOutcomeUnfiltered}
	r := newRouter(&mockPlanner{run: run}, nil)

	rr := do(t, r, http.MethodGet, "/api/runs/"+run.ID.String(), "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"outcome":"unfiltered"`)

	rr = do(t, r, http.MethodGet, "/api/runs/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, r, http.MethodGet, "/api/runs/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestValidate(t *testing.T) {
	r := newRouter(&mockPlanner{}, nil)

	body := `{"candidates":[
	  {"schedule":[` + entryJSON + `], "pros":["a"], "cons":[], "rank": 1},
	  {"schedule":[
	    {"summary":"A","start":"2025-09-22T13:00:00","end":"2025-09-22T14:05:00","days_of_week":"MO"},
	    {"summary":"B","start":"2025-09-22T13:30:00","end":"2025-09-22T14:30:00","days_of_week":"MO"}
	  ]}
	]}`
	rr := do(t, r, http.MethodPost, "/api/validate", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Data struct {
			Outcome    string            `json:"outcome"`
			Dropped    int               `json:"dropped"`
			Candidates []json.RawMessage `json:"candidates"`
			Reports    []struct {
				Valid     bool `json:"valid"`
				Conflicts []struct {
					FirstSummary string `json:"first_summary"`
				} `json:"conflicts"`
			} `json:"reports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "filtered", resp.Data.Outcome)
	assert.Equal(t, 1, resp.Data.Dropped)
	require.Len(t, resp.Data.Candidates, 1)
	assert.Contains(t, string(resp.Data.Candidates[0]), `"rank":1`)
	require.Len(t, resp.Data.Reports, 2)
	assert.True(t, resp.Data.Reports[0].Valid)
	assert.Equal(t, "A", resp.Data.Reports[1].Conflicts[0].FirstSummary)
}

func TestAddToCalendar(t *testing.T) {
	rr := do(t, newRouter(&mockPlanner{}, nil), http.MethodPost, "/api/add-to-calendar", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	cal := &mockCalendar{}
	r := newRouter(&mockPlanner{}, cal)

	rr = do(t, r, http.MethodPost, "/api/add-to-calendar", `{"schedule":[`+entryJSON+`],"calendar_name":"Fall"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Fall", cal.gotName)
	assert.JSONEq(t, `{"success":true,"calendar_id":"cal-1","event_ids":["ev-1"],"message":"Schedule added to Google Calendar successfully!"}`, rr.Body.String())

	rr = do(t, r, http.MethodPost, "/api/add-to-calendar", `{"schedule":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	runID := uuid.New()
	rr = do(t, r, http.MethodPost, "/api/add-to-calendar", `{"run_id":"`+runID.String()+`","index":0}`)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, runID, cal.gotRunID)

	rr = do(t, r, http.MethodPost, "/api/add-to-calendar", `{"run_id":"`+runID.String()+`","index":4}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	cal.err = errors.New("oauth token expired")
	rr = do(t, r, http.MethodPost, "/api/add-to-calendar", `{"schedule":[`+entryJSON+`]}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestExports(t *testing.T) {
	r := newRouter(&mockPlanner{}, nil)

	rr := do(t, r, http.MethodPost, "/api/export/ics", `{"schedule":[`+entryJSON+`]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "schedule.ics")
	assert.Contains(t, rr.Body.String(), "BEGIN:VCALENDAR")

	rr = do(t, r, http.MethodPost, "/api/export/ics", `{"schedule":[]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, r, http.MethodPost, "/api/export/csv", `{"schedule":[`+entryJSON+`]}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "summary,location,description,start,end,days_of_week,end_sem"))
	assert.Contains(t, rr.Body.String(), `"MO,WE,FR"`)
}
