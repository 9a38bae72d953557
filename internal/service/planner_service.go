package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/catalog"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/ratings"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultNumSchedules   = 3
	maxNumSchedules       = 10
	defaultQuarter        = "Fall"
	defaultTimePreference = "any"
	defaultTeacherPref    = "Good teacher"
)

// SectionSource каталог секций курсов
type SectionSource interface {
	Sections(ctx context.Context) ([]model.CourseSection, error)
}

// ScheduleAdvisor AI-часть генерации
type ScheduleAdvisor interface {
	ExtractSections(ctx context.Context, courses []string, sections []model.CourseSection) ([]model.SectionChoice, error)
	ProposeSchedules(ctx context.Context, req model.ScheduleRequest, choices []model.SectionChoice, ratings []*model.ProfessorRating, sections []model.CourseSection) ([]model.ScheduleCandidate, error)
}

// PlannerService собирает варианты расписания и отсеивает конфликтующие
type PlannerService struct {
	catalog SectionSource
	advisor ScheduleAdvisor
	ratings ratings.Looker
	runs    RunStore
	filter  *schedule.Filter
	logger  *zap.Logger
}

func NewPlannerService(
	catalog SectionSource,
	advisor ScheduleAdvisor,
	lookup ratings.Looker,
	runs RunStore,
	filter *schedule.Filter,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		catalog: catalog,
		advisor: advisor,
		ratings: lookup,
		runs:    runs,
		filter:  filter,
		logger:  logger,
	}
}

// Filter фильтр, которым пользуется сервис
func (s *PlannerService) Filter() *schedule.Filter {
	return s.filter
}

// normalizeRequest подставляет значения по умолчанию
func normalizeRequest(req model.ScheduleRequest) model.ScheduleRequest {
	if req.Quarter == "" {
		req.Quarter = defaultQuarter
	}
	if req.TimePreference == "" {
		req.TimePreference = defaultTimePreference
	}
	if req.TeacherPreference == "" {
		req.TeacherPreference = defaultTeacherPref
	}
	if req.NumSchedules <= 0 {
		req.NumSchedules = defaultNumSchedules
	}
	if req.NumSchedules > maxNumSchedules {
		req.NumSchedules = maxNumSchedules
	}
	return req
}

// Generate выполняет полный цикл: каталог, AI, рейтинги, фильтр конфликтов, сохранение
func (s *PlannerService) Generate(ctx context.Context, studentID *int64, req model.ScheduleRequest) (*model.ScheduleRun, error) {
	req = normalizeRequest(req)

	all, err := s.catalog.Sections(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sections := catalog.FilterByCourses(all, req.Courses)

	choices, err := s.advisor.ExtractSections(ctx, req.Courses, sections)
	if err != nil {
		return nil, err
	}

	professors := s.lookupProfessors(ctx, choices)

	candidates, err := s.advisor.ProposeSchedules(ctx, req, choices, professors, sections)
	if err != nil {
		return nil, err
	}

	result := s.filter.Apply(candidates)

	run := &model.ScheduleRun{
		ID:         uuid.New(),
		StudentID:  studentID,
		Request:    req,
		Sections:   choices,
		Professors: professors,
		Candidates: result.Candidates,
		Outcome:    model.FilterOutcome(result.Outcome.String()),
		Dropped:    result.Dropped,
		Notice:     result.Notice(),
		CreatedAt:  time.Now(),
	}

	if err := s.runs.Create(ctx, run); err != nil {
		// Результат отдаём даже без сохранения
		s.logger.Error("Failed to save schedule run", zap.String("run_id", run.ID.String()), zap.Error(err))
	}

	s.logger.Info("Schedule generated",
		zap.String("run_id", run.ID.String()),
		zap.Strings("courses", req.Courses),
		zap.Int("sections", len(choices)),
		zap.Int("candidates", len(run.Candidates)),
		zap.String("outcome", string(run.Outcome)),
	)

	return run, nil
}

// lookupProfessors возвращает рейтинги, выровненные по choices; nil: нет данных
func (s *PlannerService) lookupProfessors(ctx context.Context, choices []model.SectionChoice) []*model.ProfessorRating {
	out := make([]*model.ProfessorRating, len(choices))
	seen := make(map[string]*model.ProfessorRating)

	for i, c := range choices {
		key := ratings.NameKey(c.Teacher)
		if key == "" {
			continue
		}
		if r, ok := seen[key]; ok {
			out[i] = r
			continue
		}

		r, err := s.ratings.Lookup(ctx, c.Teacher)
		if err != nil {
			if errors.Is(err, ratings.ErrNotFound) {
				s.logger.Debug("Professor not found", zap.String("teacher", c.Teacher))
			} else {
				s.logger.Warn("Failed to look up professor", zap.String("teacher", c.Teacher), zap.Error(err))
			}
		}
		seen[key] = r
		out[i] = r
	}
	return out
}

// GetRun возвращает сохранённую генерацию
func (s *PlannerService) GetRun(ctx context.Context, id uuid.UUID) (*model.ScheduleRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	if run == nil {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// Candidate возвращает вариант index генерации id
func (s *PlannerService) Candidate(ctx context.Context, id uuid.UUID, index int) (*model.ScheduleCandidate, error) {
	run, err := s.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(run.Candidates) {
		return nil, ErrCandidateIndex
	}
	return &run.Candidates[index], nil
}

// RecentRuns последние генерации студента
func (s *PlannerService) RecentRuns(ctx context.Context, studentID int64, limit int) ([]*model.ScheduleRun, error) {
	runs, err := s.runs.ListByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// CandidateReport результат проверки одного варианта
type CandidateReport struct {
	Index     int                 `json:"index"`
	Valid     bool                `json:"valid"`
	Conflicts []schedule.Conflict `json:"conflicts"`
}

// Validate проверяет присланные варианты без обращения к AI
func (s *PlannerService) Validate(candidates []model.ScheduleCandidate) (schedule.FilterResult, []CandidateReport) {
	reports := make([]CandidateReport, len(candidates))
	for i, c := range candidates {
		conflicts := s.filter.Conflicts(c.Schedule)
		if conflicts == nil {
			conflicts = []schedule.Conflict{}
		}
		reports[i] = CandidateReport{Index: i, Valid: len(conflicts) == 0, Conflicts: conflicts}
	}
	return s.filter.Apply(candidates), reports
}
