package handlers

import (
	"context"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/controller/state"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/schedule"
	"github.com/Freeeeeet/schedule_builder/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Planner генерация и чтение вариантов расписания
type Planner interface {
	Generate(ctx context.Context, studentID *int64, req model.ScheduleRequest) (*model.ScheduleRun, error)
	Candidate(ctx context.Context, id uuid.UUID, index int) (*model.ScheduleCandidate, error)
	RecentRuns(ctx context.Context, studentID int64, limit int) ([]*model.ScheduleRun, error)
	Filter() *schedule.Filter
}

// Calendar добавление варианта в Google Calendar
type Calendar interface {
	AddCandidate(ctx context.Context, runID uuid.UUID, index int, name string) (*service.AddResult, error)
}

// Students регистрация и настройки студентов
type Students interface {
	Register(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.Student, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.Student, error)
	SavePreferences(ctx context.Context, student *model.Student, teacherPreference, calendarName string) error
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	planner      Planner
	calendar     Calendar // nil, если Google Calendar не настроен
	students     Students
	quarters     []model.Quarter
	location     *time.Location
	stateManager *state.Manager
	logger       *zap.Logger
}

// NewHandlers создаёт обработчики. calendar может быть nil.
func NewHandlers(
	planner Planner,
	calendar Calendar,
	students Students,
	quarters []model.Quarter,
	location *time.Location,
	stateManager *state.Manager,
	logger *zap.Logger,
) *Handlers {
	if location == nil {
		location = time.UTC
	}
	return &Handlers{
		planner:      planner,
		calendar:     calendar,
		students:     students,
		quarters:     quarters,
		location:     location,
		stateManager: stateManager,
		logger:       logger,
	}
}
