package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/calendar"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	gcal "google.golang.org/api/calendar/v3"
)

const DefaultCalendarName = "Class Schedule"

// CalendarClient доступ к Google Calendar
type CalendarClient interface {
	GetOrCreateCalendar(ctx context.Context, name string) (string, error)
	InsertEvent(ctx context.Context, calendarID string, ev *gcal.Event) (*gcal.Event, error)
	Location() *time.Location
}

// ExportStore журнал выгрузок
type ExportStore interface {
	Create(ctx context.Context, e *model.CalendarExport) error
}

// AddResult итог добавления расписания в календарь
type AddResult struct {
	CalendarID string   `json:"calendar_id"`
	EventIDs   []string `json:"event_ids"`
	Skipped    []string `json:"skipped,omitempty"`
}

type CalendarService struct {
	client  CalendarClient
	planner *PlannerService
	exports ExportStore
	logger  *zap.Logger
}

// NewCalendarService; exports может быть nil
func NewCalendarService(client CalendarClient, planner *PlannerService, exports ExportStore, logger *zap.Logger) *CalendarService {
	return &CalendarService{
		client:  client,
		planner: planner,
		exports: exports,
		logger:  logger,
	}
}

// AddToCalendar создаёт (или находит) календарь name и добавляет в него занятия.
// Занятия с неразбираемым временем пропускаются.
func (s *CalendarService) AddToCalendar(ctx context.Context, name string, entries []model.MeetingEntry) (*AddResult, error) {
	if len(entries) == 0 {
		return nil, ErrEmptySchedule
	}
	if name == "" {
		name = DefaultCalendarName
	}

	calendarID, err := s.client.GetOrCreateCalendar(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get calendar: %w", err)
	}

	result := &AddResult{CalendarID: calendarID, EventIDs: []string{}}
	for _, e := range entries {
		ev, err := calendar.BuildEvent(e, s.client.Location())
		if err != nil {
			s.logger.Warn("Skipping meeting", zap.String("summary", e.Summary), zap.Error(err))
			result.Skipped = append(result.Skipped, e.Summary)
			continue
		}

		created, err := s.client.InsertEvent(ctx, calendarID, ev)
		if err != nil {
			return nil, fmt.Errorf("add %s: %w", e.Summary, err)
		}
		result.EventIDs = append(result.EventIDs, created.Id)
	}

	s.logger.Info("Schedule added to calendar",
		zap.String("calendar", name),
		zap.String("calendar_id", calendarID),
		zap.Int("events", len(result.EventIDs)),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// AddCandidate добавляет в календарь вариант index сохранённой генерации
func (s *CalendarService) AddCandidate(ctx context.Context, runID uuid.UUID, index int, name string) (*AddResult, error) {
	candidate, err := s.planner.Candidate(ctx, runID, index)
	if err != nil {
		return nil, err
	}

	result, err := s.AddToCalendar(ctx, name, candidate.Schedule)
	if err != nil {
		return nil, err
	}

	if s.exports != nil {
		export := &model.CalendarExport{
			RunID:          runID,
			CandidateIndex: index,
			CalendarID:     result.CalendarID,
			EventCount:     len(result.EventIDs),
		}
		if err := s.exports.Create(ctx, export); err != nil {
			s.logger.Error("Failed to record calendar export", zap.String("run_id", runID.String()), zap.Error(err))
		}
	}

	return result, nil
}
