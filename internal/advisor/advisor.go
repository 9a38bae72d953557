package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"go.uber.org/zap"
)

// Advisor строит промпты, вызывает модель и разбирает ответы
type Advisor struct {
	completer Completer
	logger    *zap.Logger
}

func New(completer Completer, logger *zap.Logger) *Advisor {
	return &Advisor{completer: completer, logger: logger}
}

// ExtractSections первый проход: какие секции и преподаватели есть у нужных курсов
func (a *Advisor) ExtractSections(ctx context.Context, courses []string, sections []model.CourseSection) ([]model.SectionChoice, error) {
	prompt := buildSectionsPrompt(courses, sections)

	text, err := a.completer.Complete(ctx, prompt, sectionsInference)
	if err != nil {
		return nil, fmt.Errorf("extract sections: %w", err)
	}

	var choices []model.SectionChoice
	if err := ExtractJSONArray(text, &choices); err != nil {
		a.logger.Warn("Model returned no section list", zap.Int("response_len", len(text)))
		return nil, fmt.Errorf("extract sections: %w", err)
	}

	a.logger.Info("Sections extracted", zap.Int("sections", len(choices)))
	return choices, nil
}

// ProposeSchedules второй проход: варианты расписания с плюсами и минусами.
// ratings выровнены по индексу с choices, nil: нет данных.
func (a *Advisor) ProposeSchedules(
	ctx context.Context,
	req model.ScheduleRequest,
	choices []model.SectionChoice,
	ratings []*model.ProfessorRating,
	sections []model.CourseSection,
) ([]model.ScheduleCandidate, error) {
	prompt, err := buildSchedulePrompt(req, choices, ratings, sections)
	if err != nil {
		return nil, err
	}

	text, err := a.completer.Complete(ctx, prompt, scheduleInference)
	if err != nil {
		return nil, fmt.Errorf("propose schedules: %w", err)
	}

	raw, err := OuterJSONArray(text)
	if err != nil {
		return nil, fmt.Errorf("propose schedules: %w", err)
	}

	var candidates []model.ScheduleCandidate
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}

	a.logger.Info("Schedules proposed", zap.Int("candidates", len(candidates)))
	return candidates, nil
}
