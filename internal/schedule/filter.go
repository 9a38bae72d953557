package schedule

import (
	"fmt"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"go.uber.org/zap"
)

// Outcome ветка результата фильтрации
type Outcome int

const (
	// OutcomeFiltered: в Candidates только варианты без конфликтов
	OutcomeFiltered Outcome = iota
	// OutcomeUnfiltered: чистых вариантов не осталось, в Candidates исходный набор
	OutcomeUnfiltered
)

func (o Outcome) String() string {
	if o == OutcomeUnfiltered {
		return string(model.FilterOutcomeUnfiltered)
	}
	return string(model.FilterOutcomeFiltered)
}

// ReasonNoValidCandidates причина возврата нефильтрованного набора
const ReasonNoValidCandidates = "no conflict-free schedule candidates"

// FilterResult результат Filter.Apply
type FilterResult struct {
	Outcome    Outcome
	Candidates []model.ScheduleCandidate
	Total      int
	Dropped    int
	Reason     string
}

// Fallback сообщает, что вернули исходный набор
func (r FilterResult) Fallback() bool {
	return r.Outcome == OutcomeUnfiltered
}

// Notice текст для пользователя. Пустой, если ничего не отброшено.
func (r FilterResult) Notice() string {
	if r.Dropped == 0 {
		return ""
	}
	if r.Fallback() {
		return fmt.Sprintf(
			"All %d schedule options have time conflicts; showing them unfiltered. "+
				"Automatic conflict checking could not find a clean schedule.",
			r.Dropped,
		)
	}
	return fmt.Sprintf("Removed %d of %d schedule options because of time conflicts.", r.Dropped, r.Total)
}

// Filter отбирает варианты расписания без пересечений
type Filter struct {
	mode   Mode
	logger *zap.Logger
}

// NewFilter создаёт фильтр. logger может быть nil.
func NewFilter(mode Mode, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filter{mode: mode, logger: logger}
}

// Mode возвращает режим сравнения
func (f *Filter) Mode() Mode {
	return f.mode
}

// IsValid проверяет один вариант в режиме фильтра
func (f *Filter) IsValid(entries []model.MeetingEntry) bool {
	return isValid(entries, f.mode)
}

// Conflicts возвращает конфликтующие пары в режиме фильтра
func (f *Filter) Conflicts(entries []model.MeetingEntry) []Conflict {
	return conflicts(entries, f.mode)
}

// Apply оставляет варианты без конфликтов в исходном порядке.
// Если не осталось ни одного, возвращает исходный набор без изменений.
func (f *Filter) Apply(candidates []model.ScheduleCandidate) FilterResult {
	valid := make([]model.ScheduleCandidate, 0, len(candidates))
	for _, c := range candidates {
		if isValid(c.Schedule, f.mode) {
			valid = append(valid, c)
		}
	}

	result := FilterResult{
		Outcome:    OutcomeFiltered,
		Candidates: valid,
		Total:      len(candidates),
		Dropped:    len(candidates) - len(valid),
	}

	if len(valid) == 0 && len(candidates) > 0 {
		result.Outcome = OutcomeUnfiltered
		result.Candidates = candidates
		result.Reason = ReasonNoValidCandidates
	}

	if result.Dropped > 0 {
		f.logger.Info("Dropped conflicting schedule candidates",
			zap.Int("dropped", result.Dropped),
			zap.Int("total", result.Total),
			zap.String("mode", f.mode.String()),
		)
	}
	if result.Fallback() {
		f.logger.Warn("No valid schedule candidates survived, returning unfiltered set",
			zap.Int("candidates", result.Total),
		)
	}

	return result
}

// FilterValid фильтрует в режиме ModeDateTime без логирования
func FilterValid(candidates []model.ScheduleCandidate) FilterResult {
	return NewFilter(ModeDateTime, nil).Apply(candidates)
}
