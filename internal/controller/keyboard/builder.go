package keyboard

import (
	"fmt"
	"strconv"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
)

// Builder упрощает создание inline клавиатур
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

func NewBuilder() *Builder {
	return &Builder{
		rows: make([][]models.InlineKeyboardButton, 0),
	}
}

// Row добавляет новый ряд кнопок
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

func (b *Builder) Build() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: b.rows,
	}
}

// Префиксы callback data
const (
	PrefixQuarter  = "quarter:"  // quarter:Fall
	PrefixCount    = "count:"    // count:3
	PrefixCalendar = "cal:"      // cal:<run_id>:<index>
	PrefixICS      = "ics:"      // ics:<run_id>:<index>
	PrefixCSV      = "csv:"      // csv:<run_id>:<index>
	SkipPreference = "pref_skip" // оставить предпочтение по умолчанию
	CancelBuild    = "build_cancel"
)

// MaxCount верхняя граница кнопок выбора количества вариантов
const MaxCount = 5

// Quarters клавиатура выбора четверти, по две кнопки в ряд
func Quarters(quarters []model.Quarter) *models.InlineKeyboardMarkup {
	kb := NewBuilder()
	var row []models.InlineKeyboardButton
	for _, q := range quarters {
		row = append(row, Button(q.Label, PrefixQuarter+q.Value))
		if len(row) == 2 {
			kb.Row(row...)
			row = nil
		}
	}
	kb.Row(row...)
	kb.Row(Button("✖️ Cancel", CancelBuild))
	return kb.Build()
}

// Counts клавиатура выбора количества вариантов
func Counts() *models.InlineKeyboardMarkup {
	row := make([]models.InlineKeyboardButton, 0, MaxCount)
	for i := 1; i <= MaxCount; i++ {
		row = append(row, Button(strconv.Itoa(i), PrefixCount+strconv.Itoa(i)))
	}
	return NewBuilder().Row(row...).Build()
}

// Preference клавиатура шага предпочтений
func Preference(current string) *models.InlineKeyboardMarkup {
	return NewBuilder().
		Row(Button(fmt.Sprintf("Keep \"%s\"", current), SkipPreference)).
		Build()
}

// Candidate кнопки под вариантом расписания. withCalendar=false прячет Google Calendar.
func Candidate(runID uuid.UUID, index int, withCalendar bool) *models.InlineKeyboardMarkup {
	ref := CandidateRef(runID, index)
	kb := NewBuilder()
	if withCalendar {
		kb.Row(Button("📅 Add to Google Calendar", PrefixCalendar+ref))
	}
	kb.Row(
		Button("⬇️ .ics", PrefixICS+ref),
		Button("⬇️ .csv", PrefixCSV+ref),
	)
	return kb.Build()
}

// CandidateRef кодирует ссылку на вариант: <run_id>:<index>
func CandidateRef(runID uuid.UUID, index int) string {
	return runID.String() + ":" + strconv.Itoa(index)
}

// ParseCandidateRef разбирает callback data вида <prefix><run_id>:<index>
func ParseCandidateRef(data, prefix string) (uuid.UUID, int, error) {
	if len(data) < len(prefix) || data[:len(prefix)] != prefix {
		return uuid.Nil, 0, fmt.Errorf("unexpected callback prefix in %q", data)
	}
	rest := data[len(prefix):]
	if len(rest) < 38 || rest[36] != ':' {
		return uuid.Nil, 0, fmt.Errorf("invalid candidate reference %q", rest)
	}
	runID, err := uuid.Parse(rest[:36])
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("parse run id: %w", err)
	}
	index, err := strconv.Atoi(rest[37:])
	if err != nil || index < 0 {
		return uuid.Nil, 0, fmt.Errorf("invalid candidate index %q", rest[37:])
	}
	return runID, index, nil
}
