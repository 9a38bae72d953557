package handlers

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/Freeeeeet/schedule_builder/internal/catalog"
	"github.com/Freeeeeet/schedule_builder/internal/controller/keyboard"
	"github.com/Freeeeeet/schedule_builder/internal/controller/state"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	maxCourses           = 8
	maxPreferenceLength  = 300
	maxCalendarNameLen   = 100
	defaultTeacherPrefer = "Good teacher"
)

// quarterLabel подпись четверти по значению
func (h *Handlers) quarterLabel(value string) (string, bool) {
	for _, q := range h.quarters {
		if q.Value == value {
			return q.Label, true
		}
	}
	return "", false
}

// handleQuarterSelected шаг 1: выбрана четверть
func (h *Handlers) handleQuarterSelected(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	chatID, ok := callbackChatID(callback)
	if !ok {
		answerCallback(ctx, b, callback.ID, "", false)
		return
	}
	telegramID := callback.From.ID
	if h.stateManager.GetState(telegramID) != state.StateBuildQuarter {
		answerCallback(ctx, b, callback.ID, "This dialog has expired. Send /build again.", true)
		return
	}

	value := strings.TrimPrefix(callback.Data, keyboard.PrefixQuarter)
	label, ok := h.quarterLabel(value)
	if !ok {
		answerCallback(ctx, b, callback.ID, "Unknown quarter", true)
		return
	}

	h.stateManager.SetData(telegramID, state.KeyQuarter, value)
	h.stateManager.SetState(telegramID, state.StateBuildCourses)
	answerCallback(ctx, b, callback.ID, label, false)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"Quarter: <b>%s</b>\n\nStep 2/4. Send the courses you want to take, separated by commas.\n"+
			"Example: <code>MATH 51, PHYS 41, CS 106A</code>",
		html.EscapeString(label)), nil)
}

// handleCoursesInput шаг 2: список курсов
func (h *Handlers) handleCoursesInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	courses := catalog.ParseCourses(update.Message.Text)
	for i, c := range courses {
		courses[i] = strings.ToUpper(c)
	}
	if len(courses) == 0 {
		h.sendError(ctx, b, chatID, "❌ Please send at least one course, for example MATH 51.")
		return
	}
	if len(courses) > maxCourses {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Too many courses. Send at most %d.", maxCourses))
		return
	}

	student, ok := h.requireStudent(ctx, b, chatID, telegramID)
	if !ok {
		return
	}

	current := student.TeacherPreference
	if current == "" {
		current = defaultTeacherPrefer
	}

	h.stateManager.SetData(telegramID, state.KeyCourses, strings.Join(courses, ","))
	h.stateManager.SetData(telegramID, state.KeyTeacherPreference, current)
	h.stateManager.SetState(telegramID, state.StateBuildTeacherPreference)

	h.sendMessage(ctx, b, chatID, fmt.Sprintf(
		"Courses: <b>%s</b>\n\nStep 3/4. What kind of teachers do you prefer? "+
			"For example <i>easy grader, clear lectures</i>.",
		html.EscapeString(strings.Join(courses, ", "))),
		keyboard.Preference(current))
}

// handlePreferenceInput шаг 3: пожелания к преподавателям текстом
func (h *Handlers) handlePreferenceInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	pref := strings.TrimSpace(update.Message.Text)
	if pref == "" {
		h.sendError(ctx, b, chatID, "❌ Preference cannot be empty.")
		return
	}
	if len([]rune(pref)) > maxPreferenceLength {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Keep it under %d characters.", maxPreferenceLength))
		return
	}

	student, ok := h.requireStudent(ctx, b, chatID, telegramID)
	if !ok {
		return
	}
	if err := h.students.SavePreferences(ctx, student, pref, ""); err != nil {
		h.logger.Warn("Failed to save teacher preference", zap.Int64("student_id", student.ID), zap.Error(err))
	}

	h.stateManager.SetData(telegramID, state.KeyTeacherPreference, pref)
	h.askCount(ctx, b, chatID, telegramID)
}

// handlePreferenceSkip шаг 3: оставить сохранённое предпочтение
func (h *Handlers) handlePreferenceSkip(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	chatID, ok := callbackChatID(callback)
	if !ok || h.stateManager.GetState(callback.From.ID) != state.StateBuildTeacherPreference {
		answerCallback(ctx, b, callback.ID, "This dialog has expired. Send /build again.", true)
		return
	}
	answerCallback(ctx, b, callback.ID, "", false)
	h.askCount(ctx, b, chatID, callback.From.ID)
}

func (h *Handlers) askCount(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	h.stateManager.SetState(telegramID, state.StateBuildCount)
	h.sendMessage(ctx, b, chatID, "Step 4/4. How many schedule options should I prepare?", keyboard.Counts())
}

// handleCountSelected шаг 4: количество вариантов, запуск генерации
func (h *Handlers) handleCountSelected(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	chatID, ok := callbackChatID(callback)
	telegramID := callback.From.ID
	if !ok || h.stateManager.GetState(telegramID) != state.StateBuildCount {
		answerCallback(ctx, b, callback.ID, "This dialog has expired. Send /build again.", true)
		return
	}

	n, err := strconv.Atoi(strings.TrimPrefix(callback.Data, keyboard.PrefixCount))
	if err != nil || n < 1 || n > keyboard.MaxCount {
		answerCallback(ctx, b, callback.ID, "Invalid number", true)
		return
	}

	req := buildRequest(h.stateManager, telegramID, n)
	h.stateManager.ClearState(telegramID)
	answerCallback(ctx, b, callback.ID, "Working on it…", false)

	student, ok := h.requireStudent(ctx, b, chatID, telegramID)
	if !ok {
		return
	}
	h.runBuild(ctx, b, chatID, student, req)
}

// buildRequest собирает запрос из данных диалога
func buildRequest(sm *state.Manager, telegramID int64, count int) model.ScheduleRequest {
	var courses []string
	if raw := sm.GetString(telegramID, state.KeyCourses); raw != "" {
		courses = strings.Split(raw, ",")
	}
	return model.ScheduleRequest{
		Quarter:           sm.GetString(telegramID, state.KeyQuarter),
		Courses:           courses,
		TeacherPreference: sm.GetString(telegramID, state.KeyTeacherPreference),
		NumSchedules:      count,
	}
}

// handleBuildCancel кнопка отмены диалога
func (h *Handlers) handleBuildCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	h.stateManager.ClearState(callback.From.ID)
	answerCallback(ctx, b, callback.ID, "Cancelled", false)
	if chatID, ok := callbackChatID(callback); ok {
		h.sendMessage(ctx, b, chatID, "❌ Cancelled.", nil)
	}
}

// handleCalendarNameInput новое имя календаря для /calendar
func (h *Handlers) handleCalendarNameInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := update.Message.Chat.ID
	telegramID := update.Message.From.ID

	name := strings.TrimSpace(update.Message.Text)
	if name == "" || len([]rune(name)) > maxCalendarNameLen {
		h.sendError(ctx, b, chatID, fmt.Sprintf("❌ Calendar name must be 1 to %d characters.", maxCalendarNameLen))
		return
	}

	student, ok := h.requireStudent(ctx, b, chatID, telegramID)
	if !ok {
		return
	}
	if err := h.students.SavePreferences(ctx, student, "", name); err != nil {
		h.logger.Error("Failed to save calendar name", zap.Int64("student_id", student.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Could not save the calendar name.")
		return
	}
	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, chatID, fmt.Sprintf("✅ Schedules will be added to <b>%s</b>.", html.EscapeString(name)), nil)
}
