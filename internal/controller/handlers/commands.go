package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/schedule_builder/internal/controller/keyboard"
	"github.com/Freeeeeet/schedule_builder/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const historyLimit = 5

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	student, err := h.students.Register(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)
	if err != nil {
		h.logger.Error("Failed to register student", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Registration failed. Please try again later.")
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Hi, %s!\n\n"+
			"I build class schedules from the course catalog, check professor ratings "+
			"and drop options where classes overlap.\n\n"+
			"Send /build to start or /help for all commands.",
		html.EscapeString(student.FirstName),
	)
	h.sendMessage(ctx, b, update.Message.Chat.ID, welcomeText, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel сбрасывает текущий диалог
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Nothing to cancel.", nil)
		return
	}
	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Cancelled.", nil)
}

// HandleBuild начинает диалог /build с выбора четверти
func (h *Handlers) HandleBuild(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	telegramID := update.Message.From.ID
	if _, ok := h.requireStudent(ctx, b, update.Message.Chat.ID, telegramID); !ok {
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateBuildQuarter)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🗓 <b>New schedule</b>\n\nStep 1/4. Pick a quarter:",
		keyboard.Quarters(h.quarters))
}

// HandleHistory показывает последние генерации студента
func (h *Handlers) HandleHistory(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	student, ok := h.requireStudent(ctx, b, chatID, update.Message.From.ID)
	if !ok {
		return
	}

	runs, err := h.planner.RecentRuns(ctx, student.ID, historyLimit)
	if err != nil {
		h.logger.Error("Failed to list runs", zap.Int64("student_id", student.ID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Could not load your history.")
		return
	}
	h.sendMessage(ctx, b, chatID, formatHistory(runs, h.location), nil)
}

// HandleCalendar спрашивает имя календаря для экспорта
func (h *Handlers) HandleCalendar(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID
	student, ok := h.requireStudent(ctx, b, chatID, update.Message.From.ID)
	if !ok {
		return
	}
	if h.calendar == nil {
		h.sendError(ctx, b, chatID, "Google Calendar export is not configured on this bot.")
		return
	}

	current := student.CalendarName
	if current == "" {
		current = "Class Schedule"
	}
	h.stateManager.SetState(student.TelegramID, state.StateCalendarName)
	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("📅 Current calendar: <b>%s</b>\n\nSend a new calendar name or /cancel.", html.EscapeString(current)),
		nil)
}

// HandleTextMessage обрабатывает текст в зависимости от шага диалога
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	// команды обрабатываются своими хэндлерами
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	switch h.stateManager.GetState(telegramID) {
	case state.StateBuildCourses:
		h.handleCoursesInput(ctx, b, update)
	case state.StateBuildTeacherPreference:
		h.handlePreferenceInput(ctx, b, update)
	case state.StateCalendarName:
		h.handleCalendarNameInput(ctx, b, update)
	case state.StateBuildQuarter, state.StateBuildCount:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Please use the buttons above or /cancel.", nil)
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID, "I did not understand that. Send /build to create a schedule or /help.", nil)
	}
}
