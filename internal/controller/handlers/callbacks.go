package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/schedule_builder/internal/calendar"
	"github.com/Freeeeeet/schedule_builder/internal/controller/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleCallbackQuery распределяет нажатия inline кнопок по обработчикам
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	callback := update.CallbackQuery
	data := callback.Data

	h.logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
	)

	switch {
	case strings.HasPrefix(data, keyboard.PrefixQuarter):
		h.handleQuarterSelected(ctx, b, callback)
	case strings.HasPrefix(data, keyboard.PrefixCount):
		h.handleCountSelected(ctx, b, callback)
	case data == keyboard.SkipPreference:
		h.handlePreferenceSkip(ctx, b, callback)
	case data == keyboard.CancelBuild:
		h.handleBuildCancel(ctx, b, callback)
	case strings.HasPrefix(data, keyboard.PrefixCalendar):
		h.handleAddToCalendar(ctx, b, callback)
	case strings.HasPrefix(data, keyboard.PrefixICS):
		h.handleExport(ctx, b, callback, keyboard.PrefixICS)
	case strings.HasPrefix(data, keyboard.PrefixCSV):
		h.handleExport(ctx, b, callback, keyboard.PrefixCSV)
	default:
		h.logger.Warn("Unknown callback data", zap.String("data", data))
		answerCallback(ctx, b, callback.ID, "", false)
	}
}

// handleAddToCalendar добавляет вариант в Google Calendar студента
func (h *Handlers) handleAddToCalendar(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	chatID, ok := callbackChatID(callback)
	if !ok {
		answerCallback(ctx, b, callback.ID, "", false)
		return
	}
	if h.calendar == nil {
		answerCallback(ctx, b, callback.ID, "Google Calendar export is not configured.", true)
		return
	}

	runID, index, err := keyboard.ParseCandidateRef(callback.Data, keyboard.PrefixCalendar)
	if err != nil {
		h.logger.Warn("Bad calendar callback", zap.String("data", callback.Data), zap.Error(err))
		answerCallback(ctx, b, callback.ID, "Invalid button", true)
		return
	}

	student, ok := h.requireStudent(ctx, b, chatID, callback.From.ID)
	if !ok {
		answerCallback(ctx, b, callback.ID, "", false)
		return
	}
	answerCallback(ctx, b, callback.ID, "Adding to Google Calendar…", false)

	result, err := h.calendar.AddCandidate(ctx, runID, index, student.CalendarName)
	if err != nil {
		h.logger.Error("Failed to add schedule to calendar",
			zap.String("run_id", runID.String()),
			zap.Int("index", index),
			zap.Error(err),
		)
		h.sendError(ctx, b, chatID, "❌ "+candidateError(err))
		return
	}

	text := fmt.Sprintf("✅ Option %d added to Google Calendar: %d class(es).", index+1, len(result.EventIDs))
	if len(result.Skipped) > 0 {
		text += fmt.Sprintf("\nSkipped (unreadable times): %s", html.EscapeString(strings.Join(result.Skipped, ", ")))
	}
	h.sendMessage(ctx, b, chatID, text, nil)
}

// handleExport отправляет вариант файлом .ics или .csv
func (h *Handlers) handleExport(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, prefix string) {
	chatID, ok := callbackChatID(callback)
	if !ok {
		answerCallback(ctx, b, callback.ID, "", false)
		return
	}

	runID, index, err := keyboard.ParseCandidateRef(callback.Data, prefix)
	if err != nil {
		answerCallback(ctx, b, callback.ID, "Invalid button", true)
		return
	}

	candidate, err := h.planner.Candidate(ctx, runID, index)
	if err != nil {
		answerCallback(ctx, b, callback.ID, candidateError(err), true)
		return
	}

	name := fmt.Sprintf("Option %d", index+1)
	var (
		data     []byte
		filename string
	)
	if prefix == keyboard.PrefixICS {
		data, err = calendar.ExportICS(name, candidate.Schedule, h.location)
		filename = fmt.Sprintf("schedule-%d.ics", index+1)
	} else {
		data, err = calendar.ExportCSV(candidate.Schedule)
		filename = fmt.Sprintf("schedule-%d.csv", index+1)
	}
	if err != nil {
		h.logger.Warn("Failed to export schedule",
			zap.String("run_id", runID.String()),
			zap.String("format", strings.TrimSuffix(prefix, ":")),
			zap.Error(err),
		)
		answerCallback(ctx, b, callback.ID, "This option has no classes with readable times.", true)
		return
	}

	answerCallback(ctx, b, callback.ID, "", false)
	h.sendDocument(ctx, b, chatID, filename, data, name)
}
