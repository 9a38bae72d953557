package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/schedule_builder/internal/controller/keyboard"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/Freeeeeet/schedule_builder/internal/render"
	"github.com/Freeeeeet/schedule_builder/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// runBuild запускает генерацию и отправляет результат
func (h *Handlers) runBuild(ctx context.Context, b *bot.Bot, chatID int64, student *model.Student, req model.ScheduleRequest) {
	h.sendMessage(ctx, b, chatID, "⏳ Building your schedule. This usually takes under a minute…", nil)
	b.SendChatAction(ctx, &bot.SendChatActionParams{ChatID: chatID, Action: models.ChatActionTyping})

	run, err := h.planner.Generate(ctx, &student.ID, req)
	if err != nil {
		h.logger.Error("Failed to generate schedule",
			zap.Int64("student_id", student.ID),
			zap.Strings("courses", req.Courses),
			zap.Error(err),
		)
		h.sendError(ctx, b, chatID, "❌ Could not build a schedule right now. Please try again later.")
		return
	}

	h.sendMessage(ctx, b, chatID, formatRunSummary(run), nil)
	if len(run.Candidates) == 0 {
		h.sendMessage(ctx, b, chatID, "No schedule options were proposed for these courses. Check the course codes and try /build again.", nil)
		return
	}

	for i, c := range run.Candidates {
		h.sendCandidate(ctx, b, chatID, run.ID, i, c)
	}
}

// sendCandidate отправляет описание варианта и картинку недели с кнопками экспорта
func (h *Handlers) sendCandidate(ctx context.Context, b *bot.Bot, chatID int64, runID uuid.UUID, index int, c model.ScheduleCandidate) {
	conflicts := h.planner.Filter().Conflicts(c.Schedule)
	markup := keyboard.Candidate(runID, index, h.calendar != nil)

	image, err := render.WeekImage(fmt.Sprintf("Option %d", index+1), c.Schedule, conflicts)
	if err != nil {
		h.logger.Warn("Failed to render week image", zap.String("run_id", runID.String()), zap.Error(err))
		h.sendMessage(ctx, b, chatID, formatCandidate(index, c, conflicts), markup)
		return
	}

	h.sendMessage(ctx, b, chatID, formatCandidate(index, c, conflicts), nil)
	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID:      chatID,
		Photo:       &models.InputFileUpload{Filename: "week.png", Data: bytes.NewReader(image)},
		Caption:     fmt.Sprintf("Option %d", index+1),
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send week image", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// candidateError текст для пользователя по ошибке поиска варианта
func candidateError(err error) string {
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		return "This schedule is no longer available. Send /build again."
	case errors.Is(err, service.ErrCandidateIndex):
		return "This option does not exist."
	case errors.Is(err, service.ErrEmptySchedule):
		return "This option has no classes to export."
	default:
		return "Something went wrong. Please try again later."
	}
}
