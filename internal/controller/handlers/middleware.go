package handlers

import (
	"bytes"
	"context"

	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireStudent находит студента по Telegram ID.
// Возвращает student и true если OK, nil и false если нет.
func (h *Handlers) requireStudent(ctx context.Context, b *bot.Bot, chatID, telegramID int64) (*model.Student, bool) {
	student, err := h.students.GetByTelegramID(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to get student", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Something went wrong. Please try again later.")
		return nil, false
	}
	if student == nil {
		h.sendError(ctx, b, chatID, "❌ You are not registered yet. Send /start first.")
		return nil, false
	}
	return student, true
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет HTML сообщение с необязательной клавиатурой
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handlers) sendDocument(ctx context.Context, b *bot.Bot, chatID int64, filename string, data []byte, caption string) {
	_, err := b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID:   chatID,
		Document: &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption:  caption,
	})
	if err != nil {
		h.logger.Error("Failed to send document",
			zap.Int64("chat_id", chatID),
			zap.String("filename", filename),
			zap.Error(err),
		)
	}
}

// answerCallback отвечает на callback query; alert показывает всплывающее окно
func answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string, alert bool) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
}

// callbackChatID извлекает чат из callback query
func callbackChatID(callback *models.CallbackQuery) (int64, bool) {
	if callback.Message.Message != nil {
		return callback.Message.Message.Chat.ID, true
	}
	return 0, false
}
