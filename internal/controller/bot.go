package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/schedule_builder/internal/controller/handlers"
	"github.com/Freeeeeet/schedule_builder/internal/controller/state"
	"github.com/Freeeeeet/schedule_builder/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	states   *state.Manager
	logger   *zap.Logger
}

// NewBotController собирает обработчики бота. calendar может быть nil.
func NewBotController(
	botInstance *bot.Bot,
	planner handlers.Planner,
	calendar handlers.Calendar,
	students handlers.Students,
	quarters []model.Quarter,
	location *time.Location,
	logger *zap.Logger,
) *BotController {
	stateManager := state.NewManager(state.DefaultTTL)

	cmdHandlers := handlers.NewHandlers(
		planner,
		calendar,
		students,
		quarters,
		location,
		stateManager,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		states:   stateManager,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/build", bot.MatchTypeExact, c.handlers.HandleBuild)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/history", bot.MatchTypeExact, c.handlers.HandleHistory)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/calendar", bot.MatchTypeExact, c.handlers.HandleCalendar)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start the bot"},
		{Command: "build", Description: "🗓 Build a class schedule"},
		{Command: "history", Description: "🕘 Recent schedule builds"},
		{Command: "calendar", Description: "📅 Google Calendar name"},
		{Command: "cancel", Description: "✖️ Cancel the current dialog"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling до отмены ctx
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	go c.sweepDialogs(ctx)
	c.bot.Start(ctx)
	return nil
}

// sweepDialogs периодически удаляет брошенные диалоги
func (c *BotController) sweepDialogs(ctx context.Context) {
	ticker := time.NewTicker(state.DefaultTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.states.Sweep(); n > 0 {
				c.logger.Debug("Expired dialogs removed", zap.Int("count", n))
			}
		}
	}
}
