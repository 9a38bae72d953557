package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Freeeeeet/schedule_builder/internal/app"
	"github.com/Freeeeeet/schedule_builder/internal/config"
	"github.com/Freeeeeet/schedule_builder/internal/controller"
	"github.com/Freeeeeet/schedule_builder/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireBot(); err != nil {
		log.Fatalf("Invalid bot config: %v", err)
	}

	logger := app.NewLogger(cfg, "schedule-bot")
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("Starting schedule bot",
		zap.String("environment", cfg.Environment),
		zap.Int("token_length", len(cfg.TelegramToken)),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	container, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build application", zap.Error(err))
	}
	defer container.Close()

	if err := container.Scheduler.Start(ctx); err != nil {
		logger.Fatal("Failed to start scheduler", zap.Error(err))
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// nil *CalendarService не должен превратиться в ненулевой интерфейс
	var cal handlers.Calendar
	if container.Calendar != nil {
		cal = container.Calendar
	}

	botController := controller.NewBotController(
		b,
		container.Planner,
		cal,
		container.Students,
		container.Quarters,
		container.Location,
		logger.Named("bot"),
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Bot commands menu not set", zap.Error(err))
	}

	if err := botController.Start(ctx); err != nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}
	logger.Info("Bot stopped")
}
