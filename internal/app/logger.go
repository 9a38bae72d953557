package app

import (
	"github.com/Freeeeeet/schedule_builder/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger создаёт логгер по окружению из конфига; service попадает в каждое сообщение
func NewLogger(cfg *config.Config, service string) *zap.Logger {
	logger, err := loggerConfig(cfg, service).Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

// loggerConfig JSON в production, цветная консоль в остальных окружениях
func loggerConfig(cfg *config.Config, service string) zap.Config {
	var zc zap.Config
	if cfg.IsProduction() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc.OutputPaths = []string{"stdout"}
	zc.InitialFields = map[string]interface{}{
		"service":     service,
		"environment": cfg.Environment,
	}
	return zc
}
