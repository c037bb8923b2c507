// Package logging builds the zap logger. The terminal belongs to the game
// while it runs, so interactive logs go to a file or nowhere.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tatianab/swim-idle/internal/config"
)

// New builds a logger writing to cfg.File. An empty file yields a no-op
// logger.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}
	return build(cfg, []string{cfg.File})
}

// NewConsole builds a logger writing to stderr, for headless runs.
func NewConsole(cfg config.LoggingConfig) (*zap.Logger, error) {
	return build(cfg, []string{"stderr"})
}

func build(cfg config.LoggingConfig, outputs []string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = outputs
	zapCfg.ErrorOutputPaths = outputs

	return zapCfg.Build()
}
