// Package app provides logger initialization.
package app

import (
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/config"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

// InitializeLogger sets up the global zerolog logger from cfg.
// An empty level means info.
func InitializeLogger(cfg config.LogConfig) {
	level := cfg.Level
	if level == "" {
		level = "info"
	}
	logger.Init(level, cfg.Pretty)
}
