package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/app"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

// closeTimeout bounds flushing audit entries and disconnecting from MongoDB.
const closeTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	application := app.InitializeApp(*cfg)
	server := app.NewServer(application.Router, cfg.Server.Port, cfg.Server.RequestTimeout)

	runErr := server.Run()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := application.Close(ctx); err != nil {
		log := logger.Component("main")
		log.Error().Err(err).Msg("Application close failed")
	}

	if runErr != nil {
		log := logger.Component("main")
		log.Error().Err(runErr).Msg("Server error")
	}
	return runErr
}
