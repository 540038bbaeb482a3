package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "energyvalue",
	Short:         "Multi-day meal allocation service",
	SilenceUsage:  true,
	RunE:          serve,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json); EV_* variables override it")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
