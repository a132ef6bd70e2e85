package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	systemName string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "kibitz",
	Short: "Kibitz contract bridge bidding engine",
	Long:  `Kibitz suggests and explains bridge bids from a declarative convention table backed by exact hand inference.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&systemName, "system", "", "bidding system (default from config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}

func Execute() error {
	return rootCmd.Execute()
}
