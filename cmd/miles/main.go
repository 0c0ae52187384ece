package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/TheoLvs/music-analysis/config"
	"github.com/TheoLvs/music-analysis/utils"
)

var (
	yellow = color.New(color.FgYellow)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
)

var (
	configPath string
	logLevel   string
	logJSON    bool
	verbose    bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:           "miles",
	Short:         "Explore music files: spectrograms, tempo, beats and key",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			c.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-json") {
			c.LogJSON = logJSON
		}
		cfg = c
		return utils.SetupLogging(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&logJSON, "log-json", false, "log as JSON")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress of every track")
}

func logger() logrus.FieldLogger {
	return logrus.StandardLogger()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		red.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
