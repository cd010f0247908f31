package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-gamebot/internal/config"
	"github.com/vovakirdan/wirechat-gamebot/internal/log"
)

type rootOptions struct {
	configPath string
	envFiles   []string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "gamebot",
		Short:         "Chat room game lobby bot",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file (default ./config.yaml)")
	cmd.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level")

	cmd.AddCommand(
		newServeCmd(opts),
		newTokenCmd(opts),
		newSettingsCmd(opts),
		newHashPasswordCmd(),
	)
	return cmd
}

// loadConfig loads dotenv files and the config, and builds the logger.
func (o *rootOptions) loadConfig() (config.Config, *zerolog.Logger, error) {
	boot := log.New(o.logLevel)
	if err := config.LoadDotEnv(o.envFiles...); err != nil {
		return config.Config{}, boot, err
	}
	cfg, path, err := config.Load(boot, o.configPath)
	if err != nil {
		return cfg, boot, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	logger := log.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	logger.Debug().Str("path", path).Msg("config loaded")
	return cfg, logger, nil
}
