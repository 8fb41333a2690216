package main

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/trailhead/internal/config"
	"github.com/aretw0/trailhead/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trailhead",
		Short:         "MCP tool server for the National Park Service API",
		Long:          `Trailhead exposes national park search, details, alerts, visitor centers, campgrounds and events as MCP tools.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("env-file", "", "Path to a .env file (default .env, or ENV_FILE_PATH)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
	root.PersistentFlags().String("log-format", "", "Log format: text or json (overrides LOG_FORMAT)")

	root.AddCommand(
		newServeCmd(),
		newToolsCmd(),
		newCallCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger, applying flag overrides.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	levelFlag, _ := cmd.Flags().GetString("log-level")
	formatFlag, _ := cmd.Flags().GetString("log-format")

	cfg, err := config.Load(config.Options{
		EnvFile: envFile,
		Logger:  bootstrapLogger(cmd, levelFlag, formatFlag),
	})
	if err != nil {
		return nil, nil, err
	}
	if levelFlag != "" {
		cfg.LogLevel = levelFlag
	}
	if formatFlag != "" {
		cfg.LogFormat = formatFlag
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, logging.Format(cfg.LogFormat))
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}
	return cfg, logger, nil
}

// bootstrapLogger reports what happens while the configuration itself is
// loaded. Only flags and the process environment are known at that point.
func bootstrapLogger(cmd *cobra.Command, levelFlag, formatFlag string) *slog.Logger {
	lvl := cmp.Or(levelFlag, os.Getenv("LOG_LEVEL"), config.DefaultLogLevel)
	level, err := logging.ParseLevel(lvl)
	if err != nil {
		level = slog.LevelInfo
	}
	format := cmp.Or(formatFlag, os.Getenv("LOG_FORMAT"), string(logging.FormatText))
	return logging.NewWithWriter(cmd.ErrOrStderr(), level, logging.Format(format))
}
