package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	logger *zap.Logger
	undo   func()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "hashlife",
		Short:        "Run Life-like cellular automata with the hashlife algorithm",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.logLevel, opts.logFormat)
			if err != nil {
				return err
			}
			opts.logger = logger
			opts.undo = zap.ReplaceGlobals(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
			if opts.undo != nil {
				opts.undo()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML run configuration; flags override its values")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log format: console or json")

	cmd.AddCommand(newRunCmd(opts), newRulesCmd())
	return cmd
}

func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
	case "json":
		cfg = zap.NewProductionConfig()
	default:
		return nil, errors.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	return logger, errors.WithStack(err)
}
