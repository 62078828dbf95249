package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cmdpkg "github.com/papillo-vmw/apitrace/internal/cmd"
	cfgpkg "github.com/papillo-vmw/apitrace/internal/config"
	logpkg "github.com/papillo-vmw/apitrace/pkg/log"
)

func main() {
	// Configuration: defaults, then optional file, then APITRACE_* env.
	cfg, err := cfgpkg.Load(os.Getenv("APITRACE_CONFIG"))
	if err != nil {
		// A broken config file should not leave the tool mute.
		fallback := cfgpkg.Default()
		logger := newLogger(fallback)
		logger.Error("loading config", logpkg.Err(err))
		os.Exit(1)
	}
	cfgpkg.FromEnv(&cfg)

	logger := newLogger(cfg)

	// Redirect standard library logs (used by Pebble) to our logger.
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "apitrace",
		Short: "Trace trimming and inspection CLI",
		Long:  "apitrace trims and inspects captured API trace files.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return applyLogFlags(cmd, logger)
		},
	}
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
	rootCmd.AddCommand(
		cmdpkg.NewTrimCommand(logger, cfg),
		cmdpkg.NewScanCommand(logger),
		cmdpkg.NewDisorderCommand(logger),
		cmdpkg.NewIndexCommand(logger, cfg),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// applyLogFlags overrides the logger's level and format from the root
// persistent flags. Flags win over config and environment.
func applyLogFlags(cmd *cobra.Command, logger logpkg.Logger) error {
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		level, err := logpkg.ParseLevel(v)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		base, ok := logger.(*logpkg.BaseLogger)
		if !ok {
			return nil
		}
		switch v {
		case "text":
			base.SetFormatter(&logpkg.TextFormatter{})
		case "json":
			base.SetFormatter(&logpkg.JSONFormatter{})
		default:
			return fmt.Errorf("unknown log format %q", v)
		}
	}
	return nil
}

func newLogger(cfg cfgpkg.Config) logpkg.Logger {
	logger, err := logpkg.ApplyConfig(&logpkg.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		logger = logpkg.NewLogger(
			logpkg.WithLevel(logpkg.InfoLevel),
			logpkg.WithFormatter(&logpkg.TextFormatter{}),
			logpkg.WithOutput(logpkg.NewConsoleOutput()),
		)
	}
	return logger
}
