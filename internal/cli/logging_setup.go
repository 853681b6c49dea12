package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/recbatch/internal/config"
	"github.com/rshade/recbatch/internal/logging"
)

// Environment overrides for logging, applied between config file and flags.
const (
	envLogLevel  = "RECBATCH_LOG_LEVEL"
	envLogFormat = "RECBATCH_LOG_FORMAT"
)

// configCtxKey carries the loaded *config.Config in the command context.
type configCtxKey struct{}

// configFromContext returns the config loaded during setupLogging. Falls back
// to a fresh load so helpers stay usable outside a full command run (tests).
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configCtxKey{}).(*config.Config); ok {
		return cfg
	}
	return config.New()
}

// setupLogging loads configuration and configures logging based on config
// file, environment, and CLI flags. The resulting logger, trace ID, and
// config are installed into the command context.
func setupLogging(cmd *cobra.Command) (logging.LogPathResult, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	if configPath != "" {
		loaded, err := config.LoadFrom(configPath)
		if err != nil {
			return logging.LogPathResult{}, err
		}
		cfg = loaded
	} else {
		cfg = config.New()
	}

	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	if envLevel := os.Getenv(envLogLevel); envLevel != "" && !debug {
		loggingCfg.Level = envLevel
	}
	if envFormat := os.Getenv(envLogFormat); envFormat != "" {
		loggingCfg.Format = envFormat
	}

	// Ensure the log directory exists after all overrides have been applied.
	if loggingCfg.File != "" {
		if err := cfg.EnsureLogDir(); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not create log directory: %v\n", err)
		}
	}

	result := logging.NewLoggerWithPath(loggingCfg.ToLoggingConfig())
	logger := logging.ComponentLogger(result.Logger, "cli")

	if result.UsingFile {
		logging.PrintLogPathMessage(cmd.ErrOrStderr(), result.FilePath)
	} else if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	logger = logger.With().Str("trace_id", traceID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, configCtxKey{}, cfg)
	cmd.SetContext(ctx)

	logger.Info().Str("command", cmd.Name()).Msg("command started")

	return result, nil
}
