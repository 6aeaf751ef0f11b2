package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ojo-network/ohm-analyzer/config"
)

const (
	logLevelJSON = "json"
	logLevelText = "text"

	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

// NewRootCmd returns the ohm-analyzer root command with all sub-commands
// attached.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ohm-analyzer",
		Short: "ohm-analyzer verifies Ohm's law on a voltage/current dataset",
		Long: `ohm-analyzer computes per-sample resistances, summary statistics and a
least-squares fit of voltage against current, then compares both resistance
estimates against the nominal resistor value.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagLogLevel, zerolog.InfoLevel.String(), "logging level")
	rootCmd.PersistentFlags().String(flagLogFormat, logLevelText, "logging format; must be either json or text")

	rootCmd.AddCommand(
		getAnalyzeCmd(),
		getServeCmd(),
		getVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command and exits with a non-zero code on failure.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// getLogger builds the zerolog logger described by the persistent log flags.
func getLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	logLvlStr, err := cmd.Flags().GetString(flagLogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}

	logLvl, err := zerolog.ParseLevel(logLvlStr)
	if err != nil {
		return zerolog.Logger{}, err
	}

	logFormatStr, err := cmd.Flags().GetString(flagLogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}

	var logWriter io.Writer
	switch strings.ToLower(logFormatStr) {
	case logLevelJSON:
		logWriter = cmd.ErrOrStderr()

	case logLevelText:
		logWriter = zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}

	default:
		return zerolog.Logger{}, fmt.Errorf("invalid logging format: %s", logFormatStr)
	}

	return zerolog.New(logWriter).Level(logLvl).With().Timestamp().Logger(), nil
}

// loadConfig reads the optional config file argument.
func loadConfig(args []string) (config.Config, error) {
	var configPath string
	if len(args) > 0 {
		configPath = args[0]
	}
	return config.LoadConfigFromFlags(configPath, "")
}

// trapSignal will listen for any OS signal and cancel the context to exit
// gracefully.
func trapSignal(cancel context.CancelFunc, logger zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)

	signal.Notify(sigCh, syscall.SIGTERM)
	signal.Notify(sigCh, syscall.SIGINT)

	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("caught signal; shutting down...")
		cancel()
	}()
}
