package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ojo-network/ohm-analyzer/analysis"
	"github.com/ojo-network/ohm-analyzer/config"
	"github.com/ojo-network/ohm-analyzer/report"
	"github.com/ojo-network/ohm-analyzer/telemetry"
	"github.com/ojo-network/ohm-analyzer/verify"
)

const (
	flagNominalResistance = "nominal-resistance"
	flagPlotFile          = "plot-file"
	flagExportFile        = "export-file"
	flagStrict            = "strict"
)

func getAnalyzeCmd() *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [config-file]",
		Args:  cobra.MaximumNArgs(1),
		Short: "Analyzes the reference dataset and writes the console report and plot",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := getLogger(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(args)
			if err != nil {
				return err
			}
			if err := applyAnalyzeFlags(cmd, &cfg); err != nil {
				return err
			}

			strict, err := cmd.Flags().GetBool(flagStrict)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			// listen for and trap any OS signal to gracefully shutdown and exit
			trapSignal(cancel, logger)

			return runAnalysis(ctx, logger, cfg, cmd.OutOrStdout(), strict)
		},
	}

	analyzeCmd.Flags().String(flagNominalResistance, "", "nominal resistance in ohms; overrides analysis.nominal_resistance")
	analyzeCmd.Flags().String(flagPlotFile, "", "plot output path; overrides output.plot_file")
	analyzeCmd.Flags().String(flagExportFile, "", "CSV or YAML export path; overrides output.export_file")
	analyzeCmd.Flags().Bool(flagStrict, false, "exit with an error when a critical verification check fails")

	return analyzeCmd
}

// applyAnalyzeFlags overrides config values with explicitly set flags and
// validates the result.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed(flagNominalResistance) {
		v, err := flags.GetString(flagNominalResistance)
		if err != nil {
			return err
		}
		cfg.Analysis.NominalResistance = v
	}
	if flags.Changed(flagPlotFile) {
		v, err := flags.GetString(flagPlotFile)
		if err != nil {
			return err
		}
		cfg.Output.PlotFile = v
	}
	if flags.Changed(flagExportFile) {
		v, err := flags.GetString(flagExportFile)
		if err != nil {
			return err
		}
		cfg.Output.ExportFile = v
	}

	return cfg.Validate()
}

// newAnalyzer builds the analyzer from the analysis section of cfg.
func newAnalyzer(logger zerolog.Logger, cfg config.Config) (*analysis.Analyzer, error) {
	nominal, err := cfg.NominalResistance()
	if err != nil {
		return nil, err
	}
	threshold, err := cfg.DeviationThreshold()
	if err != nil {
		return nil, err
	}

	return analysis.New(logger, nominal, threshold), nil
}

func runAnalysis(ctx context.Context, logger zerolog.Logger, cfg config.Config, out io.Writer, strict bool) error {
	if _, err := telemetry.New(cfg.Telemetry); err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	analyzer, err := newAnalyzer(logger, cfg)
	if err != nil {
		return err
	}

	result, err := analyzer.Run(ctx, analysis.ReferenceSamples())
	if err != nil {
		return err
	}

	reporters := []report.Reporter{
		report.NewConsoleReporter(out, report.WithFindings(cfg.Verify)),
	}
	if cfg.Output.PlotFile != "" {
		reporters = append(reporters, report.NewPlotReporter(cfg.Output.PlotFile, cfg.Output.PlotWidth, cfg.Output.PlotHeight))
	}
	if cfg.Output.ExportFile != "" {
		exporter, err := report.NewExportReporter(cfg.Output.ExportFile)
		if err != nil {
			return err
		}
		reporters = append(reporters, exporter)
	}

	if err := report.Multi(reporters...).Render(ctx, result); err != nil {
		return err
	}
	logger.Info().
		Str("plot_file", cfg.Output.PlotFile).
		Str("export_file", cfg.Output.ExportFile).
		Msg("report written")

	findings := verify.VerifyReport(cfg.Verify, result)
	if strict && verify.Critical(findings) {
		return fmt.Errorf("critical verification findings for nominal resistance %.2f Ω", result.NominalResistance)
	}

	return nil
}
