package config

import (
	"errors"
	"fmt"
	"time"

	"cosmossdk.io/math"
	"github.com/go-playground/validator/v10"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/telemetry"
)

const (
	defaultNominalResistance  = "330"
	defaultDeviationThreshold = "2.0"

	defaultPlotFile   = "ohm_law_regression.png"
	defaultPlotWidth  = 10.0 // inches
	defaultPlotHeight = 6.0  // inches

	defaultMaxPercentError   = 5.0
	defaultMinRSquared       = 0.99
	defaultMaxInterceptVolts = 0.1

	defaultListenAddr      = "0.0.0.0:7272"
	defaultSrvWriteTimeout = 15 * time.Second
	defaultSrvReadTimeout  = 15 * time.Second

	defaultServiceName = "ohm-analyzer"

	SampleConfigPath = "ohm-analyzer.example.toml"
)

var (
	validate = validator.New()

	// ErrEmptyConfigPath defines a sentinel error for an empty config path.
	ErrEmptyConfigPath = errors.New("empty configuration file path")

	// maxDeviationThreshold is the maximum amount of standard deviations a
	// sample may be configured to sit from the mean before being screened.
	maxDeviationThreshold = math.LegacyMustNewDecFromStr("3.0")
)

type (
	// Config defines all necessary ohm-analyzer configuration parameters.
	Config struct {
		ConfigDir string           `mapstructure:"config_dir"`
		Analysis  Analysis         `mapstructure:"analysis"`
		Output    Output           `mapstructure:"output"`
		Verify    Verify           `mapstructure:"verify"`
		Server    Server           `mapstructure:"server"`
		Telemetry telemetry.Config `mapstructure:"telemetry"`
	}

	// Analysis defines the parameters of the resistance analysis. Decimal
	// values are kept as strings and parsed with LegacyDec.
	Analysis struct {
		NominalResistance  string `mapstructure:"nominal_resistance" validate:"required"`
		DeviationThreshold string `mapstructure:"deviation_threshold" validate:"required"`
	}

	// Output defines where report artifacts are written. Plot dimensions are
	// in inches.
	Output struct {
		PlotFile   string  `mapstructure:"plot_file"`
		PlotWidth  float64 `mapstructure:"plot_width" validate:"gt=0"`
		PlotHeight float64 `mapstructure:"plot_height" validate:"gt=0"`
		ExportFile string  `mapstructure:"export_file"`
	}

	// Verify defines the tolerances used to judge whether the circuit behaves
	// ohmically.
	Verify struct {
		MaxPercentError   float64 `mapstructure:"max_percent_error" validate:"gte=0"`
		MinRSquared       float64 `mapstructure:"min_r_squared" validate:"gte=0,lte=1"`
		MaxInterceptVolts float64 `mapstructure:"max_intercept_volts" validate:"gte=0"`
	}

	// Server defines the API server configuration.
	Server struct {
		ListenAddr     string        `mapstructure:"listen_addr" validate:"required"`
		WriteTimeout   time.Duration `mapstructure:"write_timeout"`
		ReadTimeout    time.Duration `mapstructure:"read_timeout"`
		VerboseCORS    bool          `mapstructure:"verbose_cors"`
		AllowedOrigins []string      `mapstructure:"allowed_origins"`
	}
)

// defaults returns the value of every key that has a default, keyed by its
// viper path.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"analysis.nominal_resistance":  defaultNominalResistance,
		"analysis.deviation_threshold": defaultDeviationThreshold,
		"output.plot_file":             defaultPlotFile,
		"output.plot_width":            defaultPlotWidth,
		"output.plot_height":           defaultPlotHeight,
		"output.export_file":           "",
		"verify.max_percent_error":     defaultMaxPercentError,
		"verify.min_r_squared":         defaultMinRSquared,
		"verify.max_intercept_volts":   defaultMaxInterceptVolts,
		"server.listen_addr":           defaultListenAddr,
		"server.write_timeout":         defaultSrvWriteTimeout,
		"server.read_timeout":          defaultSrvReadTimeout,
		"server.verbose_cors":          false,
		"telemetry.service_name":       defaultServiceName,
		"telemetry.enabled":            false,
	}
}

// telemetryValidation is custom validation for the Telemetry struct.
func telemetryValidation(sl validator.StructLevel) {
	tel := sl.Current().Interface().(telemetry.Config)

	if tel.Enabled && len(tel.ServiceName) == 0 {
		sl.ReportError(tel.Enabled, "enabled", "Enabled", "enabledNoOptions", "")
	}
}

// Validate returns an error if the Config object is invalid.
func (c Config) Validate() (err error) {
	if err = c.validateAnalysis(); err != nil {
		return err
	}

	validate.RegisterStructValidation(telemetryValidation, telemetry.Config{})
	return validate.Struct(c)
}

func (c Config) validateAnalysis() error {
	nominal, err := c.NominalResistance()
	if err != nil {
		return err
	}
	if nominal.IsZero() {
		return types.ErrDivisionByZero.Wrap("nominal resistance must be non-zero")
	}
	if nominal.IsNegative() {
		return fmt.Errorf("nominal resistance must be positive")
	}

	threshold, err := c.DeviationThreshold()
	if err != nil {
		return err
	}
	if !threshold.IsPositive() {
		return fmt.Errorf("deviation threshold must be positive")
	}
	if threshold.GT(maxDeviationThreshold) {
		return fmt.Errorf("deviation threshold must not exceed 3.0")
	}
	return nil
}

// NominalResistance parses the configured nominal resistance in ohms.
func (c Config) NominalResistance() (math.LegacyDec, error) {
	nominal, err := math.LegacyNewDecFromStr(c.Analysis.NominalResistance)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("nominal resistance must be numeric: %w", err)
	}
	return nominal, nil
}

// DeviationThreshold parses the configured outlier threshold in 𝜎.
func (c Config) DeviationThreshold() (math.LegacyDec, error) {
	threshold, err := math.LegacyNewDecFromStr(c.Analysis.DeviationThreshold)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("deviation threshold must be numeric: %w", err)
	}
	return threshold, nil
}
