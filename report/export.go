package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

const (
	ExportFormatCSV  = "csv"
	ExportFormatYAML = "yaml"
)

var _ Reporter = (*ExportReporter)(nil)

// ExportReporter writes the report to a file for further processing. CSV
// exports hold the per-sample rows, summary statistics and comparison rows;
// YAML exports hold the whole report.
type ExportReporter struct {
	path   string
	format string
}

// NewExportReporter picks the export format from the file extension.
func NewExportReporter(path string) (*ExportReporter, error) {
	var format string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		format = ExportFormatCSV
	case ".yaml", ".yml":
		format = ExportFormatYAML
	default:
		return nil, fmt.Errorf("unsupported export file extension: %s", path)
	}

	return &ExportReporter{path: path, format: format}, nil
}

func (e *ExportReporter) Render(_ context.Context, report types.Report) (err error) {
	file, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export file: %w", cerr)
		}
	}()

	switch e.format {
	case ExportFormatYAML:
		return WriteYAML(file, report)
	default:
		return WriteCSV(file, report)
	}
}

// WriteCSV writes the report in long CSV form, one record per sample,
// statistic or comparison row.
func WriteCSV(w io.Writer, report types.Report) error {
	writer := csv.NewWriter(w)

	header := []string{"Section", "Name", "Voltage_V", "Current_mA", "Resistance_Ohm", "Percent_Error"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	rows := make([][]string, 0, len(report.Samples)+len(report.Comparison)+2)
	for i, s := range report.Samples {
		rows = append(rows, []string{
			"sample",
			strconv.Itoa(i + 1),
			formatFloat(s.Voltage),
			formatFloat(s.CurrentMA),
			formatFloat(report.Resistances[i]),
			"",
		})
	}
	rows = append(rows,
		[]string{"stats", "mean", "", "", formatFloat(report.Stats.Mean), ""},
		[]string{"stats", "std_dev", "", "", formatFloat(report.Stats.StdDev), ""},
	)
	for _, row := range report.Comparison {
		pctErr := ""
		if row.PercentError != nil {
			pctErr = formatFloat(*row.PercentError)
		}
		rows = append(rows, []string{"comparison", row.Label, "", "", formatFloat(row.ResistanceOhms), pctErr})
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

// WriteYAML writes the whole report as a YAML document.
func WriteYAML(w io.Writer, report types.Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode YAML report: %w", err)
	}
	return encoder.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
