package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ojo-network/ohm-analyzer/analysis"
	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/config"
	"github.com/ojo-network/ohm-analyzer/report"
)

func referenceReport(t *testing.T) types.Report {
	t.Helper()

	a := analysis.New(zerolog.Nop(), sdkmath.LegacyNewDec(330), analysis.DefaultDeviationThreshold)
	r, err := a.Run(context.Background(), analysis.ReferenceSamples())
	require.NoError(t, err)
	return r
}

type recordingReporter struct {
	name  string
	calls *[]string
	err   error
}

func (r recordingReporter) Render(context.Context, types.Report) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestMulti(t *testing.T) {
	var calls []string
	boom := errors.New("boom")

	m := report.Multi(
		recordingReporter{name: "console", calls: &calls},
		recordingReporter{name: "plot", calls: &calls, err: boom},
		recordingReporter{name: "export", calls: &calls},
	)

	err := m.Render(context.Background(), types.Report{})
	require.ErrorIs(t, err, boom)
	require.Equal(t, []string{"console", "plot"}, calls)
}

func TestConsoleReporter(t *testing.T) {
	r := referenceReport(t)

	t.Run("without findings", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, report.NewConsoleReporter(buf).Render(context.Background(), r))

		out := buf.String()
		require.Contains(t, out, "Per-sample resistances")
		require.Contains(t, out, "330.03")
		require.Contains(t, out, "Linear regression V vs I")
		require.Contains(t, out, analysis.LabelMeanRatio)
		require.Contains(t, out, analysis.LabelRegression)
		require.NotContains(t, out, "Verification")
		require.NotContains(t, out, "Outlier samples")
	})

	t.Run("with findings", func(t *testing.T) {
		buf := &bytes.Buffer{}
		cfg := config.Verify{MaxPercentError: 5, MinRSquared: 0.99, MaxInterceptVolts: 0.1}
		require.NoError(t, report.NewConsoleReporter(buf, report.WithFindings(cfg)).Render(context.Background(), r))

		out := buf.String()
		require.Contains(t, out, "Verification")
		require.Contains(t, out, "PASS R²")
		require.NotContains(t, out, "FAIL")
	})

	t.Run("when the writer fails", func(t *testing.T) {
		err := report.NewConsoleReporter(failingWriter{}).Render(context.Background(), r)
		require.Error(t, err)
	})
}

func TestPlotReporter(t *testing.T) {
	r := referenceReport(t)
	path := filepath.Join(t.TempDir(), "ohm_law_regression.png")

	require.NoError(t, report.NewPlotReporter(path, 10, 6).Render(context.Background(), r))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(content, []byte("\x89PNG\r\n\x1a\n")), "expected a PNG image")

	_, err = report.NewRegressionPlot(types.Report{})
	require.ErrorIs(t, err, types.ErrInsufficientSamples)
}

func TestExportReporter(t *testing.T) {
	r := referenceReport(t)

	t.Run("csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		e, err := report.NewExportReporter(path)
		require.NoError(t, err)
		require.NoError(t, e.Render(context.Background(), r))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		records, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		// header + 10 samples + 2 stats + 3 comparison rows
		require.Len(t, records, 16)
		require.Equal(t, "Section", records[0][0])
		require.Equal(t, "sample", records[1][0])
		require.True(t, strings.HasPrefix(records[1][4], "330.03"))
		require.Equal(t, "", records[13][5], "nominal row has no percent error")
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		e, err := report.NewExportReporter(path)
		require.NoError(t, err)
		require.NoError(t, e.Render(context.Background(), r))

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(content, &decoded))
		require.Contains(t, decoded, "regression")
		require.Contains(t, decoded, "comparison")
		require.EqualValues(t, 330, decoded["nominal_resistance"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := report.NewExportReporter("report.xlsx")
		require.Error(t, err)
	})
}
