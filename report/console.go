package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/config"
	"github.com/ojo-network/ohm-analyzer/verify"
)

const sectionWidth = 60

var _ Reporter = (*ConsoleReporter)(nil)

// ConsoleReporter prints the tabular report to a writer, usually stdout.
type ConsoleReporter struct {
	out       io.Writer
	verifyCfg *config.Verify
}

type ConsoleOption func(*ConsoleReporter)

// WithFindings appends the verification findings for cfg to the report.
func WithFindings(cfg config.Verify) ConsoleOption {
	return func(c *ConsoleReporter) {
		c.verifyCfg = &cfg
	}
}

func NewConsoleReporter(out io.Writer, opts ...ConsoleOption) *ConsoleReporter {
	c := &ConsoleReporter{out: out}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render writes the whole report in a single write so that a failed render
// never leaves a partial report behind.
func (c *ConsoleReporter) Render(_ context.Context, report types.Report) error {
	buf := &bytes.Buffer{}

	writeSamples(buf, report)
	writeRegression(buf, report)
	writeComparison(buf, report)
	writeOutliers(buf, report)
	if c.verifyCfg != nil {
		writeFindings(buf, verify.VerifyReport(*c.verifyCfg, report))
	}

	_, err := c.out.Write(buf.Bytes())
	return err
}

func writeSection(w io.Writer, title string) {
	fmt.Fprintln(w, strings.Repeat("=", sectionWidth))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", sectionWidth))
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	return table
}

func writeSamples(w io.Writer, report types.Report) {
	writeSection(w, "Per-sample resistances (R = V/I)")

	table := newTable(w, []string{"#", "V (V)", "I (mA)", "R (Ω)", "R (kΩ)"})
	for i, s := range report.Samples {
		table.Append([]string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.2f", s.Voltage),
			fmt.Sprintf("%.2f", s.CurrentMA),
			fmt.Sprintf("%.2f", report.Resistances[i]),
			fmt.Sprintf("%.3f", types.OhmsToKiloOhms(report.Resistances[i])),
		})
	}
	table.Render()

	stats := report.Stats
	fmt.Fprintf(w, "\nMean resistance:    %.2f Ω = %.3f kΩ\n", stats.Mean, types.OhmsToKiloOhms(stats.Mean))
	fmt.Fprintf(w, "Standard deviation: %.2f Ω = %.3f kΩ\n", stats.StdDev, types.OhmsToKiloOhms(stats.StdDev))
	fmt.Fprintf(w, "Range:              %.2f Ω .. %.2f Ω (CV %.4f%%)\n\n", stats.Min, stats.Max, stats.CV)
}

func writeRegression(w io.Writer, report types.Report) {
	writeSection(w, "Linear regression V vs I")

	r := report.Regression
	fmt.Fprintf(w, "Slope (m):              %.6f V/mA = %.2f Ω = %.3f kΩ\n",
		r.Slope, r.ResistanceOhms(), types.OhmsToKiloOhms(r.ResistanceOhms()))
	fmt.Fprintf(w, "Intercept (b):          %.4f V\n", r.Intercept)
	fmt.Fprintf(w, "Correlation (R):        %.6f\n", r.Correlation)
	fmt.Fprintf(w, "Determination (R²):     %.6f\n", r.RSquared)
	fmt.Fprintf(w, "Slope standard error:   %.4f Ω\n\n", r.SlopeStdErrOhms())
}

func writeComparison(w io.Writer, report types.Report) {
	writeSection(w, "Resistance comparison")

	table := newTable(w, []string{"Method", "Resistance (Ω)", "Resistance (kΩ)", "Error (%)"})
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	for _, row := range report.Comparison {
		pctErr := "-"
		if row.PercentError != nil {
			pctErr = fmt.Sprintf("%.4f", *row.PercentError)
		}
		table.Append([]string{
			row.Label,
			fmt.Sprintf("%.2f", row.ResistanceOhms),
			fmt.Sprintf("%.3f", row.ResistanceKOhms),
			pctErr,
		})
	}
	table.Render()
	fmt.Fprintln(w)
}

func writeOutliers(w io.Writer, report types.Report) {
	if len(report.Outliers) == 0 {
		return
	}

	writeSection(w, "Outlier samples")
	table := newTable(w, []string{"#", "V (V)", "I (mA)", "R (Ω)"})
	for _, o := range report.Outliers {
		table.Append([]string{
			strconv.Itoa(o.Index + 1),
			fmt.Sprintf("%.2f", o.Sample.Voltage),
			fmt.Sprintf("%.2f", o.Sample.CurrentMA),
			fmt.Sprintf("%.2f", o.Resistance),
		})
	}
	table.Render()
	fmt.Fprintln(w)
}

func writeFindings(w io.Writer, findings []verify.Finding) {
	writeSection(w, "Verification")
	for _, f := range findings {
		fmt.Fprintln(w, f.Message)
	}
	fmt.Fprintln(w)
}
