package report

import (
	"context"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

var (
	_ Reporter = (*PlotReporter)(nil)

	sampleColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	regressionColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// PlotReporter saves a scatter plot of the samples with the fitted regression
// line. The image format follows the file extension (png, svg, pdf, ...).
type PlotReporter struct {
	path   string
	width  vg.Length
	height vg.Length
}

// NewPlotReporter returns a PlotReporter writing to path with the given size
// in inches.
func NewPlotReporter(path string, widthInches, heightInches float64) *PlotReporter {
	return &PlotReporter{
		path:   path,
		width:  vg.Length(widthInches) * vg.Inch,
		height: vg.Length(heightInches) * vg.Inch,
	}
}

func (p *PlotReporter) Render(_ context.Context, report types.Report) error {
	plt, err := NewRegressionPlot(report)
	if err != nil {
		return err
	}

	if err := plt.Save(p.width, p.height, p.path); err != nil {
		return fmt.Errorf("failed to save plot to %s: %w", p.path, err)
	}
	return nil
}

// NewRegressionPlot builds the V vs I plot for report: samples as points and
// the regression line across the sampled current range.
func NewRegressionPlot(report types.Report) (*plot.Plot, error) {
	if len(report.Samples) == 0 {
		return nil, types.ErrInsufficientSamples.Wrap("nothing to plot")
	}

	plt := plot.New()
	plt.Title.Text = "Ohm's law: voltage vs current"
	plt.X.Label.Text = "Current (mA)"
	plt.Y.Label.Text = "Voltage (V)"
	plt.Add(plotter.NewGrid())

	points := make(plotter.XYs, len(report.Samples))
	for i, s := range report.Samples {
		points[i].X = s.CurrentMA
		points[i].Y = s.Voltage
	}

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("failed to build sample scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Color = sampleColor

	currents := report.Samples.CurrentsMA()
	lo, hi := floats.Min(currents), floats.Max(currents)
	reg := report.Regression

	line, err := plotter.NewLine(plotter.XYs{
		{X: lo, Y: reg.Predict(lo)},
		{X: hi, Y: reg.Predict(hi)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build regression line: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = regressionColor

	plt.Add(scatter, line)
	plt.Legend.Add("Samples", scatter)
	plt.Legend.Add(
		fmt.Sprintf("V = %.4f·I + %.4f (R² = %.6f)", reg.Slope, reg.Intercept, reg.RSquared),
		line,
	)
	plt.Legend.Top = true
	plt.Legend.Left = true

	return plt, nil
}
