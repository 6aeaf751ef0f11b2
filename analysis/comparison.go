package analysis

import (
	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/util"
)

const (
	LabelNominal    = "Nominal value (simulation)"
	LabelMeanRatio  = "Mean of ratios (R = V/I)"
	LabelRegression = "Regression slope"
)

// CompareResistances contrasts the nominal resistance with the mean-of-ratios
// and regression-slope estimates. Rows are returned in that order; the
// nominal row carries no percent error. Every value must be finite.
func CompareResistances(nominal, meanOhms, slopeOhms float64) ([]types.ComparisonRow, error) {
	if err := validateFinite("resistances", []float64{nominal, meanOhms, slopeOhms}); err != nil {
		return nil, err
	}
	if nominal == 0 {
		return nil, types.ErrDivisionByZero.Wrap("nominal resistance must be non-zero")
	}

	rows := []types.ComparisonRow{
		newComparisonRow(LabelNominal, nominal, nil),
		newComparisonRow(LabelMeanRatio, meanOhms, percentError(meanOhms, nominal)),
		newComparisonRow(LabelRegression, slopeOhms, percentError(slopeOhms, nominal)),
	}
	for _, row := range rows[1:] {
		if !isFinite(*row.PercentError) {
			return nil, types.ErrInvalidSample.Wrapf("percent error of %q overflows", row.Label)
		}
	}

	return rows, nil
}

func newComparisonRow(label string, ohms float64, pctErr *float64) types.ComparisonRow {
	return types.ComparisonRow{
		Label:           label,
		ResistanceOhms:  ohms,
		ResistanceKOhms: types.OhmsToKiloOhms(ohms),
		PercentError:    pctErr,
	}
}

func percentError(estimate, nominal float64) *float64 {
	e := util.CalcPercentError(estimate, nominal)
	return &e
}
