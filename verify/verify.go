package verify

import (
	"fmt"
	"math"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/config"
)

const (
	subjectRSquared  = "r_squared"
	subjectIntercept = "intercept"
)

// VerifyReport checks a report against the configured tolerances. Every check
// yields a finding, PASS entries included, in a stable order: comparison
// rows, goodness of fit, intercept, then one finding per outlier.
func VerifyReport(cfg config.Verify, report types.Report) []Finding {
	var findings []Finding

	for _, row := range report.Comparison {
		if row.PercentError == nil {
			continue
		}

		pctErr := *row.PercentError
		if pctErr > cfg.MaxPercentError {
			findings = append(findings, Finding{
				Type:    PERCENT_ERROR_EXCEEDED,
				Subject: row.Label,
				Message: fmt.Sprintf(
					"FAIL %s: %.2f Ω deviates from nominal %.2f Ω, Error: %.4f%% > %.4f%%",
					row.Label, row.ResistanceOhms, report.NominalResistance, pctErr, cfg.MaxPercentError,
				),
			})
			continue
		}
		findings = append(findings, Finding{
			Type:    MATCH,
			Subject: row.Label,
			Message: fmt.Sprintf(
				"PASS %s: %.2f Ω matches nominal %.2f Ω, Error: %.4f%% <= %.4f%%",
				row.Label, row.ResistanceOhms, report.NominalResistance, pctErr, cfg.MaxPercentError,
			),
		})
	}

	rSquared := report.Regression.RSquared
	if rSquared < cfg.MinRSquared {
		findings = append(findings, Finding{
			Type:    NON_OHMIC_FIT,
			Subject: subjectRSquared,
			Message: fmt.Sprintf("FAIL R² = %.6f < %.6f, V-I relation is not linear", rSquared, cfg.MinRSquared),
		})
	} else {
		findings = append(findings, Finding{
			Type:    MATCH,
			Subject: subjectRSquared,
			Message: fmt.Sprintf("PASS R² = %.6f >= %.6f", rSquared, cfg.MinRSquared),
		})
	}

	intercept := report.Regression.Intercept
	if math.Abs(intercept) > cfg.MaxInterceptVolts {
		findings = append(findings, Finding{
			Type:    INTERCEPT_OFFSET,
			Subject: subjectIntercept,
			Message: fmt.Sprintf(
				"FAIL intercept %.4f V exceeds ±%.4f V, check for parasitic resistance or measurement offset",
				intercept, cfg.MaxInterceptVolts,
			),
		})
	} else {
		findings = append(findings, Finding{
			Type:    MATCH,
			Subject: subjectIntercept,
			Message: fmt.Sprintf("PASS intercept %.4f V within ±%.4f V", intercept, cfg.MaxInterceptVolts),
		})
	}

	for _, o := range report.Outliers {
		findings = append(findings, Finding{
			Type:    OUTLIER_SAMPLE,
			Subject: fmt.Sprintf("sample_%d", o.Index),
			Message: fmt.Sprintf(
				"WARN sample %d (%s) resistance %.2f Ω deviates from mean %.2f Ω",
				o.Index, o.Sample, o.Resistance, report.Stats.Mean,
			),
		})
	}

	return findings
}
