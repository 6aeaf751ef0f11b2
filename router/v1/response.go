package v1

import (
	"encoding/json"
	"net/http"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

// Response constants
const (
	StatusAvailable = "available"
)

type (
	// HealthZResponse defines the response type for the healthy API handler.
	HealthZResponse struct {
		Status  string `json:"status" yaml:"status"`
		LastRun string `json:"last_run" yaml:"last_run"`
	}

	// SampleResponse is a single sample together with its derived resistance.
	SampleResponse struct {
		Voltage         float64 `json:"voltage"`
		CurrentMA       float64 `json:"current_ma"`
		ResistanceOhms  float64 `json:"resistance_ohms"`
		ResistanceKOhms float64 `json:"resistance_kohms"`
		Outlier         bool    `json:"outlier"`
	}

	// SamplesResponse defines the response type for getting the samples.
	SamplesResponse struct {
		Samples []SampleResponse     `json:"samples"`
		Stats   types.AggregateStats `json:"stats"`
	}

	// RegressionResponse defines the response type for getting the V-I fit.
	RegressionResponse struct {
		Regression      types.RegressionResult `json:"regression"`
		ResistanceOhms  float64                `json:"resistance_ohms"`
		SlopeStdErrOhms float64                `json:"slope_std_err_ohms"`
	}

	// ComparisonResponse defines the response type for getting the
	// comparison against the nominal resistance.
	ComparisonResponse struct {
		NominalResistance float64               `json:"nominal_resistance"`
		Rows              []types.ComparisonRow `json:"rows"`
	}

	// ErrorResponse defines the attributes of a JSON error response.
	ErrorResponse struct {
		Code  int    `json:"code,omitempty"`
		Error string `json:"error"`
	}
)

func newSamplesResponse(report types.Report) SamplesResponse {
	outliers := make(map[int]struct{}, len(report.Outliers))
	for _, o := range report.Outliers {
		outliers[o.Index] = struct{}{}
	}

	samples := make([]SampleResponse, len(report.Samples))
	for i, s := range report.Samples {
		_, isOutlier := outliers[i]
		samples[i] = SampleResponse{
			Voltage:         s.Voltage,
			CurrentMA:       s.CurrentMA,
			ResistanceOhms:  report.Resistances[i],
			ResistanceKOhms: types.OhmsToKiloOhms(report.Resistances[i]),
			Outlier:         isOutlier,
		}
	}

	return SamplesResponse{Samples: samples, Stats: report.Stats}
}

func newRegressionResponse(report types.Report) RegressionResponse {
	return RegressionResponse{
		Regression:      report.Regression,
		ResistanceOhms:  report.Regression.ResistanceOhms(),
		SlopeStdErrOhms: report.Regression.SlopeStdErrOhms(),
	}
}

func newComparisonResponse(report types.Report) ComparisonResponse {
	return ComparisonResponse{
		NominalResistance: report.NominalResistance,
		Rows:              report.Comparison,
	}
}

// writeErrorResponse writes a JSON error response with the given status code
// and error message.
func writeErrorResponse(w http.ResponseWriter, statusCode int, errMsg string) {
	writeResponse(w, statusCode, ErrorResponse{Code: statusCode, Error: errMsg})
}

// writeResponse encodes resp as JSON and writes it with the given status
// code.
func writeResponse(w http.ResponseWriter, statusCode int, resp interface{}) {
	bz, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(bz)
}
