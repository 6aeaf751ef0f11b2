package verify

import (
	"fmt"
)

type FindingType int

const (
	MATCH FindingType = iota
	PERCENT_ERROR_EXCEEDED
	NON_OHMIC_FIT
	INTERCEPT_OFFSET
	OUTLIER_SAMPLE
)

var (
	criticalFindingTypes = map[FindingType]struct{}{
		PERCENT_ERROR_EXCEEDED: {},
		NON_OHMIC_FIT:          {},
	}

	findingTypeNames = map[FindingType]string{
		MATCH:                  "match",
		PERCENT_ERROR_EXCEEDED: "percent_error_exceeded",
		NON_OHMIC_FIT:          "non_ohmic_fit",
		INTERCEPT_OFFSET:       "intercept_offset",
		OUTLIER_SAMPLE:         "outlier_sample",
	}
)

func (ft FindingType) String() string {
	if name, ok := findingTypeNames[ft]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(ft))
}

type Finding struct {
	Type    FindingType `json:"type"`
	Subject string      `json:"subject"`
	Message string      `json:"message"`
}

// Passed reports whether the finding records a successful check.
func (f Finding) Passed() bool {
	return f.Type == MATCH
}

// Critical reports whether any finding fails a check that invalidates the
// ohmic interpretation of the data.
func Critical(findings []Finding) bool {
	for _, f := range findings {
		if _, ok := criticalFindingTypes[f.Type]; ok {
			return true
		}
	}
	return false
}
