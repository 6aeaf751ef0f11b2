package analysis

import (
	"math"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

// validateFinite returns ErrInvalidSample naming the first NaN or infinite
// entry of values.
func validateFinite(name string, values []float64) error {
	for i, v := range values {
		if !isFinite(v) {
			return types.ErrInvalidSample.Wrapf("%s[%d] is not finite: %v", name, i, v)
		}
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
