package v1

import (
	"time"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
	"github.com/ojo-network/ohm-analyzer/telemetry"
)

// Analyzer defines the Analyzer interface contract that the v1 router depends
// on.
type Analyzer interface {
	GetLastRunTimestamp() time.Time
	GetReport() (types.Report, bool)
}

// Metrics defines the telemetry contract the metrics endpoint depends on.
type Metrics interface {
	Gather(format string) (telemetry.GatherResponse, error)
}
