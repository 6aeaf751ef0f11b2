package report

import (
	"context"

	"github.com/ojo-network/ohm-analyzer/analysis/types"
)

// Reporter renders a completed analysis report to a sink such as the console,
// an image or an export file.
type Reporter interface {
	Render(ctx context.Context, report types.Report) error
}

type multiReporter []Reporter

// Multi returns a Reporter that renders to each reporter in order, stopping at
// the first error.
func Multi(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) Render(ctx context.Context, report types.Report) error {
	for _, r := range m {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Render(ctx, report); err != nil {
			return err
		}
	}
	return nil
}
