package jobs

import (
	"context"
	"fmt"

	"github.com/riverqueue/river"
	"github.com/rs/zerolog"

	"github.com/lnm-board/server/internal/metrics"
)

// LifecycleSweepArgs defines the periodic job that keeps event
// categories current and purges events past retention.
type LifecycleSweepArgs struct{}

func (LifecycleSweepArgs) Kind() string { return JobKindLifecycleSweep }

type LifecycleSweepWorker struct {
	river.WorkerDefaults[LifecycleSweepArgs]
	Sweeper Sweeper
	Logger  zerolog.Logger
}

func (w *LifecycleSweepWorker) Work(ctx context.Context, job *river.Job[LifecycleSweepArgs]) error {
	if w.Sweeper == nil {
		return fmt.Errorf("sweeper not configured")
	}

	result, err := w.Sweeper.Sweep(ctx)
	if err != nil {
		metrics.SweepRuns.WithLabelValues("scheduled", "error").Inc()
		return fmt.Errorf("lifecycle sweep: %w", err)
	}

	metrics.SweepRuns.WithLabelValues("scheduled", "success").Inc()
	metrics.SweepReclassified.Add(float64(result.Reclassified))
	metrics.SweepPurged.Add(float64(result.Purged))

	w.Logger.Info().
		Int64("reclassified", result.Reclassified).
		Int64("purged", result.Purged).
		Msg("lifecycle sweep completed")
	return nil
}
