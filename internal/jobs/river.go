package jobs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/rs/zerolog"

	"github.com/lnm-board/server/internal/domain/events"
)

const JobKindLifecycleSweep = "lifecycle_sweep"

// SweepInterval is how often the periodic sweep fires. The sweep also
// runs once at startup and before every public event listing, so the
// schedule only bounds staleness for an idle server.
const SweepInterval = 24 * time.Hour

// NewWorkers registers every worker this service runs.
func NewWorkers(sweeper Sweeper, logger zerolog.Logger) (*river.Workers, error) {
	workers := river.NewWorkers()
	worker := &LifecycleSweepWorker{Sweeper: sweeper, Logger: logger}
	if err := river.AddWorkerSafely(workers, worker); err != nil {
		return nil, err
	}
	return workers, nil
}

// NewClient creates a River client wired to pgx v5. Sweeps are
// idempotent and rerun on the next tick, so failed jobs are not
// retried.
func NewClient(pool *pgxpool.Pool, workers *river.Workers) (*river.Client[pgx.Tx], error) {
	return river.NewClient(riverpgxv5.New(pool), &river.Config{
		Workers:     workers,
		MaxAttempts: 1,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 2},
		},
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(SweepInterval),
				func() (river.JobArgs, *river.InsertOpts) {
					return LifecycleSweepArgs{}, nil
				},
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
	})
}

// Sweeper reclassifies stored events and purges expired ones.
type Sweeper interface {
	Sweep(ctx context.Context) (events.SweepResult, error)
}
