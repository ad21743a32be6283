package di

import (
	"fmt"

	"github.com/aristath/allocator/internal/config"
	"github.com/aristath/allocator/internal/scheduler"
	"github.com/rs/zerolog"
)

// Cron specs of the database maintenance jobs.
const (
	DatabaseCheckSchedule = "@daily"
	WALCheckpointSchedule = "@every 15m"
)

// RegisterJobs creates the background jobs and registers the scheduled ones.
// The snapshot job is only scheduled when both a schedule and a capital are configured.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	container.Scheduler = scheduler.New(log)

	jobs := &JobInstances{
		FrontierSnapshot: scheduler.NewFrontierSnapshotJob(
			container.OptimizationService,
			container.AssetRepo,
			cfg.SnapshotCapital,
			log,
		),
		CheckDatabase: scheduler.NewCheckDatabaseJob(container.OptimizerDB, log),
		WALCheckpoint: scheduler.NewWALCheckpointJob(container.OptimizerDB, log),
	}

	if err := container.Scheduler.AddJob(DatabaseCheckSchedule, jobs.CheckDatabase); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", jobs.CheckDatabase.Name(), err)
	}
	if err := container.Scheduler.AddJob(WALCheckpointSchedule, jobs.WALCheckpoint); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", jobs.WALCheckpoint.Name(), err)
	}

	if cfg.SnapshotSchedule == "" || cfg.SnapshotCapital <= 0 {
		log.Info().Msg("Frontier snapshot job disabled")
		return jobs, nil
	}

	if err := container.Scheduler.AddJob(cfg.SnapshotSchedule, jobs.FrontierSnapshot); err != nil {
		return nil, fmt.Errorf("failed to register %s: %w", jobs.FrontierSnapshot.Name(), err)
	}

	return jobs, nil
}
