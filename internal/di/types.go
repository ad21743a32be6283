// Package di provides dependency injection type definitions.
//
// The Container is the single source of truth for all service instances and is
// passed to the HTTP server and the scheduler.
package di

import (
	"github.com/aristath/allocator/internal/database"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/aristath/allocator/internal/modules/runs"
	"github.com/aristath/allocator/internal/modules/universe"
	"github.com/aristath/allocator/internal/scheduler"
)

// Container holds all dependencies for the application.
type Container struct {
	// Databases
	OptimizerDB *database.DB

	// Repositories
	AssetRepo *universe.AssetRepository
	RunRepo   *runs.RunRepository

	// Engine
	Solver    *optimization.KnapsackSolver
	Optimizer *optimization.Optimizer
	Sweeper   *optimization.FrontierSweeper

	// Services
	OptimizationService *optimization.Service

	// Background jobs
	Scheduler *scheduler.Scheduler
}

// JobInstances holds the registered background jobs for manual triggering.
type JobInstances struct {
	FrontierSnapshot *scheduler.FrontierSnapshotJob
	CheckDatabase    *scheduler.CheckDatabaseJob
	WALCheckpoint    *scheduler.WALCheckpointJob
}

// Close releases the resources held by the container.
func (c *Container) Close() error {
	if c.OptimizerDB == nil {
		return nil
	}
	return c.OptimizerDB.Close()
}
