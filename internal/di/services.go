package di

import (
	"github.com/aristath/allocator/internal/config"
	"github.com/aristath/allocator/internal/modules/optimization"
	"github.com/rs/zerolog"
)

// InitializeServices builds the optimizer engine and the services using it
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.Solver = optimization.NewKnapsackSolver(cfg.MaxTableCells, log)
	container.Optimizer = optimization.NewOptimizer(container.Solver, log)
	container.Sweeper = optimization.NewFrontierSweeper(container.Optimizer, cfg.SweepWorkers, log)

	container.OptimizationService = optimization.NewService(
		container.AssetRepo,
		container.RunRepo,
		container.Optimizer,
		container.Sweeper,
		log,
	)
}
