package di

import (
	"fmt"

	"github.com/aristath/allocator/internal/modules/runs"
	"github.com/aristath/allocator/internal/modules/universe"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates all repositories on top of the container databases
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.OptimizerDB == nil {
		return fmt.Errorf("optimizer database not initialized")
	}

	container.AssetRepo = universe.NewAssetRepository(container.OptimizerDB.Conn(), log)
	container.RunRepo = runs.NewRunRepository(container.OptimizerDB.Conn(), log)

	return nil
}
