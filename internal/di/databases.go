package di

import (
	"fmt"

	"github.com/aristath/allocator/internal/config"
	"github.com/aristath/allocator/internal/database"
	"github.com/rs/zerolog"
)

// InitializeDatabases opens the optimizer database and applies its schema
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	optimizerDB, err := database.New(database.Config{
		Path:    cfg.DatabasePath(),
		Profile: database.ProfileStandard,
		Name:    "optimizer",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize optimizer database: %w", err)
	}

	if err := optimizerDB.Migrate(); err != nil {
		optimizerDB.Close()
		return nil, fmt.Errorf("failed to migrate optimizer database: %w", err)
	}

	log.Info().Str("path", optimizerDB.Path()).Msg("Optimizer database ready")

	return &Container{OptimizerDB: optimizerDB}, nil
}
