package server

import (
	"context"
	"net/http"
	"time"

	"github.com/aristath/allocator/internal/server/response"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	health := map[string]interface{}{
		"status":  "healthy",
		"service": "allocator",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.container.OptimizerDB.QuickCheck(ctx); err != nil {
		s.log.Error().Err(err).Msg("Database health check failed")
		status = http.StatusServiceUnavailable
		health["status"] = "unhealthy"
	} else if count, err := s.container.AssetRepo.Count(); err == nil {
		health["assets"] = count
	}

	response.Write(w, r, status, health, s.log)
}
